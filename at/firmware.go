package at

import (
	"strconv"
	"strings"
)

// Firmware output matched by substring. These are heuristics against the
// text printed by ESP-AT firmware and the AI-FML service; a firmware that
// rewords any of them silently breaks the corresponding predicate, so every
// such contract lives in this table.
const (
	MarkerOK             = "OK"
	MarkerWiFiConnected  = "WIFI CONNECTED"
	MarkerWiFiGotIP      = "WIFI GOT IP"
	MarkerConnect        = "CONNECT"
	MarkerAlreadyConnect = "ALREADY CONNECTED"
	MarkerClosed         = "CLOSED"
	MarkerBusy           = "busy"
	MarkerNotFound       = "404 Not Found"
	MarkerStationIP      = "+CIFSR:STAIP,"
)

// HasOK reports whether reply contains an OK result anywhere.
func HasOK(reply string) bool {
	return strings.Contains(reply, MarkerOK)
}

// IsWiFiConnected reports whether an AT+CWJAP reply announced the association.
func IsWiFiConnected(reply string) bool {
	return strings.Contains(reply, MarkerWiFiConnected)
}

// HasGotIP reports whether the station obtained an address via DHCP during
// the join. It usually follows WIFI CONNECTED in the same reply.
func HasGotIP(reply string) bool {
	return strings.Contains(reply, MarkerWiFiGotIP)
}

// IsConnectAck reports whether an AT+CIPSTART reply acknowledged the socket.
// "ALREADY CONNECTED" counts: the single-connection socket is usable.
func IsConnectAck(reply string) bool {
	for _, line := range Lines(reply) {
		switch line {
		case MarkerConnect, MarkerAlreadyConnect:
			return true
		}
		// Multi-connection firmware prefixes the link id: "0,CONNECT".
		if _, rest, ok := strings.Cut(line, ","); ok && rest == MarkerConnect {
			return true
		}
	}
	return false
}

// IsBusy reports whether reply carries the modem's "busy p..."/"busy s..."
// notice instead of a response.
func IsBusy(reply string) bool {
	return strings.Contains(reply, MarkerBusy)
}

// IsNotFound reports whether reply carries an HTTP 404 status text.
func IsNotFound(reply string) bool {
	return strings.Contains(reply, MarkerNotFound)
}

// HasFailure reports whether reply contains a line that is exactly ERROR,
// FAIL or SEND FAIL. Bodies that merely mention the word do not match.
func HasFailure(reply string) bool {
	for _, line := range Lines(reply) {
		switch line {
		case ERROR, Fail, SendFail:
			return true
		}
	}
	return false
}

// StationIP extracts the address from a `+CIFSR:STAIP,"a.b.c.d"` line.
func StationIP(reply string) (string, bool) {
	for _, line := range Lines(reply) {
		rest, ok := strings.CutPrefix(line, MarkerStationIP)
		if !ok {
			continue
		}
		ip, err := strconv.Unquote(rest)
		if err != nil {
			return strings.Trim(rest, `"`), true
		}
		return ip, true
	}
	return "", false
}

// Quote renders s as an ESP-AT string argument. The firmware requires `"`,
// `,` and `\` inside quoted arguments to be escaped with a backslash.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', ',', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
