package modem

import (
	"context"
	"fmt"
	"strconv"

	"i4.energy/across/fmlgw/at"
)

// OpenSession starts the modem's single TCP session to host:port with
// AT+CIPSTART. The reply must carry a CONNECT acknowledgement, otherwise
// ErrConnect is returned together with the reply text.
func (m *Modem) OpenSession(ctx context.Context, host string, port int) error {
	cmd := fmt.Sprintf("%s=%s,%s,%d", at.CmdStart, strconv.Quote(at.TCP), strconv.Quote(host), port)
	reply, err := m.Exec(ctx, cmd, m.config.connectSettle)
	if err != nil {
		return fmt.Errorf("start session %s:%d: %w", host, port, err)
	}
	if !at.IsConnectAck(reply) {
		return fmt.Errorf("%w: %s:%d replied %q", ErrConnect, host, port, reply)
	}
	m.logger.Debug("Session opened", "host", host, "port", port)
	return nil
}

// SendPayload writes body over the open session and returns the raw reply,
// which holds the remote response interleaved with modem diagnostics.
//
// The declared length is len(body)+2 because the CRLF appended by Send is
// part of the payload.
func (m *Modem) SendPayload(ctx context.Context, body string) (string, error) {
	declared := len(body) + len(at.CRLF)
	echo, err := m.Exec(ctx, fmt.Sprintf("%s=%d", at.CmdSend, declared), m.config.connectSettle)
	if err != nil {
		return "", fmt.Errorf("declare payload: %w", err)
	}
	if at.HasFailure(echo) {
		return "", fmt.Errorf("%w: declare %d bytes replied %q", ErrSend, declared, echo)
	}

	reply, err := m.Exec(ctx, body, m.config.connectSettle)
	if err != nil {
		return "", fmt.Errorf("send payload: %w", err)
	}
	if at.HasFailure(reply) {
		return reply, fmt.Errorf("%w: %q", ErrSend, reply)
	}
	return reply, nil
}
