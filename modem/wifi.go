package modem

import (
	"context"
	"fmt"

	"i4.energy/across/fmlgw/at"
)

// Init turns echo off, reads the firmware version and selects station mode.
// It returns the version reply.
func (m *Modem) Init(ctx context.Context) (string, error) {
	if err := m.Send(ctx, at.CmdEchoOff, m.config.querySettle); err != nil {
		return "", fmt.Errorf("could not disable echo: %w", err)
	}

	// The ATE0 acknowledgement is read together with the version.
	version, err := m.Exec(ctx, at.CmdVersion, m.config.querySettle)
	if err != nil {
		return "", fmt.Errorf("read version: %w", err)
	}

	if _, err := m.Exec(ctx, at.CmdStationMode, m.config.querySettle); err != nil {
		return "", fmt.Errorf("set station mode: %w", err)
	}
	return version, nil
}

// JoinWiFi associates with the access point. Association is slow, so the
// reply is read only after the join settle time.
func (m *Modem) JoinWiFi(ctx context.Context, ssid, passphrase string) error {
	cmd := fmt.Sprintf("%s=%s,%s", at.CmdJoinAP, at.Quote(ssid), at.Quote(passphrase))
	reply, err := m.Exec(ctx, cmd, m.config.joinSettle)
	if err != nil {
		return fmt.Errorf("join %q: %w", ssid, err)
	}
	if !at.IsWiFiConnected(reply) {
		return fmt.Errorf("%w: %q replied %q", ErrWiFi, ssid, reply)
	}
	m.logger.Info("WiFi connected", "ssid", ssid, "got_ip", at.HasGotIP(reply))
	return nil
}

// LocalIP queries the station address. The reply must contain OK; the
// address is empty when the firmware did not print a STAIP line.
func (m *Modem) LocalIP(ctx context.Context) (string, error) {
	reply, err := m.Exec(ctx, at.CmdLocalIP, m.config.commandSettle)
	if err != nil {
		return "", fmt.Errorf("query address: %w", err)
	}
	if !at.HasOK(reply) {
		return "", fmt.Errorf("%w: address query replied %q", ErrConnect, reply)
	}
	ip, _ := at.StationIP(reply)
	return ip, nil
}
