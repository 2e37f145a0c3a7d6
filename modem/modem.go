package modem

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"i4.energy/across/fmlgw/at"
)

// Modem represents an ESP-AT WiFi modem driven over a serial line.
//
// All I/O is synchronous: every command blocks for its settle time and every
// reply is read by polling chunks until the line goes idle. The serial line is
// owned exclusively by the Modem and must not be shared between goroutines.
type Modem struct {
	// transport provides the physical connection to the modem
	transport Transport
	// config contains the modem configuration settings
	config Config
	// reader frames replies against the idle sentinel captured in New
	reader *Reader
	// closed indicates if the modem has been shut down
	closed bool
	logger *slog.Logger
}

// New creates a new Modem instance with the given configuration.
// It establishes the transport connection and captures the idle sentinel by
// polling once before any traffic is expected.
//
// Returns an error if the transport connection or the sentinel poll fails.
func New(ctx context.Context, config Config) (*Modem, error) {
	if config.dialer == nil {
		return nil, ErrNoDialer
	}
	config.setDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}

	transport, err := config.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, ErrNotInitialized
	}

	poller := newChunkPoller(transport, config.chunkSize)
	idle, err := poller.ReadChunk()
	if err != nil {
		transport.Close()
		return nil, fmt.Errorf("capture idle chunk: %w", err)
	}

	m := &Modem{
		transport: transport,
		config:    config,
		reader:    NewReader(poller, idle, config.maxChunks, config.readTimeout),
		logger:    config.logger,
	}
	m.logger.Debug("Captured idle chunk", "idle", []byte(idle), "chunk_size", config.chunkSize)
	return m, nil
}

// Close shuts down the modem and releases the transport.
// After calling Close(), the modem cannot be reused.
func (m *Modem) Close() error {
	if m.closed {
		return ErrAlreadyClosed
	}
	m.closed = true

	if m.transport != nil {
		return m.transport.Close()
	}
	return nil
}

// Send writes cmd terminated by CRLF and then blocks for settle.
//
// Send does not read the reply; some commands answer twice (an immediate
// acknowledgement and a later event), so reading is left to the caller.
func (m *Modem) Send(ctx context.Context, cmd string, settle time.Duration) error {
	if m.closed {
		return ErrAlreadyClosed
	}
	if m.transport == nil {
		return ErrNotInitialized
	}

	if _, err := m.transport.Write([]byte(cmd + at.CRLF)); err != nil {
		return fmt.Errorf("write command %q: %w", firstLine(cmd), err)
	}
	return m.config.sleep(ctx, settle)
}

// ReadReply reads everything the modem produced until the line goes idle.
func (m *Modem) ReadReply(ctx context.Context) (string, error) {
	if m.closed {
		return "", ErrAlreadyClosed
	}
	if m.reader == nil {
		return "", ErrNotInitialized
	}
	reply, err := m.reader.ReadUntilIdle(ctx)
	if err != nil {
		return "", err
	}
	m.logger.Debug("Modem reply", "reply", reply, "result", at.FinalResult(reply))
	return reply, nil
}

// Exec sends cmd, waits settle and reads one reply.
func (m *Modem) Exec(ctx context.Context, cmd string, settle time.Duration) (string, error) {
	if err := m.Send(ctx, cmd, settle); err != nil {
		return "", err
	}
	return m.ReadReply(ctx)
}

// firstLine keeps multi-line payloads out of error messages.
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\r\n")
	return line
}
