package modem

import (
	"context"
	"log/slog"
	"time"
)

// SleepFunc blocks for d or until ctx is done. It is the delay primitive
// behind every settle time.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep waits for d honouring ctx cancellation.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Config) validate() error {
	if c.dialer == nil {
		return ErrNoDialer
	}
	if c.chunkSize <= 0 {
		return ErrInvalidChunkSize
	}
	return nil
}

// Config holds the modem settings. Use NewConfigBuilder to create one.
//
// The settle times are protocol constants: too short and the reply is read
// before the modem produced it, too long only wastes time.
type Config struct {
	dialer    Dialer
	logger    *slog.Logger
	sleep     SleepFunc
	chunkSize int

	commandSettle time.Duration
	querySettle   time.Duration
	connectSettle time.Duration
	joinSettle    time.Duration

	maxChunks   int
	readTimeout time.Duration
}

func (c *Config) setDefaults() {
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.sleep == nil {
		c.sleep = Sleep
	}
	if c.chunkSize == 0 {
		c.chunkSize = 6
	}
	if c.commandSettle == 0 {
		c.commandSettle = 100 * time.Millisecond
	}
	if c.querySettle == 0 {
		c.querySettle = 200 * time.Millisecond
	}
	if c.connectSettle == 0 {
		c.connectSettle = 1000 * time.Millisecond
	}
	if c.joinSettle == 0 {
		c.joinSettle = 15000 * time.Millisecond
	}
	if c.maxChunks == 0 {
		c.maxChunks = 1 << 16
	}
	if c.readTimeout == 0 {
		c.readTimeout = 30 * time.Second
	}
}
