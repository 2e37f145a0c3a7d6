package modem

import (
	"log/slog"
	"time"
)

// ConfigBuilder assembles a Config. Unset values fall back to the defaults
// of the reference deployment.
type ConfigBuilder struct {
	config Config
}

func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.dialer = d
	return b
}

func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.logger = l
	return b
}

// WithSleep replaces the delay primitive used for settle times.
func (b *ConfigBuilder) WithSleep(s SleepFunc) *ConfigBuilder {
	b.config.sleep = s
	return b
}

// WithChunkSize sets the fixed number of bytes taken by one poll.
func (b *ConfigBuilder) WithChunkSize(n int) *ConfigBuilder {
	b.config.chunkSize = n
	return b
}

// WithCommandSettle sets the wait after plain commands (default 100ms).
func (b *ConfigBuilder) WithCommandSettle(d time.Duration) *ConfigBuilder {
	b.config.commandSettle = d
	return b
}

// WithQuerySettle sets the wait after setup queries such as AT+GMR (default 200ms).
func (b *ConfigBuilder) WithQuerySettle(d time.Duration) *ConfigBuilder {
	b.config.querySettle = d
	return b
}

// WithConnectSettle sets the wait after AT+CIPSTART and each CIPSEND step
// (default 1000ms).
func (b *ConfigBuilder) WithConnectSettle(d time.Duration) *ConfigBuilder {
	b.config.connectSettle = d
	return b
}

// WithJoinSettle sets the wait after AT+CWJAP (default 15s).
func (b *ConfigBuilder) WithJoinSettle(d time.Duration) *ConfigBuilder {
	b.config.joinSettle = d
	return b
}

// WithMaxChunks bounds the number of chunks a single read may accumulate.
func (b *ConfigBuilder) WithMaxChunks(n int) *ConfigBuilder {
	b.config.maxChunks = n
	return b
}

// WithReadTimeout bounds the wall-clock time of a single read.
func (b *ConfigBuilder) WithReadTimeout(d time.Duration) *ConfigBuilder {
	b.config.readTimeout = d
	return b
}

func (b *ConfigBuilder) Build() (Config, error) {
	c := b.config
	c.setDefaults()
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
