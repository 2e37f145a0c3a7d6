package modem

import (
	"bytes"
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/VictoriaMetrics/metrics"
)

var (
	readTimeouts = metrics.NewCounter(`fmlgw_modem_read_timeouts_total`)
	readBytes    = metrics.NewCounter(`fmlgw_modem_read_bytes_total`)
)

// Reader accumulates chunks until the idle sentinel recurs.
//
// There is no length or delimiter protocol from the modem: equality with the
// idle chunk captured at startup is the only end-of-reply signal. Every read
// is bounded by maxChunks and timeout so a line that never goes idle fails
// with ErrTimeout instead of blocking forever.
type Reader struct {
	src       ChunkReader
	idle      Chunk
	maxChunks int
	timeout   time.Duration
	now       func() time.Time
}

// NewReader returns a Reader that stops at idle. maxChunks counts data
// chunks only, so a reply of exactly maxChunks chunks followed by idle is
// accepted. A maxChunks or timeout of zero disables that bound; at least one
// should be set.
func NewReader(src ChunkReader, idle Chunk, maxChunks int, timeout time.Duration) *Reader {
	return &Reader{
		src:       src,
		idle:      bytes.Clone(idle),
		maxChunks: maxChunks,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Idle returns the sentinel the reader stops at.
func (r *Reader) Idle() Chunk {
	return bytes.Clone(r.idle)
}

// ReadUntilIdle polls chunks and returns the UTF-8 text of everything read
// before the idle sentinel. No chunk after the sentinel is consumed. An empty
// string means the modem produced no reply and is not an error by itself.
func (r *Reader) ReadUntilIdle(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	var deadline time.Time
	if r.timeout > 0 {
		deadline = r.now().Add(r.timeout)
	}

	for chunks := 0; ; {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !deadline.IsZero() && r.now().After(deadline) {
			readTimeouts.Inc()
			return "", fmt.Errorf("%w: %s elapsed (%d bytes) without idle", ErrTimeout, r.timeout, buf.Len())
		}

		chunk, err := r.src.ReadChunk()
		if err != nil {
			return "", fmt.Errorf("read chunk: %w", err)
		}
		if bytes.Equal(chunk, r.idle) {
			break
		}
		chunks++
		if r.maxChunks > 0 && chunks > r.maxChunks {
			readTimeouts.Inc()
			return "", fmt.Errorf("%w: more than %d chunks (%d bytes) without idle", ErrTimeout, r.maxChunks, buf.Len())
		}
		buf.Write(chunk)
	}

	readBytes.Add(buf.Len())
	if !utf8.Valid(buf.Bytes()) {
		return "", fmt.Errorf("%w: %q", ErrDecode, buf.Bytes())
	}
	return buf.String(), nil
}
