package modem

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedChunks struct {
	chunks []Chunk
	polls  int
	err    error
}

func (s *scriptedChunks) ReadChunk() (Chunk, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.polls >= len(s.chunks) {
		return nil, errors.New("script exhausted")
	}
	c := s.chunks[s.polls]
	s.polls++
	return c, nil
}

var idle6 = Chunk{0, 0, 0, 0, 0, 0}

func TestReadUntilIdle(t *testing.T) {
	tests := []struct {
		name      string
		chunks    []Chunk
		expected  string
		polls     int
		expectErr error
	}{
		{
			name:     "Concatenates chunks before the sentinel",
			chunks:   []Chunk{Chunk("\r\nOK\r\n"), Chunk("WIFI C"), Chunk("ONN"), idle6},
			expected: "\r\nOK\r\nWIFI CONN",
			polls:    4,
		},
		{
			name:     "Nothing before the sentinel is an empty reply",
			chunks:   []Chunk{idle6},
			expected: "",
			polls:    1,
		},
		{
			name:     "Chunks after the sentinel are not consumed",
			chunks:   []Chunk{Chunk("abc"), idle6, Chunk("later")},
			expected: "abc",
			polls:    2,
		},
		{
			name:     "Multi-byte runes split across chunks",
			chunks:   []Chunk{Chunk("溫度\xe5"), Chunk("\xba\xa6"), idle6},
			expected: "溫度度",
			polls:    3,
		},
		{
			name:      "Invalid UTF-8 is a decode error",
			chunks:    []Chunk{Chunk{0xff, 0xfe, 'a'}, idle6},
			polls:     2,
			expectErr: ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptedChunks{chunks: tt.chunks}
			r := NewReader(src, idle6, 100, 0)

			got, err := r.ReadUntilIdle(context.Background())
			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.polls, src.polls)
		})
	}
}

func TestReadUntilIdle_MaxChunks(t *testing.T) {
	chunks := make([]Chunk, 10)
	for i := range chunks {
		chunks[i] = Chunk("+IPD,1")
	}
	src := &scriptedChunks{chunks: chunks}
	r := NewReader(src, idle6, 5, 0)

	_, err := r.ReadUntilIdle(context.Background())
	require.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 6, src.polls, "reader stops at the first chunk past the bound")
}

func TestReadUntilIdle_MaxChunksReachedThenIdle(t *testing.T) {
	src := &scriptedChunks{chunks: []Chunk{Chunk("+IPD,1"), Chunk("2:abc\n"), idle6}}
	r := NewReader(src, idle6, 2, 0)

	got, err := r.ReadUntilIdle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "+IPD,12:abc\n", got)
	assert.Equal(t, 3, src.polls)
}

func TestReadUntilIdle_WallClock(t *testing.T) {
	chunks := make([]Chunk, 10)
	for i := range chunks {
		chunks[i] = Chunk("noise!")
	}
	src := &scriptedChunks{chunks: chunks}
	r := NewReader(src, idle6, 0, time.Second)

	// Each call to now advances the clock by 400ms.
	clock := time.Unix(0, 0)
	r.now = func() time.Time {
		clock = clock.Add(400 * time.Millisecond)
		return clock
	}

	_, err := r.ReadUntilIdle(context.Background())
	require.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, src.polls, len(chunks), "deadline should stop polling early")
}

func TestReadUntilIdle_ContextCancelled(t *testing.T) {
	src := &scriptedChunks{chunks: []Chunk{idle6}}
	r := NewReader(src, idle6, 10, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ReadUntilIdle(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, src.polls, "no polls after cancellation")
}

func TestReadUntilIdle_ChunkError(t *testing.T) {
	readErr := errors.New("uart gone")
	r := NewReader(&scriptedChunks{err: readErr}, idle6, 10, 0)

	_, err := r.ReadUntilIdle(context.Background())
	assert.ErrorIs(t, err, readErr)
}

func TestChunkPoller(t *testing.T) {
	tr := NewTestTransport()
	p := newChunkPoller(tr, 6)

	c, err := p.ReadChunk()
	require.NoError(t, err)
	assert.Equal(t, idle6, c, "zero-filled idle chunk")

	tr.SendData("CONNECT\r\n")
	for i, w := range []Chunk{Chunk("CONNEC"), Chunk("T\r\n"), idle6} {
		c, err := p.ReadChunk()
		require.NoError(t, err, "poll %d", i)
		assert.Equal(t, w, c, "poll %d", i)
	}
}
