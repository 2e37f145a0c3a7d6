package modem

import (
	"errors"
	"io"
)

// Chunk is the fixed-size unit returned by one poll of the serial line.
type Chunk []byte

// ChunkReader polls one chunk from the line. It blocks for at most the
// transport's poll window and returns the idle chunk when nothing arrived.
type ChunkReader interface {
	ReadChunk() (Chunk, error)
}

// chunkPoller reads fixed-size chunks from a Transport.
//
// A poll collects up to size bytes, stopping early only when the line goes
// quiet. If no byte arrived at all the zero-filled chunk is returned, which
// is what the UART reports while idle.
type chunkPoller struct {
	t    Transport
	size int
}

func newChunkPoller(t Transport, size int) *chunkPoller {
	return &chunkPoller{t: t, size: size}
}

func (p *chunkPoller) ReadChunk() (Chunk, error) {
	buf := make([]byte, p.size)
	n := 0
	for n < p.size {
		k, err := p.t.Read(buf[n:])
		n += k
		if err != nil {
			if errors.Is(err, io.EOF) && n > 0 {
				break
			}
			return nil, err
		}
		if k == 0 {
			break
		}
	}
	if n == 0 {
		return make(Chunk, p.size), nil
	}
	return Chunk(buf[:n]), nil
}
