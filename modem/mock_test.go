package modem_test

import (
	gomock "go.uber.org/mock/gomock"
	"i4.energy/across/fmlgw/modem"
)

// MockSequenceBuilder records the transport calls of a scripted exchange
// for a modem polling chunkSize bytes at a time.
type MockSequenceBuilder struct {
	transport *modem.MockTransport
	chunkSize int
	calls     []any
}

func NewMockSequence(transport *modem.MockTransport, chunkSize int) *MockSequenceBuilder {
	return &MockSequenceBuilder{
		transport: transport,
		chunkSize: chunkSize,
		calls:     []any{},
	}
}

// Idle records one poll that finds the line quiet.
func (b *MockSequenceBuilder) Idle() *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.transport.EXPECT().Read(gomock.Any()).Return(0, nil),
	)
	return b
}

// Command records the write of cmd with its CRLF terminator.
func (b *MockSequenceBuilder) Command(cmd string) *MockSequenceBuilder {
	wire := []byte(cmd + "\r\n")
	b.calls = append(b.calls,
		b.transport.EXPECT().Write(wire).Return(len(wire), nil),
	)
	return b
}

// Reply records the polls that deliver resp followed by the idle poll.
func (b *MockSequenceBuilder) Reply(resp string) *MockSequenceBuilder {
	for len(resp) > 0 {
		n := min(b.chunkSize, len(resp))
		piece := resp[:n]
		resp = resp[n:]
		b.calls = append(b.calls,
			b.transport.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
				return copy(p, piece), nil
			}),
		)
		if n < b.chunkSize {
			// Short chunk: the poller reads again and finds the line quiet.
			b.Idle()
		}
	}
	return b.Idle()
}

func (b *MockSequenceBuilder) Build() []any {
	return b.calls
}
