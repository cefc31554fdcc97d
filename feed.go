package textfeed

import (
	"errors"
	"io"
)

const readBufSize = 32 * 1024

// One feeds a complete byte input through a fresh stream and finalizes it.
func One[O any](sink Sink[O], input []byte, opts ...BytesOpt) O {
	s := NewByteStream(sink, opts...)
	s.PushBytes(input)
	return s.Finish()
}

// OneText feeds already-decoded input through a fresh stream and finalizes
// it. No encoding detection runs beyond the forced empty-prefix decision.
func OneText[O any](sink Sink[O], input string) O {
	s := NewByteStream(sink)
	s.PushText(input)
	return s.Finish()
}

// ReadFrom drives a stream from r until EOF. A read error is reported on the
// diagnostic channel and returned; the sink is still finalized so the
// partial result is not lost.
func ReadFrom[O any](sink Sink[O], r io.Reader, opts ...BytesOpt) (O, error) {
	s := NewByteStream(sink, opts...)
	buf := make([]byte, readBufSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			s.PushBytes(buf[:n])
		}
		switch {
		case errors.Is(err, io.EOF):
			return s.Finish(), nil
		case err != nil:
			s.ReportError(StreamError(err.Error()))
			return s.Finish(), err
		}
	}
}
