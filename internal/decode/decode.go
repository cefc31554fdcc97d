// Package decode runs a character encoding's transform incrementally over an
// arbitrarily chunked byte stream, producing UTF-8 text plus diagnostics.
package decode

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// replacement is the UTF-8 encoding of U+FFFD, which x/text decoders emit in
// place of bytes they cannot transcode.
var replacement = []byte("�")

// Event is a single decode diagnostic. Offsets are best-effort: they point
// at the start of the input window the substitution surfaced in, not at the
// exact offending byte.
type Event struct {
	Offset    int64
	Truncated bool // incomplete sequence at end of stream
}

// Stream decodes a byte stream to UTF-8 one chunk at a time. Malformed input
// never fails the stream: the underlying transform substitutes U+FFFD, and
// each substitution surfaces as an Event. A trailing partial multi-byte
// sequence is carried across Write calls until completed or Close is called.
type Stream struct {
	tr    transform.Transformer
	carry []byte // trailing bytes the transformer has not consumed yet
	dst   []byte
	off   int64 // input bytes received so far
}

// New builds a Stream decoding enc to UTF-8. The transform is lossy by the
// x/text/encoding contract; it is never asked to fail.
func New(enc encoding.Encoding) *Stream {
	return &Stream{tr: enc.NewDecoder(), dst: make([]byte, 4096)}
}

// Write decodes one chunk. The returned text may be empty when the chunk
// ends inside a multi-byte sequence; the partial tail is held back and
// prepended to the next call.
func (s *Stream) Write(chunk []byte) (string, []Event) {
	return s.run(chunk, false)
}

// Close flushes trailing state. Bytes still pending at end of stream decode
// to U+FFFD and the resulting event is flagged Truncated.
func (s *Stream) Close() (string, []Event) {
	trailing := len(s.carry) > 0
	text, events := s.run(nil, true)
	if trailing && len(events) > 0 {
		events[len(events)-1].Truncated = true
	}
	return text, events
}

func (s *Stream) run(chunk []byte, atEOF bool) (string, []Event) {
	start := s.off - int64(len(s.carry))
	src := chunk
	if len(s.carry) > 0 {
		src = append(s.carry, chunk...)
		s.carry = nil
	}
	s.off += int64(len(chunk))

	var out []byte
loop:
	for {
		nDst, nSrc, err := s.tr.Transform(s.dst, src, atEOF)
		out = append(out, s.dst[:nDst]...)
		src = src[nSrc:]
		switch err {
		case nil:
			break loop
		case transform.ErrShortDst:
			// dst filled up; go around again to drain the rest
		case transform.ErrShortSrc:
			if !atEOF {
				s.carry = append(s.carry, src...)
				break loop
			}
			// At EOF the unicode decoders substitute on their own; a
			// transformer that still stalls gets one byte skipped so the
			// loop always terminates.
			out = append(out, replacement...)
			if len(src) == 0 {
				break loop
			}
			src = src[1:]
		default:
			// Hard transform error. Substitute a byte and resume rather
			// than aborting the stream.
			out = append(out, replacement...)
			if len(src) == 0 {
				break loop
			}
			src = src[1:]
		}
	}

	// The transform reports no error for substitutions, so count the
	// replacement runes it produced. A literal U+FFFD in the input is
	// indistinguishable here and over-reports; acceptable for a best-effort
	// diagnostic channel.
	var events []Event
	for n := bytes.Count(out, replacement); n > 0; n-- {
		events = append(events, Event{Offset: start})
	}
	return string(out), events
}
