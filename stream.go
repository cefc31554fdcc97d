package textfeed

import (
	"golang.org/x/text/encoding"

	"github.com/mkondo/textfeed/internal/decode"
)

// streamMode is the tagged state of a ByteStream.
type streamMode int

const (
	modeBuffering streamMode = iota // undecided; accumulating the prescan prefix
	modeDecoding                    // encoding chosen; decoder live
	modeTransient                   // occupied only inside a mode transition
	modeDone                        // Finish has consumed the stream
)

// ByteStream feeds an arbitrarily chunked byte stream into a Sink, deciding
// the character encoding exactly once. Until enough bytes for detection have
// arrived it buffers them; the moment the prescan threshold is reached (or a
// non-empty text injection or Finish forces the question early) it runs
// DetectEncoding over the buffered prefix, hands the whole prefix to a fresh
// decoder, and stays in decoding mode for the rest of its life. Bytes are
// never reordered, dropped, or decoded twice, and injected text interleaves
// with decoded bytes in exact arrival order.
//
// All methods are synchronous and must be called from a single goroutine.
// Calling anything after Finish, or re-entering the stream from a sink
// callback while a mode transition is in flight, is a caller bug and panics.
type ByteStream[O any] struct {
	mode streamMode
	buf  []byte          // undecided-mode prefix; consumed at the decision
	dec  *decodeStage[O] // set once decided
	out  *TextStream[O]
	opt  BytesOpt
	off  int64 // raw input bytes accepted so far
}

// NewByteStream builds a stream over sink. When several opts are given the
// last one wins.
func NewByteStream[O any](sink Sink[O], opts ...BytesOpt) *ByteStream[O] {
	var opt BytesOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.Prescan < PrescanBytes {
		opt.Prescan = PrescanBytes
	}
	return &ByteStream[O]{out: NewTextStream(sink), opt: opt}
}

// PushBytes accepts the next chunk of raw input. Before the encoding
// decision it buffers; afterwards it decodes and forwards immediately.
func (s *ByteStream[O]) PushBytes(chunk []byte) {
	switch s.mode {
	case modeDecoding:
		s.off += int64(len(chunk))
		s.dec.process(chunk)
	case modeBuffering:
		s.off += int64(len(chunk))
		s.buf = append(s.buf, chunk...)
		if len(s.buf) >= s.opt.Prescan {
			s.decide()
		}
	default:
		panic(badMode(s.mode))
	}
}

// PushText injects already-decoded text mid-stream, e.g. markup written by a
// script. The chunk reaches the sink in exactly the position it was
// submitted relative to surrounding byte chunks. An empty chunk is a no-op:
// it must never force a premature encoding decision.
//
// If the stream is still undecided, the decision is forced now using
// whatever bytes are buffered, even below the prescan threshold; keeping the
// output ordered outranks sniffing accuracy.
func (s *ByteStream[O]) PushText(text string) {
	if text == "" {
		return
	}
	switch s.mode {
	case modeDecoding:
		// Already decoded text needs no decoding; bypass the decoder.
		s.out.Process(text)
	case modeBuffering:
		s.decide()
		s.out.Process(text)
	default:
		panic(badMode(s.mode))
	}
}

// ReportError forwards an out-of-band diagnostic (see StreamError) to the
// sink's diagnostic channel. It never affects flow control.
func (s *ByteStream[O]) ReportError(iss Issue) {
	switch s.mode {
	case modeBuffering, modeDecoding:
		s.out.ReportError(iss)
	default:
		panic(badMode(s.mode))
	}
}

// Finish consumes the stream and returns the sink's result. A stream still
// undecided decides now over its (possibly empty) prefix, so even zero bytes
// of input yield a valid empty result. The stream must not be used again.
func (s *ByteStream[O]) Finish() O {
	switch s.mode {
	case modeBuffering:
		s.decide()
	case modeDecoding:
	default:
		panic(badMode(s.mode))
	}
	dec := s.dec
	s.dec = nil
	s.mode = modeDone
	return dec.finish()
}

// Location reports how many raw input bytes have been accepted so far.
// Injected text does not advance it.
func (s *ByteStream[O]) Location() int64 { return s.off }

// decide runs detection over the buffered prefix, constructs the decoder,
// and feeds it the entire prefix. The transient mode is occupied only within
// this call; the invariant that no public operation ever observes it holds
// as long as the sink does not call back into the stream.
func (s *ByteStream[O]) decide() {
	s.mode = modeTransient
	buf := s.buf
	s.buf = nil
	dec := newDecodeStage(DetectEncoding(buf, s.opt.Transport), s.out)
	if len(buf) > 0 {
		dec.process(buf)
	}
	s.dec = dec
	s.mode = modeDecoding
}

func badMode(m streamMode) string {
	if m == modeDone {
		return "textfeed: use of finished ByteStream"
	}
	return "textfeed: ByteStream re-entered during mode transition"
}

// decodeStage pairs the chosen encoding's incremental decoder with the
// TextStream it forwards into.
type decodeStage[O any] struct {
	dec *decode.Stream
	out *TextStream[O]
}

func newDecodeStage[O any](enc encoding.Encoding, out *TextStream[O]) *decodeStage[O] {
	return &decodeStage[O]{dec: decode.New(enc), out: out}
}

func (d *decodeStage[O]) process(chunk []byte) {
	text, events := d.dec.Write(chunk)
	d.out.Process(text)
	d.report(events)
}

// finish flushes the decoder's trailing state and finalizes the sink. A
// partial multi-byte sequence left at end of stream decodes to U+FFFD and is
// reported as truncated, not fatal.
func (d *decodeStage[O]) finish() O {
	text, events := d.dec.Close()
	d.out.Process(text)
	d.report(events)
	return d.out.Finish()
}

func (d *decodeStage[O]) report(events []decode.Event) {
	for _, ev := range events {
		iss := Issue{Code: CodeDecodeError, Message: "malformed byte sequence replaced", Offset: ev.Offset}
		if ev.Truncated {
			iss.Code = CodeTruncated
			iss.Message = "incomplete byte sequence at end of stream"
		}
		d.out.ReportError(iss)
	}
}
