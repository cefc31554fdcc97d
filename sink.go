package textfeed

// Sink is the downstream consumer of decoded text, typically a tokenizer
// feeding a tree builder. It is opaque to this package: any type exposing
// incremental text input, a diagnostic channel, and finalization works.
//
// Process and ReportError may be called any number of times in any
// interleaving; Finish is called exactly once, last.
type Sink[O any] interface {
	// Process appends a chunk of decoded text to the sink's input.
	Process(text string)
	// ReportError receives a non-fatal diagnostic.
	ReportError(iss Issue)
	// Finish signals end of input and returns the accumulated result.
	Finish() O
}

// TextStream forwards already-decoded text to a Sink. It is the join point
// where the buffering path and the decoding path of a ByteStream converge;
// both end up emitting through the same TextStream, which keeps ordering and
// error accounting in one place.
type TextStream[O any] struct {
	sink Sink[O]
	errs int
}

// NewTextStream wraps sink. Use it directly when the input is known to be
// decoded text already and no byte-level front end is needed.
func NewTextStream[O any](sink Sink[O]) *TextStream[O] {
	return &TextStream[O]{sink: sink}
}

// Process forwards one text chunk. Empty chunks are dropped.
func (t *TextStream[O]) Process(text string) {
	if text == "" {
		return
	}
	t.sink.Process(text)
}

// ReportError forwards a diagnostic to the sink.
func (t *TextStream[O]) ReportError(iss Issue) {
	t.errs++
	t.sink.ReportError(iss)
}

// ErrorCount reports how many diagnostics have passed through so far.
func (t *TextStream[O]) ErrorCount() int { return t.errs }

// Finish finalizes the sink and returns its result.
func (t *TextStream[O]) Finish() O {
	return t.sink.Finish()
}
