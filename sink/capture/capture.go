// Package capture provides a collecting Sink: it accumulates every decoded
// text chunk and every diagnostic, and finalizes to a plain Result. It is
// the sink used by the tests and the CLI; real parsers plug in their own.
package capture

import (
	"strings"

	"github.com/mkondo/textfeed"
)

// Result is the finalized output of a capture sink.
type Result struct {
	Text   string          `json:"text"`
	Issues textfeed.Issues `json:"issues,omitempty"`
}

// Sink implements textfeed.Sink[Result].
type Sink struct {
	b      strings.Builder
	issues textfeed.Issues
}

// New returns an empty capture sink. A sink is single-use, like the streams
// that feed it.
func New() *Sink { return &Sink{} }

func (s *Sink) Process(text string) {
	s.b.WriteString(text)
}

func (s *Sink) ReportError(iss textfeed.Issue) {
	s.issues = append(s.issues, iss)
}

func (s *Sink) Finish() Result {
	return Result{Text: s.b.String(), Issues: s.issues}
}
