package textfeed

import (
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeDecodeError = "decode_error" // malformed byte sequence, replaced with U+FFFD
	CodeTruncated   = "truncated"    // incomplete byte sequence at end of stream
	CodeStreamError = "stream_error" // reported out of band by the caller/I-O layer
)

// Issue represents a single non-fatal diagnostic raised while feeding the
// stream. Issues never abort decoding; they are observational.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Offset is the byte offset in the raw input where the issue surfaced
	// (-1 when unknown, for example for injected text or caller reports).
	Offset int64 `json:"offset"`
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. decode_error at byte 17
		if it.Offset >= 0 {
			fmt.Fprintf(b, "%s at byte %d", it.Code, it.Offset)
		} else {
			b.WriteString(it.Code)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// StreamError wraps an out-of-band message from the I/O layer into an Issue
// suitable for ByteStream.ReportError.
func StreamError(msg string) Issue {
	return Issue{Code: CodeStreamError, Message: msg, Offset: -1}
}
