package textfeed

import (
	"fmt"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// EncodingByLabel resolves a transport-layer charset label against the
// WHATWG encoding label table (matching is case-insensitive and ignores
// surrounding whitespace). It returns nil for unknown labels, which callers
// should treat as "no hint" rather than an error.
func EncodingByLabel(label string) encoding.Encoding {
	e, _ := charset.Lookup(label)
	return e
}

// EncodingName reports a readable name for e, preferring the IANA registry
// name. Used for diagnostics only; two encodings may share a name.
func EncodingName(e encoding.Encoding) string {
	if name, err := ianaindex.IANA.Name(e); err == nil && name != "" {
		return name
	}
	if s, ok := e.(fmt.Stringer); ok {
		return s.String()
	}
	return "unknown"
}
