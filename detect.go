package textfeed

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// PrescanBytes is how many buffered bytes DetectEncoding wants before a byte
// stream commits to an encoding: exactly the longest byte order mark.
// Detection here is BOM-plus-transport-hint only; scanning the document
// itself for an encoding declaration (the larger prescan a browser would do)
// is a documented non-goal. Widening this window silently changes which
// encoding streams without a BOM end up with, so it stays a named constant.
const PrescanBytes = 3

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// DetectEncoding chooses the encoding for a byte stream from a prefix of it
// and an optional transport-layer hint (for example the charset parameter of
// a Content-Type header; see EncodingByLabel). A byte order mark wins over
// the hint; with neither, UTF-8 is the default. Never returns nil.
//
// When a BOM matches, the returned encoding is the BOM-consuming variant, so
// the mark never reaches the decoded output.
func DetectEncoding(prefix []byte, transport encoding.Encoding) encoding.Encoding {
	switch {
	case bytes.HasPrefix(prefix, bomUTF8):
		return unicode.UTF8BOM
	case bytes.HasPrefix(prefix, bomUTF16BE):
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	case bytes.HasPrefix(prefix, bomUTF16LE):
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case transport != nil:
		return transport
	}
	return unicode.UTF8
}
