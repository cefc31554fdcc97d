package textfeed

import "golang.org/x/text/encoding"

// BytesOpt bundles byte-stream options.
type BytesOpt struct {
	// Transport is the character encoding named by the transport layer, if
	// any. In HTTP this is the charset parameter of the Content-Type
	// response header. A byte order mark in the stream overrides it.
	Transport encoding.Encoding

	// Prescan overrides how many bytes are buffered before detection runs.
	// Zero means PrescanBytes; values below PrescanBytes are clamped up so a
	// byte order mark can never be split by the decision. Raising it does
	// not enable content sniffing; it only delays the decision.
	Prescan int
}

// TransportLabel builds a BytesOpt from a charset label. Unknown labels
// leave Transport nil, falling back to the UTF-8 default.
func TransportLabel(label string) BytesOpt {
	return BytesOpt{Transport: EncodingByLabel(label)}
}
