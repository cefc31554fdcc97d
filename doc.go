package textfeed

// Package textfeed is the streaming front end of a markup parser: it accepts
// an unbounded, arbitrarily chunked stream of raw bytes or already-decoded
// text, decides the character encoding at most once, and forwards a single
// coherent UTF-8 text stream to a downstream Sink.
//
// - ByteStream buffers a small prefix, runs BOM/hint detection exactly once,
//   then decodes every further chunk with the chosen encoding
// - PushText injects already-decoded text mid-stream in arrival order
//   (for example markup inserted dynamically by a script)
// - Decoding is lossy: malformed sequences become U+FFFD and surface as
//   non-fatal Issues on the sink's diagnostic channel
//
// Design policy:
// - Keep only public APIs in the root package; put the transform loop under internal/.
// - Place concrete sinks under sink/ and the CLI under cmd/textfeed.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  res := textfeed.One[capture.Result](capture.New(), data)
//
//  s := textfeed.NewByteStream[capture.Result](capture.New(), textfeed.TransportLabel("windows-1252"))
//  s.PushBytes(chunk)
//  s.PushText(injected)
//  res := s.Finish()
//
