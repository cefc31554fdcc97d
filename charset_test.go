package textfeed_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/mkondo/textfeed"
)

func TestEncodingByLabel(t *testing.T) {
	require.Equal(t, unicode.UTF8, textfeed.EncodingByLabel("utf-8"))
	require.Equal(t, unicode.UTF8, textfeed.EncodingByLabel("  UTF-8  "))
	require.Equal(t, charmap.Windows1252, textfeed.EncodingByLabel("windows-1252"))
	// WHATWG maps latin1 onto windows-1252.
	require.Equal(t, charmap.Windows1252, textfeed.EncodingByLabel("latin1"))
	require.Nil(t, textfeed.EncodingByLabel("no-such-charset"))
	require.Nil(t, textfeed.EncodingByLabel(""))
}

func TestEncodingName(t *testing.T) {
	require.Equal(t, "UTF-8", textfeed.EncodingName(unicode.UTF8))
	require.Equal(t, "windows-1252", textfeed.EncodingName(charmap.Windows1252))
	require.NotEmpty(t, textfeed.EncodingName(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)))
}

func TestTransportLabel(t *testing.T) {
	opt := textfeed.TransportLabel("windows-1252")
	require.Equal(t, charmap.Windows1252, opt.Transport)
	require.Nil(t, textfeed.TransportLabel("bogus").Transport)
}
