package decode_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/mkondo/textfeed/internal/decode"
)

func TestStreamCarriesPartialRune(t *testing.T) {
	s := decode.New(unicode.UTF8)

	text, events := s.Write([]byte{'h', 0xC3})
	require.Equal(t, "h", text)
	require.Empty(t, events)

	text, events = s.Write([]byte{0xA9})
	require.Equal(t, "é", text)
	require.Empty(t, events)

	text, events = s.Close()
	require.Equal(t, "", text)
	require.Empty(t, events)
}

func TestStreamSubstitutesInvalidByte(t *testing.T) {
	s := decode.New(unicode.UTF8)
	text, events := s.Write([]byte{0xFF})
	require.Equal(t, "�", text)
	require.Len(t, events, 1)
	require.False(t, events[0].Truncated)
}

func TestStreamTruncatedAtClose(t *testing.T) {
	s := decode.New(unicode.UTF8)

	text, events := s.Write([]byte{0xE2, 0x82})
	require.Equal(t, "", text)
	require.Empty(t, events)

	text, events = s.Close()
	require.Equal(t, "�", text)
	require.Len(t, events, 1)
	require.True(t, events[0].Truncated)
}

func TestStreamUTF16(t *testing.T) {
	s := decode.New(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM))

	text, events := s.Write([]byte{0x00, 't', 0x00})
	require.Equal(t, "t", text)
	require.Empty(t, events)

	text, events = s.Write([]byte{'x'})
	require.Equal(t, "x", text)
	require.Empty(t, events)

	text, events = s.Close()
	require.Equal(t, "", text)
	require.Empty(t, events)
}

func TestStreamCharmap(t *testing.T) {
	s := decode.New(charmap.Windows1252)
	text, events := s.Write([]byte{0x93, 'a', 0x94})
	require.Equal(t, "“a”", text)
	require.Empty(t, events)
}

func TestStreamEventOffsets(t *testing.T) {
	s := decode.New(unicode.UTF8)

	_, events := s.Write([]byte("abc"))
	require.Empty(t, events)

	_, events = s.Write([]byte{0xFF})
	require.Len(t, events, 1)
	require.Equal(t, int64(3), events[0].Offset)
}

func TestStreamLargeInputDrainsShortDst(t *testing.T) {
	// Larger than the internal transform buffer, forcing multiple rounds.
	input := make([]byte, 64*1024)
	for i := range input {
		input[i] = 'a'
	}
	s := decode.New(unicode.UTF8)
	text, events := s.Write(input)
	require.Len(t, text, len(input))
	require.Empty(t, events)
}
