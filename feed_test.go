package textfeed_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkondo/textfeed"
	"github.com/mkondo/textfeed/sink/capture"
)

func TestOne(t *testing.T) {
	res := textfeed.One[capture.Result](capture.New(), []byte("<title>Test</title>"))
	require.Equal(t, "<title>Test</title>", res.Text)
	require.Empty(t, res.Issues)
}

func TestOneText(t *testing.T) {
	res := textfeed.OneText[capture.Result](capture.New(), "<title>Test</title>")
	require.Equal(t, "<title>Test</title>", res.Text)
}

func TestReadFrom(t *testing.T) {
	input := strings.Repeat("<p>héllo</p>", 10_000)
	res, err := textfeed.ReadFrom[capture.Result](capture.New(), strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, input, res.Text)
	require.Empty(t, res.Issues)
}

func TestReadFromWithBOM(t *testing.T) {
	input := append([]byte{0xFE, 0xFF}, []byte{0x00, 't', 0x00, 'x'}...)
	res, err := textfeed.ReadFrom[capture.Result](capture.New(), bytes.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, "tx", res.Text)
}

// failReader yields its payload, then a permanent error.
type failReader struct {
	payload []byte
	err     error
}

func (r *failReader) Read(p []byte) (int, error) {
	if len(r.payload) == 0 {
		return 0, r.err
	}
	n := copy(p, r.payload)
	r.payload = r.payload[n:]
	return n, nil
}

func TestReadFromKeepsPartialResultOnError(t *testing.T) {
	readErr := errors.New("connection reset")
	res, err := textfeed.ReadFrom[capture.Result](capture.New(), &failReader{payload: []byte("<t>partial"), err: readErr})
	require.ErrorIs(t, err, readErr)
	require.Equal(t, "<t>partial", res.Text)
	require.Len(t, res.Issues, 1)
	require.Equal(t, textfeed.CodeStreamError, res.Issues[0].Code)
}

func TestReadFromEmpty(t *testing.T) {
	res, err := textfeed.ReadFrom[capture.Result](capture.New(), bytes.NewReader(nil))
	require.NoError(t, err)
	require.Equal(t, "", res.Text)
}

func TestReadFromShortInput(t *testing.T) {
	// Below the prescan threshold: EOF must still flush a decision.
	res, err := textfeed.ReadFrom[capture.Result](capture.New(), io.LimitReader(strings.NewReader("<t>"), 1))
	require.NoError(t, err)
	require.Equal(t, "<", res.Text)
}
