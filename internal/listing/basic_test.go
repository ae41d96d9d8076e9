package listing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zxkit/go-zx-conv/internal/charset"
	"github.com/zxkit/go-zx-conv/internal/header"
)

// basicLine builds one tokenized program line: big-endian line number, the
// little-endian advisory length, the body, and the terminator.
func basicLine(lineNumber uint16, body ...byte) []byte {
	line := []byte{byte(lineNumber >> 8), byte(lineNumber)}
	line = append(line, byte(len(body)+1), 0x00)
	line = append(line, body...)
	return append(line, lineTerminator)
}

func decodeBasicString(t *testing.T, data []byte, opts BasicOptions) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, DecodeBasic(data, &out, opts))
	return out.String()
}

func TestDecodeBasicSingleLine(t *testing.T) {
	data := basicLine(1, 0xF5) // PRINT
	assert.Equal(t, "   1  PRINT \n", decodeBasicString(t, data, BasicOptions{}))
}

func TestDecodeBasicWithPlus3DosHeader(t *testing.T) {
	payload := basicLine(1, 0xF5)
	p3 := header.NewPlus3DosHeader(uint32(len(payload)))
	data := append(p3.Encode(), payload...)

	assert.Equal(t, "   1  PRINT \n", decodeBasicString(t, data, BasicOptions{}))
}

func TestDecodeBasicHeaderBoundsPayload(t *testing.T) {
	// Junk past the header-declared length is not decoded.
	payload := basicLine(1, 0xF5)
	p3 := header.NewPlus3DosHeader(uint32(len(payload)))
	data := append(p3.Encode(), payload...)
	data = append(data, basicLine(2, 0xF5)...)

	assert.Equal(t, "   1  PRINT \n", decodeBasicString(t, data, BasicOptions{}))
}

func TestDecodeBasicStopsAtVariables(t *testing.T) {
	data := append(basicLine(10, 'X'), basicLine(0x4000, 'Y')...)
	assert.Equal(t, "  10 X\n", decodeBasicString(t, data, BasicOptions{}))
}

func TestDecodeBasicProgLengthDisablesVariablesCheck(t *testing.T) {
	// With a known program length the variables region never starts early,
	// so a line number above the threshold is decoded as a line.
	data := basicLine(0x4000, 'Y')
	opts := BasicOptions{ProgLength: uint16(len(data)), HasProgLength: true}
	assert.Equal(t, "16384 Y\n", decodeBasicString(t, data, opts))
}

func TestDecodeBasicProgLengthTruncates(t *testing.T) {
	first := basicLine(10, 'A')
	data := append(append([]byte(nil), first...), basicLine(20, 'B')...)
	opts := BasicOptions{ProgLength: uint16(len(first)), HasProgLength: true}
	assert.Equal(t, "  10 A\n", decodeBasicString(t, data, opts))
}

func TestDecodeBasicSkipsNumberLiterals(t *testing.T) {
	body := []byte{'5', numberMarker, 0x00, 0x00, 0x05, 0x00, 0x00}
	data := basicLine(5, body...)
	assert.Equal(t, "   5 5\n", decodeBasicString(t, data, BasicOptions{}))
}

func TestDecodeBasicSoftEOF(t *testing.T) {
	data := append(basicLine(10, 'A'), SoftEOF, 0x00, 0x00, 0x00)

	// Off by default: the soft-EOF byte is misread as a line header.
	assert.NotEqual(t, "  10 A\n", decodeBasicString(t, data, BasicOptions{}))
	assert.Equal(t, "  10 A\n", decodeBasicString(t, data, BasicOptions{StopAtSoftEOF: true}))
}

func TestDecodeBasicHeaderDisablesSoftEOF(t *testing.T) {
	// 0x1A in a line-number field is data when the header gives the length.
	payload := basicLine(0x1A01, 'A')
	p3 := header.NewPlus3DosHeader(uint32(len(payload)))
	data := append(p3.Encode(), payload...)

	assert.Equal(t, "6657 A\n", decodeBasicString(t, data, BasicOptions{StopAtSoftEOF: true}))
}

func TestDecodeBasicEmbeddedProgramRecord(t *testing.T) {
	prog := basicLine(10, 'A')
	vars := []byte{0x41, 0x00, 0x00, 0x00, 0x00, 0x00}
	payload := append(append([]byte(nil), prog...), vars...)

	p3 := header.NewPlus3DosHeader(uint32(len(payload)))
	require.NoError(t, p3.BasicHeader.SetProgram(header.NoAutoStart, uint16(len(prog))))
	p3.SetFileLength(uint32(len(payload)))
	data := append(p3.Encode(), payload...)

	assert.Equal(t, "  10 A\n", decodeBasicString(t, data, BasicOptions{}))
}

func TestDecodeBasicVariant(t *testing.T) {
	data := basicLine(10, 0xA3)
	assert.Equal(t, "  10  SPECTRUM \n", decodeBasicString(t, data, BasicOptions{}))
	assert.Equal(t, "  10 \U0001F183\n", decodeBasicString(t, data, BasicOptions{Variant: charset.Tokens48}))
}

func TestDecodeBasicTruncatedInput(t *testing.T) {
	// Missing terminator: the stream ends cleanly mid-line.
	data := []byte{0x00, 0x0A, 0x02, 0x00, 'A'}
	assert.Equal(t, "  10 A", decodeBasicString(t, data, BasicOptions{}))

	// A dangling line header alone produces nothing.
	assert.Equal(t, "", decodeBasicString(t, []byte{0x00, 0x0A, 0x00}, BasicOptions{}))
	assert.Equal(t, "", decodeBasicString(t, nil, BasicOptions{}))
}
