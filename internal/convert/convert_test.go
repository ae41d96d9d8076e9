package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	compression "github.com/zxkit/go-zx-conv/internal/common/compressionutil"
	"github.com/zxkit/go-zx-conv/internal/header"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// tokenized "1 PRINT" with its advisory length field
var basicProgram = []byte{0x00, 0x01, 0x02, 0x00, 0xF5, 0x0D}

func writeInput(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestBasicToUnicode(t *testing.T) {
	input := writeInput(t, "prog.bas", basicProgram)
	require.NoError(t, BasicToUnicode(Options{InputFile: input}))

	out, err := os.ReadFile(input + ".txt")
	require.NoError(t, err)
	assert.Equal(t, append(append([]byte(nil), utf8BOM...), "   1  PRINT \n"...), out)
}

func TestBasicToUnicodeCompressedInput(t *testing.T) {
	compressed, err := compression.CompressGZIP(basicProgram)
	require.NoError(t, err)
	input := writeInput(t, "prog.bas.gz", compressed)

	output := filepath.Join(filepath.Dir(input), "prog.txt")
	require.NoError(t, BasicToUnicode(Options{InputFile: input, OutputFile: output}))

	out, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "   1  PRINT \n", string(out[len(utf8BOM):]))
}

func TestBasicToUnicodeTapeHeaderBoundsProgram(t *testing.T) {
	// One program line followed by variables data that must not be listed.
	data := append(append([]byte(nil), basicProgram...), 0x41, 0x00, 0x00, 0x00, 0x00, 0x00)
	input := writeInput(t, "prog.bas", data)

	th := header.NewTapeHeader(header.TapeLayout, "prog", uint16(len(data)))
	require.NoError(t, th.SetProgram(header.NoAutoStart, uint16(len(basicProgram))))
	headerFile := filepath.Join(filepath.Dir(input), "prog.hdr")
	require.NoError(t, os.WriteFile(headerFile, th.Encode(), 0644))

	require.NoError(t, BasicToUnicode(Options{InputFile: input, TapeHeaderFile: headerFile}))

	out, err := os.ReadFile(input + ".txt")
	require.NoError(t, err)
	assert.Equal(t, "   1  PRINT \n", string(out[len(utf8BOM):]))
}

func TestAsmToUnicode(t *testing.T) {
	data := []byte{0x0A, 0x00, 'R', 'E', 'T', 0x0D}
	input := writeInput(t, "prog.gen", data)
	require.NoError(t, AsmToUnicode(Options{InputFile: input, IncludeLineNumbers: true}))

	out, err := os.ReadFile(input + ".txt")
	require.NoError(t, err)
	assert.Equal(t, "    10  RET\n", string(out[len(utf8BOM):]))
}

func TestUnicodeToAsm(t *testing.T) {
	// Input carries a BOM; it must not leak into the encoded output.
	text := append(append([]byte(nil), utf8BOM...), "20 NOP\nHALT\n"...)
	input := writeInput(t, "prog.txt", text)
	require.NoError(t, UnicodeToAsm(Options{InputFile: input}))

	out, err := os.ReadFile(input + ".asm")
	require.NoError(t, err)
	want := []byte{0x14, 0x00, 'N', 'O', 'P', 0x0D, 0x1E, 0x00, 'H', 'A', 'L', 'T', 0x0D}
	assert.Equal(t, want, out)
}

func TestUnicodeToAsmTapeHeaderArtifact(t *testing.T) {
	input := writeInput(t, "prog.txt", []byte("RET\n"))
	dir := filepath.Dir(input)
	output := filepath.Join(dir, "prog.gen")
	headerFile := filepath.Join(dir, "prog.hdr")

	require.NoError(t, UnicodeToAsm(Options{
		InputFile:      input,
		OutputFile:     output,
		TapeHeaderFile: headerFile,
	}))

	out, err := os.ReadFile(output)
	require.NoError(t, err)

	raw, err := os.ReadFile(headerFile)
	require.NoError(t, err)
	th := header.NewTapeHeader(header.TapeLayout, "", 0)
	require.True(t, th.Decode(raw))
	assert.Equal(t, header.TypeCodeOrScreen, th.FileType)
	assert.Equal(t, "prog.gen", th.FileName)
	assert.Equal(t, uint16(len(out)), th.FileLength)
	assert.Equal(t, uint16(header.DefaultLoadAddress), th.LoadAddress)
}

func TestUnicodeToAsmTapeHeaderRejectsOversizeOutput(t *testing.T) {
	// 12000 six-byte lines encode to 72000 bytes, past the 16-bit length
	// field of the tape header. No wrapped-length artifact may be written.
	input := writeInput(t, "big.txt", []byte(strings.Repeat("1 NOP\n", 12000)))
	dir := filepath.Dir(input)
	headerFile := filepath.Join(dir, "big.hdr")

	err := UnicodeToAsm(Options{
		InputFile:      input,
		OutputFile:     filepath.Join(dir, "big.gen"),
		TapeHeaderFile: headerFile,
	})
	require.Error(t, err)

	_, statErr := os.Stat(headerFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUnicodeToAsmPlus3Dos(t *testing.T) {
	input := writeInput(t, "prog.txt", []byte("RET\n"))
	require.NoError(t, UnicodeToAsm(Options{InputFile: input, PrependPlus3Dos: true, UseSoftEOF: true}))

	out, err := os.ReadFile(input + ".asm")
	require.NoError(t, err)
	require.Greater(t, len(out), header.Plus3DosHeaderLength)

	var p3 header.Plus3DosHeader
	require.True(t, p3.Decode(out[:header.Plus3DosHeaderLength]))
	// soft-EOF trailer excluded from the recorded length
	assert.Equal(t, uint32(len(out)-header.Plus3DosHeaderLength-1), p3.PayloadLength())
}

func TestBasicToUnicodeMissingInput(t *testing.T) {
	err := BasicToUnicode(Options{InputFile: filepath.Join(t.TempDir(), "absent.bas")})
	assert.Error(t, err)
}
