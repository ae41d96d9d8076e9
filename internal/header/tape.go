// Package header encodes and decodes the two leading metadata records used
// by ZX Spectrum storage: the 17-byte cassette tape header and the 128-byte
// +3DOS disk file header.
//
// Malformed input never produces an error from Decode; it returns false and
// the caller decides the fallback (usually: treat the header as absent).
package header

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode"

	"github.com/zxkit/go-zx-conv/internal/charset"
)

// Layout selects between the two physical forms of the header record.
type Layout int

const (
	// TapeLayout is the 17-byte cassette form with a 10-byte file name.
	TapeLayout Layout = iota
	// Plus3Layout is the 8-byte form embedded in a +3DOS file header,
	// with no file name field.
	Plus3Layout
)

// FileType is the subtype stored in byte 0 of the record.
type FileType byte

const (
	TypeProgram      FileType = 0
	TypeNumericArray FileType = 1
	TypeCharArray    FileType = 2
	TypeCodeOrScreen FileType = 3
)

const (
	TapeHeaderLength  = 17
	Plus3HeaderLength = 8

	FileNameMaxLength = 10

	// NoAutoStart is the AutoStartLine sentinel for programs saved
	// without LINE.
	NoAutoStart = 0x8000

	// DefaultLoadAddress is the screen start, used when the address does
	// not matter. Loading at the screen makes a wrong "LOAD file CODE"
	// obvious before a retry.
	DefaultLoadAddress = 16384

	// tapeHeaderMarker is the leading type byte on header blocks saved
	// to tape by Sinclair BASIC.
	tapeHeaderMarker = 0x00
)

// TapeHeader is the Spectrum file header record. Exactly one subtype field
// group is meaningful per FileType; Encode zero-fills the rest.
type TapeHeader struct {
	Layout   Layout
	FileType FileType

	// FileName is present only in TapeLayout, at most 10 characters.
	FileName string

	FileLength uint16

	// Program fields.
	AutoStartLine uint16
	ProgLength    uint16

	// Array fields.
	ArrayName rune

	// Code/screen fields.
	LoadAddress uint16
}

// NewTapeHeader returns a zeroed header for the given layout. The name is
// ignored for Plus3Layout and truncated to FileNameMaxLength otherwise.
func NewTapeHeader(layout Layout, fileName string, fileLength uint16) TapeHeader {
	if layout != TapeLayout {
		fileName = ""
	} else {
		fileName = truncateName(fileName)
	}
	return TapeHeader{
		Layout:     layout,
		FileName:   fileName,
		FileLength: fileLength,
	}
}

// Length returns the encoded record length for this layout.
func (h *TapeHeader) Length() int {
	if h.Layout == Plus3Layout {
		return Plus3HeaderLength
	}
	return TapeHeaderLength
}

// SetProgram marks the header as a BASIC program. startLine must be
// NoAutoStart or in 1..9999.
func (h *TapeHeader) SetProgram(startLine, progLength uint16) error {
	if startLine != NoAutoStart && (startLine < 1 || startLine > 9999) {
		return fmt.Errorf("auto-start line %d out of range (want 1..9999 or NoAutoStart)", startLine)
	}
	h.FileType = TypeProgram
	h.AutoStartLine = startLine
	h.ProgLength = progLength
	return nil
}

// SetNumericArray marks the header as a numeric array named by one letter.
func (h *TapeHeader) SetNumericArray(name rune) error {
	if !unicode.IsLetter(name) {
		return fmt.Errorf("array name %q must be a single letter", name)
	}
	h.FileType = TypeNumericArray
	h.ArrayName = name
	return nil
}

// SetCharArray marks the header as a character array named by one letter.
func (h *TapeHeader) SetCharArray(name rune) error {
	if !unicode.IsLetter(name) {
		return fmt.Errorf("array name %q must be a single letter", name)
	}
	h.FileType = TypeCharArray
	h.ArrayName = name
	return nil
}

// SetCode marks the header as a code or screen block.
func (h *TapeHeader) SetCode(loadAddress uint16) {
	h.FileType = TypeCodeOrScreen
	h.LoadAddress = loadAddress
}

// IsZeroed reports whether every field beyond the layout is zero. A zeroed
// +3 header stands for "file has no header data".
func (h *TapeHeader) IsZeroed() bool {
	return h.FileType == 0 &&
		h.FileLength == 0 &&
		h.AutoStartLine == 0 &&
		h.ProgLength == 0 &&
		h.LoadAddress == 0 &&
		h.ArrayName == 0
}

// Encode emits the fixed-length record for this layout. No sanity checks
// are applied, so a header that failed Decode validation can still be
// re-encoded byte for byte.
func (h *TapeHeader) Encode() []byte {
	buf := make([]byte, 0, h.Length())

	if h.Layout == TapeLayout || !h.IsZeroed() {
		buf = append(buf, byte(h.FileType))

		if h.Layout == TapeLayout {
			name := truncateName(strings.TrimSpace(h.FileName))
			table := charset.Lookup(charset.Tokens48)
			for _, r := range name {
				buf = append(buf, encodeNameRune(table, r))
			}
			for len(buf) < 1+FileNameMaxLength {
				buf = append(buf, ' ')
			}
		}

		buf = binary.LittleEndian.AppendUint16(buf, h.FileLength)

		switch h.FileType {
		case TypeProgram:
			buf = binary.LittleEndian.AppendUint16(buf, h.AutoStartLine)
			buf = binary.LittleEndian.AppendUint16(buf, h.ProgLength)
		case TypeNumericArray, TypeCharArray:
			buf = append(buf, 0x00)
			buf = append(buf, encodeNameRune(charset.Lookup(charset.Tokens48), h.ArrayName))
			buf = append(buf, 0x00, 0x00)
		case TypeCodeOrScreen:
			buf = binary.LittleEndian.AppendUint16(buf, h.LoadAddress)
			if h.Layout == TapeLayout {
				// 0x8000 trailer for historical reasons
				buf = append(buf, 0x00, 0x80)
			} else {
				buf = append(buf, 0x00, 0x00)
			}
		}
	}

	for len(buf) < h.Length() {
		buf = append(buf, 0x00)
	}
	return buf
}

// EncodeWrapped emits the tape record in its on-tape form: a leading type
// marker byte, the record, and a trailing XOR check byte.
func (h *TapeHeader) EncodeWrapped() []byte {
	raw := h.Encode()
	buf := make([]byte, 0, len(raw)+2)
	buf = append(buf, tapeHeaderMarker)
	buf = append(buf, raw...)
	var check byte
	for _, b := range raw {
		check ^= b
	}
	return append(buf, check)
}

// Decode parses a record into the receiver, zeroing it first. TapeLayout
// also accepts the 19-byte wrapped form (marker + XOR check byte). The
// return value reports whether the record is sane; on a length, marker or
// checksum failure the receiver stays zeroed, while a field validation
// failure leaves the parsed fields readable alongside the false result.
func (h *TapeHeader) Decode(data []byte) bool {
	layout := h.Layout
	*h = TapeHeader{Layout: layout}

	if layout == TapeLayout && len(data) == TapeHeaderLength+2 {
		if data[0] != tapeHeaderMarker {
			return false
		}
		check := data[len(data)-1]
		data = data[1 : len(data)-1]
		var xor byte
		for _, b := range data {
			xor ^= b
		}
		if xor != check {
			return false
		}
	}

	if len(data) != h.Length() {
		return false
	}

	if layout == Plus3Layout && isAllZero(data) {
		// A zeroed record is valid: the file has no header data.
		return true
	}

	ok := true
	h.FileType = FileType(data[0])

	if layout == TapeLayout {
		var name strings.Builder
		// File names should not contain tokens: the 48K table has
		// more non-token conversions.
		table := charset.Lookup(charset.Tokens48)
		for _, b := range data[1 : 1+FileNameMaxLength] {
			name.WriteString(table.DecodeByte(b))
		}
		h.FileName = strings.TrimSpace(name.String())
		data = data[FileNameMaxLength:]
	}

	h.FileLength = binary.LittleEndian.Uint16(data[1:3])

	switch h.FileType {
	case TypeProgram:
		h.AutoStartLine = binary.LittleEndian.Uint16(data[3:5])
		h.ProgLength = binary.LittleEndian.Uint16(data[5:7])
		if h.AutoStartLine != NoAutoStart && (h.AutoStartLine < 1 || h.AutoStartLine > 9999) {
			ok = false
		}
	case TypeNumericArray, TypeCharArray:
		decoded := []rune(charset.Lookup(charset.Tokens128).DecodeByte(data[4]))
		if len(decoded) > 0 {
			h.ArrayName = decoded[0]
		}
		if len(decoded) != 1 || !unicode.IsLetter(decoded[0]) {
			ok = false
		}
	case TypeCodeOrScreen:
		h.LoadAddress = binary.LittleEndian.Uint16(data[3:5])
	default:
		ok = false
	}

	return ok
}

// truncateName cuts a file name to FileNameMaxLength characters. Counting
// runes, not bytes, keeps a multibyte name from being split mid-sequence.
func truncateName(name string) string {
	if r := []rune(name); len(r) > FileNameMaxLength {
		return string(r[:FileNameMaxLength])
	}
	return name
}

// encodeNameRune falls back to '?' for runes outside the Spectrum set, so
// the record keeps its fixed length.
func encodeNameRune(table *charset.Table, r rune) byte {
	b, err := table.EncodeRune(r)
	if err != nil {
		return '?'
	}
	return b
}

func isAllZero(data []byte) bool {
	return bytes.Count(data, []byte{0x00}) == len(data)
}
