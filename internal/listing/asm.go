package listing

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/zxkit/go-zx-conv/internal/charset"
	"github.com/zxkit/go-zx-conv/internal/header"
)

const (
	// Auto-numbering used when source lines carry no explicit number.
	firstLineNumber = 10
	lineNumberStep  = 10
)

// lineNumberPattern matches an optional leading decimal line number:
// optional spaces, digits, a word boundary, then at most two spaces that
// separate the number from the instruction text.
var lineNumberPattern = regexp.MustCompile(`^[ ]*([0-9]+)\b[ ]{0,2}(.*)$`)

// AsmDecodeOptions controls DecodeAsm.
type AsmDecodeOptions struct {
	// IncludeLineNumbers prefixes each output line with its number,
	// padded to six characters plus two spaces so tabs line up after it.
	IncludeLineNumbers bool

	// StopAtSoftEOF terminates on a soft-EOF byte; force-disabled when a
	// +3DOS header supplies a trusted length.
	StopAtSoftEOF bool
}

// AsmEncodeOptions controls EncodeAsm.
type AsmEncodeOptions struct {
	// PrependPlus3Dos writes a +3DOS header ahead of the payload,
	// filled in with the final length and checksum once it is known.
	PrependPlus3Dos bool

	// AppendSoftEOF appends the soft-EOF byte after the last line. The
	// byte is not counted in the +3DOS header length.
	AppendSoftEOF bool
}

// DecodeAsm converts a HiSoft GEN assembler file to Unicode text. Some GEN
// files start with a 16-bit total-length field; the first line-number field
// is discarded as that length prefix when its value equals the byte count
// from the field's own start. A real first line number that happens to
// equal that count is misread; this is a known ambiguity of the format.
func DecodeAsm(data []byte, w io.Writer, opts AsmDecodeOptions) error {
	table := charset.Lookup(charset.PlainNoTab)

	payload, p3, found := stripPlus3Dos(data)
	stopAtSoftEOF := opts.StopAtSoftEOF
	var remaining int
	if found {
		data = payload
		remaining = min(len(data), int(p3.PayloadLength()))
		stopAtSoftEOF = false
	} else {
		remaining = len(data)
	}

	pos := 0
	waitingForLeadLength := true
	for remaining > 2 {
		if pos+2 > len(data) {
			return nil
		}
		first, second := data[pos], data[pos+1]
		lineNumber := binary.LittleEndian.Uint16(data[pos : pos+2])
		pos += 2
		remaining -= 2

		if stopAtSoftEOF && (first == SoftEOF || second == SoftEOF) {
			return nil
		}

		if waitingForLeadLength {
			waitingForLeadLength = false
			if int(lineNumber) == remaining+2 {
				continue
			}
		}

		if opts.IncludeLineNumbers {
			if _, err := fmt.Fprintf(w, "%6d  ", lineNumber); err != nil {
				return err
			}
		}

		for remaining > 0 {
			if pos >= len(data) {
				return nil
			}
			b := data[pos]
			pos++
			remaining--

			if stopAtSoftEOF && b == SoftEOF {
				return nil
			}
			if b == lineTerminator {
				break
			}
			if _, err := io.WriteString(w, table.DecodeByte(b)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// EncodeAsm converts Unicode assembler text to the HiSoft GEN binary form.
// Lines beginning with a decimal number keep it; unnumbered lines continue
// counting from the last number in steps of ten, starting at ten. A line
// number above 65535 aborts, as does a rune with no Spectrum
// representation (charset.ErrNotRepresentable).
func EncodeAsm(text string, opts AsmEncodeOptions) ([]byte, error) {
	table := charset.Lookup(charset.PlainNoTab)

	var buf bytes.Buffer
	if opts.PrependPlus3Dos {
		// Placeholder; rewritten below once the length is known.
		buf.Write(make([]byte, header.Plus3DosHeaderLength))
	}

	lineNumber := firstLineNumber
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRightFunc(scanner.Text(), unicode.IsSpace)

		if m := lineNumberPattern.FindStringSubmatch(line); m != nil {
			n, err := strconv.ParseUint(m[1], 10, 16)
			if err != nil {
				return nil, fmt.Errorf("line number %s exceeds %d", m[1], math.MaxUint16)
			}
			lineNumber = int(n)
			line = m[2]
		}
		if lineNumber > math.MaxUint16 {
			return nil, fmt.Errorf("line number %d exceeds %d", lineNumber, math.MaxUint16)
		}

		var numberBytes [2]byte
		binary.LittleEndian.PutUint16(numberBytes[:], uint16(lineNumber))
		buf.Write(numberBytes[:])
		for _, r := range line {
			b, err := table.EncodeRune(r)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			buf.WriteByte(b)
		}
		buf.WriteByte(lineTerminator)

		lineNumber += lineNumberStep
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if opts.AppendSoftEOF {
		buf.WriteByte(SoftEOF)
	}

	if opts.PrependPlus3Dos {
		payloadLength := buf.Len() - header.Plus3DosHeaderLength
		if opts.AppendSoftEOF {
			payloadLength--
		}
		p3 := header.NewPlus3DosHeader(0)
		p3.BasicHeader.SetCode(header.DefaultLoadAddress)
		p3.SetFileLength(uint32(payloadLength))
		copy(buf.Bytes()[:header.Plus3DosHeaderLength], p3.Encode())
	}

	return buf.Bytes(), nil
}
