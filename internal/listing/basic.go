package listing

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zxkit/go-zx-conv/internal/charset"
	"github.com/zxkit/go-zx-conv/internal/header"
)

const (
	// numberMarker introduces the 5-byte binary form of a numeric
	// literal inside a BASIC line. The binary form duplicates the
	// preceding text form, so it is skipped, not emitted.
	numberMarker = 0x0E
	numberLength = 5

	// lineIsVariable: a line number at or above this value is the start
	// of the variables region, not a program line.
	lineIsVariable = 0x4000
)

// BasicOptions controls DecodeBasic.
type BasicOptions struct {
	// Variant selects the keyword table; Tokens128 by default.
	Variant charset.Variant

	// StopAtSoftEOF terminates on a soft-EOF byte. Detection can give
	// false positives (0x1A is legal inside binary literals), so it is
	// off by default and force-disabled when a +3DOS header supplies a
	// trusted length.
	StopAtSoftEOF bool

	// ProgLength bounds the program body when HasProgLength is set,
	// typically taken from an external tape header's Program record.
	ProgLength    uint16
	HasProgLength bool
}

// DecodeBasic converts a tokenized Sinclair BASIC file to Unicode text. A
// leading +3DOS header, when present and valid, is consumed and bounds the
// payload; an embedded Program record additionally bounds the program body
// and disables the variables-region heuristic. Truncated input ends the
// stream cleanly.
func DecodeBasic(data []byte, w io.Writer, opts BasicOptions) error {
	table := charset.Lookup(opts.Variant)

	remaining := maxPayload
	progKnown := opts.HasProgLength
	if progKnown {
		remaining = min(remaining, int(opts.ProgLength))
	}
	stopAtSoftEOF := opts.StopAtSoftEOF

	payload, p3, found := stripPlus3Dos(data)
	if found {
		data = payload
		remaining = min(remaining, int(p3.PayloadLength()))
		if !p3.BasicHeader.IsZeroed() && p3.BasicHeader.FileType == header.TypeProgram {
			remaining = min(remaining, int(p3.BasicHeader.ProgLength))
			progKnown = true
		}
		// The header gives the exact length: scanning for soft-EOF
		// would be error-prone.
		stopAtSoftEOF = false
	}

	pos := 0
	for remaining > 2 {
		if pos+4 > len(data) {
			return nil
		}
		lineNumber := binary.BigEndian.Uint16(data[pos : pos+2])
		// The little-endian length at data[pos+2:pos+4] is advisory
		// only; the line is parsed to its terminator instead.
		first, second := data[pos], data[pos+1]
		pos += 4
		remaining -= 4

		if stopAtSoftEOF && (first == SoftEOF || second == SoftEOF) {
			return nil
		}
		if !progKnown && lineNumber >= lineIsVariable {
			return nil
		}

		if _, err := fmt.Fprintf(w, "%4d ", lineNumber); err != nil {
			return err
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
			if b == numberMarker {
				pos += numberLength
				remaining -= numberLength
				continue
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
