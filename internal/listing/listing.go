// Package listing streams line-numbered Spectrum sources between their
// binary on-disk form and Unicode text: tokenized Sinclair BASIC
// (Spectrum->Unicode) and HiSoft GEN assembler (both directions).
package listing

import (
	"github.com/zxkit/go-zx-conv/internal/header"
)

const (
	// SoftEOF is the inline CP/M end-of-file marker.
	SoftEOF = 0x1A

	// lineTerminator ends every program or assembler line.
	lineTerminator = '\r'

	// maxPayload bounds reading when no header supplies a length: 32Mb,
	// the maximum file length between +3DOS and CP/M per the +3 manual
	// ("CP/M File compatibility").
	maxPayload = 32 * 1024 * 1024
)

// stripPlus3Dos detects a leading +3DOS header. When present and valid it
// returns the payload with the header removed, the decoded header and true;
// otherwise the input unchanged.
func stripPlus3Dos(data []byte) ([]byte, header.Plus3DosHeader, bool) {
	var h header.Plus3DosHeader
	if len(data) >= header.Plus3DosHeaderLength && h.Decode(data[:header.Plus3DosHeaderLength]) {
		return data[header.Plus3DosHeaderLength:], h, true
	}
	return data, h, false
}
