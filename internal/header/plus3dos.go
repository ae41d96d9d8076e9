package header

import (
	"bytes"
	"encoding/binary"
)

// Plus3DosHeader is the 128-byte record at the start of every +3DOS file,
// as documented in the ZX Spectrum +3 manual ("Guide to +3DOS", "File
// headers"). It embeds an 8-byte +3 BASIC header at bytes [15:23).
type Plus3DosHeader struct {
	Issue   byte
	Version byte

	// TotalLength is the file length in bytes including this header.
	TotalLength uint32

	// BasicHeader always uses Plus3Layout.
	BasicHeader TapeHeader
}

const (
	// Plus3DosHeaderLength is the fixed size of the encoded record.
	Plus3DosHeaderLength = 128

	basicHeaderOffset = 15
)

// plus3DosSignature is the 9-byte record signature, "PLUS3DOS" followed by
// the soft-EOF byte.
var plus3DosSignature = []byte("PLUS3DOS\x1a")

// NewPlus3DosHeader returns a header for a payload of fileLength bytes,
// with a zeroed embedded BASIC header.
func NewPlus3DosHeader(fileLength uint32) Plus3DosHeader {
	return Plus3DosHeader{
		Issue:       1,
		Version:     0,
		TotalLength: Plus3DosHeaderLength + fileLength,
		BasicHeader: NewTapeHeader(Plus3Layout, "", 0),
	}
}

// SetFileLength records a payload of fileLength bytes, mirroring the value
// into the embedded BASIC header when that header is in use.
func (h *Plus3DosHeader) SetFileLength(fileLength uint32) {
	h.TotalLength = Plus3DosHeaderLength + fileLength
	if !h.BasicHeader.IsZeroed() {
		h.BasicHeader.FileLength = uint16(fileLength)
	}
}

// PayloadLength returns the file length excluding the header itself.
func (h *Plus3DosHeader) PayloadLength() uint32 {
	if h.TotalLength < Plus3DosHeaderLength {
		return 0
	}
	return h.TotalLength - Plus3DosHeaderLength
}

// Checksum is the +3DOS header checksum: the sum of the given bytes
// modulo 256.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// Encode emits the 128-byte record. The checksum byte is always
// recomputed over the preceding 127 bytes.
func (h *Plus3DosHeader) Encode() []byte {
	buf := make([]byte, 0, Plus3DosHeaderLength)
	buf = append(buf, plus3DosSignature...)
	buf = append(buf, h.Issue, h.Version)
	buf = binary.LittleEndian.AppendUint32(buf, h.TotalLength)
	buf = append(buf, h.BasicHeader.Encode()...)
	for len(buf) < Plus3DosHeaderLength-1 {
		buf = append(buf, 0x00)
	}
	return append(buf, Checksum(buf))
}

// Decode parses a 128-byte record, verifying length, signature, checksum
// and the embedded BASIC header before accepting it. The receiver is left
// untouched when any check fails.
func (h *Plus3DosHeader) Decode(data []byte) bool {
	if len(data) != Plus3DosHeaderLength {
		return false
	}
	if !bytes.Equal(data[:len(plus3DosSignature)], plus3DosSignature) {
		return false
	}
	if Checksum(data[:Plus3DosHeaderLength-1]) != data[Plus3DosHeaderLength-1] {
		return false
	}

	basic := NewTapeHeader(Plus3Layout, "", 0)
	if !basic.Decode(data[basicHeaderOffset : basicHeaderOffset+Plus3HeaderLength]) {
		return false
	}

	h.Issue = data[9]
	h.Version = data[10]
	h.TotalLength = binary.LittleEndian.Uint32(data[11:15])
	h.BasicHeader = basic
	return true
}
