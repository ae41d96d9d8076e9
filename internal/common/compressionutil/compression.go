// Package compression transparently decompresses converter input. Files
// pulled out of emulator archives are frequently shipped gzip, bzip2 or xz
// compressed; the format is sniffed from magic bytes, never from the file
// name.
package compression

import (
	"bytes"
	"fmt"
	"io"
)

// Format identifies a supported compression container.
type Format int

const (
	FormatNone Format = iota
	FormatGZIP
	FormatBZIP2
	FormatXZ
)

func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatGZIP:
		return "gzip"
	case FormatBZIP2:
		return "bzip2"
	case FormatXZ:
		return "xz"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

var (
	magicGZIP  = []byte{0x1F, 0x8B}
	magicBZIP2 = []byte{'B', 'Z', 'h'}
	magicXZ    = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}
)

// DetectFormat sniffs the compression format from leading magic bytes.
func DetectFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicGZIP):
		return FormatGZIP
	case bytes.HasPrefix(data, magicBZIP2):
		return FormatBZIP2
	case bytes.HasPrefix(data, magicXZ):
		return FormatXZ
	default:
		return FormatNone
	}
}

// Decompress returns data decompressed according to its detected format.
// Uncompressed data is returned unchanged.
func Decompress(data []byte) ([]byte, error) {
	format := DetectFormat(data)
	if format == FormatNone {
		return data, nil
	}

	reader, err := newReader(format, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s stream: %w", format, err)
	}
	defer reader.Close()

	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s stream: %w", format, err)
	}
	return out, nil
}

func newReader(format Format, r io.Reader) (io.ReadCloser, error) {
	switch format {
	case FormatGZIP:
		return newGZIPReader(r)
	case FormatBZIP2:
		return newBZIP2Reader(r)
	case FormatXZ:
		return newXZReader(r)
	default:
		return nil, fmt.Errorf("unsupported compression format: %s", format)
	}
}
