package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
)

func newBZIP2Reader(r io.Reader) (io.ReadCloser, error) {
	return bzip2.NewReader(r, nil)
}

// CompressBZIP2 compresses data using BZIP2 format.
func CompressBZIP2(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	bzip2Writer, err := bzip2.NewWriter(&buf, nil)
	if err != nil {
		return nil, err
	}

	if _, err := bzip2Writer.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress data: %w", err)
	}
	if err := bzip2Writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish bzip2 stream: %w", err)
	}
	return buf.Bytes(), nil
}
