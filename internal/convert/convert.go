// Package convert glues the codec packages to the file system: it opens
// and decodes input files, runs the requested listing codec, and writes
// the converted output plus any companion tape-header artifact.
package convert

import (
	"bytes"
	"fmt"
	"math"

	"golang.org/x/text/encoding/unicode"

	"github.com/zxkit/go-zx-conv/internal/charset"
	compression "github.com/zxkit/go-zx-conv/internal/common/compressionutil"
	"github.com/zxkit/go-zx-conv/internal/common/fsutil"
	"github.com/zxkit/go-zx-conv/internal/header"
	"github.com/zxkit/go-zx-conv/internal/listing"
	"github.com/zxkit/go-zx-conv/internal/logger"
)

// Options selects input/output files and conversion behavior for one call.
type Options struct {
	InputFile  string
	OutputFile string // empty: derived from InputFile

	// TapeHeaderFile is a companion header artifact: read to bound the
	// program body on Spectrum input, generated on Spectrum output.
	// Mutually exclusive with PrependPlus3Dos and UseSoftEOF; callers
	// enforce that at the flag layer.
	TapeHeaderFile string

	Use48KTokens       bool // bas2u: 48K keyword set instead of 128K
	IncludeLineNumbers bool // asm2u: prefix lines with their numbers
	PrependPlus3Dos    bool // u2asm: write a +3DOS header
	UseSoftEOF         bool // stop at (input) or append (output) soft-EOF
}

// utf8Sig encodes output text as UTF-8 with a BOM signature and strips the
// BOM from input text, matching the files the original tooling exchanged
// with editors on the PC side.
var utf8Sig = unicode.UTF8BOM

// BasicToUnicode converts a tokenized Sinclair BASIC file to Unicode text.
// The output file defaults to the input name with ".txt" appended.
func BasicToUnicode(opts Options) error {
	outputFile := opts.OutputFile
	if outputFile == "" {
		outputFile = opts.InputFile + ".txt"
	}

	data, err := readSpectrumFile(opts.InputFile)
	if err != nil {
		return err
	}

	decodeOpts := listing.BasicOptions{
		Variant:       charset.Tokens128,
		StopAtSoftEOF: opts.UseSoftEOF,
	}
	if opts.Use48KTokens {
		decodeOpts.Variant = charset.Tokens48
	}

	if opts.TapeHeaderFile != "" {
		raw, err := fsutil.ReadFile(opts.TapeHeaderFile)
		if err != nil {
			return fmt.Errorf("failed to read tape header file: %w", err)
		}
		tapeHeader := header.NewTapeHeader(header.TapeLayout, "", 0)
		if tapeHeader.Decode(raw) && tapeHeader.FileType == header.TypeProgram {
			decodeOpts.ProgLength = tapeHeader.ProgLength
			decodeOpts.HasProgLength = true
			logger.LogDebug("Program length taken from tape header", map[string]interface{}{
				"file":        opts.TapeHeaderFile,
				"prog_length": tapeHeader.ProgLength,
			})
		}
	}

	var text bytes.Buffer
	if err := listing.DecodeBasic(data, &text, decodeOpts); err != nil {
		return err
	}

	return writeUnicodeFile(outputFile, text.Bytes())
}

// AsmToUnicode converts a HiSoft GEN assembler file to Unicode text. The
// output file defaults to the input name with ".txt" appended.
func AsmToUnicode(opts Options) error {
	outputFile := opts.OutputFile
	if outputFile == "" {
		outputFile = opts.InputFile + ".txt"
	}

	data, err := readSpectrumFile(opts.InputFile)
	if err != nil {
		return err
	}

	var text bytes.Buffer
	err = listing.DecodeAsm(data, &text, listing.AsmDecodeOptions{
		IncludeLineNumbers: opts.IncludeLineNumbers,
		StopAtSoftEOF:      opts.UseSoftEOF,
	})
	if err != nil {
		return err
	}

	return writeUnicodeFile(outputFile, text.Bytes())
}

// UnicodeToAsm converts Unicode assembler text to the HiSoft GEN binary
// form. The output file defaults to the input name with ".asm" appended.
// When a tape header artifact is requested it is computed from the final
// output length and written as a separate file.
func UnicodeToAsm(opts Options) error {
	outputFile := opts.OutputFile
	if outputFile == "" {
		outputFile = opts.InputFile + ".asm"
	}

	raw, err := fsutil.ReadFile(opts.InputFile)
	if err != nil {
		return err
	}
	text, err := utf8Sig.NewDecoder().Bytes(raw)
	if err != nil {
		return fmt.Errorf("failed to decode input text: %w", err)
	}

	out, err := listing.EncodeAsm(string(text), listing.AsmEncodeOptions{
		PrependPlus3Dos: opts.PrependPlus3Dos,
		AppendSoftEOF:   opts.UseSoftEOF,
	})
	if err != nil {
		return err
	}

	if err := fsutil.WriteFile(outputFile, out, 0644); err != nil {
		return err
	}

	if opts.TapeHeaderFile != "" {
		if len(out) > math.MaxUint16 {
			return fmt.Errorf("output is %d bytes, too large for the tape header length field", len(out))
		}
		tapeHeader := header.NewTapeHeader(header.TapeLayout, fsutil.BaseName(outputFile), uint16(len(out)))
		tapeHeader.SetCode(header.DefaultLoadAddress)
		if err := fsutil.WriteFile(opts.TapeHeaderFile, tapeHeader.Encode(), 0644); err != nil {
			return fmt.Errorf("failed to write tape header file: %w", err)
		}
	}

	logger.LogDebug("Wrote Spectrum output", map[string]interface{}{
		"file":  outputFile,
		"bytes": len(out),
	})
	return nil
}

// readSpectrumFile loads a Spectrum binary input, transparently
// decompressing gzip/bzip2/xz containers.
func readSpectrumFile(path string) ([]byte, error) {
	data, err := fsutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if format := compression.DetectFormat(data); format != compression.FormatNone {
		logger.LogDebug("Decompressing input", map[string]interface{}{
			"file":   path,
			"format": format.String(),
		})
		return compression.Decompress(data)
	}
	return data, nil
}

// writeUnicodeFile writes converted text as UTF-8 with a BOM signature.
func writeUnicodeFile(path string, text []byte) error {
	encoded, err := utf8Sig.NewEncoder().Bytes(text)
	if err != nil {
		return fmt.Errorf("failed to encode output text: %w", err)
	}
	return fsutil.WriteFile(path, encoded, 0644)
}
