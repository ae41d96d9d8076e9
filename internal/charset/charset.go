// Package charset translates between the ZX Spectrum 8-bit character set
// (including tokenized BASIC keywords) and Unicode.
//
// Translation is many-to-one Unicode->Spectrum and deterministic
// Spectrum->Unicode. Only single-codepoint mappings round-trip; a decoded
// keyword string is never re-tokenized back into its token byte.
package charset

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// ErrNotRepresentable reports a rune with no Spectrum byte representation.
var ErrNotRepresentable = errors.New("character not representable in the ZX Spectrum character set")

// Variant selects one of the three translation tables.
type Variant int

const (
	// Tokens128 uses the 128K/+2/+3 keyword set.
	Tokens128 Variant = iota
	// Tokens48 uses the 48K set, where bytes 0xA3/0xA4 are the UDG
	// glyphs T and U rather than the SPECTRUM/PLAY keywords.
	Tokens48
	// PlainNoTab is the 48K set with the 0x06->tab mapping removed, so
	// tab bytes pass through untranslated. Used for assembler sources,
	// which use tab for itself and are unlikely to contain tokens.
	PlainNoTab
)

func (v Variant) String() string {
	switch v {
	case Tokens128:
		return "128k"
	case Tokens48:
		return "48k"
	case PlainNoTab:
		return "plain"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Table is an immutable byte<->Unicode translation table. Tables are built
// once at init and shared; all methods are safe for concurrent use.
type Table struct {
	variant Variant
	decode  map[byte]string
	noTab   bool
}

var tables [3]*Table

func init() {
	t128 := make(map[byte]string, len(spectrum128ToUnicode)+udgCount128)
	for b, s := range spectrum128ToUnicode {
		t128[b] = s
	}
	for i := 0; i < udgCount128; i++ {
		t128[byte(udgFirstByte+i)] = string(rune(udgNegativeSquared + i))
	}

	t48 := make(map[byte]string, len(t128)+2)
	for b, s := range t128 {
		t48[b] = s
	}
	for i := udgCount128; i < udgCount48; i++ {
		t48[byte(udgFirstByte+i)] = string(rune(udgNegativeSquared + i))
	}

	plain := make(map[byte]string, len(t48))
	for b, s := range t48 {
		plain[b] = s
	}
	delete(plain, 0x06)

	tables = [3]*Table{
		{variant: Tokens128, decode: t128},
		{variant: Tokens48, decode: t48},
		{variant: PlainNoTab, decode: plain, noTab: true},
	}
}

// Lookup returns the shared table for a variant.
func Lookup(v Variant) *Table {
	return tables[v]
}

// Variant returns the variant this table was built for.
func (t *Table) Variant() Variant {
	return t.variant
}

// IsMapped reports whether the table has an explicit mapping for b, as
// opposed to the Latin-1 passthrough fallback.
func (t *Table) IsMapped(b byte) bool {
	_, ok := t.decode[b]
	return ok
}

// DecodeByte translates one Spectrum byte into a Unicode string. Token
// bytes expand to multi-character keyword strings; unmapped bytes pass
// through as their Latin-1 code point.
func (t *Table) DecodeByte(b byte) string {
	if s, ok := t.decode[b]; ok {
		return s
	}
	return string(charmap.ISO8859_1.DecodeByte(b))
}

// EncodeRune translates one Unicode rune into a Spectrum byte. Unmapped
// runes fall back to the Latin-1 codec and fail with ErrNotRepresentable
// when they have no single-byte form.
func (t *Table) EncodeRune(r rune) (byte, error) {
	if !(t.noTab && r == '\t') {
		if b, ok := unicodeToSpectrum[r]; ok {
			return b, nil
		}
	}
	if b, ok := charmap.ISO8859_1.EncodeRune(r); ok {
		return b, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrNotRepresentable, r)
}

// EncodeString translates a string into Spectrum bytes, one byte per rune.
func (t *Table) EncodeString(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, err := t.EncodeRune(r)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
