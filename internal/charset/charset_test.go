package charset

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeByteSpecials(t *testing.T) {
	tests := []struct {
		name     string
		variant  Variant
		b        byte
		expected string
	}{
		{"print comma is tab", Tokens128, 0x06, "\t"},
		{"carriage return is newline", Tokens128, 0x0D, "\n"},
		{"up arrow", Tokens128, 0x5E, "↑"},
		{"pound sign", Tokens128, 0x60, "£"},
		{"copyright", Tokens128, 0x7F, "©"},
		{"full block graphic", Tokens128, 0x8F, "█"},
		{"ascii passthrough", Tokens128, 'A', "A"},
		{"print token", Tokens128, 0xF5, " PRINT "},
		{"spectrum token on 128k", Tokens128, 0xA3, " SPECTRUM "},
		{"play token on 128k", Tokens128, 0xA4, " PLAY "},
		{"udg t on 48k", Tokens48, 0xA3, "\U0001F183"},
		{"udg u on 48k", Tokens48, 0xA4, "\U0001F184"},
		{"udg a", Tokens128, 0x90, "\U0001F170"},
		{"open hash token keeps spacing", Tokens128, 0xD3, " OPEN #"},
		{"relational token has no spacing", Tokens128, 0xC7, "<="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Lookup(tt.variant).DecodeByte(tt.b))
		})
	}
}

func TestPlainNoTabSuppressesTab(t *testing.T) {
	plain := Lookup(PlainNoTab)

	// 0x06 is not translated to tab; it passes through as a raw byte.
	assert.Equal(t, "\x06", plain.DecodeByte(0x06))

	// A tab encodes to itself, not to the PRINT comma byte.
	b, err := plain.EncodeRune('\t')
	require.NoError(t, err)
	assert.Equal(t, byte(0x09), b)

	// The keyword variants keep the historical mapping.
	b, err = Lookup(Tokens128).EncodeRune('\t')
	require.NoError(t, err)
	assert.Equal(t, byte(0x06), b)
}

func TestUDGAliases(t *testing.T) {
	table := Lookup(Tokens128)

	// Every enclosed-alphanumeric block encodes letter A to UDG byte 0x90.
	for _, r := range []rune{'Ⓐ', 'ⓐ', '\U0001F130', '\U0001F150', '\U0001F170'} {
		b, err := table.EncodeRune(r)
		require.NoError(t, err)
		assert.Equal(t, byte(0x90), b, "alias %q", r)
	}

	// The decoder always picks the negative squared form.
	assert.Equal(t, "\U0001F170", table.DecodeByte(0x90))
}

func TestRoundTrip(t *testing.T) {
	// Every explicitly mapped byte that decodes to a single code point
	// must encode back to itself; keyword tokens are excluded since a
	// decoded keyword string is never re-tokenized.
	for _, variant := range []Variant{Tokens128, Tokens48, PlainNoTab} {
		table := Lookup(variant)
		for i := 0; i < 256; i++ {
			b := byte(i)
			if !table.IsMapped(b) {
				continue
			}
			s := table.DecodeByte(b)
			if utf8.RuneCountInString(s) != 1 {
				continue
			}
			r, _ := utf8.DecodeRuneInString(s)
			got, err := table.EncodeRune(r)
			require.NoError(t, err, "variant %s byte %#02x", variant, b)
			assert.Equal(t, b, got, "variant %s byte %#02x", variant, b)
		}
	}
}

func TestEncodeFallback(t *testing.T) {
	table := Lookup(Tokens128)

	// Latin-1 text passes through the fallback codec.
	b, err := table.EncodeRune('é')
	require.NoError(t, err)
	assert.Equal(t, byte(0xE9), b)

	// Beyond Latin-1 there is no representation.
	_, err = table.EncodeRune('Ж')
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRepresentable)
}

func TestEncodeString(t *testing.T) {
	got, err := Lookup(PlainNoTab).EncodeString("LD A,1")
	require.NoError(t, err)
	assert.Equal(t, []byte("LD A,1"), got)

	_, err = Lookup(PlainNoTab).EncodeString("ЖДИ")
	assert.ErrorIs(t, err, ErrNotRepresentable)
}
