package charset

// Translation data for the ZX Spectrum character set.
//
// The byte->Unicode direction follows the 128K/+2/+3 machines; the 48K
// machines keep bytes 0xA3/0xA4 as the UDG glyphs T and U instead of the
// SPECTRUM/PLAY keywords. Dual-byte control sequences (INK, PAPER, ...)
// are not translated.
// https://en.wikipedia.org/wiki/ZX_Spectrum_character_set

// spectrum128ToUnicode maps single Spectrum bytes to Unicode strings.
// Keyword tokens carry the exact spacing the ROM prints for CHR$ (c).
var spectrum128ToUnicode = map[byte]string{
	0x06: "\t", // PRINT comma
	0x0D: "\n",
	0x5E: "↑", // UPWARDS ARROW
	0x60: "£", // POUND SIGN
	0x7F: "©", // COPYRIGHT SIGN

	// Spectrum block graphics = Unicode Block Elements
	0x80: "⠀", // BRAILLE PATTERN BLANK
	0x81: "▝", // QUADRANT UPPER RIGHT
	0x82: "▘", // QUADRANT UPPER LEFT
	0x83: "▀", // UPPER HALF BLOCK
	0x84: "▗", // QUADRANT LOWER RIGHT
	0x85: "▐", // RIGHT HALF BLOCK
	0x86: "▚", // QUADRANT UPPER LEFT AND LOWER RIGHT
	0x87: "▜", // QUADRANT UPPER LEFT AND UPPER RIGHT AND LOWER RIGHT
	0x88: "▖", // QUADRANT LOWER LEFT
	0x89: "▞", // QUADRANT UPPER RIGHT AND LOWER LEFT
	0x8A: "▌", // LEFT HALF BLOCK
	0x8B: "▛", // QUADRANT UPPER LEFT AND UPPER RIGHT AND LOWER LEFT
	0x8C: "▄", // LOWER HALF BLOCK
	0x8D: "▟", // QUADRANT UPPER RIGHT AND LOWER LEFT AND LOWER RIGHT
	0x8E: "▙", // QUADRANT UPPER LEFT AND LOWER LEFT AND LOWER RIGHT
	0x8F: "█", // FULL BLOCK

	// Keyword tokens, 128K/+2/+3 set
	0xA3: " SPECTRUM ", // UDG T on 48K
	0xA4: " PLAY ",     // UDG U on 48K
	0xA5: "RND",
	0xA6: "INKEY$",
	0xA7: "PI",
	0xA8: "FN ",
	0xA9: "POINT ",
	0xAA: "SCREEN$ ",
	0xAB: "ATTR ",
	0xAC: "AT ",
	0xAD: "TAB ",
	0xAE: "VAL$ ",
	0xAF: "CODE ",
	0xB0: "VAL ",
	0xB1: "LEN ",
	0xB2: "SIN ",
	0xB3: "COS ",
	0xB4: "TAN ",
	0xB5: "ASN ",
	0xB6: "ACS ",
	0xB7: "ATN ",
	0xB8: "LN ",
	0xB9: "EXP ",
	0xBA: "INT ",
	0xBB: "SQR ",
	0xBC: "SGN ",
	0xBD: "ABS ",
	0xBE: "PEEK ",
	0xBF: "IN ",
	0xC0: "USR ",
	0xC1: "STR$ ",
	0xC2: "CHR$ ",
	0xC3: "NOT ",
	0xC4: "BIN ",
	0xC5: " OR ",
	0xC6: " AND ",
	0xC7: "<=",
	0xC8: ">=",
	0xC9: "<>",
	0xCA: " LINE ",
	0xCB: " THEN ",
	0xCC: " TO ",
	0xCD: " STEP ",
	0xCE: " DEF FN ",
	0xCF: " CAT ",
	0xD0: " FORMAT ",
	0xD1: " MOVE ",
	0xD2: " ERASE ",
	0xD3: " OPEN #",
	0xD4: " CLOSE #",
	0xD5: " MERGE ",
	0xD6: " VERIFY ",
	0xD7: " BEEP ",
	0xD8: " CIRCLE ",
	0xD9: " INK ",
	0xDA: " PAPER ",
	0xDB: " FLASH ",
	0xDC: " BRIGHT ",
	0xDD: " INVERSE ",
	0xDE: " OVER ",
	0xDF: " OUT ",
	0xE0: " LPRINT ",
	0xE1: " LLIST ",
	0xE2: " STOP ",
	0xE3: " READ ",
	0xE4: " DATA ",
	0xE5: " RESTORE ",
	0xE6: " NEW ",
	0xE7: " BORDER ",
	0xE8: " CONTINUE ",
	0xE9: " DIM ",
	0xEA: " REM ",
	0xEB: " FOR ",
	0xEC: " GO TO ",
	0xED: " GO SUB ",
	0xEE: " INPUT ",
	0xEF: " LOAD ",
	0xF0: " LIST ",
	0xF1: " LET ",
	0xF2: " PAUSE ",
	0xF3: " NEXT ",
	0xF4: " POKE ",
	0xF5: " PRINT ",
	0xF6: " PLOT ",
	0xF7: " RUN ",
	0xF8: " SAVE ",
	0xF9: " RANDOMIZE ",
	0xFA: " IF ",
	0xFB: " CLS ",
	0xFC: " DRAW ",
	0xFD: " CLEAR ",
	0xFE: " RETURN ",
	0xFF: " COPY ",
}

// UDG bytes 0x90..0xA2 (0x90..0xA4 on 48K) decode to the negative squared
// letters so that reverse translation is possible.
const (
	udgFirstByte = 0x90

	udgCircledCapital    = 0x24B6  // CIRCLED LATIN CAPITAL LETTER A
	udgCircledSmall      = 0x24D0  // CIRCLED LATIN SMALL LETTER A
	udgSquaredCapital    = 0x1F130 // SQUARED LATIN CAPITAL LETTER A
	udgNegativeCircled   = 0x1F150 // NEGATIVE CIRCLED LATIN CAPITAL LETTER A
	udgNegativeSquared   = 0x1F170 // NEGATIVE SQUARED LATIN CAPITAL LETTER A
	udgCount128          = 19      // A..S on the 128K set
	udgCount48           = 21      // A..U on the 48K set, overriding two tokens
)

// unicodeToSpectrum maps Unicode code points back to Spectrum bytes. The
// map is many-to-one: every enclosed-alphanumeric block aliases to the UDG
// bytes, and several Unicode space variants alias to 0x80.
var unicodeToSpectrum = map[rune]byte{
	'\t':     0x06, // PRINT comma
	'\n':     0x0D,
	'↑': 0x5E,
	'£': 0x60,
	'©': 0x7F,

	' ': 0x80, // NO-BREAK SPACE
	' ': 0x80, // EN SPACE
	' ': 0x80, // EM SPACE
	'⠀': 0x80, // BRAILLE PATTERN BLANK
	'　': 0x80, // IDEOGRAPHIC SPACE
	'▝': 0x81,
	'▘': 0x82,
	'▀': 0x83,
	'▗': 0x84,
	'▐': 0x85,
	'▚': 0x86,
	'▜': 0x87,
	'▖': 0x88,
	'▞': 0x89,
	'▌': 0x8A,
	'▛': 0x8B,
	'▄': 0x8C,
	'▟': 0x8D,
	'▙': 0x8E,
	'█': 0x8F,
}

func init() {
	// UDG aliases: Ⓐ/ⓐ/🄰/🅐/🅰 all encode to 0x90 and so on up the
	// alphabet, covering A..U (0x90..0xA4).
	for _, base := range []rune{
		udgCircledCapital,
		udgCircledSmall,
		udgSquaredCapital,
		udgNegativeCircled,
		udgNegativeSquared,
	} {
		for i := 0; i < udgCount48; i++ {
			unicodeToSpectrum[base+rune(i)] = byte(udgFirstByte + i)
		}
	}
}
