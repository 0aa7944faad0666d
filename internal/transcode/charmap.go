package transcode

import "unicode/utf8"

// Lookup returns the LCD byte for r. ok is false when the character ROM
// has no glyph for r.
//
// The byte values follow the Cyrillic character ROM of HD44780 compatible
// controllers. Letters that look the same as a Latin letter reuse the
// Latin glyph instead of a dedicated code.
func Lookup(r rune) (b byte, ok bool) {
	if r >= 0 && r < utf8.RuneSelf {
		return byte(r), true
	}

	switch r {
	// uppercase
	case 'А':
		return 'A', true
	case 'Б':
		return 0xA0, true
	case 'В':
		return 'B', true
	case 'Г':
		return 0xA1, true
	case 'Д':
		return 0xE0, true
	case 'Е':
		return 'E', true
	case 'Ё':
		return 0xA2, true
	case 'Ж':
		return 0xA3, true
	case 'З':
		return 0xA4, true
	case 'И':
		return 0xA5, true
	case 'Й':
		return 0xA6, true
	case 'К':
		return 'K', true
	case 'Л':
		return 0xA7, true
	case 'М':
		return 'M', true
	case 'Н':
		return 'H', true
	case 'О':
		return 'O', true
	case 'П':
		return 0xA8, true
	case 'Р':
		return 'P', true
	case 'С':
		return 'C', true
	case 'Т':
		return 'T', true
	case 'У':
		return 0xA9, true
	case 'Ф':
		return 0xAA, true
	case 'Х':
		return 'X', true
	case 'Ц':
		return 0xE1, true
	case 'Ч':
		return 0xAB, true
	case 'Ш':
		return 0xAC, true
	case 'Щ':
		return 0xE2, true
	case 'Ъ':
		return 0xAD, true
	case 'Ы':
		return 0xAE, true
	case 'Ь':
		// TODO: check against a real display, the ROM may have a dedicated glyph.
		return 'b', true
	case 'Э':
		return 0xAF, true
	case 'Ю':
		return 0xB0, true
	case 'Я':
		return 0xB1, true

	// lowercase
	case 'а':
		return 'a', true
	case 'б':
		return 0xB2, true
	case 'в':
		return 0xB3, true
	case 'г':
		return 0xB4, true
	case 'д':
		return 0xE3, true
	case 'е':
		return 'e', true
	case 'ё':
		return 0xB5, true
	case 'ж':
		return 0xB6, true
	case 'з':
		return 0xB7, true
	case 'и':
		return 0xB8, true
	case 'й':
		return 0xB9, true
	case 'к':
		return 0xBA, true
	case 'л':
		return 0xBB, true
	case 'м':
		return 0xBC, true
	case 'н':
		return 0xBD, true
	case 'о':
		return 'o', true
	case 'п':
		return 0xBE, true
	case 'р':
		return 'p', true
	case 'с':
		return 'c', true
	case 'т':
		return 0xBF, true
	case 'у':
		return 'y', true
	case 'ф':
		return 0xE4, true
	case 'х':
		return 'x', true
	case 'ц':
		return 0xE5, true
	case 'ч':
		return 0xC0, true
	case 'ш':
		return 0xC1, true
	case 'щ':
		return 0xE6, true
	case 'ъ':
		return 0xC2, true
	case 'ы':
		return 0xC3, true
	case 'ь':
		return 0xC4, true
	case 'э':
		return 0xC5, true
	case 'ю':
		return 0xC6, true
	case 'я':
		return 0xC7, true
	}

	return 0, false
}

// reverse is the byte to code point direction of Lookup. Only the
// letters with a dedicated ROM code land above 0x7F.
var reverse [256]rune

func init() {
	for b := range reverse {
		if b < utf8.RuneSelf {
			reverse[b] = rune(b)
		} else {
			reverse[b] = utf8.RuneError
		}
	}

	// Ё/ё sit outside the contiguous А..я block
	for r := rune(0x0400); r <= 0x045F; r++ {
		if b, ok := Lookup(r); ok && b >= utf8.RuneSelf {
			reverse[b] = r
		}
	}
}

// Reverse returns the character shown for the LCD byte b. ASCII bytes come
// back as ASCII, so lookalike Cyrillic letters decode as their Latin twin.
// Bytes without a glyph in the table decode as utf8.RuneError.
func Reverse(b byte) rune {
	return reverse[b]
}
