package transcode

import "unicode/utf8"

// Text is anything that can be walked byte by byte as UTF-8.
type Text interface {
	~string | ~[]byte
}

// minRune holds the smallest code point that may be encoded with
// the given number of continuation bytes.
var minRune = [4]rune{0, 0x80, 0x800, 0x10000}

// DecodeRune reads the code point starting at s[pos] and returns it along
// with the number of bytes it occupies. pos must be a code point boundary.
//
// Malformed sequences decode as (utf8.RuneError, 1). A well-formed U+FFFD
// is still reported with its real width of 3, so callers can tell them apart.
func DecodeRune[T Text](s T, pos int) (rune, int) {
	lead := s[pos]
	if lead < utf8.RuneSelf {
		return rune(lead), 1
	}

	// a lone continuation byte cannot start a code point
	if lead&0x40 == 0 {
		return utf8.RuneError, 1
	}

	var (
		r    rune
		cont int
	)

	for lead&0x40 != 0 {
		cont++
		if cont > 3 || pos+cont >= len(s) {
			return utf8.RuneError, 1
		}

		next := s[pos+cont]
		if next&0xC0 != 0x80 {
			return utf8.RuneError, 1
		}

		r = r<<6 | rune(next&0x3F)
		lead <<= 1
	}

	r |= rune(lead&0x7F) << (cont * 5)

	if r < minRune[cont] || !utf8.ValidRune(r) {
		return utf8.RuneError, 1
	}

	return r, cont + 1
}

// Count returns the number of code points in s.
//
// It decodes every code point one by one, which is fine for sizing
// constants once but not meant for hot loops.
func Count[T Text](s T) int {
	n := 0
	for pos := 0; pos < len(s); n++ {
		_, size := DecodeRune(s, pos)
		pos += size
	}

	return n
}
