package transcode

import "unicode/utf8"

// Bounds selects how Transcode treats the destination buffer.
type Bounds int

const (
	// Exact expects len(dst) == Count(s), as computed ahead of time.
	// Any failure panics with an *Error.
	Exact Bounds = iota
	// Capped writes as much as fits and reports how far it got.
	Capped
)

func (b Bounds) String() string {
	switch b {
	case Exact:
		return "exact"
	case Capped:
		return "capped"
	}

	return "unknown"
}

func (b Bounds) fail(err *Error) (int, error) {
	if b == Exact {
		panic(err)
	}

	return err.Written, err
}

// Transcode maps every code point of s into dst, left to right, and
// returns the number of bytes written.
//
// With Capped the returned count is always the number of bytes written
// before the first failure; dst is never written past len(dst). With Exact
// the result is either len(dst) and a nil error or a panic.
func Transcode(dst []byte, s string, bounds Bounds) (int, error) {
	written := 0

	for pos := 0; pos < len(s); {
		r, size := DecodeRune(s, pos)
		if r == utf8.RuneError && size == 1 {
			return bounds.fail(&Error{Err: ErrInvalidUTF8, Offset: pos, Written: written})
		}

		if written >= len(dst) {
			return bounds.fail(&Error{Err: ErrShortBuffer, Rune: r, Offset: pos, Written: written})
		}

		b, ok := Lookup(r)
		if !ok {
			return bounds.fail(&Error{Err: ErrUnmappable, Rune: r, Offset: pos, Written: written})
		}

		dst[written] = b
		written++
		pos += size
	}

	if bounds == Exact && written != len(dst) {
		return bounds.fail(&Error{Err: ErrLengthMismatch, Written: written})
	}

	return written, nil
}
