package lcdrus

import (
	"slices"

	"github.com/fudanchii/lcdrus/internal/transcode"
)

var (
	ErrUnmappable     = transcode.ErrUnmappable
	ErrShortBuffer    = transcode.ErrShortBuffer
	ErrInvalidUTF8    = transcode.ErrInvalidUTF8
	ErrLengthMismatch = transcode.ErrLengthMismatch
)

// Error describes where transcoding stopped and how many bytes made it
// into the output before that.
type Error = transcode.Error

// Length returns the number of code points in s, which is also the number
// of LCD bytes s encodes to.
//
// It walks the whole string; use it to size buffers, not inside render loops.
func Length(s string) int {
	return transcode.Count(s)
}

// Encode writes the LCD encoding of s into dst and returns the number of
// bytes written.
//
// It stops at the first character that has no glyph or does not fit into
// dst. In that case n is the number of bytes written before the failure and
// err is an *Error wrapping ErrUnmappable, ErrShortBuffer or ErrInvalidUTF8.
// Nothing is written past len(dst).
func Encode(dst []byte, s string) (n int, err error) {
	return transcode.Transcode(dst, s, transcode.Capped)
}

// EncodeExact writes the LCD encoding of s into dst, which must be exactly
// Length(s) bytes long. It panics with an *Error if dst has the wrong size or
// s cannot be encoded.
func EncodeExact(dst []byte, s string) {
	_, _ = transcode.Transcode(dst, s, transcode.Exact)
}

// Literal returns the LCD encoding of s. It panics if s cannot be encoded,
// so it is meant for text fixed at compile time, typically in a package
// level var.
func Literal(s string) []byte {
	out := make([]byte, Length(s))
	EncodeExact(out, s)

	return out
}

// AppendEncode appends the LCD encoding of s to dst. On failure the bytes
// encoded before the failing character are still appended.
func AppendEncode(dst []byte, s string) ([]byte, error) {
	start, need := len(dst), Length(s)
	dst = slices.Grow(dst, need)
	n, err := Encode(dst[start:start+need], s)

	return dst[:start+n], err
}
