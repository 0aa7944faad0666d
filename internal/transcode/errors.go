package transcode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnmappable     = errors.New("lcd: error, character has no glyph in the LCD character ROM")
	ErrShortBuffer    = errors.New("lcd: error, output buffer is too small")
	ErrInvalidUTF8    = errors.New("lcd: error, input is not valid UTF-8")
	ErrLengthMismatch = errors.New("lcd: error, output buffer length does not match the input length")
)

// Error reports where a transcoding pass stopped.
type Error struct {
	// Err is one of the sentinel errors above.
	Err error
	// Rune is the character being transcoded when the pass stopped.
	// It is zero for ErrLengthMismatch.
	Rune rune
	// Offset is the byte offset of Rune in the input.
	Offset int
	// Written is the number of bytes written before the failure.
	Written int
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.Err.Error())

	switch {
	case errors.Is(e.Err, ErrLengthMismatch):
		fmt.Fprintf(&b, " (%d bytes written)", e.Written)
	case errors.Is(e.Err, ErrInvalidUTF8):
		fmt.Fprintf(&b, " at byte %d (%d bytes written)", e.Offset, e.Written)
	default:
		fmt.Fprintf(&b, ": %q (U+%04X) at byte %d (%d bytes written)", e.Rune, e.Rune, e.Offset, e.Written)
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
