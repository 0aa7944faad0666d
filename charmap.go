package lcdrus

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/fudanchii/lcdrus/internal/transcode"
)

// Charmap is the LCD character set as an encoding.Encoding, for use with
// transform.NewWriter, encoding.Encoder.String and friends.
//
// The encoder fails on the first character without a glyph with an *Error
// wrapping ErrUnmappable; it does not implement the replacement protocol,
// so encoding.ReplaceUnsupported cannot paper over it. Offsets in that
// error are relative to the chunk being transformed.
//
// The decoder turns LCD bytes back into the characters shown on glass:
// Cyrillic letters sharing a Latin glyph come back Latin, and bytes with no
// glyph in the table come back as utf8.RuneError.
var Charmap encoding.Encoding = lcdCharmap{}

type lcdCharmap struct{}

func (lcdCharmap) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: lcdDecoder{}}
}

func (lcdCharmap) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: lcdEncoder{}}
}

func (lcdCharmap) String() string {
	return "HD44780 Cyrillic"
}

type lcdEncoder struct {
	transform.NopResetter
}

func (lcdEncoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		// wait for the rest of a code point split across writes
		if src[nSrc] >= utf8.RuneSelf && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		r, size := transcode.DecodeRune(src, nSrc)
		if r == utf8.RuneError && size == 1 {
			return nDst, nSrc, &Error{Err: ErrInvalidUTF8, Offset: nSrc, Written: nDst}
		}

		b, ok := transcode.Lookup(r)
		if !ok {
			return nDst, nSrc, &Error{Err: ErrUnmappable, Rune: r, Offset: nSrc, Written: nDst}
		}

		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}

		dst[nDst] = b
		nDst++
		nSrc += size
	}

	return nDst, nSrc, nil
}

type lcdDecoder struct {
	transform.NopResetter
}

func (lcdDecoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for ; nSrc < len(src); nSrc++ {
		r := transcode.Reverse(src[nSrc])
		if nDst+utf8.RuneLen(r) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}

		nDst += utf8.EncodeRune(dst[nDst:], r)
	}

	return nDst, nSrc, nil
}
