package transcode

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestDecodeRune(t *testing.T) {
	tests := []struct {
		in   string
		pos  int
		want rune
		size int
	}{
		{"A", 0, 'A', 1},
		{"\x00", 0, 0, 1},
		{"\x7f", 0, 0x7F, 1},
		{"Б", 0, 'Б', 2},
		{"xяx", 1, 'я', 2},
		{"ё", 0, 'ё', 2},
		{"\u07ff", 0, 0x7FF, 2},
		{"€", 0, '€', 3},
		{"\uffff", 0, 0xFFFF, 3},
		{"\ufffd", 0, utf8.RuneError, 3},
		{"😀", 0, '😀', 4},
		{"\U0010ffff", 0, 0x10FFFF, 4},
	}

	for _, tc := range tests {
		r, size := DecodeRune(tc.in, tc.pos)
		require.Equal(t, tc.want, r, "%q", tc.in)
		require.Equal(t, tc.size, size, "%q", tc.in)

		rb, sizeb := DecodeRune([]byte(tc.in), tc.pos)
		require.Equal(t, r, rb)
		require.Equal(t, size, sizeb)
	}
}

func TestDecodeRuneMatchesStdlib(t *testing.T) {
	s := "Hello, мир! Съешь же ещё этих мягких французских булок 😀 € \u0800"

	for pos := 0; pos < len(s); {
		wantR, wantSize := utf8.DecodeRuneInString(s[pos:])
		r, size := DecodeRune(s, pos)
		require.Equal(t, wantR, r)
		require.Equal(t, wantSize, size)
		pos += size
	}
}

func TestDecodeRuneMalformed(t *testing.T) {
	tests := map[string]string{
		"lone continuation": "\x80",
		"truncated 2-byte":  "\xd0",
		"truncated 3-byte":  "\xe2\x82",
		"bad continuation":  "\xd0A",
		"overlong NUL":      "\xc0\x80",
		"overlong 3-byte":   "\xe0\x80\xaf",
		"surrogate":         "\xed\xa0\x80",
		"above max":         "\xf4\x90\x80\x80",
		"5-byte lead":       "\xf8\x88\x80\x80\x80",
		"0xff":              "\xff",
	}

	for name, in := range tests {
		r, size := DecodeRune(in, 0)
		require.Equal(t, utf8.RuneError, r, name)
		require.Equal(t, 1, size, name)
	}
}

func TestCount(t *testing.T) {
	require := require.New(t)

	require.Equal(0, Count(""))
	require.Equal(5, Count("hello"))
	require.Equal(11, Count("Hello, мир!"))
	require.Equal(3, Count("АБВ"))
	require.Equal(2, Count("😀€"))
	require.Equal(11, Count([]byte("Hello, мир!")))

	for _, s := range []string{"Привет", "ёлка", "Съешь же ещё", "aé€\U0001f600"} {
		require.Equal(utf8.RuneCountInString(s), Count(s), s)
	}

	// every malformed byte counts on its own
	require.Equal(3, Count("\x80\x80\x80"))
}
