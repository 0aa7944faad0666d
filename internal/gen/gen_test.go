package gen

import (
	"bytes"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fudanchii/lcdrus"
)

func TestParseArg(t *testing.T) {
	c, err := ParseArg("Greeting=Привет, мир!")
	require.NoError(t, err)
	require.Equal(t, Const{Name: "Greeting", Text: "Привет, мир!"}, c)

	c, err = ParseArg("Eq=a=b")
	require.NoError(t, err)
	require.Equal(t, "a=b", c.Text)

	c, err = ParseArg("Blank=")
	require.NoError(t, err)
	require.Equal(t, "", c.Text)

	_, err = ParseArg("no separator")
	require.ErrorIs(t, err, ErrInvalidArg)

	_, err = ParseArg("1abc=x")
	require.ErrorIs(t, err, ErrInvalidName)
}

func TestGenerate(t *testing.T) {
	var out bytes.Buffer

	err := Generate(&out, "msgs", []Const{
		{Name: "Greeting", Text: "Привет"},
		{Name: "empty", Text: ""},
	})
	require.NoError(t, err)

	src := out.String()
	require.Contains(t, src, "// Code generated by lcdgen. DO NOT EDIT.\n")
	require.Contains(t, src, "package msgs\n")
	require.Contains(t, src, "// Greeting is the LCD encoding of \"Привет\".\n")
	require.Contains(t, src, "var Greeting = [6]byte{0xa8, 0x70, 0xb8, 0xb3, 0x65, 0xbf}\n")
	require.Contains(t, src, "var empty = [0]byte{}\n")

	_, err = parser.ParseFile(token.NewFileSet(), "msgs_lcd.go", src, parser.ParseComments)
	require.NoError(t, err)
}

func TestGenerateQuotesText(t *testing.T) {
	var out bytes.Buffer

	err := Generate(&out, "main", []Const{{Name: "Tricky", Text: "a\"\n*/ b"}})
	require.NoError(t, err)

	_, err = parser.ParseFile(token.NewFileSet(), "x.go", out.Bytes(), parser.ParseComments)
	require.NoError(t, err)
}

func TestGenerateFailsWithoutOutput(t *testing.T) {
	tests := map[string]struct {
		pkg    string
		consts []Const
		want   error
	}{
		"unmappable": {"main", []Const{{"Ok", "да"}, {"Bad", "ναι"}}, lcdrus.ErrUnmappable},
		"bad name":   {"main", []Const{{"not-ok", "x"}}, ErrInvalidName},
		"duplicate":  {"main", []Const{{"A", "x"}, {"A", "y"}}, ErrDuplicateName},
		"bad pkg":    {"my pkg", nil, ErrInvalidPackage},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer

			err := Generate(&out, tc.pkg, tc.consts)
			require.ErrorIs(t, err, tc.want)
			require.Zero(t, out.Len())
		})
	}
}
