// Package gen writes Go source declaring LCD encoded byte arrays, so text
// fixed at build time costs nothing at run time.
package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"strings"
	"text/template"

	"github.com/fudanchii/lcdrus"
)

var (
	ErrInvalidArg     = errors.New("gen: error, expected Name=text")
	ErrInvalidName    = errors.New("gen: error, not a valid Go identifier")
	ErrDuplicateName  = errors.New("gen: error, name declared twice")
	ErrInvalidPackage = errors.New("gen: error, not a valid package name")
)

// Const is one array to declare.
type Const struct {
	Name string
	Text string
}

// ParseArg splits a Name=text command line argument. Only the first '='
// separates, the text may contain more.
func ParseArg(arg string) (Const, error) {
	name, text, ok := strings.Cut(arg, "=")
	if !ok {
		return Const{}, fmt.Errorf("%w: %q", ErrInvalidArg, arg)
	}

	name = strings.TrimSpace(name)
	if !token.IsIdentifier(name) {
		return Const{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return Const{Name: name, Text: text}, nil
}

type encodedConst struct {
	Name  string
	Text  string
	Bytes []byte
}

var fileTmpl = template.Must(template.New("lcd").Parse(`// Code generated by lcdgen. DO NOT EDIT.

package {{.Package}}
{{range .Consts}}
// {{.Name}} is the LCD encoding of {{printf "%q" .Text}}.
var {{.Name}} = [{{len .Bytes}}]byte{ {{- range $i, $b := .Bytes}}{{if $i}}, {{end}}{{printf "0x%02x" $b}}{{end -}} }
{{end}}`))

// Generate writes a gofmt'ed file of package pkg declaring one byte array
// per const. Nothing is written when any text cannot be encoded.
func Generate(w io.Writer, pkg string, consts []Const) error {
	if !token.IsIdentifier(pkg) {
		return fmt.Errorf("%w: %q", ErrInvalidPackage, pkg)
	}

	seen := make(map[string]struct{}, len(consts))
	encoded := make([]encodedConst, 0, len(consts))

	for _, c := range consts {
		if !token.IsIdentifier(c.Name) {
			return fmt.Errorf("%w: %q", ErrInvalidName, c.Name)
		}

		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateName, c.Name)
		}
		seen[c.Name] = struct{}{}

		b, err := literal(c.Text)
		if err != nil {
			return fmt.Errorf("gen: %s: %w", c.Name, err)
		}

		encoded = append(encoded, encodedConst{Name: c.Name, Text: c.Text, Bytes: b})
	}

	var src bytes.Buffer
	err := fileTmpl.Execute(&src, struct {
		Package string
		Consts  []encodedConst
	}{pkg, encoded})
	if err != nil {
		return err
	}

	out, err := format.Source(src.Bytes())
	if err != nil {
		return fmt.Errorf("gen: error formatting output: %w", err)
	}

	_, err = w.Write(out)

	return err
}

// literal runs the exact-size encoder and turns its panic back into an
// error for reporting.
func literal(text string) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			lerr, ok := r.(*lcdrus.Error)
			if !ok {
				panic(r)
			}
			err = lerr
		}
	}()

	return lcdrus.Literal(text), nil
}
