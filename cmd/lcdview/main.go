// Command lcdview previews how text will look on a 4x20 character LCD
// with the Cyrillic ROM.
//
// On a terminal it opens an editor with one input per display line. When
// stdout is not a terminal, or with -dump, every argument is printed as
// LCD bytes followed by what the display will show.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/fudanchii/lcdrus"
)

func main() {
	dumpOnly := flag.Bool("dump", false, "Print the encoding of every argument and exit.")
	flag.Parse()

	if *dumpOnly || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := dump(os.Stdout, flag.Args()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(newPreviewModel(flag.Args()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// dump writes one line per text. It keeps going past texts that cannot be
// encoded and reports the first such failure at the end.
func dump(w io.Writer, texts []string) error {
	var firstErr error

	for _, text := range texts {
		encoded, err := lcdrus.AppendEncode(nil, text)
		if err != nil {
			fmt.Fprintf(w, "%q: %v\n", text, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		fmt.Fprintf(w, "% x\t%s\n", encoded, glyphs(encoded))
	}

	return firstErr
}
