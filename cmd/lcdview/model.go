package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/fudanchii/lcdrus"
	"github.com/fudanchii/lcdrus/internal/display"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	lcdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1B2B34")).
			Background(lipgloss.Color("#9ACD32")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#555555")).
			Padding(0, 1)

	hexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type previewModel struct {
	buffer *display.Buffer
	inputs [display.LineCount]textinput.Model
	errs   [display.LineCount]error
	focus  int
}

func newPreviewModel(lines []string) *previewModel {
	trim := func() display.NoWrapOverflowStyle { return &display.OfTrimLine{} }

	m := &previewModel{
		buffer: display.NewBuffer(display.NewOverflowCustomStylePerLine(trim(), trim(), trim(), trim())),
	}

	for n := range m.inputs {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%d: ", n+1)
		ti.Placeholder = "текст"
		ti.Width = 40
		if n < len(lines) {
			ti.SetValue(lines[n])
		}
		m.inputs[n] = ti
	}
	m.inputs[0].Focus()

	for n := range m.inputs {
		m.setLine(n)
	}
	m.buffer.NextRender()

	return m
}

func (m *previewModel) setLine(n int) {
	m.errs[n] = m.buffer.SetLine(n, m.inputs[n].Value())
}

func (m *previewModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "down", "enter":
			m.moveFocus(1)
			return m, nil

		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	m.setLine(m.focus)
	m.buffer.NextRender()

	return m, cmd
}

func (m *previewModel) moveFocus(delta int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + display.LineCount) % display.LineCount
	m.inputs[m.focus].Focus()
}

// glass returns the rows as they appear on the display.
func (m *previewModel) glass() []string {
	rows := m.buffer.Rows()
	out := make([]string, 0, len(rows))

	for _, cells := range rows {
		out = append(out, glyphs(cells))
	}

	return out
}

func glyphs(cells []byte) string {
	s, err := lcdrus.Charmap.NewDecoder().Bytes(cells)
	if err != nil {
		return strings.Repeat("?", len(cells))
	}

	return string(s)
}

// describe points at the character the line got stuck on.
func describe(err error) string {
	var lerr *lcdrus.Error
	if !errors.As(err, &lerr) {
		return err.Error()
	}

	if errors.Is(lerr, lcdrus.ErrUnmappable) {
		return fmt.Sprintf("no glyph for %q, the %s character", lerr.Rune, humanize.Ordinal(lerr.Written+1))
	}

	return fmt.Sprintf("stops at the %s character: %v", humanize.Ordinal(lerr.Written+1), lerr.Err)
}

func (m *previewModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("LCD preview"))
	b.WriteString(" 4x20 HD44780, Cyrillic ROM\n\n")
	b.WriteString(lcdStyle.Render(strings.Join(m.glass(), "\n")))
	b.WriteString("\n\n")

	for n := range m.inputs {
		b.WriteString(m.inputs[n].View())
		b.WriteString("\n   ")

		if m.errs[n] != nil {
			b.WriteString(errorStyle.Render(describe(m.errs[n])))
		} else {
			encoded, _ := lcdrus.AppendEncode(nil, m.inputs[n].Value())
			b.WriteString(hexStyle.Render(fmt.Sprintf("%d/%d % x", len(encoded), display.LineWidth, encoded)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/↓ next line • shift+tab/↑ previous • esc quit"))

	return b.String()
}
