package display

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fudanchii/lcdrus"
)

var (
	ErrSettingThisLine      = errors.New("buffer: error, setting this line is not supported")
	ErrInvalidOverflowStyle = errors.New("config: error parsing overflow style, please specify style to use for the entire 4 lines (e.g. t,em,em,em)")
)

const (
	LineWidth        = 20
	LineCount        = 4
	CharLcdDimension = LineCount * LineWidth
)

// CharLcdBuffer mirrors the display RAM of a 4x20 module, where the
// second row continues after the first and the fourth after the third.
type CharLcdBuffer [CharLcdDimension]byte

var lineOffsets = [LineCount]int{0, 40, 20, 60}

// Line returns the cells of row n (0 based) as a window into the buffer.
func (b *CharLcdBuffer) Line(n int) []byte {
	off := lineOffsets[n]
	return b[off : off+LineWidth]
}

// Rows returns the rows in visual order.
func (b *CharLcdBuffer) Rows() [LineCount][]byte {
	var rows [LineCount][]byte
	for n := range rows {
		rows[n] = b.Line(n)
	}

	return rows
}

// Pad fills s with trailing spaces up to width characters. Multi-byte
// letters take one cell on the display, so width counts characters.
func Pad(s string, width int) string {
	if n := lcdrus.Length(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}

	return s
}

func padCells(line []byte, width int) []byte {
	out := make([]byte, max(len(line), width))
	n := copy(out, line)
	for i := n; i < len(out); i++ {
		out[i] = ' '
	}

	return out
}

type OverflowStyle interface {
	ImplOverflowStyle()

	NextRender(*CharLcdBuffer) []byte
	setLine(n int, line []byte) error
}

func TryParseCustomStyle(flag string) ([LineCount]NoWrapOverflowStyle, error) {
	var (
		line [LineCount]NoWrapOverflowStyle
	)

	flags := strings.Split(flag, ",")
	if len(flags) != LineCount {
		return line, ErrInvalidOverflowStyle
	}

	for idx := range flags {
		switch strings.TrimSpace(flags[idx]) {
		case "t":
			line[idx] = &OfTrimLine{}
		case "em":
			line[idx] = &OfEndlessMarquee{}
		case "cm":
			line[idx] = &OfCycleMarquee{}
		default:
			return line, fmt.Errorf("style parse: error invalid style for line%d: %w", idx+1, ErrInvalidOverflowStyle)
		}
	}

	return line, nil
}

type NoWrapOverflowStyle interface {
	ImplNoWrapOverflowStyle()

	NextRender([]byte)
	setCurrentLine([]byte)
}

type BaseOverflowStyle struct{}

func (BaseOverflowStyle) ImplOverflowStyle() {}

type BaseNoWrapOverflowStyle struct{}

func (BaseNoWrapOverflowStyle) ImplNoWrapOverflowStyle() {}

// OfEndlessMarquee scrolls the line one cell per render and joins the
// next line right after the end of the current one.
type OfEndlessMarquee struct {
	BaseNoWrapOverflowStyle

	line     []byte
	nextLine []byte
	pos      int
}

func (oem *OfEndlessMarquee) NextRender(currentBuffer []byte) {
	if len(oem.line) == 0 {
		return
	}

	n := copy(currentBuffer[:LineWidth], oem.line[oem.pos:])
	copy(currentBuffer[n:LineWidth], oem.nextLine)

	oem.pos += 1
	if oem.pos >= len(oem.line) {
		oem.line = oem.nextLine
		oem.pos = 0
	}
}

func (oem *OfEndlessMarquee) setCurrentLine(line []byte) {
	if len(line) >= LineWidth {
		line = append(line[:len(line):len(line)], " . "...)
	}

	oem.nextLine = padCells(line, LineWidth)
	if len(oem.line) == 0 {
		oem.line = oem.nextLine
		oem.pos = 0
	}
}

// OfCycleMarquee slides a long line left until its tail is visible, then
// back to the start, where a pending line takes over.
type OfCycleMarquee struct {
	BaseNoWrapOverflowStyle

	slideLeft bool
	line      []byte
	nextLine  []byte
	pos       int
}

func (ocm *OfCycleMarquee) NextRender(currentBuffer []byte) {
	if len(ocm.line) == 0 {
		return
	}

	copy(currentBuffer[:LineWidth], ocm.line[ocm.pos:ocm.pos+LineWidth])

	last := len(ocm.line) - LineWidth
	if ocm.slideLeft {
		if ocm.pos < last {
			ocm.pos += 1
			return
		}
		ocm.slideLeft = false
	}

	if ocm.pos > 0 {
		ocm.pos -= 1
		return
	}

	ocm.line = ocm.nextLine
	ocm.slideLeft = true
}

func (ocm *OfCycleMarquee) setCurrentLine(line []byte) {
	ocm.nextLine = padCells(line, LineWidth)

	if len(ocm.line) == 0 {
		ocm.line = ocm.nextLine
		ocm.pos = 0
		ocm.slideLeft = true
	}
}

// OfTrimLine shows the first LineWidth cells and drops the rest.
type OfTrimLine struct {
	BaseNoWrapOverflowStyle

	line    []byte
	changed bool
}

func (otl *OfTrimLine) NextRender(currentBuffer []byte) {
	if otl.changed {
		copy(currentBuffer[:LineWidth], otl.line[:LineWidth])
		otl.changed = false
	}
}

func (otl *OfTrimLine) setCurrentLine(line []byte) {
	otl.line = padCells(line, LineWidth)
	otl.changed = true
}

type OfCustomStylePerLine struct {
	BaseOverflowStyle

	lines [LineCount]NoWrapOverflowStyle
}

func NewOverflowCustomStylePerLine(l1, l2, l3, l4 NoWrapOverflowStyle) *OfCustomStylePerLine {
	return &OfCustomStylePerLine{
		lines: [LineCount]NoWrapOverflowStyle{l1, l2, l3, l4},
	}
}

func (ocsp *OfCustomStylePerLine) NextRender(currentBuffer *CharLcdBuffer) []byte {
	for n, style := range ocsp.lines {
		style.NextRender(currentBuffer.Line(n))
	}

	return currentBuffer[:]
}

func (ocsp *OfCustomStylePerLine) setLine(n int, line []byte) error {
	ocsp.lines[n].setCurrentLine(line)
	return nil
}

// OfWrapSpanLines spreads a single text over all four rows.
type OfWrapSpanLines struct {
	BaseOverflowStyle

	line     []byte
	lchanged bool
}

func NewOverflowWrapSpanLines() *OfWrapSpanLines {
	return &OfWrapSpanLines{}
}

func (owl *OfWrapSpanLines) NextRender(currentBuffer *CharLcdBuffer) []byte {
	if owl.lchanged {
		for n := range LineCount {
			copy(currentBuffer.Line(n), owl.line[n*LineWidth:(n+1)*LineWidth])
		}
		owl.lchanged = false
	}

	return currentBuffer[:]
}

func (owl *OfWrapSpanLines) setLine(n int, line []byte) error {
	if n != 0 {
		return ErrSettingThisLine
	}

	owl.line = padCells(line, CharLcdDimension)[:CharLcdDimension]
	owl.lchanged = true

	return nil
}

type Buffer struct {
	internal        CharLcdBuffer
	overflowContext OverflowStyle
}

func NewBuffer(style OverflowStyle) *Buffer {
	db := &Buffer{overflowContext: style}
	for i := range db.internal {
		db.internal[i] = ' '
	}

	return db
}

// NextRender advances the overflow style and returns the whole display
// RAM image, ready to be sent to the module.
func (db *Buffer) NextRender() []byte {
	return db.overflowContext.NextRender(&db.internal)
}

// Rows returns the current rows in visual order.
func (db *Buffer) Rows() [LineCount][]byte {
	return db.internal.Rows()
}

// SetLine encodes line for the display and hands it to the overflow
// style. n is 0 based. A line with characters the display cannot show is
// rejected as a whole and the previous content stays.
func (db *Buffer) SetLine(n int, line string) error {
	if n < 0 || n >= LineCount {
		return ErrSettingThisLine
	}

	encoded, err := lcdrus.AppendEncode(nil, line)
	if err != nil {
		return fmt.Errorf("buffer: error encoding line%d: %w", n+1, err)
	}

	return db.overflowContext.setLine(n, encoded)
}
