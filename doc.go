// Package lcdrus converts ASCII and Russian text into the single-byte
// encoding of HD44780 compatible character LCDs with the Cyrillic
// character ROM.
//
// Every ASCII character maps to itself. Cyrillic letters map either to a
// dedicated ROM code or, where the glyph looks the same, to the matching
// Latin letter. Anything else cannot be shown and is reported as
// ErrUnmappable; nothing is ever substituted.
//
// Text known ahead of time is best encoded once, either at package init
//
//	var greeting = lcdrus.Literal("Привет!")
//
// or ahead of the build with the lcdgen command:
//
//	//go:generate go run github.com/fudanchii/lcdrus/cmd/lcdgen -pkg main -o messages_lcd.go Greeting=Привет!
//
// Text assembled at run time goes through Encode into a caller owned buffer,
// sized with Length:
//
//	buf := make([]byte, lcdrus.Length(msg))
//	n, err := lcdrus.Encode(buf, msg)
//
// Charmap exposes the same table as a golang.org/x/text encoding.
package lcdrus
