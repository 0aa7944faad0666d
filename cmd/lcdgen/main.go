// Command lcdgen declares LCD encoded byte arrays for text known at build
// time. It is meant to run from go:generate:
//
//	//go:generate go run github.com/fudanchii/lcdrus/cmd/lcdgen -o messages_lcd.go Greeting=Привет! Bye=Пока
//
// Any text that the display cannot show fails the run, and with it the
// build.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/fudanchii/lcdrus/internal/gen"
)

func main() {
	var (
		pkg    = flag.String("pkg", os.Getenv("GOPACKAGE"), "Package name of the generated file (defaults to $GOPACKAGE).")
		output = flag.String("o", "", "Output file, stdout when empty.")
	)
	flag.Parse()

	logger := newLogger()
	defer logger.Sync() //nolint:errcheck

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: lcdgen [-pkg name] [-o file] Name=text ...")
		os.Exit(2)
	}

	if err := run(*pkg, *output, flag.Args()); err != nil {
		logger.Fatal("lcdgen: generation failed", zap.Error(err))
	}

	if *output != "" {
		logger.Info("lcdgen: wrote declarations", zap.String("file", *output), zap.Int("count", flag.NArg()))
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = ""

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	return logger
}

func run(pkg, output string, args []string) error {
	consts := make([]gen.Const, 0, len(args))
	for _, arg := range args {
		c, err := gen.ParseArg(arg)
		if err != nil {
			return err
		}
		consts = append(consts, c)
	}

	var src bytes.Buffer
	if err := gen.Generate(&src, pkg, consts); err != nil {
		return err
	}

	if output == "" {
		_, err := os.Stdout.Write(src.Bytes())
		return err
	}

	return os.WriteFile(output, src.Bytes(), 0o644)
}
