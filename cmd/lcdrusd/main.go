package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fudanchii/lcdrus/internal/display"
	"github.com/fudanchii/lcdrus/internal/kickstart"
	"github.com/fudanchii/lcdrus/internal/sysstats"
)

const (
	CMD_PROMPT      = "$>:"
	DISPLAY_RATE_MS = 100
	STATS_RATE_MS   = 1000
	NET_RATE_S      = 30
	READ_TIMEOUT_MS = 500
)

const (
	lineClock = iota
	lineMessage
	lineStats
	lineNetwork
)

type configStruct struct {
	baudRate               int
	connectTo              string
	overflowStyle          string
	dayOfWeekDisplayPeriod int
	timezone               string
	message                string
	verbose                bool
}

var (
	config = configStruct{}
)

func init() {
	flag.IntVar(&config.baudRate, "b", 115200, "Baudrate for the serial line.")
	flag.IntVar(&config.dayOfWeekDisplayPeriod, "d", 20, "How long day of week should be displayed in alternate with full date.")
	flag.StringVar(&config.connectTo, "c", "/dev/ttyACM0", "Device name to connect to.")
	flag.StringVar(&config.overflowStyle, "o", "wrap", "Overflow style when text line is longer than 20 characters.")
	flag.StringVar(&config.timezone, "t", "UTC", "Timezone local to use when displaying date time.")
	flag.StringVar(&config.message, "m", "Привет!", "Text for the second line, ASCII and Russian letters only.")
	flag.BoolVar(&config.verbose, "v", false, "Verbose (development) logging.")
}

type AppHandler struct {
	tty     serial.Port
	buffer  *display.Buffer
	scanner *bufio.Scanner

	datetime   fmt.Stringer
	aggregates fmt.Stringer
	network    fmt.Stringer

	refreshers    *errgroup.Group
	stopRefreshes context.CancelFunc

	// closed is set once the board hung up; nothing can be written after that.
	closed bool
}

// ctxReader turns the empty reads of a port with a read timeout into a
// chance to notice cancellation.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr ctxReader) Read(p []byte) (int, error) {
	for {
		n, err := cr.r.Read(p)
		if n > 0 || err != nil {
			return n, err
		}

		if err := cr.ctx.Err(); err != nil {
			return 0, err
		}
	}
}

// attach prepares an opened port for the prompt protocol.
func attach(ctx context.Context, tty serial.Port) (*bufio.Scanner, error) {
	if err := tty.SetReadTimeout(READ_TIMEOUT_MS * time.Millisecond); err != nil {
		return nil, fmt.Errorf("serial: error setting read timeout: %w", err)
	}

	scanner := bufio.NewScanner(ctxReader{ctx: ctx, r: tty})

	scanner.Split(bufio.ScanWords)

	return scanner, nil
}

func main() {
	flag.Parse()

	logger, err := newLogger(config.verbose)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	err = kickstart.Init(setupFn).
		WithLogger(logger).
		Loop(runFn).
		Then(shutdownFn).
		Exec()

	if err != nil {
		logger.Fatal("lcdrusd: exited with error", zap.Error(err))
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func newBuffer(style string) (*display.Buffer, error) {
	if style == "wrap" {
		return display.NewBuffer(display.NewOverflowWrapSpanLines()), nil
	}

	lines, err := display.TryParseCustomStyle(style)
	if err != nil {
		return nil, err
	}

	return display.NewBuffer(
		display.NewOverflowCustomStylePerLine(
			lines[0],
			lines[1],
			lines[2],
			lines[3],
		),
	), nil
}

func setupFn(kctx *kickstart.Context[AppHandler]) error {
	buffer, err := newBuffer(config.overflowStyle)
	if err != nil {
		return err
	}

	timeDate, err := sysstats.NewDateTime(
		config.timezone,
		DISPLAY_RATE_MS,
		config.dayOfWeekDisplayPeriod,
	)
	if err != nil {
		return fmt.Errorf("config: error loading timezone: %w", err)
	}

	aggregates, err := sysstats.NewAggregates()
	if err != nil {
		return err
	}

	network, err := sysstats.NewNetworkStats()
	if err != nil {
		return err
	}

	// the wrap style only owns the first line
	if config.overflowStyle != "wrap" {
		if err := buffer.SetLine(lineMessage, config.message); err != nil {
			return fmt.Errorf("config: error in message: %w", err)
		}
	}

	tty, err := serial.Open(config.connectTo, &serial.Mode{BaudRate: config.baudRate})
	if err != nil {
		return err
	}

	scanner, err := attach(kctx.Ctx, tty)
	if err != nil {
		tty.Close()
		return err
	}

	ctx, cancel := context.WithCancel(kctx.Ctx)
	refreshers, ctx := errgroup.WithContext(ctx)
	refreshers.Go(func() error {
		return aggregates.Refresh(ctx, STATS_RATE_MS*time.Millisecond)
	})
	refreshers.Go(func() error {
		return network.Refresh(ctx, NET_RATE_S*time.Second)
	})

	kctx.Logger.Info("lcdrusd: connected",
		zap.String("device", config.connectTo),
		zap.Int("baud", config.baudRate),
		zap.String("overflow", config.overflowStyle))

	kctx.AppHandler = AppHandler{
		tty:     tty,
		buffer:  buffer,
		scanner: scanner,

		datetime:   timeDate,
		aggregates: aggregates,
		network:    network,

		refreshers:    refreshers,
		stopRefreshes: cancel,
	}

	return nil
}

func shutdownFn(kctx *kickstart.Context[AppHandler]) error {
	app := &kctx.AppHandler
	defer app.tty.Close()

	kctx.Logger.Info("lcdrusd: shutting down")

	app.stopRefreshes()
	if err := app.refreshers.Wait(); err != nil {
		kctx.Logger.Warn("lcdrusd: stats refresh failed", zap.Error(err))
	}

	if app.closed {
		return nil
	}

	_, err := app.tty.Write([]byte("clr\n"))

	return err
}

func runFn(kctx *kickstart.Context[AppHandler]) error {
	app := &kctx.AppHandler

	setLine(kctx, lineClock, app.datetime.String())
	if config.overflowStyle != "wrap" {
		setLine(kctx, lineStats, app.aggregates.String())
		setLine(kctx, lineNetwork, app.network.String())
	}

	if !app.scanner.Scan() {
		err := app.scanner.Err()
		switch {
		case errors.Is(err, context.Canceled):
			kctx.Logger.Debug("lcdrusd: read interrupted")
		case err != nil:
			return fmt.Errorf("serial: error reading from %s: %w", config.connectTo, err)
		default:
			kctx.Logger.Info("lcdrusd: serial line closed")
			app.closed = true
		}

		kctx.Next = kickstart.LoopBreakFlag

		return nil
	}

	if app.scanner.Text() == CMD_PROMPT {
		cmd := append([]byte("display:"), app.buffer.NextRender()...)
		cmd = append(cmd, '\n')

		if _, err := app.tty.Write(cmd); err != nil {
			return fmt.Errorf("serial: error writing to %s: %w", config.connectTo, err)
		}

		time.Sleep(DISPLAY_RATE_MS * time.Millisecond)
	}

	return nil
}

// setLine keeps the previous content of a line when the new text cannot
// be shown on the display.
func setLine(kctx *kickstart.Context[AppHandler], n int, text string) {
	if err := kctx.AppHandler.buffer.SetLine(n, text); err != nil {
		kctx.Logger.Warn("lcdrusd: line not updated", zap.Int("line", n+1), zap.Error(err))
	}
}
