package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fudanchii/lcdrus"
	"github.com/fudanchii/lcdrus/internal/display"
	"github.com/fudanchii/lcdrus/internal/kickstart"
)

// fakePort serves canned board output and records what the daemon sends.
// Once the canned output runs out it reports EOF, or nothing at all when
// silent, like a port whose read timeout expired.
type fakePort struct {
	serial.Port

	reads   []string
	readErr error
	silent  bool

	written bytes.Buffer
	timeout time.Duration
	closed  bool
}

func (p *fakePort) Read(b []byte) (int, error) {
	if len(p.reads) == 0 {
		switch {
		case p.readErr != nil:
			return 0, p.readErr
		case p.silent:
			return 0, nil
		}
		return 0, io.EOF
	}

	n := copy(b, p.reads[0])
	p.reads[0] = p.reads[0][n:]
	if p.reads[0] == "" {
		p.reads = p.reads[1:]
	}

	return n, nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.closed {
		return 0, errors.New("port closed")
	}

	return p.written.Write(b)
}

func (p *fakePort) SetReadTimeout(t time.Duration) error {
	p.timeout = t
	return nil
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

type fixedLine string

func (l fixedLine) String() string { return string(l) }

const (
	clockLine   = "04.03.2024  12:34:56"
	statsLine   = "пам:8.0 GiB"
	networkLine = "сеть: eth0 10.0.0.2"
)

func withOverflowStyle(t *testing.T, style string) {
	t.Helper()

	prev := config.overflowStyle
	config.overflowStyle = style
	t.Cleanup(func() { config.overflowStyle = prev })
}

func newTestContext(t *testing.T, ctx context.Context, port *fakePort) *kickstart.Context[AppHandler] {
	t.Helper()

	buffer, err := newBuffer(config.overflowStyle)
	require.NoError(t, err)

	scanner, err := attach(ctx, port)
	require.NoError(t, err)

	return &kickstart.Context[AppHandler]{
		Ctx:    ctx,
		Logger: zap.NewNop(),
		AppHandler: AppHandler{
			tty:     port,
			buffer:  buffer,
			scanner: scanner,

			datetime:   fixedLine(clockLine),
			aggregates: fixedLine(statsLine),
			network:    fixedLine(networkLine),

			refreshers:    &errgroup.Group{},
			stopRefreshes: func() {},
		},
	}
}

func cells(s string) []byte {
	return lcdrus.Literal(display.Pad(s, display.LineWidth))
}

func TestAttachSetsReadTimeout(t *testing.T) {
	port := &fakePort{}

	_, err := attach(context.Background(), port)
	require.NoError(t, err)
	require.Equal(t, READ_TIMEOUT_MS*time.Millisecond, port.timeout)
}

func TestPromptGetsFrame(t *testing.T) {
	require := require.New(t)
	withOverflowStyle(t, "wrap")

	port := &fakePort{reads: []string{CMD_PROMPT + "\n"}}
	kctx := newTestContext(t, context.Background(), port)

	require.NoError(runFn(kctx))
	require.Equal(kickstart.LoopContinueFlag, kctx.Next)

	frame := port.written.Bytes()
	require.Len(frame, len("display:")+display.CharLcdDimension+1)
	require.True(bytes.HasPrefix(frame, []byte("display:")))
	require.Equal(byte('\n'), frame[len(frame)-1])

	ddram := frame[len("display:") : len(frame)-1]
	require.Equal(cells(clockLine), ddram[0:20])
	require.Equal([]byte(strings.Repeat(" ", 60)), ddram[20:])
}

func TestPromptFrameLinesInDisplayOrder(t *testing.T) {
	require := require.New(t)
	withOverflowStyle(t, "t,t,t,t")

	port := &fakePort{reads: []string{"boot ok\n", CMD_PROMPT + "\n"}}
	kctx := newTestContext(t, context.Background(), port)

	// words other than the prompt are skipped
	require.NoError(runFn(kctx))
	require.NoError(runFn(kctx))
	require.Zero(port.written.Len())

	require.NoError(runFn(kctx))

	ddram := port.written.Bytes()[len("display:") : len("display:")+display.CharLcdDimension]
	require.Equal(cells(clockLine), ddram[0:20])
	require.Equal(cells(statsLine), ddram[20:40])
	require.Equal(cells(""), ddram[40:60])
	require.Equal(cells(networkLine), ddram[60:80])
}

func TestHangUpStopsWithoutClear(t *testing.T) {
	require := require.New(t)
	withOverflowStyle(t, "wrap")

	port := &fakePort{reads: []string{CMD_PROMPT + "\n"}}
	kctx := newTestContext(t, context.Background(), port)

	require.NoError(runFn(kctx))
	sent := port.written.Len()

	require.NoError(runFn(kctx))
	require.Equal(kickstart.LoopBreakFlag, kctx.Next)
	require.True(kctx.AppHandler.closed)

	require.NoError(shutdownFn(kctx))
	require.Equal(sent, port.written.Len())
	require.True(port.closed)
}

func TestShutdownClearsDisplay(t *testing.T) {
	withOverflowStyle(t, "wrap")

	port := &fakePort{}
	kctx := newTestContext(t, context.Background(), port)

	require.NoError(t, shutdownFn(kctx))
	require.Equal(t, "clr\n", port.written.String())
	require.True(t, port.closed)
}

func TestCancelWhileBoardIsSilent(t *testing.T) {
	require := require.New(t)
	withOverflowStyle(t, "wrap")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	port := &fakePort{silent: true}
	kctx := newTestContext(t, ctx, port)

	require.NoError(runFn(kctx))
	require.Equal(kickstart.LoopBreakFlag, kctx.Next)
	require.False(kctx.AppHandler.closed)

	require.NoError(shutdownFn(kctx))
	require.Equal("clr\n", port.written.String())
}

func TestReadErrorIsReported(t *testing.T) {
	withOverflowStyle(t, "wrap")

	port := &fakePort{readErr: errors.New("device unplugged")}
	kctx := newTestContext(t, context.Background(), port)

	err := runFn(kctx)
	require.ErrorContains(t, err, "device unplugged")
}
