package kickstart

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

type KickstartFunc[T any] func(*Context[T]) error

// Context is handed to every stage of the app. Ctx is cancelled once the
// process receives SIGINT or SIGTERM.
type Context[T any] struct {
	Ctx        context.Context
	Logger     *zap.Logger
	AppHandler T
	Next       LoopState
}

type App[T any] struct {
	initFn      KickstartFunc[T]
	afterInitFn KickstartFunc[T]
	loopFn      KickstartFunc[T]
	afterLoopFn KickstartFunc[T]
	logger      *zap.Logger
}

type AppAfterInit[T any] struct {
	initFn KickstartFunc[T]
	then   KickstartFunc[T]
	logger *zap.Logger
}

type AppAfterLoop[T any] struct {
	init   *AppAfterInit[T]
	loopFn KickstartFunc[T]
	then   KickstartFunc[T]
}

func Init[T any](initFn KickstartFunc[T]) *AppAfterInit[T] {
	return &AppAfterInit[T]{
		initFn: initFn,
	}
}

// WithLogger sets the logger exposed as Context.Logger. A no-op logger is
// used otherwise.
func (app *AppAfterInit[T]) WithLogger(logger *zap.Logger) *AppAfterInit[T] {
	app.logger = logger

	return app
}

func (app *AppAfterInit[T]) Loop(loopFn KickstartFunc[T]) *AppAfterLoop[T] {
	return &AppAfterLoop[T]{
		init:   app,
		loopFn: loopFn,
	}
}

func (app *AppAfterInit[T]) Then(next KickstartFunc[T]) *AppAfterInit[T] {
	app.then = next

	return app
}

func (app *AppAfterInit[T]) Exec() error {
	return app.ExecContext(context.Background())
}

func (app *AppAfterInit[T]) ExecContext(ctx context.Context) error {
	return exec(ctx, &App[T]{
		initFn:      app.initFn,
		afterInitFn: app.then,
		logger:      app.logger,
	})
}

func (app *AppAfterLoop[T]) Then(next KickstartFunc[T]) *AppAfterLoop[T] {
	app.then = next

	return app
}

func (app *AppAfterLoop[T]) Exec() error {
	return app.ExecContext(context.Background())
}

func (app *AppAfterLoop[T]) ExecContext(ctx context.Context) error {
	return exec(ctx, &App[T]{
		initFn:      app.init.initFn,
		afterInitFn: app.init.then,
		loopFn:      app.loopFn,
		afterLoopFn: app.then,
		logger:      app.init.logger,
	})
}

type LoopState int

const (
	LoopContinueFlag LoopState = iota
	LoopBreakFlag
)

func exec[T any](parent context.Context, app *App[T]) error {
	runCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := app.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	kctx := Context[T]{Ctx: runCtx, Logger: logger}

	if err := app.initFn(&kctx); err != nil {
		return err
	}

	if app.afterInitFn != nil {
		if err := app.afterInitFn(&kctx); err != nil {
			return err
		}
	}

	if app.loopFn == nil {
		return nil
	}

	var loopErr error

LOOP:
	for {
		select {
		case <-runCtx.Done():
			logger.Debug("kickstart: stop requested", zap.Error(context.Cause(runCtx)))
			break LOOP
		default:
		}

		if loopErr = app.loopFn(&kctx); loopErr != nil {
			break
		}

		if kctx.Next == LoopBreakFlag {
			break
		}
	}

	if app.afterLoopFn != nil {
		return errors.Join(loopErr, app.afterLoopFn(&kctx))
	}

	return loopErr
}
