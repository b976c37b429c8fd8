package field

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/0xalexb/hjarta-field/extract"
	"github.com/0xalexb/hjarta-field/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is the fx application serving extraction. Every App provides the
// decoder registry and an *extract.Extractor; listeners and the HTTP API are
// added with options.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options),
	}
}

func configure(options *Options) *fx.App {
	loggerConfig := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}

	output := options.LogOutput
	if output == nil {
		output = os.Stderr
	}

	logger := logging.NewLogger(loggerConfig, output)
	slog.SetDefault(logger)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(loggerConfig),
		fx.Supply(logger),
		extract.Module(),
		fx.Options(options.Modules...),
	)
}

// Err returns the error fx hit while building the dependency graph, if any.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err() //nolint:wrapcheck
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	err := app.app.Start(context.Background())
	if err != nil {
		return fmt.Errorf("failed to start app: %w", err)
	}

	return nil
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	err := app.app.Stop(context.Background())
	if err != nil {
		return fmt.Errorf("failed to stop app: %w", err)
	}

	return nil
}
