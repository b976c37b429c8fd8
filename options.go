package field

import (
	"fmt"
	"io"

	"github.com/0xalexb/hjarta-field/api"
	"github.com/0xalexb/hjarta-field/config"
	filefetcher "github.com/0xalexb/hjarta-field/config/fetcher/file"
	"github.com/0xalexb/hjarta-field/listener"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
	LogOutput io.Writer
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithHTTPListener adds a named HTTP listener module to the application.
// The name tags the http.Handler and Config the listener consumes (see listener.Tag).
// With options the Config is supplied from them; otherwise something else must
// provide it, such as WithListenerConfigFile.
func WithHTTPListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, listener.NewModule(name, opts...))
	}
}

// WithExtractAPI serves the extraction API on a named HTTP listener.
func WithExtractAPI(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, api.Module(name), listener.NewModule(name, opts...))
	}
}

// WithListenerConfigFile provides the Config of the listener called name from
// the section of a config file in any supported format. An empty section
// selects the whole file.
func WithListenerConfigFile(name, filePath, section string) Option {
	load := func(registry *config.Registry) (listener.Config, error) {
		cfg, err := config.Provider(&listener.Config{}, section)(registry, filefetcher.NewFetcher(filePath))
		if err != nil {
			return listener.Config{}, fmt.Errorf("loading listener %q config: %w", name, err)
		}

		return *cfg, nil
	}

	return func(o *Options) {
		o.Modules = append(o.Modules, fx.Provide(fx.Annotate(load, fx.ResultTags(listener.Tag(name)))))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (the default) or "text" log output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogOutput redirects logs, which go to stderr by default.
func WithLogOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogOutput = w
	}
}
