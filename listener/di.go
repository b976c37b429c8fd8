package listener

import (
	"log/slog"
	"net/http"

	"go.uber.org/fx"
)

// Tag returns the fx name tag shared by a listener's http.Handler and Config.
func Tag(name string) string {
	return `name:"` + name + `"`
}

// NewModule creates an fx module running one named HTTP listener.
//
// The listener serves the http.Handler tagged with Tag(name). With options,
// the module also supplies its Config under the same tag; without options the
// Config must come from elsewhere, such as config.Provider.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	moduleOpts := make([]fx.Option, 0, 2) //nolint:mnd

	if len(opts) > 0 {
		var cfg Config

		for _, apply := range opts {
			apply(&cfg)
		}

		moduleOpts = append(moduleOpts, fx.Supply(fx.Annotate(cfg, fx.ResultTags(Tag(name)))))
	}

	register := func(lifecycle fx.Lifecycle, shutdowner fx.Shutdowner, handler http.Handler, cfg Config) error {
		srv, err := NewServer(name, handler, cfg, func() {
			shutdownErr := shutdowner.Shutdown()
			if shutdownErr != nil {
				slog.Error("failed to trigger shutdown", "name", name, "error", shutdownErr)
			}
		})
		if err != nil {
			return err
		}

		lifecycle.Append(fx.StartStopHook(srv.Start, srv.Stop))

		return nil
	}

	moduleOpts = append(moduleOpts, fx.Invoke(
		fx.Annotate(register, fx.ParamTags("", "", Tag(name), Tag(name))),
	))

	return fx.Module(name, moduleOpts...)
}
