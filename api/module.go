package api

import (
	"log/slog"
	"net/http"

	"github.com/0xalexb/hjarta-field/extract"
	"github.com/0xalexb/hjarta-field/listener"

	"go.uber.org/fx"
)

// Module provides the API router as the http.Handler of the listener called
// name. The listener module and extract.Module must be part of the app too.
func Module(name string) fx.Option {
	return fx.Module("api",
		fx.Provide(
			fx.Annotate(
				func(extractor *extract.Extractor, cfg listener.Config, logger *slog.Logger) http.Handler {
					return NewRouter(NewHandler(extractor, logger), cfg)
				},
				fx.ParamTags("", listener.Tag(name), ""),
				fx.ResultTags(listener.Tag(name)),
			),
		),
	)
}
