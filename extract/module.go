package extract

import (
	"github.com/0xalexb/hjarta-field/config"

	"go.uber.org/fx"
)

// Module provides the default decoder registry and an Extractor using it.
func Module() fx.Option {
	return fx.Module("extract",
		fx.Provide(
			config.DefaultRegistry,
			func(registry *config.Registry) *Extractor {
				return New(WithRegistry(registry))
			},
		),
	)
}
