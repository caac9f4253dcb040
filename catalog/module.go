package catalog

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/0xalexb/hjarta-registry/config"
)

// NewModule creates an Fx module providing the built Catalog.
// With options, the module supplies Options from them. Without, it expects a
// *config.Settings in the container, e.g. from config.Provider, and derives
// Options from it.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(opts ...Option) fx.Option {
	moduleOpts := []fx.Option{
		fx.Provide(func(options Options, logger *slog.Logger) (Catalog, error) {
			catalog, err := options.Build()
			if err != nil {
				return nil, err
			}

			logger.Info("catalog built", slog.Int("providers", len(catalog)))

			return catalog, nil
		}),
	}

	if len(opts) > 0 {
		moduleOpts = append(moduleOpts, fx.Supply(NewOptions(opts...)))
	} else {
		moduleOpts = append(moduleOpts, fx.Provide(func(settings *config.Settings) Options {
			return NewOptions(WithSettings(settings))
		}))
	}

	return fx.Module("catalog", moduleOpts...)
}
