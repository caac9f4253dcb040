package registry

import (
	"io"

	"go.uber.org/fx"

	"github.com/0xalexb/hjarta-registry/catalog"
	"github.com/0xalexb/hjarta-registry/config"
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

// WithCatalog adds the catalog module built from opts.
// The built catalog.Catalog is then available for injection.
func WithCatalog(opts ...catalog.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, catalog.NewModule(opts...))
	}
}

// WithSettings configures logging from settings and adds the catalog module
// built from them. The settings are supplied to the container as well.
func WithSettings(settings *config.Settings) Option {
	return func(o *Options) {
		o.LogLevel = settings.LogLevel
		o.LogFormat = settings.LogFormat
		o.Modules = append(o.Modules, fx.Supply(settings), catalog.NewModule())
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

// WithLogFormat selects "json" or "text" log lines. Defaults to "json".
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogOutput sets where logs are written. Defaults to os.Stderr.
func WithLogOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogOutput = w
	}
}
