package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xalexb/hjarta-registry/config"
	"github.com/0xalexb/hjarta-registry/config/fetcher/file"
)

// Options configures Build.
type Options struct {
	// CatalogPath is the base catalog file. Empty selects the embedded catalog.
	CatalogPath string
	// UserConfigPath is an optional override file. A leading ~ is expanded.
	UserConfigPath string
	// EnvNamespace prefixes the override environment variables.
	EnvNamespace string
	// Environ lists the KEY=value pairs scanned for overrides. Nil reads os.Environ.
	Environ []string
	// Overrides are applied last, in order.
	Overrides []map[string]any
	// Defaults fills unset provider fields.
	Defaults Defaults
}

// Option defines a function type for configuring Build.
type Option func(*Options)

// WithCatalogPath sets the base catalog file.
func WithCatalogPath(path string) Option {
	return func(o *Options) {
		o.CatalogPath = path
	}
}

// WithUserConfigPath sets the user override file.
func WithUserConfigPath(path string) Option {
	return func(o *Options) {
		o.UserConfigPath = path
	}
}

// WithEnvNamespace sets the environment variable namespace.
func WithEnvNamespace(namespace string) Option {
	return func(o *Options) {
		o.EnvNamespace = namespace
	}
}

// WithEnviron replaces os.Environ as the source of environment overrides.
func WithEnviron(environ []string) Option {
	return func(o *Options) {
		o.Environ = environ
	}
}

// WithOverrides appends override mappings applied after the environment.
func WithOverrides(overrides ...map[string]any) Option {
	return func(o *Options) {
		o.Overrides = append(o.Overrides, overrides...)
	}
}

// WithDefaults sets the provider defaults.
func WithDefaults(defaults Defaults) Option {
	return func(o *Options) {
		o.Defaults = defaults
	}
}

// WithSettings copies the catalog related values of settings.
func WithSettings(settings *config.Settings) Option {
	return func(o *Options) {
		o.CatalogPath = settings.CatalogPath
		o.UserConfigPath = settings.UserConfigPath
		o.EnvNamespace = settings.EnvNamespace
		o.Defaults.OutputsPrefix = settings.OutputsPrefix
	}
}

// NewOptions applies opts over the default options.
func NewOptions(opts ...Option) Options {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	options.SetDefaults()

	return options
}

// SetDefaults fills the empty namespace and output prefix.
func (o *Options) SetDefaults() bool {
	changed := false

	if o.EnvNamespace == "" {
		o.EnvNamespace = config.DefaultEnvNamespace
		changed = true
	}

	if o.Defaults.OutputsPrefix == "" {
		o.Defaults.OutputsPrefix = os.TempDir()
		changed = true
	}

	return changed
}

// Build assembles a catalog from its layers: the base catalog, the user
// override file, the environment, then the runtime overrides.
func Build(opts ...Option) (Catalog, error) {
	return NewOptions(opts...).Build()
}

// Build assembles a catalog from o, see the package level Build.
func (o Options) Build() (Catalog, error) {
	catalog, err := o.loadBase()
	if err != nil {
		return nil, err
	}

	var errs []error

	if o.UserConfigPath != "" {
		err = o.applyUserConfig(catalog)
		if err != nil {
			return nil, err
		}
	}

	environ := o.Environ
	if environ == nil {
		environ = os.Environ()
	}

	err = catalog.OverrideFromEnv(o.EnvNamespace, environ, o.Defaults)
	if err != nil {
		errs = append(errs, fmt.Errorf("environment overrides: %w", err))
	}

	for index, overrides := range o.Overrides {
		err = catalog.OverrideFromMapping(overrides, o.Defaults)
		if err != nil {
			errs = append(errs, fmt.Errorf("runtime overrides %d: %w", index, err))
		}
	}

	err = errors.Join(errs...)
	if err != nil {
		return nil, err
	}

	return catalog, nil
}

func (o Options) loadBase() (Catalog, error) {
	if o.CatalogPath == "" {
		return LoadDefault(o.Defaults)
	}

	path := expandHome(o.CatalogPath)

	slog.Info("loading catalog", slog.String("path", path))

	fetcher, err := file.NewFetcher(path)()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	catalog, err := Load(fetcher, o.Defaults)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", fetcher.Source(), err)
	}

	return catalog, nil
}

func (o Options) applyUserConfig(catalog Catalog) error {
	path := expandHome(o.UserConfigPath)

	slog.Info("loading user configuration", slog.String("path", path))

	fetcher, err := file.NewFetcher(path)()
	if err != nil {
		return fmt.Errorf("user configuration: %w", err)
	}

	err = catalog.OverrideFromFile(fetcher, o.Defaults)
	if err != nil {
		return fmt.Errorf("user configuration %q: %w", fetcher.Source(), err)
	}

	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
