package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	registry "github.com/0xalexb/hjarta-registry"
	"github.com/0xalexb/hjarta-registry/catalog"
	"github.com/0xalexb/hjarta-registry/config"
	"github.com/0xalexb/hjarta-registry/config/fetcher/file"
	yamlparser "github.com/0xalexb/hjarta-registry/config/parser/yaml"
	"github.com/0xalexb/hjarta-registry/mapping"
)

var errInvalidSet = errors.New("invalid --set value, expected key=value")

type rootFlags struct {
	configPath     string
	catalogPath    string
	userConfigPath string
	envNamespace   string
	outputsPrefix  string
	logLevel       string
	logFormat      string
	sets           []string
}

// cli holds the state shared by the subcommands.
type cli struct {
	flags rootFlags
	// environ replaces os.Environ when not nil.
	environ []string
}

func newRootCmd(environ []string) *cobra.Command {
	state := &cli{environ: environ}

	rootCmd := &cobra.Command{
		Use:   "registry",
		Short: "Assemble and inspect the provider catalog",
		Long: `registry builds the provider catalog from its layers:

  1. the base catalog, embedded or given with --catalog
  2. the user override file given with --user-config
  3. environment variables named NAMESPACE__provider__field
  4. --set key=value pairs, with __ separating nested keys`,
		Version:      registry.VersionString(),
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&state.flags.configPath, "config", "", "settings file (YAML)")
	flags.StringVar(&state.flags.catalogPath, "catalog", "", "provider catalog file, the embedded catalog when empty")
	flags.StringVar(&state.flags.userConfigPath, "user-config", "", "user override file")
	flags.StringVar(&state.flags.envNamespace, "env-namespace", "", "prefix of override environment variables (default REGISTRY)")
	flags.StringVar(&state.flags.outputsPrefix, "outputs-prefix", "", "default output directory of download and api plugins")
	flags.StringVar(&state.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&state.flags.logFormat, "log-format", "", "log format: json, text")
	flags.StringArrayVar(&state.flags.sets, "set", nil, "override as provider__field=value, repeatable")

	rootCmd.AddCommand(
		newDumpCmd(state),
		newProvidersCmd(state),
		newValidateCmd(state),
	)

	return rootCmd
}

// loadSettings reads the settings file, when given, and overlays the flags.
func (c *cli) loadSettings() (*config.Settings, error) {
	var fetcher config.DataFetcher

	if c.flags.configPath != "" {
		fileFetcher, err := file.NewFetcher(c.flags.configPath)()
		if err != nil {
			return nil, fmt.Errorf("settings: %w", err)
		}

		fetcher = fileFetcher
	}

	settings, err := config.Provider(new(config.Settings), "")(yamlparser.NewParser(yamlparser.WithStrict()), fetcher)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	overlay(&settings.CatalogPath, c.flags.catalogPath)
	overlay(&settings.UserConfigPath, c.flags.userConfigPath)
	overlay(&settings.EnvNamespace, c.flags.envNamespace)
	overlay(&settings.OutputsPrefix, c.flags.outputsPrefix)
	overlay(&settings.LogLevel, c.flags.logLevel)
	overlay(&settings.LogFormat, c.flags.logFormat)

	err = config.Finalize(settings)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	return settings, nil
}

func overlay(target *string, value string) {
	if value != "" {
		*target = value
	}
}

// parseSets decodes the --set pairs into one override mapping. Values are
// read as YAML scalars, so numbers and booleans keep their type.
func parseSets(sets []string) (map[string]any, error) {
	overrides := make(map[string]any)

	for _, pair := range sets {
		key, raw, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidSet, pair)
		}

		var value any = raw

		var decoded any

		err := yaml.Unmarshal([]byte(raw), &decoded)
		if err == nil && decoded != nil {
			switch decoded.(type) {
			case map[string]any, []any:
			default:
				value = decoded
			}
		}

		err = mapping.SetPath(overrides, key, value)
		if err != nil {
			return nil, fmt.Errorf("--set %q: %w", pair, err)
		}
	}

	return overrides, nil
}

// buildCatalog runs the registry app and returns the catalog it built.
func (c *cli) buildCatalog(cmd *cobra.Command) (catalog.Catalog, error) {
	settings, err := c.loadSettings()
	if err != nil {
		return nil, err
	}

	overrides, err := parseSets(c.flags.sets)
	if err != nil {
		return nil, err
	}

	catalogOpts := []catalog.Option{catalog.WithSettings(settings)}
	if c.environ != nil {
		catalogOpts = append(catalogOpts, catalog.WithEnviron(c.environ))
	}

	if len(overrides) > 0 {
		catalogOpts = append(catalogOpts, catalog.WithOverrides(overrides))
	}

	var built catalog.Catalog

	app := registry.NewApp(
		registry.WithLogLevel(settings.LogLevel),
		registry.WithLogFormat(settings.LogFormat),
		registry.WithLogOutput(cmd.ErrOrStderr()),
		registry.WithCatalog(catalogOpts...),
		registry.WithModules(fx.Supply(settings), fx.Populate(&built)),
	)

	err = app.Start()
	if err != nil {
		return nil, err
	}

	err = app.Stop()
	if err != nil {
		return nil, err
	}

	return built, nil
}
