package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/0xalexb/hjarta-registry/logging"
	"github.com/0xalexb/hjarta-registry/mapping"
)

// DefaultEnvNamespace prefixes the environment variables read as catalog overrides.
const DefaultEnvNamespace = "REGISTRY"

// ErrInvalidNamespace is returned for environment namespaces that are empty
// or contain the key delimiter.
var ErrInvalidNamespace = errors.New("invalid environment namespace")

// Settings configures how the registry assembles its catalog.
type Settings struct {
	// CatalogPath is the provider catalog file. Empty selects the embedded catalog.
	CatalogPath string `yaml:"catalog_path"`
	// UserConfigPath is an optional YAML file of per-provider overrides.
	UserConfigPath string `yaml:"user_config_path"`
	// EnvNamespace prefixes the override environment variables, as in NS__provider__field.
	EnvNamespace string `yaml:"env_namespace"`
	// OutputsPrefix is the default output directory of download and api plugins.
	OutputsPrefix string `yaml:"outputs_prefix"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// LogFormat is json or text.
	LogFormat string `yaml:"log_format"`
}

// SetDefaults fills the empty settings.
func (s *Settings) SetDefaults() bool {
	changed := false

	if s.EnvNamespace == "" {
		s.EnvNamespace = DefaultEnvNamespace
		changed = true
	}

	if s.OutputsPrefix == "" {
		s.OutputsPrefix = os.TempDir()
		changed = true
	}

	if s.LogLevel == "" {
		s.LogLevel = "info"
		changed = true
	}

	if s.LogFormat == "" {
		s.LogFormat = logging.FormatJSON
		changed = true
	}

	return changed
}

// Validate checks the settings.
func (s *Settings) Validate() error {
	if s.EnvNamespace == "" || strings.Contains(s.EnvNamespace, mapping.KeyDelimiter) || strings.ContainsAny(s.EnvNamespace, "= ") {
		return fmt.Errorf("%w: %q", ErrInvalidNamespace, s.EnvNamespace)
	}

	err := logging.ValidateLevel(s.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	err = logging.ValidateFormat(s.LogFormat)
	if err != nil {
		return fmt.Errorf("log_format: %w", err)
	}

	return nil
}
