package config

import (
	"fmt"
	"log/slog"
)

// Parser defines an interface for parsing configuration data into a target structure.
//
// The path parameter specifies a navigation path within the configuration data
// using colon (:) as the separator for nested keys. For example:
//   - "registry" navigates to config["registry"]
//   - "registry:logging" navigates to config["registry"]["logging"]
//   - "" (empty path) means parse the entire document
//
// Parser implementations are responsible for path navigation internally.
// See config/parser/yaml for the goccy/go-yaml implementation.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher defines an interface for reading configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that reads, parses, sets defaults, and validates configuration data.
// A nil DataFetcher skips reading and parsing, so target only receives its defaults.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, dataSourcer DataFetcher) (*T, error) {
		if dataSourcer != nil {
			data, err := dataSourcer.Fetch()
			if err != nil {
				return nil, fmt.Errorf("reading data error: %w", err)
			}

			err = parser.Parse(data, target, path)
			if err != nil {
				return nil, fmt.Errorf("parsing error: %w", err)
			}
		}

		err := Finalize(target)
		if err != nil {
			return nil, err
		}

		return target, nil
	}
}

// Finalize applies defaults to target and validates it, for values assembled
// outside Provider such as settings overlaid with command line flags.
func Finalize(target any) error {
	if defaulter, isDefaulter := target.(Defaulter); isDefaulter {
		if defaulter.SetDefaults() {
			slog.Debug("defaults applied", slog.String("type", fmt.Sprintf("%T", target)))
		}
	}

	if validator, isValidator := target.(Validator); isValidator {
		err := validator.Validate()
		if err != nil {
			return fmt.Errorf("validating error: %w", err)
		}
	}

	return nil
}
