package catalog

import (
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-registry/config"
	"github.com/0xalexb/hjarta-registry/resources"
)

// Parse builds a catalog from a stream of provider documents.
// Each document is either a !provider node or a plain provider mapping.
// Defaults are applied to every provider. Any invalid document fails the whole parse.
func Parse(data []byte, defaults Defaults) (Catalog, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}

	docs, err := registry.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	catalog := make(Catalog, len(docs))

	for index, doc := range docs {
		provider, err := asProvider(doc)
		if err != nil {
			return nil, fmt.Errorf("provider document %d: %w", index, err)
		}

		err = ApplyDefaults(provider, defaults)
		if err != nil {
			return nil, err
		}

		if _, found := catalog[provider.Name]; found {
			slog.Warn("duplicate provider, later definition wins", slog.String("provider", provider.Name))
		}

		catalog[provider.Name] = provider
	}

	return catalog, nil
}

// Load reads a catalog from fetcher, see Parse.
func Load(fetcher config.DataFetcher, defaults Defaults) (Catalog, error) {
	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	return Parse(data, defaults)
}

// LoadDefault loads the catalog embedded in the binary.
func LoadDefault(defaults Defaults) (Catalog, error) {
	fetcher, err := resources.Fetcher(resources.Providers)
	if err != nil {
		return nil, err
	}

	slog.Info("loading default catalog", slog.String("path", fetcher.Source()))

	catalog, err := Load(fetcher, defaults)
	if err != nil {
		return nil, fmt.Errorf("default catalog %q: %w", fetcher.Source(), err)
	}

	return catalog, nil
}

func asProvider(doc any) (*ProviderConfig, error) {
	switch typed := doc.(type) {
	case *ProviderConfig:
		return typed, nil
	case map[string]any:
		provider, err := NewProviderConfig(typed)
		if err != nil {
			return nil, nameContext(typed, err)
		}

		return provider, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotProvider, doc)
	}
}

// nameContext adds the raw provider name, when there is one, to err.
func nameContext(fields map[string]any, err error) error {
	if name, ok := fields[FieldName].(string); ok && name != "" {
		return fmt.Errorf("provider %q: %w", name, err)
	}

	return err
}
