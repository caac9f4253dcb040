package catalog

import (
	"fmt"

	"github.com/0xalexb/hjarta-registry/document"
)

// Document tags understood by the catalog loader.
const (
	ProviderTag = "!provider"
	PluginTag   = "!plugin"
)

// Catalog maps provider names to their configs.
type Catalog map[string]*ProviderConfig

// Names returns the provider names in sorted order.
func (c Catalog) Names() []string {
	return sortedKeys(c)
}

// Clone returns a deep copy of c.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for name, provider := range c {
		out[name] = provider.Clone()
	}

	return out
}

// NewRegistry returns a document registry that builds provider and plugin
// configs from the !provider and !plugin tags.
func NewRegistry() (*document.Registry, error) {
	registry := document.NewRegistry()

	err := registry.Register(ProviderTag, document.Constructor{
		ValidateKeys: ValidateProviderKeys,
		Build: func(fields map[string]any) (any, error) {
			provider, err := NewProviderConfig(fields)
			if err != nil {
				return nil, err
			}

			return provider, nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("registering %s: %w", ProviderTag, err)
	}

	err = registry.Register(PluginTag, document.Constructor{
		ValidateKeys: ValidatePluginKeys,
		Build: func(fields map[string]any) (any, error) {
			plugin, err := NewPluginConfig(fields)
			if err != nil {
				return nil, err
			}

			return plugin, nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("registering %s: %w", PluginTag, err)
	}

	return registry, nil
}
