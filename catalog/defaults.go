package catalog

import (
	"fmt"

	"dario.cat/mergo"
)

// Defaults holds the values filled into provider configs that leave them unset.
type Defaults struct {
	// OutputsPrefix is the directory download and api plugins write to.
	OutputsPrefix string
}

// ApplyDefaults fills the unset fields of provider. Values already present are kept.
func ApplyDefaults(provider *ProviderConfig, defaults Defaults) error {
	for _, plugin := range []*PluginConfig{provider.Download, provider.API} {
		if plugin == nil {
			continue
		}

		err := mergo.Merge(plugin, PluginConfig{OutputsPrefix: defaults.OutputsPrefix})
		if err != nil {
			return fmt.Errorf("applying plugin defaults for %q: %w", provider.Name, err)
		}
	}

	priority := 0

	err := mergo.Merge(provider, ProviderConfig{Priority: &priority})
	if err != nil {
		return fmt.Errorf("applying provider defaults for %q: %w", provider.Name, err)
	}

	return nil
}
