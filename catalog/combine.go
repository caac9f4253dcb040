package catalog

import (
	"errors"
	"fmt"
	"maps"
)

// Combine merges two catalogs into a new one. secondary is the base and
// primary takes precedence. Providers found on one side only are copied.
// For a provider found on both sides, primary's priority and extra fields
// replace secondary's. A plugin held by both sides is secondary's plugin
// updated with primary's fields, and a plugin held by one side is kept.
// Neither input is modified.
func Combine(primary, secondary Catalog) (Catalog, error) {
	combined := secondary.Clone()

	var errs []error

	for _, name := range primary.Names() {
		overlay := primary[name]

		base, found := combined[name]
		if !found {
			combined[name] = overlay.Clone()

			continue
		}

		merged, err := combineProviders(overlay, base)
		if err != nil {
			errs = append(errs, fmt.Errorf("provider %q: %w", name, err))

			continue
		}

		combined[name] = merged
	}

	err := errors.Join(errs...)
	if err != nil {
		return nil, err
	}

	return combined, nil
}

// combineProviders returns base overlaid by primary. base must be owned by the caller.
func combineProviders(primary, base *ProviderConfig) (*ProviderConfig, error) {
	merged := base
	merged.Name = primary.Name

	if primary.Priority != nil {
		priority := *primary.Priority
		merged.Priority = &priority
	}

	if len(primary.Extra) > 0 {
		if merged.Extra == nil {
			merged.Extra = make(map[string]any, len(primary.Extra))
		}

		maps.Copy(merged.Extra, primary.Clone().Extra)
	}

	for _, slot := range PluginSlots() {
		overlay := primary.Plugin(slot)
		if overlay == nil {
			continue
		}

		target := merged.Plugin(slot)
		if target == nil {
			merged.setPlugin(slot, overlay.Clone())

			continue
		}

		err := target.Update(overlay.Fields())
		if err != nil {
			return nil, fmt.Errorf("%s plugin: %w", slot, err)
		}
	}

	err := merged.Validate()
	if err != nil {
		return nil, err
	}

	return merged, nil
}
