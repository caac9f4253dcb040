package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/0xalexb/hjarta-registry/config"
	"github.com/0xalexb/hjarta-registry/document"
	"github.com/0xalexb/hjarta-registry/mapping"
)

// OverrideFromMapping applies one override layer to the catalog.
//
// The top-level keys of overrides are provider names, visited in sorted order.
// Known providers, matched by name or by slug, are updated in place. An unknown provider is built from its
// override value, with the name injected when absent, and gets the defaults
// applied. An unknown provider that does not validate is logged and skipped.
// Update failures of known providers are collected and returned together,
// after every other provider has been processed.
func (c Catalog) OverrideFromMapping(overrides map[string]any, defaults Defaults) error {
	var errs []error

	for _, name := range sortedKeys(overrides) {
		value := overrides[name]

		if key, existing, found := c.lookup(name); found {
			fields, err := asFields(value)
			if err != nil {
				errs = append(errs, fmt.Errorf("provider %q: %w", name, err))

				continue
			}

			next, err := existing.updated(fields)
			if err != nil {
				errs = append(errs, err)

				continue
			}

			c[key] = next

			continue
		}

		slog.Info("unknown provider found in overrides, trying to use provided configuration",
			slog.String("provider", name))

		provider, err := newFromOverride(name, value, defaults)
		if err != nil {
			slog.Warn(name+" skipped", slog.String("provider", name), slog.String("error", err.Error()))

			continue
		}

		c[provider.Name] = provider
	}

	return errors.Join(errs...)
}

// lookup finds a provider by its exact name, then by the slug of name.
func (c Catalog) lookup(name string) (string, *ProviderConfig, bool) {
	if provider, found := c[name]; found {
		return name, provider, true
	}

	slug := Slugify(name)
	if provider, found := c[slug]; found {
		return slug, provider, true
	}

	return "", nil, false
}

func newFromOverride(name string, value any, defaults Defaults) (*ProviderConfig, error) {
	fields, err := asFields(value)
	if err != nil {
		return nil, err
	}

	fields = mapping.Clone(fields)
	if fields == nil {
		fields = make(map[string]any, 1)
	}

	if _, found := fields[FieldName]; !found {
		fields[FieldName] = name
	}

	provider, err := NewProviderConfig(fields)
	if err != nil {
		return nil, err
	}

	err = ApplyDefaults(provider, defaults)
	if err != nil {
		return nil, err
	}

	return provider, nil
}

// OverrideFromFile applies the override layers read from fetcher. The data is
// decoded without tag resolution. Each non-empty document is one layer, and
// data without documents leaves the catalog unchanged.
func (c Catalog) OverrideFromFile(fetcher config.DataFetcher, defaults Defaults) error {
	data, err := fetcher.Fetch()
	if err != nil {
		return fmt.Errorf("reading overrides: %w", err)
	}

	docs, err := document.DecodeSafe(data)
	if err != nil {
		return fmt.Errorf("decoding overrides: %w", err)
	}

	if len(docs) == 0 {
		slog.Debug("override file is empty, skipping")

		return nil
	}

	var errs []error

	for index, doc := range docs {
		overrides, err := asFields(doc)
		if err != nil {
			errs = append(errs, fmt.Errorf("override document %d: %w", index, err))

			continue
		}

		err = c.OverrideFromMapping(overrides, defaults)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// OverrideFromEnv applies the overrides found in environ, a list of
// KEY=value pairs as returned by os.Environ. See EnvOverrides.
func (c Catalog) OverrideFromEnv(namespace string, environ []string, defaults Defaults) error {
	return c.OverrideFromMapping(EnvOverrides(namespace, environ), defaults)
}

// EnvOverrides decodes the variables of environ named NAMESPACE__a__b__c into
// one nested override mapping {a: {b: {c: value}}}. The namespace prefix is
// matched case-sensitively and the remaining segments are lower-cased.
// Variables are visited in sorted order. One that conflicts with an earlier
// variable is logged and dropped.
func EnvOverrides(namespace string, environ []string) map[string]any {
	prefix := namespace + mapping.KeyDelimiter
	overrides := make(map[string]any)

	for _, pair := range slices.Sorted(slices.Values(environ)) {
		key, value, found := strings.Cut(pair, "=")
		if !found || !strings.HasPrefix(key, prefix) {
			continue
		}

		err := mapping.SetPath(overrides, strings.TrimPrefix(key, prefix), value)
		if err != nil {
			slog.Warn("environment override dropped", slog.String("variable", key), slog.String("error", err.Error()))

			continue
		}

		slog.Debug("environment override", slog.String("variable", key))
	}

	return overrides
}
