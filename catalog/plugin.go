package catalog

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/hjarta-registry/mapping"
)

// Plugin field names.
const (
	FieldType          = "type"
	FieldOutputsPrefix = "outputs_prefix"
)

// PluginConfig configures one plugin of a provider. Type names the plugin
// implementation. Any field other than the known ones is kept in Params.
type PluginConfig struct {
	Type          string         `mapstructure:"type"`
	OutputsPrefix string         `mapstructure:"outputs_prefix"`
	Params        map[string]any `mapstructure:",remain"`
}

// ValidatePluginKeys checks the key set of a plugin mapping before any value is built.
func ValidatePluginKeys(keys []string) error {
	for _, key := range keys {
		if key == FieldType {
			return nil
		}
	}

	return ErrMissingPluginType
}

// NewPluginConfig builds a plugin config from a plain field mapping.
func NewPluginConfig(fields map[string]any) (*PluginConfig, error) {
	err := ValidatePluginKeys(sortedKeys(fields))
	if err != nil {
		return nil, err
	}

	return decodePlugin(fields)
}

func decodePlugin(fields map[string]any) (*PluginConfig, error) {
	plugin := &PluginConfig{}

	err := decodeFields(fields, plugin)
	if err != nil {
		return nil, fmt.Errorf("plugin config: %w", err)
	}

	err = plugin.Validate()
	if err != nil {
		return nil, err
	}

	return plugin, nil
}

// Validate reports whether the plugin config names its plugin type.
func (p *PluginConfig) Validate() error {
	if p.Type == "" {
		return ErrMissingPluginType
	}

	return nil
}

// Fields returns the plugin config as a plain mapping that shares nothing with p.
func (p *PluginConfig) Fields() map[string]any {
	fields := mapping.Clone(p.Params)
	if fields == nil {
		fields = make(map[string]any, 2)
	}

	fields[FieldType] = p.Type

	if p.OutputsPrefix != "" {
		fields[FieldOutputsPrefix] = p.OutputsPrefix
	}

	return fields
}

// Clone returns a deep copy of p.
func (p *PluginConfig) Clone() *PluginConfig {
	if p == nil {
		return nil
	}

	return &PluginConfig{
		Type:          p.Type,
		OutputsPrefix: p.OutputsPrefix,
		Params:        mapping.Clone(p.Params),
	}
}

// Update deep-merges overrides into the plugin config. Nil values are ignored.
// The config is left unchanged when the merged result does not decode.
func (p *PluginConfig) Update(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}

	fields := p.Fields()
	mapping.Merge(fields, overrides)

	next, err := decodePlugin(fields)
	if err != nil {
		return err
	}

	*p = *next

	return nil
}

// MarshalYAML writes type first, then outputs_prefix, then the remaining params in key order.
func (p *PluginConfig) MarshalYAML() (any, error) {
	out := yaml.MapSlice{{Key: FieldType, Value: p.Type}}

	if p.OutputsPrefix != "" {
		out = append(out, yaml.MapItem{Key: FieldOutputsPrefix, Value: p.OutputsPrefix})
	}

	for _, key := range sortedKeys(p.Params) {
		out = append(out, yaml.MapItem{Key: key, Value: p.Params[key]})
	}

	return out, nil
}
