package catalog

import (
	"fmt"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/hjarta-registry/mapping"
)

// Provider field names.
const (
	FieldName     = "name"
	FieldPriority = "priority"
)

// Plugin slot names, in the order they are written out.
const (
	SlotAPI      = "api"
	SlotSearch   = "search"
	SlotDownload = "download"
	SlotAuth     = "auth"
)

// PluginSlots returns the plugin slot names in output order.
func PluginSlots() []string {
	return []string{SlotAPI, SlotSearch, SlotDownload, SlotAuth}
}

func isPluginSlot(key string) bool {
	return slices.Contains(PluginSlots(), key)
}

// ProviderConfig is one catalog entry. Name is the slugified provider
// identifier. A nil Priority means the priority was never set. Unknown
// fields are kept in Extra.
type ProviderConfig struct {
	Name     string         `mapstructure:"name"`
	Priority *int           `mapstructure:"priority"`
	API      *PluginConfig  `mapstructure:"-"`
	Search   *PluginConfig  `mapstructure:"-"`
	Download *PluginConfig  `mapstructure:"-"`
	Auth     *PluginConfig  `mapstructure:"-"`
	Extra    map[string]any `mapstructure:",remain"`
}

// ValidateProviderKeys checks the key set of a provider mapping before any value is built.
func ValidateProviderKeys(keys []string) error {
	if !slices.Contains(keys, FieldName) {
		return ErrMissingName
	}

	hasAPI := slices.Contains(keys, SlotAPI)
	others := 0

	for _, slot := range []string{SlotSearch, SlotDownload, SlotAuth} {
		if slices.Contains(keys, slot) {
			others++
		}
	}

	if !hasAPI && others == 0 {
		return ErrNoPlugin
	}

	if hasAPI && others > 0 {
		return ErrAPIExclusive
	}

	return nil
}

// NewProviderConfig builds a provider config from a plain field mapping.
// Plugin slots may hold either a mapping or an already built *PluginConfig.
// The name is slugified.
func NewProviderConfig(fields map[string]any) (*ProviderConfig, error) {
	err := ValidateProviderKeys(sortedKeys(fields))
	if err != nil {
		return nil, err
	}

	provider := &ProviderConfig{}
	scalars := make(map[string]any, len(fields))

	for key, value := range fields {
		if !isPluginSlot(key) {
			scalars[key] = value

			continue
		}

		plugin, err := pluginFromValue(value)
		if err != nil {
			return nil, fmt.Errorf("%s plugin: %w", key, err)
		}

		provider.setPlugin(key, plugin)
	}

	err = decodeFields(scalars, provider)
	if err != nil {
		return nil, fmt.Errorf("provider config: %w", err)
	}

	provider.Name = Slugify(provider.Name)

	err = provider.Validate()
	if err != nil {
		return nil, err
	}

	return provider, nil
}

func pluginFromValue(value any) (*PluginConfig, error) {
	switch typed := value.(type) {
	case *PluginConfig:
		if typed == nil {
			return nil, fmt.Errorf("%w: plugin slot is null", ErrTypeMismatch)
		}

		return typed.Clone(), nil
	case map[string]any:
		return NewPluginConfig(typed)
	default:
		return nil, fmt.Errorf("%w: plugin slot must be a mapping, got %T", ErrTypeMismatch, value)
	}
}

// Validate checks the structural rules every provider config obeys.
func (p *ProviderConfig) Validate() error {
	if p.Name == "" {
		return ErrMissingName
	}

	if p.API == nil && p.Search == nil && p.Download == nil && p.Auth == nil {
		return ErrNoPlugin
	}

	if p.API != nil && (p.Search != nil || p.Download != nil || p.Auth != nil) {
		return ErrAPIExclusive
	}

	for _, slot := range PluginSlots() {
		plugin := p.Plugin(slot)
		if plugin == nil {
			continue
		}

		err := plugin.Validate()
		if err != nil {
			return fmt.Errorf("%s plugin: %w", slot, err)
		}
	}

	return nil
}

// Plugin returns the plugin config held in slot, or nil.
func (p *ProviderConfig) Plugin(slot string) *PluginConfig {
	switch slot {
	case SlotAPI:
		return p.API
	case SlotSearch:
		return p.Search
	case SlotDownload:
		return p.Download
	case SlotAuth:
		return p.Auth
	default:
		return nil
	}
}

func (p *ProviderConfig) setPlugin(slot string, plugin *PluginConfig) {
	switch slot {
	case SlotAPI:
		p.API = plugin
	case SlotSearch:
		p.Search = plugin
	case SlotDownload:
		p.Download = plugin
	case SlotAuth:
		p.Auth = plugin
	}
}

// Clone returns a deep copy of p.
func (p *ProviderConfig) Clone() *ProviderConfig {
	if p == nil {
		return nil
	}

	out := &ProviderConfig{
		Name:     p.Name,
		API:      p.API.Clone(),
		Search:   p.Search.Clone(),
		Download: p.Download.Clone(),
		Auth:     p.Auth.Clone(),
		Extra:    mapping.Clone(p.Extra),
	}

	if p.Priority != nil {
		priority := *p.Priority
		out.Priority = &priority
	}

	return out
}

// Fields returns the provider config as a plain mapping that shares nothing with p.
func (p *ProviderConfig) Fields() map[string]any {
	fields := mapping.Clone(p.Extra)
	if fields == nil {
		fields = make(map[string]any, 2)
	}

	fields[FieldName] = p.Name

	if p.Priority != nil {
		fields[FieldPriority] = *p.Priority
	}

	for _, slot := range PluginSlots() {
		if plugin := p.Plugin(slot); plugin != nil {
			fields[slot] = plugin.Fields()
		}
	}

	return fields
}

// Update applies overrides to the provider config.
//
// Fields other than the name and the plugin slots are deep-merged, nil values
// ignored. For every slot the provider already holds, the matching override
// mapping is applied to that plugin. Overrides for slots the provider does not
// hold are ignored. On error the provider is left unchanged.
func (p *ProviderConfig) Update(overrides map[string]any) error {
	next, err := p.updated(overrides)
	if err != nil {
		return err
	}

	*p = *next

	return nil
}

func (p *ProviderConfig) updated(overrides map[string]any) (*ProviderConfig, error) {
	next := p.Clone()
	if len(overrides) == 0 {
		return next, nil
	}

	scalars := mapping.Clone(p.Extra)
	if scalars == nil {
		scalars = make(map[string]any, 1)
	}

	if p.Priority != nil {
		scalars[FieldPriority] = *p.Priority
	}

	for key, value := range overrides {
		if key == FieldName || isPluginSlot(key) {
			continue
		}

		mapping.Merge(scalars, map[string]any{key: value})
	}

	decoded := &ProviderConfig{}

	err := decodeFields(scalars, decoded)
	if err != nil {
		return nil, fmt.Errorf("provider %q: %w", p.Name, err)
	}

	next.Priority = decoded.Priority
	next.Extra = decoded.Extra

	for _, slot := range PluginSlots() {
		plugin := next.Plugin(slot)
		if plugin == nil {
			continue
		}

		slotOverrides, err := asFields(overrides[slot])
		if err != nil {
			return nil, fmt.Errorf("provider %q %s plugin: %w", p.Name, slot, err)
		}

		err = plugin.Update(slotOverrides)
		if err != nil {
			return nil, fmt.Errorf("provider %q %s plugin: %w", p.Name, slot, err)
		}
	}

	return next, nil
}

// MarshalYAML writes name and priority first, then the extra fields in key
// order, then the plugin slots. Plugins are written untagged.
func (p *ProviderConfig) MarshalYAML() (any, error) {
	out := yaml.MapSlice{{Key: FieldName, Value: p.Name}}

	if p.Priority != nil {
		out = append(out, yaml.MapItem{Key: FieldPriority, Value: *p.Priority})
	}

	for _, key := range sortedKeys(p.Extra) {
		out = append(out, yaml.MapItem{Key: key, Value: p.Extra[key]})
	}

	for _, slot := range PluginSlots() {
		if plugin := p.Plugin(slot); plugin != nil {
			out = append(out, yaml.MapItem{Key: slot, Value: plugin})
		}
	}

	return out, nil
}
