package catalog

import (
	"errors"
	"fmt"
)

// ErrValidation is the kind shared by every structural validation failure.
var ErrValidation = errors.New("validation failed")

// ErrMissingName is returned when a provider config has no name.
var ErrMissingName = fmt.Errorf("%w: provider config must have name key", ErrValidation)

// ErrNoPlugin is returned when a provider config declares none of the plugin slots.
var ErrNoPlugin = fmt.Errorf("%w: a provider must implement at least one plugin", ErrValidation)

// ErrAPIExclusive is returned when a provider config combines an api plugin with any other plugin.
var ErrAPIExclusive = fmt.Errorf(
	"%w: a provider implementing an api plugin must not implement any other type of plugin", ErrValidation)

// ErrMissingPluginType is returned when a plugin config does not name its plugin type.
var ErrMissingPluginType = fmt.Errorf("%w: a plugin config must specify the plugin it configures", ErrValidation)

// ErrTypeMismatch is returned when a value does not have the shape a field requires,
// such as a scalar where a plugin mapping is expected.
var ErrTypeMismatch = errors.New("type mismatch")

// ErrNotProvider is returned when a catalog document is neither a provider nor a mapping.
var ErrNotProvider = errors.New("document is not a provider config")
