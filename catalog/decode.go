package catalog

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"

	"github.com/go-viper/mapstructure/v2"

	"github.com/0xalexb/hjarta-registry/mapping"
)

// decodeFields maps a plain field mapping onto a config struct. Field names
// match exactly and integers may be given as strings, which is how
// environment overrides carry them. Numbers that do not fit an integer field
// exactly are rejected. The decoded value never aliases fields.
func decodeFields(fields map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToIntHookFunc(),
			exactIntHook,
		),
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
		Result: target,
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}

	err = decoder.Decode(mapping.Clone(fields))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTypeMismatch, err)
	}

	return nil
}

// exactIntHook refuses to truncate fractional numbers or wrap out of range
// ones when the target is a signed integer.
func exactIntHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}

	upper := math.Ldexp(1, to.Bits()-1)
	value := reflect.ValueOf(data)

	switch value.Kind() {
	case reflect.Float32, reflect.Float64:
		number := value.Float()
		if number != math.Trunc(number) || number < -upper || number >= upper {
			return nil, fmt.Errorf("%w: %v is not a %s", ErrTypeMismatch, data, to)
		}

		return int64(number), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if value.Uint() > uint64(upper)-1 {
			return nil, fmt.Errorf("%w: %v overflows %s", ErrTypeMismatch, data, to)
		}

		return int64(value.Uint()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if to.Bits() < 64 {
			limit := int64(1) << (to.Bits() - 1)
			if number := value.Int(); number < -limit || number >= limit {
				return nil, fmt.Errorf("%w: %v overflows %s", ErrTypeMismatch, data, to)
			}
		}
	}

	return data, nil
}

// asFields returns value as a field mapping. A nil value yields a nil mapping.
func asFields(value any) (map[string]any, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return typed, nil
	default:
		return nil, fmt.Errorf("%w: expected a mapping, got %T", ErrTypeMismatch, value)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
