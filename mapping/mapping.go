package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// KeyDelimiter separates the segments of a flat override key.
const KeyDelimiter = "__"

// ErrPathConflict is returned when a flat key would nest below a scalar value,
// or replace a branch that already holds nested values.
var ErrPathConflict = errors.New("path conflicts with an existing value")

// ErrEmptyKey is returned when SetPath receives an empty key.
var ErrEmptyKey = errors.New("empty key")

// Merge deep-merges updates into base.
//
// Keys whose update value is nil are skipped. When both sides hold a nested
// map[string]any the merge recurses, otherwise the update value replaces the base
// value. Replaced values are cloned so base never aliases updates.
func Merge(base, updates map[string]any) {
	for key, value := range updates {
		if value == nil {
			continue
		}

		baseChild, baseIsMap := base[key].(map[string]any)
		updateChild, updateIsMap := value.(map[string]any)

		if baseIsMap && updateIsMap {
			Merge(baseChild, updateChild)

			continue
		}

		base[key] = cloneValue(value)
	}
}

// SetPath stores value in target under the nested path described by key.
// Segments are separated by KeyDelimiter and lower-cased. Intermediate maps are
// created on demand, so repeated calls against one accumulator share branches.
func SetPath(target map[string]any, key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}

	segments := strings.Split(strings.ToLower(key), KeyDelimiter)
	node := target

	for i, segment := range segments[:len(segments)-1] {
		existing, found := node[segment]
		if !found {
			child := make(map[string]any)
			node[segment] = child
			node = child

			continue
		}

		child, isMap := existing.(map[string]any)
		if !isMap {
			return fmt.Errorf("%w: %q holds a scalar", ErrPathConflict, strings.Join(segments[:i+1], KeyDelimiter))
		}

		node = child
	}

	last := segments[len(segments)-1]

	if branch, isMap := node[last].(map[string]any); isMap && len(branch) > 0 {
		return fmt.Errorf("%w: %q holds nested values", ErrPathConflict, strings.Join(segments, KeyDelimiter))
	}

	node[last] = value

	return nil
}

// Clone returns a deep copy of m. Nested maps and []any slices are copied,
// any other value is shared.
func Clone(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = cloneValue(value)
	}

	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return Clone(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}

		return out
	default:
		return value
	}
}
