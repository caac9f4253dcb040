// Package mapping provides the primitives used to layer untyped configuration trees.
//
// Trees are plain nested map[string]any values as produced by document parsers.
// Two operations are provided:
//   - Merge: deep-merges an update tree into a base tree in place. A nil update
//     value means "no opinion" and never erases the base value.
//   - SetPath: decodes a flat, double-underscore delimited key such as
//     "provider__search__timeout" into nested branches of an accumulator tree.
//
// Usage:
//
//	overrides := map[string]any{}
//	_ = mapping.SetPath(overrides, "FOO__PRIORITY", "9")
//	// overrides == map[string]any{"foo": map[string]any{"priority": "9"}}
package mapping
