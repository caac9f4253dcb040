// Package document turns YAML streams into plain values and tag-constructed entities.
//
// It walks the goccy/go-yaml AST instead of unmarshaling into fixed structs, so that
// custom tags such as "!provider" can be dispatched to constructors registered at
// setup time. A constructor first sees the key set of the tagged mapping, before any
// value is resolved, and only then receives the resolved fields.
//
// Two decoding modes exist:
//   - Registry.Decode resolves registered tags and returns the constructed entities.
//   - DecodeSafe ignores custom tags and returns plain nested maps, slices and scalars.
//
// Both modes support multi-document streams, anchors, aliases and "<<" merge keys.
// Integers are returned as int whenever they fit.
//
// Usage:
//
//	registry := document.NewRegistry()
//	_ = registry.Register("!point", document.Constructor{
//	    ValidateKeys: func(keys []string) error { return nil },
//	    Build:        func(fields map[string]any) (any, error) { return fields, nil },
//	})
//	docs, err := registry.Decode(data)
package document
