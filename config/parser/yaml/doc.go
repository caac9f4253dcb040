// Package yaml provides the YAML config.Parser used for registry settings files.
//
// Paths use a colon separator and are translated to goccy/go-yaml path
// expressions, so "registry:logging" reads the node at "$.registry.logging".
// An empty path decodes the whole document.
//
//	parser := yaml.NewParser(yaml.WithStrict())
//	var settings config.Settings
//	err := parser.Parse(data, &settings, "registry")
//
// WithStrict rejects keys that match no field of the target, which catches
// misspelled settings early.
package yaml
