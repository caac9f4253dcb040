package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// Parser implements config.Parser for YAML settings files.
type Parser struct {
	options []yaml.DecodeOption
}

// Option configures a Parser.
type Option func(*Parser)

// WithStrict makes Parse fail on keys that match no field of the target struct.
func WithStrict() Option {
	return func(p *Parser) {
		p.options = append(p.options, yaml.Strict())
	}
}

// NewParser creates a YAML parser.
func NewParser(opts ...Option) *Parser {
	parser := &Parser{}
	for _, opt := range opts {
		opt(parser)
	}

	return parser
}

// Parse unmarshals the YAML node found at path into target.
// The path uses a colon as separator, an empty path selects the whole document.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.UnmarshalWithOptions(data, target, p.options...)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	yamlPath, err := yaml.PathString(convertToYAMLPath(path))
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	node, err := yamlPath.ReadNode(bytes.NewReader(data))
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	err = yaml.UnmarshalWithOptions([]byte(node.String()), target, p.options...)
	if err != nil {
		return fmt.Errorf("unmarshal path %q: %w", path, err)
	}

	return nil
}

// convertToYAMLPath turns "registry:logging" into "$.registry.logging".
func convertToYAMLPath(path string) string {
	return "$." + strings.Join(strings.Split(path, ":"), ".")
}
