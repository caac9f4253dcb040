package document

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// ErrNotMapping is returned when a registered tag is attached to a non-mapping node.
var ErrNotMapping = errors.New("tagged node is not a mapping")

// ErrUnknownAlias is returned when an alias refers to an anchor not defined before it.
var ErrUnknownAlias = errors.New("unknown alias")

// ErrRecursiveAlias is returned when an alias refers to the anchor that encloses it.
var ErrRecursiveAlias = errors.New("recursive alias")

// ErrInvalidMerge is returned when a "<<" merge key holds something other than
// a mapping or a sequence of mappings.
var ErrInvalidMerge = errors.New("merge value must be a mapping or a sequence of mappings")

// ErrUnsupportedNode is returned for AST nodes that carry no value.
var ErrUnsupportedNode = errors.New("unsupported node")

// Decode parses every document of data and resolves the tags registered in r.
// Documents without content are skipped.
func (r *Registry) Decode(data []byte) ([]any, error) {
	return decodeAll(data, r)
}

// DecodeSafe parses every document of data into plain values.
// Custom tags are ignored and their node values decoded as if untagged.
func DecodeSafe(data []byte) ([]any, error) {
	return decodeAll(data, nil)
}

func decodeAll(data []byte, registry *Registry) ([]any, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	docs := make([]any, 0, len(file.Docs))

	for index, doc := range file.Docs {
		if doc == nil || doc.Body == nil {
			continue
		}

		res := newResolver(registry)

		value, err := res.resolve(doc.Body)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", index, err)
		}

		if value == nil {
			continue
		}

		docs = append(docs, value)
	}

	return docs, nil
}

// resolver holds the anchor table of a single document.
// Aliases re-resolve the anchored node so every use gets fresh values.
type resolver struct {
	registry *Registry
	anchors  map[string]ast.Node
	active   map[string]bool
}

func newResolver(registry *Registry) *resolver {
	return &resolver{
		registry: registry,
		anchors:  make(map[string]ast.Node),
		active:   make(map[string]bool),
	}
}

func (r *resolver) resolve(node ast.Node) (any, error) {
	switch typed := node.(type) {
	case nil:
		return nil, nil
	case *ast.TagNode:
		return r.tagged(typed)
	case *ast.AnchorNode:
		r.anchors[typed.Name.GetToken().Value] = typed.Value

		return r.resolve(typed.Value)
	case *ast.AliasNode:
		return r.alias(typed)
	case *ast.MappingNode:
		return r.mapping(typed.Values)
	case *ast.MappingValueNode:
		return r.mapping([]*ast.MappingValueNode{typed})
	case *ast.SequenceNode:
		items := make([]any, 0, len(typed.Values))

		for _, item := range typed.Values {
			value, err := r.resolve(item)
			if err != nil {
				return nil, err
			}

			items = append(items, value)
		}

		return items, nil
	case *ast.CommentGroupNode:
		return nil, nil
	case ast.ScalarNode:
		return scalar(typed)
	default:
		return nil, fmt.Errorf("%w: %s at line %d", ErrUnsupportedNode, node.Type(), line(node))
	}
}

func (r *resolver) tagged(node *ast.TagNode) (any, error) {
	tag := node.Start.Value

	constructor, registered := r.registry.Lookup(tag)
	if !registered {
		return r.untagged(node)
	}

	entries, err := mappingEntries(node.Value)
	if err != nil {
		return nil, fmt.Errorf("%s at line %d: %w", tag, line(node), err)
	}

	if constructor.ValidateKeys != nil {
		err = constructor.ValidateKeys(literalKeys(entries))
		if err != nil {
			return nil, fmt.Errorf("%s at line %d: %w", tag, line(node), err)
		}
	}

	fields, err := r.mapping(entries)
	if err != nil {
		return nil, err
	}

	value, err := constructor.Build(fields)
	if err != nil {
		return nil, fmt.Errorf("%s at line %d: %w", tag, line(node), err)
	}

	return value, nil
}

// untagged resolves a node carrying an unregistered tag. Standard scalar tags
// such as "!!str" keep their YAML meaning, anything else is ignored.
func (r *resolver) untagged(node *ast.TagNode) (any, error) {
	if _, isScalar := node.Value.(ast.ScalarNode); isScalar && strings.HasPrefix(node.Start.Value, "!!") {
		return scalar(node)
	}

	return r.resolve(node.Value)
}

// scalar decodes a leaf with goccy's own rules, so block scalars, quoting
// and standard tags yield their values rather than their source text.
func scalar(node ast.Node) (any, error) {
	var value any

	err := yaml.NodeToValue(node, &value)
	if err != nil {
		return nil, fmt.Errorf("decoding scalar at line %d: %w", line(node), err)
	}

	return normalizeScalar(value), nil
}

func (r *resolver) alias(node *ast.AliasNode) (any, error) {
	name := node.Value.GetToken().Value

	target, found := r.anchors[name]
	if !found {
		return nil, fmt.Errorf("%w: %q at line %d", ErrUnknownAlias, name, line(node))
	}

	if r.active[name] {
		return nil, fmt.Errorf("%w: %q at line %d", ErrRecursiveAlias, name, line(node))
	}

	r.active[name] = true
	defer delete(r.active, name)

	return r.resolve(target)
}

func (r *resolver) mapping(entries []*ast.MappingValueNode) (map[string]any, error) {
	fields := make(map[string]any, len(entries))
	inherited := make(map[string]any)

	for _, entry := range entries {
		if entry.Key.IsMergeKey() {
			value, err := r.resolve(entry.Value)
			if err != nil {
				return nil, err
			}

			err = inherit(inherited, value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line(entry), err)
			}

			continue
		}

		key, err := r.key(entry.Key)
		if err != nil {
			return nil, err
		}

		value, err := r.resolve(entry.Value)
		if err != nil {
			return nil, err
		}

		fields[key] = value
	}

	for key, value := range inherited {
		if _, explicit := fields[key]; !explicit {
			fields[key] = value
		}
	}

	return fields, nil
}

func (r *resolver) key(node ast.MapKeyNode) (string, error) {
	value, err := r.resolve(node)
	if err != nil {
		return "", err
	}

	if value == nil {
		return "null", nil
	}

	if text, isString := value.(string); isString {
		return text, nil
	}

	return fmt.Sprint(value), nil
}

// inherit copies merge-key values into target. Earlier sources win.
func inherit(target map[string]any, value any) error {
	switch typed := value.(type) {
	case map[string]any:
		for key, item := range typed {
			if _, exists := target[key]; !exists {
				target[key] = item
			}
		}

		return nil
	case []any:
		for _, item := range typed {
			source, isMap := item.(map[string]any)
			if !isMap {
				return ErrInvalidMerge
			}

			err := inherit(target, source)
			if err != nil {
				return err
			}
		}

		return nil
	default:
		return ErrInvalidMerge
	}
}

func mappingEntries(node ast.Node) ([]*ast.MappingValueNode, error) {
	switch typed := node.(type) {
	case *ast.MappingNode:
		return typed.Values, nil
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{typed}, nil
	default:
		return nil, ErrNotMapping
	}
}

// literalKeys returns the keys as written in the source, merge keys excluded.
func literalKeys(entries []*ast.MappingValueNode) []string {
	keys := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.Key.IsMergeKey() {
			continue
		}

		if scalar, isScalar := entry.Key.(ast.ScalarNode); isScalar {
			keys = append(keys, fmt.Sprint(scalar.GetValue()))

			continue
		}

		keys = append(keys, entry.Key.GetToken().Value)
	}

	return keys
}

func normalizeScalar(value any) any {
	switch typed := value.(type) {
	case uint64:
		if typed <= math.MaxInt {
			return int(typed)
		}
	case int64:
		if typed >= math.MinInt && typed <= math.MaxInt {
			return int(typed)
		}
	}

	return value
}

func line(node ast.Node) int {
	tk := node.GetToken()
	if tk == nil || tk.Position == nil {
		return 0
	}

	return tk.Position.Line
}
