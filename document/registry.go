package document

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidTag is returned when registering a tag that does not start with "!".
var ErrInvalidTag = errors.New("tag must start with '!'")

// ErrDuplicateTag is returned when a tag is registered twice.
var ErrDuplicateTag = errors.New("tag already registered")

// ErrNilBuild is returned when registering a constructor without a Build function.
var ErrNilBuild = errors.New("constructor build function must not be nil")

// Constructor builds a typed value from a tagged mapping node.
type Constructor struct {
	// ValidateKeys receives the literal keys of the tagged mapping before any
	// value is resolved. It may be nil.
	ValidateKeys func(keys []string) error
	// Build receives the resolved fields of the tagged mapping.
	Build func(fields map[string]any) (any, error)
}

// Registry maps tag names to constructors.
// It is populated once at setup and read-only afterwards.
type Registry struct {
	constructors map[string]Constructor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
	}
}

// Register binds tag to constructor.
func (r *Registry) Register(tag string, constructor Constructor) error {
	if !strings.HasPrefix(tag, "!") || strings.HasPrefix(tag, "!!") {
		return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}

	if constructor.Build == nil {
		return fmt.Errorf("tag %q: %w", tag, ErrNilBuild)
	}

	if _, exists := r.constructors[tag]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}

	r.constructors[tag] = constructor

	return nil
}

// Lookup returns the constructor bound to tag. A nil Registry has no tags.
func (r *Registry) Lookup(tag string) (Constructor, bool) {
	if r == nil {
		return Constructor{}, false
	}

	constructor, found := r.constructors[tag]

	return constructor, found
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	if r == nil {
		return nil
	}

	tags := make([]string, 0, len(r.constructors))
	for tag := range r.constructors {
		tags = append(tags, tag)
	}

	slices.Sort(tags)

	return tags
}
