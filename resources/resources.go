package resources

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/hjarta-registry/config/fetcher/file"
	"github.com/0xalexb/hjarta-registry/document"
)

// Embedded resource names.
const (
	Providers    = "providers.yml"
	Stac         = "stac.yml"
	StacAPI      = "stac_api.yml"
	StacProvider = "stac_provider.yml"
)

// pathPrefix marks strings that are paths into product metadata.
const pathPrefix = "$."

// ErrNotMapping is returned when a resource document is not a mapping.
var ErrNotMapping = errors.New("resource is not a mapping")

//go:embed providers.yml stac.yml stac_api.yml stac_provider.yml
var files embed.FS

// FS returns the embedded resources.
func FS() fs.FS {
	return files
}

// Fetcher returns a DataFetcher serving the embedded resource name.
func Fetcher(name string) (*file.Fetcher, error) {
	fetcher, err := file.NewFSFetcher(files, name)()
	if err != nil {
		return nil, fmt.Errorf("embedded resource: %w", err)
	}

	return fetcher, nil
}

// LoadStacConfig returns the STAC templates with their metadata paths compiled.
func LoadStacConfig() (map[string]any, error) {
	return loadCompiled(Stac)
}

// LoadStacAPIConfig returns the STAC API description with its metadata paths compiled.
func LoadStacAPIConfig() (map[string]any, error) {
	return loadCompiled(StacAPI)
}

// LoadStacProviderConfig returns the STAC provider mapping as plain values.
// Its paths are applied by providers themselves and left as strings.
func LoadStacProviderConfig() (map[string]any, error) {
	return loadMapping(StacProvider)
}

// CompilePaths walks value and replaces every string starting with "$." by
// the compiled *yaml.Path. Strings that do not compile are kept as they are.
// Maps and slices are rewritten in place and returned.
func CompilePaths(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, item := range typed {
			typed[key] = CompilePaths(item)
		}

		return typed
	case []any:
		for i, item := range typed {
			typed[i] = CompilePaths(item)
		}

		return typed
	case string:
		if !strings.HasPrefix(typed, pathPrefix) {
			return typed
		}

		path, err := yaml.PathString(typed)
		if err != nil {
			return typed
		}

		return path
	default:
		return value
	}
}

func loadCompiled(name string) (map[string]any, error) {
	config, err := loadMapping(name)
	if err != nil {
		return nil, err
	}

	CompilePaths(config)

	return config, nil
}

func loadMapping(name string) (map[string]any, error) {
	fetcher, err := Fetcher(name)
	if err != nil {
		return nil, err
	}

	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	docs, err := document.DecodeSafe(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNotMapping)
	}

	config, isMapping := docs[0].(map[string]any)
	if !isMapping {
		return nil, fmt.Errorf("%s: %w", name, ErrNotMapping)
	}

	return config, nil
}
