package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xalexb/hjarta-registry/catalog"
)

const testOutputs = "/tmp/registry-test"

// baseCatalog holds a searchable provider and an api provider.
const baseCatalog = `---
!provider
  name: Foo
  priority: 1
  description: test provider
  search: !plugin
    type: QueryStringSearch
    api_endpoint: https://foo.example/search
    pagination:
      max_items_per_page: 500
      next_page_url_tpl: '{url}?page={page}'
---
!provider
  name: bar
  api: !plugin
    type: StacApi
`

type staticFetcher struct {
	data []byte
	err  error
}

func (f staticFetcher) Fetch() ([]byte, error) {
	return f.data, f.err
}

func testDefaults() catalog.Defaults {
	return catalog.Defaults{OutputsPrefix: testOutputs}
}

func parseBase(t *testing.T) catalog.Catalog {
	t.Helper()

	parsed, err := catalog.Parse([]byte(baseCatalog), testDefaults())
	require.NoError(t, err)

	return parsed
}

func mustProvider(t *testing.T, fields map[string]any) *catalog.ProviderConfig {
	t.Helper()

	provider, err := catalog.NewProviderConfig(fields)
	require.NoError(t, err)

	return provider
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)

	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}

func intPtr(value int) *int {
	return &value
}
