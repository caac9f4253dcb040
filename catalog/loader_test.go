package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xalexb/hjarta-registry/catalog"
	"github.com/0xalexb/hjarta-registry/document"
)

func TestParse(t *testing.T) {
	t.Parallel()

	data := baseCatalog + `---
name: Baz
download:
  type: HTTPDownload
  extract: true
`

	parsed, err := catalog.Parse([]byte(data), testDefaults())
	require.NoError(t, err)

	assert.Equal(t, []string{"bar", "baz", "foo"}, parsed.Names())

	foo := parsed["foo"]
	assert.Equal(t, "foo", foo.Name)
	assert.Equal(t, 1, *foo.Priority)
	assert.Equal(t, "QueryStringSearch", foo.Search.Type)
	assert.Equal(t, map[string]any{"max_items_per_page": 500, "next_page_url_tpl": "{url}?page={page}"},
		foo.Search.Params["pagination"])
	assert.Equal(t, map[string]any{"description": "test provider"}, foo.Extra)

	bar := parsed["bar"]
	assert.Equal(t, 0, *bar.Priority, "priority defaults to zero")
	assert.Equal(t, testOutputs, bar.API.OutputsPrefix)

	baz := parsed["baz"]
	assert.Equal(t, testOutputs, baz.Download.OutputsPrefix, "plain mappings are providers too")
	assert.Equal(t, true, baz.Download.Params["extract"])
}

func TestParse_PluginAnchors(t *testing.T) {
	t.Parallel()

	data := `
!provider
  name: shared
  search: !plugin
    type: QueryStringSearch
    pagination: &pagination
      max_items_per_page: 20
  download: !plugin
    type: HTTPDownload
    pagination:
      <<: *pagination
      total_items_nb_key_path: '$.total'
`

	parsed, err := catalog.Parse([]byte(data), testDefaults())
	require.NoError(t, err)

	provider := parsed["shared"]
	require.NotNil(t, provider)
	assert.Equal(t,
		map[string]any{"max_items_per_page": 20, "total_items_nb_key_path": "$.total"},
		provider.Download.Params["pagination"])
	assert.Equal(t, map[string]any{"max_items_per_page": 20}, provider.Search.Params["pagination"])
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	for _, data := range []string{"", "# nothing here\n", "---\n---\n"} {
		parsed, err := catalog.Parse([]byte(data), testDefaults())
		require.NoError(t, err, data)
		assert.Empty(t, parsed, data)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name     string
		data     string
		err      error
		contains []string
	}

	testCases := []testCase{
		{
			name:     "tagged provider without name",
			data:     baseCatalog + "---\n!provider\n  search: !plugin\n    type: QueryStringSearch\n",
			err:      catalog.ErrMissingName,
			contains: []string{"decoding catalog", catalog.ProviderTag},
		},
		{
			name:     "tagged plugin without type",
			data:     "!provider\n  name: foo\n  search: !plugin\n    api_endpoint: x\n",
			err:      catalog.ErrMissingPluginType,
			contains: []string{catalog.PluginTag},
		},
		{
			name: "api exclusivity",
			data: "!provider\n  name: foo\n  api: !plugin\n    type: A\n  auth: !plugin\n    type: B\n",
			err:  catalog.ErrAPIExclusive,
		},
		{
			name:     "plain mapping keeps name context",
			data:     "name: baz\npriority: 1\n",
			err:      catalog.ErrNoPlugin,
			contains: []string{`provider "baz"`, "provider document 0"},
		},
		{
			name: "scalar document",
			data: "just text\n",
			err:  catalog.ErrNotProvider,
		},
		{
			name: "tag on scalar",
			data: "!provider foo\n",
			err:  document.ErrNotMapping,
		},
		{
			name: "unknown alias",
			data: "!provider\n  name: foo\n  search: *missing\n",
			err:  document.ErrUnknownAlias,
		},
		{
			name: "malformed document",
			data: "!provider\n  name: [foo\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := catalog.Parse([]byte(tc.data), testDefaults())
			require.Error(t, err)
			assert.Nil(t, parsed, "no partial catalog is returned")

			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
			}

			for _, part := range tc.contains {
				assert.Contains(t, err.Error(), part)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	loaded, err := catalog.Load(staticFetcher{data: []byte(baseCatalog)}, testDefaults())
	require.NoError(t, err)
	assert.Equal(t, []string{"bar", "foo"}, loaded.Names())

	fetchErr := errors.New("disk on fire")

	_, err = catalog.Load(staticFetcher{err: fetchErr}, testDefaults())
	require.ErrorIs(t, err, fetchErr)
}

func TestLoadDefault(t *testing.T) {
	t.Parallel()

	loaded, err := catalog.LoadDefault(testDefaults())
	require.NoError(t, err)

	assert.Equal(t, []string{"peps", "theia_land", "usgs"}, loaded.Names())

	peps := loaded["peps"]
	assert.Equal(t, 1, *peps.Priority)
	assert.Equal(t, "QueryStringSearch", peps.Search.Type)
	assert.Equal(t, "HTTPDownload", peps.Download.Type)
	assert.Equal(t, testOutputs, peps.Download.OutputsPrefix)
	assert.Equal(t, "GenericAuth", peps.Auth.Type)

	usgs := loaded["usgs"]
	assert.Equal(t, "UsgsApi", usgs.API.Type)
	assert.Equal(t, testOutputs, usgs.API.OutputsPrefix)
	assert.Equal(t, 5000, usgs.API.Params["pagination"].(map[string]any)["max_items_per_page"])

	for _, name := range loaded.Names() {
		require.NoError(t, loaded[name].Validate(), name)
	}
}
