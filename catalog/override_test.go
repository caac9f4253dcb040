package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xalexb/hjarta-registry/catalog"
)

func TestCatalog_OverrideFromMapping_KnownProvider(t *testing.T) {
	t.Parallel()

	parsed := parseBase(t)
	original := parsed["foo"]

	err := parsed.OverrideFromMapping(map[string]any{
		"foo": map[string]any{
			"priority": 5,
			"search":   map[string]any{"api_endpoint": "https://foo.example/v2"},
		},
	}, testDefaults())
	require.NoError(t, err)

	foo := parsed["foo"]
	assert.Equal(t, 5, *foo.Priority)
	assert.Equal(t, "https://foo.example/v2", foo.Search.Params["api_endpoint"])
	assert.Equal(t, "QueryStringSearch", foo.Search.Type)
	assert.NotSame(t, original, foo, "entries are replaced, not mutated")
	assert.Equal(t, 1, *original.Priority)
}

func TestCatalog_OverrideFromMapping_MatchesBySlug(t *testing.T) {
	t.Parallel()

	parsed := parseBase(t)

	err := parsed.OverrideFromMapping(map[string]any{"FOO": map[string]any{"priority": 2}}, testDefaults())
	require.NoError(t, err)

	assert.Equal(t, []string{"bar", "foo"}, parsed.Names())
	assert.Equal(t, 2, *parsed["foo"].Priority)
}

func TestCatalog_OverrideFromMapping_UnknownProvider(t *testing.T) {
	t.Parallel()

	parsed := parseBase(t)

	err := parsed.OverrideFromMapping(map[string]any{
		"New Prov": map[string]any{
			"search":   map[string]any{"type": "StacSearch", "api_endpoint": "https://new.example"},
			"download": map[string]any{"type": "HTTPDownload"},
		},
	}, testDefaults())
	require.NoError(t, err)

	assert.Equal(t, []string{"bar", "foo", "new_prov"}, parsed.Names())

	added := parsed["new_prov"]
	assert.Equal(t, "new_prov", added.Name)
	require.NoError(t, added.Validate())
	assert.Equal(t, 0, *added.Priority)
	assert.Equal(t, testOutputs, added.Download.OutputsPrefix)
}

func TestCatalog_OverrideFromMapping_ExplicitNameWins(t *testing.T) {
	t.Parallel()

	parsed := parseBase(t)

	err := parsed.OverrideFromMapping(map[string]any{
		"key": map[string]any{"name": "Real Name", "auth": map[string]any{"type": "GenericAuth"}},
	}, testDefaults())
	require.NoError(t, err)

	assert.Contains(t, parsed, "real_name")
	assert.NotContains(t, parsed, "key")
}

func TestCatalog_OverrideFromMapping_InvalidUnknownProviderIsSkipped(t *testing.T) {
	t.Parallel()

	parsed := parseBase(t)
	before := parsed.Clone()

	err := parsed.OverrideFromMapping(map[string]any{
		"broken":  map[string]any{"priority": 1},
		"scalar":  "oops",
		"exclude": map[string]any{"api": map[string]any{"type": "A"}, "search": map[string]any{"type": "B"}},
		"foo":     map[string]any{"priority": 7},
	}, testDefaults())
	require.NoError(t, err)

	assert.Equal(t, []string{"bar", "foo"}, parsed.Names())
	assert.Equal(t, 7, *parsed["foo"].Priority, "valid overrides in the same pass still apply")
	assert.Equal(t, before["bar"], parsed["bar"])
}

func TestCatalog_OverrideFromMapping_TypeMismatch(t *testing.T) {
	t.Parallel()

	parsed := parseBase(t)
	foo := parsed["foo"]

	err := parsed.OverrideFromMapping(map[string]any{
		"foo": "oops",
		"bar": map[string]any{"priority": 4},
	}, testDefaults())
	require.ErrorIs(t, err, catalog.ErrTypeMismatch)
	assert.Contains(t, err.Error(), `provider "foo"`)

	assert.Same(t, foo, parsed["foo"], "the failing provider is left as it was")
	assert.Equal(t, 4, *parsed["bar"].Priority, "other providers are still processed")
}

func TestCatalog_OverrideFromMapping_InexactPriority(t *testing.T) {
	t.Parallel()

	testCases := map[string]any{
		"fractional": 1.9,
		"overflow":   uint64(18446744073709551615),
	}

	for name, priority := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			parsed := parseBase(t)

			err := parsed.OverrideFromMapping(map[string]any{"foo": map[string]any{"priority": priority}}, testDefaults())
			require.ErrorIs(t, err, catalog.ErrTypeMismatch)
			assert.Equal(t, 1, *parsed["foo"].Priority)
		})
	}
}

func TestCatalog_OverrideFromMapping_Null(t *testing.T) {
	t.Parallel()

	parsed := parseBase(t)
	before := parsed.Clone()

	require.NoError(t, parsed.OverrideFromMapping(map[string]any{"foo": nil}, testDefaults()))
	require.NoError(t, parsed.OverrideFromMapping(nil, testDefaults()))
	assert.Equal(t, before, parsed)
}

func TestCatalog_OverrideFromFile(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name  string
		data  string
		check func(t *testing.T, parsed catalog.Catalog)
	}

	unchanged := func(t *testing.T, parsed catalog.Catalog) {
		t.Helper()
		assert.Equal(t, parseBase(t), parsed)
	}

	testCases := []testCase{
		{name: "empty file", data: "", check: unchanged},
		{name: "only comments", data: "# user configuration\n", check: unchanged},
		{
			name: "scalar update",
			data: "foo:\n  priority: 3\n",
			check: func(t *testing.T, parsed catalog.Catalog) {
				t.Helper()
				assert.Equal(t, 3, *parsed["foo"].Priority)
			},
		},
		{
			name: "tags are ignored",
			data: "foo:\n  search: !plugin\n    api_endpoint: https://tagged.example\n",
			check: func(t *testing.T, parsed catalog.Catalog) {
				t.Helper()
				assert.Equal(t, "https://tagged.example", parsed["foo"].Search.Params["api_endpoint"])
				assert.Equal(t, "QueryStringSearch", parsed["foo"].Search.Type)
			},
		},
		{
			name: "documents apply in order",
			data: "foo:\n  priority: 3\n---\nfoo:\n  priority: 4\nbar:\n  api:\n    outputs_prefix: /data\n",
			check: func(t *testing.T, parsed catalog.Catalog) {
				t.Helper()
				assert.Equal(t, 4, *parsed["foo"].Priority)
				assert.Equal(t, "/data", parsed["bar"].API.OutputsPrefix)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			parsed := parseBase(t)

			err := parsed.OverrideFromFile(staticFetcher{data: []byte(tc.data)}, testDefaults())
			require.NoError(t, err)
			tc.check(t, parsed)
		})
	}
}

func TestCatalog_OverrideFromFile_Errors(t *testing.T) {
	t.Parallel()

	parsed := parseBase(t)

	err := parsed.OverrideFromFile(staticFetcher{data: []byte("just a string\n")}, testDefaults())
	require.ErrorIs(t, err, catalog.ErrTypeMismatch)

	err = parsed.OverrideFromFile(staticFetcher{data: []byte("foo: [unclosed\n")}, testDefaults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding overrides")

	assert.Equal(t, parseBase(t), parsed)
}

func TestEnvOverrides(t *testing.T) {
	t.Parallel()

	environ := []string{
		"NS__A__B__D=v2",
		"PATH=/usr/bin",
		"NS__A__B__C=v1",
		"ns__lower=ignored",
		"NSX__A=ignored",
		"NS__=empty key",
		"NS__FOO__PRIORITY=9",
		"NS__FOO__SEARCH__API_ENDPOINT=https://h.example/?a=b",
		"MALFORMED",
	}

	assert.Equal(t, map[string]any{
		"a": map[string]any{"b": map[string]any{"c": "v1", "d": "v2"}},
		"foo": map[string]any{
			"priority": "9",
			"search":   map[string]any{"api_endpoint": "https://h.example/?a=b"},
		},
	}, catalog.EnvOverrides("NS", environ))
}

func TestEnvOverrides_Conflicts(t *testing.T) {
	t.Parallel()

	environ := []string{"NS__A__B=deep", "NS__A=flat"}

	assert.Equal(t, map[string]any{"a": "flat"}, catalog.EnvOverrides("NS", environ),
		"variables are visited in sorted order and later conflicts dropped")
}

func TestCatalog_OverrideFromEnv(t *testing.T) {
	t.Parallel()

	parsed, err := catalog.Parse([]byte(`
!provider
  name: foo
  priority: 1
  search: !plugin
    type: QueryStringSearch
    api_endpoint: https://foo.example/search
`), testDefaults())
	require.NoError(t, err)

	search := parsed["foo"].Search.Clone()

	err = parsed.OverrideFromEnv("NS", []string{"NS__foo__priority=9", "OTHER__foo__priority=1"}, testDefaults())
	require.NoError(t, err)

	require.Len(t, parsed, 1)
	assert.Equal(t, 9, *parsed["foo"].Priority)
	assert.Equal(t, search, parsed["foo"].Search)
}

func TestCatalog_OverrideFromEnv_ScalarProvider(t *testing.T) {
	t.Parallel()

	parsed := parseBase(t)

	err := parsed.OverrideFromEnv("NS", []string{"NS__FOO=1"}, testDefaults())
	require.ErrorIs(t, err, catalog.ErrTypeMismatch)
}
