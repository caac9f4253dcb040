// Package config loads the registry settings.
//
// Four small interfaces keep the loading steps apart:
//   - Parser: deserializes raw data into a struct, with path navigation
//   - DataFetcher: retrieves raw data, see config/fetcher/file
//   - Defaulter: fills unset values before validation
//   - Validator: rejects invalid values
//
// Provider chains them for one target. Paths use a colon separator, so
// "registry:logging" selects config["registry"]["logging"] and "" the whole
// document:
//
//	provider := config.Provider(&config.Settings{}, "registry")
//	settings, err := provider(yamlparser.NewParser(), fetcher)
//
// Settings is the registry's own settings struct. Its values feed the catalog
// build: the catalog file, the user override file, the environment namespace
// and the output defaults.
package config
