// Package catalog holds the provider catalog: typed provider and plugin
// configs, their construction from tagged YAML documents, and the layered
// overrides applied on top.
//
// A catalog is built once at start-up:
//
//	catalog, err := catalog.Build(
//	    catalog.WithCatalogPath("/etc/registry/providers.yml"),
//	    catalog.WithUserConfigPath("~/.config/registry/user.yml"),
//	)
//
// Build loads the base catalog (the embedded one when no path is given) and
// applies defaults to every provider. It then applies the user override file,
// the NAMESPACE__provider__field environment variables and finally the
// runtime override mappings. Later layers win.
//
// Catalog documents tag providers with !provider and plugins with !plugin:
//
//	---
//	!provider
//	  name: peps
//	  priority: 1
//	  search: !plugin
//	    type: QueryStringSearch
//
// Override layers are plain mappings keyed by provider name. Known providers
// are updated. Unknown providers are created when the mapping is a complete
// provider definition and skipped with a warning otherwise.
//
// A Catalog is not safe for concurrent mutation. Once built it may be read
// from several goroutines.
package catalog
