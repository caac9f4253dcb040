// Package registry assembles the provider catalog inside an Fx application.
//
//	app := registry.NewApp(
//	    registry.WithLogLevel("info"),
//	    registry.WithCatalog(catalog.WithCatalogPath("providers.yml")),
//	    registry.WithModules(fx.Invoke(func(c catalog.Catalog) { ... })),
//	)
//
// The App installs a slog logger as the process default and supplies it,
// with its logging.LoggerConfig, to the container.
package registry
