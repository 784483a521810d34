// Package bootstrap is the simplemovies composition root.
//
// NewApp validates the configuration, initializes logging and telemetry,
// builds every production service and registers it in a di.Registry under
// the capability consumers declare:
//
//	app, err := bootstrap.NewApp(ctx, cfg)
//	defer app.Close(ctx)
//	searcher := di.Resolve[movies.Searcher](app.Registry)
//
// Run blocks serving until a signal arrives; RunTask runs a finite CLI
// command with the same startup and shutdown hooks.
package bootstrap
