package bootstrap

import (
	"github.com/kbukum/simplemovies/di"
	"github.com/kbukum/simplemovies/observability"
	"github.com/kbukum/simplemovies/server"
	"github.com/kbukum/simplemovies/server/api"
	"github.com/kbukum/simplemovies/server/endpoint"
)

// NewServer builds the HTTP server over the registry and hooks it into the
// lifecycle: it starts with Run and stops on shutdown.
func (a *App) NewServer() *server.Server {
	srv := server.New(a.Cfg.Server, a.Logger)
	metrics, _ := di.TryResolve[*observability.Metrics](a.Registry)
	srv.ApplyMiddleware(metrics)

	engine := srv.Engine()
	engine.GET("/health", endpoint.Health(a.Name, a.checkers...))
	engine.GET("/info", endpoint.Info(a.Name))
	api.Register(engine, api.NewEnvironment(a.Registry), a.Logger)

	for _, r := range engine.Routes() {
		a.Summary.TrackRoute(r.Method, r.Path)
	}
	a.Summary.TrackInfrastructure("http", "server", a.Cfg.Server.Addr())

	a.OnStart(srv.Start)
	a.OnStop(srv.Stop)
	return srv
}
