package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/simplemovies/di"
	"github.com/kbukum/simplemovies/favorites"
	"github.com/kbukum/simplemovies/kvstore"
	"github.com/kbukum/simplemovies/logger"
	"github.com/kbukum/simplemovies/movies"
	"github.com/kbukum/simplemovies/observability"
	"github.com/kbukum/simplemovies/omdb"
	"github.com/kbukum/simplemovies/session"
)

// App owns the registry and the lifecycle of everything registered in it.
type App struct {
	Name      string
	Version   string
	Cfg       *AppConfig
	Registry  *di.Registry
	Logger    *logger.Logger
	Telemetry *observability.Telemetry
	Summary   *Summary

	gracefulTimeout time.Duration
	checkers        []observability.HealthChecker
	stores          []kvstore.Store
	closed          bool

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp applies defaults, validates cfg and wires the production services.
//
// Registered capabilities:
//   - omdb.Fetcher
//   - movies.Searcher
//   - favorites.Store
//   - session.Authenticator, session.TokenVerifier, session.Session
//   - *observability.Metrics
func NewApp(ctx context.Context, cfg *AppConfig, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	o := resolveOptions(opts)
	app := &App{
		Name:            cfg.Name,
		Version:         cfg.Version,
		Cfg:             cfg,
		gracefulTimeout: 15 * time.Second,
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(&cfg.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	app.Registry = o.registry
	if app.Registry == nil {
		app.Registry = di.NewRegistry(di.WithLogger(app.Logger.WithComponent("di")))
	}
	app.Summary = NewSummary(cfg.Name, cfg.Version)

	tel, err := observability.Init(ctx, cfg.Observability, observability.ServiceInfo{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	app.Telemetry = tel

	if err := app.registerDependencies(ctx, o); err != nil {
		_ = app.Close(ctx)
		return nil, err
	}
	return app, nil
}

// registerDependencies builds the services bottom-up and registers them.
func (a *App) registerDependencies(ctx context.Context, o *appOptions) error {
	cfg := a.Cfg
	log := a.Logger

	fetcher := o.fetcher
	if fetcher == nil {
		client, err := omdb.New(cfg.OMDb, log)
		if err != nil {
			return fmt.Errorf("omdb client: %w", err)
		}
		a.checkers = append(a.checkers, client)
		fetcher = client
	}
	di.Register[omdb.Fetcher](a.Registry, fetcher)
	a.Summary.TrackClient("omdb", cfg.OMDb.BaseURL, "http")

	searcher, err := movies.NewService(fetcher, cfg.Movies, log)
	if err != nil {
		return fmt.Errorf("movie service: %w", err)
	}
	di.Register[movies.Searcher](a.Registry, searcher)
	a.Summary.TrackService("movies", "omdb")

	favStore, err := a.openStore(ctx, "favorites", cfg.Favorites)
	if err != nil {
		return err
	}
	favs := favorites.NewManager(favStore, log)
	favs.Load(ctx)
	di.Register[favorites.Store](a.Registry, favs)
	a.Summary.TrackService("favorites", "kvstore:"+cfg.Favorites.Driver)

	secrets, err := a.openStore(ctx, "secrets", cfg.Secrets)
	if err != nil {
		return err
	}
	tokens := session.NewTokens(cfg.Session)
	auth := session.NewLocalAuthenticator(cfg.Session.Users, tokens, log)
	sess := session.NewManager(auth, tokens, secrets, log)
	if _, err := sess.Restore(ctx); err != nil {
		log.Warn("Could not restore session", logger.ErrorFields("restore", err))
	}
	di.Register[session.Authenticator](a.Registry, auth)
	di.Register[session.TokenVerifier](a.Registry, tokens)
	di.Register[session.Session](a.Registry, sess)
	a.Summary.TrackService("session", "kvstore:"+cfg.Secrets.Driver)

	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	di.Register[*observability.Metrics](a.Registry, metrics)
	return nil
}

func (a *App) openStore(ctx context.Context, name string, cfg kvstore.Config) (kvstore.Store, error) {
	store, err := kvstore.Open(ctx, cfg, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("%s store: %w", name, err)
	}
	a.stores = append(a.stores, store)
	if hc, ok := store.(observability.HealthChecker); ok {
		a.checkers = append(a.checkers, hc)
	}

	details := cfg.Driver
	if cfg.Driver == kvstore.DriverFile {
		details += " " + cfg.Path
	}
	if cfg.Encrypted() {
		details += " (encrypted)"
	}
	a.Summary.TrackInfrastructure(name, "kvstore", details)
	return store, nil
}

// HealthCheckers returns the components that report health.
func (a *App) HealthCheckers() []observability.HealthChecker {
	return append([]observability.HealthChecker(nil), a.checkers...)
}

// ReadyCheck fails when any component is down.
func (a *App) ReadyCheck(ctx context.Context) error {
	sh := observability.Check(ctx, a.Name, a.Version, a.checkers...)
	var down []string
	for _, h := range sh.Components {
		if h.Status == observability.HealthStatusDown {
			down = append(down, h.Name)
		}
	}
	if len(down) > 0 {
		return fmt.Errorf("unhealthy components: %v", down)
	}
	return nil
}

// Run starts the application and blocks until a signal arrives or ctx ends,
// then shuts down.
func (a *App) Run(ctx context.Context) error {
	if err := a.startup(ctx, true); err != nil {
		_ = a.Close(ctx)
		return err
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.Close(ctx)
}

// RunTask runs a finite task with the same hooks as Run. SIGINT and SIGTERM
// cancel the task's context.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx, false); err != nil {
		_ = a.Close(ctx)
		return err
	}

	taskCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	taskErr := task(taskCtx)

	if closeErr := a.Close(ctx); closeErr != nil && taskErr == nil {
		return closeErr
	}
	return taskErr
}

func (a *App) startup(ctx context.Context, summary bool) error {
	start := time.Now()
	a.Logger.Info("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	if summary {
		a.Summary.Display(ctx, os.Stdout, a.checkers)
	}
	return nil
}

// WaitForSignal blocks until SIGINT, SIGTERM or ctx cancellation.
func (a *App) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Close runs the OnStop hooks, syncs and closes the stores, closes the
// registry and flushes telemetry. Calling it again does nothing.
func (a *App) Close(ctx context.Context) error {
	if a.closed {
		return nil
	}
	a.closed = true

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.gracefulTimeout)
	defer cancel()

	var errs []error
	if err := runHooks(ctx, a.onStop); err != nil {
		errs = append(errs, err)
	}

	for _, s := range a.stores {
		if err := s.Sync(ctx); err != nil {
			errs = append(errs, fmt.Errorf("sync store: %w", err))
		}
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close store: %w", err))
			}
		}
	}

	if a.Registry != nil {
		if err := a.Registry.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Telemetry != nil {
		if err := a.Telemetry.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
	} else {
		a.Logger.Debug("Application shutdown complete")
	}
	return err
}
