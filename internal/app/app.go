package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/handlers"
	"github.com/vancomm/sweeper/internal/middleware"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/session"
)

type App struct {
	log      *logrus.Logger
	cfg      *config.Config
	router   *http.ServeMux
	sessions *session.Registry
	settings handlers.SettingsStore
	ws       *config.WebSocket
}

func New(log *logrus.Logger, cfg *config.Config, settings handlers.SettingsStore) *App {
	app := &App{
		log:      log,
		cfg:      cfg,
		router:   http.NewServeMux(),
		sessions: session.NewRegistry(mines.NewRand(), log),
		settings: settings,
		ws:       config.NewWebSocket(cfg),
	}
	app.loadRoutes()
	return app
}

// Handler returns the router with every middleware applied.
func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Recover(a.log),
		middleware.Cors(a.cfg.CORSOrigins),
		middleware.Logging(a.log),
	)
}

func (a *App) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Addr)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %w", a.cfg.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve runs the server on ln until ctx is done, then shuts it down within
// the configured timeout.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{Handler: a.Handler()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.WithField("addr", ln.Addr().String()).Info("server listening")
		err := server.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		a.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), a.cfg.ShutdownTimeout.Duration,
		)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
