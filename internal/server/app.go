// Package server initializes and runs the application: it opens the
// database, applies migrations, wires the services, and serves the HTTP API
// until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lotfi029/FreelancerAssignment/internal/logging"
	"github.com/lotfi029/FreelancerAssignment/internal/server/auth"
	"github.com/lotfi029/FreelancerAssignment/internal/server/config"
	"github.com/lotfi029/FreelancerAssignment/internal/server/httpapi"
	"github.com/lotfi029/FreelancerAssignment/internal/server/repositories/repomanager"
	"github.com/lotfi029/FreelancerAssignment/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	repos    repomanager.RepositoryManager
	sessions *services.SessionService
	products *services.ProductService
	issuer   *auth.Issuer
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	issuer := auth.NewIssuer([]byte(c.SecretKey), c.AccessTokenValidityDuration)
	images := services.NewS3ImageStore(c)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		repos:    repos,
		sessions: services.NewSessionService(db, repos, issuer, logger),
		products: services.NewProductService(db, repos, images, logger),
		issuer:   issuer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	router := httpapi.NewRouter(app.sessions, app.products, app.issuer, app.logger)
	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	return app.db.Close()
}
