package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"team-quiz-service/internal/app"
	"team-quiz-service/internal/config"
	"team-quiz-service/internal/infra/memory"
	pgstore "team-quiz-service/internal/infra/postgres"
	transport "team-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	results := app.NewResultService(store)
	access := app.NewAccessService(store)
	admin := app.NewAdminService(store, store, store, results)
	handler := transport.NewHandler(access, admin, results)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var eg errgroup.Group
	eg.Go(func() error {
		slog.Info("starting quiz service", "port", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	select {
	case <-stop:
		slog.Info("shutting down server...")
	case <-ctx.Done():
		slog.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return eg.Wait()
}

// openStore connects the document store when configured, running migrations
// first; without a postgres URL it falls back to the in-memory store.
func openStore(ctx context.Context, cfg config.Config) (app.Store, func(), error) {
	if cfg.Postgres.URL == "" {
		slog.Warn("no postgres url configured, using in-memory store; data will not survive restarts")
		return memory.NewStore(), func() {}, nil
	}

	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return nil, nil, err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return nil, nil, err
	}
	return pgstore.NewStore(pool), pool.Close, nil
}
