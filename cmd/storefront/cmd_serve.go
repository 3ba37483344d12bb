package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/storefront/internal/auth"
	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/orders"
	"github.com/Skotchmaster/storefront/internal/schema"
	"github.com/Skotchmaster/storefront/internal/users"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/metrics"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
)

var autoMigrate bool

// storefront serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "run migrations before serving")
}

func serve(ctx context.Context) error {
	rt, err := boot(ctx)
	if err != nil {
		return err
	}
	defer rt.close()
	l := rt.logger

	if autoMigrate {
		if err := schema.Migrate(ctx, rt.db); err != nil {
			return err
		}
	}

	policy, err := orders.ParsePolicy(rt.cfg.OrderTransitionPolicy)
	if err != nil {
		return err
	}

	lookup, err := productLookup(ctx, rt)
	if err != nil {
		return err
	}

	m := metrics.New()
	pub := events.New(rt.cfg.KafkaBrokers)
	defer func() {
		if err := pub.Close(); err != nil {
			l.Error("kafka_close_error", "error", err)
		}
	}()
	em := events.NewEmitter(pub, m)

	tokens := auth.NewTokenService(rt.cfg.JWTSecret, rt.cfg.TokenTTL)
	userSvc := users.NewService(users.NewGormRepo(rt.db), hash.New(rt.cfg.BcryptCost, rt.cfg.HashWorkers), tokens, em)
	orderSvc := orders.NewService(orders.NewGormRepo(rt.db), lookup, policy, em, m)

	e := httpserver.New(&httpserver.Deps{
		AuthHandler:   &httpserver.AuthHTTP{Svc: userSvc},
		OrderHandler:  &httpserver.OrderHTTP{Svc: orderSvc},
		HealthHandler: &httpserver.HealthHTTP{DB: rt.db},
		Bearer:        middleware.NewBearerMiddleware(tokens),
		Metrics:       m,
		Logger:        l,
	})

	srv := &http.Server{
		Addr:              rt.cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info("http_listen", "addr", srv.Addr, "policy", string(policy))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	l.Info("shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("server_shutdown_error", "error", err)
	}
	l.Info("shutdown_complete")
	return nil
}

// productLookup prefers the search index when one is configured and falls back to the database.
func productLookup(ctx context.Context, rt *app) (catalog.Lookup, error) {
	if rt.cfg.ESURL == "" {
		return catalog.NewGormRepo(rt.db), nil
	}
	client, err := catalog.NewESClient(ctx, esConfig(rt))
	if err != nil {
		return nil, err
	}
	return catalog.NewESLookup(client, rt.cfg.ESProductIndex), nil
}
