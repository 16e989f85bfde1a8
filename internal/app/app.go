package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/hrwallet-backend/internal/auth"
	"github.com/heartmarshall/hrwallet-backend/internal/config"
	"github.com/heartmarshall/hrwallet-backend/internal/transport/middleware"
	"github.com/heartmarshall/hrwallet-backend/internal/transport/rest"
)

const rateLimitCleanup = 5 * time.Minute

// Run is the application entry point. It loads configuration, wires the
// services and serves HTTP until ctx is cancelled, then shuts down
// gracefully: in-flight requests finish, queued side effects are delivered,
// and backends are closed.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	svcs, err := Wire(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svcs.Close()

	limiter := middleware.NewRateLimiter(rateLimitCleanup)
	defer limiter.Stop()

	handler := NewHandler(cfg, logger, svcs, limiter)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// NewHandler builds the HTTP handler tree for the wired services.
func NewHandler(cfg *config.Config, logger *slog.Logger, svcs *Services, limiter *middleware.RateLimiter) http.Handler {
	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	health := rest.NewHealthHandler(svcs.Pool, Version)
	for _, c := range svcs.Checks {
		if c.Required {
			health.Require(c.Name, rest.PingFunc(c.Ping))
		} else {
			health.Optional(c.Name, rest.PingFunc(c.Ping))
		}
	}

	routes := rest.Routes{
		Health:         health,
		CreditRequests: rest.NewCreditRequestHandler(svcs.CreditRequests, logger),
		Wallet:         rest.NewWalletHandler(svcs.Ledger, logger),
		Redemptions:    rest.NewRedemptionHandler(svcs.Redemptions, logger),
		Notifications:  rest.NewNotificationHandler(svcs.Notifications, logger),
		Admin:          rest.NewAdminHandler(svcs.Currency, svcs.Ledger, svcs.Audit, logger),
	}
	if cfg.Server.MetricsEnabled {
		routes.Metrics = promhttp.Handler()
	}

	outer := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)
	api := middleware.Chain(
		middleware.Auth(jwt),
		limiter.Limit(cfg.Server.RateLimit),
	)

	return rest.NewRouter(routes, outer, api)
}
