package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sb-patel/notification-system-backend/config"
	httpx "github.com/sb-patel/notification-system-backend/internal/http"
	"github.com/sb-patel/notification-system-backend/internal/realtime"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// BuildHTTPHandler assembles the router, the WebSocket admission handler,
// and the middleware chain. Order: Recover -> Logging -> Router.
func BuildHTTPHandler(cfg *HTTPServerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	wsHandler := realtime.NewHandler(realtime.HandlerOptions{
		Auth:        cfg.Services.Auth,
		Registry:    cfg.Services.Registry,
		Logger:      logger,
		CheckOrigin: originPolicy(appCfg),
	})

	router := httpx.NewRouter(httpx.RouterServices{
		Auth:          cfg.Services.Auth,
		Notifications: cfg.Services.Notifications,
		WS:            wsHandler,
		Logger:        logger,
	})

	h := httpx.Logging(logger)(router)
	h = httpx.Recover(logger)(h)
	return h
}

// originPolicy derives the WebSocket origin check from configuration. Dev
// mode accepts anything; a configured origin pins upgrades to it; otherwise
// the gorilla same-origin default applies.
func originPolicy(cfg *config.AppConfig) func(*http.Request) bool {
	if cfg.IsDev {
		return func(*http.Request) bool { return true }
	}
	if origin := cfg.HTTP.AllowedOrigin; origin != "" {
		return func(r *http.Request) bool {
			return r.Header.Get("Origin") == origin
		}
	}
	return nil
}

// RunHTTPServerWithShutdown serves until SIGINT/SIGTERM, then drains
// in-flight requests within the configured shutdown timeout. Live WebSocket
// connections are closed as part of the drain.
func RunHTTPServerWithShutdown(cfg *HTTPServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	httpCfg := config.HTTPConfig{}
	if cfg.Config != nil {
		httpCfg = cfg.Config.HTTP
	}
	addr := httpCfg.Addr
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      BuildHTTPHandler(cfg),
		ReadTimeout:  httpCfg.ReadTimeout,
		WriteTimeout: httpCfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		shutdownTimeout := httpCfg.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// tear down live websocket connections so Shutdown can drain
		if cfg.Services.Registry != nil {
			cfg.Services.Registry.ForEach(func(_ string, c *realtime.Client) {
				c.Close()
			})
		}
		return server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if err == nil {
		logger.Info("HTTP server stopped")
	}
	return err
}
