package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Farhatmahi/dentist-spa-server/pkg/config"
	"github.com/Farhatmahi/dentist-spa-server/pkg/contracts"
	"github.com/Farhatmahi/dentist-spa-server/pkg/middleware"
	"github.com/julienschmidt/httprouter"
)

type Application struct {
	cfg         *config.Config
	server      *http.Server
	rateLimiter *middleware.ClientRateLimiter
}

func NewApplication() *Application {
	return &Application{}
}

func (a *Application) SetApp(cfg *config.Config, handlers ...contracts.Handler) {
	a.cfg = cfg

	router := httprouter.New()
	newHealthHandler(cfg.Client.Mongo, cfg.Log).RegisterRoutes(router)
	for _, h := range handlers {
		h.RegisterRoutes(router)
	}

	a.rateLimiter = middleware.NewClientRateLimiter(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		cfg.Log,
	)

	var httpHandler http.Handler = router
	httpHandler = middleware.RequestTimeout(cfg.RequestTimeout)(httpHandler)
	httpHandler = middleware.RateLimit(a.rateLimiter)(httpHandler)
	httpHandler = middleware.ContentTypeValidation(cfg.Log)(httpHandler)
	httpHandler = middleware.MaxRequestSize(int64(cfg.MaxRequestSize))(httpHandler)
	httpHandler = middleware.RequestLogging(cfg.Log)(httpHandler)
	httpHandler = middleware.Recovery(cfg.Log)(httpHandler)

	a.server = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	cfg.Log.Info("HTTP server configured", "port", cfg.Port)
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	a.rateLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.cfg.GracefulShutdown()
	a.cfg.Log.Info("Server stopped gracefully")
}
