package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/langowen/calibrator/deploy/config"
	"github.com/langowen/calibrator/internal/calibrator/adapter/api_client/frankfurter"
	"github.com/langowen/calibrator/internal/calibrator/adapter/publisher/redis"
	"github.com/langowen/calibrator/internal/calibrator/ports/http/public"
	"github.com/langowen/calibrator/internal/calibrator/service"
	redisPack "github.com/redis/go-redis/v9"
)

type App struct {
	cfg *config.Config
}

func NewApp(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

func (a *App) Start(ctx context.Context) <-chan struct{} {
	a.initLogger()
	slog.Info("Logger initialized")

	slog.With("config", a.cfg).Info("starting application")

	httpClient := a.initHTTPClient()
	slog.Info("HTTP client initialized", "provider", a.cfg.Provider.URL)

	publisher := a.initPublisher(ctx)

	calibrator := service.NewService(httpClient, publisher, a.cfg)
	slog.Info("Service initialized")

	serverDone := public.StartServer(ctx, calibrator, a.cfg)
	slog.Info("server started", "port", a.cfg.HTTPServer.Port)

	return a.closeAfter(serverDone, publisher)
}

// closeAfter releases the publisher's connection once the server has stopped.
func (a *App) closeAfter(serverDone <-chan struct{}, publisher service.Publisher) <-chan struct{} {
	closer, ok := publisher.(io.Closer)
	if !ok {
		return serverDone
	}

	done := make(chan struct{})

	go func() {
		defer close(done)

		<-serverDone

		if err := closer.Close(); err != nil {
			slog.Error("Failed to close Redis publisher", "error", err)
			return
		}
		slog.Info("Redis publisher closed")
	}()

	return done
}

func (a *App) initLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     a.cfg.Log.SlogLevel(),
		AddSource: false,
	}))
	slog.SetDefault(logger)
}

func (a *App) initHTTPClient() *frankfurter.HTTPClient {
	return frankfurter.NewHTTPClient(
		a.cfg.Provider.URL,
		a.cfg.Provider.ConversionTimeout,
		a.cfg.Provider.HistoryTimeout,
	)
}

// initPublisher falls back to a no-op publisher when Redis is not configured or unreachable;
// publishing is never required for a conversion to succeed.
func (a *App) initPublisher(ctx context.Context) service.Publisher {
	if !a.cfg.Redis.Enabled() {
		slog.Info("Redis publisher disabled")
		return service.NopPublisher{}
	}

	options := &redisPack.Options{
		Addr:     a.cfg.Redis.Host,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	}

	publisher, err := redis.InitPublisher(ctx, options, a.cfg.Redis.Channel)
	if err != nil {
		slog.Error("Failed to initialize Redis publisher", "error", err)
		return service.NopPublisher{}
	}

	slog.Info("Redis publisher initialized", "channel", a.cfg.Redis.Channel)

	return publisher
}
