package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/riya-n/step204-2020/internal/cache"
	cacheredis "github.com/riya-n/step204-2020/internal/cache/redis"
	"github.com/riya-n/step204-2020/internal/config"
	"github.com/riya-n/step204-2020/internal/events"
	"github.com/riya-n/step204-2020/internal/geo"
	"github.com/riya-n/step204-2020/internal/listing"
	"github.com/riya-n/step204-2020/internal/render"
	"github.com/riya-n/step204-2020/internal/requirements"
	"github.com/riya-n/step204-2020/internal/telemetry"
	"github.com/riya-n/step204-2020/internal/web"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return zap.NewProduction()
}

func newCache(cfg *config.Config) cache.Cache {
	return cacheredis.New(cache.Options{
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
}

func newRequirementsSource() requirements.Source {
	return requirements.NewStaticSource()
}

func newBuilder(logger *zap.Logger, source requirements.Source) *render.Builder {
	return render.NewBuilder(logger, source)
}

func registerServer(
	lc fx.Lifecycle,
	cfg *config.Config,
	logger *zap.Logger,
	engine *gin.Engine,
	handlers *web.Handlers,
	publisher events.Publisher,
	c cache.Cache,
) {
	web.RegisterRoutes(engine, handlers)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	var shutdownTracer func()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.OTLPCollectorURL != "" {
				shutdown, err := telemetry.InitTracer(ctx, "step204-webapp", cfg.OTLPCollectorURL)
				if err != nil {
					logger.Warn("tracing disabled", zap.Error(err))
				} else {
					shutdownTracer = shutdown
				}
			}

			logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			err := server.Shutdown(ctx)
			publisher.Close()
			if cerr := c.Close(); cerr != nil {
				logger.Warn("failed to close cache", zap.Error(cerr))
			}
			if shutdownTracer != nil {
				shutdownTracer()
			}
			return err
		},
	})
}

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newCache,
			newRequirementsSource,
			newBuilder,
			listing.NewClient,
			listing.NewLoader,
			events.NewPublisher,
			geo.NewGeocoder,
			render.NewRenderer,
			web.NewEngine,
			web.NewHandlers,
		),
		fx.Invoke(registerServer),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
