package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"HelioCast/internal/handler/api"
	"HelioCast/internal/repository"
	icache "HelioCast/internal/service/cache"
	"HelioCast/internal/services/inference"
	"HelioCast/internal/usecase"
	pkgcache "HelioCast/pkg/cache"
	pkgch "HelioCast/pkg/clickhouse"
	"HelioCast/pkg/config"
	xhttp "HelioCast/pkg/http"
	pkgkafka "HelioCast/pkg/kafka"
	applogger "HelioCast/pkg/logger"
	pkgqueue "HelioCast/pkg/queue"
	"HelioCast/pkg/util"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	collector   *usecase.ObservationCollector
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	chClient    *pkgch.Client
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	ObsProc     *usecase.ObservationProcessor
	backfillQ   *pkgqueue.RedisQueue
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	collector *usecase.ObservationCollector,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		collector: collector,
		consumer:  consumer,
		kh:        kh,
		chClient:  chClient,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// init app logger (console info by default)
	l, _ := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})

	// Setup Echo HTTP server using pkg/http and register routes via handler
	var httpHandler xhttp.Handler
	if a.httpHandler != nil {
		httpHandler = a.httpHandler
	} else if a.chClient != nil && a.cfg.Inference.ModelServiceURL != "" {
		store := repository.NewCHSeriesStore(a.chClient)
		store.SetLogger(l)
		step := inference.NewHTTPStepPredictor(a.cfg)
		enc := inference.NewHTTPEncoder(a.cfg)
		dec := inference.NewHTTPDecoder(a.cfg)
		classifier := inference.NewHTTPSentimentClassifier(a.cfg)

		forecasts := usecase.NewForecastService(store, step, enc, dec, a.cfg)
		overview := usecase.NewOverviewUseCase(forecasts)
		seriesUC := usecase.NewSeriesUseCase(store, a.cfg)
		sentiment := usecase.NewSentimentUseCase(classifier, a.cfg)

		// Forecast result cache: layered (memory + redis) when redis is
		// configured, memory only otherwise.
		if a.cfg.Inference.Redis.Enabled {
			host, port := util.SplitHostPort(a.cfg.Inference.Redis.Addr, 6379)
			rc, err := pkgcache.NewRedisCache(
				pkgcache.WithRedisHost(host),
				pkgcache.WithRedisPort(port),
				pkgcache.WithRedisPassword(a.cfg.Inference.Redis.Password),
				pkgcache.WithRedisDB(a.cfg.Inference.Redis.DB),
			)
			if err != nil {
				l.Warn("redis cache unavailable, falling back to memory", applogger.Error(err))
				forecasts.SetCache(pkgcache.NewMemoryCache(), a.cfg.Inference.CacheTTL.Forecast)
			} else {
				forecasts.SetCache(pkgcache.NewLayeredCache(rc), a.cfg.Inference.CacheTTL.Forecast)
			}
		} else {
			forecasts.SetCache(pkgcache.NewMemoryCache(), a.cfg.Inference.CacheTTL.Forecast)
		}

		echoHandler := api.NewForecastEchoHandler(l, forecasts, overview, seriesUC, sentiment)

		// Legacy net/http surface with its own response cache and rate limits
		legacy := api.NewForecastHandler(forecasts, seriesUC)
		legacy.SetLogger(l)
		if a.cfg.Inference.Redis.Enabled {
			legacy.SetCache(icache.NewRedisCache(icache.RedisConfig{
				Addr:     a.cfg.Inference.Redis.Addr,
				Password: a.cfg.Inference.Redis.Password,
				DB:       a.cfg.Inference.Redis.DB,
			}))
		} else {
			legacy.SetCache(icache.NewTTLCache())
		}

		httpHandler = &routeSet{echo: echoHandler, legacy: legacy}
	}

	a.httpServer = xhttp.NewServer(httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start collector
	go func() {
		if err := a.collector.Start(ctx); err != nil {
			l.Error("collector error", applogger.Error(err))
		}
	}()
	l.Info("collector started", applogger.Strings("stations", a.cfg.Feed.Stations))

	// Start backfill queue consumer if redis is configured
	if a.cfg.Inference.Redis.Enabled && a.ObsProc != nil {
		rdb := redis.NewClient(&redis.Options{
			Addr:     a.cfg.Inference.Redis.Addr,
			Password: a.cfg.Inference.Redis.Password,
			DB:       a.cfg.Inference.Redis.DB,
		})
		a.backfillQ = pkgqueue.NewRedisConsumer(l, &pkgqueue.QueueConfig{Workers: 2, RetryLimit: 3},
			rdb, []pkgqueue.Job{usecase.NewBackfillJob(a.ObsProc)})
		if err := a.backfillQ.Start(); err != nil {
			l.Error("backfill queue start error", applogger.Error(err))
		} else {
			l.Info("backfill queue started")
		}
	}

	// Start consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	// best-effort logging via stdout
	l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Printf("failed to create logger: %v", err)
		return err
	}
	l.Info("shutting down...")

	// Stop collector (pipeline + stream)
	if err := a.collector.Shutdown(ctx); err != nil {
		l.Warn("collector stop error", applogger.Error(err))
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Close infrastructure clients
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	// Stop backfill queue
	if a.backfillQ != nil {
		if err := a.backfillQ.Stop(ctx); err != nil {
			l.Warn("backfill queue stop error", applogger.Error(err))
		}
	}

	// Stop consumer
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Close observation processor resources (publisher/storage)
	if a.ObsProc != nil {
		a.ObsProc.Close()
	}

	l.Info("shutdown complete")
	return nil
}

// routeSet registers the echo handler and mounts the legacy net/http surface
// under /v1 on the same server.
type routeSet struct {
	echo   *api.ForecastEchoHandler
	legacy *api.ForecastHandler
}

func (rs *routeSet) RegisterRoutes(e *echo.Echo) {
	rs.echo.RegisterRoutes(e)
	e.GET("/v1/forecast", echo.WrapHandler(rs.legacy.Forecast()))
	e.GET("/v1/series", echo.WrapHandler(rs.legacy.Series()))
}
