package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"CoinPulse/internal/usecase"
	pkgch "CoinPulse/pkg/clickhouse"
	"CoinPulse/pkg/config"
	xhttp "CoinPulse/pkg/http"
	pkgkafka "CoinPulse/pkg/kafka"
	applogger "CoinPulse/pkg/logger"
	"CoinPulse/pkg/postgres"
	"CoinPulse/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	collector   *usecase.TickCollector
	consumer    *pkgkafka.Consumer
	queue       *queue.RedisQueue
	scheduler   *usecase.DispersionScheduler
	pgClient    *postgres.Client
	chClient    *pkgch.Client
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler

	// TickProc is set by DI so shutdown can release the publisher and store.
	TickProc *usecase.TickProcessor
}

// New creates a new App instance with all dependencies. Kafka handlers are
// registered on the consumer before the app is constructed; queue, scheduler
// and collector may be nil when the corresponding feature is disabled.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	collector *usecase.TickCollector,
	consumer *pkgkafka.Consumer,
	q *queue.RedisQueue,
	scheduler *usecase.DispersionScheduler,
	pgClient *postgres.Client,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		collector: collector,
		consumer:  consumer,
		queue:     q,
		scheduler: scheduler,
		pgClient:  pgClient,
		chClient:  chClient,
	}
}

// SetHTTPHandler allows DI to inject the HTTP route registrar.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := a.logger

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(a.cfg.Metrics.Path),
	)

	// Tick collector: websocket -> pipeline -> backend
	if a.collector != nil {
		go func() {
			if err := a.collector.Start(ctx); err != nil {
				l.Error("collector error", applogger.Error(err))
			}
		}()
		l.Info("collector started", applogger.Strings("symbols", a.cfg.Exchange.Symbols))
	}

	// Kafka consumer: tick and analyst-target topics
	if a.consumer != nil {
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started",
			applogger.String("tick_topic", a.cfg.Kafka.TickTopic),
			applogger.String("target_topic", a.cfg.Kafka.TargetTopic),
		)
	}

	// Redis queue worker + dispersion scheduler
	if a.queue != nil {
		if err := a.queue.Start(); err != nil {
			l.Error("redis queue start error", applogger.Error(err))
			return err
		}
		if a.scheduler != nil {
			a.scheduler.Start(ctx)
		}
	}

	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services: producers first, then the HTTP
// surface, then the storage clients.
func (a *App) shutdown(ctx context.Context) error {
	l := a.logger

	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	if a.collector != nil {
		if err := a.collector.Shutdown(ctx); err != nil {
			l.Warn("collector stop error", applogger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			l.Error("http shutdown error", applogger.Error(err))
		}
	}

	if a.queue != nil {
		if err := a.queue.Stop(shutdownCtx); err != nil {
			l.Warn("redis queue stop error", applogger.Error(err))
		}
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.TickProc != nil {
		a.TickProc.Close()
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.pgClient != nil {
		a.pgClient.Close()
	}

	l.Info("shutdown complete")
	return nil
}
