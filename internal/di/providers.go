package di

import (
	"context"
	"fmt"
	"time"

	"CoinPulse/internal/domain/repository"
	"CoinPulse/internal/handler/api"
	mid "CoinPulse/internal/middleware"
	internalrepo "CoinPulse/internal/repository"
	"CoinPulse/internal/service/exchange"
	"CoinPulse/internal/usecase"
	"CoinPulse/pkg/cache"
	pkgch "CoinPulse/pkg/clickhouse"
	"CoinPulse/pkg/config"
	xhttp "CoinPulse/pkg/http"
	pkgkafka "CoinPulse/pkg/kafka"
	applogger "CoinPulse/pkg/logger"
	"CoinPulse/pkg/metrics"
	"CoinPulse/pkg/postgres"
	"CoinPulse/pkg/queue"
	"CoinPulse/pkg/server"

	goredis "github.com/redis/go-redis/v9"
)

// logTopic receives aggregated error batches from the log collector.
const logTopic = "coinpulse.logs"

// ProvideLogger creates the application logger. When a Kafka producer is
// available, aggregated error logs are shipped to the log topic.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	if producer != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   time.Minute,
			CountThreshold: 100,
			Topic:          logTopic,
			Publisher:      internalrepo.NewKafkaLogSink(producer),
		})
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvidePostgresClient creates the Postgres pool and runs the DDL.
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := postgres.NewClient(ctx,
		postgres.WithHost(cfg.Postgres.Host),
		postgres.WithPort(cfg.Postgres.Port),
		postgres.WithDatabase(cfg.Postgres.Database),
		postgres.WithCredentials(cfg.Postgres.User, cfg.Postgres.Password),
		postgres.WithSSLMode(cfg.Postgres.SSLMode),
		postgres.WithPoolSize(int32(cfg.Postgres.MinConns), int32(cfg.Postgres.MaxConns)),
		postgres.WithDialTimeout(cfg.Postgres.DialTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres client: %w", err)
	}

	if err := client.InitSchema(ctx, internalrepo.PostgresSchema); err != nil {
		client.Close()
		return nil, fmt.Errorf("postgres schema: %w", err)
	}
	return client, nil
}

// ProvideClickHouseClient creates a ClickHouse client and runs the DDL.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := append(
		[]string{fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", cfg.ClickHouse.Database)},
		internalrepo.ClickHouseSchema...,
	)
	if err := client.InitSchema(ctx, stmts); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideCache builds the response cache. With Redis enabled the layered
// cache (memory L1 over Redis L2) is used and the Redis client is shared
// with the job queue; otherwise a process-local memory cache is used and no
// Redis client is returned.
func ProvideCache(cfg *config.Config) (cache.Service, *goredis.Client, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(), nil, nil
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc), rc.Client(), nil
}

// ProvideTickStore creates the ClickHouse tick repository.
func ProvideTickStore(chClient *pkgch.Client) repository.TickStore {
	return internalrepo.NewClickHouseTickStore(chClient.DB(), "price_ticks")
}

// ProvideTargetStore creates the analyst target repository.
func ProvideTargetStore(pg *postgres.Client, m repository.Metrics, l *applogger.Logger) repository.TargetStore {
	return internalrepo.NewPostgresTargetStore(pg.Pool(), m, l)
}

// ProvideMarketStore creates the market data repository.
func ProvideMarketStore(pg *postgres.Client, l *applogger.Logger) repository.MarketStore {
	return internalrepo.NewPostgresMarketStore(pg.Pool(), l)
}

// ProvideDispersionStore creates the dispersion snapshot repository.
func ProvideDispersionStore(pg *postgres.Client) repository.DispersionStore {
	return internalrepo.NewPostgresDispersionStore(pg.Pool())
}

// ProvideTickPublisher creates the Kafka tick publisher.
func ProvideTickPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	return internalrepo.NewKafkaTickPublisher(producer, cfg.Kafka.TickTopic)
}

// ProvideExchangeStream creates the exchange WebSocket stream.
func ProvideExchangeStream(cfg *config.Config, l *applogger.Logger) repository.MarketStream {
	return exchange.New(
		cfg.Exchange.WebSocketURL,
		cfg.Exchange.Symbols,
		cfg.Exchange.ReconnectDelay,
		cfg.Exchange.PingInterval,
		l,
	)
}

// ProvideTickProcessor creates the backend-routing tick processor.
func ProvideTickProcessor(
	pub repository.Publisher,
	store repository.TickStore,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.TickProcessor {
	return usecase.NewTickProcessor(
		pub,
		store,
		m,
		cfg.Backend.Type,
		cfg.Backend.BatchSize,
		cfg.Backend.BatchTimeout,
	)
}

// ProvideTickCollector creates the collector with a throttling pipeline
// between the WebSocket and the backend.
func ProvideTickCollector(
	stream repository.MarketStream,
	processor *usecase.TickProcessor,
	m repository.Metrics,
) *usecase.TickCollector {
	pipe := mid.NewRealtimePipeline(processor, m,
		mid.WithMaxRPS(50),
		mid.WithBufferSize(2000),
	)
	return usecase.NewTickCollector(stream, processor, m, pipe)
}

// ProvideDataIngestor creates the write-side ingestor.
func ProvideDataIngestor(targets repository.TargetStore, market repository.MarketStore, l *applogger.Logger) *usecase.DataIngestor {
	return usecase.NewDataIngestor(targets, market, l)
}

// ProvideSeeder creates the sample data seeder.
func ProvideSeeder(market repository.MarketStore, targets repository.TargetStore, l *applogger.Logger) *usecase.Seeder {
	return usecase.NewSeeder(market, targets, l)
}

// ProvideDashboard creates the cached read-side use case.
func ProvideDashboard(
	market repository.MarketStore,
	targets repository.TargetStore,
	cacheSvc cache.Service,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.Dashboard {
	return usecase.NewDashboard(market, targets, cacheSvc, cfg.Cache.CoinTTL, cfg.Cache.SummaryTTL, l)
}

// ProvideDispersionAnalyzer creates the cross-exchange dispersion analyzer.
func ProvideDispersionAnalyzer(
	ticks repository.TickStore,
	store repository.DispersionStore,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.DispersionAnalyzer {
	return usecase.NewDispersionAnalyzer(ticks, store, m, l, cfg.Dispersion.Window)
}

// ProvideDispersionQueue creates the Redis-backed job queue running the
// dispersion snapshot job. Returns nil when Redis is disabled.
func ProvideDispersionQueue(
	cfg *config.Config,
	l *applogger.Logger,
	rdb *goredis.Client,
	analyzer *usecase.DispersionAnalyzer,
) *queue.RedisQueue {
	if rdb == nil {
		return nil
	}
	q := queue.NewRedisQueue(l, &queue.QueueConfig{
		Workers:    cfg.Dispersion.Workers,
		RetryLimit: cfg.Dispersion.RetryLimit,
		RetryDelay: 10 * time.Second,
	}, rdb, queue.ModeProducerConsumer)
	q.RegisterJob(usecase.NewDispersionJob(analyzer))
	return q
}

// ProvideDispersionScheduler creates the per-symbol snapshot scheduler.
// Returns nil when the queue is unavailable.
func ProvideDispersionScheduler(q *queue.RedisQueue, cfg *config.Config, l *applogger.Logger) *usecase.DispersionScheduler {
	if q == nil {
		return nil
	}
	return usecase.NewDispersionScheduler(q, cfg.Exchange.Symbols, cfg.Dispersion.Interval, l)
}

// ProvideKafkaTicksHandler registers the handler for the tick topic.
func ProvideKafkaTicksHandler(store repository.TickStore, m repository.Metrics, cfg *config.Config) *usecase.KafkaTicksHandler {
	return usecase.NewKafkaTicksHandler(cfg.Kafka.TickTopic, store, m)
}

// ProvideKafkaTargetsHandler registers the handler for the analyst target topic.
func ProvideKafkaTargetsHandler(ingestor *usecase.DataIngestor, m repository.Metrics, cfg *config.Config) *usecase.KafkaTargetsHandler {
	return usecase.NewKafkaTargetsHandler(cfg.Kafka.TargetTopic, ingestor, m)
}

// ProvideRouter composes the API handlers into a single route registrar.
func ProvideRouter(
	l *applogger.Logger,
	dashboard *usecase.Dashboard,
	ingestor *usecase.DataIngestor,
	seeder *usecase.Seeder,
	ticks repository.TickStore,
	analyzer *usecase.DispersionAnalyzer,
) xhttp.Handler {
	return api.NewRouter(
		api.NewDashboardHandler(l, dashboard, ingestor, seeder, ticks),
		api.NewSocialHandler(),
		api.NewDispersionHandler(l, analyzer),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	collector *usecase.TickCollector,
	consumer *pkgkafka.Consumer,
	ticksHandler *usecase.KafkaTicksHandler,
	targetsHandler *usecase.KafkaTargetsHandler,
	q *queue.RedisQueue,
	scheduler *usecase.DispersionScheduler,
	pg *postgres.Client,
	chClient *pkgch.Client,
	router xhttp.Handler,
) *server.App {
	if consumer != nil {
		consumer.WithLogger(l)
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
		consumer.RegisterHandler(ticksHandler)
		consumer.RegisterHandler(targetsHandler)
	}

	app := server.New(cfg, l, collector, consumer, q, scheduler, pg, chClient)
	app.SetHTTPHandler(router)
	if collector != nil {
		app.TickProc = collector.Processor()
	}
	return app
}
