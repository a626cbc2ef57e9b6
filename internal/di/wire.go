//go:build wireinject
// +build wireinject

package di

import (
	"CoinPulse/pkg/config"
	"CoinPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Metrics and logging
		ProvideMetrics,
		ProvideLogger,

		// Infrastructure clients
		ProvidePostgresClient,
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideCache,

		// Repositories
		ProvideTickStore,
		ProvideTargetStore,
		ProvideMarketStore,
		ProvideDispersionStore,
		ProvideTickPublisher,
		ProvideExchangeStream,

		// Use cases
		ProvideTickProcessor,
		ProvideTickCollector,
		ProvideDataIngestor,
		ProvideSeeder,
		ProvideDashboard,
		ProvideDispersionAnalyzer,
		ProvideDispersionQueue,
		ProvideDispersionScheduler,
		ProvideKafkaTicksHandler,
		ProvideKafkaTargetsHandler,

		// HTTP surface
		ProvideRouter,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
