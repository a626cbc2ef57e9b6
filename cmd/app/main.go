package main

import (
	"flag"
	"log"
	"os"

	"CoinPulse/internal/di"
	"CoinPulse/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s backend=%s symbols=%v", cfg.Environment, cfg.Backend.Type, cfg.Exchange.Symbols)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	log.Printf("postgres: connected and schema ready - db: %s", cfg.Postgres.Database)
	log.Printf("clickhouse: connected and schema ready - db: %s", cfg.ClickHouse.Database)
	log.Printf("kafka: brokers=%v tick_topic=%s target_topic=%s", cfg.Kafka.Brokers, cfg.Kafka.TickTopic, cfg.Kafka.TargetTopic)

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
