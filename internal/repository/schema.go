package repository

// PostgresSchema holds idempotent DDL executed at startup.
var PostgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS cryptocurrencies (
		symbol TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		current_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		market_cap DOUBLE PRECISION NOT NULL DEFAULT 0,
		volume_24h DOUBLE PRECISION NOT NULL DEFAULT 0,
		price_change_24h DOUBLE PRECISION NOT NULL DEFAULT 0,
		last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS analyst_targets (
		id BIGSERIAL PRIMARY KEY,
		analyst_id TEXT NOT NULL,
		symbol TEXT NOT NULL,
		current_price DOUBLE PRECISION NOT NULL,
		target_price DOUBLE PRECISION NOT NULL,
		price_change_percent DOUBLE PRECISION NOT NULL,
		timeframe TEXT NOT NULL,
		confidence_level INT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT true,
		published_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analyst_targets_symbol_active
		ON analyst_targets (symbol) WHERE is_active`,
	`CREATE TABLE IF NOT EXISTS coin_analyst_summary (
		symbol TEXT PRIMARY KEY,
		total_analysts INT NOT NULL DEFAULT 0,
		short_term_count INT NOT NULL DEFAULT 0,
		short_term_avg DOUBLE PRECISION,
		short_term_median DOUBLE PRECISION,
		medium_term_count INT NOT NULL DEFAULT 0,
		medium_term_avg DOUBLE PRECISION,
		medium_term_median DOUBLE PRECISION,
		long_term_count INT NOT NULL DEFAULT 0,
		long_term_avg DOUBLE PRECISION,
		long_term_median DOUBLE PRECISION,
		consensus_direction TEXT NOT NULL DEFAULT 'neutral',
		confidence_level DOUBLE PRECISION,
		price_dispersion DOUBLE PRECISION,
		last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tweet_sentiments (
		id BIGSERIAL PRIMARY KEY,
		symbol TEXT NOT NULL,
		author TEXT NOT NULL,
		content TEXT NOT NULL,
		sentiment_score DOUBLE PRECISION NOT NULL,
		followers BIGINT NOT NULL DEFAULT 0,
		posted_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tweet_sentiments_symbol_posted
		ON tweet_sentiments (symbol, posted_at DESC)`,
	`CREATE TABLE IF NOT EXISTS correlation_analysis (
		id BIGSERIAL PRIMARY KEY,
		symbol TEXT NOT NULL,
		correlation_btc DOUBLE PRECISION NOT NULL,
		correlation_eth DOUBLE PRECISION NOT NULL,
		beta DOUBLE PRECISION NOT NULL DEFAULT 0,
		window_days INT NOT NULL DEFAULT 30,
		computed_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS exchange_price_dispersion (
		id BIGSERIAL PRIMARY KEY,
		symbol TEXT NOT NULL,
		price_dispersion DOUBLE PRECISION NOT NULL,
		volume_concentration DOUBLE PRECISION NOT NULL,
		signal_level INT NOT NULL,
		signal_type TEXT NOT NULL,
		computed_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dispersion_symbol_computed
		ON exchange_price_dispersion (symbol, computed_at DESC)`,
}

// ClickHouseSchema holds idempotent DDL for the tick store.
var ClickHouseSchema = []string{
	`CREATE TABLE IF NOT EXISTS price_ticks (
		ts DateTime,
		symbol LowCardinality(String),
		exchange LowCardinality(String),
		price Float64,
		volume Float64
	) ENGINE = MergeTree()
	PARTITION BY toYYYYMMDD(ts)
	ORDER BY (symbol, exchange, ts)
	TTL ts + INTERVAL 30 DAY`,
}
