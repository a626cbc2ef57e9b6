package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/repository"
	"CoinPulse/internal/usecase"
	applogger "CoinPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubTargetStore struct {
	inserted  []*models.AnalystTarget
	summaries map[string]*models.CoinAnalystSummary
}

func (s *stubTargetStore) InsertTarget(ctx context.Context, t *models.AnalystTarget) error {
	s.inserted = append(s.inserted, t)
	return nil
}

func (s *stubTargetStore) RecentTargets(ctx context.Context, symbol string, limit int) ([]*models.AnalystTarget, error) {
	var out []*models.AnalystTarget
	for _, t := range s.inserted {
		if t.Symbol == symbol {
			out = append(out, t)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubTargetStore) GetSummary(ctx context.Context, symbol string) (*models.CoinAnalystSummary, error) {
	sum, ok := s.summaries[symbol]
	if !ok {
		return nil, repository.ErrSummaryNotFound
	}
	return sum, nil
}

type stubMarketStore struct {
	coins map[string]*models.Cryptocurrency
}

func (s *stubMarketStore) UpsertCoin(ctx context.Context, c *models.Cryptocurrency) error {
	s.coins[c.Symbol] = c
	return nil
}

func (s *stubMarketStore) GetCoin(ctx context.Context, symbol string) (*models.Cryptocurrency, error) {
	c, ok := s.coins[symbol]
	if !ok {
		return nil, repository.ErrCoinNotFound
	}
	return c, nil
}

func (s *stubMarketStore) ListCoins(ctx context.Context) ([]*models.Cryptocurrency, error) {
	return nil, nil
}

func (s *stubMarketStore) InsertSentiment(ctx context.Context, t *models.TweetSentiment) error {
	return nil
}

func (s *stubMarketStore) RecentSentiments(ctx context.Context, symbol string, limit int) ([]*models.TweetSentiment, error) {
	return nil, nil
}

func (s *stubMarketStore) InsertCorrelation(ctx context.Context, c *models.CorrelationAnalysis) error {
	return nil
}

func (s *stubMarketStore) LatestCorrelation(ctx context.Context, symbol string) (*models.CorrelationAnalysis, error) {
	return nil, nil
}

func (s *stubMarketStore) Seed(ctx context.Context) error { return nil }

type stubTickStore struct {
	ticks  []*models.Tick
	quotes []*models.ExchangeQuote
}

func (s *stubTickStore) Init(ctx context.Context) error                   { return nil }
func (s *stubTickStore) Store(ctx context.Context, t *models.Tick) error  { return nil }
func (s *stubTickStore) StoreBatch(ctx context.Context, t []*models.Tick) error { return nil }

func (s *stubTickStore) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.Tick, error) {
	return s.ticks, nil
}

func (s *stubTickStore) LatestQuotes(ctx context.Context, symbol string, window time.Duration) ([]*models.ExchangeQuote, error) {
	return s.quotes, nil
}

func (s *stubTickStore) Health(ctx context.Context) error { return nil }
func (s *stubTickStore) Close() error                     { return nil }

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestRouter(targets *stubTargetStore, market *stubMarketStore, ticks *stubTickStore) *echo.Echo {
	l := applogger.NewDefault()
	dashboard := usecase.NewDashboard(market, targets, nil, time.Second, time.Second, l)
	ingestor := usecase.NewDataIngestor(targets, market, l)
	seeder := usecase.NewSeeder(market, targets, l)

	e := echo.New()
	NewDashboardHandler(l, dashboard, ingestor, seeder, ticks).RegisterRoutes(e)
	NewSocialHandler().RegisterRoutes(e)
	return e
}

func doRequest(e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestGetCoinNotFound(t *testing.T) {
	e := newTestRouter(
		&stubTargetStore{summaries: map[string]*models.CoinAnalystSummary{}},
		&stubMarketStore{coins: map[string]*models.Cryptocurrency{}},
		&stubTickStore{},
	)

	rec, env := doRequest(e, http.MethodGet, "/api/coins/DOGE", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Success {
		t.Fatalf("success should be false")
	}
}

func TestGetCoinDetail(t *testing.T) {
	market := &stubMarketStore{coins: map[string]*models.Cryptocurrency{
		"BTC": {Symbol: "BTC", Name: "Bitcoin", CurrentPrice: 97500},
	}}
	e := newTestRouter(&stubTargetStore{summaries: map[string]*models.CoinAnalystSummary{}}, market, &stubTickStore{})

	rec, env := doRequest(e, http.MethodGet, "/api/coins/BTC", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var detail models.CoinDetail
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.Coin == nil || detail.Coin.Name != "Bitcoin" {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}

func TestGetSummary(t *testing.T) {
	avg := 120000.0
	targets := &stubTargetStore{summaries: map[string]*models.CoinAnalystSummary{
		"BTC": {Symbol: "BTC", TotalAnalysts: 3, ShortTermCount: 1, ShortTermAvg: &avg, ConsensusDirection: models.DirectionBullish},
	}}
	e := newTestRouter(targets, &stubMarketStore{coins: map[string]*models.Cryptocurrency{}}, &stubTickStore{})

	rec, env := doRequest(e, http.MethodGet, "/api/summary/BTC", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var sum models.CoinAnalystSummary
	if err := json.Unmarshal(env.Data, &sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.ConsensusDirection != models.DirectionBullish || sum.ShortTermAvg == nil {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	rec, _ = doRequest(e, http.MethodGet, "/api/summary/DOGE", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing summary status = %d, want 404", rec.Code)
	}
}

func TestIngestEndpoint(t *testing.T) {
	targets := &stubTargetStore{summaries: map[string]*models.CoinAnalystSummary{}}
	e := newTestRouter(targets, &stubMarketStore{coins: map[string]*models.Cryptocurrency{}}, &stubTickStore{})

	body := `{"type":"analyst_target","data":{"analyst_id":"a1","symbol":"BTC","current_price":100000,"target_price":110000,"timeframe":"short_term","confidence_level":7}}`
	rec, env := doRequest(e, http.MethodPost, "/api/data", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if !env.Success {
		t.Fatalf("success should be true")
	}
	if len(targets.inserted) != 1 {
		t.Fatalf("target not inserted")
	}
}

func TestIngestTargetVisibleInCoinDetail(t *testing.T) {
	targets := &stubTargetStore{summaries: map[string]*models.CoinAnalystSummary{}}
	market := &stubMarketStore{coins: map[string]*models.Cryptocurrency{
		"BTC": {Symbol: "BTC", Name: "Bitcoin", CurrentPrice: 100000},
	}}
	e := newTestRouter(targets, market, &stubTickStore{})

	body := `{"type":"analyst_target","data":{"analyst_id":"amber-research","symbol":"BTC","current_price":100000,"target_price":125000,"timeframe":"long_term","confidence_level":9}}`
	rec, _ := doRequest(e, http.MethodPost, "/api/data", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("ingest status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	rec, env := doRequest(e, http.MethodGet, "/api/coins/BTC", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("detail status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var detail models.CoinDetail
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if len(detail.Targets) != 1 {
		t.Fatalf("detail should include the ingested target, got %d", len(detail.Targets))
	}
	got := detail.Targets[0]
	if got.AnalystID != "amber-research" || got.TargetPrice != 125000 || got.Timeframe != "long_term" {
		t.Fatalf("unexpected target in detail: %+v", got)
	}
}

func TestIngestUnknownTypeRejected(t *testing.T) {
	e := newTestRouter(
		&stubTargetStore{summaries: map[string]*models.CoinAnalystSummary{}},
		&stubMarketStore{coins: map[string]*models.Cryptocurrency{}},
		&stubTickStore{},
	)

	body := `{"type":"order_book","data":{"symbol":"BTC"}}`
	rec, env := doRequest(e, http.MethodPost, "/api/data", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if env.Success {
		t.Fatalf("success should be false")
	}
}

func TestTicksEndpoint(t *testing.T) {
	now := time.Now().Unix()
	ticks := &stubTickStore{ticks: []*models.Tick{
		{Symbol: "BTC", Exchange: "binance", Price: 97000, Volume: 0.5, Timestamp: now},
		{Symbol: "BTC", Exchange: "kraken", Price: 97010, Volume: 0.2, Timestamp: now},
	}}
	e := newTestRouter(
		&stubTargetStore{summaries: map[string]*models.CoinAnalystSummary{}},
		&stubMarketStore{coins: map[string]*models.Cryptocurrency{}},
		ticks,
	)

	rec, env := doRequest(e, http.MethodGet, "/api/ticks/BTC?limit=100", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var list struct {
		Rows  []*models.Tick `json:"rows"`
		Total int64          `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != 2 || len(list.Rows) != 2 {
		t.Fatalf("unexpected list: total=%d rows=%d", list.Total, len(list.Rows))
	}
}

func TestSocialEndpoints(t *testing.T) {
	e := newTestRouter(
		&stubTargetStore{summaries: map[string]*models.CoinAnalystSummary{}},
		&stubMarketStore{coins: map[string]*models.Cryptocurrency{}},
		&stubTickStore{},
	)

	for _, path := range []string{"/api/community", "/api/influencer", "/api/social-trends"} {
		rec, env := doRequest(e, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d, want 200", path, rec.Code)
		}
		if !env.Success {
			t.Fatalf("%s success should be true", path)
		}
		var rows []json.RawMessage
		if err := json.Unmarshal(env.Data, &rows); err != nil {
			t.Fatalf("%s decode: %v", path, err)
		}
		if len(rows) == 0 {
			t.Fatalf("%s should serve fixed rows", path)
		}
	}
}
