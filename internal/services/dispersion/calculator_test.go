package dispersion

import (
	"math"
	"testing"
	"time"

	"CoinPulse/internal/domain/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPriceDispersion(t *testing.T) {
	cases := []struct {
		name   string
		prices []float64
		want   float64
	}{
		{"spread", []float64{100, 102, 98}, (102.0 - 98.0) / 100.0 * 100},
		{"identical", []float64{100, 100}, 0},
		{"single", []float64{100}, 0},
		{"empty", nil, 0},
		{"skips_nonpositive", []float64{100, 0, -5}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := PriceDispersion(c.prices); !almostEqual(got, c.want) {
				t.Fatalf("PriceDispersion(%v) = %v, want %v", c.prices, got, c.want)
			}
		})
	}
}

func TestVolumeConcentration(t *testing.T) {
	// Single exchange owns the market: HHI = 10000.
	if got := VolumeConcentration(map[string]float64{"binance": 100}); !almostEqual(got, 10000) {
		t.Fatalf("monopoly HHI = %v, want 10000", got)
	}
	// Two equal exchanges: 0.5^2 * 2 * 10000 = 5000.
	got := VolumeConcentration(map[string]float64{"binance": 50, "coinbase": 50})
	if !almostEqual(got, 5000) {
		t.Fatalf("even split HHI = %v, want 5000", got)
	}
	if got := VolumeConcentration(nil); got != 0 {
		t.Fatalf("empty HHI = %v, want 0", got)
	}
	if got := VolumeConcentration(map[string]float64{"binance": 0}); got != 0 {
		t.Fatalf("zero volume HHI = %v, want 0", got)
	}
}

func TestSignalLevel(t *testing.T) {
	cases := []struct {
		name      string
		pd        float64
		vc        float64
		dom       float64
		wantLevel int
		wantType  string
	}{
		{"quiet", 0.5, 1000, 0, 1, models.SignalConvergence},
		{"elevated_dispersion", 3, 1000, 0, 2, models.SignalNeutral},
		{"high_dispersion", 6, 1000, 0, 3, models.SignalNeutral},
		{"divergence", 6, 3000, 0, 4, models.SignalDivergence},
		{"maxed", 6, 3000, 3, 5, models.SignalDivergence},
		{"neutral_mid", 1.5, 1800, 0, 1, models.SignalNeutral},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			level, sigType := SignalLevel(c.pd, c.vc, c.dom)
			if level != c.wantLevel {
				t.Fatalf("level = %d, want %d", level, c.wantLevel)
			}
			if sigType != c.wantType {
				t.Fatalf("type = %q, want %q", sigType, c.wantType)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	now := time.Now()
	quotes := []*models.ExchangeQuote{
		{Exchange: "binance", Symbol: "BTC", Price: 100, Volume: 900},
		{Exchange: "coinbase", Symbol: "BTC", Price: 106, Volume: 100},
	}

	snap := Analyze("BTC", quotes, now)
	if snap == nil {
		t.Fatalf("expected snapshot")
	}
	if snap.Symbol != "BTC" {
		t.Fatalf("symbol = %q", snap.Symbol)
	}
	wantPD := 6.0 / 103.0 * 100
	if !almostEqual(snap.PriceDispersion, wantPD) {
		t.Fatalf("dispersion = %v, want %v", snap.PriceDispersion, wantPD)
	}
	// 0.9^2 + 0.1^2 = 0.82 -> 8200
	if !almostEqual(snap.VolumeConcentration, 8200) {
		t.Fatalf("concentration = %v, want 8200", snap.VolumeConcentration)
	}
	if snap.SignalType != models.SignalDivergence {
		t.Fatalf("type = %q, want divergence", snap.SignalType)
	}
	if !snap.ComputedAt.Equal(now) {
		t.Fatalf("computed_at not set")
	}

	if got := Analyze("BTC", nil, now); got != nil {
		t.Fatalf("expected nil for no quotes")
	}
}

func TestMarketSummary(t *testing.T) {
	now := time.Now()
	snaps := []*models.DispersionSnapshot{
		{Symbol: "BTC", PriceDispersion: 1, SignalLevel: 1},
		{Symbol: "ETH", PriceDispersion: 5, SignalLevel: 4},
		{Symbol: "SOL", PriceDispersion: 3, SignalLevel: 3},
	}

	s := MarketSummary(snaps, 2, now)
	if s.CoinsAnalyzed != 3 {
		t.Fatalf("coins = %d, want 3", s.CoinsAnalyzed)
	}
	if !almostEqual(s.AvgDispersion, 3) || s.MaxDispersion != 5 || s.MinDispersion != 1 {
		t.Fatalf("stats = %v/%v/%v", s.AvgDispersion, s.MaxDispersion, s.MinDispersion)
	}
	if s.HighSignalCount != 1 || s.LowSignalCount != 1 {
		t.Fatalf("signal counts = %d/%d, want 1/1", s.HighSignalCount, s.LowSignalCount)
	}
	if len(s.TopDispersion) != 2 || s.TopDispersion[0].Symbol != "ETH" {
		t.Fatalf("top ranking wrong: %+v", s.TopDispersion)
	}
	if len(s.LowestDispersion) != 2 || s.LowestDispersion[0].Symbol != "BTC" {
		t.Fatalf("lowest ranking wrong: %+v", s.LowestDispersion)
	}

	empty := MarketSummary(nil, 5, now)
	if empty.CoinsAnalyzed != 0 || empty.AvgDispersion != 0 {
		t.Fatalf("empty summary wrong: %+v", empty)
	}
}
