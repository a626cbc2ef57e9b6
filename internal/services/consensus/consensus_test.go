package consensus

import (
	"testing"
	"time"

	"CoinPulse/internal/domain/models"
)

func target(symbol, tf string, price, change float64, conf int) *models.AnalystTarget {
	return &models.AnalystTarget{
		Symbol:             symbol,
		Timeframe:          tf,
		TargetPrice:        price,
		PriceChangePercent: change,
		ConfidenceLevel:    conf,
		IsActive:           true,
	}
}

func TestComputeBuckets(t *testing.T) {
	now := time.Now()
	targets := []*models.AnalystTarget{
		target("BTC", "short_term", 100, 0, 5),
		target("BTC", "short_term", 110, 0, 5),
		target("BTC", "medium_term", 200, 0, 5),
	}

	s := Compute("BTC", targets, now)

	if s.TotalAnalysts != 3 {
		t.Fatalf("total = %d, want 3", s.TotalAnalysts)
	}
	if s.ShortTermCount != 2 || s.MediumTermCount != 1 || s.LongTermCount != 0 {
		t.Fatalf("counts = %d/%d/%d, want 2/1/0", s.ShortTermCount, s.MediumTermCount, s.LongTermCount)
	}
	if s.ShortTermAvg == nil || *s.ShortTermAvg != 105 {
		t.Fatalf("short avg = %v, want 105", s.ShortTermAvg)
	}
	if s.ShortTermMedian == nil || *s.ShortTermMedian != 105 {
		t.Fatalf("short median = %v, want 105", s.ShortTermMedian)
	}
	if s.MediumTermAvg == nil || *s.MediumTermAvg != 200 {
		t.Fatalf("medium avg = %v, want 200", s.MediumTermAvg)
	}
	if s.LongTermAvg != nil || s.LongTermMedian != nil {
		t.Fatalf("long bucket should be nil, got %v/%v", s.LongTermAvg, s.LongTermMedian)
	}
	if !s.LastUpdated.Equal(now) {
		t.Fatalf("last_updated not set")
	}
}

func TestComputeMedianOdd(t *testing.T) {
	targets := []*models.AnalystTarget{
		target("BTC", "short_term", 300, 0, 5),
		target("BTC", "short_term", 100, 0, 5),
		target("BTC", "short_term", 200, 0, 5),
	}
	s := Compute("BTC", targets, time.Now())
	if s.ShortTermMedian == nil || *s.ShortTermMedian != 200 {
		t.Fatalf("median = %v, want 200", s.ShortTermMedian)
	}
}

func TestComputeDirection(t *testing.T) {
	cases := []struct {
		name    string
		changes []float64
		want    string
	}{
		{"bullish", []float64{6, 7}, models.DirectionBullish},
		{"bearish", []float64{-6, -7}, models.DirectionBearish},
		{"neutral", []float64{1, -1}, models.DirectionNeutral},
		{"boundary_not_bullish", []float64{5, 5}, models.DirectionNeutral},
		{"boundary_not_bearish", []float64{-5, -5}, models.DirectionNeutral},
		{"empty", nil, models.DirectionNeutral},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var targets []*models.AnalystTarget
			for _, ch := range c.changes {
				targets = append(targets, target("BTC", "short_term", 100, ch, 5))
			}
			s := Compute("BTC", targets, time.Now())
			if s.ConsensusDirection != c.want {
				t.Fatalf("direction = %q, want %q", s.ConsensusDirection, c.want)
			}
		})
	}
}

func TestComputeDispersion(t *testing.T) {
	targets := []*models.AnalystTarget{
		target("BTC", "short_term", 100, 0, 5),
		target("BTC", "short_term", 100, 0, 5),
		target("BTC", "short_term", 100, 0, 5),
	}
	s := Compute("BTC", targets, time.Now())
	if s.PriceDispersion == nil || *s.PriceDispersion != 0 {
		t.Fatalf("dispersion = %v, want 0", s.PriceDispersion)
	}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute("BTC", nil, time.Now())
	if s.TotalAnalysts != 0 {
		t.Fatalf("total = %d, want 0", s.TotalAnalysts)
	}
	if s.ConsensusDirection != models.DirectionNeutral {
		t.Fatalf("direction = %q, want neutral", s.ConsensusDirection)
	}
	if s.ConfidenceLevel != nil || s.PriceDispersion != nil {
		t.Fatalf("confidence/dispersion should be nil")
	}
	if s.ShortTermAvg != nil || s.MediumTermAvg != nil || s.LongTermAvg != nil {
		t.Fatalf("bucket avgs should be nil")
	}
}

func TestComputeConfidenceMean(t *testing.T) {
	targets := []*models.AnalystTarget{
		target("BTC", "short_term", 100, 0, 4),
		target("BTC", "long_term", 120, 0, 8),
	}
	s := Compute("BTC", targets, time.Now())
	if s.ConfidenceLevel == nil || *s.ConfidenceLevel != 6 {
		t.Fatalf("confidence = %v, want 6", s.ConfidenceLevel)
	}
}

func TestComputeIdempotent(t *testing.T) {
	targets := []*models.AnalystTarget{
		target("BTC", "short_term", 100, 6, 5),
		target("BTC", "medium_term", 150, 8, 7),
	}
	now := time.Now()
	a := Compute("BTC", targets, now)
	b := Compute("BTC", targets, now.Add(time.Hour))

	if *a.ShortTermAvg != *b.ShortTermAvg ||
		a.ConsensusDirection != b.ConsensusDirection ||
		*a.ConfidenceLevel != *b.ConfidenceLevel ||
		*a.PriceDispersion != *b.PriceDispersion {
		t.Fatalf("recompute with same inputs differs: %+v vs %+v", a, b)
	}
	if a.LastUpdated.Equal(b.LastUpdated) {
		t.Fatalf("last_updated should track recompute time")
	}
}
