package dispersion

import (
	"math"
	"sort"
	"time"

	"CoinPulse/internal/domain/models"
)

// Signal thresholds. Dispersion in percent, concentration on the HHI 0-10000
// scale, dominance change in percentage points.
const (
	dispersionHigh     = 5.0
	dispersionElevated = 2.0
	dispersionLow      = 1.0
	concentrationHigh  = 2500.0
	concentrationWarm  = 2000.0
	concentrationCool  = 1500.0
	dominanceShift     = 2.0

	maxSignalLevel = 5
)

// PriceDispersion computes cross-exchange spread relative to the average:
// (max-min)/avg * 100. Returns 0 with fewer than 2 valid quotes or zero mean.
func PriceDispersion(prices []float64) float64 {
	valid := prices[:0:0]
	for _, p := range prices {
		if p > 0 {
			valid = append(valid, p)
		}
	}
	if len(valid) < 2 {
		return 0
	}

	min, max, total := valid[0], valid[0], 0.0
	for _, p := range valid {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
		total += p
	}
	avg := total / float64(len(valid))
	if avg == 0 {
		return 0
	}
	return (max - min) / avg * 100
}

// VolumeConcentration computes the Herfindahl-Hirschman index over
// per-exchange volume shares, scaled to 0-10000.
func VolumeConcentration(volumes map[string]float64) float64 {
	total := 0.0
	for _, v := range volumes {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return 0
	}
	hhi := 0.0
	for _, v := range volumes {
		if v > 0 {
			share := v / total
			hhi += share * share
		}
	}
	return hhi * 10000
}

// SignalLevel derives a 1-5 level and a signal type from dispersion,
// concentration and dominance change.
func SignalLevel(priceDispersion, volumeConcentration, dominanceChange float64) (int, string) {
	level := 1
	if priceDispersion > dispersionHigh {
		level += 2
	} else if priceDispersion > dispersionElevated {
		level++
	}
	if volumeConcentration > concentrationHigh {
		level++
	}
	if math.Abs(dominanceChange) > dominanceShift {
		level++
	}
	if level > maxSignalLevel {
		level = maxSignalLevel
	}

	signalType := models.SignalNeutral
	if priceDispersion > 3 && volumeConcentration > concentrationWarm {
		signalType = models.SignalDivergence
	} else if priceDispersion < dispersionLow && volumeConcentration < concentrationCool {
		signalType = models.SignalConvergence
	}

	return level, signalType
}

// Analyze builds a dispersion snapshot for one symbol from its latest
// per-exchange quotes. Returns nil when there is nothing to analyze.
func Analyze(symbol string, quotes []*models.ExchangeQuote, now time.Time) *models.DispersionSnapshot {
	if len(quotes) == 0 {
		return nil
	}

	prices := make([]float64, 0, len(quotes))
	volumes := make(map[string]float64, len(quotes))
	for _, q := range quotes {
		prices = append(prices, q.Price)
		volumes[q.Exchange] += q.Volume
	}

	pd := PriceDispersion(prices)
	vc := VolumeConcentration(volumes)
	level, signalType := SignalLevel(pd, vc, 0)

	return &models.DispersionSnapshot{
		Symbol:              symbol,
		PriceDispersion:     pd,
		VolumeConcentration: vc,
		SignalLevel:         level,
		SignalType:          signalType,
		ComputedAt:          now,
	}
}

// MarketSummary aggregates the latest snapshots into a market-wide view with
// top/bottom dispersion rankings.
func MarketSummary(snapshots []*models.DispersionSnapshot, topN int, now time.Time) *models.MarketDispersionSummary {
	s := &models.MarketDispersionSummary{
		CoinsAnalyzed: len(snapshots),
		ComputedAt:    now,
	}
	if len(snapshots) == 0 {
		return s
	}

	s.MinDispersion = snapshots[0].PriceDispersion
	total := 0.0
	for _, snap := range snapshots {
		d := snap.PriceDispersion
		total += d
		if d > s.MaxDispersion {
			s.MaxDispersion = d
		}
		if d < s.MinDispersion {
			s.MinDispersion = d
		}
		if snap.SignalLevel >= 4 {
			s.HighSignalCount++
		}
		if snap.SignalLevel <= 2 {
			s.LowSignalCount++
		}
	}
	s.AvgDispersion = total / float64(len(snapshots))

	ranked := make([]*models.CoinDispersion, 0, len(snapshots))
	for _, snap := range snapshots {
		ranked = append(ranked, &models.CoinDispersion{
			Symbol:          snap.Symbol,
			PriceDispersion: snap.PriceDispersion,
			SignalLevel:     snap.SignalLevel,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].PriceDispersion > ranked[j].PriceDispersion
	})

	if topN > len(ranked) {
		topN = len(ranked)
	}
	s.TopDispersion = ranked[:topN]

	lowest := make([]*models.CoinDispersion, topN)
	for i := 0; i < topN; i++ {
		lowest[i] = ranked[len(ranked)-1-i]
	}
	s.LowestDispersion = lowest

	return s
}
