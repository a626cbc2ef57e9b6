package consensus

import (
	"math"
	"sort"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/domain/repository"
)

// Thresholds on mean price change percent for consensus direction.
const (
	bullishThreshold = 5.0
	bearishThreshold = -5.0
)

// Compute builds the consensus summary for a symbol from its active targets.
// Targets for other symbols or inactive rows must be filtered by the caller.
// Empty timeframe buckets yield nil avg/median; zero targets yield a neutral
// summary with nil confidence and dispersion.
func Compute(symbol string, targets []*models.AnalystTarget, now time.Time) *models.CoinAnalystSummary {
	s := &models.CoinAnalystSummary{
		Symbol:             symbol,
		TotalAnalysts:      len(targets),
		ConsensusDirection: models.DirectionNeutral,
		LastUpdated:        now,
	}

	var short, medium, long []float64
	var allPrices, changes []float64
	confidenceSum := 0.0

	for _, t := range targets {
		switch repository.Timeframe(t.Timeframe) {
		case repository.TFShort:
			short = append(short, t.TargetPrice)
		case repository.TFMedium:
			medium = append(medium, t.TargetPrice)
		case repository.TFLong:
			long = append(long, t.TargetPrice)
		}
		allPrices = append(allPrices, t.TargetPrice)
		changes = append(changes, t.PriceChangePercent)
		confidenceSum += float64(t.ConfidenceLevel)
	}

	s.ShortTermCount = len(short)
	s.ShortTermAvg = mean(short)
	s.ShortTermMedian = median(short)
	s.MediumTermCount = len(medium)
	s.MediumTermAvg = mean(medium)
	s.MediumTermMedian = median(medium)
	s.LongTermCount = len(long)
	s.LongTermAvg = mean(long)
	s.LongTermMedian = median(long)

	if len(targets) > 0 {
		avgChange := sum(changes) / float64(len(changes))
		switch {
		case avgChange > bullishThreshold:
			s.ConsensusDirection = models.DirectionBullish
		case avgChange < bearishThreshold:
			s.ConsensusDirection = models.DirectionBearish
		}

		conf := confidenceSum / float64(len(targets))
		s.ConfidenceLevel = &conf

		s.PriceDispersion = dispersion(allPrices)
	}

	return s
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}

func mean(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	m := sum(xs) / float64(len(xs))
	return &m
}

// median returns the 50th percentile; midpoint of the two middle values for
// even counts.
func median(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	var m float64
	if len(sorted)%2 == 1 {
		m = sorted[mid]
	} else {
		m = (sorted[mid-1] + sorted[mid]) / 2
	}
	return &m
}

// dispersion is the coefficient of variation in percent: population stddev
// over mean, times 100. Nil when the mean is zero (no divide by zero).
func dispersion(prices []float64) *float64 {
	if len(prices) == 0 {
		return nil
	}
	m := sum(prices) / float64(len(prices))
	if m == 0 {
		return nil
	}
	variance := 0.0
	for _, p := range prices {
		d := p - m
		variance += d * d
	}
	variance /= float64(len(prices))
	cv := math.Sqrt(variance) / m * 100
	return &cv
}
