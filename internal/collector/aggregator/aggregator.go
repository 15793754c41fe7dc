package aggregator

import (
	"math"
	"sort"

	"github.com/ALEYI17/InfraSight_freqbench/pkg/types"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

func DistributionStats(values []float64) (Distribution, error) {
	if len(values) == 0 {
		return Distribution{}, errors.Wrap(types.ErrInvalidInput, "distribution statistics of an empty series")
	}

	sorted := sortedCopy(values)
	mean, std := stat.PopMeanStdDev(sorted, nil)

	return Distribution{
		Mean:   mean,
		Median: interpolate(sorted, 50),
		StdDev: std,
		P99:    interpolate(sorted, 99),
	}, nil
}

func PowerStats(values []float64) (PowerSummary, error) {
	if len(values) == 0 {
		return PowerSummary{}, errors.Wrap(types.ErrInvalidInput, "power statistics of an empty series")
	}

	sorted := sortedCopy(values)

	var mean, std float64
	if len(sorted) == 1 {
		mean, std = sorted[0], math.NaN()
	} else {
		mean, std = stat.MeanStdDev(sorted, nil)
	}

	return PowerSummary{
		Mean:   mean,
		StdDev: std,
		P95:    interpolate(sorted, 95),
		P99:    interpolate(sorted, 99),
	}, nil
}

// Percentile returns the p-th percentile (0..100) of values using linear
// interpolation between the closest ranks.
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.Wrap(types.ErrInvalidInput, "percentile of an empty series")
	}
	if p < 0 || p > 100 || math.IsNaN(p) {
		return 0, errors.Wrapf(types.ErrInvalidInput, "percentile %v out of range [0,100]", p)
	}
	return interpolate(sortedCopy(values), p), nil
}

// interpolate expects sorted, non-empty input.
func interpolate(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p / 100
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func sortedCopy(values []float64) []float64 {
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)
	return s
}
