package aggregator

import "github.com/ALEYI17/InfraSight_freqbench/pkg/types"

// Distribution summarizes a per-request series such as input lengths.
type Distribution struct {
	Mean   float64
	Median float64
	StdDev float64 // population, divisor N
	P99    float64
}

// Fields names the statistics with prefix, in mean, median, std, p99 order.
func (d Distribution) Fields(prefix string) []types.Field {
	return []types.Field{
		{Name: prefix + "_mean", Value: d.Mean},
		{Name: prefix + "_median", Value: d.Median},
		{Name: prefix + "_std", Value: d.StdDev},
		{Name: prefix + "_p99", Value: d.P99},
	}
}

// PowerSummary summarizes a power trace.
type PowerSummary struct {
	Mean   float64
	StdDev float64 // sample, divisor N-1
	P95    float64
	P99    float64
}

func (p PowerSummary) Values() []float64 {
	return []float64{p.Mean, p.StdDev, p.P95, p.P99}
}
