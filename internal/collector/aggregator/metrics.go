package aggregator

import (
	"sort"
	"strings"

	"github.com/ALEYI17/InfraSight_freqbench/pkg/types"
)

// KnownMetricOrder fixes the column order of throughput and latency metrics
// reported by the serving benchmark. Selected names outside this table are
// placed after it, sorted by name.
var KnownMetricOrder = []string{
	"request_throughput",
	"output_throughput",
	"total_token_throughput",

	"mean_ttft_ms",
	"median_ttft_ms",
	"std_ttft_ms",
	"p99_ttft_ms",

	"mean_tpot_ms",
	"median_tpot_ms",
	"std_tpot_ms",
	"p99_tpot_ms",

	"mean_itl_ms",
	"median_itl_ms",
	"std_itl_ms",
	"p99_itl_ms",

	"mean_e2el_ms",
	"median_e2el_ms",
	"std_e2el_ms",
	"p99_e2el_ms",
}

var knownRank = func() map[string]int {
	m := make(map[string]int, len(KnownMetricOrder))
	for i, name := range KnownMetricOrder {
		m[name] = i
	}
	return m
}()

func IsMetric(name string) bool {
	return strings.Contains(name, types.ThroughputMarker) || strings.HasSuffix(name, types.LatencySuffix)
}

func SelectMetrics(record map[string]any) map[string]any {
	selected := make(map[string]any)
	for name, v := range record {
		if IsMetric(name) {
			selected[name] = v
		}
	}
	return selected
}

func OrderMetrics(names []string) []string {
	ordered := make([]string, len(names))
	copy(ordered, names)

	sort.SliceStable(ordered, func(i, j int) bool {
		ri, iKnown := knownRank[ordered[i]]
		rj, jKnown := knownRank[ordered[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		default:
			return ordered[i] < ordered[j]
		}
	})
	return ordered
}
