package types

const (
	VariantMetrics = "metrics"
	VariantLegacy  = "legacy"

	FrequencyColumn    = "frequency"
	DefaultSummaryFile = "performance_summary.csv"
	DefaultPattern     = "benchmark_results_*mhz.json"

	ThroughputMarker = "throughput"
	LatencySuffix    = "ms"
)

// Field is one named value of a summary row.
type Field struct {
	Name  string
	Value float64
}

func FieldNames(fields []Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}
