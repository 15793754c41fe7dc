package loaders

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ALEYI17/InfraSight_freqbench/internal/collector/aggregator"
	"github.com/ALEYI17/InfraSight_freqbench/pkg/logutil"
	"github.com/ALEYI17/InfraSight_freqbench/pkg/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MetricsLoader extracts every throughput and millisecond latency metric of
// a result document, in aggregator.OrderMetrics order.
type MetricsLoader struct{}

func NewMetricsLoader() *MetricsLoader {
	return &MetricsLoader{}
}

func (ml *MetricsLoader) Variant() string {
	return types.VariantMetrics
}

func (ml *MetricsLoader) Load(path string) ([]types.Field, error) {
	logger := logutil.GetLogger()

	var record map[string]any
	if err := decodeFile(path, &record); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.Wrapf(types.ErrMalformedInput, "%s: result is not a JSON object", path)
	}

	selected := aggregator.SelectMetrics(record)
	if len(selected) == 0 {
		return nil, errors.Wrapf(types.ErrMalformedInput, "%s: no throughput or latency metrics", path)
	}

	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}

	fields := make([]types.Field, 0, len(names))
	for _, name := range aggregator.OrderMetrics(names) {
		v, ok := selected[name].(float64)
		if !ok {
			return nil, errors.Wrapf(types.ErrMalformedInput, "%s: metric %q is not a number", path, name)
		}
		fields = append(fields, types.Field{Name: name, Value: v})
	}

	logger.Debug("extracted metrics", zap.String("file", path), zap.Int("metrics", len(fields)))
	return fields, nil
}

// LegacyLoader reproduces the fixed-field summary: input length statistics
// followed by the three throughput figures.
type LegacyLoader struct{}

func NewLegacyLoader() *LegacyLoader {
	return &LegacyLoader{}
}

func (ll *LegacyLoader) Variant() string {
	return types.VariantLegacy
}

type legacyResult struct {
	RequestThroughput    *float64  `json:"request_throughput"`
	OutputThroughput     *float64  `json:"output_throughput"`
	TotalTokenThroughput *float64  `json:"total_token_throughput"`
	InputLens            []float64 `json:"input_lens"`
}

func (ll *LegacyLoader) Load(path string) ([]types.Field, error) {
	var res legacyResult
	if err := decodeFile(path, &res); err != nil {
		return nil, err
	}

	required := []struct {
		name  string
		value *float64
	}{
		{"request_throughput", res.RequestThroughput},
		{"output_throughput", res.OutputThroughput},
		{"total_token_throughput", res.TotalTokenThroughput},
	}
	for _, r := range required {
		if r.value == nil {
			return nil, errors.Wrapf(types.ErrMalformedInput, "%s: missing %q", path, r.name)
		}
	}
	if res.InputLens == nil {
		return nil, errors.Wrapf(types.ErrMalformedInput, "%s: missing %q", path, "input_lens")
	}

	dist, err := aggregator.DistributionStats(res.InputLens)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: input_lens", path)
	}

	fields := dist.Fields("input_len")
	for _, r := range required {
		fields = append(fields, types.Field{Name: r.name, Value: *r.value})
	}
	return fields, nil
}

func decodeFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open benchmark result")
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	if err := dec.Decode(v); err != nil {
		return errors.Wrapf(types.ErrMalformedInput, "%s: %v", path, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.Wrapf(types.ErrMalformedInput, "%s: trailing data after JSON document", path)
	}
	return nil
}
