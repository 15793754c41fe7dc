package loaders

import (
	"github.com/ALEYI17/InfraSight_freqbench/pkg/types"
	"github.com/pkg/errors"
)

// NewResultLoader returns the benchmark result extractor for variant.
func NewResultLoader(variant string) (types.Result_loaders, error) {
	switch variant {
	case types.VariantMetrics:
		return NewMetricsLoader(), nil
	case types.VariantLegacy:
		return NewLegacyLoader(), nil
	default:
		return nil, errors.Errorf("unsupported result variant %q", variant)
	}
}
