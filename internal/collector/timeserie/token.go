package timeserie

import (
	"math"
	"strconv"
	"strings"

	"github.com/ALEYI17/InfraSight_freqbench/pkg/types"
	"github.com/pkg/errors"
)

const (
	timestampColumn = 0
	powerColumn     = 1
)

// Sample is one power reading. The timestamp is kept as written by the monitor.
type Sample struct {
	Timestamp string
	Watts     float64
}

func RecordToSample(record []string) (Sample, error) {
	if len(record) <= powerColumn {
		return Sample{}, errors.Wrapf(types.ErrMalformedInput, "expected at least %d columns, got %d", powerColumn+1, len(record))
	}

	raw := strings.TrimSpace(record[powerColumn])
	watts, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Sample{}, errors.Wrapf(types.ErrMalformedInput, "power value %q is not a number", raw)
	}
	if math.IsNaN(watts) || math.IsInf(watts, 0) {
		return Sample{}, errors.Wrapf(types.ErrMalformedInput, "power value %q is not finite", raw)
	}

	return Sample{
		Timestamp: strings.TrimSpace(record[timestampColumn]),
		Watts:     watts,
	}, nil
}
