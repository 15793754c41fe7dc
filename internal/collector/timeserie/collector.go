package timeserie

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/ALEYI17/InfraSight_freqbench/pkg/types"
	"github.com/pkg/errors"
)

// PowerTrace is the ordered series of samples read from a power monitor CSV.
type PowerTrace struct {
	Samples []Sample
}

func (pt *PowerTrace) Update(s Sample) {
	pt.Samples = append(pt.Samples, s)
}

func (pt *PowerTrace) Len() int {
	return len(pt.Samples)
}

// Values returns the power readings in file order.
func (pt *PowerTrace) Values() []float64 {
	out := make([]float64, 0, len(pt.Samples))
	for _, s := range pt.Samples {
		out = append(out, s.Watts)
	}
	return out
}

// ReadPowerTrace parses a power monitor CSV. The first line carries monitor
// metadata and is skipped; column 1 of every following row is the reading.
func ReadPowerTrace(r io.Reader) (*PowerTrace, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	pt := &PowerTrace{}
	first := true

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(types.ErrMalformedInput, "power csv: %v", err)
		}

		line, _ := cr.FieldPos(0)
		if first {
			first = false
			continue
		}
		if isBlank(record) {
			continue
		}

		sample, err := RecordToSample(record)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		pt.Update(sample)
	}

	return pt, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
