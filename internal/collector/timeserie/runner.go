package timeserie

import (
	"os"

	"github.com/ALEYI17/InfraSight_freqbench/pkg/logutil"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func LoadPowerTrace(path string) (*PowerTrace, error) {
	logger := logutil.GetLogger()

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open power trace")
	}
	defer f.Close()

	pt, err := ReadPowerTrace(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read power trace %s", path)
	}

	logger.Debug("loaded power trace", zap.String("file", path), zap.Int("samples", pt.Len()))
	return pt, nil
}
