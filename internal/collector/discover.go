package collector

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ALEYI17/InfraSight_freqbench/pkg/logutil"
	"github.com/ALEYI17/InfraSight_freqbench/pkg/types"
	"github.com/mattn/go-zglob"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ResultFile is a benchmark result together with the frequency recovered
// from its name.
type ResultFile struct {
	Path      string
	Frequency int
}

// ParseFrequency recovers the MHz label from names such as
// benchmark_results_llama_1410mhz.json: the last underscore-separated segment
// with the extension and the mhz suffix removed.
func ParseFrequency(name string) (int, error) {
	base := filepath.Base(name)
	segment := base[strings.LastIndex(base, "_")+1:]
	segment = strings.TrimSuffix(strings.ToLower(segment), ".json")
	segment = strings.TrimSuffix(segment, "mhz")

	freq, err := strconv.Atoi(segment)
	if err != nil || freq < 0 {
		return 0, errors.Wrapf(types.ErrMalformedInput, "no frequency in file name %q", base)
	}
	return freq, nil
}

// Discover lists the result files of dir matching pattern, highest
// frequency first. Matches without a frequency label are skipped.
func Discover(dir, pattern string) ([]ResultFile, error) {
	logger := logutil.GetLogger()

	matches, err := zglob.Glob(filepath.Join(dir, pattern))
	if err != nil {
		// zglob reports an empty match set as os.ErrNotExist.
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "glob %s", pattern)
	}

	files := make([]ResultFile, 0, len(matches))
	for _, m := range matches {
		freq, err := ParseFrequency(m)
		if err != nil {
			logger.Warn("skipping result file without frequency", zap.String("file", m))
			continue
		}
		files = append(files, ResultFile{Path: m, Frequency: freq})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Frequency != files[j].Frequency {
			return files[i].Frequency > files[j].Frequency
		}
		return files[i].Path < files[j].Path
	})
	return files, nil
}
