package collector

import (
	"context"
	"path/filepath"

	"github.com/ALEYI17/InfraSight_freqbench/internal/collector/aggregator"
	"github.com/ALEYI17/InfraSight_freqbench/internal/collector/timeserie"
	"github.com/ALEYI17/InfraSight_freqbench/internal/config"
	"github.com/ALEYI17/InfraSight_freqbench/internal/loaders"
	"github.com/ALEYI17/InfraSight_freqbench/internal/summary"
	"github.com/ALEYI17/InfraSight_freqbench/pkg/logutil"
	"github.com/ALEYI17/InfraSight_freqbench/pkg/types"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// AppendBenchmarkRow summarizes one result file into summaryPath, writing
// the header first when the summary is new or empty.
func AppendBenchmarkRow(loader types.Result_loaders, resultPath, summaryPath string, freq int, opts ...summary.Option) error {
	fields, err := loader.Load(resultPath)
	if err != nil {
		return err
	}

	return summary.WithFile(summaryPath, func(sf *summary.File) error {
		return sf.AppendFields(freq, fields)
	}, opts...)
}

// AppendPowerRow appends freq,mean,std,p95,p99 of a power trace. No header
// is written.
func AppendPowerRow(powerPath, summaryPath string, freq int, opts ...summary.Option) error {
	logger := logutil.GetLogger()

	trace, err := timeserie.LoadPowerTrace(powerPath)
	if err != nil {
		return err
	}

	stats, err := aggregator.PowerStats(trace.Values())
	if err != nil {
		return errors.Wrapf(err, "%s", powerPath)
	}

	logger.Debug("power summary",
		zap.Int("frequency", freq),
		zap.Float64("mean", stats.Mean),
		zap.Float64("std", stats.StdDev),
		zap.Float64("p95", stats.P95),
		zap.Float64("p99", stats.P99))

	return summary.WithFile(summaryPath, func(sf *summary.File) error {
		return sf.AppendValues(freq, stats.Values())
	}, opts...)
}

type BatchReport struct {
	SummaryPath string
	Processed   []ResultFile
	Failed      []ResultFile
}

// RunBatch summarizes every result file of dir into dir/cfg.SummaryFile,
// highest frequency first. Failing files are reported in the returned error
// and the batch carries on, unless cfg.FailFast is set.
func RunBatch(ctx context.Context, dir string, cfg config.Config) (BatchReport, error) {
	logger := logutil.GetLogger()

	report := BatchReport{SummaryPath: filepath.Join(dir, cfg.SummaryFile)}
	logger.Info("Will write results", zap.String("summary", report.SummaryPath))

	loader, err := loaders.NewResultLoader(cfg.Variant)
	if err != nil {
		return report, err
	}

	files, err := Discover(dir, cfg.Pattern)
	if err != nil {
		return report, err
	}
	if len(files) == 0 {
		logger.Info("No benchmark result files found", zap.String("dir", dir), zap.String("pattern", cfg.Pattern))
		return report, nil
	}

	sf, err := summary.Open(report.SummaryPath, summary.WithLock(cfg.Lock))
	if err != nil {
		return report, err
	}

	var errs error
	for _, rf := range files {
		if err := ctx.Err(); err != nil {
			logger.Info("Batch cancelled", zap.Int("processed", len(report.Processed)))
			errs = multierr.Append(errs, err)
			break
		}

		logger.Info("Processing results", zap.Int("mhz", rf.Frequency), zap.String("file", rf.Path))

		fields, err := loader.Load(rf.Path)
		if err == nil {
			err = sf.AppendFields(rf.Frequency, fields)
		}
		if err != nil {
			logger.Error("Failed to process result file", zap.String("file", rf.Path), zap.Error(err))
			report.Failed = append(report.Failed, rf)
			errs = multierr.Append(errs, err)
			if cfg.FailFast {
				break
			}
			continue
		}
		report.Processed = append(report.Processed, rf)
	}

	errs = multierr.Append(errs, sf.Close())

	logger.Info("Batch finished",
		zap.Int("processed", len(report.Processed)),
		zap.Int("failed", len(report.Failed)),
		zap.String("summary", report.SummaryPath))

	return report, errs
}
