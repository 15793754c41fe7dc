package collector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ALEYI17/InfraSight_freqbench/internal/config"
	"github.com/ALEYI17/InfraSight_freqbench/internal/loaders"
	"github.com/ALEYI17/InfraSight_freqbench/internal/summary"
	"github.com/ALEYI17/InfraSight_freqbench/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func result(requestThroughput, ttft float64) string {
	return fmt.Sprintf(`{"request_throughput": %v, "mean_ttft_ms": %v, "num_prompts": 10}`, requestThroughput, ttft)
}

func TestAppendBenchmarkRowNewSummary(t *testing.T) {
	dir := t.TempDir()
	res := writeFile(t, dir, "benchmark_results_1000mhz.json", result(2.5, 40.126))
	out := filepath.Join(dir, "performance_summary.csv")

	require.NoError(t, AppendBenchmarkRow(loaders.NewMetricsLoader(), res, out, 1000))

	assert.Equal(t, []string{
		"frequency,request_throughput,mean_ttft_ms",
		"1000,2.50,40.13",
	}, readLines(t, out))
}

func TestAppendBenchmarkRowTwice(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "benchmark_results_1000mhz.json", result(2.5, 40))
	second := writeFile(t, dir, "benchmark_results_800mhz.json", result(2, 50))
	out := filepath.Join(dir, "performance_summary.csv")

	require.NoError(t, AppendBenchmarkRow(loaders.NewMetricsLoader(), first, out, 1000, summary.WithLock(true)))
	require.NoError(t, AppendBenchmarkRow(loaders.NewMetricsLoader(), second, out, 800, summary.WithLock(true)))

	assert.Equal(t, []string{
		"frequency,request_throughput,mean_ttft_ms",
		"1000,2.50,40.00",
		"800,2.00,50.00",
	}, readLines(t, out))
}

func TestAppendBenchmarkRowMalformedLeavesSummaryUntouched(t *testing.T) {
	dir := t.TempDir()
	res := writeFile(t, dir, "benchmark_results_1000mhz.json", `{"request_throughput": `)
	out := filepath.Join(dir, "performance_summary.csv")

	err := AppendBenchmarkRow(loaders.NewMetricsLoader(), res, out, 1000)
	assert.ErrorIs(t, err, types.ErrMalformedInput)
	assert.NoFileExists(t, out)
}

func TestAppendBenchmarkRowLegacy(t *testing.T) {
	dir := t.TempDir()
	res := writeFile(t, dir, "benchmark_results_1000mhz.json",
		`{"request_throughput": 1, "output_throughput": 2, "total_token_throughput": 3, "input_lens": [10, 20, 30]}`)
	out := filepath.Join(dir, "performance_summary.csv")

	require.NoError(t, AppendBenchmarkRow(loaders.NewLegacyLoader(), res, out, 1000))

	lines := readLines(t, out)
	require.Len(t, lines, 2)
	assert.Equal(t, "frequency,input_len_mean,input_len_median,input_len_std,input_len_p99,request_throughput,output_throughput,total_token_throughput", lines[0])
	assert.Equal(t, "1000,20.00,20.00,8.16,29.80,1.00,2.00,3.00", lines[1])
}

func TestAppendPowerRow(t *testing.T) {
	dir := t.TempDir()
	power := writeFile(t, dir, "power_1000mhz.csv", "meta\n0,10\n1,20\n2,30\n")
	out := filepath.Join(dir, "power_summary.csv")

	require.NoError(t, AppendPowerRow(power, out, 1000))
	require.NoError(t, AppendPowerRow(power, out, 1000))

	assert.Equal(t, []string{
		"1000,20.00,10.00,29.00,29.80",
		"1000,20.00,10.00,29.00,29.80",
	}, readLines(t, out))
}

func TestAppendPowerRowEmptyTrace(t *testing.T) {
	dir := t.TempDir()
	power := writeFile(t, dir, "power.csv", "meta\n")
	out := filepath.Join(dir, "power_summary.csv")

	err := AppendPowerRow(power, out, 1000)
	assert.ErrorIs(t, err, types.ErrInvalidInput)
	assert.NoFileExists(t, out)
}

func TestRunBatchDescendingOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "benchmark_results_500mhz.json", result(1, 90))
	writeFile(t, dir, "benchmark_results_1000mhz.json", result(2, 45))
	writeFile(t, dir, "notes.json", `{}`)

	report, err := RunBatch(context.Background(), dir, config.Defaults())
	require.NoError(t, err)

	require.Len(t, report.Processed, 2)
	assert.Equal(t, 1000, report.Processed[0].Frequency)
	assert.Equal(t, 500, report.Processed[1].Frequency)
	assert.Empty(t, report.Failed)

	assert.Equal(t, []string{
		"frequency,request_throughput,mean_ttft_ms",
		"1000,2.00,45.00",
		"500,1.00,90.00",
	}, readLines(t, filepath.Join(dir, types.DefaultSummaryFile)))
}

func TestRunBatchNoFiles(t *testing.T) {
	dir := t.TempDir()

	report, err := RunBatch(context.Background(), dir, config.Defaults())
	require.NoError(t, err)
	assert.Empty(t, report.Processed)
	assert.NoFileExists(t, report.SummaryPath)
}

func TestRunBatchIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "benchmark_results_1500mhz.json", `not json`)
	writeFile(t, dir, "benchmark_results_1000mhz.json", result(2, 45))

	report, err := RunBatch(context.Background(), dir, config.Defaults())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrMalformedInput)

	require.Len(t, report.Failed, 1)
	assert.Equal(t, 1500, report.Failed[0].Frequency)
	require.Len(t, report.Processed, 1)

	assert.Equal(t, []string{
		"frequency,request_throughput,mean_ttft_ms",
		"1000,2.00,45.00",
	}, readLines(t, report.SummaryPath))
}

func TestRunBatchFailFast(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "benchmark_results_1500mhz.json", `not json`)
	writeFile(t, dir, "benchmark_results_1000mhz.json", result(2, 45))

	cfg := config.Defaults()
	cfg.FailFast = true

	report, err := RunBatch(context.Background(), dir, cfg)
	assert.ErrorIs(t, err, types.ErrMalformedInput)
	assert.Empty(t, report.Processed)
	assert.Len(t, report.Failed, 1)
}

func TestRunBatchCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "benchmark_results_1000mhz.json", result(2, 45))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := RunBatch(ctx, dir, config.Defaults())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Processed)
}

func TestRunBatchUnknownVariant(t *testing.T) {
	cfg := config.Defaults()
	cfg.Variant = "fingerprint"

	_, err := RunBatch(context.Background(), t.TempDir(), cfg)
	assert.Error(t, err)
}
