package cli

import (
	"fmt"
	"os"

	"github.com/ALEYI17/InfraSight_freqbench/internal/collector"
	"github.com/ALEYI17/InfraSight_freqbench/internal/loaders"
	"github.com/ALEYI17/InfraSight_freqbench/internal/summary"
	"github.com/spf13/cobra"
)

func driverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "driver <directory>",
		Short: "Summarize every benchmark_results_*<freq>mhz.json of a directory, highest frequency first.",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := exactArgs(1)(cmd, args); err != nil {
				return err
			}
			info, err := os.Stat(args[0])
			if err != nil || !info.IsDir() {
				return usageErr("%s is not a directory", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			report, err := collector.RunBatch(cmd.Context(), args[0], cfg)
			if len(report.Processed) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Successfully processed %d files\n", len(report.Processed))
				fmt.Fprintf(cmd.OutOrStdout(), "Results written to: %s\n", report.SummaryPath)
			}
			return err
		},
	}
}

func aggregatorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aggregator <result_file> <summary_file> <frequency>",
		Short: "Append the summary row of one benchmark result file.",
		Args:  fileFrequencyArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			loader, err := loaders.NewResultLoader(cfg.Variant)
			if err != nil {
				return err
			}

			freq, err := parseFrequency(args[2])
			if err != nil {
				return err
			}
			return collector.AppendBenchmarkRow(loader, args[0], args[1], freq, summary.WithLock(cfg.Lock))
		},
	}
}

func powerAggregatorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "power-aggregator <power_file> <summary_file> <frequency>",
		Short: "Append mean, std, p95 and p99 of one power trace.",
		Args:  fileFrequencyArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			freq, err := parseFrequency(args[2])
			if err != nil {
				return err
			}
			return collector.AppendPowerRow(args[0], args[1], freq, summary.WithLock(cfg.Lock))
		},
	}
}
