package cli

import (
	"strconv"

	"github.com/ALEYI17/InfraSight_freqbench/internal/config"
	"github.com/ALEYI17/InfraSight_freqbench/pkg/logutil"
	"github.com/ALEYI17/InfraSight_freqbench/pkg/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RootCmd is the root Cobra command that gets called from the main func.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "benchagg",
		Short:         "benchagg summarizes GPU frequency sweep benchmark and power results into CSV files.",
		SilenceErrors: true,
	}

	config.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		driverCmd(),
		aggregatorCmd(),
		powerAggregatorCmd(),
	)

	return cmd
}

// loadConfig resolves the configuration and applies the log level. Errors
// past this point are not usage errors.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cmd.SilenceUsage = true

	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return cfg, err
	}
	if err := logutil.SetLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func usageErr(format string, args ...any) error {
	return errors.Wrapf(types.ErrUsage, format, args...)
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErr("accepts %d arg(s), received %d", n, len(args))
		}
		return nil
	}
}

// fileFrequencyArgs validates <input> <summary> <frequency:int>.
func fileFrequencyArgs(cmd *cobra.Command, args []string) error {
	if err := exactArgs(3)(cmd, args); err != nil {
		return err
	}
	_, err := parseFrequency(args[2])
	return err
}

func parseFrequency(arg string) (int, error) {
	freq, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usageErr("frequency %q is not an integer", arg)
	}
	return freq, nil
}
