package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ALEYI17/InfraSight_freqbench/internal/cli"
	"github.com/ALEYI17/InfraSight_freqbench/pkg/logutil"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logutil.InitLogger()

	logger := logutil.GetLogger()

	go func() {
		sigch := make(chan os.Signal, 1)
		signal.Notify(sigch, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigch
		logger.Info("Received signal, stopping after the current file", zap.String("signal", sig.String()))
		cancel()
	}()

	if err := cli.RootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}
