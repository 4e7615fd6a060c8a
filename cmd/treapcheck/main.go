// Package main provides treapcheck, a soak runner that drives the treap containers with random
// workloads and checks every answer against a reference list.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/g-m-twostay/treaps/internal/check"
	"github.com/g-m-twostay/treaps/internal/config"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "treapcheck",
		Short: "Randomized soak checks for implicit key treaps",
		Long: `treapcheck drives a treap with a random workload and compares it against a
plain reference after every operation.

Commands:
  run       Execute one workload`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(versionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a soak workload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := buildLogger(cfg.Logging)
			if err != nil {
				return err
			}

			report, err := check.Run(cmd.Context(), logger, cfg.Check)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d ops, %d verifications, final length %d\n",
				report.Mode, report.Ops, report.Verifications, report.FinalLen)

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default ./treapcheck.yaml)")
	cmd.Flags().String("mode", config.ModePositional, "Workload: positional or sorted")
	cmd.Flags().String("seed", "treapcheck", "Label the workload generator is seeded from")
	cmd.Flags().Int("ops", 100000, "Number of operations")
	cmd.Flags().Int64("value-range", 1000, "Values are drawn from [-range,range) or [0,range) in sorted mode")
	cmd.Flags().Int("verify-every", 1000, "Compare the whole container every this many operations")
	cmd.Flags().Uint32("hint", 0, "Expected number of elements to preallocate")
	cmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")
	cmd.Flags().String("log-format", "text", "Log format: text or json")

	return cmd
}

func buildLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}

	return slog.New(handler), nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "treapcheck %s\n", Version)
		},
	}
}
