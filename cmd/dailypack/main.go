package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger   *zap.Logger
	dateFlag string
)

var rootCmd = &cobra.Command{
	Use:   "dailypack",
	Short: "Generate the daily word pack for the kids' English app",
	Long: `Builds the DailyPack for one calendar date: picks the day's theme and words,
obtains an illustration per word from the configured image provider (falling back
to an SVG placeholder), and writes daily/<date>.json plus images/<date>/ under CONTENT_ROOT.

Run without a subcommand to generate today's pack.`,
	SilenceUsage: true,
	RunE:         runGenerate,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the pack for today or for --date",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete run ledger entries older than LEDGER_RETENTION_DAYS",
	Args:  cobra.NoArgs,
	RunE:  runCleanup,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs for --date (default today)",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dateFlag, "date", "", "pack date as YYYY-MM-DD (default: today in TZ)")
	rootCmd.AddCommand(generateCmd, cleanupCmd, historyCmd)
}

func main() {
	// Initialize logger
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("Command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
