package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"catalogo/internal/app"
	"catalogo/internal/config"
	"catalogo/internal/observability"
)

var logLevel string

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "catalogo",
		Short: "Browse the product catalog and export slide decks",
		Long: `catalogo reads product rows from the configured source (Google Sheets,
an .xlsx workbook or a SQL table), lets you filter them and exports the
selection as a PPTX or PDF deck, or as an XLSX pick list.`,
		Example: `  catalogo list --category Faucets
  catalogo export --ids WF-100,T1 --format pdf --project "Casa Azul"
  catalogo scrape --url https://example.com/p/wf-100
  catalogo wireframe --out slide.svg`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newScrapeCommand())
	rootCmd.AddCommand(newWireframeCommand())
	return rootCmd
}

// setup loads config and wires the shared components. CLI logs go to the
// console encoder.
func setup(ctx context.Context) (*app.App, error) {
	cfg := config.Load()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger, err := observability.NewLogger(cfg.LogLevel, "console")
	if err != nil {
		return nil, err
	}
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("falha ao iniciar", zap.Error(err))
		return nil, err
	}
	return a, nil
}
