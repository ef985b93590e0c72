package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/feedtools/feed-optimizer/internal/config"
	"github.com/feedtools/feed-optimizer/internal/mining"
	"github.com/feedtools/feed-optimizer/internal/observability"
	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/optimizer/builtin"
	"github.com/feedtools/feed-optimizer/internal/optimizer/plugins"
	"github.com/feedtools/feed-optimizer/internal/server"
	"github.com/feedtools/feed-optimizer/internal/types"
	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize a product batch file without starting the server",
	Long: `Run the selected optimizers over a product batch JSON file and print the
optimized batch plus per-optimizer results. Optimizers run in the order given,
with the same scheduling rules the server applies.`,
	RunE: runOptimize,
}

var (
	optimizeInput      string
	optimizeOutput     string
	optimizeOptimizers []string
	optimizeLang       string
	optimizeCountry    string
	optimizeCurrency   string
	optimizeConfigDir  string
	optimizeVerbose    bool
)

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeInput, "input", "i", "", "Path to a batch JSON file (Content API custombatch shape)")
	optimizeCmd.Flags().StringVarP(&optimizeOutput, "output", "o", "", "Path to write the response JSON to (defaults to stdout)")
	optimizeCmd.Flags().StringSliceVar(&optimizeOptimizers, "optimizers", nil, "Ordered comma-separated optimizer parameters to run")
	optimizeCmd.Flags().StringVar(&optimizeLang, "lang", types.DefaultLanguage, "Language for config selection and text rules")
	optimizeCmd.Flags().StringVar(&optimizeCountry, "country", types.DefaultCountry, "Country for locale-sensitive optimizers")
	optimizeCmd.Flags().StringVar(&optimizeCurrency, "currency", types.DefaultCurrency, "Currency for price-sensitive optimizers")
	optimizeCmd.Flags().StringVar(&optimizeConfigDir, "config-dir", "", "Directory holding per-optimizer JSON config files")
	optimizeCmd.Flags().BoolVarP(&optimizeVerbose, "verbose", "v", false, "Print batch and per-optimizer summaries to stderr")

	if err := optimizeCmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(optimizeInput)
	if err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}

	var batch types.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return fmt.Errorf("batch file is not valid batch JSON: %w", err)
	}

	params := &types.OptimizeParams{
		Language:           optimizeLang,
		Country:            optimizeCountry,
		Currency:           optimizeCurrency,
		SelectedOptimizers: optimizeOptimizers,
	}
	if err := params.Validate(); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}

	loader := config.NewLoader(resolveConfigDir(optimizeConfigDir))
	builtinRegistry := builtin.Registry(loader, &builtin.HTTPImageProber{})
	pluginRegistry := plugins.Registry()
	if err := builtinRegistry.Load(); err != nil {
		return fmt.Errorf("failed to load builtin optimizers: %w", err)
	}
	if err := pluginRegistry.Load(); err != nil {
		return fmt.Errorf("failed to load plugin optimizers: %w", err)
	}

	miner := mining.NewMiner(params.Language, params.Country, loader)

	printer := observability.NewPrinter(os.Stderr)
	if optimizeVerbose {
		printer.PrintBatchSummary(&batch)
	}

	optimized, builtinResults, err := optimizer.NewRunner(builtinRegistry, miner).Run(&batch, params)
	if err != nil {
		return fmt.Errorf("builtin optimizer run failed: %w", err)
	}
	optimized, pluginResults, err := optimizer.NewRunner(pluginRegistry, miner).Run(optimized, params)
	if err != nil {
		return fmt.Errorf("plugin optimizer run failed: %w", err)
	}

	if optimizeVerbose {
		printer.PrintRunResults("BUILTIN OPTIMIZERS", builtinResults)
		printer.PrintRunResults("PLUGIN OPTIMIZERS", pluginResults)
	}

	response := server.OptimizeResponse{
		OptimizedData:       optimized,
		OptimizationResults: builtinResults,
		PluginResults:       pluginResults,
	}

	out, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	if optimizeOutput == "" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.WriteFile(optimizeOutput, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("Wrote optimized batch to %s\n", optimizeOutput)
	return nil
}
