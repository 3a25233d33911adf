package cmd

import (
	"fmt"
	"runtime"
	"time"

	"github.com/MeKo-Tech/langtab/internal/batch"
	"github.com/MeKo-Tech/langtab/internal/config"
	"github.com/spf13/cobra"
)

// batchCmd represents the batch command for parallel file processing.
var batchCmd = &cobra.Command{
	Use:   "batch [paths...]",
	Short: "Identify languages for many files in parallel",
	Long: `Identify the language of many files in parallel. Directories are
scanned for supported files and each file gets its own ranked guesses.

Supported formats: plain text, Markdown, PDF

Examples:
  langtab batch notes/*.txt
  langtab batch documents/ --workers 8
  langtab batch inbox/ --format csv --output results.csv
  langtab batch archive/ --progress --stats`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runBatchCommand,
}

// configToBatchConfig maps centralized configuration to batch.Config.
// CLI flags override config file values through Viper's precedence system.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command) (*batch.Config, error) {
	batchConfig := &batch.Config{}

	// Dataset and engine settings
	batchConfig.DataDir = cfg.DataDir
	batchConfig.FreqDir = cfg.FreqDir
	batchConfig.PriorWeight = cfg.Detect.PriorWeight
	batchConfig.FreqWeight = cfg.Detect.FreqWeight
	batchConfig.CharWeight = cfg.Detect.CharWeight
	batchConfig.MaxCandidates = cfg.Detect.MaxCandidates

	batchConfig.TopK = cfg.Detect.TopK
	if cmd.Flags().Changed("top") {
		batchConfig.TopK, _ = cmd.Flags().GetInt("top")
	}

	if langsCSV, _ := cmd.Flags().GetString("langs"); langsCSV != "" {
		batchConfig.Candidates = splitCSV(langsCSV)
	}

	priorsCSV, _ := cmd.Flags().GetString("priors")
	priors, err := parsePriors(priorsCSV)
	if err != nil {
		return nil, err
	}
	batchConfig.Priors = priors

	// Output settings
	batchConfig.Format = cfg.Output.Format
	if cmd.Flags().Changed("format") {
		batchConfig.Format, _ = cmd.Flags().GetString("format")
	}

	batchConfig.OutputFile = cfg.Output.File
	if cmd.Flags().Changed("output") {
		batchConfig.OutputFile, _ = cmd.Flags().GetString("output")
	}

	batchConfig.ScorePrecision = cfg.Output.ScorePrecision

	// Parallel processing settings
	batchConfig.Workers = cfg.Batch.Workers
	if cmd.Flags().Changed("workers") {
		batchConfig.Workers, _ = cmd.Flags().GetInt("workers")
	}

	// File discovery settings
	batchConfig.Recursive = cfg.Batch.Recursive
	if cmd.Flags().Changed("recursive") {
		batchConfig.Recursive, _ = cmd.Flags().GetBool("recursive")
	}

	batchConfig.IncludePatterns = cfg.Batch.Include
	if cmd.Flags().Changed("include") {
		batchConfig.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
	}

	batchConfig.ExcludePatterns = cfg.Batch.Exclude
	if cmd.Flags().Changed("exclude") {
		batchConfig.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")
	}

	batchConfig.ContinueOnError = cfg.Batch.ContinueOnError
	if cmd.Flags().Changed("continue-on-error") {
		batchConfig.ContinueOnError, _ = cmd.Flags().GetBool("continue-on-error")
	}

	// Progress settings - these are typically CLI-only
	batchConfig.ShowProgress, _ = cmd.Flags().GetBool("progress")
	batchConfig.Quiet, _ = cmd.Flags().GetBool("quiet")
	batchConfig.ShowStats, _ = cmd.Flags().GetBool("stats")
	batchConfig.ProgressInterval, _ = cmd.Flags().GetDuration("progress-interval")

	return batchConfig, nil
}

func runBatchCommand(cmd *cobra.Command, args []string) error {
	// Get configuration from centralized system (includes CLI flags, config file, env vars, and defaults)
	cfg := GetConfig()

	batchConfig, err := configToBatchConfig(cfg, cmd)
	if err != nil {
		return err
	}

	if !batchConfig.Quiet {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Processing %d path(s)...\n", len(args))
	}

	result, err := batch.Process(cmd.Context(), args, batchConfig)
	if err != nil {
		return fmt.Errorf("batch processing failed: %w", err)
	}

	if err := result.SaveResults(batchConfig.Format, batchConfig.OutputFile,
		batchConfig.ScorePrecision, batchConfig.Quiet); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	if batchConfig.ShowStats {
		result.PrintStats(batchConfig.Quiet)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Detection flags (shared semantics with the detect command)
	batchCmd.Flags().StringP("langs", "l", "", "comma-separated candidate language codes (e.g. en,de,fr)")
	batchCmd.Flags().String("priors", "", "comma-separated prior weights (e.g. es=0.6,pt=0.4)")
	batchCmd.Flags().IntP("top", "t", 0, "guesses per file (0 = configured default)")

	// Output flags
	batchCmd.Flags().StringP("format", "f", "text", "output format: text, json, csv")
	batchCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	// Parallel processing flags
	batchCmd.Flags().IntP("workers", "w", 0, fmt.Sprintf("number of parallel workers (default: %d)", runtime.NumCPU()))

	// File discovery flags
	batchCmd.Flags().BoolP("recursive", "r", true, "recursively scan directories")
	batchCmd.Flags().StringSlice("include", []string{"*.txt", "*.md", "*.pdf"}, "file patterns to include")
	batchCmd.Flags().StringSlice("exclude", []string{}, "file patterns to exclude")
	batchCmd.Flags().Bool("continue-on-error", false, "record per-file failures instead of aborting the run")

	// Progress and monitoring flags
	batchCmd.Flags().Bool("progress", false, "show progress bar")
	batchCmd.Flags().Bool("quiet", false, "suppress progress output")
	batchCmd.Flags().Bool("stats", false, "show processing statistics")
	batchCmd.Flags().Duration("progress-interval", 500*time.Millisecond, "progress update interval")
}

// GetBatchCommand returns the batch command for testing purposes.
func GetBatchCommand() *cobra.Command {
	return batchCmd
}
