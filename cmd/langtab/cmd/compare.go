package cmd

import (
	"errors"
	"fmt"

	"github.com/MeKo-Tech/langtab/internal/compare"
	"github.com/MeKo-Tech/langtab/internal/detect"
	"github.com/spf13/cobra"
)

// compareCmd represents the compare command.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare detection engines on labeled samples",
	Long: `Run this detector plus the lingua and whatlang engines over a labeled
sample file and report per-engine accuracy, pairwise agreement, and the samples
the engines disagree on.

Sample files contain one sample per line: a language code, a tab, and the text.
Blank lines and lines starting with # are skipped.

Examples:
  langtab compare --samples samples.tsv
  langtab compare --samples samples.tsv --langs en,de,fr --disagreements 10`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runCompareCommand,
}

func runCompareCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	samplesPath, _ := cmd.Flags().GetString("samples")
	if samplesPath == "" {
		return errors.New("no samples file provided (use --samples)")
	}

	samples, err := compare.LoadSamplesFile(samplesPath)
	if err != nil {
		return err
	}

	// Restrict every engine to the languages under test so the comparison is
	// fair: either the explicit --langs list or the labels in the sample file.
	langsCSV, _ := cmd.Flags().GetString("langs")
	var codes []string
	if langsCSV != "" {
		codes = splitCSV(langsCSV)
	} else {
		codes = sampleLanguages(samples)
	}

	detector, err := detect.NewBuilder().
		WithDataDir(cfg.DataDir).
		WithFreqDir(cfg.FreqDir).
		WithWeights(cfg.Detect.PriorWeight, cfg.Detect.FreqWeight, cfg.Detect.CharWeight).
		WithMaxCandidates(cfg.Detect.MaxCandidates).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build detector: %w", err)
	}

	runner := compare.NewRunner(compare.DefaultEngines(detector, codes)...)
	report, err := runner.Run(cmd.Context(), samples)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	out := cmd.OutOrStdout()
	report.RenderSummary(out)
	report.RenderAgreement(out)

	limit, _ := cmd.Flags().GetInt("disagreements")
	if limit != 0 {
		report.RenderDisagreements(out, limit)
	}
	return nil
}

// sampleLanguages collects the distinct label codes in file order.
func sampleLanguages(samples []compare.Sample) []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, s := range samples {
		if _, ok := seen[s.Language]; !ok {
			seen[s.Language] = struct{}{}
			codes = append(codes, s.Language)
		}
	}
	return codes
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringP("samples", "s", "", "labeled sample file (code<TAB>text per line)")
	compareCmd.Flags().StringP("langs", "l", "", "comma-separated language codes to restrict the engines to")
	compareCmd.Flags().Int("disagreements", 5, "disagreeing samples to print (0 = none, -1 = all)")
}

// GetCompareCommand returns the compare command for testing purposes.
func GetCompareCommand() *cobra.Command {
	return compareCmd
}
