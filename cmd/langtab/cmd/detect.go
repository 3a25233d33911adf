package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MeKo-Tech/langtab/internal/detect"
	"github.com/MeKo-Tech/langtab/internal/document"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	outputFormatJSON = "json"
	outputFormatCSV  = "csv"
	outputFormatText = "text"
)

// detectCmd represents the detect command.
var detectCmd = &cobra.Command{
	Use:   "detect [text]",
	Short: "Identify the language of text",
	Long: `Identify the language of text and print ranked guesses with confidence
scores. Input comes from the command line, a file (text, markdown, or PDF), or
stdin.

Examples:
  langtab detect "Bonjour tout le monde"
  langtab detect --file letter.txt --top 5
  langtab detect --file scan.pdf --pages 1-3 --format json
  langtab detect --langs es,pt --priors es=0.6,pt=0.4 "gracias por todo"
  echo "hello world" | langtab detect`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runDetectCommand,
}

func runDetectCommand(cmd *cobra.Command, args []string) error {
	// Help handling for tests
	if len(args) > 0 && (args[0] == "--help" || args[0] == "-h") {
		return cmd.Help()
	}

	// Get configuration (includes CLI flags, config file, env vars, and defaults)
	cfg := GetConfig()

	format := cfg.Output.Format
	outputFile := cfg.Output.File

	// Validate output format
	validFormats := []string{outputFormatText, outputFormatJSON}
	isValidFormat := false
	for _, f := range validFormats {
		if format == f {
			isValidFormat = true
			break
		}
	}
	if !isValidFormat {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", format, strings.Join(validFormats, ", "))
	}

	filePath, _ := cmd.Flags().GetString("file")
	pages, _ := cmd.Flags().GetString("pages")

	text, source, err := resolveInput(cmd, args, filePath, pages)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("no input text provided")
	}

	langsCSV, _ := cmd.Flags().GetString("langs")
	priorsCSV, _ := cmd.Flags().GetString("priors")

	var candidates []string
	if langsCSV != "" {
		candidates = splitCSV(langsCSV)
	}
	priors, err := parsePriors(priorsCSV)
	if err != nil {
		return err
	}

	detector, err := detect.NewBuilder().
		WithDataDir(cfg.DataDir).
		WithFreqDir(cfg.FreqDir).
		WithWeights(cfg.Detect.PriorWeight, cfg.Detect.FreqWeight, cfg.Detect.CharWeight).
		WithTopK(cfg.Detect.TopK).
		WithMaxCandidates(cfg.Detect.MaxCandidates).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build detector: %w", err)
	}

	results, err := detector.Detect(text, detect.Options{
		Candidates: candidates,
		Priors:     priors,
	})
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	rendered, err := renderDetectResults(results, format, source, cfg.Output.ScorePrecision)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(rendered), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", outputFile); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprint(cmd.OutOrStdout(), rendered); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// resolveInput returns the text to analyze plus a label for where it came
// from (the file path, or empty for inline and stdin input).
func resolveInput(cmd *cobra.Command, args []string, filePath, pages string) (string, string, error) {
	if filePath != "" {
		if pages != "" {
			if strings.ToLower(filepath.Ext(filePath)) != ".pdf" {
				return "", "", fmt.Errorf("--pages applies only to PDF input, got %s", filePath)
			}
			pageTexts, err := document.NewExtractor().ExtractPages(filePath, pages)
			if err != nil {
				return "", "", fmt.Errorf("failed to read %s: %w", filePath, err)
			}
			parts := make([]string, 0, len(pageTexts))
			for _, page := range pageTexts {
				parts = append(parts, page.Text)
			}
			return strings.Join(parts, "\n\n"), filePath, nil
		}

		text, err := document.Read(filePath)
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", filePath, err)
		}
		return text, filePath, nil
	}

	if len(args) > 0 {
		return strings.Join(args, " "), "", nil
	}

	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(raw), "", nil
}

func renderDetectResults(results []detect.Result, format, source string, precision int) (string, error) {
	if format == outputFormatJSON {
		obj := struct {
			Source  string          `json:"source,omitempty"`
			Matches []detect.Result `json:"matches"`
		}{Source: source, Matches: results}
		bts, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(bts) + "\n", nil
	}

	if len(results) == 0 {
		return "no language identified\n", nil
	}
	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("%-8s %.*f\n", r.Language, precision, r.Score))
	}
	return sb.String(), nil
}

// splitCSV splits a comma-separated flag value, dropping empty entries.
func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parsePriors parses "es=0.6,pt=0.4" into a prior-weight map.
func parsePriors(s string) (map[string]float64, error) {
	if s == "" {
		return nil, nil
	}
	priors := make(map[string]float64)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lang, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid prior %q (expected lang=weight)", part)
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid prior weight %q: %w", value, err)
		}
		priors[strings.TrimSpace(lang)] = weight
	}
	return priors, nil
}

func addDetectFlags(cmd *cobra.Command) {
	cmd.Flags().String("file", "", "read input from a text, markdown, or PDF file")
	cmd.Flags().String("pages", "", "PDF page selection, e.g. \"1-3,5\" (default: all pages)")
	cmd.Flags().StringP("langs", "l", "", "comma-separated candidate language codes (e.g. en,de,fr)")
	cmd.Flags().String("priors", "", "comma-separated prior weights (e.g. es=0.6,pt=0.4)")
	cmd.Flags().IntP("top", "t", 0, "number of guesses to return (0 = configured default)")
	cmd.Flags().StringP("format", "f", "text", "output format (text, json)")
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
}

// bindDetectFlags binds flags to viper configuration keys.
func bindDetectFlags(cmd *cobra.Command) {
	flagBindings := []struct {
		key  string
		flag string
	}{
		{"output.format", "format"},
		{"output.file", "output"},
		{"detect.top_k", "top"},
	}

	for _, binding := range flagBindings {
		if err := viper.BindPFlag(binding.key, cmd.Flags().Lookup(binding.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", binding.flag, err))
		}
	}
}

func init() {
	rootCmd.AddCommand(detectCmd)

	addDetectFlags(detectCmd)
	bindDetectFlags(detectCmd)
}

// GetDetectCommand returns the detect command for testing purposes.
func GetDetectCommand() *cobra.Command {
	return detectCmd
}
