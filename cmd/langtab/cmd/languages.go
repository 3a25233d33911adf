package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/MeKo-Tech/langtab/internal/data"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const outputFormatTable = "table"

// languagesCmd represents the languages command.
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages in the dataset",
	Long: `List every language in the dataset with its name, script, writing
direction, and whether a ranked frequency list is available.

Examples:
  langtab languages
  langtab languages --format json
  langtab languages --data-dir ./my-dataset`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runLanguagesCommand,
}

func runLanguagesCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	format, _ := cmd.Flags().GetString("format")
	if format != outputFormatTable && format != outputFormatJSON {
		return fmt.Errorf("invalid output format: %s (must be one of: %s, %s)",
			format, outputFormatTable, outputFormatJSON)
	}

	store := data.NewStore(cfg.ToDataConfig())
	entries, err := store.Index()
	if err != nil {
		return fmt.Errorf("failed to load language index: %w", err)
	}

	if format == outputFormatJSON {
		bts, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bts))
		return err
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	tbl.AppendHeader(table.Row{"CODE", "NAME", "SCRIPT", "DIRECTION", "FREQUENCY"})
	for _, entry := range entries {
		freq := "-"
		if entry.HasFrequency {
			freq = "yes"
		}
		tbl.AppendRow(table.Row{entry.Language, entry.Name, entry.Script, entry.Direction, freq})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d languages", len(entries))})

	_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
	return err
}

func init() {
	rootCmd.AddCommand(languagesCmd)

	languagesCmd.Flags().StringP("format", "f", "table", "output format (table, json)")
}

// GetLanguagesCommand returns the languages command for testing purposes.
func GetLanguagesCommand() *cobra.Command {
	return languagesCmd
}
