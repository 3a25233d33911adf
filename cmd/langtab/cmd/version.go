package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/langtab/internal/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the langtab version along with the git commit and build date.

Examples:
  langtab version`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// GetVersionCommand returns the version command for testing purposes.
func GetVersionCommand() *cobra.Command {
	return versionCmd
}
