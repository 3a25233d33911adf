package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/MeKo-Tech/langtab/internal/data"
	"github.com/MeKo-Tech/langtab/internal/diacritics"
	"github.com/MeKo-Tech/langtab/internal/keyboard"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const topLetterCount = 10

// infoCmd represents the info command.
var infoCmd = &cobra.Command{
	Use:   "info <lang>",
	Short: "Show dataset details for one language",
	Long: `Show everything the dataset knows about one language: alphabet,
scripts, hello phrase, most frequent letters, frequency-list mode and size,
diacritic variants, and matching keyboard layouts.

Examples:
  langtab info fr
  langtab info ru --script Cyrl`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runInfoCommand,
}

func runInfoCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	lang := strings.ToLower(strings.TrimSpace(args[0]))
	out := cmd.OutOrStdout()

	store := data.NewStore(cfg.ToDataConfig())
	entry, err := store.Entry(lang)
	if err != nil {
		return fmt.Errorf("failed to load language info: %w", err)
	}

	header := color.New(color.FgCyan, color.Bold)

	header.Fprintf(out, "%s (%s)\n", entry.Name, entry.Language)
	fmt.Fprintf(out, "  Script type: %s\n", entry.Script)
	fmt.Fprintf(out, "  Direction:   %s\n", entry.Direction)

	scripts, err := store.Scripts(lang)
	if err != nil {
		return fmt.Errorf("failed to load scripts: %w", err)
	}
	fmt.Fprintf(out, "  Scripts:     %s\n", strings.Join(scripts, ", "))

	script, _ := cmd.Flags().GetString("script")
	if script == "" {
		if script, err = store.DefaultScript(lang); err != nil {
			return fmt.Errorf("failed to resolve script: %w", err)
		}
	}

	alphabet, err := store.Alphabet(lang, script)
	if err != nil {
		return fmt.Errorf("failed to load alphabet: %w", err)
	}

	header.Fprintf(out, "\nAlphabet (%s)\n", script)
	if len(alphabet.Uppercase) > 0 {
		fmt.Fprintf(out, "  Uppercase: %s\n", strings.Join(alphabet.Uppercase, " "))
	}
	fmt.Fprintf(out, "  Lowercase: %s\n", strings.Join(alphabet.Lowercase, " "))
	if len(alphabet.Digits) > 0 {
		fmt.Fprintf(out, "  Digits:    %s\n", strings.Join(alphabet.Digits, " "))
	}

	if phrase := store.HelloPhrase(lang); phrase != "" {
		header.Fprintf(out, "\nHello phrase\n")
		fmt.Fprintf(out, "  %s\n", phrase)
	}

	if letters, err := store.TopLetters(lang, topLetterCount); err == nil && len(letters) > 0 {
		header.Fprintf(out, "\nMost frequent letters\n")
		fmt.Fprintf(out, "  %s\n", strings.Join(letters, " "))
	}

	header.Fprintf(out, "\nFrequency list\n")
	if store.HasFrequency(lang) {
		list, err := store.FrequencyList(lang)
		if err != nil {
			return fmt.Errorf("failed to load frequency list: %w", err)
		}
		fmt.Fprintf(out, "  %s mode, %s tokens\n", list.Mode, humanize.Comma(int64(list.Len())))
	} else {
		fmt.Fprintf(out, "  not available (detection falls back to character overlap)\n")
	}

	printDiacriticVariants(out, header, alphabet)

	return printKeyboardLayouts(out, header, lang)
}

func printDiacriticVariants(out io.Writer, header *color.Color, alphabet *data.AlphabetRecord) {
	variants := diacritics.Variants(alphabet.Lowercase)
	if len(variants) == 0 {
		return
	}

	bases := make([]string, 0, len(variants))
	for base := range variants {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	header.Fprintf(out, "\nDiacritic variants\n")
	for _, base := range bases {
		fmt.Fprintf(out, "  %s: %s\n", base, strings.Join(variants[base], " "))
	}
}

func printKeyboardLayouts(out io.Writer, header *color.Color, lang string) error {
	layouts := keyboard.NewStore("")
	ids, err := layouts.ForLanguage(lang)
	if err != nil {
		return fmt.Errorf("failed to list keyboard layouts: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	header.Fprintf(out, "\nKeyboard layouts\n")
	for _, id := range ids {
		layout, err := layouts.Load(id)
		if err != nil {
			return fmt.Errorf("failed to load keyboard layout %s: %w", id, err)
		}
		fmt.Fprintf(out, "  %-20s %s (%d typeable characters)\n", id, layout.Name, len(layout.Typeable()))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().String("script", "", "script to show the alphabet for (default: the language's primary script)")
}

// GetInfoCommand returns the info command for testing purposes.
func GetInfoCommand() *cobra.Command {
	return infoCmd
}
