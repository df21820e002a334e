package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/braille/internal/translate"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <braille word>",
	Short: "Show how a Braille word is read",
	Long: `Analyze a Braille word. A word found in the dictionary shows its
meaning and category; any other word is broken down cell by cell with the
dots, grapheme and IPA of each cell.

Example:
  braille analyze ⠁⠃⠁⠝⠞⠥
  braille analyze "146 1 134 1"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Bool("json", false, "print the analysis as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	word, err := readInput(strings.Join(args, " "))
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := openServices(cmd.Context(), cfg, slog.Default())
	if err != nil {
		return err
	}
	defer svc.Close()

	var all []translate.WordDetails
	for _, w := range strings.Fields(word) {
		d, err := svc.engine.Details(cmd.Context(), w)
		if err != nil {
			return err
		}
		all = append(all, d)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(all)
	}

	for _, d := range all {
		fmt.Fprintf(out, "Pattern: %s\n", d.Pattern)
		if d.Found {
			fmt.Fprintf(out, "  Word:     %s\n", d.Word)
			fmt.Fprintf(out, "  IPA:      /%s/\n", d.Phonetic)
			if d.Meaning != "" {
				fmt.Fprintf(out, "  Meaning:  %s\n", d.Meaning)
			}
			if d.Category != "" {
				fmt.Fprintf(out, "  Category: %s\n", d.Category)
			}
			fmt.Fprintln(out)
			continue
		}

		fmt.Fprintf(out, "  Not in dictionary, reading by character: %s /%s/\n", d.Word, d.Phonetic)
		for _, c := range d.Characters {
			fmt.Fprintf(out, "    %s  %-12s %-4s /%s/  %s\n", c.Code, c.Dots, c.Grapheme, c.Phonetic, c.Description)
		}
		fmt.Fprintln(out)
	}
	return nil
}
