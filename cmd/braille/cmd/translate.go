package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate [braille...]",
	Short: "Translate Braille text to Luganda and IPA",
	Long: `Translate Unicode Braille into Luganda words and their IPA
pronunciation. Each input line is translated separately.

Input is taken from the arguments, from --file, or from stdin when neither
is given. Arguments without Braille cells are read as dot numbers: cells
separated by spaces, words by "/".

Example:
  braille translate ⠍⠥⠅⠭⠁⠝⠕
  braille translate "146 1 / 13 1"
  braille translate --file story.brl --format json --output story.json`,
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)
	translateCmd.Flags().StringP("file", "f", "", "read Braille text from file")
	translateCmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
	translateCmd.Flags().String("format", formatText, "output format: text or json")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	text, err := translateInput(cmd, args, file)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	svc, err := openServices(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	defer svc.Close()

	results, err := svc.engine.TranslateLines(ctx, text)
	if err != nil {
		return fmt.Errorf("translating: %w", err)
	}
	if len(results) == 0 {
		return fmt.Errorf("no Braille found in input")
	}

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := writeResults(w, results, format); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	if output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d lines to %s\n", len(results), output)
	}
	return nil
}

// translateInput gathers the text to translate from args, a file or stdin.
func translateInput(cmd *cobra.Command, args []string, file string) (string, error) {
	var raw string
	switch {
	case len(args) > 0:
		raw = strings.Join(args, " ")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		raw = string(data)
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		raw = string(data)
	}

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		text, err := readInput(line)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", i+1, err)
		}
		lines[i] = text
	}
	return strings.Join(lines, "\n"), nil
}
