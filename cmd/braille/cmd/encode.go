package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/braille/internal/braille"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <text>",
	Short: "Write Luganda text or dot numbers as Braille",
	Long: `Write Luganda text in six-dot Braille. Digraphs such as ny, ng and
gw use their own cells.

With --dots the input is dot numbers instead: cells separated by spaces and
words by "/".

Example:
  braille encode mukwano
  braille encode --dots "146 1 / 13 1"
  braille encode --cells nyama`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().Bool("dots", false, "input is dot numbers")
	encodeCmd.Flags().Bool("cells", false, "also list the dots of every cell")
}

func runEncode(cmd *cobra.Command, args []string) error {
	dots, _ := cmd.Flags().GetBool("dots")
	cells, _ := cmd.Flags().GetBool("cells")
	input := strings.Join(args, " ")

	var out string
	if dots {
		s, err := braille.EncodeText(input)
		if err != nil {
			return err
		}
		out = s
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := openServices(cmd.Context(), cfg, slog.Default())
		if err != nil {
			return err
		}
		defer svc.Close()

		s, missing := svc.engine.Graphemes().Encode(input)
		if len(missing) > 0 {
			slog.Warn("no Braille cell for some characters, skipped", "characters", strings.Join(missing, " "))
		}
		out = s
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, out)
	if cells {
		for _, c := range braille.Cells(out) {
			fmt.Fprintf(w, "  %c  %s\n", c, braille.DecodeCell(c))
		}
	}
	return nil
}
