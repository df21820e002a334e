package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/braille/internal/audio"
	"github.com/f3rmion/braille/internal/segment"
)

var segmentsCmd = &cobra.Command{
	Use:   "segments <word>...",
	Short: "Split Luganda words into recorded audio segments",
	Long: `Split Luganda words into the recorded segments found in the audio
directory, preferring the longest segment at each position.

With --list, print every segment the audio directory holds instead.

Example:
  braille segments mukwano
  braille segments --list`,
	RunE: runSegments,
}

func init() {
	rootCmd.AddCommand(segmentsCmd)
	segmentsCmd.Flags().Bool("list", false, "list available segments")
}

func runSegments(cmd *cobra.Command, args []string) error {
	list, _ := cmd.Flags().GetBool("list")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lib := audio.NewFileLibrary(cfg.AudioDir)
	out := cmd.OutOrStdout()

	if list {
		segs, err := lib.Segments()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d segments in %s\n", len(segs), lib.Dir())
		for _, s := range segs {
			fmt.Fprintf(out, "  %s\n", s)
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("no word given, see 'braille segments --help'")
	}

	tok := segment.New(lib)
	for _, word := range strings.Fields(strings.Join(args, " ")) {
		segs := tok.Tokenize(word)
		if len(segs) == 0 {
			fmt.Fprintf(out, "%s: no recorded segments\n", word)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", word, strings.Join(segs, " + "))
		for _, s := range segs {
			if p, ok := lib.Path(s); ok {
				fmt.Fprintf(out, "  %-8s %s\n", s, p)
			} else {
				fmt.Fprintf(out, "  %-8s (missing)\n", s)
			}
		}
	}
	return nil
}
