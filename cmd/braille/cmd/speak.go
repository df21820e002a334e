package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/braille/internal/audio"
	"github.com/f3rmion/braille/internal/braille"
	"github.com/f3rmion/braille/internal/translate"
)

var speakCmd = &cobra.Command{
	Use:   "speak <text>",
	Short: "Speak Luganda text or Braille",
	Long: `Speak text aloud. Braille input is translated first.

Luganda is played from recorded segments when every segment exists, and
synthesized otherwise. English, or Luganda without recordings, needs an
OpenAI API key in OPENAI_API_KEY.

Example:
  braille speak mukwano
  braille speak ⠍⠥⠅⠺⠁⠝⠕
  braille speak --lang en "good morning"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSpeak,
}

func init() {
	rootCmd.AddCommand(speakCmd)
}

func runSpeak(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := slog.Default()
	svc, err := openServices(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	text := strings.Join(args, " ")
	if braille.ContainsCells(text) {
		r, err := svc.engine.Translate(cmd.Context(), translate.BrailleText(text))
		if err != nil {
			return err
		}
		if r.Unresolved() {
			return fmt.Errorf("translation not found for %s", text)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s /%s/\n", r.Text(), r.PhoneticText())
		text = r.Text()
	}

	sp, err := svc.speaker()
	if err != nil {
		return err
	}
	if err := sp.Speak(cmd.Context(), text, cfg.Language); err != nil {
		if errors.Is(err, audio.ErrNoAudio) {
			return fmt.Errorf("no audio for %q: record segments in %s or set OPENAI_API_KEY", text, cfg.AudioDir)
		}
		return err
	}
	return nil
}
