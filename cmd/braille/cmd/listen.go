package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/f3rmion/braille/internal/audio"
	"github.com/f3rmion/braille/internal/chord"
	"github.com/f3rmion/braille/internal/input"
	"github.com/f3rmion/braille/internal/translate"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Type Braille chords on the keyboard",
	Long: `Listen to the keyboard system-wide and translate Braille chords.

Hold the keys for the dots of a cell and press the submit key while they
are still down. Releasing a key before submitting drops that dot. Each
chord is announced by its dots and then by the word it reads as.

Default keys:
  f d s   dots 1 2 3
  j k l   dots 4 5 6
  space   submit
  backspace clear

Keys are configured under 'keys' in config.yaml. Press Ctrl+C to stop.`,
	RunE: runListen,
}

func init() {
	rootCmd.AddCommand(listenCmd)
	listenCmd.Flags().Bool("quiet", false, "print translations without playing audio")
}

func runListen(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.Default().With("session", uuid.NewString())
	svc, err := openServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()
	svc.watchWords(ctx)

	agg := chord.New(
		chord.WithBuffer(cfg.QueueSize),
		chord.WithKeyMap(cfg.Keys),
		chord.WithLogger(logger),
	)

	out := cmd.OutOrStdout()
	sinks := []translate.Sink{translate.SinkFunc(func(_ context.Context, t translate.Translation) {
		printTranslation(out, t)
	})}
	if !quiet {
		sp, err := svc.speaker()
		if err != nil {
			logger.Warn("audio disabled", "error", err)
		} else {
			sched := audio.NewScheduler(sp, cfg.Language, logger)
			defer sched.Stop()
			sinks = append(sinks, sched)
		}
	}

	proc := translate.NewProcessor(svc.engine, translate.Sinks(sinks...), logger)
	done := make(chan error, 1)
	go func() {
		done <- proc.Run(ctx, agg.Submissions())
	}()

	fmt.Fprintf(out, "Listening (%s). Press Ctrl+C to stop.\n\n", keyLegend(cfg.Keys))
	listenErr := input.NewListener(agg, nil, logger).Run(ctx)
	procErr := <-done

	return stopErr(listenErr, procErr)
}

// stopErr joins the errors that ended a session, dropping cancellations.
func stopErr(errs ...error) error {
	var kept []error
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			kept = append(kept, err)
		}
	}
	return errors.Join(kept...)
}

// printTranslation writes one line per chord: dots, cell, word and IPA.
func printTranslation(w io.Writer, t translate.Translation) {
	r := t.Result
	if r.Empty() || r.Unresolved() {
		fmt.Fprintf(w, "%-12s %c  (translation not found)\n", t.Dots, t.Dots.Cell())
		return
	}
	fmt.Fprintf(w, "%-12s %c  %s /%s/\n", t.Dots, t.Dots.Cell(), r.Text(), r.PhoneticText())
}

// keyLegend describes a key map, e.g. "f=1 d=2 s=3 j=4 k=5 l=6, space submits".
func keyLegend(km chord.KeyMap) string {
	var parts []string
	for d := 1; d <= 6; d++ {
		if k, ok := km.KeyFor(d); ok {
			parts = append(parts, fmt.Sprintf("%s=%d", k, d))
		}
	}
	legend := strings.Join(parts, " ") + ", " + km.Submit + " submits"
	if km.Clear != "" {
		legend += ", " + km.Clear + " clears"
	}
	return legend
}
