package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/braille/internal/audio"
	"github.com/f3rmion/braille/internal/chord"
	"github.com/f3rmion/braille/internal/config"
	"github.com/f3rmion/braille/internal/translate"
	"github.com/f3rmion/braille/internal/tui"
	"github.com/f3rmion/braille/internal/tui/views"
)

// logFileName receives log output while the TUI owns the terminal.
const logFileName = "braille.log"

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive TUI",
	Long: `Launch an interactive terminal UI for typing and reading Braille.

Views:
  Chord      Type cells with f d s j k l, submit with space
  Translate  Translate Braille, dot numbers or Luganda text
  Settings   Change the stored user settings

Controls:
  1-3     Switch view
  Tab     Toggle sidebar focus
  ?       Help
  Esc     Focus sidebar, again to quit
  q       Quit

Logs are written to braille.log in the config directory.`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	configDir := getConfigDir()
	if err := config.EnsureDir(configDir); err != nil {
		return err
	}
	logFile, err := os.OpenFile(filepath.Join(configDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, viper.GetBool("verbose")).With("session", uuid.NewString())
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

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
	defer agg.Close()

	deps := tui.Deps{
		Engine:     svc.engine,
		Aggregator: agg,
		Lang:       cfg.Language,
		Summary: []views.Field{
			{Label: "Config", Value: configDir},
			{Label: "Database", Value: cfg.Database},
			{Label: "Audio", Value: cfg.AudioDir},
			{Label: "Language", Value: cfg.Language},
			{Label: "Keys", Value: keyLegend(cfg.Keys)},
		},
	}
	if svc.store != nil {
		deps.Settings = svc.store
	}

	var sched *audio.Scheduler
	if sp, err := svc.speaker(); err != nil {
		logger.Warn("audio disabled", "error", err)
	} else {
		deps.Speaker = sp
		sched = audio.NewScheduler(sp, cfg.Language, logger)
		defer sched.Stop()
	}

	p := tea.NewProgram(tui.NewApp(deps), tea.WithAltScreen())

	sinks := []translate.Sink{tui.ProgramSink(p)}
	if sched != nil {
		sinks = append(sinks, sched)
	}
	proc := translate.NewProcessor(svc.engine, translate.Sinks(sinks...), logger)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := proc.Run(ctx, agg.Submissions()); err != nil && ctx.Err() == nil {
			logger.Error("processing stopped", "error", err)
		}
	}()

	_, runErr := p.Run()
	agg.Close()
	cancel()
	<-done

	if runErr != nil {
		return fmt.Errorf("running TUI: %w", runErr)
	}
	return nil
}
