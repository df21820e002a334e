// Package cmd contains all CLI commands for the braille tool.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/braille/internal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "braille",
	Short: "Six-dot Braille to Luganda translator",
	Long: `braille translates six-dot Braille into Luganda words and their IPA
pronunciation, and speaks them.

Input can be:
  - Unicode Braille text        braille translate ⠍⠥⠅⠺⠁⠝⠕
  - chords typed on f d s j k l  braille listen
  - dot numbers                 braille translate "146 1"

Luganda digraphs ny, ng, gw, ky and ly have their own cells. Words are
looked up in the common-word dictionary first and decoded cell by cell
otherwise.

Running 'braille' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(newLogger(os.Stderr, viper.GetBool("verbose")))
	},
	RunE: runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/braille)")
	pf.Bool("verbose", false, "verbose output")
	pf.String("lang", "", "speech language: lg, en or auto (default from config)")
	pf.String("db", "", "SQLite database (default from config)")
	pf.String("audio-dir", "", "directory of recorded audio segments (default from config)")

	viper.BindPFlag("verbose", pf.Lookup("verbose"))
	viper.BindPFlag("lang", pf.Lookup("lang"))
	viper.BindPFlag("db", pf.Lookup("db"))
	viper.BindPFlag("audio-dir", pf.Lookup("audio-dir"))
}

// initConfig reads in ENV variables and sets the config directory.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		configDir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", configDir)
	}

	viper.SetEnvPrefix("BRAILLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadConfig reads config.yaml from the config dir, resolves its paths and
// applies flag and environment overrides.
func loadConfig() (*config.Config, error) {
	dir := getConfigDir()
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Resolved(dir)

	if v := viper.GetString("lang"); v != "" {
		cfg.Language = v
	}
	if v := viper.GetString("db"); v != "" {
		cfg.Database = absPath(v)
	}
	if v := viper.GetString("audio-dir"); v != "" {
		cfg.AudioDir = absPath(v)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// newLogger returns a tint logger writing to w, coloured on terminals.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}
