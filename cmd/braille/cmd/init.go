package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/f3rmion/braille/internal/config"
	"github.com/f3rmion/braille/internal/dict"
	"github.com/f3rmion/braille/internal/store"
	"github.com/f3rmion/braille/internal/table"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize braille configuration and database",
	Long: `Initialize the configuration directory.

This creates:
  - config.yaml   (paths, language, keys, speech and player settings)
  - tables.yaml   (Braille cell → grapheme and grapheme → IPA tables)
  - words.jsonl   (common-word list, one JSON object per line)
  - braille.db    (SQLite database with characters, words and settings)
  - audio/        (put recorded segments here, e.g. ku.wav, dot_1.wav)
  - cache/        (synthesized speech cache)

Edit tables.yaml to change the character tables and words.jsonl to add
words. Running init again with --force rewrites the files; the database
keeps existing words and settings. Stored characters always follow
tables.yaml.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	out := cmd.OutOrStdout()

	cfgPath := config.Path(configDir, config.FileName)
	if exists(cfgPath) && !force {
		return fmt.Errorf("config already exists: %s\nUse --force to overwrite", cfgPath)
	}
	if err := config.EnsureDir(configDir); err != nil {
		return err
	}

	fmt.Fprintf(out, "Initializing braille configuration in %s\n\n", configDir)

	base := config.Default()
	if err := config.Save(configDir, base); err != nil {
		return err
	}
	fmt.Fprintf(out, "  Created %s\n", config.FileName)

	cfg := base.Resolved(configDir)

	tmpl, err := table.Template()
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Tables, tmpl, 0644); err != nil {
		return fmt.Errorf("writing tables: %w", err)
	}
	fmt.Fprintf(out, "  Created %s\n", base.Tables)

	words := dict.NewWordList()
	for _, w := range store.SeedWords {
		words.Add(w)
	}
	if err := words.SaveToFile(cfg.WordList); err != nil {
		return err
	}
	fmt.Fprintf(out, "  Created %s (%d words)\n", base.WordList, words.Size())

	for _, dir := range []string{cfg.AudioDir, cfg.CacheDir} {
		if err := config.EnsureDir(dir); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "  Created %s/ and %s/\n", base.AudioDir, base.CacheDir)

	st, err := store.Open(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()
	tables, err := table.LoadFile(cfg.Tables)
	if err != nil {
		return err
	}
	if err := st.Seed(cmd.Context(), tables); err != nil {
		return err
	}
	counts, err := st.Counts(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  Seeded %s (%d characters, %d words, %d settings)\n",
		base.Database, counts.Characters, counts.Words, counts.Settings)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration initialized!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Record Luganda segments into the audio directory")
	fmt.Fprintln(out, "  2. Set OPENAI_API_KEY for synthesized speech")
	fmt.Fprintln(out, "  3. Run 'braille translate ⠁⠃⠁⠝⠞⠥' or 'braille' for the TUI")
	return nil
}
