package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/f3rmion/braille/internal/audio"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the synthesized speech cache",
	Long: `Inspect or clear the cache of synthesized speech.

Synthesized audio is cached by text and language so repeated words are
played without calling the API again.

Example:
  braille cache
  braille cache evict mukwano --lang lg
  braille cache clear`,
	RunE: runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached entry",
	RunE:  runCacheClear,
}

var cacheEvictCmd = &cobra.Command{
	Use:   "evict <text>",
	Short: "Remove the cached entry for one text",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheEvict,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd, cacheEvictCmd)
	cacheEvictCmd.Flags().String("lang", audio.Luganda, "language the text was spoken in")
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	return withCache(cmd, func(dir string, c *audio.SpeechCache) error {
		s, err := c.Stats()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Cache:   %s\n", dir)
		fmt.Fprintf(out, "Entries: %s\n", humanize.Comma(int64(s.Entries)))
		fmt.Fprintf(out, "Size:    %s\n", humanize.Bytes(uint64(s.Bytes)))
		return nil
	})
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	return withCache(cmd, func(dir string, c *audio.SpeechCache) error {
		if err := c.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", dir)
		return nil
	})
}

func runCacheEvict(cmd *cobra.Command, args []string) error {
	lang, _ := cmd.Flags().GetString("lang")
	return withCache(cmd, func(_ string, c *audio.SpeechCache) error {
		if err := c.Evict(args[0], lang); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Evicted %q (%s)\n", args[0], lang)
		return nil
	})
}

// withCache opens the speech cache for the duration of fn.
func withCache(cmd *cobra.Command, fn func(dir string, c *audio.SpeechCache) error) error {
	return withStore(cmd, func(svc *services) error {
		c, err := svc.openCache()
		if err != nil {
			return err
		}
		return fn(svc.cfg.CacheDir, c)
	})
}
