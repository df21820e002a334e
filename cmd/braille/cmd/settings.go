package cmd

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change user settings",
	Long: `Show or change the user settings stored in the database.

Example:
  braille settings
  braille settings get speech_speed
  braille settings set speech_speed slow`,
	RunE: runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Create or update a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)
}

func runSettingsList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(svc *services) error {
		st, err := svc.requireStore()
		if err != nil {
			return err
		}
		settings, err := st.Settings(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range slices.Sorted(maps.Keys(settings)) {
			fmt.Fprintf(out, "%-14s %s\n", name, settings[name])
		}
		return nil
	})
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(svc *services) error {
		st, err := svc.requireStore()
		if err != nil {
			return err
		}
		v, ok, err := st.Setting(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("setting %q not found", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	})
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(svc *services) error {
		st, err := svc.requireStore()
		if err != nil {
			return err
		}
		if err := st.SetSetting(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
		return nil
	})
}

// withStore opens the services for the duration of fn.
func withStore(cmd *cobra.Command, fn func(*services) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := openServices(cmd.Context(), cfg, slog.Default())
	if err != nil {
		return err
	}
	defer svc.Close()
	return fn(svc)
}
