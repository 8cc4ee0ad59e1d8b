package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	settingsTheme    string
	settingsRemember bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage user preferences stored with the estate data",
	Long: `User preferences live in the record store (not config.json) so they
travel with backups. Only the flags given change; the rest keep their
current value.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print current preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		settings, err := s.Settings()
		if err != nil {
			return err
		}
		fmt.Printf("theme:           %s\n", settings.Theme)
		fmt.Printf("remember device: %t\n", settings.RememberDevice)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("theme") {
			switch settingsTheme {
			case "light", "dark", "system":
			default:
				return fmt.Errorf("invalid --theme %q: expected light, dark, or system", settingsTheme)
			}
		}

		_, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		settings, err := s.Settings()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("theme") {
			settings.Theme = settingsTheme
		}
		if cmd.Flags().Changed("remember-device") {
			settings.RememberDevice = settingsRemember
		}
		if err := s.SetSettings(settings); err != nil {
			return err
		}
		fmt.Println("Settings saved.")
		return nil
	},
}

func init() {
	settingsSetCmd.Flags().StringVar(&settingsTheme, "theme", "", "Theme (light|dark|system)")
	settingsSetCmd.Flags().BoolVar(&settingsRemember, "remember-device", false, "Skip the unlock prompt on this device")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
