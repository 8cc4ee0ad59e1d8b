package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"estatekeeper/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect estatekeeper configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(dataDir)
		if err != nil {
			return err
		}
		out, err := cfg.Render()
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config.json with the current defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(dataDir)
		if err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("Wrote %s/config.json\n", cfg.DataDir)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
