package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/cc-prompt/internal/config"
	"github.com/Veraticus/cc-prompt/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use and the search locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		used := configFile
		if used == "" {
			located, err := config.Locate()
			if err != nil {
				return fmt.Errorf("locate config: %w", err)
			}
			used = located
		}
		if used == "" {
			used = "(none, using defaults)"
		}

		r := output.NewListRenderer()
		fmt.Fprint(cmd.OutOrStdout(), r.RenderMap("Config", map[string]string{"file": used}))
		fmt.Fprint(cmd.OutOrStdout(), r.Render("Search paths", config.SearchPaths()))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig(newLogger(cmd.ErrOrStderr()))
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
