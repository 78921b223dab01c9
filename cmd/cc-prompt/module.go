package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cc-prompt/internal/config"
	"github.com/Veraticus/cc-prompt/internal/modules"
)

var modulePath string

var moduleCmd = &cobra.Command{
	Use:   "module <name>",
	Short: "Print the segment of a module",
	Long: `Print the rendered segment of a module for a directory.

Nothing is printed when the module does not apply or fails.`,
	Example: `  cc-prompt module c
  cc-prompt module c --path ~/src/project --color=always`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := runModule(cmd, args[0], modulePath)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), m.String())
		return nil
	},
}

func init() {
	moduleCmd.Flags().StringVarP(&modulePath, "path", "p", "", "directory to inspect (default: current directory)")
	rootCmd.AddCommand(moduleCmd)
}

// runModule renders the named module for path and returns it with the
// configuration it was rendered with.
func runModule(cmd *cobra.Command, name, path string) (*modules.Module, *config.Config, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("get current directory: %w", err)
		}
		path = wd
	}

	logger := newLogger(cmd.ErrOrStderr())
	cfg := loadConfig(logger)

	ctx := modules.NewContext(path)
	ctx.Ctx = cmd.Context()
	ctx.Logger = logger

	m, err := modules.Render(name, ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("render module: %w", err)
	}
	return m, cfg, nil
}
