// Package main implements the cc-prompt CLI application.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Veraticus/cc-prompt/internal/config"
	"github.com/Veraticus/cc-prompt/internal/modules"
	"github.com/Veraticus/cc-prompt/internal/shared"
)

var (
	configFile string
	verbose    bool
	colorMode  string
)

var rootCmd = &cobra.Command{
	Use:   "cc-prompt",
	Short: "Render prompt segments for the current project",
	Long: `cc-prompt renders styled prompt segments that describe the project in a
directory, such as the C compiler used by a C project.

A module that cannot be rendered produces no output instead of an error,
so a broken toolchain never breaks the prompt.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return applyColorMode(colorMode, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: search standard locations)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log module diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colour output: auto, always or never")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, shared.ErrorStyle.Render("Error: "+err.Error())) //nolint:forbidigo // CLI output
		os.Exit(1)
	}
}

// applyColorMode chooses the lipgloss colour profile for w.
func applyColorMode(mode string, w io.Writer) error {
	switch mode {
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "auto":
		if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	default:
		return fmt.Errorf("invalid --color value %q: use auto, always or never", mode)
	}
	return nil
}

// newLogger returns the diagnostics logger selected by --verbose.
func newLogger(stderr io.Writer) modules.Logger {
	if !verbose {
		stderr = io.Discard
	}
	handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return modules.NewStandardLogger(slog.New(handler))
}

// loadConfig loads the configuration, falling back to defaults on failure so
// that prompt rendering keeps working with a broken config file.
func loadConfig(logger modules.Logger) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		logger.Printf("loading config: %v; using defaults", err)
		return &config.Config{C: config.DefaultCConfig()}
	}
	return cfg
}
