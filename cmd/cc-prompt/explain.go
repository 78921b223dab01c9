package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cc-prompt/internal/formatter"
	"github.com/Veraticus/cc-prompt/internal/modules"
	"github.com/Veraticus/cc-prompt/internal/output"
)

var explainPath string

var explainCmd = &cobra.Command{
	Use:   "explain <name>",
	Short: "Show how a module was evaluated",
	Long: `Show the states a module went through, the variables its format
references and the reason it failed, if any.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, cfg, err := runModule(cmd, args[0], explainPath)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), explain(m, cfg.C.Format))
		return nil
	},
}

func init() {
	explainCmd.Flags().StringVarP(&explainPath, "path", "p", "", "directory to inspect (default: current directory)")
	rootCmd.AddCommand(explainCmd)
}

func explain(m *modules.Module, format string) string {
	trace := make([]string, 0, len(m.Trace()))
	for _, s := range m.Trace() {
		trace = append(trace, s.String())
	}

	facts := map[string]string{
		"module":  m.Name,
		"state":   m.State.String(),
		"trace":   strings.Join(trace, " → "),
		"present": strconv.FormatBool(m.Present()),
		"width":   strconv.Itoa(m.Width()),
		"format":  format,
	}
	if m.Present() {
		facts["output"] = m.String()
	}
	if m.Err != nil {
		facts["error"] = m.Err.Error()
	}

	var variables []string
	if tmpl, err := formatter.Parse(format); err == nil {
		variables = tmpl.Variables()
	}

	r := output.NewListRenderer()
	return r.RenderMap("Module", facts) + r.Render("Referenced variables", variables)
}
