package modules

import (
	"github.com/Veraticus/cc-prompt/internal/config"
	"github.com/Veraticus/cc-prompt/internal/detect"
	"github.com/Veraticus/cc-prompt/internal/formatter"
	"github.com/Veraticus/cc-prompt/internal/probe"
)

// C renders the C toolchain module for ctx.Dir.
//
// The compiler is only run for $compiler_name and $compiler_version, and only
// when the format references them.
func C(ctx *Context, cfg config.CConfig) *Module {
	m := newModule("c")
	if cfg.Disabled {
		m.transition(NoMatch)
		return m
	}

	m.transition(Detecting)
	matched, err := detect.Scan(ctx.lister(), ctx.Dir, cfg.DetectionSpec())
	if err != nil {
		ctx.logger().Printf("module `%s`: %v", m.Name, err)
	}
	if !matched {
		m.transition(NoMatch)
		return m
	}
	m.transition(Matched)

	m.transition(Resolving)
	tmpl, err := formatter.Parse(cfg.Format)
	if err != nil {
		return m.fail(ctx, err)
	}

	runner := ctx.Runner
	if runner == nil {
		runner = &probe.DefaultCommandRunner{Timeout: cfg.CommandTimeout}
	}
	p := probe.New(runner)
	command := cfg.CompilerCommand
	if command == "" {
		command = config.DefaultCompilerCommand
	}

	meta := func(name string) formatter.Lookup {
		if name == "symbol" {
			return formatter.Found(cfg.Symbol)
		}
		return formatter.Skip()
	}
	style := func(name string) formatter.Lookup {
		if name == "style" {
			return formatter.Found(cfg.Style)
		}
		return formatter.Skip()
	}
	value := func(name string) formatter.Lookup {
		switch name {
		case "compiler_name":
			if !tmpl.References(name) {
				return formatter.Skip()
			}
			compiler, err := p.CompilerName(ctx.context(), command)
			if err != nil {
				return formatter.Failed(err)
			}
			return formatter.Found(compiler)
		case "compiler_version":
			if !tmpl.References(name) {
				return formatter.Skip()
			}
			raw, err := p.CompilerVersion(ctx.context(), command)
			if err != nil {
				return formatter.Failed(err)
			}
			version, err := formatter.FormatVersion(raw, cfg.VersionSpec())
			if err != nil {
				return formatter.Failed(err)
			}
			return formatter.Found(version)
		}
		return formatter.Skip()
	}

	segments, err := tmpl.Resolve(meta, style, value)
	if err != nil {
		return m.fail(ctx, err)
	}
	m.Segments = segments
	m.transition(Rendered)
	return m
}
