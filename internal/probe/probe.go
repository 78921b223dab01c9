package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrProbeFailure wraps every failure to obtain output from a probe command.
var ErrProbeFailure = errors.New("probe failed")

// Result is the captured output of a probe command.
type Result struct {
	Stdout string
}

// Probe runs commands through a CommandRunner. It keeps no state between
// calls: every Run starts the command again.
type Probe struct {
	runner CommandRunner
}

// New creates a Probe using runner, or a DefaultCommandRunner when runner is nil.
func New(runner CommandRunner) *Probe {
	if runner == nil {
		runner = &DefaultCommandRunner{}
	}
	return &Probe{runner: runner}
}

// Run executes name with args once and returns its standard output.
func (p *Probe) Run(ctx context.Context, name string, args ...string) (Result, error) {
	output, err := p.runner.Run(ctx, name, args...)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s %s: %w", ErrProbeFailure, name, strings.Join(args, " "), err)
	}
	if !utf8.Valid(output) {
		return Result{}, fmt.Errorf("%w: %s %s: output is not valid UTF-8", ErrProbeFailure, name, strings.Join(args, " "))
	}
	return Result{Stdout: string(output)}, nil
}

// Compiler identities reported by ClassifyCompiler.
const (
	CompilerClang   = "clang"
	CompilerGCC     = "gcc"
	CompilerUnknown = "Unknown compiler"
)

// compilerRules are checked in order; clang banners may mention the FSF too.
var compilerRules = []struct {
	substring string
	identity  string
}{
	{substring: "clang", identity: CompilerClang},
	{substring: "Free Software Foundation", identity: CompilerGCC},
}

// ClassifyCompiler names the compiler that printed banner.
func ClassifyCompiler(banner string) string {
	for _, rule := range compilerRules {
		if strings.Contains(banner, rule.substring) {
			return rule.identity
		}
	}
	return CompilerUnknown
}

// CompilerName runs "<command> --version" and classifies its banner.
func (p *Probe) CompilerName(ctx context.Context, command string) (string, error) {
	result, err := p.Run(ctx, command, "--version")
	if err != nil {
		return "", err
	}
	return ClassifyCompiler(result.Stdout), nil
}

// CompilerVersion runs "<command> -dumpversion", which gcc and clang both support.
func (p *Probe) CompilerVersion(ctx context.Context, command string) (string, error) {
	result, err := p.Run(ctx, command, "-dumpversion")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Stdout), nil
}
