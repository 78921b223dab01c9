package modules

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cc-prompt/internal/config"
	"github.com/Veraticus/cc-prompt/internal/detect"
	"github.com/Veraticus/cc-prompt/internal/formatter"
	"github.com/Veraticus/cc-prompt/internal/probe"
)

// countingRunner implements probe.CommandRunner and counts invocations.
type countingRunner struct {
	responses map[string]string
	err       error
	calls     []string
}

func (r *countingRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	key := name + " " + strings.Join(args, " ")
	r.calls = append(r.calls, key)
	if r.err != nil {
		return nil, r.err
	}
	if out, ok := r.responses[key]; ok {
		return []byte(out), nil
	}
	return nil, fmt.Errorf("unexpected command %q", key)
}

// recordingLogger implements Logger for testing.
type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.messages = append(l.messages, fmt.Sprintf(format, v...))
}

// failingLister implements detect.Lister and always fails.
type failingLister struct{}

func (failingLister) List(string) ([]detect.Entry, error) {
	return nil, errors.New("permission denied")
}

func gccRunner() *countingRunner {
	return &countingRunner{responses: map[string]string{
		"cc --version":    "cc (GCC) 13.2.0\nCopyright (C) 2023 Free Software Foundation, Inc.\n",
		"cc -dumpversion": "13.2.0\n",
	}}
}

func memContext(t *testing.T, files ...string) (*Context, *countingRunner, *recordingLogger) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work", 0755))
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("/work", f), nil, 0644))
	}
	runner := gccRunner()
	logger := &recordingLogger{}
	return &Context{
		Ctx:    context.Background(),
		Dir:    "/work",
		Lister: &detect.FSLister{Fs: fs},
		Runner: runner,
		Logger: logger,
	}, runner, logger
}

func symbolConfig() config.CConfig {
	cfg := config.DefaultCConfig()
	cfg.Format = "via [$symbol]($style)"
	cfg.Symbol = "C "
	cfg.Style = "bold fg=149"
	return cfg
}

func assertSymbolSegments(t *testing.T, m *Module) {
	t.Helper()
	require.True(t, m.Present(), "module should be present, err: %v", m.Err)
	require.Len(t, m.Segments, 2)
	assert.Equal(t, "via ", m.Segments[0].Text)
	assert.Nil(t, m.Segments[0].Style)
	assert.Equal(t, "C ", m.Segments[1].Text)
	require.NotNil(t, m.Segments[1].Style)
	assert.True(t, m.Segments[1].Style.GetBold())
	assert.Equal(t, lipgloss.Color("149"), m.Segments[1].Style.GetForeground())
}

func TestCFolderWithoutCFiles(t *testing.T) {
	t.Parallel()

	ctx, runner, _ := memContext(t, "README.md", "main.go")
	m := C(ctx, config.DefaultCConfig())

	assert.False(t, m.Present())
	assert.Equal(t, NoMatch, m.State)
	assert.Equal(t, "", m.String())
	assert.Empty(t, runner.calls)
}

func TestCEmptyFolderAnyTemplate(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"", "via [$symbol]($style)", "$compiler_name $compiler_version", "[broken"} {
		ctx, runner, _ := memContext(t)
		cfg := config.DefaultCConfig()
		cfg.Format = format

		m := C(ctx, cfg)

		assert.False(t, m.Present(), "format %q", format)
		assert.Empty(t, runner.calls, "format %q", format)
	}
}

func TestCFolderWithCFile(t *testing.T) {
	t.Parallel()

	ctx, runner, _ := memContext(t, "any.c")
	m := C(ctx, symbolConfig())

	assertSymbolSegments(t, m)
	assert.Empty(t, runner.calls, "compiler must not be probed when not referenced")
	assert.Equal(t, []State{Unevaluated, Detecting, Matched, Resolving, Rendered}, m.Trace())
}

func TestCFolderWithHFile(t *testing.T) {
	t.Parallel()

	ctx, runner, _ := memContext(t, "any.h")
	m := C(ctx, symbolConfig())

	assertSymbolSegments(t, m)
	assert.Empty(t, runner.calls)
}

func TestCDefaultFormatProbesCompiler(t *testing.T) {
	t.Parallel()

	ctx, runner, _ := memContext(t, "main.c")
	m := C(ctx, config.DefaultCConfig())

	require.True(t, m.Present(), "err: %v", m.Err)
	assert.Equal(t, "via C v13.2.0-gcc ", m.Text())
	assert.ElementsMatch(t, []string{"cc --version", "cc -dumpversion"}, runner.calls)
}

func TestCOnlyReferencedProbeRuns(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		format   string
		version  string
		expected string
		calls    []string
	}{
		"name only": {
			format:   "[$compiler_name]($style)",
			expected: "gcc",
			calls:    []string{"cc --version"},
		},
		"version only with precision": {
			format:   "$compiler_version",
			version:  "${major}.${minor}",
			expected: "13.2",
			calls:    []string{"cc -dumpversion"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx, runner, _ := memContext(t, "any.c")
			cfg := config.DefaultCConfig()
			cfg.Format = tt.format
			if tt.version != "" {
				cfg.VersionFormat = tt.version
			}

			m := C(ctx, cfg)

			require.True(t, m.Present(), "err: %v", m.Err)
			assert.Equal(t, tt.expected, m.Text())
			assert.Equal(t, tt.calls, runner.calls)
		})
	}
}

func TestCRepeatedVariableRunsCompilerOnce(t *testing.T) {
	t.Parallel()

	ctx, runner, _ := memContext(t, "any.c")
	cfg := config.DefaultCConfig()
	cfg.Format = "[$compiler_name]($style) $compiler_version ($compiler_name)"

	m := C(ctx, cfg)

	require.True(t, m.Present(), "err: %v", m.Err)
	assert.Equal(t, "gcc v13.2.0 gcc", m.Text())
	assert.Equal(t, []string{"cc --version", "cc -dumpversion"}, runner.calls)
}

func TestCStyleVariableInsideStyleWord(t *testing.T) {
	t.Parallel()

	ctx, _, _ := memContext(t, "any.c")
	cfg := config.DefaultCConfig()
	cfg.Format = "[$symbol](fg:$style)"
	cfg.Style = "149"

	m := C(ctx, cfg)

	require.True(t, m.Present(), "err: %v", m.Err)
	require.Len(t, m.Segments, 1)
	require.NotNil(t, m.Segments[0].Style)
	assert.Equal(t, lipgloss.Color("149"), m.Segments[0].Style.GetForeground())
}

func TestCCustomCompilerCommand(t *testing.T) {
	t.Parallel()

	ctx, _, _ := memContext(t, "any.c")
	runner := &countingRunner{responses: map[string]string{
		"clang --version": "Ubuntu clang version 18.1.3\n",
	}}
	ctx.Runner = runner
	cfg := config.DefaultCConfig()
	cfg.Format = "$compiler_name"
	cfg.CompilerCommand = "clang"

	m := C(ctx, cfg)

	require.True(t, m.Present(), "err: %v", m.Err)
	assert.Equal(t, "clang", m.Text())
}

func TestCProbeFailureYieldsAbsent(t *testing.T) {
	t.Parallel()

	ctx, _, logger := memContext(t, "any.c")
	runner := &countingRunner{err: errors.New("exec: \"cc\": executable file not found in $PATH")}
	ctx.Runner = runner
	cfg := config.DefaultCConfig()
	cfg.Format = "via [$symbol$compiler_name]($style)"

	m := C(ctx, cfg)

	assert.False(t, m.Present())
	assert.Equal(t, Failed, m.State)
	assert.Nil(t, m.Segments, "no partial output")
	assert.Equal(t, "", m.String())
	require.ErrorIs(t, m.Err, probe.ErrProbeFailure)
	require.Len(t, logger.messages, 1)
	assert.Contains(t, logger.messages[0], "module `c`")
	assert.Len(t, runner.calls, 1)
}

func TestCUnparseableVersionYieldsAbsent(t *testing.T) {
	t.Parallel()

	ctx, _, logger := memContext(t, "any.c")
	ctx.Runner = &countingRunner{responses: map[string]string{"cc -dumpversion": "unknown\n"}}
	cfg := config.DefaultCConfig()
	cfg.Format = "$compiler_version"

	m := C(ctx, cfg)

	assert.Equal(t, Failed, m.State)
	assert.ErrorIs(t, m.Err, formatter.ErrVersion)
	require.Len(t, logger.messages, 1)
	assert.Equal(t, 1, strings.Count(logger.messages[0], "module `c`"), logger.messages[0])
}

func TestCMalformedTemplateYieldsAbsent(t *testing.T) {
	t.Parallel()

	ctx, runner, logger := memContext(t, "any.c")
	cfg := config.DefaultCConfig()
	cfg.Format = "via [$symbol($style)"

	m := C(ctx, cfg)

	assert.Equal(t, Failed, m.State)
	assert.ErrorIs(t, m.Err, formatter.ErrParse)
	assert.Empty(t, runner.calls)
	assert.NotEmpty(t, logger.messages)
	assert.Equal(t, []State{Unevaluated, Detecting, Matched, Resolving, Failed}, m.Trace())
}

func TestCInvalidStyleYieldsAbsent(t *testing.T) {
	t.Parallel()

	ctx, _, _ := memContext(t, "any.c")
	cfg := symbolConfig()
	cfg.Style = "shiny"

	m := C(ctx, cfg)

	assert.Equal(t, Failed, m.State)
	assert.Error(t, m.Err)
}

func TestCEmptyFormatRendersNothing(t *testing.T) {
	t.Parallel()

	ctx, _, _ := memContext(t, "any.c")
	cfg := config.DefaultCConfig()
	cfg.Format = ""

	m := C(ctx, cfg)

	assert.Equal(t, Rendered, m.State)
	assert.Empty(t, m.Segments)
	assert.Equal(t, "", m.String())
}

func TestCListingFailureIsNoMatch(t *testing.T) {
	t.Parallel()

	ctx, _, logger := memContext(t)
	ctx.Lister = failingLister{}

	m := C(ctx, config.DefaultCConfig())

	assert.Equal(t, NoMatch, m.State)
	assert.Nil(t, m.Err)
	require.Len(t, logger.messages, 1)
	assert.Contains(t, logger.messages[0], detect.ErrDetectionUnavailable.Error())
}

func TestCDisabled(t *testing.T) {
	t.Parallel()

	ctx, _, _ := memContext(t, "any.c")
	cfg := config.DefaultCConfig()
	cfg.Disabled = true

	m := C(ctx, cfg)

	assert.False(t, m.Present())
	assert.Equal(t, []State{Unevaluated, NoMatch}, m.Trace())
}

func TestCEmptyDetectionSpecNeverMatches(t *testing.T) {
	t.Parallel()

	ctx, _, _ := memContext(t, "any.c", "Makefile")
	cfg := symbolConfig()
	cfg.DetectExtensions = nil

	m := C(ctx, cfg)

	assert.Equal(t, NoMatch, m.State)
}

func TestCDetectFilesAndFolders(t *testing.T) {
	t.Parallel()

	ctx, _, _ := memContext(t, "Makefile")
	cfg := symbolConfig()
	cfg.DetectExtensions = nil
	cfg.DetectFiles = []string{"Makefile"}

	assertSymbolSegments(t, C(ctx, cfg))

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work/include", 0755))
	ctx.Lister = &detect.FSLister{Fs: fs}
	cfg.DetectFiles = nil
	cfg.DetectFolders = []string{"include"}

	assertSymbolSegments(t, C(ctx, cfg))
}

func TestCIdempotent(t *testing.T) {
	t.Parallel()

	ctx, _, _ := memContext(t, "any.c")
	cfg := config.DefaultCConfig()

	first := C(ctx, cfg)
	second := C(ctx, cfg)

	require.True(t, first.Present())
	assert.Equal(t, first.Segments, second.Segments)
	assert.Equal(t, first.String(), second.String())
}

func TestCRealFilesystem(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		files   []string
		present bool
	}{
		"folder without c files": {files: nil, present: false},
		"folder with c file":      {files: []string{"any.c"}, present: true},
		"folder with h file":      {files: []string{"any.h"}, present: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for _, f := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, f), nil, 0644))
			}
			ctx := NewContext(dir)
			ctx.Runner = gccRunner()

			m := C(ctx, symbolConfig())

			assert.Equal(t, tt.present, m.Present())
			if tt.present {
				assertSymbolSegments(t, m)
			}
		})
	}
}

func TestModuleWidth(t *testing.T) {
	t.Parallel()

	ctx, _, _ := memContext(t, "any.c")
	cfg := symbolConfig()
	cfg.Symbol = "中 "

	m := C(ctx, cfg)

	require.True(t, m.Present())
	assert.Equal(t, "via 中 ", m.Text())
	assert.Equal(t, 4+2+1, m.Width())
}

func TestRenderRegistry(t *testing.T) {
	t.Parallel()

	ctx, _, _ := memContext(t, "any.c")
	cfg := &config.Config{C: symbolConfig()}

	m, err := Render("c", ctx, cfg)
	require.NoError(t, err)
	assertSymbolSegments(t, m)

	_, err = Render("rust", ctx, cfg)
	assert.ErrorIs(t, err, ErrUnknownModule)
	assert.Equal(t, []string{"c"}, Names())
}

func TestStandardLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewStandardLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.Printf("module `%s`: %v", "c", "boom")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "module `c`: boom")
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "rendered", Rendered.String())
	assert.Equal(t, "no-match", NoMatch.String())
	assert.Equal(t, "unknown", State(99).String())
}
