// Package modules builds prompt segments for detected project kinds.
package modules

import (
	"context"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Veraticus/cc-prompt/internal/detect"
	"github.com/Veraticus/cc-prompt/internal/formatter"
	"github.com/Veraticus/cc-prompt/internal/probe"
)

// State is a step of a module's single rendering pass.
type State int

// States of a rendering pass. NoMatch, Rendered and Failed are terminal.
const (
	Unevaluated State = iota
	Detecting
	NoMatch
	Matched
	Resolving
	Rendered
	Failed
)

var stateNames = map[State]string{
	Unevaluated: "unevaluated",
	Detecting:   "detecting",
	NoMatch:     "no-match",
	Matched:     "matched",
	Resolving:   "resolving",
	Rendered:    "rendered",
	Failed:      "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Context holds the collaborators of one rendering pass.
type Context struct {
	Ctx    context.Context
	Dir    string
	Lister detect.Lister
	Runner probe.CommandRunner
	Logger Logger
}

// NewContext returns a Context for dir using the operating system.
func NewContext(dir string) *Context {
	return &Context{
		Ctx:    context.Background(),
		Dir:    dir,
		Lister: detect.NewOSLister(),
	}
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) lister() detect.Lister {
	if c.Lister == nil {
		return detect.NewOSLister()
	}
	return c.Lister
}

func (c *Context) logger() Logger {
	if c.Logger == nil {
		return discardLogger{}
	}
	return c.Logger
}

// Module is the outcome of rendering one module.
type Module struct {
	Name     string
	State    State
	Segments []formatter.Segment
	// Err records why the module failed; it is never shown in the prompt.
	Err   error
	trace []State
}

func newModule(name string) *Module {
	return &Module{Name: name, State: Unevaluated, trace: []State{Unevaluated}}
}

func (m *Module) transition(s State) {
	m.State = s
	m.trace = append(m.trace, s)
}

func (m *Module) fail(ctx *Context, err error) *Module {
	m.Err = err
	m.Segments = nil
	m.transition(Failed)
	ctx.logger().Printf("Error in module `%s`: %v", m.Name, err)
	return m
}

// Trace returns the states the module passed through, in order.
func (m *Module) Trace() []State {
	return append([]State(nil), m.trace...)
}

// Present reports whether the module produced a segment for the prompt.
func (m *Module) Present() bool {
	return m.State == Rendered
}

// String renders the segments with their styles, or "" when absent.
func (m *Module) String() string {
	if !m.Present() {
		return ""
	}
	var sb strings.Builder
	for _, seg := range m.Segments {
		sb.WriteString(seg.Render())
	}
	return sb.String()
}

// Text returns the segments without styling.
func (m *Module) Text() string {
	var sb strings.Builder
	for _, seg := range m.Segments {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// Width returns the display width of the module's text in terminal cells.
func (m *Module) Width() int {
	return runewidth.StringWidth(m.Text())
}
