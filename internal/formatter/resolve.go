package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/cc-prompt/internal/style"
)

// maxMetaDepth bounds meta variables that expand into further meta variables.
const maxMetaDepth = 8

// Segment is one styled piece of rendered text. A nil Style means unstyled.
type Segment struct {
	Text  string
	Style *lipgloss.Style
}

// Render returns the segment text with its style applied.
func (s Segment) Render() string {
	if s.Style == nil {
		return s.Text
	}
	return s.Style.Render(s.Text)
}

// Lookup is the answer of a Provider for one variable: not applicable,
// a value, or an error.
type Lookup struct {
	value   string
	err     error
	applies bool
}

// Skip reports that the provider does not handle the variable.
func Skip() Lookup {
	return Lookup{}
}

// Found returns a lookup holding value.
func Found(value string) Lookup {
	return Lookup{value: value, applies: true}
}

// Failed returns a lookup holding err.
func Failed(err error) Lookup {
	return Lookup{err: err, applies: true}
}

// Applies reports whether the provider handled the variable.
func (l Lookup) Applies() bool {
	return l.applies
}

// Provider resolves a variable name.
type Provider func(name string) Lookup

func (p Provider) lookup(name string) Lookup {
	if p == nil {
		return Skip()
	}
	return p(name)
}

// Resolve renders the template into segments.
//
// Every variable is offered to meta, then style, then value; the first
// provider whose Lookup applies decides. Meta values are parsed as nested
// templates, style values name a style rather than text and render nothing in
// text position, and value answers are emitted as text. Variables no provider
// handles render empty. Providers are only called for variables that occur in
// the template, at most once per variable name for a single call, and any
// provider error aborts resolution.
func (t *Template) Resolve(meta, styleFn, value Provider) ([]Segment, error) {
	r := &resolver{meta: meta, style: styleFn, value: value, answers: map[string]answer{}}
	segments, _, err := r.render(t.tokens, nil, 0)
	if err != nil {
		return nil, err
	}
	if segments == nil {
		segments = []Segment{}
	}
	return segments, nil
}

type source int

const (
	fromNone source = iota
	fromMeta
	fromStyle
	fromValue
)

// answer is the first applicable lookup for a variable and the provider that gave it.
type answer struct {
	from   source
	lookup Lookup
}

type resolver struct {
	meta    Provider
	style   Provider
	value   Provider
	answers map[string]answer
}

// resolve offers name to meta, style and value in turn. Answers are kept for
// the rest of the pass so no provider sees the same name twice.
func (r *resolver) resolve(name string) answer {
	if a, ok := r.answers[name]; ok {
		return a
	}
	a := answer{from: fromNone, lookup: Skip()}
	for _, c := range []struct {
		from source
		p    Provider
	}{{fromMeta, r.meta}, {fromStyle, r.style}, {fromValue, r.value}} {
		if l := c.p.lookup(name); l.Applies() {
			a = answer{from: c.from, lookup: l}
			break
		}
	}
	r.answers[name] = a
	return a
}

// render returns the segments for tokens and whether any variable produced text.
func (r *resolver) render(tokens []Token, inherited *lipgloss.Style, depth int) ([]Segment, bool, error) {
	var segments []Segment
	shown := false

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenLiteral:
			segments = appendText(segments, tok.Text, inherited)
		case TokenVariable:
			out, hasText, err := r.variable(tok.Text, inherited, depth)
			if err != nil {
				return nil, false, err
			}
			segments = append(segments, out...)
			shown = shown || hasText
		case TokenStyle:
			scoped, err := r.scopeStyle(tok.Style, inherited)
			if err != nil {
				return nil, false, err
			}
			out, hasText, err := r.render(tok.Children, scoped, depth)
			if err != nil {
				return nil, false, err
			}
			segments = append(segments, out...)
			shown = shown || hasText
		case TokenGroup:
			out, hasText, err := r.render(tok.Children, inherited, depth)
			if err != nil {
				return nil, false, err
			}
			if hasText {
				segments = append(segments, out...)
				shown = true
			}
		}
	}
	return segments, shown, nil
}

func (r *resolver) variable(name string, inherited *lipgloss.Style, depth int) ([]Segment, bool, error) {
	a := r.resolve(name)
	if a.lookup.err != nil {
		return nil, false, fmt.Errorf("resolving $%s: %w", name, a.lookup.err)
	}

	switch a.from {
	case fromMeta:
		if depth >= maxMetaDepth {
			return nil, false, fmt.Errorf("resolving $%s: meta variables nested too deeply", name)
		}
		nested, err := Parse(a.lookup.value)
		if err != nil {
			return nil, false, fmt.Errorf("resolving $%s: %w", name, err)
		}
		out, _, err := r.render(nested.tokens, inherited, depth+1)
		if err != nil {
			return nil, false, err
		}
		return out, a.lookup.value != "", nil
	case fromValue:
		return appendText(nil, a.lookup.value, inherited), a.lookup.value != "", nil
	default:
		// Style answers name a style, not text.
		return nil, false, nil
	}
}

// scopeStyle evaluates a style string and combines it with the enclosing style.
func (r *resolver) scopeStyle(tokens []Token, inherited *lipgloss.Style) (*lipgloss.Style, error) {
	var spec strings.Builder
	for _, tok := range tokens {
		if tok.Kind == TokenLiteral {
			spec.WriteString(tok.Text)
			continue
		}
		text, err := r.styleVariable(tok.Text)
		if err != nil {
			return nil, err
		}
		spec.WriteString(text)
	}

	parsed, err := style.Parse(spec.String())
	if err != nil {
		return nil, fmt.Errorf("resolving style %q: %w", strings.TrimSpace(spec.String()), err)
	}
	if inherited != nil {
		parsed = style.Inherit(parsed, *inherited)
	}
	return &parsed, nil
}

// styleVariable resolves a variable inside a style string to its raw text.
func (r *resolver) styleVariable(name string) (string, error) {
	a := r.resolve(name)
	if a.lookup.err != nil {
		return "", fmt.Errorf("resolving $%s: %w", name, a.lookup.err)
	}
	return a.lookup.value, nil
}

func appendText(segments []Segment, text string, s *lipgloss.Style) []Segment {
	if text == "" {
		return segments
	}
	return append(segments, Segment{Text: text, Style: s})
}
