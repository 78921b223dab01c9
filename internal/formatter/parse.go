// Package formatter parses prompt format strings and resolves them into
// styled segments.
//
// A format string is made of literal text, variables ($name or ${name}),
// style scopes ([inner](style)) and conditional groups ((inner)). A backslash
// escapes one of the characters [ ] ( ) $ \.
package formatter

import "strings"

// TokenKind identifies the kind of a template token.
type TokenKind int

const (
	// TokenLiteral is plain text.
	TokenLiteral TokenKind = iota
	// TokenVariable is a $name reference.
	TokenVariable
	// TokenStyle is a [inner](style) scope.
	TokenStyle
	// TokenGroup is a (inner) group, shown only if a variable inside has text.
	TokenGroup
)

// Token is one node of a parsed template.
type Token struct {
	Kind TokenKind
	// Text is the literal text or the variable name.
	Text string
	// Children holds the nested tokens of a style scope or group.
	Children []Token
	// Style holds the literal and variable tokens of a style scope's style string.
	Style []Token
}

// Template is a parsed format string.
type Template struct {
	tokens []Token
}

// Parse parses src into a Template.
func Parse(src string) (*Template, error) {
	p := &parser{src: src}
	tokens, err := p.sequence(0)
	if err != nil {
		return nil, err
	}
	return &Template{tokens: tokens}, nil
}

// Tokens returns the top level tokens of the template.
func (t *Template) Tokens() []Token {
	return t.tokens
}

// Variables returns the names of all variables referenced anywhere in the
// template, including style strings, in order of first appearance.
func (t *Template) Variables() []string {
	seen := map[string]bool{}
	var names []string
	var walk func([]Token)
	walk = func(tokens []Token) {
		for _, tok := range tokens {
			switch tok.Kind {
			case TokenVariable:
				if !seen[tok.Text] {
					seen[tok.Text] = true
					names = append(names, tok.Text)
				}
			case TokenStyle:
				walk(tok.Children)
				walk(tok.Style)
			case TokenGroup:
				walk(tok.Children)
			}
		}
	}
	walk(t.tokens)
	return names
}

// References reports whether the template refers to the variable name.
func (t *Template) References(name string) bool {
	for _, v := range t.Variables() {
		if v == name {
			return true
		}
	}
	return false
}

const (
	closeNone  = 0
	closeScope = ']'
	closeGroup = ')'
)

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

// sequence parses tokens until the closing byte (or end of input when closing is closeNone).
func (p *parser) sequence(closing byte) ([]Token, error) {
	var tokens []Token
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, Token{Kind: TokenLiteral, Text: text.String()})
			text.Reset()
		}
	}

	for !p.eof() {
		c := p.src[p.pos]
		switch c {
		case '\\':
			r, err := p.escape()
			if err != nil {
				return nil, err
			}
			text.WriteByte(r)
		case '$':
			name, err := p.variable()
			if err != nil {
				return nil, err
			}
			flush()
			tokens = append(tokens, Token{Kind: TokenVariable, Text: name})
		case '[':
			flush()
			tok, err := p.scope()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case '(':
			flush()
			p.pos++
			children, err := p.sequence(closeGroup)
			if err != nil {
				return nil, err
			}
			p.pos++
			tokens = append(tokens, Token{Kind: TokenGroup, Children: children})
		case ']', ')':
			if c != closing {
				return nil, parseError(p.src, p.pos, "unexpected %q", c)
			}
			flush()
			return tokens, nil
		default:
			text.WriteByte(c)
			p.pos++
		}
	}

	if closing != closeNone {
		return nil, parseError(p.src, p.pos, "missing %q", closing)
	}
	flush()
	return tokens, nil
}

func (p *parser) escape() (byte, error) {
	start := p.pos
	p.pos++
	if p.eof() {
		return 0, parseError(p.src, start, "dangling escape")
	}
	c := p.src[p.pos]
	if !strings.ContainsRune(`[]()$\`, rune(c)) {
		return 0, parseError(p.src, start, "unknown escape \\%c", c)
	}
	p.pos++
	return c, nil
}

func (p *parser) variable() (string, error) {
	start := p.pos
	p.pos++
	braced := !p.eof() && p.src[p.pos] == '{'
	if braced {
		p.pos++
	}

	nameStart := p.pos
	for !p.eof() && isNameByte(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[nameStart:p.pos]
	if name == "" {
		return "", parseError(p.src, start, "expected variable name after $")
	}

	if braced {
		if p.eof() || p.src[p.pos] != '}' {
			return "", parseError(p.src, start, "missing '}' in ${%s}", name)
		}
		p.pos++
	}
	return name, nil
}

func (p *parser) scope() (Token, error) {
	p.pos++
	children, err := p.sequence(closeScope)
	if err != nil {
		return Token{}, err
	}
	p.pos++

	if p.eof() || p.src[p.pos] != '(' {
		return Token{}, parseError(p.src, p.pos, "style scope must be followed by (style)")
	}
	p.pos++
	styleTokens, err := p.styleString()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenStyle, Children: children, Style: styleTokens}, nil
}

// styleString parses the body of (style) after a scope, up to and including ')'.
func (p *parser) styleString() ([]Token, error) {
	start := p.pos
	var tokens []Token
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, Token{Kind: TokenLiteral, Text: text.String()})
			text.Reset()
		}
	}

	for !p.eof() {
		c := p.src[p.pos]
		switch c {
		case ')':
			p.pos++
			flush()
			return tokens, nil
		case '$':
			name, err := p.variable()
			if err != nil {
				return nil, err
			}
			flush()
			tokens = append(tokens, Token{Kind: TokenVariable, Text: name})
		case '(', '[', ']', '\\':
			return nil, parseError(p.src, p.pos, "unexpected %q in style", c)
		default:
			text.WriteByte(c)
			p.pos++
		}
	}
	return nil, parseError(p.src, start, "unclosed style")
}

func isNameByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
