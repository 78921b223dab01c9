// Package style turns style strings such as "bold fg:149" into lipgloss styles.
package style

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrStyle is returned for style strings that contain unknown words or colours.
var ErrStyle = errors.New("invalid style")

// ansiNames maps colour names onto the 16 base ANSI colours.
var ansiNames = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"purple":  5,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

const brightOffset = 8

// Parse builds a style from a whitespace separated list of words.
//
// Recognised words are the attributes bold, italic, underline, dimmed,
// inverted, blink, strikethrough and none, the prefixed colours fg:C, fg=C,
// bg:C and bg=C, and a bare colour which sets the foreground. Colours may be
// an ANSI number (0-255), a #rrggbb hex value or a name such as "red" or
// "bright-blue". An empty string yields the zero style.
func Parse(spec string) (lipgloss.Style, error) {
	s := lipgloss.NewStyle()
	for _, word := range strings.Fields(spec) {
		lower := strings.ToLower(word)
		switch lower {
		case "bold":
			s = s.Bold(true)
		case "italic":
			s = s.Italic(true)
		case "underline":
			s = s.Underline(true)
		case "dimmed":
			s = s.Faint(true)
		case "inverted":
			s = s.Reverse(true)
		case "blink":
			s = s.Blink(true)
		case "strikethrough":
			s = s.Strikethrough(true)
		case "none":
			s = reset()
		default:
			var err error
			if s, err = applyColor(s, lower); err != nil {
				return lipgloss.NewStyle(), err
			}
		}
	}
	return s, nil
}

// Inherit combines inner with the enclosing outer style. Attributes set on
// inner win; everything else is taken from outer.
func Inherit(inner, outer lipgloss.Style) lipgloss.Style {
	return inner.Inherit(outer)
}

func applyColor(s lipgloss.Style, word string) (lipgloss.Style, error) {
	target, value := "fg", word
	for _, prefix := range []string{"fg:", "fg=", "bg:", "bg="} {
		if strings.HasPrefix(word, prefix) {
			target, value = prefix[:2], word[len(prefix):]
			break
		}
	}

	color, err := parseColor(value)
	if err != nil {
		return s, err
	}
	if target == "bg" {
		return s.Background(color), nil
	}
	return s.Foreground(color), nil
}

func parseColor(value string) (lipgloss.TerminalColor, error) {
	if value == "none" {
		return lipgloss.NoColor{}, nil
	}
	if strings.HasPrefix(value, "#") {
		if len(value) != len("#rrggbb") {
			return nil, fmt.Errorf("%w: hex colour %q", ErrStyle, value)
		}
		if _, err := strconv.ParseUint(value[1:], 16, 32); err != nil {
			return nil, fmt.Errorf("%w: hex colour %q", ErrStyle, value)
		}
		return lipgloss.Color(value), nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		const maxANSI = 255
		if n < 0 || n > maxANSI {
			return nil, fmt.Errorf("%w: colour %d out of range", ErrStyle, n)
		}
		return lipgloss.Color(strconv.Itoa(n)), nil
	}

	name, bright := strings.CutPrefix(value, "bright-")
	code, ok := ansiNames[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown word %q", ErrStyle, value)
	}
	if bright {
		code += brightOffset
	}
	return lipgloss.Color(strconv.Itoa(code)), nil
}

// reset returns a style with every attribute explicitly switched off so that
// it is not overridden by an enclosing style.
func reset() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(false).
		Italic(false).
		Underline(false).
		Faint(false).
		Reverse(false).
		Blink(false).
		Strikethrough(false).
		Foreground(lipgloss.NoColor{}).
		Background(lipgloss.NoColor{})
}
