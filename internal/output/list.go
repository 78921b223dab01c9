// Package output renders human readable reports for the CLI.
package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/cc-prompt/internal/shared"
)

// ListRenderer formats titled lists and key/value tables.
type ListRenderer struct {
	titleStyle  lipgloss.Style
	itemStyle   lipgloss.Style
	bulletStyle lipgloss.Style
	bullet      string
	indent      string
}

// NewListRenderer creates a new list renderer with default styling.
func NewListRenderer() *ListRenderer {
	return &ListRenderer{
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(shared.Mauve),
		itemStyle:   lipgloss.NewStyle().Foreground(shared.Text),
		bulletStyle: lipgloss.NewStyle().Foreground(shared.Sky),
		bullet:      "•",
		indent:      "  ",
	}
}

// Render formats a title and list of items. An empty list renders as "(none)".
func (l *ListRenderer) Render(title string, items []string) string {
	var sb strings.Builder
	l.writeTitle(&sb, title)

	if len(items) == 0 {
		sb.WriteString(l.indent)
		sb.WriteString(shared.MutedStyle.Render("(none)"))
		sb.WriteString("\n")
	}
	for _, item := range items {
		sb.WriteString(l.indent)
		sb.WriteString(l.bulletStyle.Render(l.bullet))
		sb.WriteString(" ")
		sb.WriteString(l.itemStyle.Render(item))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderMap formats a title and key/value pairs, sorted by key.
func (l *ListRenderer) RenderMap(title string, items map[string]string) string {
	var sb strings.Builder
	l.writeTitle(&sb, title)

	keys := make([]string, 0, len(items))
	maxKeyLen := 0
	for key := range items {
		keys = append(keys, key)
		maxKeyLen = max(maxKeyLen, len(key))
	}
	sort.Strings(keys)

	for _, key := range keys {
		sb.WriteString(l.indent)
		sb.WriteString(l.bulletStyle.Render(fmt.Sprintf("%-*s", maxKeyLen, key)))
		sb.WriteString(": ")
		sb.WriteString(l.itemStyle.Render(items[key]))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (l *ListRenderer) writeTitle(sb *strings.Builder, title string) {
	if title == "" {
		return
	}
	sb.WriteString(l.titleStyle.Render(title))
	sb.WriteString("\n")
}
