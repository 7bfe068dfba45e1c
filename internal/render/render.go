// Package render turns schema values into terminal output: a styled
// column listing, an indentation helper for nesting blocks, and syntax
// highlighting for generated SQL.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tabula/internal/schema"
)

// Style holds the lipgloss styles for every rendered element. The zero
// value renders everything unstyled, which is what plain output uses.
type Style struct {
	Title       lipgloss.Style
	ColumnName  lipgloss.Style
	ColumnType  lipgloss.Style
	Description lipgloss.Style

	SQLKeyword  lipgloss.Style
	SQLType     lipgloss.Style
	SQLString   lipgloss.Style
	SQLNumber   lipgloss.Style
	SQLComment  lipgloss.Style
	SQLOperator lipgloss.Style
}

// DefaultStyle returns the colored palette.
func DefaultStyle() *Style {
	return &Style{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		ColumnName:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ColumnType:  lipgloss.NewStyle().Foreground(lipgloss.Color("110")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true),

		SQLKeyword:  lipgloss.NewStyle().Foreground(lipgloss.Color("211")).Bold(true),
		SQLType:     lipgloss.NewStyle().Foreground(lipgloss.Color("110")),
		SQLString:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		SQLNumber:   lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
		SQLComment:  lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true),
		SQLOperator: lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
	}
}

// PlainStyle returns a palette with no styling at all, for pipes and
// NO_COLOR environments.
func PlainStyle() *Style { return &Style{} }

// Options adjusts listing output.
type Options struct {
	// MaxDescriptionWidth truncates descriptions longer than this; 0
	// disables truncation.
	MaxDescriptionWidth int
}

// Table renders a titled, column-aligned listing of the schema.
func Table(title string, s *schema.Schema, st *Style, opts Options) string {
	if st == nil {
		st = PlainStyle()
	}

	var b strings.Builder
	b.WriteString(st.Title.Render(title))
	b.WriteString(fmt.Sprintf("  (%d columns)", s.Len()))

	columns := s.Columns()
	nameWidth, typeWidth := 0, 0
	for _, col := range columns {
		nameWidth = max(nameWidth, len(col.Name))
		typeWidth = max(typeWidth, len(col.Type.String()))
	}

	for _, col := range columns {
		desc := col.Description.String()
		if opts.MaxDescriptionWidth > 0 && len(desc) > opts.MaxDescriptionWidth {
			desc = desc[:opts.MaxDescriptionWidth-1] + "…"
		}

		b.WriteString("\n  ")
		b.WriteString(st.ColumnName.Render(pad(col.Name, nameWidth)))
		b.WriteString("  ")
		b.WriteString(st.ColumnType.Render(pad(col.Type.String(), typeWidth)))
		if desc != "" {
			b.WriteString("  ")
			b.WriteString(st.Description.Render(desc))
		}
	}
	return b.String()
}

// Indent prefixes every non-empty line of block with the given number of
// spaces.
func Indent(block string, spaces int) string {
	if block == "" {
		return ""
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
