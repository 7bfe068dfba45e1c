package browse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/tabula/internal/render"
	"github.com/sadopc/tabula/internal/schema"
	"github.com/sahilm/fuzzy"
)

// Item is one browsable table with its schema.
type Item struct {
	Name   string
	Schema *schema.Schema
}

// items implements fuzzy.Source over item names.
type items []Item

func (it items) String(i int) string { return it[i].Name }
func (it items) Len() int            { return len(it) }

// Model is the interactive schema browser.
type Model struct {
	all      items
	filtered items
	cursor   int
	offset   int
	detail   []string // rendered lines of the selected schema
	scroll   int      // detail pane scroll offset
	filter   textinput.Model
	style    *render.Style
	width    int
	height   int
}

var (
	listBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	detailBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("61")).
			Bold(true)
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// New creates a browser over the given tables. Items are shown sorted by name.
func New(tables []Item, style *render.Style) Model {
	sorted := make(items, len(tables))
	copy(sorted, tables)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	ti := textinput.New()
	ti.Placeholder = "Filter tables..."
	ti.Prompt = "/ "
	ti.Focus()

	m := Model{
		all:    sorted,
		filter: ti,
		style:  style,
	}
	m.applyFilter()
	m.renderDetail()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles browser messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
				m.ensureVisible()
				m.renderDetail()
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				m.ensureVisible()
				m.renderDetail()
			}
			return m, nil
		case "pgup":
			m.scroll -= m.detailHeight()
			if m.scroll < 0 {
				m.scroll = 0
			}
			return m, nil
		case "pgdown":
			m.scroll += m.detailHeight()
			if max := len(m.detail) - m.detailHeight(); m.scroll > max {
				m.scroll = max
			}
			if m.scroll < 0 {
				m.scroll = 0
			}
			return m, nil
		case "home":
			m.cursor = 0
			m.offset = 0
			m.renderDetail()
			return m, nil
		case "end":
			if len(m.filtered) > 0 {
				m.cursor = len(m.filtered) - 1
				m.ensureVisible()
				m.renderDetail()
			}
			return m, nil
		}

		// Everything else edits the filter.
		prev := m.filter.Value()
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		if m.filter.Value() != prev {
			m.cursor = 0
			m.offset = 0
			m.applyFilter()
			m.renderDetail()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

// View renders the two-pane browser.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	listWidth := m.listWidth()
	detailWidth := m.width - listWidth - 6
	if detailWidth < 20 {
		detailWidth = 20
	}

	left := m.viewList(listWidth)
	right := m.viewDetail(detailWidth)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	help := mutedStyle.Render("  up/down:select  pgup/pgdn:scroll  type:filter  esc:quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}

func (m Model) viewList(width int) string {
	visible := m.listHeight()
	end := m.offset + visible
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	lines := []string{m.filter.View(), ""}
	for i := m.offset; i < end; i++ {
		name := truncate(m.filtered[i].Name, width-2)
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render(" "+pad(name, width-2)+" "))
		} else {
			lines = append(lines, " "+name)
		}
	}
	if len(m.filtered) == 0 {
		lines = append(lines, mutedStyle.Render(" no tables match"))
	}
	for len(lines) < visible+2 {
		lines = append(lines, "")
	}
	lines = append(lines, mutedStyle.Render(fmt.Sprintf(" %d/%d tables", len(m.filtered), len(m.all))))

	return listBorder.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) viewDetail(width int) string {
	visible := m.detailHeight()
	start := m.scroll
	if start > len(m.detail) {
		start = len(m.detail)
	}
	end := start + visible
	if end > len(m.detail) {
		end = len(m.detail)
	}

	lines := make([]string, 0, visible)
	for _, l := range m.detail[start:end] {
		lines = append(lines, truncate(l, width-2))
	}
	if len(m.detail) == 0 {
		lines = append(lines, mutedStyle.Render("select a table"))
	}
	for len(lines) < visible {
		lines = append(lines, "")
	}

	return detailBorder.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) listWidth() int {
	w := m.width / 3
	if w < 24 {
		w = 24
	}
	if w > 48 {
		w = 48
	}
	return w
}

func (m Model) listHeight() int {
	// Filter input, blank line, count line, border, help line.
	h := m.height - 7
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) detailHeight() int {
	h := m.height - 5
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) ensureVisible() {
	visible := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m *Model) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		m.filtered = m.all
		return
	}
	matches := fuzzy.FindFrom(strings.ToLower(query), m.all)
	m.filtered = make(items, 0, len(matches))
	for _, match := range matches {
		m.filtered = append(m.filtered, m.all[match.Index])
	}
}

func (m *Model) renderDetail() {
	m.scroll = 0
	if m.cursor >= len(m.filtered) {
		m.detail = nil
		return
	}
	it := m.filtered[m.cursor]
	block := render.Table(it.Name, it.Schema, m.style, render.Options{})
	m.detail = strings.Split(block, "\n")
}

// Run starts the browser and blocks until the user quits.
func Run(tables []Item, style *render.Style) error {
	p := tea.NewProgram(New(tables, style), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return s[:width-1] + "…"
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
