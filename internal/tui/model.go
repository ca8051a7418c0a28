package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"protogen/internal/header"
)

// Pane is one of the inspector's two screens.
type Pane int

const (
	PaneConstants Pane = iota
	PaneHeader
)

// chrome is the number of lines used around the active pane (title, tabs,
// detail, help, padding).
const chrome = 12

const fixedRows = 3

// Model is the Bubbletea model for the header inspector.
type Model struct {
	source   string
	header   *header.Header
	findings []header.Finding

	pane   Pane
	width  int
	height int

	// Components
	table    table.Model
	viewport viewport.Model
	keys     KeyMap
	help     help.Model
	styles   Styles
}

// NewModel builds an inspector over h. findings are shown under the table.
func NewModel(source string, h *header.Header, findings []header.Finding) Model {
	styles := DefaultStyles()

	rows := []table.Row{
		{"kVersion", h.Version},
		{"kBaseUuid", h.BaseUUID},
		{"kServiceMainUuid", h.ServiceUUID},
	}
	for _, c := range h.Constants {
		rows = append(rows, table.Row{c.Identifier, c.UUID})
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Constant", Width: identifierWidth(rows)},
			{Title: "Value", Width: 38},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 15)),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true)
	ts.Selected = styles.Selected
	t.SetStyles(ts)

	vp := viewport.New(80, 15)
	vp.SetContent(h.Text())

	return Model{
		source:   source,
		header:   h,
		findings: findings,
		pane:     PaneConstants,
		table:    t,
		viewport: vp,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		styles:   styles,
	}
}

func identifierWidth(rows []table.Row) int {
	w := len("Constant")
	for _, r := range rows {
		w = max(w, len(r[0]))
	}
	return w + 2
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles window resizes and keys, and forwards the rest to the
// active pane.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		body := max(msg.Height-chrome, 3)
		m.table.SetHeight(min(len(m.table.Rows())+1, body))
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = body
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Switch):
			if m.pane == PaneConstants {
				m.pane = PaneHeader
				m.table.Blur()
			} else {
				m.pane = PaneConstants
				m.table.Focus()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.pane == PaneConstants {
		m.table, cmd = m.table.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// View renders the inspector.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTitleBar())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.pane {
	case PaneConstants:
		b.WriteString(m.table.View())
		b.WriteString("\n\n")
		b.WriteString(m.viewDetail())
	case PaneHeader:
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)))
	}

	helpView := m.styles.Help.Render(m.help.View(m.keys))
	return m.styles.App.Render(b.String() + "\n" + helpView)
}

func (m Model) renderTitleBar() string {
	parts := []string{
		m.styles.Title.Render("BLE Protocol"),
		m.styles.Muted.Render(m.source),
		m.styles.Highlight.Render("v" + m.header.Version),
	}
	if n := len(m.findings); n > 0 {
		parts = append(parts, m.styles.Warning.Render(fmt.Sprintf("%d warning(s)", n)))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderTabs() string {
	tabs := []struct {
		title string
		pane  Pane
	}{
		{fmt.Sprintf("Constants (%d)", len(m.table.Rows())), PaneConstants},
		{"Header", PaneHeader},
	}
	rendered := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.pane == m.pane {
			rendered = append(rendered, m.styles.TabActive.Render(t.title))
		} else {
			rendered = append(rendered, m.styles.Tab.Render(t.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// viewDetail shows the selected constant and the findings for it.
func (m Model) viewDetail() string {
	row := m.table.SelectedRow()
	if row == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderField("Identifier", row[0]))
	b.WriteString(m.renderField("Value", row[1]))

	if c, ok := m.selectedConstant(); ok {
		b.WriteString(m.renderField("Name", c.Name))
		for _, f := range m.findings {
			if strings.Contains(f.Field, fmt.Sprintf("%q", c.Name)) {
				b.WriteString(m.styles.Warning.Render("! "+f.Message) + "\n")
			}
		}
	}
	return b.String()
}

// selectedConstant maps the table cursor to a characteristic constant. The
// first fixedRows rows are the version and the base and service UUIDs.
func (m Model) selectedConstant() (header.Constant, bool) {
	i := m.table.Cursor() - fixedRows
	if i < 0 || i >= len(m.header.Constants) {
		return header.Constant{}, false
	}
	return m.header.Constants[i], true
}

func (m Model) renderField(label, value string) string {
	return m.styles.Label.Render(label+":") + " " + m.styles.Value.Render(value) + "\n"
}
