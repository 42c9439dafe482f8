package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/opencga/pkg/rest/operation"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RouteListModel - Interactive route selection
// =============================================================================

// RouteListModel is the bubbletea model for interactive route selection.
type RouteListModel struct {
	Routes   []operation.Route
	Cursor   int
	Selected *operation.Route
	Height   int
	Offset   int
}

// NewRouteListModel creates a new route list model.
func NewRouteListModel(routes []operation.Route) RouteListModel {
	return RouteListModel{
		Routes: routes,
		Height: 15,
	}
}

func (m RouteListModel) Init() tea.Cmd {
	return nil
}

func (m RouteListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Routes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Routes) == 0 {
				return m, nil
			}
			r := m.Routes[m.Cursor]
			m.Selected = &r
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m RouteListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Operation"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Routes))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Routes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, r.Name, r.Verb, r.Path()})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Operation", "Verb", "Path").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Routes) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 2 && m.Routes[idx].Verb == "DELETE" {
				base = base.Foreground(colorRed)
			}
			if idx == m.Cursor {
				return base.Bold(true).Foreground(colorCyan)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if len(m.Routes) > 0 {
		b.WriteString(listDimStyle.Render("  " + m.Routes[m.Cursor].Summary))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Routes))))

	return b.String()
}

// =============================================================================
// ConfirmModel - Yes/no prompt for destructive requests
// =============================================================================

// ConfirmModel asks the user to confirm a prompt with y or n.
type ConfirmModel struct {
	Prompt    string
	Confirmed bool
	Done      bool
}

// NewConfirmModel creates a confirmation prompt.
func NewConfirmModel(prompt string) ConfirmModel {
	return ConfirmModel{Prompt: prompt}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(key.String()) {
	case "y":
		m.Confirmed, m.Done = true, true
		return m, tea.Quit
	case "n", "q", "esc", "ctrl+c", "enter":
		m.Done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.Done {
		return ""
	}
	return styleIconWarning.Render(iconWarning) + " " + m.Prompt + " " + listSelectedStyle.Render("[y/N]") + " "
}
