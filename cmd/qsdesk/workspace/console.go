package workspace

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qsdesk/cmd/qsdesk/ui"
)

// renderConsole is the case dashboard shown between splash and workspace.
// Project cards are informational; only the first case opens a workspace.
func (m Model) renderConsole() string {
	title := m.styles.Title.Render("QS Desk Console")
	subtitle := m.styles.Subtitle.Render("Select a case and workspace layout")

	cards := make([]string, 0, len(m.projects))
	for i, p := range m.projects {
		cards = append(cards, m.renderProjectCard(p, i == m.projectCursor))
	}
	cardRow := lipgloss.JoinHorizontal(lipgloss.Top, cards...)

	layouts := m.renderLayoutChooser()

	hints := m.styles.Footer.Render("↑↓ case • ←→ layout • enter open workspace • q quit")

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		cardRow,
		"",
		layouts,
		"",
		hints,
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderProjectCard(p ProjectCard, selected bool) string {
	style := m.styles.Panel.Width(28).Margin(0, 1)
	if selected {
		style = style.BorderForeground(m.styles.Theme.Accent)
	}

	status := m.styles.Info.Render(p.Status)
	if p.Type == "Arbitration" {
		status = m.styles.Error.Render(p.Status)
	}

	lines := []string{
		m.styles.Bold.Render(p.Name),
		m.styles.Muted.Render(p.Type),
		"",
		status,
		m.styles.Muted.Render(fmt.Sprintf("Deadline: %s", p.Deadline)),
		m.styles.Muted.Render(fmt.Sprintf("%d members", p.Members)),
	}
	return style.Render(strings.Join(lines, "\n"))
}

// renderLayoutChooser shows the three pane arrangement presets.
func (m Model) renderLayoutChooser() string {
	presets := []ui.LayoutPreset{ui.LayoutBalanced, ui.LayoutSheetFocus, ui.LayoutEvidenceFocus}

	items := make([]string, 0, len(presets))
	for i, p := range presets {
		label := fmt.Sprintf(" %d. %s ", i+1, p)
		if p == m.layoutCursor {
			items = append(items, m.styles.Selected.Render(label))
		} else {
			items = append(items, m.styles.Muted.Render(label))
		}
	}
	return m.styles.Body.Render("Layout: ") + strings.Join(items, " ")
}
