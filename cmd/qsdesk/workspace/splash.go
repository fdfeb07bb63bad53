package workspace

import (
	"github.com/charmbracelet/lipgloss"

	"qsdesk/cmd/qsdesk/ui"
)

// renderSplash shows the boot screen during the initial dwell.
func (m Model) renderSplash() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		ui.Logo(m.styles),
		"",
		m.styles.Subtitle.Render("Forensic Quantity Surveying Workspace"),
		"",
		m.styles.Muted.Render(m.spinner.View()+" preparing case files..."),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
