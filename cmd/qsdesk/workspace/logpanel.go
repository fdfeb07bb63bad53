package workspace

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qsdesk/internal/domain"
)

// renderToolsPane draws the right pane: the formula search box, report
// controls, and the append-only Logic Log trail.
func (m Model) renderToolsPane(width, height int) string {
	inner := width - 4

	search := m.renderSearchBox(inner)
	report := m.renderReportControl()
	trail := m.renderLogTrail(inner)

	body := lipgloss.JoinVertical(lipgloss.Left, search, "", report, "", trail)

	style := m.styles.Panel.Width(width - 2).Height(height - 2)
	if m.focus == FocusTools {
		style = style.BorderForeground(m.styles.Theme.Accent)
	}
	return style.Render(body)
}

func (m Model) renderSearchBox(width int) string {
	title := m.styles.Title.Render("Formula Search")

	var status string
	if m.searching {
		status = m.styles.Info.Render(m.spinner.View() + "interpreting query...")
	} else {
		status = m.styles.Muted.Render("Ask where a figure was calculated")
	}

	m.searchInput.Width = width - 4
	return lipgloss.JoinVertical(lipgloss.Left, title, m.searchInput.View(), status)
}

// renderReportControl shows the narrative trigger and its availability.
func (m Model) renderReportControl() string {
	switch {
	case m.generating:
		return m.styles.Info.Render(m.spinner.View() + "drafting claim narrative...")
	case m.logStore.Len() == 0:
		return m.styles.Dimmed.Render("[ r ] Generate Report (log an action first)")
	default:
		return m.styles.Body.Render("[ r ] Generate Report")
	}
}

func (m Model) renderLogTrail(width int) string {
	header := m.styles.Title.Render("Logic Log") + " " +
		m.styles.Muted.Render(fmt.Sprintf("(%d)", m.logStore.Len()))

	if m.logStore.Len() == 0 {
		empty := m.styles.Muted.Render("No actions recorded yet.\nEvery click builds your audit trail.")
		return lipgloss.JoinVertical(lipgloss.Left, header, m.styles.RenderDivider(width), empty)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.styles.RenderDivider(width), m.logVP.View())
}

// renderLogLines renders the full trail, oldest first, for the trail
// viewport.
func (m Model) renderLogLines(width int) string {
	entries := m.logStore.Entries()
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(m.renderLogEntry(e, width))
	}
	return sb.String()
}

func (m Model) renderLogEntry(e domain.LogicLogEntry, width int) string {
	tag := m.logTypeTag(e.Type)
	when := m.styles.Muted.Render(e.Timestamp.Format("15:04:05"))

	head := when + " " + tag + " " + m.styles.Body.Render(e.Description)

	lines := []string{head}
	if e.Details != "" {
		lines = append(lines, m.styles.Muted.Render("  "+e.Details))
	}
	if e.RelatedCellID != "" || e.RelatedDocID != "" {
		refs := make([]string, 0, 2)
		if e.RelatedCellID != "" {
			refs = append(refs, "cell "+e.RelatedCellID)
		}
		if e.RelatedDocID != "" {
			refs = append(refs, "doc "+e.RelatedDocID)
		}
		lines = append(lines, m.styles.Dimmed.Render("  ↳ "+strings.Join(refs, ", ")))
	}

	joined := strings.Join(lines, "\n")
	if width > 0 {
		joined = lipgloss.NewStyle().MaxWidth(width).Render(joined)
	}
	return joined
}

// logTypeTag returns the colored tag for a trail entry. The switch is
// exhaustive over the closed type set.
func (m Model) logTypeTag(t domain.LogType) string {
	switch t {
	case domain.LogNavigate:
		return m.styles.Muted.Render("NAV")
	case domain.LogSelectCell:
		return m.styles.Info.Render("CELL")
	case domain.LogOpenDocument:
		return m.styles.Badge.Render("DOC")
	case domain.LogSearch:
		return m.styles.Info.Render("FIND")
	case domain.LogPinLogic:
		return m.styles.PinBadge.Render("PIN")
	}
	return t.String()
}
