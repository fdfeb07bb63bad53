package workspace

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qsdesk/cmd/qsdesk/ui"
	"qsdesk/internal/mockdata"
)

// View renders the whole interface for the current state.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < ui.MinimumTerminalWidth || m.height < ui.MinimumTerminalHeight {
		return m.styles.Warning.Render(
			fmt.Sprintf("Terminal too small (%dx%d). QS Desk needs at least %dx%d.",
				m.width, m.height, ui.MinimumTerminalWidth, ui.MinimumTerminalHeight))
	}

	// Modal layers replace the content area until dismissed.
	if m.notice != "" {
		return m.renderModal(m.renderNotice())
	}
	if m.showNarrative {
		return m.renderModal(m.renderNarrative())
	}
	if m.picking {
		return m.renderModal(m.renderPicker())
	}

	switch m.topView {
	case ViewSplash:
		return m.renderSplash()
	case ViewConsole:
		return m.renderConsole()
	case ViewWorkspace:
		return m.renderWorkspace()
	}
	return ""
}

// renderModal centers a dialog box over a blank backdrop.
func (m Model) renderModal(box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// WORKSPACE CHROME
// =============================================================================

func (m Model) renderWorkspace() string {
	header := m.renderHeader()
	footer := m.renderFooter()

	left, center, right := ui.PaneWidths(m.layout, m.arbitrationMode, m.width)
	content := ui.ContentHeight(m.height)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderEvidencePane(left, content),
		m.renderSheetPane(center, content),
		m.renderToolsPane(right, content),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, panes, footer)
}

// renderHeader shows the wordmark, breadcrumb trail, and mode badges.
func (m Model) renderHeader() string {
	crumbs := make([]string, 0, len(m.breadcrumbs))
	for _, b := range m.breadcrumbs {
		crumbs = append(crumbs, b.Label)
	}
	trail := strings.Join(crumbs, " / ")

	badges := make([]string, 0, 2)
	if m.arbitrationMode {
		badges = append(badges, m.styles.AlertBadge.Render("ARBITRATION MODE"))
	}
	if m.searching || m.generating {
		badges = append(badges, m.styles.Info.Render(m.spinner.View()+"working"))
	}

	line := m.styles.Header.Width(m.width).Render("QS Desk  •  " + trail)
	sub := m.styles.Subtitle.Render(mockdata.Info(m.activeSheet).FileName)
	if len(badges) > 0 {
		sub = sub + "  " + strings.Join(badges, " ")
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, m.styles.Content.Render(sub))
}

// renderFooter shows context-sensitive key hints and the action counter.
func (m Model) renderFooter() string {
	var hints string
	switch m.focus {
	case FocusSheet:
		hints = "↑↓←→ move • enter select • p pin • a arbitration • 1/2 sheet • / search • r report • u upload • tab pane • q home"
	case FocusEvidence:
		if m.activeDocID != "" {
			hints = "↑↓ scroll • esc close • u upload • tab pane"
		} else {
			hints = "↑↓ move • enter open • u upload • tab pane • q home"
		}
	case FocusTools:
		hints = "type query • enter search • esc back • ↑↓ scroll log • ctrl+g report"
	}

	counter := fmt.Sprintf("%d actions logged", m.logStore.Len())
	gap := m.width - lipgloss.Width(hints) - lipgloss.Width(counter) - 4
	if gap < 1 {
		gap = 1
	}
	return m.styles.Footer.Render(hints + strings.Repeat(" ", gap) + counter)
}

// =============================================================================
// MODAL DIALOGS
// =============================================================================

// renderNotice is the blocking attention dialog for degraded outcomes.
func (m Model) renderNotice() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Warning.Render("Notice"),
		"",
		m.styles.Body.Render(m.notice),
		"",
		m.styles.Muted.Render("enter to dismiss"),
	)
	return m.styles.Panel.
		BorderForeground(ui.Warning).
		Width(min(54, m.width-8)).
		Padding(1, 2).
		Render(body)
}

// renderNarrative shows the drafted claim narrative with copy support.
func (m Model) renderNarrative() string {
	width := min(82, m.width-6)

	text := m.safeRenderMarkdown(m.narrative)

	copyHint := "c copy to clipboard • esc close"
	if m.copied {
		copyHint = m.styles.Success.Render("Copied!") + " • esc close"
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Draft Claim Narrative"),
		m.styles.Subtitle.Render("Generated expert witness statement"),
		"",
		text,
		"",
		m.styles.Muted.Render(copyHint),
	)
	return m.styles.Panel.
		BorderForeground(m.styles.Theme.Accent).
		Width(width).
		Padding(1, 2).
		Render(body)
}

// safeRenderMarkdown renders markdown through glamour, falling back to the
// raw text if the renderer is unavailable, errors, or panics on odd input.
func (m Model) safeRenderMarkdown(text string) (out string) {
	out = text
	if m.renderer == nil {
		return out
	}
	defer func() {
		if r := recover(); r != nil {
			out = text
		}
	}()
	if rendered, err := m.renderer.Render(text); err == nil {
		out = strings.TrimSpace(rendered)
	}
	return out
}

// renderPicker frames the evidence file picker.
func (m Model) renderPicker() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Import Evidence"),
		m.styles.Subtitle.Render("PDF and image files only"),
		"",
		m.filepicker.View(),
		"",
		m.styles.Muted.Render("enter select • esc cancel"),
	)
	return m.styles.Panel.
		Width(min(70, m.width-8)).
		Padding(1, 2).
		Render(body)
}
