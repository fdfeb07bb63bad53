package workspace

import (
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"qsdesk/cmd/qsdesk/ui"
	"qsdesk/internal/domain"
)

// Update is the single state transition function for the whole interface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m = m.resize()
		return m, nil

	case splashDoneMsg:
		// The splash is a one-way gate: once left it is never re-entered.
		if m.topView == ViewSplash {
			m.topView = ViewConsole
		}
		return m, nil

	case searchResultMsg:
		return m.applySearchResult(msg), nil

	case narrativeReadyMsg:
		return m.applyNarrative(msg), nil

	case copyResetMsg:
		m.copied = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.picking {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit works from anywhere.
	if msg.String() == "ctrl+c" {
		m.Shutdown()
		return m, tea.Quit
	}

	// Modal layers swallow input until dismissed.
	if m.notice != "" {
		switch msg.String() {
		case "enter", "esc":
			m.notice = ""
		}
		return m, nil
	}
	if m.showNarrative {
		return m.handleNarrativeKey(msg)
	}
	if m.picking {
		return m.handlePickerKey(msg)
	}

	switch m.topView {
	case ViewSplash:
		// Any key skips the dwell.
		m.topView = ViewConsole
		return m, nil
	case ViewConsole:
		return m.handleConsoleKey(msg)
	case ViewWorkspace:
		return m.handleWorkspaceKey(msg)
	}
	return m, nil
}

// =============================================================================
// NARRATIVE MODAL
// =============================================================================

func (m Model) handleNarrativeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c", "y":
		if err := clipboard.WriteAll(m.narrative); err != nil {
			m.logger.Warn("clipboard write failed", zap.Error(err))
			return m, nil
		}
		m.copied = true
		return m, copyResetTimer()
	case "esc", "enter", "q":
		m.showNarrative = false
		m.copied = false
	}
	return m, nil
}

// =============================================================================
// FILE PICKER
// =============================================================================

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.picking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)

	if ok, path := m.filepicker.DidSelectFile(msg); ok {
		m.picking = false
		return m.importFile(path), nil
	}
	if ok, _ := m.filepicker.DidSelectDisabledFile(msg); ok {
		m.notice = "That file type cannot be used as evidence."
		m.picking = false
		return m, nil
	}
	return m, cmd
}

func (m Model) openPicker() (Model, tea.Cmd) {
	if home, err := os.UserHomeDir(); err == nil {
		m.filepicker.CurrentDirectory = home
	}
	m.filepicker.Height = ui.ContentHeight(m.height) - 4
	m.picking = true
	return m, m.filepicker.Init()
}

// =============================================================================
// CONSOLE
// =============================================================================

func (m Model) handleConsoleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.Shutdown()
		return m, tea.Quit
	case "up", "k":
		if m.projectCursor > 0 {
			m.projectCursor--
		}
	case "down", "j":
		if m.projectCursor < len(m.projects)-1 {
			m.projectCursor++
		}
	case "left", "h":
		if m.layoutCursor > ui.LayoutBalanced {
			m.layoutCursor--
		}
	case "right", "l":
		if m.layoutCursor < ui.LayoutEvidenceFocus {
			m.layoutCursor++
		}
	case "1":
		m.layoutCursor = ui.LayoutBalanced
	case "2":
		m.layoutCursor = ui.LayoutSheetFocus
	case "3":
		m.layoutCursor = ui.LayoutEvidenceFocus
	case "enter":
		return m.launchWorkspace(m.layoutCursor), nil
	}
	return m, nil
}

// =============================================================================
// WORKSPACE
// =============================================================================

func (m Model) handleWorkspaceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Pane-independent bindings.
	switch msg.String() {
	case "tab":
		m = m.cycleFocus(1)
		return m, nil
	case "shift+tab":
		m = m.cycleFocus(-1)
		return m, nil
	case "ctrl+g":
		return m.generateNarrative()
	case "ctrl+o":
		return m.openPicker()
	}

	switch m.focus {
	case FocusSheet:
		return m.handleSheetKey(msg)
	case FocusEvidence:
		return m.handleEvidenceKey(msg)
	case FocusTools:
		return m.handleToolsKey(msg)
	}
	return m, nil
}

// cycleFocus moves keyboard focus between panes, managing the search input's
// focus state so runes only type when the tools pane is active.
func (m Model) cycleFocus(dir int) Model {
	next := (int(m.focus) + dir + 3) % 3
	m.focus = FocusPane(next)
	if m.focus == FocusTools {
		m.searchInput.Focus()
	} else {
		m.searchInput.Blur()
	}
	return m
}

func (m Model) handleSheetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m.goHome(), nil
	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case "down", "j":
		if m.cursorRow < len(m.rows)-1 {
			m.cursorRow++
		}
	case "left", "h":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case "right", "l":
		if m.cursorCol < len(domain.Columns)-1 {
			m.cursorCol++
		}
	case "enter", " ":
		return m.selectCell(), nil
	case "p":
		return m.pinRow(), nil
	case "a":
		return m.toggleArbitrationMode(), nil
	case "r":
		return m.generateNarrative()
	case "u":
		return m.openPicker()
	case "1":
		return m.switchSheet(domain.SheetBudget), nil
	case "2":
		return m.switchSheet(domain.SheetEquipment), nil
	case "/":
		m.focus = FocusTools
		m.searchInput.Focus()
		return m, nil
	}
	return m, nil
}

func (m Model) handleEvidenceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// With a document open the pane is a viewer: arrows scroll, esc returns
	// to the collection list.
	if m.activeDocID != "" {
		switch msg.String() {
		case "esc", "backspace", "q":
			return m.closeDocument(), nil
		case "up", "k":
			m.docVP.ScrollUp(1)
			return m, nil
		case "down", "j":
			m.docVP.ScrollDown(1)
			return m, nil
		case "u":
			return m.openPicker()
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.docCursor > 0 {
			m.docCursor--
		}
	case "down", "j":
		if m.docCursor < len(m.documents)-1 {
			m.docCursor++
		}
	case "enter":
		if m.docCursor < len(m.documents) {
			return m.openDocument(m.documents[m.docCursor].ID), nil
		}
	case "u":
		return m.openPicker()
	case "q", "esc":
		return m.goHome(), nil
	}
	return m, nil
}

func (m Model) handleToolsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submitSearch()
	case "esc":
		m.searchInput.Blur()
		m.focus = FocusSheet
		return m, nil
	case "up":
		m.logVP.ScrollUp(1)
		return m, nil
	case "down":
		m.logVP.ScrollDown(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// =============================================================================
// LAYOUT
// =============================================================================

// resize recomputes viewport dimensions from the current terminal size,
// layout preset, and arbitration flag.
func (m Model) resize() Model {
	if !m.ready {
		return m
	}
	left, _, right := ui.PaneWidths(m.layout, m.arbitrationMode, m.width)
	content := ui.ContentHeight(m.height)

	// Panel borders and padding eat 4 columns and 2 rows per pane; the
	// tools pane additionally reserves rows for the search box.
	m.docVP.Width = left - 4
	m.docVP.Height = content - 6

	m.logVP.Width = right - 4
	m.logVP.Height = content - 10

	if m.docVP.Height < 1 {
		m.docVP.Height = 1
	}
	if m.logVP.Height < 1 {
		m.logVP.Height = 1
	}

	m = m.refreshDocViewport()
	m = m.refreshLogViewport()
	m.logVP.GotoBottom()
	return m
}

// refreshLogViewport re-renders the trail into its viewport.
func (m Model) refreshLogViewport() Model {
	m.logVP.SetContent(m.renderLogLines(m.logVP.Width))
	return m
}

// refreshDocViewport re-renders the open document into its viewport.
func (m Model) refreshDocViewport() Model {
	m.docVP.SetContent(m.renderDocContent(m.docVP.Width))
	m.docVP.GotoTop()
	return m
}
