package workspace

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"qsdesk/cmd/qsdesk/ui"
	"qsdesk/internal/domain"
	"qsdesk/internal/gateway"
)

// stubAnalyst is a canned gateway used to drive the UI deterministically.
type stubAnalyst struct {
	match     gateway.RowMatch
	narrative string
	queries   []string
}

func (s *stubAnalyst) ResolveQuery(_ context.Context, query string) gateway.RowMatch {
	s.queries = append(s.queries, query)
	return s.match
}

func (s *stubAnalyst) SummarizeLog(_ context.Context, _ []domain.LogicLogEntry) string {
	return s.narrative
}

func newTestModel(t *testing.T, analyst gateway.Analyst) Model {
	t.Helper()
	if analyst == nil {
		analyst = &stubAnalyst{match: gateway.NoMatch(), narrative: "narrative text"}
	}
	m := New(Options{Analyst: analyst, Theme: ui.DarkTheme()})
	t.Cleanup(m.Shutdown)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 48})
	return next.(Model)
}

func inWorkspace(t *testing.T, analyst gateway.Analyst) Model {
	t.Helper()
	m := newTestModel(t, analyst)
	next, _ := m.Update(splashDoneMsg{})
	m = next.(Model)
	return m.launchWorkspace(ui.LayoutBalanced)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// =============================================================================
// TOP-LEVEL VIEW FLOW
// =============================================================================

func TestSplashIsOneWay(t *testing.T) {
	m := newTestModel(t, nil)
	if m.topView != ViewSplash {
		t.Fatalf("initial view = %v", m.topView)
	}

	next, _ := m.Update(splashDoneMsg{})
	m = next.(Model)
	if m.topView != ViewConsole {
		t.Fatalf("after dwell view = %v, want console", m.topView)
	}

	// A late duplicate timer tick must not drag the UI back to the splash,
	// nor disturb a deeper view.
	m = m.launchWorkspace(ui.LayoutBalanced)
	next, _ = m.Update(splashDoneMsg{})
	m = next.(Model)
	if m.topView != ViewWorkspace {
		t.Errorf("stale splash tick changed view to %v", m.topView)
	}
}

func TestConsoleLaunchUsesChosenLayout(t *testing.T) {
	m := newTestModel(t, nil)
	next, _ := m.Update(splashDoneMsg{})
	m = next.(Model)

	next, _ = m.Update(keyMsg("3"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("enter"))
	m = next.(Model)

	if m.topView != ViewWorkspace {
		t.Fatalf("view = %v, want workspace", m.topView)
	}
	if m.layout != ui.LayoutEvidenceFocus {
		t.Errorf("layout = %v, want evidence focus", m.layout)
	}
}

func TestHomeReturnsToConsoleKeepingState(t *testing.T) {
	m := inWorkspace(t, nil)
	m = m.selectCell()
	logged := m.logStore.Len()

	next, _ := m.Update(keyMsg("q"))
	m = next.(Model)
	if m.topView != ViewConsole {
		t.Fatalf("view = %v, want console", m.topView)
	}
	if m.logStore.Len() != logged {
		t.Error("going home altered the trail")
	}

	// Re-entering resumes the same session.
	next, _ = m.Update(keyMsg("enter"))
	m = next.(Model)
	if m.topView != ViewWorkspace {
		t.Fatalf("view = %v, want workspace", m.topView)
	}
	if m.activeCell.IsZero() {
		t.Error("active cell lost on re-entry")
	}
}

// =============================================================================
// CELL SELECTION
// =============================================================================

func TestSelectCellLogsOnce(t *testing.T) {
	m := inWorkspace(t, nil)

	m = m.selectCell()
	if m.logStore.Len() != 1 {
		t.Fatalf("log len = %d, want 1", m.logStore.Len())
	}
	entry := m.logStore.Entries()[0]
	if entry.Type != domain.LogSelectCell {
		t.Errorf("entry type = %v", entry.Type)
	}
	if entry.RelatedCellID != m.activeCell.String() {
		t.Errorf("related cell = %q, want %q", entry.RelatedCellID, m.activeCell.String())
	}
	if entry.RelatedDocID != defaultOpenDocID {
		t.Errorf("related doc = %q", entry.RelatedDocID)
	}

	// Re-selecting the active cell is a no-op: no duplicate entry.
	m = m.selectCell()
	if m.logStore.Len() != 1 {
		t.Errorf("log len after re-select = %d, want 1", m.logStore.Len())
	}
}

func TestSelectCellBreadcrumbPolicy(t *testing.T) {
	m := inWorkspace(t, nil)

	m = m.selectCell()
	if len(m.breadcrumbs) != 3 {
		t.Fatalf("breadcrumbs = %d, want 3", len(m.breadcrumbs))
	}
	if !strings.HasPrefix(m.breadcrumbs[2].Label, "Row: ") {
		t.Errorf("third crumb = %q", m.breadcrumbs[2].Label)
	}

	// Selecting another cell replaces the third crumb instead of stacking.
	m.cursorRow = 3
	m = m.selectCell()
	if len(m.breadcrumbs) != 3 {
		t.Errorf("breadcrumbs after second select = %d, want 3", len(m.breadcrumbs))
	}
}

// =============================================================================
// SHEET SWITCHING
// =============================================================================

func TestSwitchSheet(t *testing.T) {
	m := inWorkspace(t, nil)
	m = m.selectCell() // builds the third crumb

	m = m.switchSheet(domain.SheetEquipment)
	if m.activeSheet != domain.SheetEquipment {
		t.Fatal("sheet not switched")
	}
	if m.rows[0].ID != "eq-1" {
		t.Errorf("rows not reloaded, first = %q", m.rows[0].ID)
	}
	wantCrumbs := []domain.Breadcrumb{
		{Label: "Project Alpha", Path: "/"},
		{Label: "Equipment Schedule", Path: "/sheet"},
	}
	if diff := cmp.Diff(wantCrumbs, m.breadcrumbs); diff != "" {
		t.Errorf("breadcrumbs mismatch (-want +got):\n%s", diff)
	}

	entries := m.logStore.Entries()
	last := entries[len(entries)-1]
	if last.Type != domain.LogNavigate || last.Details != "Opened Tab: Equipment Schedule" {
		t.Errorf("last entry = %+v", last)
	}

	// The active cell is untouched; switching resets nothing else.
	if m.activeCell.IsZero() {
		t.Error("active cell cleared by sheet switch")
	}

	// Same-sheet switch is a no-op.
	before := m.logStore.Len()
	m = m.switchSheet(domain.SheetEquipment)
	if m.logStore.Len() != before {
		t.Error("same-sheet switch logged an entry")
	}
}

// A round trip must show the identical row set: sheets are immutable and
// switching is a pure state transition.
func TestSwitchSheetRoundTrip(t *testing.T) {
	m := inWorkspace(t, nil)
	original := append([]domain.SpreadsheetRow(nil), m.rows...)

	m = m.switchSheet(domain.SheetEquipment)
	m = m.switchSheet(domain.SheetBudget)

	if diff := cmp.Diff(original, m.rows); diff != "" {
		t.Errorf("row set changed across round trip (-want +got):\n%s", diff)
	}
}

// =============================================================================
// ARBITRATION MODE AND PINNING
// =============================================================================

func TestToggleArbitrationMode(t *testing.T) {
	m := inWorkspace(t, nil)

	m = m.toggleArbitrationMode()
	if !m.arbitrationMode {
		t.Fatal("mode not enabled")
	}
	entries := m.logStore.Entries()
	if entries[len(entries)-1].Description != "Filter: Arbitration Claims" {
		t.Errorf("entry = %q", entries[len(entries)-1].Description)
	}

	m = m.toggleArbitrationMode()
	if m.arbitrationMode {
		t.Fatal("mode not disabled")
	}
	entries = m.logStore.Entries()
	if entries[len(entries)-1].Description != "View: Standard Budget" {
		t.Errorf("entry = %q", entries[len(entries)-1].Description)
	}
}

func TestPinRow(t *testing.T) {
	m := inWorkspace(t, nil)
	m.cursorRow = 2 // row-3, arbitration relevant

	m = m.pinRow()
	entry := m.logStore.Entries()[0]
	if entry.Type != domain.LogPinLogic {
		t.Fatalf("type = %v", entry.Type)
	}
	if entry.RelatedCellID != "row-3" || entry.RelatedDocID != defaultOpenDocID {
		t.Errorf("refs = %q/%q", entry.RelatedCellID, entry.RelatedDocID)
	}
}

func TestPinSuppressedForFilteredRow(t *testing.T) {
	m := inWorkspace(t, nil)
	m = m.toggleArbitrationMode()
	before := m.logStore.Len()

	m.cursorRow = 0 // row-1, not arbitration relevant
	m = m.pinRow()
	if m.logStore.Len() != before {
		t.Error("pin logged for a visually suppressed row")
	}
}

// =============================================================================
// FORMULA SEARCH
// =============================================================================

func TestSearchEmptyQueryIsSilentNoOp(t *testing.T) {
	stub := &stubAnalyst{match: gateway.NoMatch()}
	m := inWorkspace(t, stub)

	m.searchInput.SetValue("   ")
	m, cmd := m.submitSearch()
	if cmd != nil || m.searching {
		t.Error("empty query triggered a lookup")
	}
	if len(stub.queries) != 0 {
		t.Error("gateway called for empty query")
	}
}

func TestSearchMatchSelectsTotalCell(t *testing.T) {
	stub := &stubAnalyst{match: gateway.RowMatch{RowID: "row-3", Explanation: "Steel waste variation."}}
	m := inWorkspace(t, stub)

	m.searchInput.SetValue("where did we calculate steel waste")
	m, cmd := m.submitSearch()
	if cmd == nil || !m.searching {
		t.Fatal("lookup not started")
	}

	m = m.applySearchResult(cmd().(searchResultMsg))
	if m.searching {
		t.Error("still searching after result")
	}
	want := domain.CellRef{RowID: "row-3", Column: domain.ColumnTotal}
	if m.activeCell != want {
		t.Errorf("active cell = %v, want %v", m.activeCell, want)
	}
	if m.cursorRow != 2 {
		t.Errorf("cursor row = %d, want 2", m.cursorRow)
	}
	if m.searchInput.Value() != "" {
		t.Error("query not cleared after successful match")
	}

	entries := m.logStore.Entries()
	if len(entries) != 1 {
		t.Fatalf("log len = %d, want 1", len(entries))
	}
	if entries[0].Type != domain.LogSearch || entries[0].Details != "Steel waste variation." {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestSearchNoMatchShowsNoticeWithoutLogging(t *testing.T) {
	stub := &stubAnalyst{match: gateway.NoMatch()}
	m := inWorkspace(t, stub)

	m.searchInput.SetValue("unrelated question")
	m, cmd := m.submitSearch()
	m = m.applySearchResult(cmd().(searchResultMsg))

	if m.searching {
		t.Error("control still disabled after failed lookup")
	}
	if m.notice == "" {
		t.Fatal("no blocking notice for unmatched query")
	}
	if m.logStore.Len() != 0 {
		t.Error("unmatched search logged an entry")
	}
	if !m.activeCell.IsZero() {
		t.Error("unmatched search selected a cell")
	}
}

func TestStaleSearchResultDiscarded(t *testing.T) {
	stub := &stubAnalyst{match: gateway.RowMatch{RowID: "row-1", Explanation: "old"}}
	m := inWorkspace(t, stub)

	m.searchInput.SetValue("first")
	m, cmd := m.submitSearch()
	staleMsg := cmd().(searchResultMsg)

	// A newer request supersedes the first before its result lands.
	m.searching = false
	m.searchInput.SetValue("second")
	m, _ = m.submitSearch()

	m = m.applySearchResult(staleMsg)
	if !m.searching {
		t.Error("stale result cleared the in-flight state")
	}
	if m.logStore.Len() != 0 {
		t.Error("stale result logged an entry")
	}
}

// =============================================================================
// NARRATIVE GENERATION
// =============================================================================

func TestNarrativeRequiresTrail(t *testing.T) {
	m := inWorkspace(t, nil)

	m, cmd := m.generateNarrative()
	if cmd != nil || m.generating {
		t.Error("narrative started with an empty trail")
	}
}

func TestNarrativeFlow(t *testing.T) {
	stub := &stubAnalyst{narrative: "Based on the forensic analysis of the accounts..."}
	m := inWorkspace(t, stub)
	m = m.selectCell()

	m, cmd := m.generateNarrative()
	if cmd == nil || !m.generating {
		t.Fatal("generation not started")
	}

	m = m.applyNarrative(cmd().(narrativeReadyMsg))
	if !m.showNarrative {
		t.Fatal("modal not shown")
	}
	if m.narrative != stub.narrative {
		t.Errorf("narrative = %q", m.narrative)
	}

	entries := m.logStore.Entries()
	last := entries[len(entries)-1]
	if last.Description != "Report Generation" {
		t.Errorf("last entry = %q, want report-generated record", last.Description)
	}
}

// Even a degraded generation (gateway fallback text) opens the modal with
// displayable content and records that a report was generated.
func TestNarrativeFallbackStillDisplayed(t *testing.T) {
	stub := &stubAnalyst{narrative: gateway.FallbackNarrative}
	m := inWorkspace(t, stub)
	m = m.selectCell()

	m, cmd := m.generateNarrative()
	m = m.applyNarrative(cmd().(narrativeReadyMsg))

	if !m.showNarrative || m.narrative == "" {
		t.Error("fallback narrative not displayed")
	}
	entries := m.logStore.Entries()
	if entries[len(entries)-1].Description != "Report Generation" {
		t.Error("degraded generation not recorded in the trail")
	}
}

func TestStaleNarrativeDiscarded(t *testing.T) {
	m := inWorkspace(t, nil)
	m = m.selectCell()

	m, cmd := m.generateNarrative()
	stale := cmd().(narrativeReadyMsg)

	m.generating = false
	m, _ = m.generateNarrative()

	m = m.applyNarrative(stale)
	if m.showNarrative {
		t.Error("stale narrative opened the modal")
	}
	if !m.generating {
		t.Error("stale narrative cleared the in-flight state")
	}
}

// =============================================================================
// DOCUMENTS
// =============================================================================

func TestOpenDocument(t *testing.T) {
	m := inWorkspace(t, nil)

	m = m.openDocument("CON-001")
	if m.activeDocID != "CON-001" {
		t.Fatalf("active doc = %q", m.activeDocID)
	}
	entry := m.logStore.Entries()[0]
	if entry.Type != domain.LogOpenDocument || entry.Details != "Ref ID: CON-001" {
		t.Errorf("entry = %+v", entry)
	}

	// Opening the already-open document is a no-op.
	m = m.openDocument("CON-001")
	if m.logStore.Len() != 1 {
		t.Error("re-open logged a duplicate entry")
	}

	m = m.closeDocument()
	if m.activeDocID != "" {
		t.Error("close did not clear the active document")
	}
}

func TestImportFile(t *testing.T) {
	m := inWorkspace(t, nil)

	src := filepath.Join(t.TempDir(), "site_photo.png")
	if err := os.WriteFile(src, []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	before := len(m.documents)
	m = m.importFile(src)

	if len(m.documents) != before+1 {
		t.Fatalf("documents = %d, want %d", len(m.documents), before+1)
	}
	doc := m.documents[0]
	if !doc.IsUploaded || doc.Kind != domain.KindImage || doc.Name != "site_photo.png" {
		t.Errorf("imported doc = %+v", doc)
	}
	if m.activeDocID != doc.ID {
		t.Error("imported document not opened")
	}

	entries := m.logStore.Entries()
	last := entries[len(entries)-1]
	if last.Type != domain.LogOpenDocument || last.RelatedDocID != doc.ID {
		t.Errorf("entry = %+v", last)
	}
}

func TestImportRejectedFileShowsNotice(t *testing.T) {
	m := inWorkspace(t, nil)

	src := filepath.Join(t.TempDir(), "macro.xlsx")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	m = m.importFile(src)
	if m.notice == "" {
		t.Error("rejected import produced no notice")
	}
	if m.logStore.Len() != 0 {
		t.Error("rejected import logged an entry")
	}
}

// =============================================================================
// MODAL BEHAVIOR
// =============================================================================

func TestNoticeBlocksInputUntilDismissed(t *testing.T) {
	m := inWorkspace(t, nil)
	m.notice = "No matching calculation logic found."

	next, _ := m.Update(keyMsg("a"))
	m = next.(Model)
	if m.arbitrationMode {
		t.Error("key leaked through the blocking notice")
	}
	if m.notice == "" {
		t.Error("non-dismiss key cleared the notice")
	}

	next, _ = m.Update(keyMsg("enter"))
	m = next.(Model)
	if m.notice != "" {
		t.Error("enter did not dismiss the notice")
	}
}

func TestFocusCycling(t *testing.T) {
	m := inWorkspace(t, nil)
	if m.focus != FocusSheet {
		t.Fatalf("initial focus = %v", m.focus)
	}

	next, _ := m.Update(keyMsg("tab"))
	m = next.(Model)
	if m.focus != FocusEvidence {
		t.Errorf("focus = %v, want evidence", m.focus)
	}

	next, _ = m.Update(keyMsg("tab"))
	m = next.(Model)
	if m.focus != FocusTools {
		t.Errorf("focus = %v, want tools", m.focus)
	}
	if !m.searchInput.Focused() {
		t.Error("search input not focused in tools pane")
	}

	next, _ = m.Update(keyMsg("tab"))
	m = next.(Model)
	if m.focus != FocusSheet {
		t.Errorf("focus = %v, want sheet", m.focus)
	}
	if m.searchInput.Focused() {
		t.Error("search input still focused after leaving tools pane")
	}
}

// The boot screen draws the shared wordmark from the ui package rather than
// carrying its own copy of the art.
func TestSplashShowsWordmark(t *testing.T) {
	m := newTestModel(t, nil)

	out := m.View()
	if !strings.Contains(out, `/ _ \/ ___|`) {
		t.Error("splash missing the wordmark")
	}
	if !strings.Contains(out, "Forensic Quantity Surveying Workspace") {
		t.Error("splash missing the subtitle")
	}
}

func TestViewRendersWithoutPanic(t *testing.T) {
	m := inWorkspace(t, nil)
	m = m.selectCell()
	m = m.toggleArbitrationMode()

	out := m.View()
	if !strings.Contains(out, "QS Desk") {
		t.Error("header missing from workspace view")
	}
	if !strings.Contains(out, "ARBITRATION MODE") {
		t.Error("arbitration badge missing")
	}
}
