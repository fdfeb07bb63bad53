// Package workspace implements the interactive QS Desk terminal interface:
// splash, console dashboard, and the three-pane forensic workspace
// (evidence, spreadsheet, tools). The Model owns every piece of
// cross-cutting state; child panes render from snapshots and all mutations
// are discrete named transitions driven by the Update loop.
package workspace

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"qsdesk/cmd/qsdesk/ui"
	"qsdesk/internal/domain"
	"qsdesk/internal/gateway"
	"qsdesk/internal/mockdata"
	"qsdesk/internal/session"
	"qsdesk/internal/uploads"
)

// TopView is the top-level view state machine:
// splash -> console -> workspace -> console (home). The splash is not
// re-enterable.
type TopView int

const (
	ViewSplash TopView = iota
	ViewConsole
	ViewWorkspace
)

// FocusPane selects which workspace pane receives keyboard input.
type FocusPane int

const (
	FocusSheet FocusPane = iota
	FocusEvidence
	FocusTools
)

// Timing constants.
const (
	splashDwell = 2500 * time.Millisecond
	copiedFlash = 2 * time.Second
)

const defaultOpenDocID = "RPT-EXP"

// ProjectCard is one case shown on the console dashboard.
type ProjectCard struct {
	ID       string
	Name     string
	Type     string
	Status   string
	Deadline string
	Members  int
}

func defaultProjects() []ProjectCard {
	return []ProjectCard{
		{ID: "alpha", Name: "Project Alpha", Type: "Arbitration", Status: "Active Claim", Deadline: "2 Days", Members: 3},
		{ID: "metro", Name: "Metro Line Ext. Phase 2", Type: "Adjudication", Status: "Discovery", Deadline: "14 Days", Members: 8},
		{ID: "tower", Name: "Skyline Tower B", Type: "Final Account", Status: "Review", Deadline: "30 Days", Members: 2},
	}
}

// Options configures a workspace model.
type Options struct {
	Analyst gateway.Analyst
	Uploads *uploads.Store
	Logger  *zap.Logger
	Theme   ui.Theme
}

// Model is the top-level state owner for the interactive session.
type Model struct {
	styles   ui.Styles
	analyst  gateway.Analyst
	uploads  *uploads.Store
	logger   *zap.Logger
	renderer *glamour.TermRenderer

	width  int
	height int
	ready  bool

	topView TopView
	layout  ui.LayoutPreset

	// Console state
	projects      []ProjectCard
	projectCursor int
	layoutCursor  ui.LayoutPreset

	// Workspace state
	focus           FocusPane
	arbitrationMode bool
	activeSheet     domain.SheetID
	rows            []domain.SpreadsheetRow
	cursorRow       int
	cursorCol       int // index into domain.Columns
	activeCell      domain.CellRef
	documents       []domain.DocumentFile
	docCursor       int
	activeDocID     string
	breadcrumbs     []domain.Breadcrumb
	logStore        *session.LogStore
	logVP           viewport.Model
	docVP           viewport.Model

	// Formula search
	searchInput textinput.Model
	spinner     spinner.Model
	searching   bool
	searchSeq   int

	// Claim narrative
	generating    bool
	narrativeSeq  int
	narrative     string
	showNarrative bool
	copied        bool

	// Blocking notice ("" = hidden)
	notice string

	// File import
	picking    bool
	filepicker filepicker.Model

	shutdownOnce *sync.Once
}

// Messages for tea updates.
type (
	splashDoneMsg struct{}

	// searchResultMsg carries the outcome of one row lookup. Seq stamps the
	// request generation: a stale sequence is discarded so only the most
	// recently issued request's result is applied.
	searchResultMsg struct {
		seq   int
		query string
		match gateway.RowMatch
	}

	// narrativeReadyMsg carries a drafted claim narrative, stamped like
	// search results.
	narrativeReadyMsg struct {
		seq  int
		text string
	}

	copyResetMsg struct{}
)

// New builds the interactive model. The analyst is required; a nil logger
// degrades to a Nop and a nil upload store is created on the spot.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := opts.Uploads
	if store == nil {
		store = uploads.NewStore()
	}

	styles := ui.NewStyles(opts.Theme)

	input := textinput.New()
	input.Placeholder = `e.g. "Show me where we calculated Steel Waste"`
	input.CharLimit = 200
	input.Prompt = "> "

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.Spinner),
	)

	picker := filepicker.New()
	picker.AllowedTypes = uploads.AllowedExtensions
	picker.ShowHidden = false

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	if err != nil {
		renderer = nil
	}

	return Model{
		styles:   styles,
		analyst:  opts.Analyst,
		uploads:  store,
		logger:   logger,
		renderer: renderer,

		topView: ViewSplash,
		layout:  ui.LayoutBalanced,

		projects:     defaultProjects(),
		layoutCursor: ui.LayoutBalanced,

		focus:       FocusSheet,
		activeSheet: domain.SheetBudget,
		rows:        mockdata.Rows(domain.SheetBudget),
		cursorCol:   len(domain.Columns) - 1,
		documents:   mockdata.Documents(),
		activeDocID: defaultOpenDocID,
		breadcrumbs: []domain.Breadcrumb{
			{Label: "Project Alpha", Path: "/"},
			{Label: "Merged Budget", Path: "/budget"},
		},
		logStore: session.NewLogStore(),
		logVP:    viewport.New(0, 0),
		docVP:    viewport.New(0, 0),

		searchInput: input,
		spinner:     spin,
		filepicker:  picker,

		shutdownOnce: &sync.Once{},
	}
}

// Init starts the splash timer and the always-on spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		splashTimer(),
		m.spinner.Tick,
		textinput.Blink,
	)
}

// Shutdown releases session resources exactly once. Safe to call from any
// copy of the model.
func (m Model) Shutdown() {
	m.shutdownOnce.Do(func() {
		if m.uploads != nil {
			if err := m.uploads.Close(); err != nil {
				m.logger.Warn("failed to release staged evidence", zap.Error(err))
			}
		}
		_ = m.logger.Sync()
	})
}

// =============================================================================
// COMMANDS
// =============================================================================

func splashTimer() tea.Cmd {
	return tea.Tick(splashDwell, func(time.Time) tea.Msg {
		return splashDoneMsg{}
	})
}

func copyResetTimer() tea.Cmd {
	return tea.Tick(copiedFlash, func(time.Time) tea.Msg {
		return copyResetMsg{}
	})
}

// resolveQueryCmd runs one gateway lookup off the UI loop. The gateway never
// errors; failures arrive as a not-found match.
func (m Model) resolveQueryCmd(seq int, query string) tea.Cmd {
	analyst := m.analyst
	return func() tea.Msg {
		return searchResultMsg{
			seq:   seq,
			query: query,
			match: analyst.ResolveQuery(context.Background(), query),
		}
	}
}

// draftNarrativeCmd runs one narrative generation off the UI loop over a
// snapshot of the trail.
func (m Model) draftNarrativeCmd(seq int, entries []domain.LogicLogEntry) tea.Cmd {
	analyst := m.analyst
	return func() tea.Msg {
		return narrativeReadyMsg{
			seq:  seq,
			text: analyst.SummarizeLog(context.Background(), entries),
		}
	}
}

// =============================================================================
// NAMED TRANSITIONS
// =============================================================================

// appendLog records one investigative action and scrolls the trail to the
// newest entry.
func (m Model) appendLog(t domain.LogType, description, details, cellID, docID string) Model {
	m.logStore.Append(t, description, details, cellID, docID)
	m = m.refreshLogViewport()
	m.logVP.GotoBottom()
	return m
}

// launchWorkspace enters the workspace with the chosen layout preset.
func (m Model) launchWorkspace(preset ui.LayoutPreset) Model {
	m.layout = preset
	m.topView = ViewWorkspace
	m.focus = FocusSheet
	return m.resize()
}

// goHome returns to the console dashboard. Workspace state is kept so the
// investigation can resume.
func (m Model) goHome() Model {
	m.topView = ViewConsole
	return m
}

// switchSheet changes the active worksheet. A pure state transition: it emits
// one navigation entry, updates the second breadcrumb, and resets nothing
// else.
func (m Model) switchSheet(sheet domain.SheetID) Model {
	if m.activeSheet == sheet {
		return m
	}
	m.activeSheet = sheet
	m.rows = mockdata.Rows(sheet)
	if m.cursorRow >= len(m.rows) {
		m.cursorRow = len(m.rows) - 1
	}

	info := mockdata.Info(sheet)
	if len(m.breadcrumbs) >= 2 {
		m.breadcrumbs[1] = domain.Breadcrumb{Label: info.Title, Path: "/sheet"}
		m.breadcrumbs = m.breadcrumbs[:2]
	}

	return m.appendLog(domain.LogNavigate, "Worksheet Switch", "Opened Tab: "+info.Title, "", "")
}

// selectCell makes the cell under the cursor active and records which field
// was examined. Re-selecting the already-active cell is a no-op.
func (m Model) selectCell() Model {
	if len(m.rows) == 0 {
		return m
	}
	row := m.rows[m.cursorRow]
	col := domain.Columns[m.cursorCol]
	ref := domain.CellRef{RowID: row.ID, Column: col}
	if m.activeCell == ref {
		return m
	}
	m.activeCell = ref

	// Truncate the trail to the project and sheet crumbs before appending
	// the synthesized cell label.
	if len(m.breadcrumbs) > 2 {
		m.breadcrumbs = m.breadcrumbs[:2]
	}
	label := row.Item
	if len(label) > 15 {
		label = label[:15] + "..."
	}
	m.breadcrumbs = append(m.breadcrumbs, domain.Breadcrumb{Label: "Row: " + label, Path: "#"})

	ctx := cellContext(row, col)
	details := "Value: " + row.Value(col) + ". Context: " + ctx
	return m.appendLog(domain.LogSelectCell, "Audit: "+string(col), details, ref.String(), m.activeDocID)
}

// cellContext describes the interaction for the audit trail.
func cellContext(row domain.SpreadsheetRow, col domain.ColumnKey) string {
	switch col {
	case domain.ColumnItem:
		return "Item: " + row.Item
	case domain.ColumnTotal:
		return "Reviewing Total Cost for " + row.Item
	case domain.ColumnContractA, domain.ColumnContractB, domain.ColumnContractC:
		return "Checking " + string(col) + " for " + row.Item
	}
	return row.Item
}

// pinRow substantiates the row under the cursor against the currently open
// document. Suppressed for rows hidden by the arbitration filter.
func (m Model) pinRow() Model {
	if len(m.rows) == 0 {
		return m
	}
	row := m.rows[m.cursorRow]
	if m.arbitrationMode && !row.ArbitrationRelevant {
		return m
	}
	details := "Linked Row " + row.ID + " to document " + m.activeDocID + " as evidence"
	return m.appendLog(domain.LogPinLogic, "Logic Substantiated", details, row.ID, m.activeDocID)
}

// toggleArbitrationMode flips the display filter. Data is never altered;
// non-relevant rows are only visually suppressed.
func (m Model) toggleArbitrationMode() Model {
	m.arbitrationMode = !m.arbitrationMode
	desc := "View: Standard Budget"
	if m.arbitrationMode {
		desc = "Filter: Arbitration Claims"
	}
	m = m.resize()
	return m.appendLog(domain.LogNavigate, desc, "", "", "")
}

// openDocument selects a document by identifier. Pure selection, no fetch;
// opening the already-open document is a no-op.
func (m Model) openDocument(docID string) Model {
	if m.activeDocID == docID {
		return m
	}
	m.activeDocID = docID
	m = m.refreshDocViewport()
	cellID := ""
	if !m.activeCell.IsZero() {
		cellID = m.activeCell.String()
	}
	return m.appendLog(domain.LogOpenDocument, "Reviewed Document", "Ref ID: "+docID, cellID, docID)
}

// closeDocument returns the left pane to the evidence list.
func (m Model) closeDocument() Model {
	m.activeDocID = ""
	return m
}

// importFile stages a local evidence file, prepends it to the collection,
// opens it, and logs the action. Image extensions yield the image kind; any
// other accepted extension defaults to the document kind.
func (m Model) importFile(path string) Model {
	staged, err := m.uploads.Import(path)
	if err != nil {
		m.logger.Warn("evidence import failed", zap.String("path", path), zap.Error(err))
		m.notice = "Could not import file: " + err.Error()
		return m
	}

	kind := domain.KindPDF
	if staged.IsImage {
		kind = domain.KindImage
	}
	doc := domain.DocumentFile{
		ID:         staged.ID,
		Name:       staged.Name,
		Kind:       kind,
		Preview:    formatUploadPreview(staged.SizeKB),
		Date:       staged.Date,
		URL:        staged.Path,
		IsUploaded: true,
	}
	m.documents = append([]domain.DocumentFile{doc}, m.documents...)
	m.docCursor = 0
	m.activeDocID = doc.ID
	m = m.refreshDocViewport()
	return m.appendLog(domain.LogOpenDocument, "Document Upload", "Uploaded and opened: "+doc.Name, "", doc.ID)
}

// submitSearch issues a row lookup for the current query. Empty input is a
// silent no-op. The triggering control disables itself for the duration.
func (m Model) submitSearch() (Model, tea.Cmd) {
	query := strings.TrimSpace(m.searchInput.Value())
	if query == "" || m.searching {
		return m, nil
	}
	m.searching = true
	m.searchSeq++
	return m, m.resolveQueryCmd(m.searchSeq, query)
}

// applySearchResult handles a lookup outcome. Stale responses (superseded by
// a newer request) are discarded outright.
func (m Model) applySearchResult(msg searchResultMsg) Model {
	if msg.seq != m.searchSeq {
		return m
	}
	m.searching = false

	if !msg.match.Found() {
		m.notice = "No matching calculation logic found."
		return m
	}

	// Select the matched row's total cell and surface the model's
	// explanation verbatim in the trail.
	m.activeCell = domain.CellRef{RowID: msg.match.RowID, Column: domain.ColumnTotal}
	for i, row := range m.rows {
		if row.ID == msg.match.RowID {
			m.cursorRow = i
			m.cursorCol = len(domain.Columns) - 1
			break
		}
	}
	m.searchInput.SetValue("")
	return m.appendLog(domain.LogSearch, "Forensic Search", msg.match.Explanation, msg.match.RowID, "")
}

// generateNarrative starts drafting the claim narrative. Disallowed while a
// generation is in flight or when the trail is empty.
func (m Model) generateNarrative() (Model, tea.Cmd) {
	if m.generating || m.logStore.Len() == 0 {
		return m, nil
	}
	m.generating = true
	m.narrativeSeq++
	return m, m.draftNarrativeCmd(m.narrativeSeq, m.logStore.Entries())
}

// applyNarrative opens the narrative modal. The gateway guarantees non-empty
// displayable text even on failure, and the trail records that a report was
// generated either way.
func (m Model) applyNarrative(msg narrativeReadyMsg) Model {
	if msg.seq != m.narrativeSeq {
		return m
	}
	m.generating = false
	m.narrative = msg.text
	m.showNarrative = true
	m.copied = false
	return m.appendLog(domain.LogNavigate, "Report Generation", "Generated draft expert witness narrative", "", "")
}
