// Package domain defines the shared data model for QS Desk: spreadsheet rows,
// evidence documents, Logic Log entries, breadcrumbs, and cell references.
// All values are passed by copy; components never share mutable state.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// LOGIC LOG
// =============================================================================

// LogType classifies an investigative action recorded in the Logic Log.
// The set is closed; every consumption site switches exhaustively so adding
// a new type is a compile-time obligation.
type LogType int

const (
	LogNavigate LogType = iota
	LogSelectCell
	LogOpenDocument
	LogSearch
	LogPinLogic
)

// String returns the audit-trail tag for the log type.
func (t LogType) String() string {
	switch t {
	case LogNavigate:
		return "NAVIGATE"
	case LogSelectCell:
		return "SELECT_CELL"
	case LogOpenDocument:
		return "OPEN_DOC"
	case LogSearch:
		return "SEARCH"
	case LogPinLogic:
		return "PIN_LOGIC"
	}
	return fmt.Sprintf("LogType(%d)", int(t))
}

// LogicLogEntry is one appended record in the audit trail. Entries are never
// edited or deleted; insertion order is chronological order.
type LogicLogEntry struct {
	ID            string
	Timestamp     time.Time
	Type          LogType
	Description   string
	Details       string
	RelatedCellID string
	RelatedDocID  string
}

// Line serializes the entry as the one-line timestamped summary fed to the
// narrative prompt.
func (e LogicLogEntry) Line() string {
	details := ""
	if e.Details != "" {
		details = " (" + e.Details + ")"
	}
	return fmt.Sprintf("- [%s] %s: %s%s", e.Timestamp.Format("15:04:05"), e.Type, e.Description, details)
}

// =============================================================================
// SPREADSHEET
// =============================================================================

// SheetID identifies one of the two fixed worksheets.
type SheetID int

const (
	SheetBudget SheetID = iota
	SheetEquipment
)

func (s SheetID) String() string {
	switch s {
	case SheetBudget:
		return "budget"
	case SheetEquipment:
		return "equipment"
	}
	return fmt.Sprintf("SheetID(%d)", int(s))
}

// SpreadsheetRow is one line item of the final account. Total is expected to
// equal the sum of the three contract columns for this dataset; the
// application performs no computation on the values.
type SpreadsheetRow struct {
	ID                  string  `yaml:"id"`
	Item                string  `yaml:"item"`
	ContractA           float64 `yaml:"contract_a"`
	ContractB           float64 `yaml:"contract_b"`
	ContractC           float64 `yaml:"contract_c"`
	Total               float64 `yaml:"total"`
	ArbitrationRelevant bool    `yaml:"arbitration_relevant"`
	FormulaDescription  string  `yaml:"formula"`
}

// ColumnKey names one selectable field of a row.
type ColumnKey string

const (
	ColumnItem      ColumnKey = "item"
	ColumnContractA ColumnKey = "contractA"
	ColumnContractB ColumnKey = "contractB"
	ColumnContractC ColumnKey = "contractC"
	ColumnTotal     ColumnKey = "total"
)

// Columns lists the selectable columns in display order.
var Columns = []ColumnKey{ColumnItem, ColumnContractA, ColumnContractB, ColumnContractC, ColumnTotal}

// Value returns the row's value for the given column. Item returns the label;
// numeric columns return their formatted amount.
func (r SpreadsheetRow) Value(col ColumnKey) string {
	switch col {
	case ColumnItem:
		return r.Item
	case ColumnContractA:
		return FormatAmount(r.ContractA)
	case ColumnContractB:
		return FormatAmount(r.ContractB)
	case ColumnContractC:
		return FormatAmount(r.ContractC)
	case ColumnTotal:
		return FormatAmount(r.Total)
	}
	return ""
}

// FormatAmount renders a contract value with thousands separators and two
// decimal places, matching the workbook display format.
func FormatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	neg := false
	if strings.HasPrefix(intPart, "-") {
		neg = true
		intPart = intPart[1:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

// CellRef is the composite reference to one cell: row identifier plus column
// key. At most one cell is active at a time.
type CellRef struct {
	RowID  string
	Column ColumnKey
}

// String renders the canonical "rowID-columnKey" cell identifier.
func (c CellRef) String() string {
	return c.RowID + "-" + string(c.Column)
}

// IsZero reports whether the reference points at no cell.
func (c CellRef) IsZero() bool {
	return c.RowID == ""
}

// =============================================================================
// DOCUMENTS
// =============================================================================

// DocKind classifies an evidence document for rendering. Closed set;
// consumption sites switch exhaustively.
type DocKind int

const (
	KindContract DocKind = iota
	KindPDF
	KindEmail
	KindImage
)

func (k DocKind) String() string {
	switch k {
	case KindContract:
		return "CONTRACT"
	case KindPDF:
		return "PDF"
	case KindEmail:
		return "EMAIL"
	case KindImage:
		return "IMAGE"
	}
	return fmt.Sprintf("DocKind(%d)", int(k))
}

// ParseDocKind maps the serialized tag back to a kind.
func ParseDocKind(s string) (DocKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CONTRACT":
		return KindContract, nil
	case "PDF":
		return KindPDF, nil
	case "EMAIL":
		return KindEmail, nil
	case "IMAGE":
		return KindImage, nil
	}
	return 0, fmt.Errorf("unknown document kind %q", s)
}

// UnmarshalYAML decodes the kind from its string tag in the embedded datasets.
func (k *DocKind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var tag string
	if err := unmarshal(&tag); err != nil {
		return err
	}
	kind, err := ParseDocKind(tag)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// DocumentFile is one evidence document. Mock entries exist for the session
// lifetime; uploaded entries are created on import and reference a staged
// local copy via URL until the session ends.
type DocumentFile struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	Kind       DocKind `yaml:"type"`
	Preview    string  `yaml:"preview"`
	Date       string  `yaml:"date"`
	URL        string  `yaml:"-"`
	IsUploaded bool    `yaml:"-"`
}

// =============================================================================
// NAVIGATION
// =============================================================================

// Breadcrumb is one element of the navigation trail; the last element is the
// current location.
type Breadcrumb struct {
	Label string
	Path  string
}
