// Package mockdata holds the static demo datasets: two worksheets of contract
// line items and the seed evidence documents. The datasets are embedded as
// YAML, decoded once at init, and never mutated; accessors return copies.
package mockdata

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"qsdesk/internal/domain"
)

//go:embed data/*.yaml
var dataFS embed.FS

var (
	budgetRows    []domain.SpreadsheetRow
	equipmentRows []domain.SpreadsheetRow
	seedDocuments []domain.DocumentFile
)

func init() {
	mustDecode("data/budget.yaml", &budgetRows)
	mustDecode("data/equipment.yaml", &equipmentRows)
	mustDecode("data/documents.yaml", &seedDocuments)
}

func mustDecode(path string, out interface{}) {
	raw, err := dataFS.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("mockdata: missing embedded dataset %s: %v", path, err))
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		panic(fmt.Sprintf("mockdata: invalid dataset %s: %v", path, err))
	}
}

// Rows returns a copy of the row set for the given worksheet.
func Rows(sheet domain.SheetID) []domain.SpreadsheetRow {
	switch sheet {
	case domain.SheetBudget:
		return append([]domain.SpreadsheetRow(nil), budgetRows...)
	case domain.SheetEquipment:
		return append([]domain.SpreadsheetRow(nil), equipmentRows...)
	}
	return nil
}

// Documents returns a copy of the seed evidence documents.
func Documents() []domain.DocumentFile {
	return append([]domain.DocumentFile(nil), seedDocuments...)
}

// ColumnHeading is the two-line header shown above a contract column.
type ColumnHeading struct {
	Title string
	Sub   string
}

// SheetInfo carries the display metadata for a worksheet: tab title, the
// workbook file name shown in the toolbar, and the column headings.
type SheetInfo struct {
	ID          domain.SheetID
	Title       string
	FileName    string
	ItemHeading string
	Columns     [3]ColumnHeading
}

// Info returns the display metadata for the given worksheet.
func Info(sheet domain.SheetID) SheetInfo {
	switch sheet {
	case domain.SheetEquipment:
		return SheetInfo{
			ID:          domain.SheetEquipment,
			Title:       "Equipment Schedule",
			FileName:    "Plant_And_Equipment_Schedule_Mar24.xlsx",
			ItemHeading: "Equipment / Plant Item",
			Columns: [3]ColumnHeading{
				{Title: "Base Hire", Sub: "Fixed Costs"},
				{Title: "Op. Extras", Sub: "Fuel/Maint"},
				{Title: "Idle Time", Sub: "Claimable"},
			},
		}
	default:
		return SheetInfo{
			ID:          domain.SheetBudget,
			Title:       "Master Budget",
			FileName:    "Master_Budget_Consolidated_V4.xlsx",
			ItemHeading: "Description of Works",
			Columns: [3]ColumnHeading{
				{Title: "Contract A", Sub: "Original"},
				{Title: "Contract B", Sub: "Var (Civil)"},
				{Title: "Contract C", Sub: "Var (MEP)"},
			},
		}
	}
}
