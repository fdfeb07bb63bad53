package workspace

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qsdesk/cmd/qsdesk/ui"
	"qsdesk/internal/domain"
	"qsdesk/internal/mockdata"
)

// Fixed grid column widths inside the sheet pane. The item column takes the
// remainder.
const (
	idColWidth  = 8
	numColWidth = 13
)

// renderSheetPane draws the center spreadsheet pane: worksheet tabs, the
// formula bar, and the cell grid.
func (m Model) renderSheetPane(width, height int) string {
	inner := width - 4

	tabs := m.renderSheetTabs()
	formulaBar := m.renderFormulaBar(inner)
	grid := m.renderGrid(inner)

	body := lipgloss.JoinVertical(lipgloss.Left, tabs, formulaBar, "", grid)

	style := m.styles.Panel.Width(width - 2).Height(height - 2)
	if m.focus == FocusSheet {
		style = style.BorderForeground(m.styles.Theme.Accent)
	}
	if m.arbitrationMode {
		style = style.BorderForeground(ui.Destructive)
	}
	return style.Render(body)
}

func (m Model) renderSheetTabs() string {
	sheets := []domain.SheetID{domain.SheetBudget, domain.SheetEquipment}
	parts := make([]string, 0, len(sheets))
	for i, s := range sheets {
		label := fmt.Sprintf(" %d %s ", i+1, mockdata.Info(s).Title)
		if s == m.activeSheet {
			parts = append(parts, m.styles.Selected.Render(label))
		} else {
			parts = append(parts, m.styles.Muted.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// renderFormulaBar mirrors the workbook formula bar: the active cell
// reference and the stored formula description for its row.
func (m Model) renderFormulaBar(width int) string {
	ref := "—"
	formula := ""
	if !m.activeCell.IsZero() {
		ref = m.activeCell.String()
		for _, row := range m.rows {
			if row.ID == m.activeCell.RowID {
				formula = row.FormulaDescription
				break
			}
		}
	}
	line := m.styles.Bold.Render("fx ") + m.styles.Info.Render(ref)
	if formula != "" {
		line += m.styles.Muted.Render("  " + formula)
	}
	if lipgloss.Width(line) > width {
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}

func (m Model) renderGrid(width int) string {
	itemWidth := width - idColWidth - 4*numColWidth
	if itemWidth < 16 {
		itemWidth = 16
	}

	info := mockdata.Info(m.activeSheet)

	var sb strings.Builder

	// Two-line column header.
	sb.WriteString(m.styles.Bold.Render(
		pad("Ref", idColWidth) + pad(info.ItemHeading, itemWidth) +
			padRight(info.Columns[0].Title, numColWidth) +
			padRight(info.Columns[1].Title, numColWidth) +
			padRight(info.Columns[2].Title, numColWidth) +
			padRight("Total", numColWidth)))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(
		pad("", idColWidth) + pad("", itemWidth) +
			padRight(info.Columns[0].Sub, numColWidth) +
			padRight(info.Columns[1].Sub, numColWidth) +
			padRight(info.Columns[2].Sub, numColWidth) +
			padRight("Final", numColWidth)))
	sb.WriteString("\n")
	sb.WriteString(m.styles.RenderDivider(width))
	sb.WriteString("\n")

	for i, row := range m.rows {
		sb.WriteString(m.renderGridRow(row, i, itemWidth))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m Model) renderGridRow(row domain.SpreadsheetRow, rowIdx, itemWidth int) string {
	if m.arbitrationMode && !row.ArbitrationRelevant {
		return m.styles.Dimmed.Render(stripForDim(row, itemWidth))
	}

	id := pad(row.ID, idColWidth)
	if row.ArbitrationRelevant {
		id = m.styles.Error.Render(id)
	}

	cells := make([]string, 0, len(domain.Columns))
	for colIdx, col := range domain.Columns {
		var text string
		if col == domain.ColumnItem {
			text = pad(row.Item, itemWidth)
		} else {
			text = padRight(row.Value(col), numColWidth)
		}
		cells = append(cells, m.styleCell(text, row, rowIdx, colIdx))
	}

	return id + strings.Join(cells, "")
}

// styleCell applies, in priority order: active cell, cursor position, plain.
func (m Model) styleCell(text string, row domain.SpreadsheetRow, rowIdx, colIdx int) string {
	col := domain.Columns[colIdx]
	isActive := !m.activeCell.IsZero() && m.activeCell.RowID == row.ID && m.activeCell.Column == col
	isCursor := m.focus == FocusSheet && rowIdx == m.cursorRow && colIdx == m.cursorCol

	switch {
	case isActive:
		return m.styles.ActiveCell.Render(text)
	case isCursor:
		return m.styles.Selected.Render(text)
	default:
		return m.styles.Body.Render(text)
	}
}

// stripForDim renders a filtered-out row as one flat dimmed line so it cannot
// be mistaken for selectable content.
func stripForDim(row domain.SpreadsheetRow, itemWidth int) string {
	return pad(row.ID, idColWidth) + pad(row.Item, itemWidth) +
		padRight(domain.FormatAmount(row.ContractA), numColWidth) +
		padRight(domain.FormatAmount(row.ContractB), numColWidth) +
		padRight(domain.FormatAmount(row.ContractC), numColWidth) +
		padRight(domain.FormatAmount(row.Total), numColWidth)
}

// pad left-aligns text into a fixed cell, truncating on rune boundaries with
// an ellipsis.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width-1 {
		if width > 2 {
			runes = append(runes[:width-2], '…')
		} else {
			runes = runes[:width-1]
		}
	}
	return string(runes) + strings.Repeat(" ", width-len(runes))
}

// padRight right-aligns numeric text into a fixed cell.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return strings.Repeat(" ", width-len(s)-1) + s + " "
}
