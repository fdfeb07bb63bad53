package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"qsdesk/internal/domain"
	"qsdesk/internal/mockdata"
)

var flagExportOut string

// exportCmd writes the embedded case workbook to a real .xlsx file so the
// datasets can be inspected or shared outside the terminal.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the case workbook to an .xlsx file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(flagExportOut)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "qsdesk_workbook.xlsx", "output file path")
}

func runExport(path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheets := []domain.SheetID{domain.SheetBudget, domain.SheetEquipment}
	for i, sheet := range sheets {
		info := mockdata.Info(sheet)
		if i == 0 {
			// Rename the default sheet rather than leaving an empty one.
			if err := f.SetSheetName("Sheet1", info.Title); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(info.Title); err != nil {
				return fmt.Errorf("add sheet %s: %w", info.Title, err)
			}
		}
		if err := writeSheet(f, sheet); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func writeSheet(f *excelize.File, sheet domain.SheetID) error {
	info := mockdata.Info(sheet)
	name := info.Title

	headers := []interface{}{
		"Ref", info.ItemHeading,
		info.Columns[0].Title, info.Columns[1].Title, info.Columns[2].Title,
		"Total", "Arbitration Relevant", "Formula",
	}
	if err := f.SetSheetRow(name, "A1", &headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range mockdata.Rows(sheet) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		values := []interface{}{
			row.ID, row.Item,
			row.ContractA, row.ContractB, row.ContractC,
			row.Total, row.ArbitrationRelevant, row.FormulaDescription,
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("write row %s: %w", row.ID, err)
		}
	}
	return nil
}
