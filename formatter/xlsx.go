package formatter

import (
	"call-analysis/models"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet names used by WriteXLSX.
const (
	SheetShifts    = "Shifts"
	SheetResources = "Resources"
	SheetHourly    = "Hourly"
)

// WriteXLSX writes the analysis as a workbook with one sheet per table.
func WriteXLSX(result *models.Analysis, w io.Writer) error {
	data := prepareAnalysisData(result)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetShifts); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetResources, SheetHourly} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	rows := [][]any{{"Shift", "Calls", "Non-Repetitive Calls"}}
	for _, s := range data.Shifts {
		rows = append(rows, []any{s.Name, s.Calls, s.NonRepetitive})
	}
	if err := writeRows(f, SheetShifts, rows); err != nil {
		return err
	}

	rows = [][]any{{"Time Section", "Total Calls", "Resources", "Calls Per Resource"}}
	for _, r := range data.Resources {
		rows = append(rows, []any{r.Name, r.TotalCalls, r.Resources, r.CallsPerResource})
	}
	if err := writeRows(f, SheetResources, rows); err != nil {
		return err
	}

	rows = [][]any{{"Hour", "Calls"}}
	for _, h := range data.Hours {
		rows = append(rows, []any{h.Label, h.Calls})
	}
	if err := writeRows(f, SheetHourly, rows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
