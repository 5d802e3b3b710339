package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Sheet pairs a worksheet name with the table it holds.
type Sheet struct {
	Name  string
	Table Table
}

// WriteWorkbook saves one worksheet per sheet, in order, to an XLSX file at path.
// NaN cells are left blank and infinities are written as the text inf/-inf.
func WriteWorkbook(path string, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("workbook %s: no sheets", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return fmt.Errorf("sheet %s: %w", s.Name, err)
		}
		if err := writeSheet(f, s); err != nil {
			return fmt.Errorf("sheet %s: %w", s.Name, err)
		}
	}
	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, s Sheet) error {
	header := make([]any, len(s.Table.Columns))
	for i, name := range s.Table.ColumnNames() {
		header[i] = name
	}
	if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
		return err
	}
	for r, row := range s.Table.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = workbookCell(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.Name, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}

func workbookCell(v any) any {
	if f, ok := v.(float64); ok && math.IsInf(f, 0) {
		return FormatCell(f)
	}
	return finite(v)
}
