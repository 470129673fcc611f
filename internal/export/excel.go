package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"docsense/internal/domain"
)

// entityHeaders is the column layout of the entities sheet.
var entityHeaders = []string{"Type", "Value", "Confidence", "Context"}

// Workbook builds an XLSX workbook with one sheet listing the extracted
// entities. An empty entity list yields a header-only sheet.
func Workbook(res *domain.AnalysisResult) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Entities"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, fmt.Errorf("export.Workbook: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("export.Workbook: %w", err)
	}
	index, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(index)

	for i, h := range entityHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range res.Entities {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, string(e.Type))
		write(2, e.Value)
		write(3, e.Confidence)
		write(4, e.Context)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 40)
	_ = f.SetColWidth(sheet, "C", "C", 12)
	_ = f.SetColWidth(sheet, "D", "D", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export.Workbook: %w", err)
	}
	return buf.Bytes(), nil
}
