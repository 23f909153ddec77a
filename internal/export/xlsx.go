package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cjmtools/caseintake/internal/models"
)

const xlsxSheet = "Cases"

// XLSX renders records as an Excel workbook with the same column layout and
// ordering as the CSV export.
func XLSX(records []models.CaseRecord) ([]byte, error) {
	sorted := make([]models.CaseRecord, len(records))
	copy(sorted, records)
	models.SortNewestFirst(sorted)

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range csvHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for rowIdx, r := range sorted {
		values := []string{
			r.Name,
			r.CaseNumber,
			models.TextOr(r.CrimeNumber),
			models.TextOr(r.ForwardDate),
			r.ManualNote,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
