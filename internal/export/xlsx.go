package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tallybook/tallybook/internal/core/domain"
)

const sheetName = "Report"

// generateXLSX emits the report as a single-sheet workbook laid out like the
// CSV output, with numeric cells instead of currency text so spreadsheet
// formulas keep working.
func generateXLSX(report *domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create bold style: %w", err)
	}
	currencyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(`"$"#,##0.00`)})
	if err != nil {
		return nil, fmt.Errorf("failed to create currency style: %w", err)
	}
	boldCurrencyStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: strPtr(`"$"#,##0.00`),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bold currency style: %w", err)
	}

	setBold := func(cell string) error {
		return f.SetCellStyle(sheetName, cell, cell, boldStyle)
	}

	rowNo := 1
	if err := f.SetCellValue(sheetName, cellRef(0, rowNo), report.Title); err != nil {
		return nil, err
	}
	if err := setBold(cellRef(0, rowNo)); err != nil {
		return nil, err
	}
	rowNo++
	if err := f.SetCellValue(sheetName, cellRef(0, rowNo), report.Subtitle); err != nil {
		return nil, err
	}
	rowNo += 2

	if err := f.SetCellValue(sheetName, cellRef(0, rowNo), "Account"); err != nil {
		return nil, err
	}
	if err := setBold(cellRef(0, rowNo)); err != nil {
		return nil, err
	}
	for i, header := range report.ColumnHeaders {
		if err := f.SetCellValue(sheetName, cellRef(i+1, rowNo), header); err != nil {
			return nil, err
		}
		if err := setBold(cellRef(i+1, rowNo)); err != nil {
			return nil, err
		}
	}
	rowNo++

	for _, section := range report.Sections {
		rowNo++
		if section.Title != "" {
			if err := f.SetCellValue(sheetName, cellRef(0, rowNo), section.Title); err != nil {
				return nil, err
			}
			if err := setBold(cellRef(0, rowNo)); err != nil {
				return nil, err
			}
			rowNo++
		}

		for _, row := range section.Rows {
			if err := f.SetCellValue(sheetName, cellRef(0, rowNo), row.Label); err != nil {
				return nil, err
			}
			if row.IsTotal {
				if err := setBold(cellRef(0, rowNo)); err != nil {
					return nil, err
				}
			}
			for i, value := range row.Values {
				cell := cellRef(i+1, rowNo)
				amount, _ := value.Float64()
				if err := f.SetCellValue(sheetName, cell, amount); err != nil {
					return nil, err
				}
				style := currencyStyle
				if row.IsTotal {
					style = boldCurrencyStyle
				}
				if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
					return nil, err
				}
			}
			rowNo++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellRef(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}

func strPtr(s string) *string {
	return &s
}
