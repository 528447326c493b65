package shopping

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXFilename is the download filename for the spreadsheet export.
const XLSXFilename = "liste_courses.xlsx"

// RenderXLSX renders the shopping list as a spreadsheet with the same
// fields as the PDF document.
func RenderXLSX(lines []Line, rng Range) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Liste de courses"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	period := fmt.Sprintf("Du %s au %s", rng.Start.Format("02/01/2006"), rng.End.Format("02/01/2006"))
	_ = f.SetCellValue(sheet, "A1", period)

	headers := []string{"Ingrédient", "Quantité totale", "Unité", "À acheter"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, line := range lines {
		values := []any{line.Ingredient.Name, line.TotalQuantity, line.Unit, line.NeededQuantity}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+4)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
