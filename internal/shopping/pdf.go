package shopping

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDFFilename is the download filename for the printable shopping list.
const PDFFilename = "liste_courses.pdf"

// RenderPDF renders the shopping list as an A4 document with the date range
// as a header. An empty list renders a valid empty-state document.
func RenderPDF(lines []Line, rng Range) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Liste de courses"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	period := fmt.Sprintf("Du %s au %s", rng.Start.Format("02/01/2006"), rng.End.Format("02/01/2006"))
	pdf.Cell(0, 8, tr(period))
	pdf.Ln(12)

	if len(lines) == 0 {
		pdf.SetFont("Arial", "I", 11)
		pdf.Cell(0, 8, tr("Aucun ingrédient à acheter pour cette période."))
	} else {
		renderTable(pdf, tr, lines)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func renderTable(pdf *fpdf.Fpdf, tr func(string) string, lines []Line) {
	const (
		colName   = 80.0
		colQty    = 35.0
		colUnit   = 25.0
		colNeeded = 35.0
		rowHeight = 8.0
	)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colName, rowHeight, tr("Ingrédient"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, rowHeight, tr("Quantité totale"), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colUnit, rowHeight, tr("Unité"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(colNeeded, rowHeight, tr("À acheter"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, line := range lines {
		pdf.CellFormat(colName, rowHeight, tr(line.Ingredient.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, rowHeight, formatQuantity(line.TotalQuantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colUnit, rowHeight, tr(line.Unit), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colNeeded, rowHeight, formatQuantity(line.NeededQuantity), "1", 1, "R", false, 0, "")
	}
}

// formatQuantity prints whole quantities without a decimal part.
func formatQuantity(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%.2f", q)
}
