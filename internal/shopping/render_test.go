package shopping

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sampleLines() []Line {
	return []Line{
		{Ingredient: LineIngredient{ID: 1, Name: "Pâtes"}, TotalQuantity: 600, Unit: "g", NeededQuantity: 300},
		{Ingredient: LineIngredient{ID: 2, Name: "Tomates"}, TotalQuantity: 150, Unit: "g", NeededQuantity: 150},
	}
}

func testRange(t *testing.T) Range {
	t.Helper()
	rng, err := ParseRange("2026-09-01", fixedNow)
	if err != nil {
		t.Fatalf("ParseRange failed: %v", err)
	}
	return rng
}

func TestRenderPDF(t *testing.T) {
	t.Run("WithLines", func(t *testing.T) {
		doc, err := RenderPDF(sampleLines(), testRange(t))
		if err != nil {
			t.Fatalf("RenderPDF failed: %v", err)
		}
		if !bytes.HasPrefix(doc, []byte("%PDF")) {
			t.Errorf("Expected a PDF document, got prefix %q", doc[:min(8, len(doc))])
		}
	})

	t.Run("EmptyListStillRenders", func(t *testing.T) {
		doc, err := RenderPDF(nil, testRange(t))
		if err != nil {
			t.Fatalf("RenderPDF failed for empty list: %v", err)
		}
		if !bytes.HasPrefix(doc, []byte("%PDF")) {
			t.Error("Expected a valid PDF document for the empty state")
		}
	})
}

func TestRenderXLSX(t *testing.T) {
	doc, err := RenderXLSX(sampleLines(), testRange(t))
	if err != nil {
		t.Fatalf("RenderXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(doc))
	if err != nil {
		t.Fatalf("Failed to reopen spreadsheet: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Liste de courses", "A4")
	if err != nil {
		t.Fatalf("Failed to read cell: %v", err)
	}
	if got != "Pâtes" {
		t.Errorf("Expected first row ingredient 'Pâtes', got '%s'", got)
	}

	t.Run("EmptyListStillRenders", func(t *testing.T) {
		if _, err := RenderXLSX(nil, testRange(t)); err != nil {
			t.Fatalf("RenderXLSX failed for empty list: %v", err)
		}
	})
}
