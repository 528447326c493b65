package recipe

import (
	"strings"
	"testing"
)

const jsonLDPage = `<!DOCTYPE html>
<html><head>
<title>Gratin de pâtes</title>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Gratin de pâtes",
  "description": "Un gratin simple.",
  "recipeYield": "4 personnes",
  "recipeIngredient": ["400 g de pâtes", "200 g de fromage râpé"],
  "recipeInstructions": [
    {"@type": "HowToStep", "text": "Cuire les pâtes."},
    {"@type": "HowToStep", "text": "Gratiner au four."}
  ]
}
</script>
</head><body></body></html>`

const graphPage = `<html><head>
<script type="application/ld+json">
{
  "@graph": [
    {"@type": "WebPage", "name": "Accueil"},
    {
      "@type": "Recipe",
      "name": "Salade verte",
      "recipeYield": 2,
      "recipeIngredient": ["1 laitue"],
      "recipeInstructions": "Laver et essorer la salade."
    }
  ]
}
</script>
</head><body></body></html>`

func TestExtract(t *testing.T) {
	t.Run("HowToSteps", func(t *testing.T) {
		imported, err := Extract(strings.NewReader(jsonLDPage))
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if imported.Name != "Gratin de pâtes" {
			t.Errorf("Expected name 'Gratin de pâtes', got '%s'", imported.Name)
		}
		if imported.Servings != 4 {
			t.Errorf("Expected 4 servings, got %d", imported.Servings)
		}
		if len(imported.Ingredients) != 2 {
			t.Errorf("Expected 2 ingredient lines, got %d", len(imported.Ingredients))
		}
		if !strings.Contains(imported.Instructions, "Cuire les pâtes.") {
			t.Errorf("Expected instructions to contain first step, got '%s'", imported.Instructions)
		}
	})

	t.Run("GraphWrapper", func(t *testing.T) {
		imported, err := Extract(strings.NewReader(graphPage))
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if imported.Name != "Salade verte" {
			t.Errorf("Expected name 'Salade verte', got '%s'", imported.Name)
		}
		if imported.Servings != 2 {
			t.Errorf("Expected 2 servings, got %d", imported.Servings)
		}
		if imported.Instructions != "Laver et essorer la salade." {
			t.Errorf("Unexpected instructions '%s'", imported.Instructions)
		}
	})

	t.Run("NoRecipe", func(t *testing.T) {
		_, err := Extract(strings.NewReader(`<html><body><p>pas de recette</p></body></html>`))
		if err == nil {
			t.Fatal("Expected an error for a page without a recipe, got nil")
		}
	})
}
