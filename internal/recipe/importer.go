package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Imported is a recipe draft extracted from an external page. Ingredient
// entries are the raw text lines from the source; matching them to the
// user's ingredient catalog happens at the API layer.
type Imported struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Instructions string   `json:"instructions"`
	Servings     int      `json:"servings"`
	Ingredients  []string `json:"ingredients"`
}

// Importer fetches recipe pages and extracts structured data from their
// schema.org Recipe JSON-LD blocks.
type Importer struct {
	httpClient *http.Client
}

// NewImporter creates a new Importer.
func NewImporter() *Importer {
	return &Importer{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ImportFromURL fetches the page and extracts a recipe draft.
func (imp *Importer) ImportFromURL(ctx context.Context, url string) (*Imported, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := imp.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page fetch error: status %d", resp.StatusCode)
	}

	return Extract(resp.Body)
}

// Extract parses HTML and returns the first schema.org Recipe found in a
// JSON-LD script block.
func Extract(r io.Reader) (*Imported, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var imported *Imported
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if rec := decodeJSONLD(sel.Text()); rec != nil {
			imported = rec
			return false
		}
		return true
	})

	if imported == nil {
		return nil, fmt.Errorf("no schema.org recipe found in page")
	}
	return imported, nil
}

// jsonLDRecipe mirrors the subset of schema.org Recipe the importer reads.
// Several fields have more than one legal shape across sites, so they are
// decoded as raw JSON first.
type jsonLDRecipe struct {
	Type         json.RawMessage `json:"@type"`
	Graph        []jsonLDRecipe  `json:"@graph"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Yield        json.RawMessage `json:"recipeYield"`
	Ingredients  []string        `json:"recipeIngredient"`
	Instructions json.RawMessage `json:"recipeInstructions"`
}

func decodeJSONLD(raw string) *Imported {
	var node jsonLDRecipe
	if err := json.Unmarshal([]byte(raw), &node); err != nil {
		// Some sites put a JSON array at the top level.
		var nodes []jsonLDRecipe
		if err := json.Unmarshal([]byte(raw), &nodes); err != nil {
			return nil
		}
		for _, n := range nodes {
			if rec := fromNode(n); rec != nil {
				return rec
			}
		}
		return nil
	}
	return fromNode(node)
}

func fromNode(node jsonLDRecipe) *Imported {
	for _, child := range node.Graph {
		if rec := fromNode(child); rec != nil {
			return rec
		}
	}
	if !isRecipeType(node.Type) {
		return nil
	}
	return &Imported{
		Name:         node.Name,
		Description:  node.Description,
		Instructions: decodeInstructions(node.Instructions),
		Servings:     decodeYield(node.Yield),
		Ingredients:  node.Ingredients,
	}
}

// isRecipeType handles "@type": "Recipe" as well as the list form
// ["Recipe", "NewsArticle"].
func isRecipeType(raw json.RawMessage) bool {
	var single string
	if json.Unmarshal(raw, &single) == nil {
		return single == "Recipe"
	}
	var many []string
	if json.Unmarshal(raw, &many) == nil {
		for _, t := range many {
			if t == "Recipe" {
				return true
			}
		}
	}
	return false
}

// decodeInstructions handles the three shapes recipeInstructions takes in
// the wild: a plain string, a list of strings, or a list of HowToStep
// objects.
func decodeInstructions(raw json.RawMessage) string {
	var text string
	if json.Unmarshal(raw, &text) == nil {
		return strings.TrimSpace(text)
	}

	var steps []string
	if json.Unmarshal(raw, &steps) == nil {
		return strings.TrimSpace(strings.Join(steps, "\n"))
	}

	var howTo []struct {
		Text string `json:"text"`
	}
	if json.Unmarshal(raw, &howTo) == nil {
		parts := make([]string, 0, len(howTo))
		for _, step := range howTo {
			if step.Text != "" {
				parts = append(parts, step.Text)
			}
		}
		return strings.TrimSpace(strings.Join(parts, "\n"))
	}
	return ""
}

var yieldNumber = regexp.MustCompile(`\d+`)

// decodeYield extracts a serving count from recipeYield, which may be a
// number, a string like "4 personnes", or a list of either.
func decodeYield(raw json.RawMessage) int {
	var n int
	if json.Unmarshal(raw, &n) == nil && n > 0 {
		return n
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if m := yieldNumber.FindString(s); m != "" {
			if v, err := strconv.Atoi(m); err == nil {
				return v
			}
		}
		return 1
	}
	var many []json.RawMessage
	if json.Unmarshal(raw, &many) == nil {
		for _, item := range many {
			if v := decodeYield(item); v > 1 {
				return v
			}
		}
	}
	return 1
}
