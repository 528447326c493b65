package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"planifer-miam/internal/auth"
	"planifer-miam/internal/database"
	"planifer-miam/internal/ingredient"
	"planifer-miam/internal/mealplan"
	"planifer-miam/internal/recipe"
	"planifer-miam/internal/shopping"
	"planifer-miam/internal/stock"
	"planifer-miam/internal/user"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	recipes := recipe.NewRepository(db.SQL)
	meals := mealplan.NewRepository(db.SQL, recipes)
	stocks := stock.NewRepository(db.SQL)

	srv := New(":0", Deps{
		Log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Auth:        auth.NewManager("test-secret"),
		Users:       user.NewRepository(db.SQL),
		Ingredients: ingredient.NewRepository(db.SQL),
		Recipes:     recipes,
		Stock:       stocks,
		Meals:       meals,
		Shopping:    shopping.NewService(meals, stocks),
		Importer:    recipe.NewImporter(),
	})
	srv.now = func() time.Time {
		return time.Date(2026, time.September, 1, 15, 30, 0, 0, time.UTC)
	}
	return srv
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return v
}

func registerAndLogin(t *testing.T, h http.Handler) string {
	t.Helper()

	rec := do(t, h, http.MethodPost, "/api/register", "", map[string]string{
		"email":    "alice@example.com",
		"name":     "Alice",
		"password": "s3cret",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Register returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "s3cret",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Login returned %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[struct {
		Token string `json:"token"`
	}](t, rec)
	if resp.Token == "" {
		t.Fatal("Expected a token in the login response")
	}
	return resp.Token
}

func createIngredient(t *testing.T, h http.Handler, token, name, unit string) int64 {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/ingredients", token, map[string]string{"name": name, "unit": unit})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create ingredient returned %d: %s", rec.Code, rec.Body.String())
	}
	return decode[ingredient.Ingredient](t, rec).ID
}

func TestAPIRequiresAuth(t *testing.T) {
	h := newTestServer(t).Handler()

	for _, path := range []string{"/api/ingredients", "/api/recipes", "/api/shopping-list/generate"} {
		rec := do(t, h, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestShoppingListFlow(t *testing.T) {
	h := newTestServer(t).Handler()
	token := registerAndLogin(t, h)

	pastaID := createIngredient(t, h, token, "Pâtes", "g")
	tomatoID := createIngredient(t, h, token, "Tomates", "g")

	rec := do(t, h, http.MethodPost, "/api/recipes", token, map[string]any{
		"name":     "Pâtes à la tomate",
		"servings": 2,
		"ingredients": []map[string]any{
			{"ingredient_id": pastaID, "quantity": 200},
			{"ingredient_id": tomatoID, "quantity": 50},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create recipe returned %d: %s", rec.Code, rec.Body.String())
	}
	recipeID := decode[recipe.Recipe](t, rec).ID

	// Three meals inside the week, one just past its end.
	for _, planned := range []struct {
		date, slot string
	}{
		{"2026-09-01", "lunch"},
		{"2026-09-03", "dinner"},
		{"2026-09-07", "dinner"},
		{"2026-09-08", "lunch"},
	} {
		rec := do(t, h, http.MethodPost, "/api/planned-meals", token, map[string]any{
			"recipe_id":    recipeID,
			"planned_date": planned.date,
			"meal_type":    planned.slot,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("Create meal on %s returned %d: %s", planned.date, rec.Code, rec.Body.String())
		}
	}

	rec = do(t, h, http.MethodPost, "/api/stock", token, map[string]any{
		"ingredient_id": pastaID,
		"quantity":      300,
		"unit":          "g",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create stock returned %d: %s", rec.Code, rec.Body.String())
	}

	t.Run("Generate", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/shopping-list/generate?startDate=2026-09-01", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("Generate returned %d: %s", rec.Code, rec.Body.String())
		}
		lines := decode[[]shopping.Line](t, rec)
		if len(lines) != 2 {
			t.Fatalf("Expected 2 lines, got %d: %+v", len(lines), lines)
		}

		pasta := lines[0]
		if pasta.Ingredient.Name != "Pâtes" {
			t.Fatalf("Expected first line for Pâtes, got %s", pasta.Ingredient.Name)
		}
		if pasta.TotalQuantity != 600 || pasta.NeededQuantity != 300 {
			t.Errorf("Expected Pâtes total 600 needed 300, got total %v needed %v", pasta.TotalQuantity, pasta.NeededQuantity)
		}

		tomato := lines[1]
		if tomato.TotalQuantity != 150 || tomato.NeededQuantity != 150 {
			t.Errorf("Expected Tomates total 150 needed 150, got total %v needed %v", tomato.TotalQuantity, tomato.NeededQuantity)
		}
	})

	t.Run("GenerateDefaultsToToday", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/shopping-list/generate", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("Generate returned %d: %s", rec.Code, rec.Body.String())
		}
		lines := decode[[]shopping.Line](t, rec)
		if len(lines) != 2 {
			t.Errorf("Expected the pinned clock to cover the same week, got %d lines", len(lines))
		}
	})

	t.Run("GenerateRejectsBadDate", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/shopping-list/generate?startDate=01/09/2026", token, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for a malformed startDate, got %d", rec.Code)
		}
	})

	t.Run("DownloadPDF", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/shopping-list/download?startDate=2026-09-01", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("Download returned %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("Expected Content-Type application/pdf, got %s", ct)
		}
		want := fmt.Sprintf("attachment; filename=%q", shopping.PDFFilename)
		if cd := rec.Header().Get("Content-Disposition"); cd != want {
			t.Errorf("Expected Content-Disposition %s, got %s", want, cd)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
			t.Error("Expected a PDF document in the response body")
		}
	})

	t.Run("DownloadXLSX", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/shopping-list/download?format=xlsx", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("Download returned %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
			t.Errorf("Unexpected Content-Type %s", ct)
		}
	})

	t.Run("DownloadRejectsUnknownFormat", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/shopping-list/download?format=csv", token, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for an unknown format, got %d", rec.Code)
		}
	})
}

func TestDashboardStats(t *testing.T) {
	h := newTestServer(t).Handler()
	token := registerAndLogin(t, h)

	pastaID := createIngredient(t, h, token, "Pâtes", "g")
	rec := do(t, h, http.MethodPost, "/api/recipes", token, map[string]any{
		"name":        "Pâtes nature",
		"ingredients": []map[string]any{{"ingredient_id": pastaID, "quantity": 100}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create recipe returned %d: %s", rec.Code, rec.Body.String())
	}
	recipeID := decode[recipe.Recipe](t, rec).ID

	// 2026-09-01 is a Tuesday, so its week runs Mon 08-31 through Sun 09-06.
	rec = do(t, h, http.MethodPost, "/api/planned-meals", token, map[string]any{
		"recipe_id":    recipeID,
		"planned_date": "2026-09-02",
		"meal_type":    "dinner",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create meal returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/api/stock", token, map[string]any{
		"ingredient_id":   pastaID,
		"quantity":        500,
		"unit":            "g",
		"expiration_date": "2026-09-02",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create stock returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/dashboard/stats", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Stats returned %d: %s", rec.Code, rec.Body.String())
	}
	stats := decode[struct {
		PlannedMealsThisWeek int `json:"plannedMealsThisWeek"`
		StockItemsCount      int `json:"stockItemsCount"`
		ExpiringItemsCount   int `json:"expiringItemsCount"`
	}](t, rec)

	if stats.PlannedMealsThisWeek != 1 {
		t.Errorf("Expected 1 planned meal this week, got %d", stats.PlannedMealsThisWeek)
	}
	if stats.StockItemsCount != 1 {
		t.Errorf("Expected 1 stock item, got %d", stats.StockItemsCount)
	}
	if stats.ExpiringItemsCount != 1 {
		t.Errorf("Expected 1 expiring item, got %d", stats.ExpiringItemsCount)
	}
}
