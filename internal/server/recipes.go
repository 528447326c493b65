package server

import (
	"net/http"
	"strconv"
	"strings"

	"planifer-miam/internal/auth"
	"planifer-miam/internal/recipe"
)

type recipeLineRequest struct {
	IngredientID int64   `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

type recipeRequest struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Instructions string              `json:"instructions"`
	Servings     int                 `json:"servings"`
	Ingredients  []recipeLineRequest `json:"ingredients"`
}

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	recipes, err := s.deps.Recipes.List(r.Context(), userID)
	if err != nil {
		s.log.Error("recipe list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	rec, err := s.deps.Recipes.Get(r.Context(), userID, id)
	if err != nil {
		s.log.Error("recipe get failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get recipe")
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req recipeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, ok := s.recipeFromRequest(w, r, userID, req)
	if !ok {
		return
	}

	id, err := s.deps.Recipes.Create(r.Context(), rec)
	if err != nil {
		s.log.Error("recipe create failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create recipe")
		return
	}

	created, err := s.deps.Recipes.Get(r.Context(), userID, id)
	if err != nil || created == nil {
		s.log.Error("recipe reload failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create recipe")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	var req recipeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, ok := s.recipeFromRequest(w, r, userID, req)
	if !ok {
		return
	}
	rec.ID = id

	updated, err := s.deps.Recipes.Update(r.Context(), rec)
	if err != nil {
		s.log.Error("recipe update failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update recipe")
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	reloaded, err := s.deps.Recipes.Get(r.Context(), userID, id)
	if err != nil || reloaded == nil {
		s.log.Error("recipe reload failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update recipe")
		return
	}
	writeJSON(w, http.StatusOK, reloaded)
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	deleted, err := s.deps.Recipes.Delete(r.Context(), userID, id)
	if err != nil {
		s.log.Error("recipe delete failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete recipe")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recipeFromRequest validates the payload and resolves its ingredient
// lines. Lines referencing an ingredient the user does not have are
// dropped, matching the tolerant write path of the web UI.
func (s *Server) recipeFromRequest(w http.ResponseWriter, r *http.Request, userID int64, req recipeRequest) (*recipe.Recipe, bool) {
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return nil, false
	}
	if req.Servings <= 0 {
		req.Servings = 1
	}

	rec := &recipe.Recipe{
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		Instructions: req.Instructions,
		Servings:     req.Servings,
	}

	for _, line := range req.Ingredients {
		if line.Quantity < 0 {
			writeError(w, http.StatusBadRequest, "ingredient quantity must not be negative")
			return nil, false
		}
		ing, err := s.deps.Ingredients.Get(r.Context(), userID, line.IngredientID)
		if err != nil {
			s.log.Error("ingredient lookup failed", "err", err)
			writeError(w, http.StatusInternalServerError, "failed to resolve ingredients")
			return nil, false
		}
		if ing == nil {
			continue
		}
		rec.Lines = append(rec.Lines, recipe.Line{IngredientID: ing.ID, Quantity: line.Quantity})
	}
	return rec, true
}

type importRequest struct {
	URL string `json:"url"`
}

// handleImportRecipe fetches an external recipe page, extracts its
// schema.org data and stores a draft recipe. Extracted ingredient text is
// matched against the user's catalog by name; unmatched lines are returned
// for manual completion.
func (s *Server) handleImportRecipe(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req importRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	imported, err := s.deps.Importer.ImportFromURL(r.Context(), req.URL)
	if err != nil {
		s.log.Warn("recipe import failed", "url", req.URL, "err", err)
		writeError(w, http.StatusBadGateway, "failed to import recipe from URL")
		return
	}

	catalog, err := s.deps.Ingredients.List(r.Context(), userID, "")
	if err != nil {
		s.log.Error("ingredient list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to import recipe")
		return
	}

	rec := &recipe.Recipe{
		UserID:       userID,
		Name:         imported.Name,
		Description:  imported.Description,
		Instructions: imported.Instructions,
		Servings:     imported.Servings,
	}

	var unmatched []string
	for _, raw := range imported.Ingredients {
		matched := false
		for _, ing := range catalog {
			if strings.Contains(strings.ToLower(raw), strings.ToLower(ing.Name)) {
				rec.Lines = append(rec.Lines, recipe.Line{
					IngredientID: ing.ID,
					Quantity:     leadingQuantity(raw),
				})
				matched = true
				break
			}
		}
		if !matched {
			unmatched = append(unmatched, raw)
		}
	}

	id, err := s.deps.Recipes.Create(r.Context(), rec)
	if err != nil {
		s.log.Error("imported recipe create failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to import recipe")
		return
	}

	created, err := s.deps.Recipes.Get(r.Context(), userID, id)
	if err != nil || created == nil {
		s.log.Error("recipe reload failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to import recipe")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"recipe":                created,
		"unmatched_ingredients": unmatched,
	})
}

// leadingQuantity parses a number at the start of an ingredient text line,
// e.g. "400 g de pâtes" -> 400. Lines without one default to 1.
func leadingQuantity(raw string) float64 {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 1
	}
	normalized := strings.ReplaceAll(fields[0], ",", ".")
	if q, err := strconv.ParseFloat(normalized, 64); err == nil && q > 0 {
		return q
	}
	return 1
}
