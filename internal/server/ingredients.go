package server

import (
	"net/http"

	"planifer-miam/internal/auth"
	"planifer-miam/internal/ingredient"
)

type ingredientRequest struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

func (s *Server) handleListIngredients(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	ingredients, err := s.deps.Ingredients.List(r.Context(), userID, r.URL.Query().Get("search"))
	if err != nil {
		s.log.Error("ingredient list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list ingredients")
		return
	}
	if ingredients == nil {
		ingredients = []ingredient.Ingredient{}
	}
	writeJSON(w, http.StatusOK, ingredients)
}

func (s *Server) handleGetIngredient(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ingredient id")
		return
	}

	ing, err := s.deps.Ingredients.Get(r.Context(), userID, id)
	if err != nil {
		s.log.Error("ingredient get failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get ingredient")
		return
	}
	if ing == nil {
		writeError(w, http.StatusNotFound, "ingredient not found")
		return
	}
	writeJSON(w, http.StatusOK, ing)
}

func (s *Server) handleCreateIngredient(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req ingredientRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.Unit == "" {
		writeError(w, http.StatusBadRequest, "name and unit are required")
		return
	}

	ing := ingredient.Ingredient{Name: req.Name, Unit: req.Unit}
	id, err := s.deps.Ingredients.Create(r.Context(), userID, ing)
	if err != nil {
		s.log.Error("ingredient create failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create ingredient")
		return
	}
	ing.ID = id
	writeJSON(w, http.StatusCreated, ing)
}

func (s *Server) handleUpdateIngredient(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ingredient id")
		return
	}

	existing, err := s.deps.Ingredients.Get(r.Context(), userID, id)
	if err != nil {
		s.log.Error("ingredient get failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update ingredient")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "ingredient not found")
		return
	}

	var req ingredientRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Unit != "" {
		existing.Unit = req.Unit
	}

	if _, err := s.deps.Ingredients.Update(r.Context(), userID, *existing); err != nil {
		s.log.Error("ingredient update failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update ingredient")
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

func (s *Server) handleDeleteIngredient(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ingredient id")
		return
	}

	deleted, err := s.deps.Ingredients.Delete(r.Context(), userID, id)
	if err != nil {
		s.log.Error("ingredient delete failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete ingredient")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "ingredient not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
