package server

import (
	"net/http"
	"time"

	"planifer-miam/internal/auth"
	"planifer-miam/internal/mealplan"
	"planifer-miam/internal/stock"
)

type stockRequest struct {
	IngredientID   *int64  `json:"ingredient_id"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	ExpirationDate string  `json:"expiration_date"`
}

func (s *Server) handleListStock(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	entries, err := s.deps.Stock.FindByUser(r.Context(), userID)
	if err != nil {
		s.log.Error("stock list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list stock")
		return
	}
	if entries == nil {
		entries = []stock.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateStock(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req stockRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "quantity must not be negative")
		return
	}

	if req.IngredientID != nil {
		ing, err := s.deps.Ingredients.Get(r.Context(), userID, *req.IngredientID)
		if err != nil {
			s.log.Error("ingredient lookup failed", "err", err)
			writeError(w, http.StatusInternalServerError, "failed to create stock entry")
			return
		}
		if ing == nil {
			writeError(w, http.StatusNotFound, "ingredient not found")
			return
		}
	}

	var expiration *time.Time
	if req.ExpirationDate != "" {
		t, err := parseTimestamp(req.ExpirationDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid expiration_date")
			return
		}
		expiration = &t
	}

	id, err := s.deps.Stock.Create(r.Context(), userID, req.IngredientID, req.Quantity, req.Unit, expiration)
	if err != nil {
		s.log.Error("stock create failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create stock entry")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleDeleteStock(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid stock entry id")
		return
	}

	deleted, err := s.deps.Stock.Delete(r.Context(), userID, id)
	if err != nil {
		s.log.Error("stock delete failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete stock entry")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "stock entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseTimestamp accepts a date-only value or a full RFC 3339 timestamp.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(mealplan.DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
