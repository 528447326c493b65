package server

import (
	"net/http"

	"planifer-miam/internal/auth"
	"planifer-miam/internal/mealplan"
	"planifer-miam/internal/stock"
)

// handleDashboardStats reports planned meals for the current Monday-to-
// Sunday week, the stock entry count, and entries expiring within 3 days.
func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	now := s.now()

	// Monday of the current week; Weekday() counts Sunday as 0.
	offset := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)

	mealsThisWeek, err := s.deps.Meals.CountInRange(r.Context(), userID,
		monday.Format(mealplan.DateLayout), sunday.Format(mealplan.DateLayout))
	if err != nil {
		s.log.Error("meal count failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load dashboard stats")
		return
	}

	stockCount, err := s.deps.Stock.CountByUser(r.Context(), userID)
	if err != nil {
		s.log.Error("stock count failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load dashboard stats")
		return
	}

	expiringCount, err := s.deps.Stock.CountExpiringWithin(r.Context(), userID, 3, now)
	if err != nil {
		s.log.Error("expiring count failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load dashboard stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"plannedMealsThisWeek": mealsThisWeek,
		"stockItemsCount":      stockCount,
		"expiringItemsCount":   expiringCount,
	})
}

func (s *Server) handleRecentMeals(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	meals, err := s.deps.Meals.Recent(r.Context(), userID, 5)
	if err != nil {
		s.log.Error("recent meals failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load recent meals")
		return
	}
	if meals == nil {
		meals = []mealplan.Meal{}
	}
	writeJSON(w, http.StatusOK, meals)
}

func (s *Server) handleExpiringItems(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	items, err := s.deps.Stock.ExpiringWithin(r.Context(), userID, 7, s.now())
	if err != nil {
		s.log.Error("expiring items failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load expiring items")
		return
	}
	if items == nil {
		items = []stock.Entry{}
	}
	writeJSON(w, http.StatusOK, items)
}
