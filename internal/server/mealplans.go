package server

import (
	"net/http"

	"planifer-miam/internal/auth"
	"planifer-miam/internal/mealplan"
)

type mealRequest struct {
	RecipeID    int64  `json:"recipe_id"`
	PlannedDate string `json:"planned_date"`
	MealType    string `json:"meal_type"`
}

func (s *Server) handleListMeals(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	meals, err := s.deps.Meals.ListByUser(r.Context(), userID)
	if err != nil {
		s.log.Error("meal list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list planned meals")
		return
	}
	if meals == nil {
		meals = []mealplan.Meal{}
	}
	writeJSON(w, http.StatusOK, meals)
}

func (s *Server) handleCreateMeal(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req mealRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := mealplan.ParseDate(req.PlannedDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid planned_date, expected YYYY-MM-DD")
		return
	}
	slot, err := mealplan.ParseSlot(req.MealType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid meal_type")
		return
	}

	rec, err := s.deps.Recipes.Get(r.Context(), userID, req.RecipeID)
	if err != nil {
		s.log.Error("recipe lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create planned meal")
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	meal := mealplan.Meal{UserID: userID, RecipeID: req.RecipeID, Date: date, Slot: slot}
	id, err := s.deps.Meals.Create(r.Context(), meal)
	if err != nil {
		s.log.Error("meal create failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create planned meal")
		return
	}
	meal.ID = id
	writeJSON(w, http.StatusCreated, meal)
}

func (s *Server) handleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid planned meal id")
		return
	}

	deleted, err := s.deps.Meals.Delete(r.Context(), userID, id)
	if err != nil {
		s.log.Error("meal delete failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete planned meal")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "planned meal not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
