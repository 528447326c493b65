package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"planifer-miam/internal/auth"
	"planifer-miam/internal/ingredient"
	"planifer-miam/internal/mealplan"
	"planifer-miam/internal/metrics"
	"planifer-miam/internal/recipe"
	"planifer-miam/internal/shopping"
	"planifer-miam/internal/stock"
	"planifer-miam/internal/user"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps holds the collaborators the HTTP server exposes.
type Deps struct {
	Log         *slog.Logger
	Auth        *auth.Manager
	Users       *user.Repository
	Ingredients *ingredient.Repository
	Recipes     *recipe.Repository
	Stock       *stock.Repository
	Meals       *mealplan.Repository
	Shopping    *shopping.Service
	Importer    *recipe.Importer
	Metrics     *metrics.Metrics
	DataDir     string
}

// Server is the HTTP API for the meal planner.
type Server struct {
	srv  *http.Server
	log  *slog.Logger
	deps Deps

	// now is swapped in tests to pin "today".
	now func() time.Time
}

// New builds the server and its routes.
func New(addr string, deps Deps) *Server {
	s := &Server{
		log:  deps.Log,
		deps: deps,
		now:  time.Now,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)

	mux.Handle("GET /api/ingredients", s.protected(s.handleListIngredients))
	mux.Handle("POST /api/ingredients", s.protected(s.handleCreateIngredient))
	mux.Handle("GET /api/ingredients/{id}", s.protected(s.handleGetIngredient))
	mux.Handle("PUT /api/ingredients/{id}", s.protected(s.handleUpdateIngredient))
	mux.Handle("DELETE /api/ingredients/{id}", s.protected(s.handleDeleteIngredient))

	mux.Handle("GET /api/recipes", s.protected(s.handleListRecipes))
	mux.Handle("POST /api/recipes", s.protected(s.handleCreateRecipe))
	mux.Handle("POST /api/recipes/import", s.protected(s.handleImportRecipe))
	mux.Handle("GET /api/recipes/{id}", s.protected(s.handleGetRecipe))
	mux.Handle("PUT /api/recipes/{id}", s.protected(s.handleUpdateRecipe))
	mux.Handle("DELETE /api/recipes/{id}", s.protected(s.handleDeleteRecipe))

	mux.Handle("GET /api/stock", s.protected(s.handleListStock))
	mux.Handle("POST /api/stock", s.protected(s.handleCreateStock))
	mux.Handle("DELETE /api/stock/{id}", s.protected(s.handleDeleteStock))

	mux.Handle("GET /api/planned-meals", s.protected(s.handleListMeals))
	mux.Handle("POST /api/planned-meals", s.protected(s.handleCreateMeal))
	mux.Handle("DELETE /api/planned-meals/{id}", s.protected(s.handleDeleteMeal))

	mux.Handle("GET /api/shopping-list/generate", s.protected(s.handleGenerateShoppingList))
	mux.Handle("GET /api/shopping-list/download", s.protected(s.handleDownloadShoppingList))

	mux.Handle("GET /api/dashboard/stats", s.protected(s.handleDashboardStats))
	mux.Handle("GET /api/dashboard/recent-meals", s.protected(s.handleRecentMeals))
	mux.Handle("GET /api/dashboard/expiring-items", s.protected(s.handleExpiringItems))

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	var handler http.Handler = mux
	if deps.Metrics != nil {
		handler = deps.Metrics.Instrument(handler)
	}
	handler = s.logRequests(handler)

	s.srv = &http.Server{Addr: addr, Handler: handler}
	return s
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start begins serving; it blocks until shutdown or failure.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) protected(h http.HandlerFunc) http.Handler {
	return s.deps.Auth.Middleware(h)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).String(),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"sys":    metrics.GetSysHealth(s.deps.DataDir),
	})
}
