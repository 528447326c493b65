package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"planifer-miam/internal/auth"
	"planifer-miam/internal/config"
	"planifer-miam/internal/database"
	"planifer-miam/internal/ingredient"
	"planifer-miam/internal/logger"
	"planifer-miam/internal/mealplan"
	"planifer-miam/internal/metrics"
	"planifer-miam/internal/recipe"
	"planifer-miam/internal/server"
	"planifer-miam/internal/shopping"
	"planifer-miam/internal/stock"
	"planifer-miam/internal/user"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Error("database initialization failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database ready", "path", cfg.DatabasePath)

	userRepo := user.NewRepository(db.SQL)
	ingredientRepo := ingredient.NewRepository(db.SQL)
	recipeRepo := recipe.NewRepository(db.SQL)
	stockRepo := stock.NewRepository(db.SQL)
	mealRepo := mealplan.NewRepository(db.SQL, recipeRepo)
	shoppingService := shopping.NewService(mealRepo, stockRepo)

	srv := server.New(cfg.HTTPAddr, server.Deps{
		Log:         log,
		Auth:        auth.NewManager(cfg.JWTSecret),
		Users:       userRepo,
		Ingredients: ingredientRepo,
		Recipes:     recipeRepo,
		Stock:       stockRepo,
		Meals:       mealRepo,
		Shopping:    shoppingService,
		Importer:    recipe.NewImporter(),
		Metrics:     metrics.New(),
		DataDir:     filepath.Dir(cfg.DatabasePath),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			stop()
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTPAddr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
