package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sujalbistaa/feedhub/internal/auth"
	"github.com/sujalbistaa/feedhub/internal/blob"
	"github.com/sujalbistaa/feedhub/internal/board"
	"github.com/sujalbistaa/feedhub/internal/config"
	"github.com/sujalbistaa/feedhub/internal/db"
	routes "github.com/sujalbistaa/feedhub/internal/http"
	"github.com/sujalbistaa/feedhub/internal/logging"
	"github.com/sujalbistaa/feedhub/internal/models"
	"github.com/sujalbistaa/feedhub/internal/ws"
)

func main() {
	cfg := config.Load()

	database, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		logging.Log.Fatalf("Failed to initialize database: %v", err)
	}

	logging.Log.Info("Running database migrations...")
	if err := database.AutoMigrate(models.All()...); err != nil {
		logging.Log.Fatalf("Failed to run migrations: %v", err)
	}
	logging.Log.Info("Migrations complete.")

	hub := ws.NewHub()
	go hub.Run()

	blobs, err := blob.NewDiskStore(cfg.UploadDir, "/uploads")
	if err != nil {
		logging.Log.Fatalf("Failed to initialize blob store: %v", err)
	}

	threads := board.NewThreadService(database, hub)
	warnings := board.NewWarningService(database)
	env := &routes.Env{
		Threads:   threads,
		Reactions: board.NewReactionService(database, hub),
		Warnings:  warnings,
		News:      board.NewNewsService(database),
		Mod:       board.NewModeration(threads, warnings),
		Admins:    auth.NewAdminStore(database),
		Blobs:     blobs,
		Hub:       hub,
	}

	router := gin.Default()
	routes.SetupRoutes(router, cfg, env)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logging.Log.Infof("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log.Fatalf("listen: %s", err)
		}
	}()

	<-quit
	logging.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logging.Log.Info("Server exiting")
}
