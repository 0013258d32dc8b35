package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chem1sto/test-moscow-metro/internal/api"
	"github.com/chem1sto/test-moscow-metro/internal/api/handlers"
	"github.com/chem1sto/test-moscow-metro/internal/config"
	"github.com/chem1sto/test-moscow-metro/internal/repositories"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

//go:generate swag init -g main.go -d ./,../../internal -o ../../docs --outputTypes go

// @title test_moscow_metro
// @version 1.0
// @description Users, their posts and user photos.
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.Load()

	// Connect to database
	db, err := repositories.Open(cfg.DB_URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	photos, staticDir, err := newPhotoStore(cfg)
	if err != nil {
		return err
	}

	handler := api.SetupRouter(api.Deps{
		Config:    cfg,
		Users:     repositories.NewUserRepo(db),
		Posts:     repositories.NewPostRepo(db),
		Photos:    photos,
		StaticDir: staticDir,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: handler,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting %s on port: %s", cfg.AppTitle, cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not listen on port %s: %w", cfg.Port, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Gracefully shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Println("Server shutdown complete")
	return nil
}

// newPhotoStore picks R2 when it is configured, the local upload directory otherwise.
// The returned directory is the one to serve as static files, empty for R2.
func newPhotoStore(cfg config.Config) (handlers.PhotoStore, string, error) {
	if cfg.R2.Enabled() {
		return repositories.NewR2Photos(cfg.R2), "", nil
	}
	disk, err := repositories.NewDiskPhotos(cfg.UploadDir, cfg.StaticMount, cfg.PublicBaseURL)
	if err != nil {
		return nil, "", err
	}
	return disk, disk.Dir(), nil
}
