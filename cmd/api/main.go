package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xelth-com/hostelprintgo/internal/blob"
	"github.com/xelth-com/hostelprintgo/internal/config"
	"github.com/xelth-com/hostelprintgo/internal/database"
	"github.com/xelth-com/hostelprintgo/internal/handlers"
	"github.com/xelth-com/hostelprintgo/internal/models"
	"github.com/xelth-com/hostelprintgo/internal/render"
	"github.com/xelth-com/hostelprintgo/internal/store"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (detects embedded vs external automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in the shutdown handler below

	// 3. Auto-migrate schema
	log.Println("🚀 Synchronizing database schema...")
	if err := db.AutoMigrate(&models.PrintRequest{}); err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Select blob backend
	var blobs blob.Store
	uploadDir := ""
	switch cfg.Blob.Backend {
	case config.BackendDrive:
		blobs, err = blob.NewDriveStore(context.Background(),
			cfg.Blob.DriveCredentialsFile, cfg.Blob.DriveFolderID)
		if err != nil {
			log.Fatalf("Failed to init Drive blob store: %v", err)
		}
		log.Println("☁️  Blob store: [Google Drive]")
	default:
		diskStore, derr := blob.NewDiskStore(cfg.Blob.UploadDir)
		if derr != nil {
			log.Fatalf("Failed to init disk blob store: %v", derr)
		}
		blobs = diskStore
		uploadDir = diskStore.Dir()
		log.Printf("💾 Blob store: [Local Disk] %s", uploadDir)
	}

	// 5. Set up presentation and HTTP router
	pages, err := render.New()
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	router := handlers.NewRouter(store.NewGormStore(db.DB), blobs, pages, handlers.Options{
		RequireDocuments: cfg.RequireDocuments,
		UploadDir:        uploadDir,
	})

	// 6. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("🚀 Server running on http://localhost:%s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
