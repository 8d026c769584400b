package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"receitas-backend/internal/config"
	"receitas-backend/internal/handlers"
	"receitas-backend/internal/router"
	"receitas-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Receitas Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Bind AI Providers ────
	ctx := context.Background()
	transcriber, extractor, err := services.BindProviders(ctx, cfg)
	if err != nil {
		log.Fatalf("✗ AI provider initialization failed: %v", err)
	}
	if cfg.OpenAIAPIKey != "" {
		log.Println("✓ OpenAI provider bound (Whisper + chat)")
	} else {
		log.Println("✓ Gemini provider bound (transcription + extraction)")
	}

	// ──── Step 3: Initialize Services ────
	tool := services.NewMediaTool(cfg.YtDlpPath)
	metadataService := services.NewMetadataService(tool, cfg.EnableToolMetadata)
	acquirer := services.NewAcquirer(tool, cfg.PreferTikTokMusic)
	normalizer := services.NewNormalizer(cfg.FFmpegPath, cfg.MaxUploadBytes)
	pipeline := services.NewPipeline(metadataService, acquirer, normalizer, transcriber, extractor)
	thumbnailService := services.NewThumbnailService(metadataService)

	// ──── Step 4: Initialize Handlers ────
	videoHandler := handlers.NewVideoHandler(pipeline, cfg.OpenAIAPIKey != "", cfg.GeminiAPIKey != "")
	imageHandler := handlers.NewImageHandler(thumbnailService)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(videoHandler, imageHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// A single request covers download, transcode, transcription, and
		// extraction; the write timeout has to outlast all of them.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("✗ Server shutdown error: %v", err)
		}
	}()

	log.Printf("✓ Server listening on :%s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("✗ Server failed: %v", err)
	}
}
