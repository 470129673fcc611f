package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"docsense/internal/analyzer"
	"docsense/internal/config"
	"docsense/internal/extract"
	"docsense/internal/gateway/gemini"
	"docsense/internal/handler"
	"docsense/internal/ocr"
	"docsense/internal/repository/postgres"
	"docsense/internal/router"
	"docsense/internal/service"
	s3storage "docsense/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	sessionRepo := postgres.NewSessionRepo(db)
	documentRepo := postgres.NewDocumentRepo(db)
	analysisRepo := postgres.NewAnalysisRepo(db)
	chatRepo := postgres.NewChatRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize the model gateway and analysis pipeline
	gateway, err := gemini.NewClient(context.Background(), cfg.Gemini)
	if err != nil {
		return fmt.Errorf("failed to initialize model gateway: %w", err)
	}
	defer gateway.Close()

	recognizer := ocr.New(cfg.OCR)
	extractor := extract.New(recognizer, cfg.Upload.MaxBytes())
	an := analyzer.New(gateway)

	// Initialize services
	sessionSvc := service.NewSessionService(sessionRepo, documentRepo, analysisRepo, chatRepo, s3Client, cfg.Session)
	documentSvc := service.NewDocumentService(documentRepo, analysisRepo, s3Client, extractor, an, &cfg.S3)
	chatSvc := service.NewChatService(documentRepo, chatRepo, s3Client, extractor, an)
	exportSvc := service.NewExportService(documentRepo, documentSvc)

	// Initialize handlers
	sessionH := handler.NewSessionHandler(sessionSvc)
	documentH := handler.NewDocumentHandler(documentSvc)
	chatH := handler.NewChatHandler(chatSvc)
	exportH := handler.NewExportHandler(exportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, sessionSvc, sessionH, documentH, chatH, exportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
