// Command server runs the document generation HTTP API.
//
// @title DocGen API
// @version 1.0
// @description Placeholder entities, clients, values and DOCX templates merged into generated documents.
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"docgen/internal/config"
	"docgen/internal/email/noop"
	"docgen/internal/email/ses"
	"docgen/internal/handler"
	"docgen/internal/metrics"
	"docgen/internal/port"
	"docgen/internal/repository/postgres"
	"docgen/internal/router"
	"docgen/internal/service"
	s3storage "docgen/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

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

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	entityRepo := postgres.NewEntityRepo(db)
	clientRepo := postgres.NewClientRepo(db)
	valueRepo := postgres.NewValueRepo(db)
	templateRepo := postgres.NewTemplateRepo(db)
	historyRepo := postgres.NewHistoryRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	emailSender, err := newEmailSender(&cfg.Email)
	if err != nil {
		return err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var reg *prom.Registry
	if cfg.Metrics.Enabled {
		reg = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
	}

	// Initialize services
	entitySvc := service.NewEntityService(entityRepo)
	clientSvc := service.NewClientService(clientRepo)
	valueSvc := service.NewValueService(valueRepo, entityRepo, clientRepo)
	templateSvc := service.NewTemplateService(templateRepo, s3Client, &cfg.S3)
	generateSvc := service.NewGenerateService(templateRepo, clientRepo, historyRepo, valueSvc,
		s3Client, emailSender, recorder, &cfg.S3, &cfg.Generate)
	historySvc := service.NewHistoryService(historyRepo, clientRepo, templateRepo, s3Client, &cfg.S3)

	// Setup router
	r := router.Setup(cfg, router.Handlers{
		Health:   handler.NewHealthHandler(db),
		Entity:   handler.NewEntityHandler(entitySvc),
		Client:   handler.NewClientHandler(clientSvc),
		Value:    handler.NewValueHandler(valueSvc),
		Template: handler.NewTemplateHandler(templateSvc),
		Generate: handler.NewGenerateHandler(generateSvc),
		History:  handler.NewHistoryHandler(historySvc),
	}, recorder, reg)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (%s)", cfg.Server.Port, cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		sender, err := ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		return sender, nil
	case "", "noop":
		return noop.NewNoopSender(), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
