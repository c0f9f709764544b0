package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"course-media/internal/adapters/handlers/http/chi"
	mediahandler "course-media/internal/adapters/handlers/http/chi/v1/media"
	"course-media/internal/adapters/repository/postgres"
	"course-media/internal/adapters/storage/minio"
	"course-media/internal/config"
	"course-media/internal/core/domain"
	"course-media/internal/core/port"
	"course-media/internal/core/service/audit"
	"course-media/internal/core/service/credential"
	mediaservice "course-media/internal/core/service/media"
	"course-media/internal/core/service/multipart"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			logger.Error("failed to close database", "error", err)
			os.Exit(1)
		}
	}(db)
	logger.Info("db connection established")

	//storage
	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}

	//repositories
	mediaRepo := postgres.NewSqlMediaRepository(db)

	//services
	credentialService := credential.NewCredentialService(minioAdapter, cfg.Minio, cfg.Upload)
	multipartService := multipart.NewMultipartService(minioAdapter, mediaRepo, cfg.Minio, cfg.Upload, logger)
	auditService := audit.NewAuditService(mediaRepo, minioAdapter, cfg.Audit, logger)
	mediaService := mediaservice.NewMediaService(mediaRepo, minioAdapter, cfg.Minio, logger)

	//http
	mediaHandler := mediahandler.NewMediaHandlerV1(credentialService, multipartService, auditService, mediaService, logger)

	router := chi.NewRouter(logger, mediaHandler, cfg.Env.Env)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	// init url refresh task
	wg.Add(1)
	go func() {
		defer wg.Done()
		initRefreshTask(ctx, auditService, cfg.Audit.RefreshEvery, logger)
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}

func initRefreshTask(ctx context.Context, service port.AuditService, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("url refresh task initialized", "interval", every)

	for {
		select {
		case <-ticker.C:
			logger.Info("url refresh task starting")
			report, err := service.Refresh(ctx, domain.AuditOptions{})
			if err != nil {
				logger.Error("failed to refresh access urls", "error", err)
			} else {
				logger.Info("url refresh task completed",
					"total", report.Total,
					"refreshed", report.Refreshed,
					"failed", report.Failed)
			}
		case <-ctx.Done():
			logger.Info("url refresh task stopped")
			return
		}
	}

}
