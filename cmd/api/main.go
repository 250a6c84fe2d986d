package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docvault/internal/config"
	"docvault/internal/database"
	"docvault/internal/modules/auth"
	"docvault/internal/modules/documents"
	"docvault/internal/modules/users"
	jwtsvc "docvault/internal/pkg/jwt"
	"docvault/internal/pkg/session"
	"docvault/internal/repository"
	"docvault/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db, repository.Models()...); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	docRepo := repository.NewDocumentRepository(db)

	userService := users.NewService(userRepo, nil, logger)
	if _, err := userService.EnsureDefaultAdmin(context.Background(), cfg.DefaultAdminPassword); err != nil {
		logger.Fatal("Failed to seed default admin", zap.Error(err))
	}

	files, err := documents.NewFileStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal("Failed to prepare upload directory", zap.Error(err))
	}
	docService := documents.NewService(docRepo, files, documents.Options{
		AllowedExtensions: cfg.AllowedExtensions,
		DefaultCategory:   cfg.DefaultCategory,
	}, logger)

	j := jwtsvc.New(cfg.SecretKey, cfg.SessionTTL)

	router, err := server.New(server.Deps{
		Log:            logger,
		Sessions:       session.NewManager(j, cfg.CookieSecure),
		Auth:           auth.NewService(userRepo, logger),
		Users:          userService,
		Documents:      docService,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	if err != nil {
		logger.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting",
			zap.String("address", cfg.HTTPAddr),
			zap.String("env", cfg.AppEnv),
			zap.String("upload_dir", cfg.UploadDir))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Server exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProdLike() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
