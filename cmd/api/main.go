package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"vodguard/internal/core/domain"
	"vodguard/internal/core/services"
	httphandlers "vodguard/internal/handlers/http"
	"vodguard/internal/infrastructure/middleware"
	"vodguard/internal/infrastructure/monitoring"
	"vodguard/internal/infrastructure/repositories/memory"
	"vodguard/internal/infrastructure/streaming"
	"vodguard/pkg/config"
	"vodguard/pkg/logger"
	"vodguard/pkg/tokenstore"
	"vodguard/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	startTime := time.Now()

	// Try multiple config paths
	configPaths := []string{
		"configs/config.yaml",
		"./configs/config.yaml",
		"/etc/vodguard/config.yaml",
		"config.yaml",
	}

	var cfg *config.Config
	var err error

	for _, path := range configPaths {
		cfg, err = config.Load(path)
		if err == nil {
			break
		}
	}

	if err != nil {
		// Fallback to defaults if config cannot be loaded
		cfg = config.DefaultConfig()
	}

	// Initialize logger
	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()

	log := zapLogger.Sugar()

	// Initialize tracing
	tp, err := tracing.Init(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: "vodguard",
		JaegerURL:   cfg.Tracing.JaegerURL,
		Environment: cfg.Tracing.Environment,
		SampleRate:  cfg.Tracing.SampleRate,
	})
	if err != nil {
		log.Fatalw("failed to initialize tracing", "error", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Errorw("error shutting down tracer provider", "error", err)
		}
	}()

	// Initialize repositories
	contents := memory.NewMemoryContentRepository()
	enrollments := memory.NewMemoryEnrollmentRepository()
	users := memory.NewMemoryUserDirectory()

	if n := indexMediaRoot(cfg.Media.Root, contents, log); n > 0 {
		log.Infow("indexed media root", "root", cfg.Media.Root, "videos", n)
	}
	seedAdminFromEnv(users, log)

	// Token stores own the background sweepers
	streamTokens := tokenstore.New[domain.StreamToken](cfg.Media.SweepInterval.Std())
	defer streamTokens.Stop()
	refreshTokens := tokenstore.New[domain.RefreshToken](cfg.Media.SweepInterval.Std())
	defer refreshTokens.Stop()

	monitoring.RegisterStoreSize("stream_tokens", streamTokens.Len)
	monitoring.RegisterStoreSize("refresh_tokens", refreshTokens.Len)

	// Initialize services
	accessService := services.NewContentAccessService(contents, enrollments, streamTokens, cfg.Media.StreamTokenTTL.Std())
	sessionService := services.NewSessionService(
		cfg.Auth.JWTSecret,
		cfg.Auth.Issuer,
		cfg.Auth.Audience,
		cfg.Auth.AccessTokenTTL.Std(),
		cfg.Auth.RefreshTokenTTL.Std(),
		refreshTokens,
		users,
	)

	// Path guard pins all media access under the configured root
	guard, err := streaming.NewGuard(cfg.Media.Root)
	if err != nil {
		log.Fatalw("failed to initialize media root guard", "root", cfg.Media.Root, "error", err)
	}

	// Initialize monitoring
	prometheusCollector := monitoring.NewPrometheusCollector()

	streamer := streaming.NewStreamer(accessService, contents, guard, cfg.Media.ChunkSize, log, prometheusCollector)

	// Initialize HTTP handlers
	authHandler := httphandlers.NewAuthHandler(sessionService, prometheusCollector)
	videoHandler := httphandlers.NewVideoHandler(accessService, streamer, cfg.Media.StreamTokenTTL.Std(), prometheusCollector)

	// Configure Gin
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware(logger.NewContextLogger(zapLogger)))
	router.Use(middleware.NewHTTPRateLimitMiddleware(cfg))
	if cfg.Tracing.Enabled {
		router.Use(middleware.TracingMiddleware())
	}
	router.Use(middleware.ErrorHandlerMiddleware(log))

	auth := middleware.AuthMiddleware(sessionService)
	authHandler.SetupRoutes(router, auth)
	videoHandler.SetupRoutes(router, auth)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"uptime":    time.Since(startTime).String(),
		})
	})

	// Readiness endpoint checks the media root is reachable
	healthChecker := monitoring.NewHealthChecker()
	healthChecker.AddCheck("media_root", func(ctx context.Context) error {
		_, err := os.Stat(cfg.Media.Root)
		return err
	}, 2*time.Second)

	router.GET("/ready", func(c *gin.Context) {
		status := healthChecker.CheckAll(c.Request.Context())
		code := 200
		if !status.Healthy() {
			code = 503
		}
		c.JSON(code, status)
	})

	// Prometheus metrics endpoint
	if cfg.Monitoring.PrometheusEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
		log.Info("Prometheus metrics enabled")
	}

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting VodGuard API server on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for shutdown signals or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalw("Server failed", "error", err)
	case sig := <-sigChan:
		log.Infow("Received shutdown signal", "signal", sig)
	}

	log.Info("Shutting down VodGuard API server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Error during server shutdown", "error", err)
		if closeErr := srv.Close(); closeErr != nil {
			log.Errorw("Error force closing server", "error", closeErr)
		}
	} else {
		log.Info("Server shutdown gracefully")
	}

	log.Info("VodGuard API server stopped")
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".ogg":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
}

// indexMediaRoot registers every video file under root as local content.
// The content ID is the path relative to root with separators flattened,
// minus the extension. A sibling .jpg or .png with the same base name
// becomes the thumbnail.
func indexMediaRoot(root string, contents *memory.MemoryContentRepository, log *zap.SugaredLogger) int {
	count := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !videoExtensions[ext] {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		base := strings.TrimSuffix(rel, filepath.Ext(rel))
		id := strings.ReplaceAll(filepath.ToSlash(base), "/", "_")

		thumbnail := ""
		for _, tExt := range []string{".jpg", ".png"} {
			if _, err := os.Stat(filepath.Join(root, base+tExt)); err == nil {
				thumbnail = base + tExt
				break
			}
		}

		contents.Add(&domain.Content{
			ID:            domain.ContentID(id),
			Title:         filepath.Base(base),
			Path:          rel,
			Source:        domain.SourceLocal,
			ThumbnailPath: thumbnail,
		})
		count++
		return nil
	})
	if err != nil {
		log.Warnw("media root walk failed", "root", root, "error", err)
	}
	return count
}

// seedAdminFromEnv creates a bootstrap admin account when
// VODGUARD_ADMIN_EMAIL and VODGUARD_ADMIN_PASSWORD are both set.
func seedAdminFromEnv(users *memory.MemoryUserDirectory, log *zap.SugaredLogger) {
	email := os.Getenv("VODGUARD_ADMIN_EMAIL")
	password := os.Getenv("VODGUARD_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorw("failed to hash admin password", "error", err)
		return
	}

	users.Add(&domain.User{
		ID:           domain.UserID(uuid.NewString()),
		Email:        strings.ToLower(email),
		Name:         "Administrator",
		Role:         domain.RoleAdmin,
		Status:       domain.StatusApproved,
		Active:       true,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	})
	log.Infow("seeded bootstrap admin account", "email", email)
}
