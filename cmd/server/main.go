package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"casa_portal_go/apiclient"
	"casa_portal_go/config"
	"casa_portal_go/db"
	"casa_portal_go/middleware"
	"casa_portal_go/services"
	"casa_portal_go/services/formcache"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// newFormMetaCache selects the form metadata cache backend. The returned close func is never nil.
func newFormMetaCache(cfg *config.Config, logger *zap.Logger) (formcache.Cache, func(), error) {
	if cfg.FormMetaCache != "sqlite" {
		logger.Info("form metadata cache: memory", zap.Duration("ttl", cfg.FormMetaCacheTTL))
		return formcache.NewMemoryCache(cfg.FormMetaCacheTTL), func() {}, nil
	}

	conn, err := db.Open(cfg.DBPath, cfg.Environment)
	if err != nil {
		return nil, func() {}, err
	}
	cache, err := formcache.NewGormCache(conn, cfg.FormMetaCacheTTL)
	if err != nil {
		_ = db.Close(conn)
		return nil, func() {}, err
	}
	logger.Info("form metadata cache: sqlite", zap.String("path", cfg.DBPath), zap.Duration("ttl", cfg.FormMetaCacheTTL))
	return cache, func() { _ = db.Close(conn) }, nil
}

func main() {
	cfg := config.Load()
	logger := newLogger(cfg)
	defer logger.Sync()

	sealer, err := middleware.NewSealer(cfg.SessionSecret)
	if err != nil {
		logger.Fatal("Failed to initialize session cookies", zap.Error(err))
	}

	formMeta, closeCache, err := newFormMetaCache(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize form metadata cache", zap.Error(err))
	}
	defer closeCache()

	api := apiclient.New(cfg, logger)
	deps := services.Deps{
		Logger:   logger,
		Config:   cfg,
		FormMeta: formMeta,
		Notifier: services.NewMailer(cfg, logger),
		Archiver: services.NewExportArchiver(services.NewArchiveStore(cfg, logger), cfg.ExportArchive, logger),
	}

	middleware.InitAssetVersions("static", logger)

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, middleware.CSRFHeader, "HX-Request", "HX-Target"},
		AllowCredentials: len(cfg.AllowedOrigins) > 0 && cfg.AllowedOrigins[0] != "*",
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         hstsMaxAge(cfg),
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(middleware.CSPNonce(middleware.HTMXOrigin))
	e.Use(middleware.Session(cfg, sealer))
	e.Use(middleware.CSRF(cfg))
	e.Use(middleware.Services(api, deps))

	e.Static("/static", "static")
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	loginLimiter := middleware.NewLoginRateLimiter(cfg.LoginRatePerMinute)
	stopCleanup := make(chan struct{})
	go loginLimiter.RunCleanup(10*time.Minute, stopCleanup)

	registerRoutes(e, loginLimiter)

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.ServerPort), zap.String("backend", cfg.APIBaseURL))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	close(stopCleanup)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func hstsMaxAge(cfg *config.Config) int {
	if cfg.IsProduction() {
		return 31536000
	}
	return 0
}
