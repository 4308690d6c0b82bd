package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	_ "xclone/docs" // swagger docs

	"xclone/internal/auth"
	"xclone/internal/cache"
	"xclone/internal/config"
	"xclone/internal/db"
	"xclone/internal/handler"
	"xclone/internal/logger"
	"xclone/internal/metrics"
	"xclone/internal/model"
	"xclone/internal/repository"
	"xclone/internal/router"
	"xclone/internal/service"
)

// @title Account API
// @version 1.0
// @description Signup, login, logout and session lookup with cookie-carried JWT sessions.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name jwt
func main() {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		if err := gormDB.Migrator().DropTable(&model.Follow{}, &model.User{}); err != nil {
			log.Warn("drop tables", zap.Error(err))
		}
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Follow{}); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn("redis unavailable, running without cache and token revocation", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	cancelPing()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	authMetrics := metrics.NewAuth(registry)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.SessionTTL)
	tokenStore := auth.NewTokenStore(cacheClient)
	sessions := auth.NewSessions(jwtService, cfg.CookieName, !cfg.IsDevelopment())

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, userService, sessions, log, authMetrics)
	userHandler := handler.NewUserHandler(userService, log, authMetrics)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Deps{
		Config:      cfg,
		Logger:      log,
		Gatherer:    registry,
		JWTService:  jwtService,
		TokenStore:  tokenStore,
		AuthHandler: authHandler,
		UserHandler: userHandler,
	})

	log.Info("swagger documentation available", zap.String("url", swaggerURL(cfg)))

	addr := ":" + cfg.ServerPort
	go func() {
		log.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.AppEnv), zap.String("db", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if len(host) >= 7 && host[:7] == "http://" || len(host) >= 8 && host[:8] == "https://" {
		return host + "/swagger/index.html"
	}
	return "http://" + host + "/swagger/index.html"
}
