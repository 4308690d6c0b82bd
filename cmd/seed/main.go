package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"xclone/internal/auth"
	"xclone/internal/cache"
	"xclone/internal/config"
	"xclone/internal/db"
	"xclone/internal/logger"
	"xclone/internal/model"
	"xclone/internal/repository"
	"xclone/internal/service"
)

func main() {
	source := flag.String("source", "cmd/seed/users.json", "path or http(s) URL of the seed users JSON")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	log.Info("starting seed", zap.String("source", *source))

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal("connect to database", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Follow{}); err != nil {
		log.Fatal("run migrations", zap.Error(err))
	}

	entries, err := loadSeedUsers(*source)
	if err != nil {
		log.Fatal("load seed users", zap.Error(err))
	}
	log.Info("loaded seed users", zap.Int("count", len(entries)))

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	userRepo := repository.NewUserRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.SessionTTL)
	s := &seeder{
		auth:  service.NewAuthService(userRepo, jwtService, auth.NewTokenStore(cacheClient)),
		users: service.NewUserService(userRepo, cacheClient),
		repo:  userRepo,
		log:   log,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := s.run(ctx, entries)
	if err != nil {
		log.Fatal("seed users", zap.Error(err))
	}

	log.Info("seed completed",
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped),
		zap.Int("follows", res.Follows),
	)
}
