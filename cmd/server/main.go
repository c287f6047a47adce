package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"anoa.com/magangportal/internal/bootstrap"
	"anoa.com/magangportal/internal/config"
	"anoa.com/magangportal/internal/entity"
	"anoa.com/magangportal/internal/server"
	"anoa.com/magangportal/pkg/database"
	"anoa.com/magangportal/pkg/logger"
	"anoa.com/magangportal/pkg/storage"
	"anoa.com/magangportal/pkg/validator"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck
	zap.ReplaceGlobals(log)

	if err := validator.Register(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	db, err := database.Connect(cfg.DSN(), cfg.IsDevelopment())
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		log.Fatal("failed to seed roles", zap.Error(err))
	}
	if cfg.IsDevelopment() {
		if err := bootstrap.SeedAdminUser(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal("failed to seed admin user", zap.Error(err))
		}
	}
	if cfg.SeedSampleData {
		if err := bootstrap.SeedSampleData(db, entity.Today(time.Now(), cfg.Timezone)); err != nil {
			log.Fatal("failed to seed sample data", zap.Error(err))
		}
	}

	redisClient := connectRedis(cfg.RedisURL, log)

	fileStorage, err := storage.NewCloudinaryStorage(cfg.CloudinaryURL, cfg.CloudinaryCloudName)
	if err != nil {
		log.Fatal("failed to initialize cloudinary storage", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg, db, redisClient, fileStorage, log)
	if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
		log.Error("server exited with error", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	log.Info("server stopped")
}

// connectRedis returns nil when REDIS_URL is unset or unreachable; the
// server then runs without submission rate limiting.
func connectRedis(url string, log *zap.Logger) *redis.Client {
	if url == "" {
		log.Warn("REDIS_URL not set, rate limiting disabled")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("invalid REDIS_URL, rate limiting disabled", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, rate limiting disabled", zap.Error(err))
		_ = client.Close()
		return nil
	}
	return client
}
