package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"anoa.com/charityhub/internal/auth"
	"anoa.com/charityhub/internal/bootstrap"
	"anoa.com/charityhub/internal/config"
	"anoa.com/charityhub/internal/scheduler"
	"anoa.com/charityhub/internal/server"
	"anoa.com/charityhub/pkg/database"
	"anoa.com/charityhub/pkg/logger"
	"anoa.com/charityhub/pkg/storage"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		zap.L().Fatal("database unavailable", zap.Error(err))
	}
	defer database.Close(db)

	if err := bootstrap.Migrate(db); err != nil {
		zap.L().Fatal("migration failed", zap.Error(err))
	}

	if err := bootstrap.SeedAdminUser(db, bootstrap.AdminSeed{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}); err != nil {
		zap.L().Fatal("failed to seed admin user", zap.Error(err))
	}

	if cfg.IsDevelopment() {
		if err := bootstrap.SeedDemoData(db, cfg.SeedFile); err != nil {
			zap.L().Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	redisClient := connectRedis(ctx, cfg.RedisURL)
	if redisClient != nil {
		defer redisClient.Close()
	}

	imageStorage, err := storage.NewCloudinaryStorage(cfg.CloudinaryURL, cfg.CloudinaryCloudName, cfg.CloudinaryUploadFolder)
	if err != nil {
		if !errors.Is(err, storage.ErrNotConfigured) {
			zap.L().Fatal("failed to initialize cloudinary storage", zap.Error(err))
		}
		zap.L().Info("cloudinary not configured, cover uploads disabled")
	}

	srv := server.NewServer(server.Deps{
		Config:  cfg,
		DB:      db,
		Redis:   redisClient,
		Meili:   newMeiliClient(cfg.MeiliSearchHost, cfg.MeiliMasterKey),
		Storage: imageStorage,
		Tokens:  auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
	})

	jobs := scheduler.NewScheduler()
	if srv.SearchEnabled() {
		if err := jobs.Register(scheduler.NewCampaignReindexJob(srv.Campaigns(), cfg.SearchReindexSchedule)); err != nil {
			zap.L().Fatal("failed to register reindex job", zap.Error(err))
		}
		go func() {
			if err := jobs.RunByName(ctx, scheduler.CampaignReindexJobName); err != nil {
				zap.L().Warn("initial campaign reindex failed", zap.Error(err))
			}
		}()
	}
	jobs.Start()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Run(":" + cfg.Port)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			zap.L().Error("server exited with error", zap.Error(err))
		}
	case <-ctx.Done():
		zap.L().Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Warn("http shutdown incomplete", zap.Error(err))
	}
	jobs.Stop(shutdownCtx)
}

// connectRedis returns nil when REDIS_URL is unset or unreachable; the live
// donation feed is then disabled.
func connectRedis(ctx context.Context, url string) *redis.Client {
	if url == "" {
		zap.L().Info("REDIS_URL not set, live donation feed disabled")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		zap.L().Warn("invalid REDIS_URL, live donation feed disabled", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		zap.L().Warn("redis unreachable, live donation feed disabled", zap.Error(err))
		client.Close()
		return nil
	}

	zap.L().Info("redis connected", zap.String("addr", opts.Addr))
	return client
}

func newMeiliClient(host, key string) meilisearch.ServiceManager {
	if host == "" {
		zap.L().Info("MEILISEARCH_HOST not set, campaign search uses the database")
		return nil
	}
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host + ":7700"
	}
	return meilisearch.New(host, meilisearch.WithAPIKey(key))
}
