package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/KhinMyintMyatThu/you-app-backend/internal/api"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/auth"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/config"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/database"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/events"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/kafka"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/logger"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/middleware"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/repository"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/service"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/ws"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	zl, err := logger.New(cfg.App.Development())
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	mc, err := database.NewMongoClient(cfg.Mongo.URI)
	if err != nil {
		zl.Fatalw("mongo init failed", "err", err)
	}
	defer func() { _ = mc.Disconnect(context.Background()) }()

	rdb := database.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	db := mc.Database(cfg.Mongo.Database)
	userRepo := repository.NewMongoUserRepo(db, cfg.Mongo.UserCollection)
	msgStore := repository.NewMongoMessageStore(db, cfg.Mongo.MessageCollection)

	pub := events.NewKafkaPublisher(cfg.Kafka.Brokers, map[string]string{
		events.ChannelDefault: cfg.Kafka.NotificationsTopic,
	})
	defer func() { _ = pub.Close() }()

	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTTLMin)*time.Minute)

	userSvc := service.NewUserService(userRepo, tokens, zl)
	msgSvc := service.NewMessageService(userRepo, msgStore, pub, zl)

	wsrv := ws.NewServer(userRepo, tokens, cfg.WS, zl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cons := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.NotificationsTopic, cfg.Kafka.GroupID, zl)
	go func() {
		if err := cons.Start(ctx, wsrv.HandleEvent); err != nil && ctx.Err() == nil {
			zl.Errorw("notification consumer stopped", "err", err)
		}
	}()

	limiter := middleware.NewRateLimiter(rdb, cfg.RateLimit.Prefix, cfg.RateLimit.PerMinute, time.Minute)

	app := api.NewServer(cfg, userSvc, msgSvc, tokens, limiter, wsrv, zl)

	go func() {
		if err := app.Listen(":" + cfg.App.PortString()); err != nil {
			zl.Fatalw("server listen failed", "err", err)
		}
	}()
	zl.Infow("server started", "port", cfg.App.Port, "env", cfg.App.Env)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout())
	defer shutdownCancel()

	_ = app.ShutdownWithContext(shutdownCtx)
	_ = cons.Close()
	zl.Info("server stopped")
}
