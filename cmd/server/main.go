package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/pazarlio/marketplace/internal/adapter/http/handler"
	"github.com/pazarlio/marketplace/internal/adapter/http/router"
	"github.com/pazarlio/marketplace/internal/adapter/messaging/nats"
	"github.com/pazarlio/marketplace/internal/adapter/repository/cache"
	"github.com/pazarlio/marketplace/internal/adapter/repository/mongodb"
	"github.com/pazarlio/marketplace/internal/config"
	listingusecase "github.com/pazarlio/marketplace/internal/listing/usecase"
	"github.com/pazarlio/marketplace/internal/mailer"
	userusecase "github.com/pazarlio/marketplace/internal/user/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// MongoDB
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())
	if err := mongoClient.Ping(connectCtx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	db := mongoClient.Database(cfg.MongoDB)

	// Redis
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
	if err := redisClient.Ping(connectCtx).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// NATS
	publisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	listingRepo := mongodb.NewListingRepository(db, logger)
	userRepo := mongodb.NewUserRepository(db, logger)
	listingCache := cache.NewListingCache(redisClient)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)

	listingUC := listingusecase.NewListingUsecase(listingRepo, listingCache, publisher, logger)
	promotionUC := listingusecase.NewPromotionUsecase(listingRepo, listingCache, publisher, logger)
	userUC := userusecase.NewUserUsecase(userRepo, listingRepo, smtpMailer, cfg.JWTSecret, logger)

	listingHandler := handler.NewListingHandler(listingUC, promotionUC, logger)
	userHandler := handler.NewUserHandler(userUC, logger)

	mux := router.New(listingHandler, userHandler, userRepo, cfg.JWTSecret, logger)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: mux,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
