package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"release-desk/config"
	"release-desk/database"
	aiapi "release-desk/internal/api/ai"
	uploadsapi "release-desk/internal/api/uploads"
	routes "release-desk/internal/app/http"
	"release-desk/internal/app/http/middleware"
	"release-desk/internal/logging"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

func main() {
	config.LoadEnv()

	logger, err := logging.New(logging.Options{Level: config.LOG_LEVEL, File: config.LOG_FILE})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if config.GIN_MODE != "" {
		gin.SetMode(config.GIN_MODE)
	}

	db, err := database.InitDB(config.DB_URL, logger)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	ctx := context.Background()
	deps := routes.Deps{
		DB:        db,
		Logger:    logger,
		Prefix:    config.API_PREFIX,
		Presigner: newPresigner(ctx, logger),
		Bucket:    config.S3_BUCKET_NAME,
		Region:    config.AWS_REGION,
		Generator: newGenerator(ctx, logger),
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.RequestLogger(logger))

	// CORS before routes so preflights never reach the handlers
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: config.CORS_ORIGIN != "*",
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, deps)

	server := &http.Server{
		Addr:              ":" + config.PORT,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("port", config.PORT), zap.String("api_prefix", config.API_PREFIX))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server closed")
}

// newPresigner returns nil when object storage is not configured.
func newPresigner(ctx context.Context, logger *zap.Logger) uploadsapi.Presigner {
	if config.S3_BUCKET_NAME == "" || config.AWS_REGION == "" {
		logger.Warn("S3_BUCKET_NAME or AWS_REGION not set; uploads disabled")
		return nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.AWS_REGION))
	if err != nil {
		logger.Error("aws config failed; uploads disabled", zap.Error(err))
		return nil
	}
	return s3.NewPresignClient(s3.NewFromConfig(cfg))
}

// newGenerator returns nil when no Gemini key is set.
func newGenerator(ctx context.Context, logger *zap.Logger) aiapi.Generator {
	if config.GEMINI_API_KEY == "" {
		logger.Warn("GEMINI_API_KEY not set; AI generation disabled")
		return nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GEMINI_API_KEY,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Error("genai client failed; AI generation disabled", zap.Error(err))
		return nil
	}
	return client.Models
}
