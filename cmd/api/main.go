package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"dsa-tutor/internal/config"
	"dsa-tutor/internal/db"
	apihttp "dsa-tutor/internal/http"
	"dsa-tutor/internal/identity"
	"dsa-tutor/internal/llm"
	"dsa-tutor/internal/repository"
	"dsa-tutor/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	profileRepo := repository.NewPgProfileRepository(pool)
	articleRepo := repository.NewPgArticleRepository(pool)
	questionRepo := repository.NewPgQuestionRepository(pool)
	progressRepo := repository.NewPgProgressRepository(pool)
	assistLogRepo := repository.NewPgAssistLogRepository(pool)

	provider := identity.NewHTTPClient(cfg.IdentityBaseURL, cfg.IdentityAnonKey, cfg.IdentityServiceKey, logger)
	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)

	resendLimiter := service.NewMemoryRateLimiter(10*time.Minute, 3)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			resendLimiter = service.NewRedisRateLimiter(redisClient, 10*time.Minute, 3)
		}
		cancel()
	}

	if cfg.AdminCode == "" && cfg.AdminCodeHash == "" {
		logger.Warn("admin code not configured; every signup gets role user")
	}

	authSvc := service.NewAuthService(logger, provider, profileRepo, cfg.AdminCode, cfg.AdminCodeHash, resendLimiter)
	assistSvc := service.NewAssistService(logger, llmClient, assistLogRepo)
	progressSvc := service.NewProgressService(articleRepo, progressRepo)

	authHandler := apihttp.NewAuthHandler(logger, authSvc)
	articleHandler := apihttp.NewArticleHandler(logger, articleRepo, questionRepo)
	progressHandler := apihttp.NewProgressHandler(logger, progressSvc)
	assistHandler := apihttp.NewAssistHandler(logger, assistSvc)
	adminHandler := apihttp.NewAdminHandler(logger, articleRepo, profileRepo)

	router := apihttp.NewRouter(logger, provider, authHandler, articleHandler, progressHandler, assistHandler, adminHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
