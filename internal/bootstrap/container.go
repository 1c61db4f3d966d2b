package bootstrap

import (
	"context"
	"log"

	"smart-receipt-be/internal/config"
	"smart-receipt-be/internal/controller"
	"smart-receipt-be/internal/pkg/logger"
	"smart-receipt-be/internal/repository/implementation"
	"smart-receipt-be/internal/service"
	"smart-receipt-be/pkg/cache"
	"smart-receipt-be/pkg/llm/factory"
	"smart-receipt-be/pkg/ocr"
	"smart-receipt-be/pkg/ocr/clova"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ReceiptController controller.IReceiptController
	CacheController   controller.ICacheController

	// Background Services (Exposed for main.go to run)
	LearningService service.ILearningService

	// Exposed for graceful shutdown
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Cache Store
	var cacheStore cache.Store
	if cfg.Cache.Backend == "memory" {
		cacheStore = cache.NewMemoryStore()
		log.Printf("[INFO] Using Cache Backend: MEMORY")
	} else {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		cacheStore = cache.NewRedisStore(rdb)
		log.Printf("[INFO] Using Cache Backend: REDIS")
	}

	// 4. External Providers
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Ai.LLMAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	var ocrProvider ocr.Provider = clova.NewClovaProvider(cfg.OCR.ClovaEndpoint, cfg.OCR.ClovaSecret)

	// 5. Repositories & Services
	expenseRepo := implementation.NewExpenseRepository(db)

	patternService := service.NewPatternService(expenseRepo)
	extractionService := service.NewExtractionService(llmProvider)
	classificationService := service.NewClassificationService(llmProvider)

	pipelineService := service.NewPipelineService(
		cacheStore,
		ocrProvider,
		extractionService,
		patternService,
		classificationService,
		service.StageTTLs{
			OCR:        cfg.Cache.OCRTTL,
			Extraction: cfg.Cache.ExtractionTTL,
			Pattern:    cfg.Cache.PatternTTL,
			Complete:   cfg.Cache.CompleteTTL,
		},
		uint(cfg.Pipeline.MaxTries),
		cfg.Pipeline.StageTimeout,
		sysLogger,
	)

	publisherService := service.NewPublisherService(pubSub, cfg.Pipeline.FeedbackTopic)
	feedbackService := service.NewFeedbackService(publisherService)
	learningService := service.NewLearningService(pubSub, cfg.Pipeline.FeedbackTopic, expenseRepo, cacheStore)
	cacheService := service.NewCacheService(cacheStore)

	// 6. Controllers
	return &Container{
		ReceiptController: controller.NewReceiptController(pipelineService, feedbackService),
		CacheController:   controller.NewCacheController(cacheService),
		LearningService:   learningService,
		Logger:            sysLogger,
	}
}
