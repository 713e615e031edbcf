package bootstrap

import (
	"context"

	"medassist-be/internal/config"
	"medassist-be/internal/controller"
	"medassist-be/internal/pkg/logger"
	"medassist-be/internal/pkg/serverutils"
	"medassist-be/internal/repository/unitofwork"
	"medassist-be/internal/service"
	"medassist-be/pkg/events"
	pktNats "medassist-be/pkg/nats"
	"medassist-be/pkg/ratelimit"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	HealthController  controller.IHealthController
	AuthController    controller.IAuthController
	UserController    controller.IUserController
	ChatController    controller.IChatController
	HistoryController controller.IHistoryController
	AdminController   controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	pubSub *gochannel.GoChannel
	redis  *redis.Client
	nats   *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	// 3. Redis (rate limiting only; requests pass when it is unreachable)
	var rdb *redis.Client
	var limiter serverutils.RateLimiter
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "failed to parse Redis URL, using it as address", map[string]interface{}{
				"error": err.Error(),
			})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			sysLogger.Warn("BOOTSTRAP", "failed to connect to Redis", map[string]interface{}{
				"error": err.Error(),
			})
		}
		limiter = ratelimit.NewSlidingWindow(rdb)
	}

	// 3.5 Domain events (optional NATS JetStream)
	var eventPublisher events.Publisher
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL, cfg.App.EventsStream)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "failed to connect to NATS, domain events disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			natsPub = pub
			eventPublisher = pub
		}
	}

	// 4. Answer pipeline
	provider, err := NewEmbeddingProvider(cfg)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "embedding provider unavailable, retrieval disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}

	index, err := NewVectorIndex(cfg, uowFactory)
	if err != nil {
		return nil, err
	}

	pipeline, err := NewPipeline(cfg, provider, index, sysLogger)
	if err != nil {
		return nil, err
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Ingest.Topic, pubSub)
	counter, _ := index.(service.SourceCounter)
	ingestService := service.NewIngestService(NewIngestor(cfg, provider, index, sysLogger), counter, publisherService, cfg.Ingest.UploadDir, eventPublisher, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.Ingest.Topic, ingestService, sysLogger)

	authService := service.NewAuthService(uowFactory, cfg.Auth.JwtSecret, cfg.Auth.TokenTTL, eventPublisher, sysLogger)
	userService := service.NewUserService(uowFactory, sysLogger)
	chatService := service.NewChatService(uowFactory, pipeline, sysLogger)
	historyService := service.NewHistoryService(uowFactory, sysLogger)

	// 6. Controllers
	auth := serverutils.JwtMiddleware(cfg.Auth.JwtSecret)
	chatLimit := serverutils.RateLimitMiddleware(limiter, cfg.RateLimit.ChatLimit, cfg.RateLimit.ChatWindow, sysLogger)

	checks := map[string]controller.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}

	return &Container{
		Logger:            sysLogger,
		HealthController:  controller.NewHealthController(checks),
		AuthController:    controller.NewAuthController(authService),
		UserController:    controller.NewUserController(userService, auth),
		ChatController:    controller.NewChatController(chatService, auth, chatLimit),
		HistoryController: controller.NewHistoryController(historyService, auth),
		AdminController:   controller.NewAdminController(ingestService, auth),
		ConsumerService:   consumerService,
		pubSub:            pubSub,
		redis:             rdb,
		nats:              natsPub,
	}, nil
}

// Close releases the event buses and the Redis pool.
func (c *Container) Close() error {
	if c.nats != nil {
		c.nats.Close()
	}
	if err := c.pubSub.Close(); err != nil {
		return err
	}
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
