package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"techstore-backend/internal/config"
	"techstore-backend/internal/infrastructure/ai"
	infraCache "techstore-backend/internal/infrastructure/cache"
	"techstore-backend/internal/infrastructure/queue"
	"techstore-backend/pkg/jwt"

	addressHandler "techstore-backend/internal/domains/address/handler"
	addressService "techstore-backend/internal/domains/address/service"
	chatHandler "techstore-backend/internal/domains/chat/handler"
	notificationHandler "techstore-backend/internal/domains/notification/handler"
	notificationJob "techstore-backend/internal/domains/notification/job"
	"techstore-backend/internal/domains/session"
	sessionHandler "techstore-backend/internal/domains/session/handler"
	sessionJob "techstore-backend/internal/domains/session/job"
	userHandler "techstore-backend/internal/domains/user/handler"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependencies của application
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	Redis      *infraCache.RedisClient
	JWTManager *jwt.Manager
	Gemini     *ai.GeminiService
	Queue      *queue.Server
	Scheduler  *queue.Scheduler

	// ========================================
	// SESSION STATE
	// ========================================
	Sessions *session.Store

	// ========================================
	// SERVICE LAYER
	// ========================================
	AddressService addressService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	SessionHandler      *sessionHandler.SessionHandler
	AddressHandler      *addressHandler.AddressHandler
	NotificationHandler *notificationHandler.NotificationHandler
	ProfileHandler      *userHandler.ProfileHandler
	ChatHandler         *chatHandler.ChatHandler
	AIHandler           *chatHandler.AIHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer dựng dependency graph theo thứ tự:
// 1. Config
// 2. Infrastructure (Redis, Gemini, JWT)
// 3. Session store
// 4. Services, handlers
// 5. Queue server + scheduler (handlers cần session store)
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// STEP 2: INFRASTRUCTURE
	// ========================================
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 3: SESSION STORE
	// ========================================
	c.Sessions = session.NewStore(session.StoreConfig{
		TTL:       cfg.Session.TTL,
		Answerer:  c.Gemini,
		Greeting:  cfg.Chat.Greeting,
		Publisher: infraCache.NewUserPublisher(c.Redis, cfg.Session.TTL),
	})

	// ========================================
	// STEP 4: SERVICES + HANDLERS
	// ========================================
	c.initHandlers()

	// ========================================
	// STEP 5: QUEUE
	// ========================================
	c.initQueue()

	log.Info().Msg("DI Container initialized successfully")
	return c, nil
}

func (c *Container) initInfrastructure() error {
	cfg := c.Config

	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Redis.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect redis: %w", err)
	}

	gemini, err := ai.NewGeminiService(context.Background(), cfg.Gemini)
	if err != nil {
		return fmt.Errorf("failed to init gemini: %w", err)
	}
	c.Gemini = gemini

	// token sống lâu hơn session một chút; session hết hạn thì middleware tự từ chối
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, 2*cfg.Session.TTL)

	return nil
}

func (c *Container) initHandlers() {
	c.AddressService = addressService.NewAddressService(nil)

	c.SessionHandler = sessionHandler.NewSessionHandler(c.Sessions, c.JWTManager)
	c.AddressHandler = addressHandler.NewAddressHandler(c.AddressService)
	c.NotificationHandler = notificationHandler.NewNotificationHandler()
	c.ProfileHandler = userHandler.NewProfileHandler()
	c.ChatHandler = chatHandler.NewChatHandler(c.Config.Chat.WaitTimeout)
	c.AIHandler = chatHandler.NewAIHandler(c.Gemini)
}

func (c *Container) initQueue() {
	redisOpt := c.RedisClientOpt()

	c.Queue = queue.NewServer(redisOpt, c.Config.Queue.Concurrency, queue.Handlers{
		DeliverNotification: notificationJob.NewDeliverNotificationHandler(c.Sessions),
		SweepSessions:       sessionJob.NewSweepSessionsHandler(c.Sessions),
	})
	c.Scheduler = queue.NewScheduler(redisOpt, c.Config.Session.SweepCron)
}

// RedisClientOpt là option kết nối Redis cho asynq
func (c *Container) RedisClientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.Sessions != nil {
		c.Sessions.CloseAll()
		log.Info().Msg("Sessions closed")
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		} else {
			log.Info().Msg("Redis connections closed")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
