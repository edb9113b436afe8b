package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/minerepair/repairhub/internal/application/notification"
	"github.com/minerepair/repairhub/internal/domain/shared/events"
	"github.com/minerepair/repairhub/internal/infrastructure/auth"
	"github.com/minerepair/repairhub/internal/infrastructure/cache"
	"github.com/minerepair/repairhub/internal/infrastructure/config"
	"github.com/minerepair/repairhub/internal/infrastructure/email"
	"github.com/minerepair/repairhub/internal/infrastructure/permission"
	"github.com/minerepair/repairhub/internal/infrastructure/ratelimit"
	"github.com/minerepair/repairhub/internal/infrastructure/scheduler"
	"github.com/minerepair/repairhub/internal/infrastructure/telegram"
	"github.com/minerepair/repairhub/internal/interfaces/http/middleware"
	"github.com/minerepair/repairhub/internal/shared/db"
	"github.com/minerepair/repairhub/internal/shared/logger"
	"github.com/minerepair/repairhub/internal/shared/services/markdown"
)

// Container holds infrastructure components, repositories, use cases,
// handlers and background services. It wires everything together and owns
// their lifecycle through Start and Shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	txManager  *db.TransactionManager
	dispatcher *events.InMemoryEventDispatcher
	jwtSvc     *auth.JWTService
	enforcer   *permission.Enforcer

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.UserRateLimiter

	notificationSvc  *notification.Service
	schedulerManager *scheduler.SchedulerManager
}

// NewContainer creates a Container with all dependencies wired together.
func NewContainer(database *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     database,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, Repositories, Dispatcher, RBAC, JWT
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Notifications - Channels, Deduplication, Subscriptions
	if err := c.initNotifications(); err != nil {
		return nil, err
	}

	// Section 3: Workflow - UseCases, Handlers, Middlewares
	c.ucs = c.wireUseCases()
	hdlrs, err := c.wireHandlers()
	if err != nil {
		return nil, err
	}
	c.hdlrs = hdlrs
	c.initMiddlewares()

	// Section 4: Scheduler - Stale request reminders
	if err := c.initScheduler(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initInfrastructure() error {
	if c.cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(context.Background(), &c.cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.redis = client
	}

	c.repos = c.wireRepositories()
	c.txManager = db.NewTransactionManager(c.db)

	c.dispatcher = events.NewInMemoryEventDispatcher(c.cfg.Notification.BufferSize, c.log.Named("events"))

	enforcer, err := permission.NewEnforcer(c.db, c.log.Named("casbin"))
	if err != nil {
		return fmt.Errorf("failed to create route enforcer: %w", err)
	}
	c.enforcer = enforcer

	if path := c.cfg.RBAC.PolicyFile; path != "" {
		if err := permission.NewPolicySync(enforcer, c.log).SyncFromFile(path); err != nil {
			return fmt.Errorf("failed to sync route policy from %s: %w", path, err)
		}
	} else {
		c.log.Warnw("rbac.policy_file is empty, using stored route policy as is")
	}

	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.AccessExpMinutes)
	return nil
}

func (c *Container) initNotifications() error {
	var (
		channels []notification.Channel
		opts     []notification.Option
	)

	if c.cfg.Telegram.Enabled {
		bot := telegram.NewBotService(c.cfg.Telegram.BotToken)
		channels = append(channels, telegram.NewChannel(bot))
		if c.cfg.Telegram.ContractorChannelID != 0 {
			opts = append(opts, notification.WithBroadcaster(
				telegram.NewBroadcaster(bot, c.cfg.Telegram.ContractorChannelID)))
		}
	}

	if c.cfg.Email.Enabled {
		channels = append(channels, email.NewSMTPEmailService(email.SMTPConfig{
			Host:        c.cfg.Email.SMTPHost,
			Port:        c.cfg.Email.SMTPPort,
			Username:    c.cfg.Email.SMTPUser,
			Password:    c.cfg.Email.SMTPPassword,
			FromAddress: c.cfg.Email.FromAddress,
			FromName:    c.cfg.Email.FromName,
		}, markdown.NewMarkdownService()))
	}

	if c.redis != nil {
		opts = append(opts, notification.WithDeduplicator(
			cache.NewNotificationDeduplicator(c.redis, c.cfg.Notification.DedupTTL())))
	}

	opts = append(opts, notification.WithDefaultLang(notification.ParseLang(c.cfg.Notification.DefaultLocale)))

	if len(channels) == 0 {
		c.log.Warnw("no notification channels enabled, workflow events will only be logged")
	}

	c.notificationSvc = notification.NewService(c.repos.userRepo, channels, c.log.Named("notification"), opts...)
	if err := c.notificationSvc.Subscribe(c.dispatcher); err != nil {
		return fmt.Errorf("failed to subscribe notification service: %w", err)
	}
	return nil
}

func (c *Container) initMiddlewares() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.repos.userRepo, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log)

	if c.cfg.RateLimit.Enabled && c.redis != nil {
		c.rateLimiter = middleware.NewUserRateLimiter(ratelimit.NewRedisRateLimiter(c.redis), c.log)
	}
}

func (c *Container) initScheduler() error {
	manager, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := manager.RegisterStaleRequestReminder(c.ucs.remindStaleRequestsUC, c.cfg.Workflow.ReminderInterval()); err != nil {
		return fmt.Errorf("failed to register stale request reminder: %w", err)
	}
	c.schedulerManager = manager
	return nil
}

// Start launches the event dispatcher and the scheduler.
func (c *Container) Start() error {
	if err := c.dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	c.schedulerManager.Start()
	c.log.Infow("background services started")
	return nil
}

// Shutdown stops background services. The dispatcher is stopped last so
// events published by an in-flight reminder run are still handed over.
func (c *Container) Shutdown() {
	if err := c.schedulerManager.Stop(); err != nil {
		c.log.Errorw("failed to stop scheduler", "error", err)
	}
	if err := c.dispatcher.Stop(); err != nil {
		c.log.Errorw("failed to stop event dispatcher", "error", err)
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close redis client", "error", err)
		}
	}
	c.log.Infow("container shutdown complete")
}

// Engine returns the gin engine. SetupRoutes must be called first.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}
