package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"

	"academy-backend/internal/config"
	infraCache "academy-backend/internal/infrastructure/cache"
	"academy-backend/internal/infrastructure/database"
	"academy-backend/internal/infrastructure/queue"
	"academy-backend/internal/infrastructure/storage"
	"academy-backend/pkg/cache"
	"academy-backend/pkg/jwt"

	"academy-backend/internal/domains/category"
	categoryHandler "academy-backend/internal/domains/category/handler"
	categoryRepo "academy-backend/internal/domains/category/repository"
	categoryService "academy-backend/internal/domains/category/service"

	courseHandler "academy-backend/internal/domains/course/handler"
	courseRepo "academy-backend/internal/domains/course/repository"
	courseService "academy-backend/internal/domains/course/service"

	cartHandler "academy-backend/internal/domains/cart/handler"
	cartRepo "academy-backend/internal/domains/cart/repository"
	cartService "academy-backend/internal/domains/cart/service"

	notificationHandler "academy-backend/internal/domains/notification/handler"
	notificationRepo "academy-backend/internal/domains/notification/repository"
	notificationService "academy-backend/internal/domains/notification/service"

	"academy-backend/internal/domains/user"
	userHandler "academy-backend/internal/domains/user/handler"
	userRepo "academy-backend/internal/domains/user/repository"
	userService "academy-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph of cmd/api
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	RedisClient *redis.Client
	// RedisUp is false when the server started without Redis and fell back to memory
	RedisUp     bool
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	Storage     storage.ObjectStorage
	Images      *storage.ImageProcessor
	AsynqClient *asynq.Client

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	CategoryRepo     category.CategoryRepository
	CourseRepo       courseRepo.RepositoryInterface
	UserRepo         user.Repository
	NotificationRepo notificationRepo.NotificationRepository
	CartStore        cartRepo.Store

	// ========================================
	// SERVICE LAYER
	// ========================================
	CategoryService     category.CategoryService
	CourseService       courseService.ServiceInterface
	UserService         user.Service
	NotificationService notificationService.NotificationService
	CartService         cartService.ServiceInterface
	Dispatcher          *notificationService.Dispatcher

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler         *userHandler.UserHandler
	CategoryHandler     *categoryHandler.CategoryHandler
	CourseHandler       *courseHandler.Handler
	CartHandler         *cartHandler.Handler
	NotificationHandler *notificationHandler.NotificationHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	log.Println("[CONTAINER] Initializing...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[CONTAINER] Config loaded (environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	// Redis is not critical: without it the process keeps a local cache and cart
	c.RedisClient = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	redisCache := infraCache.NewRedisCache(c.RedisClient)
	if err := redisCache.Connect(ctx); err != nil {
		log.Printf("[REDIS] Connection failed (non-critical), using in-memory cache: %v", err)
		c.Cache = cache.NewMemoryCache()
	} else {
		c.RedisUp = true
		c.Cache = redisCache
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, c.accessTTL())

	// ========================================
	// STEP 4: STORAGE + QUEUE
	// ========================================
	if err := c.initStorage(ctx); err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	c.AsynqClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	// ========================================
	// STEP 5: REPOSITORIES
	// ========================================
	c.initRepositories()

	// ========================================
	// STEP 6: SERVICES
	// ========================================
	c.initServices()

	// ========================================
	// STEP 7: HANDLERS
	// ========================================
	c.initHandlers()

	log.Println("[CONTAINER] Initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initStorage(ctx context.Context) error {
	c.Images = storage.NewImageProcessor(c.Config.Storage.MaxPhotoSize)

	switch c.Config.Storage.Driver {
	case "local":
		local, err := storage.NewLocalStorage(c.Config.Storage.LocalRoot, c.Config.Storage.LocalBaseURL)
		if err != nil {
			return err
		}
		c.Storage = local
	default:
		minioStorage, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
		if err != nil {
			return err
		}
		c.Storage = minioStorage
	}

	log.Printf("[STORAGE] Using %s driver", c.Config.Storage.Driver)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.CourseRepo = courseRepo.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.NotificationRepo = notificationRepo.NewNotificationRepository(pool)

	if c.RedisUp {
		c.CartStore = cartRepo.NewRedisStore(c.RedisClient, 0)
	} else {
		c.CartStore = cartRepo.NewMemoryStore()
	}
}

func (c *Container) initServices() {
	cfg := c.Config

	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.Cache, cfg.Cache.ListTTL)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.accessTTL())
	c.NotificationService = notificationService.NewNotificationService(c.NotificationRepo)

	// ----------------------------------------
	// NOTIFICATION FAN-OUT
	// ----------------------------------------
	audit := zlog.Logger.With().Str("component", "audit").Logger()
	c.Dispatcher = notificationService.NewDispatcher(cfg.Queue.FanOutTimeout,
		notificationService.NewAuditLogHandler(audit),
		notificationService.NewAdminInboxHandler(c.UserService, c.NotificationRepo),
		notificationService.NewAdminEmailHandler(c.AsynqClient),
	)

	c.CourseService = courseService.NewService(
		c.CourseRepo,
		c.CategoryService,
		c.Cache,
		cfg.Cache.ListTTL,
		c.Storage,
		c.Images,
		c.Dispatcher,
		c.AsynqClient,
	)

	c.CartService = cartService.NewCartService(c.CartStore, c.CourseService)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.CourseHandler = courseHandler.NewHandler(c.CourseService, c.Config.Storage.MaxPhotoSize)
	c.CartHandler = cartHandler.NewHandler(c.CartService)
	c.NotificationHandler = notificationHandler.NewNotificationHandler(c.NotificationService)
}

func (c *Container) accessTTL() time.Duration {
	return time.Duration(c.Config.JWT.AccessTokenExpiry) * time.Minute
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases resources on shutdown. In-flight notification handlers
// are drained before the connections they use are closed.
func (c *Container) Cleanup() {
	log.Println("[CONTAINER] Cleaning up...")

	if c.Dispatcher != nil {
		c.Dispatcher.Wait()
		log.Println("[CONTAINER] Notification handlers drained")
	}

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("[QUEUE] Failed to close asynq client: %v", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("[DATABASE] Failed to close: %v", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			log.Printf("[REDIS] Failed to close: %v", err)
		} else {
			log.Println("[REDIS] Connections closed")
		}
	}

	log.Println("[CONTAINER] Cleanup completed")
}
