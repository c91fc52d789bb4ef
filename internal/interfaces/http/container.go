package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shelfwatch/internal/infrastructure/config"
	"shelfwatch/internal/interfaces/http/middleware"
	"shelfwatch/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers. It wires everything together and provides Shutdown for graceful
// termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	svcs  *services
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter

	unsubscribeSessionLog func()
}

// NewContainer creates a Container with all dependencies wired together.
// redisClient backs the API rate limiter and the health check.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Container {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	// Section 1: repositories
	c.repos = newRepositories(db)

	// Section 2: auth, access and expiry services
	c.initServices()

	// Section 3: use cases
	c.initUseCases()

	// Section 4: handlers and middlewares
	c.initHandlers()

	return c
}
