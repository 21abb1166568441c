package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/salman-gourmet/bookmyagents/database/postgres"
	authHandler "github.com/salman-gourmet/bookmyagents/internal/api/auth/handler"
	authRepository "github.com/salman-gourmet/bookmyagents/internal/api/auth/repository"
	authService "github.com/salman-gourmet/bookmyagents/internal/api/auth/service"
	blogHandlerPkg "github.com/salman-gourmet/bookmyagents/internal/api/blog/handler"
	blogRepository "github.com/salman-gourmet/bookmyagents/internal/api/blog/repository"
	blogService "github.com/salman-gourmet/bookmyagents/internal/api/blog/service"
	listingHandler "github.com/salman-gourmet/bookmyagents/internal/api/listing/handler"
	listingRepository "github.com/salman-gourmet/bookmyagents/internal/api/listing/repository"
	listingService "github.com/salman-gourmet/bookmyagents/internal/api/listing/service"
	subscriptionHandler "github.com/salman-gourmet/bookmyagents/internal/api/subscription/handler"
	subscriptionRepository "github.com/salman-gourmet/bookmyagents/internal/api/subscription/repository"
	subscriptionService "github.com/salman-gourmet/bookmyagents/internal/api/subscription/service"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	"github.com/salman-gourmet/bookmyagents/internal/middleware"
	"github.com/salman-gourmet/bookmyagents/pkg/bcrypt"
	"github.com/salman-gourmet/bookmyagents/pkg/redis"
	"github.com/salman-gourmet/bookmyagents/pkg/s3"
	"github.com/salman-gourmet/bookmyagents/pkg/utils"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	handlers    []handler
	redisServer redis.IRedis
	s3Client    s3.ItfS3
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, s.redisServer)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

// blogDeletePolicy reads the self-deletion policy for pending blogs. Default
// is strict: authors may only delete rejected blogs.
func blogDeletePolicy() entity.DeletePolicy {
	allowPending, _ := strconv.ParseBool(os.Getenv("BLOG_ALLOW_PENDING_DELETE"))
	return entity.DeletePolicy{AllowPendingDelete: allowPending}
}

func (s *Server) RegisterHandler() {
	// Auth & user management domain
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.New(s.log, authRepo, s.redisServer, s.bcryptUtils, s.utils)
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware)

	// Blog domain
	blogRepo := blogRepository.New(s.db, s.log)
	blogServices := blogService.New(s.log, blogRepo, s.redisServer, s.s3Client, s.utils, blogDeletePolicy())
	blogHandlers := blogHandlerPkg.New(s.log, s.validator, s.middleware, blogServices)

	// Listing domain
	listingRepo := listingRepository.New(s.db, s.log)
	listingServices := listingService.New(s.log, listingRepo, s.s3Client, s.utils)
	listingHandlers := listingHandler.New(s.log, s.validator, s.middleware, listingServices)

	// Subscription domain
	subscriptionRepo := subscriptionRepository.New(s.db, s.log)
	subscriptionServices := subscriptionService.New(s.log, subscriptionRepo, authRepo, s.redisServer, s.utils)
	subscriptionHandlers := subscriptionHandler.New(s.log, s.validator, s.middleware, subscriptionServices)

	s.setupHealthCheck()

	// Blog routes register first so /users/blogs wins over /users/:id.
	s.handlers = append(s.handlers, blogHandlers, listingHandlers, subscriptionHandlers, authHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
