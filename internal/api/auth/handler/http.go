package authHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	authService "github.com/salman-gourmet/bookmyagents/internal/api/auth/service"
	"github.com/salman-gourmet/bookmyagents/internal/middleware"
)

type AuthHandler struct {
	log         *logrus.Logger
	authService authService.IAuthService
	validator   *validator.Validate
	middleware  middleware.Middleware
}

func New(
	log *logrus.Logger,
	as authService.IAuthService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *AuthHandler {
	return &AuthHandler{
		log:         log,
		authService: as,
		validator:   validate,
		middleware:  middleware,
	}
}

func (h *AuthHandler) Start(srv fiber.Router) {
	auth := srv.Group("/auth")
	auth.Post("/signup", h.middleware.NewRateLimiter, h.HandleRegister)
	auth.Post("/login", h.middleware.NewRateLimiter, h.HandleLogin)
	auth.Post("/logout", h.middleware.NewTokenMiddleware, h.HandleLogout)
	auth.Get("/me", h.middleware.NewTokenMiddleware, h.HandleMe)
	auth.Post("/refresh", h.middleware.NewTokenMiddleware, h.HandleRefreshToken)
	auth.Get("/verify", h.middleware.NewTokenMiddleware, h.HandleVerify)

	profile := srv.Group("/profile", h.middleware.NewTokenMiddleware)
	profile.Get("/", h.HandleMe)
	profile.Put("/", h.HandleUpdateProfile)

	users := srv.Group("/users", h.middleware.NewTokenMiddleware)
	users.Get("/", h.middleware.RequireAdmin, h.HandleListUsers)
	users.Post("/", h.middleware.RequireAdmin, h.HandleCreateUser)
	users.Get("/:id", h.middleware.RequireAdmin, h.HandleGetUser)
	users.Put("/:id", h.middleware.RequireAdmin, h.HandleUpdateUser)
	users.Delete("/:id", h.middleware.RequireAdmin, h.HandleDeleteUser)
	users.Put("/:id/password", h.HandleUpdatePassword)
}
