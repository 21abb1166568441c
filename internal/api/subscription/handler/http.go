package subscriptionHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	subscriptionService "github.com/salman-gourmet/bookmyagents/internal/api/subscription/service"
	"github.com/salman-gourmet/bookmyagents/internal/middleware"
)

type SubscriptionHandler struct {
	log                 *logrus.Logger
	validator           *validator.Validate
	middleware          middleware.Middleware
	subscriptionService subscriptionService.ISubscriptionService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ss subscriptionService.ISubscriptionService,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		log:                 log,
		validator:           validate,
		middleware:          middleware,
		subscriptionService: ss,
	}
}

func (h *SubscriptionHandler) Start(srv fiber.Router) {
	subs := srv.Group("/subscription")
	subs.Get("/", h.HandleListSubscriptions)
	subs.Get("/stats", h.middleware.NewTokenMiddleware, h.middleware.RequireAdmin, h.HandleGetStats)
	subs.Post("/", h.middleware.NewTokenMiddleware, h.middleware.RequireAdmin, h.HandleCreateSubscription)
	subs.Patch("/", h.middleware.NewTokenMiddleware, h.middleware.RequireAdmin, h.HandleUpdateSubscription)
	subs.Get("/:id", h.HandleGetSubscription)
	subs.Delete("/:id", h.middleware.NewTokenMiddleware, h.middleware.RequireAdmin, h.HandleDeleteSubscription)

	users := srv.Group("/users", h.middleware.NewTokenMiddleware, h.middleware.RequireAdmin)
	users.Get("/:id/subscription", h.HandleGetUserSubscription)
	users.Post("/:id/subscription", h.HandleAssignSubscription)
	users.Delete("/:id/subscription", h.HandleCancelSubscription)
}
