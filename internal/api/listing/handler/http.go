package listingHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	listingService "github.com/salman-gourmet/bookmyagents/internal/api/listing/service"
	"github.com/salman-gourmet/bookmyagents/internal/middleware"
)

type ListingHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	listingService listingService.IListingService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ls listingService.IListingService,
) *ListingHandler {
	return &ListingHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		listingService: ls,
	}
}

func (h *ListingHandler) Start(srv fiber.Router) {
	services := srv.Group("/services")
	services.Get("/", h.HandleListListings)
	services.Get("/stats", h.middleware.NewTokenMiddleware, h.middleware.RequireAdmin, h.HandleGetStats)
	services.Get("/stats/agent/:id", h.middleware.NewTokenMiddleware, h.middleware.RequireAgent, h.HandleGetAgentStats)
	services.Post("/", h.middleware.NewTokenMiddleware, h.middleware.RequireAgent, h.HandleCreateListing)
	services.Post("/upload-images", h.middleware.NewTokenMiddleware, h.middleware.RequireAgent, h.HandleUploadImages)
	services.Delete("/delete-images", h.middleware.NewTokenMiddleware, h.middleware.RequireAgent, h.HandleDeleteImages)
	services.Get("/:id", h.HandleGetListing)
	services.Put("/:id", h.middleware.NewTokenMiddleware, h.middleware.RequireAgent, h.HandleUpdateListing)
	services.Delete("/:id", h.middleware.NewTokenMiddleware, h.middleware.RequireAgent, h.HandleDeleteListing)

	search := srv.Group("/search")
	search.Get("/tour", h.HandleSearchTours)
}
