package blogHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	blogService "github.com/salman-gourmet/bookmyagents/internal/api/blog/service"
	"github.com/salman-gourmet/bookmyagents/internal/middleware"
)

type BlogHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	blogService blogService.IBlogService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	bs blogService.IBlogService,
) *BlogHandler {
	return &BlogHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		blogService: bs,
	}
}

func (h *BlogHandler) Start(srv fiber.Router) {
	blogs := srv.Group("/blogs")
	blogs.Get("/", h.HandleListPublishedBlogs)
	blogs.Post("/", h.middleware.NewTokenMiddleware, h.middleware.RequireAgent, h.HandleCreateBlog)
	blogs.Get("/:id", h.HandleGetBlog)
	blogs.Put("/:id", h.middleware.NewTokenMiddleware, h.HandleUpdateBlog)
	blogs.Delete("/:id", h.middleware.NewTokenMiddleware, h.HandleDeleteBlog)
	blogs.Post("/:id/like", h.middleware.NewTokenMiddleware, h.HandleLike)
	blogs.Post("/:id/dislike", h.middleware.NewTokenMiddleware, h.HandleDislike)

	users := srv.Group("/users")
	users.Get("/blogs", h.middleware.NewTokenMiddleware, h.middleware.RequireAgent, h.HandleListUserBlogs)

	admin := srv.Group("/admin/blogs", h.middleware.NewTokenMiddleware, h.middleware.RequireAdmin)
	admin.Get("/", h.HandleListAdminBlogs)
	admin.Get("/stats", h.HandleGetStats)
	admin.Post("/", h.HandleAdminCreateBlog)
	admin.Post("/upload-image", h.HandleUploadImage)
	admin.Put("/:id", h.HandleAdminUpdateBlog)
	admin.Delete("/:id", h.HandleAdminDeleteBlog)
	admin.Put("/:id/approve", h.HandleApproveBlog)
	admin.Put("/:id/reject", h.HandleRejectBlog)
}
