package blogService

import (
	"context"
	"mime/multipart"

	"github.com/sirupsen/logrus"

	"github.com/salman-gourmet/bookmyagents/internal/api/blog"
	blogRepository "github.com/salman-gourmet/bookmyagents/internal/api/blog/repository"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	"github.com/salman-gourmet/bookmyagents/pkg/redis"
	"github.com/salman-gourmet/bookmyagents/pkg/s3"
	"github.com/salman-gourmet/bookmyagents/pkg/utils"
)

type IBlogService interface {
	CreateBlog(ctx context.Context, req blog.CreateBlogRequest, authorID string) (blog.BlogResponse, error)
	GetBlogByID(ctx context.Context, id string, includeUnpublished bool) (blog.BlogResponse, error)
	ListPublishedBlogs(ctx context.Context, filters blog.Filters) (*blog.BlogListResponse, error)
	ListUserBlogs(ctx context.Context, authorID string, filters blog.Filters) (*blog.BlogListResponse, error)
	UpdateBlog(ctx context.Context, id string, req blog.UpdateBlogRequest, actor entity.UserLoginData) (blog.BlogResponse, error)
	DeleteBlog(ctx context.Context, id string, actor entity.UserLoginData) error

	ListAdminBlogs(ctx context.Context, filters blog.Filters) (*blog.BlogListResponse, error)
	ApproveBlog(ctx context.Context, id string, adminID string) (blog.BlogResponse, error)
	RejectBlog(ctx context.Context, id string, adminID string) (blog.BlogResponse, error)
	GetStats(ctx context.Context) (*blog.BlogStatsResponse, error)
	UploadImage(ctx context.Context, file *multipart.FileHeader) (blog.UploadImageResponse, error)

	React(ctx context.Context, blogID, userID string, kind entity.ReactionKind) (blog.BlogResponse, error)
}

type blogsService struct {
	log          *logrus.Logger
	blogsRepo    blogRepository.Repository
	redisServer  redis.IRedis
	s3Client     s3.ItfS3
	utils        utils.IUtils
	deletePolicy entity.DeletePolicy
}

func New(
	log *logrus.Logger,
	blogsRepo blogRepository.Repository,
	redisServer redis.IRedis,
	s3Client s3.ItfS3,
	utils utils.IUtils,
	deletePolicy entity.DeletePolicy,
) IBlogService {
	return &blogsService{
		log:          log,
		blogsRepo:    blogsRepo,
		redisServer:  redisServer,
		s3Client:     s3Client,
		utils:        utils,
		deletePolicy: deletePolicy,
	}
}

func makeBlogResponse(b entity.Blog) blog.BlogResponse {
	likes := b.Likes
	if likes == nil {
		likes = []string{}
	}
	dislikes := b.Dislikes
	if dislikes == nil {
		dislikes = []string{}
	}

	return blog.BlogResponse{
		ID:          b.ID,
		Slug:        b.Slug,
		Title:       b.Title,
		Content:     b.Content,
		CoverImage:  b.CoverImage,
		Author:      b.Author,
		Status:      b.Status,
		StatusBadge: b.Status.Badge(),
		IsPublished: b.IsPublished,
		PublishedAt: b.PublishedAt,
		ApprovedBy:  b.ApprovedBy,
		ApprovedAt:  b.ApprovedAt,
		Likes:       likes,
		Dislikes:    dislikes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
