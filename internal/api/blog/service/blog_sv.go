package blogService

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/blog"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	contextPkg "github.com/salman-gourmet/bookmyagents/pkg/context"
	"github.com/salman-gourmet/bookmyagents/pkg/pagination"
)

func (s *blogsService) CreateBlog(ctx context.Context, req blog.CreateBlogRequest, authorID string) (blog.BlogResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.blogsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return blog.BlogResponse{}, err
	}
	defer repo.Rollback()

	blogID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return blog.BlogResponse{}, err
	}

	now := time.Now()
	b := entity.Blog{
		ID:          blogID,
		Slug:        s.utils.Slugify(req.Title),
		Title:       req.Title,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		Author:      authorID,
		Status:      entity.BlogStatusPending,
		IsPublished: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := repo.Blogs.CreateBlog(ctx, b); err != nil {
		return blog.BlogResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return blog.BlogResponse{}, blog.ErrCreateBlog
	}

	return makeBlogResponse(b), nil
}

func (s *blogsService) GetBlogByID(ctx context.Context, id string, includeUnpublished bool) (blog.BlogResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.blogsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return blog.BlogResponse{}, err
	}

	b, err := repo.Blogs.GetBlogByID(ctx, id)
	if err != nil {
		return blog.BlogResponse{}, err
	}

	// Unmoderated content is invisible on the public surface.
	if !includeUnpublished && !(b.Status == entity.BlogStatusApproved && b.IsPublished) {
		return blog.BlogResponse{}, blog.ErrBlogNotFound
	}

	b.Likes, b.Dislikes, err = repo.Reactions.GetReactions(ctx, id)
	if err != nil {
		return blog.BlogResponse{}, err
	}

	return makeBlogResponse(b), nil
}

func (s *blogsService) ListPublishedBlogs(ctx context.Context, filters blog.Filters) (*blog.BlogListResponse, error) {
	filters.Status = ""
	filters.Author = ""
	return s.list(ctx, filters, true, false)
}

func (s *blogsService) ListUserBlogs(ctx context.Context, authorID string, filters blog.Filters) (*blog.BlogListResponse, error) {
	filters.Author = authorID
	return s.list(ctx, filters, false, true)
}

func (s *blogsService) ListAdminBlogs(ctx context.Context, filters blog.Filters) (*blog.BlogListResponse, error) {
	return s.list(ctx, filters, false, true)
}

func (s *blogsService) list(ctx context.Context, filters blog.Filters, publishedOnly, withCounts bool) (*blog.BlogListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if filters.Status != "" && !entity.BlogStatus(filters.Status).Valid() {
		return nil, blog.ErrInvalidStatus
	}

	repo, err := s.blogsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	meta := pagination.New(0, filters.Page, filters.Limit)

	query := blog.ListQuery{
		Status:        filters.Status,
		Author:        filters.Author,
		Search:        filters.Search,
		PublishedOnly: publishedOnly,
		Limit:         meta.Limit,
		Offset:        meta.Offset(),
	}

	blogsList, total, err := repo.Blogs.ListBlogs(ctx, query)
	if err != nil {
		return nil, err
	}

	response := &blog.BlogListResponse{
		Count:      len(blogsList),
		Data:       make([]blog.BlogResponse, 0, len(blogsList)),
		Pagination: pagination.New(total, meta.Page, meta.Limit),
	}

	for _, b := range blogsList {
		b.Likes, b.Dislikes, err = repo.Reactions.GetReactions(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		response.Data = append(response.Data, makeBlogResponse(b))
	}

	if withCounts {
		counts, err := repo.Blogs.StatusCounts(ctx, filters.Author)
		if err != nil {
			return nil, err
		}
		response.StatusCounts = &counts
	}

	return response, nil
}

func (s *blogsService) UpdateBlog(ctx context.Context, id string, req blog.UpdateBlogRequest, actor entity.UserLoginData) (blog.BlogResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.blogsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return blog.BlogResponse{}, err
	}
	defer repo.Rollback()

	existing, err := repo.Blogs.GetBlogByID(ctx, id)
	if err != nil {
		return blog.BlogResponse{}, err
	}

	if !actor.IsAdmin() {
		if existing.Author != actor.ID {
			s.log.WithFields(logrus.Fields{
				"request_id":   requestID,
				"id":           id,
				"blog_author":  existing.Author,
				"request_user": actor.ID,
			}).Warn("User is not the author of the blog")
			return blog.BlogResponse{}, blog.ErrBlogNotOwned
		}
		if !existing.Status.CanEdit() {
			return blog.BlogResponse{}, blog.ErrBlogLocked
		}
	}

	if req.Title != "" {
		existing.Title = req.Title
		existing.Slug = s.utils.Slugify(req.Title)
	}
	if req.Content != "" {
		existing.Content = req.Content
	}
	if req.CoverImage != "" {
		existing.CoverImage = req.CoverImage
	}
	existing.UpdatedAt = time.Now()

	if err := repo.Blogs.UpdateBlog(ctx, existing); err != nil {
		return blog.BlogResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return blog.BlogResponse{}, blog.ErrUpdateBlog
	}

	return makeBlogResponse(existing), nil
}

func (s *blogsService) DeleteBlog(ctx context.Context, id string, actor entity.UserLoginData) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.blogsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	existing, err := repo.Blogs.GetBlogByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() {
		if existing.Author != actor.ID {
			return blog.ErrBlogNotOwned
		}
		if !s.deletePolicy.CanDelete(existing.Status) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"status":     existing.Status,
			}).Warn("Delete refused by policy")
			return blog.ErrBlogNotDeletable
		}
	}

	if err := repo.Blogs.DeleteBlog(ctx, id); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return blog.ErrDeleteBlog
	}

	return nil
}
