package blogService

import (
	"mime/multipart"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/blog"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	contextPkg "github.com/salman-gourmet/bookmyagents/pkg/context"
	"github.com/salman-gourmet/bookmyagents/pkg/redis"
)

const (
	blogStatsCacheKey = "blog_stats"
	blogStatsCacheTTL = 5 * time.Minute
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (s *blogsService) ApproveBlog(ctx context.Context, id string, adminID string) (blog.BlogResponse, error) {
	return s.moderate(ctx, id, adminID, entity.BlogStatusApproved)
}

func (s *blogsService) RejectBlog(ctx context.Context, id string, adminID string) (blog.BlogResponse, error) {
	return s.moderate(ctx, id, adminID, entity.BlogStatusRejected)
}

// moderate applies a moderation verdict. Only pending blogs accept one;
// re-moderating an already-decided blog is a conflict, which also makes a
// double-submitted verdict harmless.
func (s *blogsService) moderate(ctx context.Context, id string, adminID string, verdict entity.BlogStatus) (blog.BlogResponse, error) {
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

	b, err := repo.Blogs.GetBlogByID(ctx, id)
	if err != nil {
		return blog.BlogResponse{}, err
	}

	if b.Status != entity.BlogStatusPending {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"status":     b.Status,
		}).Warn("Moderation attempted on a non-pending blog")
		return blog.BlogResponse{}, blog.ErrAlreadyModerated
	}

	now := time.Now()
	b.Status = verdict
	if verdict == entity.BlogStatusApproved {
		b.ApprovedBy = &adminID
		b.ApprovedAt = &now
		b.IsPublished = true
		b.PublishedAt = &now
	} else {
		// The approval columns stay empty on a rejection.
		b.ApprovedBy = nil
		b.ApprovedAt = nil
		b.IsPublished = false
		b.PublishedAt = nil
	}
	b.UpdatedAt = now

	if err := repo.Blogs.UpdateModeration(ctx, b); err != nil {
		return blog.BlogResponse{}, err
	}

	b.Likes, b.Dislikes, err = repo.Reactions.GetReactions(ctx, id)
	if err != nil {
		return blog.BlogResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return blog.BlogResponse{}, blog.ErrUpdateBlog
	}

	// The stats snapshot is stale now; drop it rather than waiting out the TTL.
	if err := s.redisServer.DeleteCache(ctx, blogStatsCacheKey); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to invalidate blog stats cache")
	}

	return makeBlogResponse(b), nil
}

func (s *blogsService) GetStats(ctx context.Context) (*blog.BlogStatsResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if cached, err := s.redisServer.GetCache(ctx, blogStatsCacheKey); err == nil {
		var stats blog.BlogStatsResponse
		if err := json.UnmarshalFromString(cached, &stats); err == nil {
			return &stats, nil
		}
	} else if err != redis.ErrCacheMiss {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to read blog stats cache")
	}

	repo, err := s.blogsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	counts, err := repo.Blogs.StatusCounts(ctx, "")
	if err != nil {
		return nil, err
	}

	published, err := repo.Blogs.CountPublished(ctx)
	if err != nil {
		return nil, err
	}

	months, err := repo.Blogs.CountByMonth(ctx)
	if err != nil {
		return nil, err
	}
	if months == nil {
		months = []blog.MonthCount{}
	}

	stats := &blog.BlogStatsResponse{
		TotalBlogs:     counts.Pending + counts.Approved + counts.Rejected,
		PendingBlogs:   counts.Pending,
		ApprovedBlogs:  counts.Approved,
		RejectedBlogs:  counts.Rejected,
		PublishedBlogs: published,
		BlogsByMonth:   months,
	}

	if encoded, err := json.MarshalToString(stats); err == nil {
		if err := s.redisServer.SetCache(ctx, blogStatsCacheKey, encoded, blogStatsCacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to write blog stats cache")
		}
	}

	return stats, nil
}

func (s *blogsService) UploadImage(ctx context.Context, file *multipart.FileHeader) (blog.UploadImageResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.utils.ValidateImageFile(file); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid image file")
		return blog.UploadImageResponse{}, err
	}

	url, err := s.s3Client.UploadFile(file)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upload image")
		return blog.UploadImageResponse{}, blog.ErrFailedToUpload
	}

	return blog.UploadImageResponse{URL: url}, nil
}
