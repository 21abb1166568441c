package blogService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/blog"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	contextPkg "github.com/salman-gourmet/bookmyagents/pkg/context"
)

// React toggles a user's reaction on a published blog. Repeating the same
// reaction removes it; the opposite reaction replaces it. The updated blog is
// returned so clients can reconcile optimistic state.
func (s *blogsService) React(ctx context.Context, blogID, userID string, kind entity.ReactionKind) (blog.BlogResponse, error) {
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

	b, err := repo.Blogs.GetBlogByID(ctx, blogID)
	if err != nil {
		return blog.BlogResponse{}, err
	}

	if !(b.Status == entity.BlogStatusApproved && b.IsPublished) {
		return blog.BlogResponse{}, blog.ErrBlogNotFound
	}

	current, exists, err := repo.Reactions.GetUserReaction(ctx, blogID, userID)
	if err != nil {
		return blog.BlogResponse{}, err
	}

	switch {
	case !exists:
		err = repo.Reactions.AddReaction(ctx, blogID, userID, kind)
	case current == kind:
		err = repo.Reactions.DeleteReaction(ctx, blogID, userID)
	default:
		err = repo.Reactions.UpdateReaction(ctx, blogID, userID, kind)
	}
	if err != nil {
		return blog.BlogResponse{}, err
	}

	b.Likes, b.Dislikes, err = repo.Reactions.GetReactions(ctx, blogID)
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

	return makeBlogResponse(b), nil
}
