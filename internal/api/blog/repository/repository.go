package blogRepository

import (
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/blog"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Blogs:     &blogsRepository{q: sqlExecutor, log: r.log},
		Reactions: &reactionsRepository{q: sqlExecutor, log: r.log},
		Commit:    commitFunc,
		Rollback:  rollbackFunc,
	}, nil
}

type Client struct {
	Blogs interface {
		CreateBlog(ctx context.Context, blog entity.Blog) error
		GetBlogByID(ctx context.Context, id string) (entity.Blog, error)
		ListBlogs(ctx context.Context, query blog.ListQuery) ([]entity.Blog, int, error)
		StatusCounts(ctx context.Context, author string) (entity.BlogStatusCounts, error)
		UpdateBlog(ctx context.Context, blog entity.Blog) error
		UpdateModeration(ctx context.Context, blog entity.Blog) error
		DeleteBlog(ctx context.Context, id string) error
		CountByMonth(ctx context.Context) ([]blog.MonthCount, error)
		CountPublished(ctx context.Context) (int, error)
	}

	Reactions interface {
		GetReactions(ctx context.Context, blogID string) ([]string, []string, error)
		GetUserReaction(ctx context.Context, blogID, userID string) (entity.ReactionKind, bool, error)
		AddReaction(ctx context.Context, blogID, userID string, kind entity.ReactionKind) error
		UpdateReaction(ctx context.Context, blogID, userID string, kind entity.ReactionKind) error
		DeleteReaction(ctx context.Context, blogID, userID string) error
	}

	Commit   func() error
	Rollback func() error
}

type blogsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type reactionsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
