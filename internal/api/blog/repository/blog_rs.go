package blogRepository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/salman-gourmet/bookmyagents/internal/api/blog"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	contextPkg "github.com/salman-gourmet/bookmyagents/pkg/context"
)

type BlogDB struct {
	ID          sql.NullString `db:"id"`
	Slug        sql.NullString `db:"slug"`
	Title       sql.NullString `db:"title"`
	Content     sql.NullString `db:"content"`
	CoverImage  sql.NullString `db:"cover_image"`
	Author      sql.NullString `db:"author"`
	Status      sql.NullString `db:"status"`
	IsPublished bool           `db:"is_published"`
	PublishedAt sql.NullTime   `db:"published_at"`
	ApprovedBy  sql.NullString `db:"approved_by"`
	ApprovedAt  sql.NullTime   `db:"approved_at"`
	CreatedAt   sql.NullTime   `db:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
}

func (r *blogsRepository) makeBlog(row BlogDB) entity.Blog {
	b := entity.Blog{
		ID:          row.ID.String,
		Slug:        row.Slug.String,
		Title:       row.Title.String,
		Content:     row.Content.String,
		CoverImage:  row.CoverImage.String,
		Author:      row.Author.String,
		Status:      entity.BlogStatus(row.Status.String),
		IsPublished: row.IsPublished,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}

	if row.PublishedAt.Valid {
		t := row.PublishedAt.Time
		b.PublishedAt = &t
	}
	if row.ApprovedBy.Valid {
		v := row.ApprovedBy.String
		b.ApprovedBy = &v
	}
	if row.ApprovedAt.Valid {
		t := row.ApprovedAt.Time
		b.ApprovedAt = &t
	}

	return b
}

func (r *blogsRepository) CreateBlog(ctx context.Context, b entity.Blog) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":           b.ID,
		"slug":         b.Slug,
		"title":        b.Title,
		"content":      b.Content,
		"cover_image":  b.CoverImage,
		"author":       b.Author,
		"status":       string(b.Status),
		"is_published": b.IsPublished,
		"created_at":   b.CreatedAt,
		"updated_at":   b.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateBlog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateBlog")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, "slug") {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"slug":       b.Slug,
			}).Warn("Slug already taken")
			return blog.ErrSlugTaken
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating blog")
		return err
	}

	return nil
}

func (r *blogsRepository) GetBlogByID(ctx context.Context, id string) (entity.Blog, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row BlogDB

	query, args, err := sqlx.Named(queryGetBlogByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBlogByID named query preparation err")
		return entity.Blog{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Blog{}, blog.ErrBlogNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBlogByID execution err")
		return entity.Blog{}, err
	}

	return r.makeBlog(row), nil
}

func (r *blogsRepository) ListBlogs(ctx context.Context, q blog.ListQuery) ([]entity.Blog, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"status":         q.Status,
		"author":         q.Author,
		"search":         q.Search,
		"published_only": q.PublishedOnly,
		"limit":          q.Limit,
		"offset":         q.Offset,
	}

	query, args, err := sqlx.Named(queryListBlogs, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListBlogs named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []BlogDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListBlogs execution err")
		return nil, 0, err
	}

	countQuery, countArgs, err := sqlx.Named(queryCountBlogs, argsKV)
	if err != nil {
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	var total int
	if err := r.q.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListBlogs count execution err")
		return nil, 0, err
	}

	blogs := make([]entity.Blog, 0, len(rows))
	for _, row := range rows {
		blogs = append(blogs, r.makeBlog(row))
	}

	return blogs, total, nil
}

func (r *blogsRepository) StatusCounts(ctx context.Context, author string) (entity.BlogStatusCounts, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryStatusCounts, map[string]interface{}{"author": author})
	if err != nil {
		return entity.BlogStatusCounts{}, err
	}
	query = r.q.Rebind(query)

	var counts entity.BlogStatusCounts
	if err := r.q.GetContext(ctx, &counts, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("StatusCounts execution err")
		return entity.BlogStatusCounts{}, err
	}

	return counts, nil
}

func (r *blogsRepository) UpdateBlog(ctx context.Context, b entity.Blog) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":          b.ID,
		"slug":        b.Slug,
		"title":       b.Title,
		"content":     b.Content,
		"cover_image": b.CoverImage,
		"updated_at":  time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateBlog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateBlog named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, "slug") {
			return blog.ErrSlugTaken
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateBlog execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return blog.ErrBlogNotFound
	}

	return nil
}

func (r *blogsRepository) UpdateModeration(ctx context.Context, b entity.Blog) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":           b.ID,
		"status":       string(b.Status),
		"is_published": b.IsPublished,
		"published_at": b.PublishedAt,
		"approved_by":  b.ApprovedBy,
		"approved_at":  b.ApprovedAt,
		"updated_at":   time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateModeration, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateModeration named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateModeration execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return blog.ErrBlogNotFound
	}

	return nil
}

func (r *blogsRepository) DeleteBlog(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteBlog, map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteBlog execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return blog.ErrBlogNotFound
	}

	return nil
}

func (r *blogsRepository) CountByMonth(ctx context.Context) ([]blog.MonthCount, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var months []blog.MonthCount
	if err := r.q.SelectContext(ctx, &months, r.q.Rebind(queryCountByMonth)); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountByMonth execution err")
		return nil, err
	}

	return months, nil
}

func (r *blogsRepository) CountPublished(ctx context.Context) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var count int
	if err := r.q.GetContext(ctx, &count, r.q.Rebind(queryCountPublished)); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountPublished execution err")
		return 0, err
	}

	return count, nil
}
