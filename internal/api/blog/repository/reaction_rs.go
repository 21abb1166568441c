package blogRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/salman-gourmet/bookmyagents/internal/entity"
	contextPkg "github.com/salman-gourmet/bookmyagents/pkg/context"
)

type ReactionDB struct {
	UserID string `db:"user_id"`
	Kind   string `db:"kind"`
}

// GetReactions returns the user-id sets of likes and dislikes for a blog.
func (r *reactionsRepository) GetReactions(ctx context.Context, blogID string) ([]string, []string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryGetReactions, map[string]interface{}{"blog_id": blogID})
	if err != nil {
		return nil, nil, err
	}
	query = r.q.Rebind(query)

	var rows []ReactionDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetReactions execution err")
		return nil, nil, err
	}

	likes := make([]string, 0)
	dislikes := make([]string, 0)
	for _, row := range rows {
		switch entity.ReactionKind(row.Kind) {
		case entity.ReactionLike:
			likes = append(likes, row.UserID)
		case entity.ReactionDislike:
			dislikes = append(dislikes, row.UserID)
		}
	}

	return likes, dislikes, nil
}

func (r *reactionsRepository) GetUserReaction(ctx context.Context, blogID, userID string) (entity.ReactionKind, bool, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryGetUserReaction, map[string]interface{}{
		"blog_id": blogID,
		"user_id": userID,
	})
	if err != nil {
		return "", false, err
	}
	query = r.q.Rebind(query)

	var kind string
	if err := r.q.GetContext(ctx, &kind, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetUserReaction execution err")
		return "", false, err
	}

	return entity.ReactionKind(kind), true, nil
}

func (r *reactionsRepository) AddReaction(ctx context.Context, blogID, userID string, kind entity.ReactionKind) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryAddReaction, map[string]interface{}{
		"blog_id":    blogID,
		"user_id":    userID,
		"kind":       string(kind),
		"created_at": time.Now(),
	})
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("AddReaction execution err")
		return err
	}

	return nil
}

func (r *reactionsRepository) UpdateReaction(ctx context.Context, blogID, userID string, kind entity.ReactionKind) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryUpdateReaction, map[string]interface{}{
		"blog_id": blogID,
		"user_id": userID,
		"kind":    string(kind),
	})
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateReaction execution err")
		return err
	}

	return nil
}

func (r *reactionsRepository) DeleteReaction(ctx context.Context, blogID, userID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteReaction, map[string]interface{}{
		"blog_id": blogID,
		"user_id": userID,
	})
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteReaction execution err")
		return err
	}

	return nil
}
