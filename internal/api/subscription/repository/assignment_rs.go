package subscriptionRepository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/salman-gourmet/bookmyagents/internal/api/subscription"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	contextPkg "github.com/salman-gourmet/bookmyagents/pkg/context"
)

type UserSubscriptionDB struct {
	ID             sql.NullString `db:"id"`
	UserID         sql.NullString `db:"user_id"`
	SubscriptionID sql.NullString `db:"subscription_id"`
	AssignedBy     sql.NullString `db:"assigned_by"`
	AssignedAt     sql.NullTime   `db:"assigned_at"`
}

func (r *assignmentsRepository) makeUserSubscription(row UserSubscriptionDB) entity.UserSubscription {
	return entity.UserSubscription{
		ID:             row.ID.String,
		UserID:         row.UserID.String,
		SubscriptionID: row.SubscriptionID.String,
		AssignedBy:     row.AssignedBy.String,
		AssignedAt:     row.AssignedAt.Time,
	}
}

func (r *assignmentsRepository) GetUserSubscription(ctx context.Context, userID string) (entity.UserSubscription, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row UserSubscriptionDB

	query, args, err := sqlx.Named(queryGetUserSubscription, map[string]interface{}{"user_id": userID})
	if err != nil {
		return entity.UserSubscription{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.UserSubscription{}, subscription.ErrNoActiveSubscription
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetUserSubscription execution err")
		return entity.UserSubscription{}, err
	}

	return r.makeUserSubscription(row), nil
}

// AssignSubscription upserts the single association row for a user.
func (r *assignmentsRepository) AssignSubscription(ctx context.Context, assignment entity.UserSubscription) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":              assignment.ID,
		"user_id":         assignment.UserID,
		"subscription_id": assignment.SubscriptionID,
		"assigned_by":     assignment.AssignedBy,
		"assigned_at":     assignment.AssignedAt,
	}

	query, args, err := sqlx.Named(queryAssignSubscription, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("AssignSubscription named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("AssignSubscription execution err")
		return err
	}

	return nil
}

func (r *assignmentsRepository) CancelSubscription(ctx context.Context, userID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryCancelSubscription, map[string]interface{}{"user_id": userID})
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CancelSubscription execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return subscription.ErrNoActiveSubscription
	}

	return nil
}
