package subscriptionRepository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/salman-gourmet/bookmyagents/internal/api/subscription"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	contextPkg "github.com/salman-gourmet/bookmyagents/pkg/context"
)

type SubscriptionDB struct {
	ID          sql.NullString  `db:"id"`
	Name        sql.NullString  `db:"name"`
	Price       sql.NullFloat64 `db:"price"`
	Duration    sql.NullString  `db:"duration"`
	Features    pq.StringArray  `db:"features"`
	IsPopular   bool            `db:"is_popular"`
	Description sql.NullString  `db:"description"`
	CreatedAt   sql.NullTime    `db:"created_at"`
	UpdatedAt   sql.NullTime    `db:"updated_at"`
}

func (r *subscriptionsRepository) makeSubscription(row SubscriptionDB) entity.Subscription {
	return entity.Subscription{
		ID:          row.ID.String,
		Name:        row.Name.String,
		Price:       row.Price.Float64,
		Duration:    row.Duration.String,
		Features:    row.Features,
		IsPopular:   row.IsPopular,
		Description: row.Description.String,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

func subscriptionArgs(sub entity.Subscription) map[string]interface{} {
	return map[string]interface{}{
		"id":          sub.ID,
		"name":        sub.Name,
		"price":       sub.Price,
		"duration":    sub.Duration,
		"features":    sub.Features,
		"is_popular":  sub.IsPopular,
		"description": sub.Description,
		"created_at":  sub.CreatedAt,
		"updated_at":  sub.UpdatedAt,
	}
}

func (r *subscriptionsRepository) CreateSubscription(ctx context.Context, sub entity.Subscription) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryCreateSubscription, subscriptionArgs(sub))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateSubscription")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, "name") {
			return subscription.ErrPlanNameTaken
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating subscription")
		return err
	}

	return nil
}

func (r *subscriptionsRepository) GetSubscriptionByID(ctx context.Context, id string) (entity.Subscription, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row SubscriptionDB

	query, args, err := sqlx.Named(queryGetSubscriptionByID, map[string]interface{}{"id": id})
	if err != nil {
		return entity.Subscription{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Subscription{}, subscription.ErrSubscriptionNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSubscriptionByID execution err")
		return entity.Subscription{}, err
	}

	return r.makeSubscription(row), nil
}

func (r *subscriptionsRepository) ListSubscriptions(ctx context.Context, filters subscription.Filters, limit, offset int) ([]entity.Subscription, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"search":    filters.Search,
		"min_price": filters.MinPrice,
		"max_price": filters.MaxPrice,
		"limit":     limit,
		"offset":    offset,
	}

	query, args, err := sqlx.Named(queryListSubscriptions, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListSubscriptions named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []SubscriptionDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListSubscriptions execution err")
		return nil, 0, err
	}

	countQuery, countArgs, err := sqlx.Named(queryCountSubscriptions, argsKV)
	if err != nil {
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	var total int
	if err := r.q.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListSubscriptions count execution err")
		return nil, 0, err
	}

	subs := make([]entity.Subscription, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, r.makeSubscription(row))
	}

	return subs, total, nil
}

func (r *subscriptionsRepository) UpdateSubscription(ctx context.Context, sub entity.Subscription) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := subscriptionArgs(sub)
	argsKV["updated_at"] = time.Now()

	query, args, err := sqlx.Named(queryUpdateSubscription, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, "name") {
			return subscription.ErrPlanNameTaken
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateSubscription execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	return nil
}

func (r *subscriptionsRepository) DeleteSubscription(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteSubscription, map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteSubscription execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	return nil
}

// GetStatistics returns the plan count, the average plan price, and the name
// of the most assigned plan (empty when nothing is assigned yet).
func (r *subscriptionsRepository) GetStatistics(ctx context.Context) (int, float64, string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var totals struct {
		Total        int     `db:"total"`
		AveragePrice float64 `db:"average_price"`
	}
	if err := r.q.GetContext(ctx, &totals, r.q.Rebind(querySubscriptionTotals)); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetStatistics totals execution err")
		return 0, 0, "", err
	}

	var mostPopular string
	if err := r.q.GetContext(ctx, &mostPopular, r.q.Rebind(queryMostAssignedPlan)); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("GetStatistics most assigned execution err")
			return 0, 0, "", err
		}
	}

	return totals.Total, totals.AveragePrice, mostPopular, nil
}
