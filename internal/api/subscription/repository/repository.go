package subscriptionRepository

import (
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/subscription"
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
		Subscriptions: &subscriptionsRepository{q: sqlExecutor, log: r.log},
		Assignments:   &assignmentsRepository{q: sqlExecutor, log: r.log},
		Commit:        commitFunc,
		Rollback:      rollbackFunc,
	}, nil
}

type Client struct {
	Subscriptions interface {
		CreateSubscription(ctx context.Context, sub entity.Subscription) error
		GetSubscriptionByID(ctx context.Context, id string) (entity.Subscription, error)
		ListSubscriptions(ctx context.Context, filters subscription.Filters, limit, offset int) ([]entity.Subscription, int, error)
		UpdateSubscription(ctx context.Context, sub entity.Subscription) error
		DeleteSubscription(ctx context.Context, id string) error
		GetStatistics(ctx context.Context) (int, float64, string, error)
	}

	Assignments interface {
		GetUserSubscription(ctx context.Context, userID string) (entity.UserSubscription, error)
		AssignSubscription(ctx context.Context, assignment entity.UserSubscription) error
		CancelSubscription(ctx context.Context, userID string) error
	}

	Commit   func() error
	Rollback func() error
}

type subscriptionsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type assignmentsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
