package entity

import (
	"time"

	"github.com/lib/pq"
)

type Subscription struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Price       float64        `db:"price"`
	Duration    string         `db:"duration"`
	Features    pq.StringArray `db:"features"`
	IsPopular   bool           `db:"is_popular"`
	Description string         `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// UserSubscription is the single active plan association of an agent.
type UserSubscription struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	SubscriptionID string    `db:"subscription_id"`
	AssignedBy     string    `db:"assigned_by"`
	AssignedAt     time.Time `db:"assigned_at"`
}
