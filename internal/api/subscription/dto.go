package subscription

import (
	"time"

	"github.com/salman-gourmet/bookmyagents/pkg/pagination"
)

type CreateSubscriptionRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=128"`
	Price       float64  `json:"price" validate:"required,gte=0"`
	Duration    string   `json:"duration" validate:"required,oneof=monthly quarterly yearly"`
	Features    []string `json:"features" validate:"required,min=1,dive,required"`
	IsPopular   bool     `json:"isPopular"`
	Description string   `json:"description" validate:"omitempty,max=1000"`
}

type UpdateSubscriptionRequest struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"omitempty,min=2,max=128"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Duration    string   `json:"duration" validate:"omitempty,oneof=monthly quarterly yearly"`
	Features    []string `json:"features" validate:"omitempty,min=1,dive,required"`
	IsPopular   *bool    `json:"isPopular"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
}

type Filters struct {
	Page     int
	Limit    int
	Search   string
	MinPrice float64
	MaxPrice float64
}

type SubscriptionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Duration    string    `json:"duration"`
	Features    []string  `json:"features"`
	IsPopular   bool      `json:"isPopular"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SubscriptionListResponse struct {
	Count      int                    `json:"count"`
	Data       []SubscriptionResponse `json:"data"`
	Pagination pagination.Metadata    `json:"pagination"`
}

type SubscriptionStatsResponse struct {
	TotalSubscriptions int     `json:"totalSubscriptions"`
	AveragePrice       float64 `json:"averagePrice"`
	MostPopular        string  `json:"mostPopular,omitempty"`
}

type AssignSubscriptionRequest struct {
	SubscriptionID string `json:"subscriptionId" validate:"required"`
}

type UserSubscriptionResponse struct {
	ID           string               `json:"id"`
	UserID       string               `json:"userId"`
	AssignedBy   string               `json:"assignedBy"`
	AssignedAt   time.Time            `json:"assignedAt"`
	Subscription SubscriptionResponse `json:"subscription"`
}

// UserSubscriptionEnvelope wraps the nullable association: a user without a
// plan yields {"userSubscription": null}, not an error.
type UserSubscriptionEnvelope struct {
	UserSubscription *UserSubscriptionResponse `json:"userSubscription"`
}
