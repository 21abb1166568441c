package subscriptionService

import (
	"context"

	"github.com/sirupsen/logrus"

	authRepository "github.com/salman-gourmet/bookmyagents/internal/api/auth/repository"
	"github.com/salman-gourmet/bookmyagents/internal/api/subscription"
	subscriptionRepository "github.com/salman-gourmet/bookmyagents/internal/api/subscription/repository"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	"github.com/salman-gourmet/bookmyagents/pkg/redis"
	"github.com/salman-gourmet/bookmyagents/pkg/utils"
)

type ISubscriptionService interface {
	CreateSubscription(ctx context.Context, req subscription.CreateSubscriptionRequest) (subscription.SubscriptionResponse, error)
	GetSubscriptionByID(ctx context.Context, id string) (subscription.SubscriptionResponse, error)
	ListSubscriptions(ctx context.Context, filters subscription.Filters) (*subscription.SubscriptionListResponse, error)
	UpdateSubscription(ctx context.Context, req subscription.UpdateSubscriptionRequest) (subscription.SubscriptionResponse, error)
	DeleteSubscription(ctx context.Context, id string) error
	GetStats(ctx context.Context) (*subscription.SubscriptionStatsResponse, error)

	GetUserSubscription(ctx context.Context, userID string) (subscription.UserSubscriptionEnvelope, error)
	AssignSubscription(ctx context.Context, userID, subscriptionID, adminID string) (subscription.UserSubscriptionEnvelope, error)
	CancelSubscription(ctx context.Context, userID string) error
}

type subscriptionsService struct {
	log               *logrus.Logger
	subscriptionsRepo subscriptionRepository.Repository
	authRepo          authRepository.Repository
	redisServer       redis.IRedis
	utils             utils.IUtils
}

func New(
	log *logrus.Logger,
	subscriptionsRepo subscriptionRepository.Repository,
	authRepo authRepository.Repository,
	redisServer redis.IRedis,
	utils utils.IUtils,
) ISubscriptionService {
	return &subscriptionsService{
		log:               log,
		subscriptionsRepo: subscriptionsRepo,
		authRepo:          authRepo,
		redisServer:       redisServer,
		utils:             utils,
	}
}

func makeSubscriptionResponse(sub entity.Subscription) subscription.SubscriptionResponse {
	features := []string(sub.Features)
	if features == nil {
		features = []string{}
	}

	return subscription.SubscriptionResponse{
		ID:          sub.ID,
		Name:        sub.Name,
		Price:       sub.Price,
		Duration:    sub.Duration,
		Features:    features,
		IsPopular:   sub.IsPopular,
		Description: sub.Description,
		CreatedAt:   sub.CreatedAt,
		UpdatedAt:   sub.UpdatedAt,
	}
}
