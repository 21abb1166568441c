package subscriptionService

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/subscription"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	contextPkg "github.com/salman-gourmet/bookmyagents/pkg/context"
	"github.com/salman-gourmet/bookmyagents/pkg/pagination"
	"github.com/salman-gourmet/bookmyagents/pkg/redis"
)

const (
	subscriptionStatsCacheKey = "subscription_stats"
	subscriptionStatsCacheTTL = 5 * time.Minute
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (s *subscriptionsService) CreateSubscription(ctx context.Context, req subscription.CreateSubscriptionRequest) (subscription.SubscriptionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.subscriptionsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return subscription.SubscriptionResponse{}, err
	}
	defer repo.Rollback()

	subID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return subscription.SubscriptionResponse{}, err
	}

	now := time.Now()
	sub := entity.Subscription{
		ID:          subID,
		Name:        req.Name,
		Price:       req.Price,
		Duration:    req.Duration,
		Features:    req.Features,
		IsPopular:   req.IsPopular,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := repo.Subscriptions.CreateSubscription(ctx, sub); err != nil {
		return subscription.SubscriptionResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return subscription.SubscriptionResponse{}, subscription.ErrCreateSubscription
	}

	s.invalidateStats(ctx, requestID)

	return makeSubscriptionResponse(sub), nil
}

func (s *subscriptionsService) GetSubscriptionByID(ctx context.Context, id string) (subscription.SubscriptionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.subscriptionsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return subscription.SubscriptionResponse{}, err
	}

	sub, err := repo.Subscriptions.GetSubscriptionByID(ctx, id)
	if err != nil {
		return subscription.SubscriptionResponse{}, err
	}

	return makeSubscriptionResponse(sub), nil
}

func (s *subscriptionsService) ListSubscriptions(ctx context.Context, filters subscription.Filters) (*subscription.SubscriptionListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.subscriptionsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	meta := pagination.New(0, filters.Page, filters.Limit)

	subs, total, err := repo.Subscriptions.ListSubscriptions(ctx, filters, meta.Limit, meta.Offset())
	if err != nil {
		return nil, err
	}

	response := &subscription.SubscriptionListResponse{
		Count:      len(subs),
		Data:       make([]subscription.SubscriptionResponse, 0, len(subs)),
		Pagination: pagination.New(total, meta.Page, meta.Limit),
	}

	for _, sub := range subs {
		response.Data = append(response.Data, makeSubscriptionResponse(sub))
	}

	return response, nil
}

func (s *subscriptionsService) UpdateSubscription(ctx context.Context, req subscription.UpdateSubscriptionRequest) (subscription.SubscriptionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.subscriptionsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return subscription.SubscriptionResponse{}, err
	}
	defer repo.Rollback()

	existing, err := repo.Subscriptions.GetSubscriptionByID(ctx, req.ID)
	if err != nil {
		return subscription.SubscriptionResponse{}, err
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}
	if req.Duration != "" {
		existing.Duration = req.Duration
	}
	if req.Features != nil {
		existing.Features = req.Features
	}
	if req.IsPopular != nil {
		existing.IsPopular = *req.IsPopular
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	existing.UpdatedAt = time.Now()

	if err := repo.Subscriptions.UpdateSubscription(ctx, existing); err != nil {
		return subscription.SubscriptionResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return subscription.SubscriptionResponse{}, subscription.ErrUpdateSubscription
	}

	s.invalidateStats(ctx, requestID)

	return makeSubscriptionResponse(existing), nil
}

func (s *subscriptionsService) DeleteSubscription(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.subscriptionsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	if err := repo.Subscriptions.DeleteSubscription(ctx, id); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return subscription.ErrDeleteSubscription
	}

	s.invalidateStats(ctx, requestID)

	return nil
}

func (s *subscriptionsService) GetStats(ctx context.Context) (*subscription.SubscriptionStatsResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if cached, err := s.redisServer.GetCache(ctx, subscriptionStatsCacheKey); err == nil {
		var stats subscription.SubscriptionStatsResponse
		if err := json.UnmarshalFromString(cached, &stats); err == nil {
			return &stats, nil
		}
	} else if err != redis.ErrCacheMiss {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to read subscription stats cache")
	}

	repo, err := s.subscriptionsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	total, averagePrice, mostPopular, err := repo.Subscriptions.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	stats := &subscription.SubscriptionStatsResponse{
		TotalSubscriptions: total,
		AveragePrice:       averagePrice,
		MostPopular:        mostPopular,
	}

	if encoded, err := json.MarshalToString(stats); err == nil {
		if err := s.redisServer.SetCache(ctx, subscriptionStatsCacheKey, encoded, subscriptionStatsCacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to write subscription stats cache")
		}
	}

	return stats, nil
}

func (s *subscriptionsService) invalidateStats(ctx context.Context, requestID string) {
	if err := s.redisServer.DeleteCache(ctx, subscriptionStatsCacheKey); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to invalidate subscription stats cache")
	}
}
