package subscriptionService

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/subscription"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	contextPkg "github.com/salman-gourmet/bookmyagents/pkg/context"
)

func (s *subscriptionsService) GetUserSubscription(ctx context.Context, userID string) (subscription.UserSubscriptionEnvelope, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.subscriptionsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return subscription.UserSubscriptionEnvelope{}, err
	}

	assignment, err := repo.Assignments.GetUserSubscription(ctx, userID)
	if err != nil {
		// No plan is a normal state, not a failure.
		if errors.Is(err, subscription.ErrNoActiveSubscription) {
			return subscription.UserSubscriptionEnvelope{}, nil
		}
		return subscription.UserSubscriptionEnvelope{}, err
	}

	sub, err := repo.Subscriptions.GetSubscriptionByID(ctx, assignment.SubscriptionID)
	if err != nil {
		return subscription.UserSubscriptionEnvelope{}, err
	}

	return subscription.UserSubscriptionEnvelope{
		UserSubscription: &subscription.UserSubscriptionResponse{
			ID:           assignment.ID,
			UserID:       assignment.UserID,
			AssignedBy:   assignment.AssignedBy,
			AssignedAt:   assignment.AssignedAt,
			Subscription: makeSubscriptionResponse(sub),
		},
	}, nil
}

// AssignSubscription gives an agent a plan, replacing any current one.
// Re-assigning the plan the user already holds is a conflict so a
// double-submitted assignment cannot silently reapply.
func (s *subscriptionsService) AssignSubscription(ctx context.Context, userID, subscriptionID, adminID string) (subscription.UserSubscriptionEnvelope, error) {
	requestID := contextPkg.GetRequestID(ctx)

	authRepo, err := s.authRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create auth repository client")
		return subscription.UserSubscriptionEnvelope{}, err
	}

	target, err := authRepo.Users.GetByID(ctx, userID)
	if err != nil {
		return subscription.UserSubscriptionEnvelope{}, err
	}
	if target.Role != entity.RoleAgent {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"role":       target.Role,
		}).Warn("Subscription assignment to a non-agent refused")
		return subscription.UserSubscriptionEnvelope{}, subscription.ErrTargetNotAgent
	}

	repo, err := s.subscriptionsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return subscription.UserSubscriptionEnvelope{}, err
	}
	defer repo.Rollback()

	sub, err := repo.Subscriptions.GetSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return subscription.UserSubscriptionEnvelope{}, err
	}

	current, err := repo.Assignments.GetUserSubscription(ctx, userID)
	if err != nil && !errors.Is(err, subscription.ErrNoActiveSubscription) {
		return subscription.UserSubscriptionEnvelope{}, err
	}
	if err == nil && current.SubscriptionID == subscriptionID {
		return subscription.UserSubscriptionEnvelope{}, subscription.ErrAlreadyAssigned
	}

	assignmentID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return subscription.UserSubscriptionEnvelope{}, err
	}

	assignment := entity.UserSubscription{
		ID:             assignmentID,
		UserID:         userID,
		SubscriptionID: subscriptionID,
		AssignedBy:     adminID,
		AssignedAt:     time.Now(),
	}

	if err := repo.Assignments.AssignSubscription(ctx, assignment); err != nil {
		return subscription.UserSubscriptionEnvelope{}, subscription.ErrAssignSubscription
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return subscription.UserSubscriptionEnvelope{}, subscription.ErrAssignSubscription
	}

	s.invalidateStats(ctx, requestID)

	return subscription.UserSubscriptionEnvelope{
		UserSubscription: &subscription.UserSubscriptionResponse{
			ID:           assignment.ID,
			UserID:       assignment.UserID,
			AssignedBy:   assignment.AssignedBy,
			AssignedAt:   assignment.AssignedAt,
			Subscription: makeSubscriptionResponse(sub),
		},
	}, nil
}

func (s *subscriptionsService) CancelSubscription(ctx context.Context, userID string) error {
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

	if err := repo.Assignments.CancelSubscription(ctx, userID); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return subscription.ErrAssignSubscription
	}

	s.invalidateStats(ctx, requestID)

	return nil
}
