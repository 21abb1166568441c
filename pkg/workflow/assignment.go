package workflow

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/subscription"
)

// AssignmentAPI is the slice of the REST client the assignment dialog
// consumes. *apiclient.Client satisfies it.
type AssignmentAPI interface {
	ListSubscriptions(ctx context.Context) (*subscription.SubscriptionListResponse, error)
	GetUserSubscription(ctx context.Context, userID string) (*subscription.UserSubscriptionEnvelope, error)
	AssignSubscription(ctx context.Context, userID, subscriptionID string) (*subscription.UserSubscriptionEnvelope, error)
	CancelSubscription(ctx context.Context, userID string) error
}

type AssignmentState int

const (
	StateClosed AssignmentState = iota
	StateLoading
	StateReady
	StateAssigning
	StateCancelConfirm
	StateCancelling
	StateFailed
)

// Assignment drives the plan assignment dialog for one target user at a
// time. Not safe for concurrent use.
type Assignment struct {
	log       *logrus.Logger
	api       AssignmentAPI
	onRefresh func()

	state    AssignmentState
	userID   string
	plans    []subscription.SubscriptionResponse
	current  *subscription.UserSubscriptionResponse
	selected string
	err      error
}

// NewAssignment wires the dialog. onRefresh fires after a successful assign
// or cancel so the parent view can reload; it may be nil.
func NewAssignment(log *logrus.Logger, api AssignmentAPI, onRefresh func()) *Assignment {
	return &Assignment{
		log:       log,
		api:       api,
		onRefresh: onRefresh,
	}
}

func (a *Assignment) State() AssignmentState { return a.state }

func (a *Assignment) Plans() []subscription.SubscriptionResponse { return a.plans }

// Current returns the target user's plan, nil when they have none.
func (a *Assignment) Current() *subscription.UserSubscriptionResponse { return a.current }

func (a *Assignment) Selected() string { return a.selected }

// Err returns the inline error of the last failed action, cleared on the
// next successful transition.
func (a *Assignment) Err() error { return a.err }

// Open loads the dialog for a user. Both fetches run to completion
// independently: a plan-list failure is fatal to the view, a missing current
// subscription just means no plan.
func (a *Assignment) Open(ctx context.Context, userID string) error {
	a.reset()
	a.userID = userID
	a.state = StateLoading

	plans, plansErr := a.api.ListSubscriptions(ctx)
	envelope, currentErr := a.api.GetUserSubscription(ctx, userID)

	if plansErr != nil {
		a.log.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   plansErr.Error(),
		}).Error("Failed to load subscription plans")
		a.state = StateFailed
		a.err = plansErr
		return plansErr
	}

	if currentErr != nil {
		a.log.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   currentErr.Error(),
		}).Warn("Failed to load current subscription, treating as no plan")
	} else if envelope != nil {
		a.current = envelope.UserSubscription
	}

	a.plans = plans.Data
	a.state = StateReady
	return nil
}

// Select updates the selection. The currently assigned plan is visible but
// not selectable; picking it leaves the selection unchanged.
func (a *Assignment) Select(planID string) {
	if a.state != StateReady {
		return
	}
	if a.current != nil && a.current.Subscription.ID == planID {
		return
	}
	for _, plan := range a.plans {
		if plan.ID == planID {
			a.selected = planID
			return
		}
	}
}

func (a *Assignment) CanAssign() bool {
	return a.state == StateReady && a.selected != ""
}

// Assign submits the selected plan. Success closes the dialog and fires the
// refresh callback; failure keeps the selection and returns to ready with an
// inline error.
func (a *Assignment) Assign(ctx context.Context) error {
	if !a.CanAssign() {
		return nil
	}

	a.state = StateAssigning
	if _, err := a.api.AssignSubscription(ctx, a.userID, a.selected); err != nil {
		a.log.WithFields(logrus.Fields{
			"user_id":         a.userID,
			"subscription_id": a.selected,
			"error":           err.Error(),
		}).Error("Failed to assign subscription")
		a.state = StateReady
		a.err = err
		return err
	}

	a.finish()
	return nil
}

// RequestCancel opens the confirmation sub-dialog. Only meaningful while a
// plan is assigned.
func (a *Assignment) RequestCancel() bool {
	if a.state != StateReady || a.current == nil {
		return false
	}
	a.state = StateCancelConfirm
	return true
}

// RevokedFeatures lists what the confirmation dialog warns will be lost.
func (a *Assignment) RevokedFeatures() []string {
	if a.current == nil {
		return nil
	}
	return a.current.Subscription.Features
}

func (a *Assignment) DismissCancel() {
	if a.state == StateCancelConfirm {
		a.state = StateReady
	}
}

// ConfirmCancel performs the cancellation. Failure returns to the
// confirmation dialog with an inline error.
func (a *Assignment) ConfirmCancel(ctx context.Context) error {
	if a.state != StateCancelConfirm {
		return nil
	}

	a.state = StateCancelling
	if err := a.api.CancelSubscription(ctx, a.userID); err != nil {
		a.log.WithFields(logrus.Fields{
			"user_id": a.userID,
			"error":   err.Error(),
		}).Error("Failed to cancel subscription")
		a.state = StateCancelConfirm
		a.err = err
		return err
	}

	a.finish()
	return nil
}

// Close discards all local state.
func (a *Assignment) Close() {
	a.reset()
}

func (a *Assignment) finish() {
	a.reset()
	if a.onRefresh != nil {
		a.onRefresh()
	}
}

func (a *Assignment) reset() {
	a.state = StateClosed
	a.userID = ""
	a.plans = nil
	a.current = nil
	a.selected = ""
	a.err = nil
}
