package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/subscription"
)

type fakeAssignmentAPI struct {
	plansFn   func() (*subscription.SubscriptionListResponse, error)
	currentFn func(string) (*subscription.UserSubscriptionEnvelope, error)
	assignFn  func(string, string) (*subscription.UserSubscriptionEnvelope, error)
	cancelFn  func(string) error
}

func (f *fakeAssignmentAPI) ListSubscriptions(context.Context) (*subscription.SubscriptionListResponse, error) {
	return f.plansFn()
}

func (f *fakeAssignmentAPI) GetUserSubscription(_ context.Context, userID string) (*subscription.UserSubscriptionEnvelope, error) {
	return f.currentFn(userID)
}

func (f *fakeAssignmentAPI) AssignSubscription(_ context.Context, userID, subscriptionID string) (*subscription.UserSubscriptionEnvelope, error) {
	return f.assignFn(userID, subscriptionID)
}

func (f *fakeAssignmentAPI) CancelSubscription(_ context.Context, userID string) error {
	return f.cancelFn(userID)
}

func threePlans() (*subscription.SubscriptionListResponse, error) {
	return &subscription.SubscriptionListResponse{
		Count: 3,
		Data: []subscription.SubscriptionResponse{
			{ID: "P1", Name: "Gold", Features: []string{"priority support", "featured listings"}},
			{ID: "P2", Name: "Silver"},
			{ID: "P3", Name: "Bronze"},
		},
	}, nil
}

func noPlan(string) (*subscription.UserSubscriptionEnvelope, error) {
	return &subscription.UserSubscriptionEnvelope{}, nil
}

func goldPlan(string) (*subscription.UserSubscriptionEnvelope, error) {
	return &subscription.UserSubscriptionEnvelope{
		UserSubscription: &subscription.UserSubscriptionResponse{
			ID:     "A1",
			UserID: "user-1",
			Subscription: subscription.SubscriptionResponse{
				ID:       "P1",
				Name:     "Gold",
				Features: []string{"priority support", "featured listings"},
			},
		},
	}, nil
}

func TestAssignment_OpenWithoutPlan(t *testing.T) {
	api := &fakeAssignmentAPI{plansFn: threePlans, currentFn: noPlan}
	a := NewAssignment(testLogger(), api, nil)

	require.NoError(t, a.Open(context.Background(), "user-1"))

	assert.Equal(t, StateReady, a.State())
	assert.Len(t, a.Plans(), 3)
	assert.Nil(t, a.Current())
	assert.False(t, a.CanAssign())
}

func TestAssignment_PlanListFailureIsFatal(t *testing.T) {
	api := &fakeAssignmentAPI{
		plansFn:   func() (*subscription.SubscriptionListResponse, error) { return nil, errors.New("unreachable") },
		currentFn: noPlan,
	}
	a := NewAssignment(testLogger(), api, nil)

	assert.Error(t, a.Open(context.Background(), "user-1"))
	assert.Equal(t, StateFailed, a.State())
	assert.Error(t, a.Err())
}

func TestAssignment_CurrentFetchFailureMeansNoPlan(t *testing.T) {
	api := &fakeAssignmentAPI{
		plansFn: threePlans,
		currentFn: func(string) (*subscription.UserSubscriptionEnvelope, error) {
			return nil, errors.New("unreachable")
		},
	}
	a := NewAssignment(testLogger(), api, nil)

	require.NoError(t, a.Open(context.Background(), "user-1"))
	assert.Equal(t, StateReady, a.State())
	assert.Nil(t, a.Current())
}

func TestAssignment_CurrentPlanNotSelectable(t *testing.T) {
	api := &fakeAssignmentAPI{plansFn: threePlans, currentFn: goldPlan}
	a := NewAssignment(testLogger(), api, nil)
	require.NoError(t, a.Open(context.Background(), "user-1"))

	// Selecting the held plan has no effect, any other plan updates it.
	a.Select("P1")
	assert.Empty(t, a.Selected())

	a.Select("P2")
	assert.Equal(t, "P2", a.Selected())

	a.Select("P1")
	assert.Equal(t, "P2", a.Selected())

	// Unknown plan ids are ignored too.
	a.Select("P9")
	assert.Equal(t, "P2", a.Selected())
}

func TestAssignment_AssignSuccessClosesAndRefreshes(t *testing.T) {
	var gotUser, gotPlan string
	api := &fakeAssignmentAPI{
		plansFn:   threePlans,
		currentFn: noPlan,
		assignFn: func(userID, subscriptionID string) (*subscription.UserSubscriptionEnvelope, error) {
			gotUser, gotPlan = userID, subscriptionID
			return goldPlan(userID)
		},
	}

	refreshed := false
	a := NewAssignment(testLogger(), api, func() { refreshed = true })
	require.NoError(t, a.Open(context.Background(), "user-1"))

	a.Select("P1")
	require.True(t, a.CanAssign())

	require.NoError(t, a.Assign(context.Background()))
	assert.Equal(t, "user-1", gotUser)
	assert.Equal(t, "P1", gotPlan)
	assert.Equal(t, StateClosed, a.State())
	assert.True(t, refreshed)
}

func TestAssignment_AssignFailureRetainsSelection(t *testing.T) {
	api := &fakeAssignmentAPI{
		plansFn:   threePlans,
		currentFn: noPlan,
		assignFn: func(string, string) (*subscription.UserSubscriptionEnvelope, error) {
			return nil, errors.New("boom")
		},
	}

	a := NewAssignment(testLogger(), api, nil)
	require.NoError(t, a.Open(context.Background(), "user-1"))
	a.Select("P2")

	assert.Error(t, a.Assign(context.Background()))
	assert.Equal(t, StateReady, a.State())
	assert.Equal(t, "P2", a.Selected())
	assert.Error(t, a.Err())
}

func TestAssignment_CancelFlow(t *testing.T) {
	var cancelledUser string
	api := &fakeAssignmentAPI{
		plansFn:   threePlans,
		currentFn: goldPlan,
		cancelFn: func(userID string) error {
			cancelledUser = userID
			return nil
		},
	}

	refreshed := false
	a := NewAssignment(testLogger(), api, func() { refreshed = true })
	require.NoError(t, a.Open(context.Background(), "user-1"))

	require.True(t, a.RequestCancel())
	assert.Equal(t, StateCancelConfirm, a.State())
	assert.Equal(t, []string{"priority support", "featured listings"}, a.RevokedFeatures())

	require.NoError(t, a.ConfirmCancel(context.Background()))
	assert.Equal(t, "user-1", cancelledUser)
	assert.Equal(t, StateClosed, a.State())
	assert.True(t, refreshed)
}

func TestAssignment_CancelFailureReturnsToConfirm(t *testing.T) {
	api := &fakeAssignmentAPI{
		plansFn:   threePlans,
		currentFn: goldPlan,
		cancelFn:  func(string) error { return errors.New("boom") },
	}

	a := NewAssignment(testLogger(), api, nil)
	require.NoError(t, a.Open(context.Background(), "user-1"))
	require.True(t, a.RequestCancel())

	assert.Error(t, a.ConfirmCancel(context.Background()))
	assert.Equal(t, StateCancelConfirm, a.State())
	assert.Error(t, a.Err())
}

func TestAssignment_CancelWithoutPlanRefused(t *testing.T) {
	api := &fakeAssignmentAPI{plansFn: threePlans, currentFn: noPlan}
	a := NewAssignment(testLogger(), api, nil)
	require.NoError(t, a.Open(context.Background(), "user-1"))

	assert.False(t, a.RequestCancel())
	assert.Equal(t, StateReady, a.State())
}

func TestAssignment_CloseDiscardsState(t *testing.T) {
	api := &fakeAssignmentAPI{plansFn: threePlans, currentFn: goldPlan}
	a := NewAssignment(testLogger(), api, nil)
	require.NoError(t, a.Open(context.Background(), "user-1"))
	a.Select("P2")

	a.Close()
	assert.Equal(t, StateClosed, a.State())
	assert.Empty(t, a.Selected())
	assert.Nil(t, a.Plans())
	assert.Nil(t, a.Current())
}
