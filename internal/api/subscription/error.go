package subscription

import (
	"net/http"

	"github.com/salman-gourmet/bookmyagents/pkg/response"
)

var (
	ErrSubscriptionNotFound = response.NewError(http.StatusNotFound, "subscription plan not found")
	ErrPlanNameTaken        = response.NewError(http.StatusConflict, "a plan with this name already exists")
	ErrAlreadyAssigned      = response.NewError(http.StatusConflict, "user already has this subscription plan")
	ErrTargetNotAgent       = response.NewError(http.StatusBadRequest, "subscriptions can only be assigned to agents")
	ErrNoActiveSubscription = response.NewError(http.StatusNotFound, "user has no active subscription")
	ErrCreateSubscription   = response.NewError(http.StatusInternalServerError, "failed to create subscription plan")
	ErrUpdateSubscription   = response.NewError(http.StatusInternalServerError, "failed to update subscription plan")
	ErrDeleteSubscription   = response.NewError(http.StatusInternalServerError, "failed to delete subscription plan")
	ErrAssignSubscription   = response.NewError(http.StatusInternalServerError, "failed to assign subscription")
)
