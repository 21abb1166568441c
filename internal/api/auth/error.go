package auth

import (
	"net/http"

	"github.com/salman-gourmet/bookmyagents/pkg/response"
)

var (
	ErrEmailAlreadyExists     = response.NewError(http.StatusConflict, "email already exists")
	ErrInvalidEmailOrPassword = response.NewError(http.StatusBadRequest, "email or password is wrong")
	ErrUserNotFound           = response.NewError(http.StatusNotFound, "user not found")
	ErrUserInactive           = response.NewError(http.StatusForbidden, "user account is deactivated")
	ErrInvalidRole            = response.NewError(http.StatusBadRequest, "invalid role")
	ErrCurrentPasswordWrong   = response.NewError(http.StatusBadRequest, "current password is wrong")
	ErrPasswordSame           = response.NewError(http.StatusBadRequest, "password same as before")
	ErrCreateUser             = response.NewError(http.StatusInternalServerError, "failed to create user")
	ErrUpdateUser             = response.NewError(http.StatusInternalServerError, "failed to update user")
	ErrDeleteUser             = response.NewError(http.StatusInternalServerError, "failed to delete user")
)
