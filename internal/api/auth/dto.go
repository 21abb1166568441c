package auth

import (
	"time"

	"github.com/salman-gourmet/bookmyagents/internal/entity"
	"github.com/salman-gourmet/bookmyagents/pkg/pagination"
)

type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,min=3,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=user agent"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        string          `json:"id"`
	FullName  string          `json:"fullName"`
	Email     string          `json:"email"`
	Role      entity.UserRole `json:"role"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type UserFilters struct {
	Page   int
	Limit  int
	Search string
	Role   string
}

type UserStatisticsResponse struct {
	TotalUsers   int `json:"totalUsers"`
	ActiveUsers  int `json:"activeUsers"`
	NewThisMonth int `json:"newThisMonth"`
}

type UserListResponse struct {
	Count      int                    `json:"count"`
	Statistics UserStatisticsResponse `json:"statistics"`
	Data       []UserResponse         `json:"data"`
	Pagination pagination.Metadata    `json:"pagination"`
}

type CreateUserRequest struct {
	FullName string `json:"name" validate:"required,min=3,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=user agent admin"`
}

type UpdateUserRequest struct {
	FullName string `json:"name" validate:"omitempty,min=3,max=255"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"omitempty,oneof=user agent admin"`
	IsActive *bool  `json:"isActive" validate:"omitempty"`
}

// UpdateProfileRequest is the self-service profile edit. Role and active
// status are not part of it; those stay admin-only.
type UpdateProfileRequest struct {
	FullName string `json:"fullName" validate:"omitempty,min=3,max=255"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"omitempty"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}
