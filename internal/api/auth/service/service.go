package authService

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/salman-gourmet/bookmyagents/internal/api/auth"
	authRepository "github.com/salman-gourmet/bookmyagents/internal/api/auth/repository"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	"github.com/salman-gourmet/bookmyagents/pkg/bcrypt"
	"github.com/salman-gourmet/bookmyagents/pkg/redis"
	"github.com/salman-gourmet/bookmyagents/pkg/utils"
)

type IAuthService interface {
	Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error)
	Login(ctx context.Context, req auth.LoginRequest) (auth.AuthResponse, error)
	Logout(ctx context.Context, token string, expiresAt int64) error
	GetProfile(ctx context.Context, userID string) (auth.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req auth.UpdateProfileRequest) (auth.UserResponse, error)
	RefreshToken(user entity.UserLoginData) (auth.TokenResponse, error)

	ListUsers(ctx context.Context, filters auth.UserFilters) (*auth.UserListResponse, error)
	GetUser(ctx context.Context, id string) (auth.UserResponse, error)
	CreateUser(ctx context.Context, req auth.CreateUserRequest) (auth.UserResponse, error)
	UpdateUser(ctx context.Context, id string, req auth.UpdateUserRequest) error
	DeleteUser(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, actor entity.UserLoginData, id string, req auth.UpdatePasswordRequest) error
}

type authService struct {
	log         *logrus.Logger
	authRepo    authRepository.Repository
	redisServer redis.IRedis
	bcryptUtils bcrypt.IBcrypt
	utils       utils.IUtils
}

func New(
	log *logrus.Logger,
	authRepo authRepository.Repository,
	redisServer redis.IRedis,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
) IAuthService {
	return &authService{
		log:         log,
		authRepo:    authRepo,
		redisServer: redisServer,
		bcryptUtils: bcryptUtils,
		utils:       utils,
	}
}

func makeUserResponse(user entity.User) auth.UserResponse {
	return auth.UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
