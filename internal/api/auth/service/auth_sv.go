package authService

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/auth"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	contextPkg "github.com/salman-gourmet/bookmyagents/pkg/context"
	jwtPkg "github.com/salman-gourmet/bookmyagents/pkg/jwt"
)

const accessTokenTTL = 24 * time.Hour

func (s *authService) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.AuthResponse{}, err
	}
	defer repo.Rollback()

	role := entity.UserRole(req.Role)
	if req.Role == "" {
		role = entity.RoleUser
	}
	// Admin accounts are provisioned through the admin user endpoints only.
	if role == entity.RoleAdmin || !role.Valid() {
		return auth.AuthResponse{}, auth.ErrInvalidRole
	}

	hashedPassword, err := s.bcryptUtils.HashPassword(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return auth.AuthResponse{}, err
	}

	userID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return auth.AuthResponse{}, err
	}

	now := time.Now()
	user := entity.User{
		ID:        userID,
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  hashedPassword,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Users.CreateUser(ctx, user); err != nil {
		return auth.AuthResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return auth.AuthResponse{}, auth.ErrCreateUser
	}

	token, _, err := jwtPkg.Sign(entity.UserLoginData{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	}, accessTokenTTL)
	if err != nil {
		return auth.AuthResponse{}, err
	}

	return auth.AuthResponse{
		User:  makeUserResponse(user),
		Token: token,
	}, nil
}

func (s *authService) Login(ctx context.Context, req auth.LoginRequest) (auth.AuthResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.AuthResponse{}, err
	}

	user, err := repo.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"email":      req.Email,
		}).Warn("Login attempt for unknown email")
		return auth.AuthResponse{}, auth.ErrInvalidEmailOrPassword
	}

	if !user.IsActive {
		return auth.AuthResponse{}, auth.ErrUserInactive
	}

	if err := s.bcryptUtils.ComparePassword(user.Password, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    user.ID,
		}).Warn("Login attempt with wrong password")
		return auth.AuthResponse{}, auth.ErrInvalidEmailOrPassword
	}

	token, _, err := jwtPkg.Sign(entity.UserLoginData{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	}, accessTokenTTL)
	if err != nil {
		return auth.AuthResponse{}, err
	}

	return auth.AuthResponse{
		User:  makeUserResponse(user),
		Token: token,
	}, nil
}

// Logout blacklists the presented token for the remainder of its lifetime.
func (s *authService) Logout(ctx context.Context, token string, expiresAt int64) error {
	requestID := contextPkg.GetRequestID(ctx)

	until := time.Until(time.Unix(expiresAt, 0))
	if err := s.redisServer.RevokeToken(ctx, token, until); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to revoke token")
		return err
	}

	return nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (auth.UserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.UserResponse{}, err
	}

	user, err := repo.Users.GetByID(ctx, userID)
	if err != nil {
		return auth.UserResponse{}, err
	}

	return makeUserResponse(user), nil
}

func (s *authService) RefreshToken(user entity.UserLoginData) (auth.TokenResponse, error) {
	token, expiresAt, err := jwtPkg.Sign(user, accessTokenTTL)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
