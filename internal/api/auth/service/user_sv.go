package authService

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/auth"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	contextPkg "github.com/salman-gourmet/bookmyagents/pkg/context"
	"github.com/salman-gourmet/bookmyagents/pkg/pagination"
)

func (s *authService) ListUsers(ctx context.Context, filters auth.UserFilters) (*auth.UserListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	meta := pagination.New(0, filters.Page, filters.Limit)
	filters.Page = meta.Page
	filters.Limit = meta.Limit

	users, total, err := repo.Users.ListUsers(ctx, filters)
	if err != nil {
		return nil, err
	}

	stats, err := repo.Users.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	data := make([]auth.UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, makeUserResponse(user))
	}

	return &auth.UserListResponse{
		Count: len(data),
		Statistics: auth.UserStatisticsResponse{
			TotalUsers:   stats.TotalUsers,
			ActiveUsers:  stats.ActiveUsers,
			NewThisMonth: stats.NewThisMonth,
		},
		Data:       data,
		Pagination: pagination.New(total, filters.Page, filters.Limit),
	}, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (auth.UserResponse, error) {
	return s.GetProfile(ctx, id)
}

func (s *authService) CreateUser(ctx context.Context, req auth.CreateUserRequest) (auth.UserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.UserResponse{}, err
	}
	defer repo.Rollback()

	role := entity.UserRole(req.Role)
	if req.Role == "" {
		role = entity.RoleUser
	}
	if !role.Valid() {
		return auth.UserResponse{}, auth.ErrInvalidRole
	}

	hashedPassword, err := s.bcryptUtils.HashPassword(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return auth.UserResponse{}, err
	}

	userID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return auth.UserResponse{}, err
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
		return auth.UserResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return auth.UserResponse{}, auth.ErrCreateUser
	}

	return makeUserResponse(user), nil
}

func (s *authService) UpdateUser(ctx context.Context, id string, req auth.UpdateUserRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	current, err := repo.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user := entity.User{
		ID:       id,
		FullName: req.FullName,
		Email:    req.Email,
		Role:     entity.UserRole(req.Role),
		IsActive: current.IsActive,
	}
	if req.Role != "" && !user.Role.Valid() {
		return auth.ErrInvalidRole
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := repo.Users.UpdateUser(ctx, user); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return auth.ErrUpdateUser
	}

	return nil
}

// UpdateProfile lets a user change their own name and email. Role and active
// status are untouchable here regardless of what the caller sends.
func (s *authService) UpdateProfile(ctx context.Context, userID string, req auth.UpdateProfileRequest) (auth.UserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.UserResponse{}, err
	}
	defer repo.Rollback()

	current, err := repo.Users.GetByID(ctx, userID)
	if err != nil {
		return auth.UserResponse{}, err
	}

	now := time.Now()
	user := entity.User{
		ID:        userID,
		FullName:  req.FullName,
		Email:     req.Email,
		IsActive:  current.IsActive,
		UpdatedAt: now,
	}

	if err := repo.Users.UpdateUser(ctx, user); err != nil {
		return auth.UserResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return auth.UserResponse{}, auth.ErrUpdateUser
	}

	if req.FullName != "" {
		current.FullName = req.FullName
	}
	if req.Email != "" {
		current.Email = req.Email
	}
	current.UpdatedAt = now

	return makeUserResponse(current), nil
}

func (s *authService) DeleteUser(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	if _, err := repo.Users.GetByID(ctx, id); err != nil {
		return err
	}

	if err := repo.Users.DeleteUser(ctx, id); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return auth.ErrDeleteUser
	}

	return nil
}

func (s *authService) UpdatePassword(ctx context.Context, actor entity.UserLoginData, id string, req auth.UpdatePasswordRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	user, err := repo.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Admins may reset other users without knowing the current password.
	if !(actor.IsAdmin() && actor.ID != id) {
		if err := s.bcryptUtils.ComparePassword(user.Password, req.CurrentPassword); err != nil {
			return auth.ErrCurrentPasswordWrong
		}
		if req.NewPassword == req.CurrentPassword {
			return auth.ErrPasswordSame
		}
	}

	hashedPassword, err := s.bcryptUtils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return err
	}

	if err := repo.Users.UpdatePassword(ctx, id, hashedPassword); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return auth.ErrUpdateUser
	}

	return nil
}
