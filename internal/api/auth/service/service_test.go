package authService

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/auth"
	authRepository "github.com/salman-gourmet/bookmyagents/internal/api/auth/repository"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
)

type fakeUserStore struct {
	users   map[string]entity.User
	commits int
}

func newFakeUserStore(users ...entity.User) *fakeUserStore {
	store := &fakeUserStore{users: map[string]entity.User{}}
	for _, user := range users {
		store.users[user.ID] = user
	}
	return store
}

func (s *fakeUserStore) NewClient(tx bool) (authRepository.Client, error) {
	return authRepository.Client{
		Users:    &fakeUsers{store: s},
		Commit:   func() error { s.commits++; return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeUsers struct {
	store *fakeUserStore
}

func (f *fakeUsers) CreateUser(_ context.Context, user entity.User) error {
	f.store.users[user.ID] = user
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (entity.User, error) {
	user, ok := f.store.users[id]
	if !ok {
		return entity.User{}, auth.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (entity.User, error) {
	for _, user := range f.store.users {
		if user.Email == email {
			return user, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

func (f *fakeUsers) ListUsers(_ context.Context, _ auth.UserFilters) ([]entity.User, int, error) {
	return nil, 0, nil
}

func (f *fakeUsers) GetStatistics(_ context.Context) (entity.UserStatistics, error) {
	return entity.UserStatistics{}, nil
}

// UpdateUser mirrors the SQL merge: empty strings leave the column alone.
func (f *fakeUsers) UpdateUser(_ context.Context, user entity.User) error {
	current, ok := f.store.users[user.ID]
	if !ok {
		return auth.ErrUserNotFound
	}
	for _, existing := range f.store.users {
		if user.Email != "" && existing.Email == user.Email && existing.ID != user.ID {
			return auth.ErrEmailAlreadyExists
		}
	}
	if user.FullName != "" {
		current.FullName = user.FullName
	}
	if user.Email != "" {
		current.Email = user.Email
	}
	if user.Role != "" {
		current.Role = user.Role
	}
	current.IsActive = user.IsActive
	current.UpdatedAt = user.UpdatedAt
	f.store.users[user.ID] = current
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id string, password string) error {
	user, ok := f.store.users[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	user.Password = password
	f.store.users[id] = user
	return nil
}

func (f *fakeUsers) DeleteUser(_ context.Context, id string) error {
	delete(f.store.users, id)
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func agentUser(id, email string) entity.User {
	return entity.User{
		ID:        id,
		FullName:  "Some Agent",
		Email:     email,
		Role:      entity.RoleAgent,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestUpdateProfile_ChangesOwnNameAndEmail(t *testing.T) {
	store := newFakeUserStore(agentUser("u1", "old@example.com"))
	svc := New(quietLogger(), store, nil, nil, nil)

	res, err := svc.UpdateProfile(context.Background(), "u1", auth.UpdateProfileRequest{
		FullName: "New Name",
		Email:    "new@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", res.FullName)
	assert.Equal(t, "new@example.com", res.Email)
	assert.Equal(t, 1, store.commits)

	saved := store.users["u1"]
	assert.Equal(t, "New Name", saved.FullName)
	assert.Equal(t, "new@example.com", saved.Email)
}

func TestUpdateProfile_PartialUpdateKeepsOtherFields(t *testing.T) {
	store := newFakeUserStore(agentUser("u1", "old@example.com"))
	svc := New(quietLogger(), store, nil, nil, nil)

	res, err := svc.UpdateProfile(context.Background(), "u1", auth.UpdateProfileRequest{
		FullName: "New Name",
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", res.FullName)
	assert.Equal(t, "old@example.com", res.Email)
}

func TestUpdateProfile_CannotTouchRoleOrActive(t *testing.T) {
	store := newFakeUserStore(agentUser("u1", "agent@example.com"))
	svc := New(quietLogger(), store, nil, nil, nil)

	_, err := svc.UpdateProfile(context.Background(), "u1", auth.UpdateProfileRequest{
		FullName: "Still An Agent",
	})
	require.NoError(t, err)

	saved := store.users["u1"]
	assert.Equal(t, entity.RoleAgent, saved.Role)
	assert.True(t, saved.IsActive)
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	store := newFakeUserStore(
		agentUser("u1", "one@example.com"),
		agentUser("u2", "two@example.com"),
	)
	svc := New(quietLogger(), store, nil, nil, nil)

	_, err := svc.UpdateProfile(context.Background(), "u1", auth.UpdateProfileRequest{
		Email: "two@example.com",
	})
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
	assert.Equal(t, "one@example.com", store.users["u1"].Email)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	store := newFakeUserStore()
	svc := New(quietLogger(), store, nil, nil, nil)

	_, err := svc.UpdateProfile(context.Background(), "ghost", auth.UpdateProfileRequest{FullName: "Nobody"})
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}
