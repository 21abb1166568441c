package blogService

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/blog"
	blogRepository "github.com/salman-gourmet/bookmyagents/internal/api/blog/repository"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	"github.com/salman-gourmet/bookmyagents/pkg/redis"
)

// fakeStore backs the repository fakes with in-memory state so a test can
// run a full mutation through the service without a database.
type fakeStore struct {
	blogs     map[string]entity.Blog
	reactions map[string]map[string]entity.ReactionKind

	commits   int
	rollbacks int
}

func newFakeStore(blogs ...entity.Blog) *fakeStore {
	store := &fakeStore{
		blogs:     map[string]entity.Blog{},
		reactions: map[string]map[string]entity.ReactionKind{},
	}
	for _, b := range blogs {
		store.blogs[b.ID] = b
	}
	return store
}

func (s *fakeStore) NewClient(tx bool) (blogRepository.Client, error) {
	return blogRepository.Client{
		Blogs:     &fakeBlogs{store: s},
		Reactions: &fakeReactions{store: s},
		Commit:    func() error { s.commits++; return nil },
		Rollback:  func() error { s.rollbacks++; return nil },
	}, nil
}

type fakeBlogs struct {
	store *fakeStore
}

func (f *fakeBlogs) CreateBlog(_ context.Context, b entity.Blog) error {
	f.store.blogs[b.ID] = b
	return nil
}

func (f *fakeBlogs) GetBlogByID(_ context.Context, id string) (entity.Blog, error) {
	b, ok := f.store.blogs[id]
	if !ok {
		return entity.Blog{}, blog.ErrBlogNotFound
	}
	return b, nil
}

func (f *fakeBlogs) ListBlogs(_ context.Context, _ blog.ListQuery) ([]entity.Blog, int, error) {
	return nil, 0, nil
}

func (f *fakeBlogs) StatusCounts(_ context.Context, _ string) (entity.BlogStatusCounts, error) {
	return entity.BlogStatusCounts{}, nil
}

func (f *fakeBlogs) UpdateBlog(_ context.Context, b entity.Blog) error {
	f.store.blogs[b.ID] = b
	return nil
}

func (f *fakeBlogs) UpdateModeration(_ context.Context, b entity.Blog) error {
	f.store.blogs[b.ID] = b
	return nil
}

func (f *fakeBlogs) DeleteBlog(_ context.Context, id string) error {
	if _, ok := f.store.blogs[id]; !ok {
		return blog.ErrBlogNotFound
	}
	delete(f.store.blogs, id)
	return nil
}

func (f *fakeBlogs) CountByMonth(_ context.Context) ([]blog.MonthCount, error) {
	return nil, nil
}

func (f *fakeBlogs) CountPublished(_ context.Context) (int, error) {
	return 0, nil
}

type fakeReactions struct {
	store *fakeStore
}

func (f *fakeReactions) GetReactions(_ context.Context, blogID string) ([]string, []string, error) {
	var likes, dislikes []string
	for userID, kind := range f.store.reactions[blogID] {
		if kind == entity.ReactionLike {
			likes = append(likes, userID)
		} else {
			dislikes = append(dislikes, userID)
		}
	}
	return likes, dislikes, nil
}

func (f *fakeReactions) GetUserReaction(_ context.Context, blogID, userID string) (entity.ReactionKind, bool, error) {
	kind, ok := f.store.reactions[blogID][userID]
	return kind, ok, nil
}

func (f *fakeReactions) AddReaction(_ context.Context, blogID, userID string, kind entity.ReactionKind) error {
	if f.store.reactions[blogID] == nil {
		f.store.reactions[blogID] = map[string]entity.ReactionKind{}
	}
	f.store.reactions[blogID][userID] = kind
	return nil
}

func (f *fakeReactions) UpdateReaction(_ context.Context, blogID, userID string, kind entity.ReactionKind) error {
	f.store.reactions[blogID][userID] = kind
	return nil
}

func (f *fakeReactions) DeleteReaction(_ context.Context, blogID, userID string) error {
	delete(f.store.reactions[blogID], userID)
	return nil
}

type fakeRedis struct {
	deleted []string
}

func (f *fakeRedis) SetCache(_ context.Context, _ string, _ string, _ time.Duration) error {
	return nil
}

func (f *fakeRedis) GetCache(_ context.Context, _ string) (string, error) {
	return "", redis.ErrCacheMiss
}

func (f *fakeRedis) DeleteCache(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeRedis) RevokeToken(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

func (f *fakeRedis) IsTokenRevoked(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestService(store *fakeStore, cache *fakeRedis, policy entity.DeletePolicy) IBlogService {
	return New(quietLogger(), store, cache, nil, nil, policy)
}

func pendingBlog(id, author string) entity.Blog {
	return entity.Blog{
		ID:     id,
		Slug:   "some-post",
		Title:  "Some post",
		Author: author,
		Status: entity.BlogStatusPending,
	}
}

func publishedBlog(id, author string) entity.Blog {
	now := time.Now()
	return entity.Blog{
		ID:          id,
		Author:      author,
		Status:      entity.BlogStatusApproved,
		IsPublished: true,
		PublishedAt: &now,
	}
}

func TestApproveBlog_PublishesPendingBlog(t *testing.T) {
	store := newFakeStore(pendingBlog("b1", "agent-1"))
	cache := &fakeRedis{}
	svc := newTestService(store, cache, entity.DeletePolicy{})

	res, err := svc.ApproveBlog(context.Background(), "b1", "admin-1")
	require.NoError(t, err)

	assert.Equal(t, entity.BlogStatusApproved, res.Status)
	assert.True(t, res.IsPublished)
	require.NotNil(t, res.ApprovedBy)
	assert.Equal(t, "admin-1", *res.ApprovedBy)
	assert.NotNil(t, res.PublishedAt)
	assert.Equal(t, 1, store.commits)

	// The stats snapshot is invalidated after the verdict lands.
	assert.Contains(t, cache.deleted, "blog_stats")
}

func TestRejectBlog_Unpublishes(t *testing.T) {
	store := newFakeStore(pendingBlog("b1", "agent-1"))
	svc := newTestService(store, &fakeRedis{}, entity.DeletePolicy{})

	res, err := svc.RejectBlog(context.Background(), "b1", "admin-1")
	require.NoError(t, err)

	assert.Equal(t, entity.BlogStatusRejected, res.Status)
	assert.False(t, res.IsPublished)
	assert.Nil(t, res.PublishedAt)
	assert.Nil(t, res.ApprovedBy)
	assert.Nil(t, res.ApprovedAt)
}

func TestModeration_RefusesDecidedBlog(t *testing.T) {
	store := newFakeStore(pendingBlog("b1", "agent-1"))
	svc := newTestService(store, &fakeRedis{}, entity.DeletePolicy{})
	ctx := context.Background()

	_, err := svc.ApproveBlog(ctx, "b1", "admin-1")
	require.NoError(t, err)

	// A second verdict, either way, is a conflict.
	_, err = svc.ApproveBlog(ctx, "b1", "admin-1")
	assert.ErrorIs(t, err, blog.ErrAlreadyModerated)

	_, err = svc.RejectBlog(ctx, "b1", "admin-2")
	assert.ErrorIs(t, err, blog.ErrAlreadyModerated)
}

func TestDeleteBlog_PolicyGatesAuthor(t *testing.T) {
	store := newFakeStore(pendingBlog("b1", "agent-1"))
	svc := newTestService(store, &fakeRedis{}, entity.DeletePolicy{})
	agent := entity.UserLoginData{ID: "agent-1", Role: entity.RoleAgent}

	err := svc.DeleteBlog(context.Background(), "b1", agent)
	assert.ErrorIs(t, err, blog.ErrBlogNotDeletable)

	// Lenient policy admits pending deletes.
	svc = newTestService(store, &fakeRedis{}, entity.DeletePolicy{AllowPendingDelete: true})
	require.NoError(t, svc.DeleteBlog(context.Background(), "b1", agent))
	assert.NotContains(t, store.blogs, "b1")
}

func TestDeleteBlog_OwnershipEnforced(t *testing.T) {
	store := newFakeStore(pendingBlog("b1", "agent-1"))
	svc := newTestService(store, &fakeRedis{}, entity.DeletePolicy{AllowPendingDelete: true})

	other := entity.UserLoginData{ID: "agent-2", Role: entity.RoleAgent}
	err := svc.DeleteBlog(context.Background(), "b1", other)
	assert.ErrorIs(t, err, blog.ErrBlogNotOwned)

	// Admin deletion skips both ownership and policy.
	admin := entity.UserLoginData{ID: "admin-1", Role: entity.RoleAdmin}
	require.NoError(t, svc.DeleteBlog(context.Background(), "b1", admin))
}

func TestReact_ToggleLifecycle(t *testing.T) {
	store := newFakeStore(publishedBlog("b1", "agent-1"))
	svc := newTestService(store, &fakeRedis{}, entity.DeletePolicy{})
	ctx := context.Background()

	res, err := svc.React(ctx, "b1", "user-1", entity.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, res.Likes)
	assert.Empty(t, res.Dislikes)

	// Opposite reaction replaces the existing one.
	res, err = svc.React(ctx, "b1", "user-1", entity.ReactionDislike)
	require.NoError(t, err)
	assert.Empty(t, res.Likes)
	assert.Equal(t, []string{"user-1"}, res.Dislikes)

	// Repeating the same reaction removes it.
	res, err = svc.React(ctx, "b1", "user-1", entity.ReactionDislike)
	require.NoError(t, err)
	assert.Empty(t, res.Likes)
	assert.Empty(t, res.Dislikes)
}

func TestReact_RefusesUnpublishedBlog(t *testing.T) {
	store := newFakeStore(pendingBlog("b1", "agent-1"))
	svc := newTestService(store, &fakeRedis{}, entity.DeletePolicy{})

	_, err := svc.React(context.Background(), "b1", "user-1", entity.ReactionLike)
	assert.ErrorIs(t, err, blog.ErrBlogNotFound)
}
