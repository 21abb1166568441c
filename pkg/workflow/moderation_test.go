package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/blog"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	"github.com/salman-gourmet/bookmyagents/pkg/apiclient"
)

type fakeModerationAPI struct {
	listFn    func(apiclient.BlogListQuery) (*blog.BlogListResponse, error)
	approveFn func(string) (*blog.BlogResponse, error)
	rejectFn  func(string) (*blog.BlogResponse, error)
	deleteFn  func(string) error
	likeFn    func(string) (*blog.BlogResponse, error)
	dislikeFn func(string) (*blog.BlogResponse, error)
}

func (f *fakeModerationAPI) ListAdminBlogs(_ context.Context, q apiclient.BlogListQuery) (*blog.BlogListResponse, error) {
	return f.listFn(q)
}

func (f *fakeModerationAPI) ListOwnBlogs(_ context.Context, q apiclient.BlogListQuery) (*blog.BlogListResponse, error) {
	return f.listFn(q)
}

func (f *fakeModerationAPI) GetBlog(_ context.Context, id string) (*blog.BlogResponse, error) {
	return &blog.BlogResponse{ID: id}, nil
}

func (f *fakeModerationAPI) ApproveBlog(_ context.Context, id string) (*blog.BlogResponse, error) {
	return f.approveFn(id)
}

func (f *fakeModerationAPI) RejectBlog(_ context.Context, id string) (*blog.BlogResponse, error) {
	return f.rejectFn(id)
}

func (f *fakeModerationAPI) DeleteBlog(_ context.Context, id string) error {
	return f.deleteFn(id)
}

func (f *fakeModerationAPI) LikeBlog(_ context.Context, id string) (*blog.BlogResponse, error) {
	return f.likeFn(id)
}

func (f *fakeModerationAPI) DislikeBlog(_ context.Context, id string) (*blog.BlogResponse, error) {
	return f.dislikeFn(id)
}

func emptyList(apiclient.BlogListQuery) (*blog.BlogListResponse, error) {
	return &blog.BlogListResponse{Data: []blog.BlogResponse{}}, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(nopWriter{})
	return log
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestModeration_ApproveSuccess(t *testing.T) {
	api := &fakeModerationAPI{
		listFn: emptyList,
		approveFn: func(id string) (*blog.BlogResponse, error) {
			return &blog.BlogResponse{ID: id, Status: entity.BlogStatusApproved}, nil
		},
	}

	now := time.Now()
	m := NewModeration(testLogger(), api, "user-1", true, WithClock(func() time.Time { return now }))
	m.ShowDetail(&blog.BlogResponse{ID: "b1", Status: entity.BlogStatusPending})

	require.NoError(t, m.Approve(context.Background(), "b1"))

	assert.Equal(t, ViewList, m.View().Kind())

	notice := m.Notice()
	require.NotNil(t, notice)
	assert.Equal(t, NoticeSuccess, notice.Level)

	// The notice expires once the auto-dismiss deadline passes.
	now = now.Add(noticeDismissAfter + time.Second)
	assert.Nil(t, m.Notice())
}

func TestModeration_ApproveFailureShowsError(t *testing.T) {
	api := &fakeModerationAPI{
		listFn: emptyList,
		approveFn: func(string) (*blog.BlogResponse, error) {
			return nil, errors.New("boom")
		},
	}

	m := NewModeration(testLogger(), api, "user-1", true)
	m.ShowDetail(&blog.BlogResponse{ID: "b1"})

	assert.Error(t, m.Approve(context.Background(), "b1"))

	// The view does not navigate and the failure is visible.
	assert.Equal(t, ViewDetail, m.View().Kind())
	notice := m.Notice()
	require.NotNil(t, notice)
	assert.Equal(t, NoticeError, notice.Level)
}

func TestModeration_RefreshFailureKeepsPriorList(t *testing.T) {
	healthy := true
	api := &fakeModerationAPI{
		listFn: func(apiclient.BlogListQuery) (*blog.BlogListResponse, error) {
			if !healthy {
				return nil, errors.New("unreachable")
			}
			return &blog.BlogListResponse{Count: 2, Data: []blog.BlogResponse{{ID: "b1"}, {ID: "b2"}}}, nil
		},
	}

	m := NewModeration(testLogger(), api, "user-1", true)
	require.NoError(t, m.Refresh(context.Background(), apiclient.BlogListQuery{}))
	require.Equal(t, 2, m.Blogs().Count)

	healthy = false
	assert.Error(t, m.Refresh(context.Background(), apiclient.BlogListQuery{}))
	assert.Equal(t, 2, m.Blogs().Count)
}

func TestModeration_EditOnlyWhilePending(t *testing.T) {
	m := NewModeration(testLogger(), &fakeModerationAPI{}, "user-1", false)

	assert.True(t, m.ShowEdit(&blog.BlogResponse{ID: "b1", Status: entity.BlogStatusPending}))
	assert.Equal(t, ViewEdit, m.View().Kind())

	m.ShowList()
	assert.False(t, m.ShowEdit(&blog.BlogResponse{ID: "b2", Status: entity.BlogStatusApproved}))
	assert.Equal(t, ViewList, m.View().Kind())
}

func TestModeration_DeleteGuardAndConfirmation(t *testing.T) {
	deleted := ""
	api := &fakeModerationAPI{
		listFn: emptyList,
		deleteFn: func(id string) error {
			deleted = id
			return nil
		},
	}

	m := NewModeration(testLogger(), api, "user-1", false)

	// Strict policy: a pending blog is not deletable by its author.
	assert.False(t, m.RequestDelete(&blog.BlogResponse{ID: "b1", Status: entity.BlogStatusPending}))
	assert.False(t, m.DeletePending())

	require.True(t, m.RequestDelete(&blog.BlogResponse{ID: "b2", Status: entity.BlogStatusRejected}))
	require.True(t, m.DeletePending())

	// Nothing is deleted until the confirmation lands.
	assert.Empty(t, deleted)
	require.NoError(t, m.ConfirmDelete(context.Background()))
	assert.Equal(t, "b2", deleted)
	assert.False(t, m.DeletePending())
}

func TestModeration_DeleteDismissal(t *testing.T) {
	called := false
	api := &fakeModerationAPI{
		listFn:   emptyList,
		deleteFn: func(string) error { called = true; return nil },
	}

	m := NewModeration(testLogger(), api, "user-1", true)
	require.True(t, m.RequestDelete(&blog.BlogResponse{ID: "b1", Status: entity.BlogStatusPending}))

	m.DismissDelete()
	require.NoError(t, m.ConfirmDelete(context.Background()))
	assert.False(t, called)
}

func TestModeration_AdminDeleteBypassesPolicy(t *testing.T) {
	m := NewModeration(testLogger(), &fakeModerationAPI{}, "admin-1", true)

	assert.True(t, m.RequestDelete(&blog.BlogResponse{ID: "b1", Status: entity.BlogStatusApproved}))
}

func TestModeration_LikeToggle(t *testing.T) {
	// Server mirrors the toggle: membership flips on each call.
	likes := map[string]bool{}
	dislikes := map[string]bool{}
	response := func(id string) *blog.BlogResponse {
		res := &blog.BlogResponse{ID: id, Likes: []string{}, Dislikes: []string{}}
		if likes[id] {
			res.Likes = append(res.Likes, "user-1")
		}
		if dislikes[id] {
			res.Dislikes = append(res.Dislikes, "user-1")
		}
		return res
	}

	api := &fakeModerationAPI{
		listFn: emptyList,
		likeFn: func(id string) (*blog.BlogResponse, error) {
			likes[id] = !likes[id]
			if likes[id] {
				dislikes[id] = false
			}
			return response(id), nil
		},
		dislikeFn: func(id string) (*blog.BlogResponse, error) {
			dislikes[id] = !dislikes[id]
			if dislikes[id] {
				likes[id] = false
			}
			return response(id), nil
		},
	}

	m := NewModeration(testLogger(), api, "user-1", false)
	ctx := context.Background()

	require.NoError(t, m.Like(ctx, "b1"))
	assert.True(t, m.Liked("b1"))
	assert.False(t, m.Disliked("b1"))

	// Disliking flips the mutually exclusive membership.
	require.NoError(t, m.Dislike(ctx, "b1"))
	assert.False(t, m.Liked("b1"))
	assert.True(t, m.Disliked("b1"))

	// Double-toggle returns to the original membership.
	require.NoError(t, m.Dislike(ctx, "b1"))
	assert.False(t, m.Liked("b1"))
	assert.False(t, m.Disliked("b1"))
}

func TestModeration_LikeFailureReverts(t *testing.T) {
	api := &fakeModerationAPI{
		listFn: emptyList,
		likeFn: func(string) (*blog.BlogResponse, error) {
			return nil, errors.New("boom")
		},
		dislikeFn: func(id string) (*blog.BlogResponse, error) {
			return &blog.BlogResponse{ID: id, Dislikes: []string{"user-1"}}, nil
		},
	}

	m := NewModeration(testLogger(), api, "user-1", false)
	ctx := context.Background()

	require.NoError(t, m.Dislike(ctx, "b1"))
	require.True(t, m.Disliked("b1"))

	// A failed like restores the prior dislike instead of desyncing.
	assert.Error(t, m.Like(ctx, "b1"))
	assert.False(t, m.Liked("b1"))
	assert.True(t, m.Disliked("b1"))
}
