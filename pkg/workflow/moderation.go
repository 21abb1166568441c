// Package workflow holds the client-side state machines behind the blog
// moderation dashboard and the subscription assignment dialog. Each workflow
// instance owns its own state and is driven from a single goroutine, matching
// the event-loop model of the UI it backs.
package workflow

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/blog"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	"github.com/salman-gourmet/bookmyagents/pkg/apiclient"
)

// ModerationAPI is the slice of the REST client the moderation workflow
// consumes. *apiclient.Client satisfies it.
type ModerationAPI interface {
	ListAdminBlogs(ctx context.Context, query apiclient.BlogListQuery) (*blog.BlogListResponse, error)
	ListOwnBlogs(ctx context.Context, query apiclient.BlogListQuery) (*blog.BlogListResponse, error)
	GetBlog(ctx context.Context, id string) (*blog.BlogResponse, error)
	ApproveBlog(ctx context.Context, id string) (*blog.BlogResponse, error)
	RejectBlog(ctx context.Context, id string) (*blog.BlogResponse, error)
	DeleteBlog(ctx context.Context, id string) error
	LikeBlog(ctx context.Context, id string) (*blog.BlogResponse, error)
	DislikeBlog(ctx context.Context, id string) (*blog.BlogResponse, error)
}

type ViewKind int

const (
	ViewList ViewKind = iota
	ViewDetail
	ViewCreate
	ViewEdit
)

// ViewState pairs a view kind with the blog it operates on. The constructors
// are the only way to build one, so a detail or edit view always carries a
// blog and the list and create views never do.
type ViewState struct {
	kind ViewKind
	blog *blog.BlogResponse
}

func ListView() ViewState { return ViewState{kind: ViewList} }

func CreateView() ViewState { return ViewState{kind: ViewCreate} }

func DetailView(b *blog.BlogResponse) ViewState { return ViewState{kind: ViewDetail, blog: b} }

func EditView(b *blog.BlogResponse) ViewState { return ViewState{kind: ViewEdit, blog: b} }

func (v ViewState) Kind() ViewKind { return v.kind }

func (v ViewState) Blog() *blog.BlogResponse { return v.blog }

type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeError
)

// Notice is a transient banner. Success notices expire at their deadline;
// error notices stay until replaced or the view changes.
type Notice struct {
	Level    NoticeLevel
	Message  string
	deadline time.Time
}

const noticeDismissAfter = 4 * time.Second

// Moderation drives the blog list, view navigation, moderation actions, and
// the optimistic reaction toggle. Not safe for concurrent use.
type Moderation struct {
	log    *logrus.Logger
	api    ModerationAPI
	userID string
	admin  bool
	policy entity.DeletePolicy
	now    func() time.Time

	view          ViewState
	list          *blog.BlogListResponse
	filters       apiclient.BlogListQuery
	notice        *Notice
	pendingDelete string

	liked    map[string]bool
	disliked map[string]bool
}

type ModerationOption func(*Moderation)

// WithClock replaces the wall clock used for notice deadlines.
func WithClock(now func() time.Time) ModerationOption {
	return func(m *Moderation) {
		m.now = now
	}
}

func WithDeletePolicy(policy entity.DeletePolicy) ModerationOption {
	return func(m *Moderation) {
		m.policy = policy
	}
}

func NewModeration(log *logrus.Logger, api ModerationAPI, userID string, admin bool, options ...ModerationOption) *Moderation {
	m := &Moderation{
		log:      log,
		api:      api,
		userID:   userID,
		admin:    admin,
		now:      time.Now,
		view:     ListView(),
		liked:    map[string]bool{},
		disliked: map[string]bool{},
	}

	for _, option := range options {
		option(m)
	}

	return m
}

func (m *Moderation) View() ViewState { return m.view }

func (m *Moderation) Blogs() *blog.BlogListResponse { return m.list }

// Notice returns the current banner, or nil once a success notice has passed
// its auto-dismiss deadline.
func (m *Moderation) Notice() *Notice {
	if m.notice == nil {
		return nil
	}
	if m.notice.Level == NoticeSuccess && !m.now().Before(m.notice.deadline) {
		m.notice = nil
		return nil
	}
	return m.notice
}

func (m *Moderation) setNotice(level NoticeLevel, message string) {
	m.notice = &Notice{
		Level:    level,
		Message:  message,
		deadline: m.now().Add(noticeDismissAfter),
	}
}

// Refresh reloads the list with the given filters. On failure the previous
// list stays visible.
func (m *Moderation) Refresh(ctx context.Context, filters apiclient.BlogListQuery) error {
	res, err := m.fetch(ctx, filters)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to refresh blog list")
		return err
	}

	m.filters = filters
	m.list = res
	return nil
}

func (m *Moderation) fetch(ctx context.Context, filters apiclient.BlogListQuery) (*blog.BlogListResponse, error) {
	if m.admin {
		return m.api.ListAdminBlogs(ctx, filters)
	}
	return m.api.ListOwnBlogs(ctx, filters)
}

func (m *Moderation) ShowDetail(b *blog.BlogResponse) {
	m.view = DetailView(b)
	m.notice = nil
}

func (m *Moderation) ShowCreate() {
	m.view = CreateView()
	m.notice = nil
}

// ShowEdit opens the editor. Moderated blogs are frozen, so the transition is
// refused once the status leaves pending.
func (m *Moderation) ShowEdit(b *blog.BlogResponse) bool {
	if !b.Status.CanEdit() {
		return false
	}
	m.view = EditView(b)
	m.notice = nil
	return true
}

func (m *Moderation) ShowList() {
	m.view = ListView()
}

// Approve moves a pending blog to approved. Success returns to the list with
// a transient notice; failure surfaces an error notice instead of passing
// silently.
func (m *Moderation) Approve(ctx context.Context, blogID string) error {
	return m.moderate(ctx, blogID, "approved", m.api.ApproveBlog)
}

func (m *Moderation) Reject(ctx context.Context, blogID string) error {
	return m.moderate(ctx, blogID, "rejected", m.api.RejectBlog)
}

func (m *Moderation) moderate(ctx context.Context, blogID, verb string, call func(context.Context, string) (*blog.BlogResponse, error)) error {
	if _, err := call(ctx, blogID); err != nil {
		m.log.WithFields(logrus.Fields{
			"blog_id": blogID,
			"error":   err.Error(),
		}).Error("Moderation action failed")
		m.setNotice(NoticeError, "Could not update the blog, please try again")
		return err
	}

	if err := m.Refresh(ctx, m.filters); err != nil {
		m.log.WithFields(logrus.Fields{
			"blog_id": blogID,
			"error":   err.Error(),
		}).Warn("List refresh after moderation failed")
	}

	m.view = ListView()
	m.setNotice(NoticeSuccess, "Blog "+verb)
	return nil
}

// RequestDelete arms the confirmation step. Agents are gated by the delete
// policy; admins are not.
func (m *Moderation) RequestDelete(b *blog.BlogResponse) bool {
	if !m.admin && !m.policy.CanDelete(b.Status) {
		return false
	}
	m.pendingDelete = b.ID
	return true
}

func (m *Moderation) DeletePending() bool { return m.pendingDelete != "" }

func (m *Moderation) DismissDelete() {
	m.pendingDelete = ""
}

// ConfirmDelete performs the armed deletion.
func (m *Moderation) ConfirmDelete(ctx context.Context) error {
	if m.pendingDelete == "" {
		return nil
	}
	blogID := m.pendingDelete
	m.pendingDelete = ""

	if err := m.api.DeleteBlog(ctx, blogID); err != nil {
		m.log.WithFields(logrus.Fields{
			"blog_id": blogID,
			"error":   err.Error(),
		}).Error("Failed to delete blog")
		m.setNotice(NoticeError, "Could not delete the blog")
		return err
	}

	if err := m.Refresh(ctx, m.filters); err != nil {
		m.log.WithFields(logrus.Fields{
			"blog_id": blogID,
			"error":   err.Error(),
		}).Warn("List refresh after delete failed")
	}

	m.setNotice(NoticeSuccess, "Blog deleted")
	return nil
}

func (m *Moderation) Liked(blogID string) bool    { return m.liked[blogID] }
func (m *Moderation) Disliked(blogID string) bool { return m.disliked[blogID] }

// Like toggles the local like projection, mutually exclusive with dislike,
// then reconciles against the server's response. A failed call reverts the
// local toggle instead of leaving it to desync.
func (m *Moderation) Like(ctx context.Context, blogID string) error {
	return m.react(ctx, blogID, m.liked, m.disliked, m.api.LikeBlog)
}

func (m *Moderation) Dislike(ctx context.Context, blogID string) error {
	return m.react(ctx, blogID, m.disliked, m.liked, m.api.DislikeBlog)
}

func (m *Moderation) react(ctx context.Context, blogID string, target, opposite map[string]bool, call func(context.Context, string) (*blog.BlogResponse, error)) error {
	wasTarget, wasOpposite := target[blogID], opposite[blogID]

	if wasTarget {
		delete(target, blogID)
	} else {
		target[blogID] = true
		delete(opposite, blogID)
	}

	res, err := call(ctx, blogID)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"blog_id": blogID,
			"error":   err.Error(),
		}).Error("Reaction failed, reverting local toggle")
		if wasTarget {
			target[blogID] = true
		} else {
			delete(target, blogID)
		}
		if wasOpposite {
			opposite[blogID] = true
		}
		return err
	}

	m.reconcile(blogID, res)
	return nil
}

// reconcile replaces the local projection with the server's membership.
func (m *Moderation) reconcile(blogID string, res *blog.BlogResponse) {
	delete(m.liked, blogID)
	delete(m.disliked, blogID)
	for _, userID := range res.Likes {
		if userID == m.userID {
			m.liked[blogID] = true
		}
	}
	for _, userID := range res.Dislikes {
		if userID == m.userID {
			m.disliked[blogID] = true
		}
	}
}
