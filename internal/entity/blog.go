package entity

import "time"

type BlogStatus string

const (
	BlogStatusPending  BlogStatus = "pending"
	BlogStatusApproved BlogStatus = "approved"
	BlogStatusRejected BlogStatus = "rejected"
)

func (s BlogStatus) Valid() bool {
	switch s {
	case BlogStatusPending, BlogStatusApproved, BlogStatusRejected:
		return true
	}
	return false
}

// CanEdit reports whether the author may still change the blog in place.
// Moderation in either direction freezes the content: a rejected blog must be
// deleted and resubmitted, not edited.
func (s BlogStatus) CanEdit() bool {
	return s != BlogStatusApproved && s != BlogStatusRejected
}

// Badge maps a status onto the display classification the dashboards use.
func (s BlogStatus) Badge() string {
	switch s {
	case BlogStatusPending:
		return "warning"
	case BlogStatusApproved:
		return "success"
	case BlogStatusRejected:
		return "danger"
	default:
		return "secondary"
	}
}

// DeletePolicy gates author self-deletion of a blog. The zero value is the
// strict policy: only rejected blogs may be removed by their author. Admin
// deletion bypasses the policy entirely.
type DeletePolicy struct {
	AllowPendingDelete bool
}

func (p DeletePolicy) CanDelete(s BlogStatus) bool {
	if s == BlogStatusRejected {
		return true
	}
	return p.AllowPendingDelete && s == BlogStatusPending
}

type Blog struct {
	ID          string     `db:"id"`
	Slug        string     `db:"slug"`
	Title       string     `db:"title"`
	Content     string     `db:"content"`
	CoverImage  string     `db:"cover_image"`
	Author      string     `db:"author"`
	Status      BlogStatus `db:"status"`
	IsPublished bool       `db:"is_published"`
	PublishedAt *time.Time `db:"published_at"`
	ApprovedBy  *string    `db:"approved_by"`
	ApprovedAt  *time.Time `db:"approved_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`

	// Reaction membership, loaded separately from blog_reactions.
	Likes    []string `db:"-"`
	Dislikes []string `db:"-"`
}

type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Opposite returns the mutually exclusive counterpart of a reaction.
func (k ReactionKind) Opposite() ReactionKind {
	if k == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}

// BlogStatusCounts accompanies admin blog listings.
type BlogStatusCounts struct {
	Pending  int `db:"pending" json:"pending"`
	Approved int `db:"approved" json:"approved"`
	Rejected int `db:"rejected" json:"rejected"`
}
