package blog

import (
	"time"

	"github.com/salman-gourmet/bookmyagents/internal/entity"
	"github.com/salman-gourmet/bookmyagents/pkg/pagination"
)

type CreateBlogRequest struct {
	Title      string `json:"title" validate:"required,min=3,max=255"`
	Content    string `json:"content" validate:"required,min=10"`
	CoverImage string `json:"coverImage" validate:"omitempty,url"`
}

type UpdateBlogRequest struct {
	Title      string `json:"title" validate:"omitempty,min=3,max=255"`
	Content    string `json:"content" validate:"omitempty,min=10"`
	CoverImage string `json:"coverImage" validate:"omitempty"`
}

// Filters is bound from the list query strings. Author is only honored on the
// admin listing; the self listing always pins it to the caller.
type Filters struct {
	Page   int
	Limit  int
	Status string
	Author string
	Search string
}

// ListQuery is the repository-level shape of Filters after the service has
// resolved scope and pagination.
type ListQuery struct {
	Status        string
	Author        string
	Search        string
	PublishedOnly bool
	Limit         int
	Offset        int
}

type BlogResponse struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	CoverImage  string            `json:"coverImage,omitempty"`
	Author      string            `json:"author"`
	Status      entity.BlogStatus `json:"status"`
	StatusBadge string            `json:"statusBadge"`
	IsPublished bool              `json:"isPublished"`
	PublishedAt *time.Time        `json:"publishedAt,omitempty"`
	ApprovedBy  *string           `json:"approvedBy,omitempty"`
	ApprovedAt  *time.Time        `json:"approvedAt,omitempty"`
	Likes       []string          `json:"likes"`
	Dislikes    []string          `json:"dislikes"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type BlogListResponse struct {
	Count        int                      `json:"count"`
	Data         []BlogResponse           `json:"data"`
	StatusCounts *entity.BlogStatusCounts `json:"statusCounts,omitempty"`
	Pagination   pagination.Metadata      `json:"pagination"`
}

type MonthCount struct {
	Month string `db:"month" json:"month"`
	Count int    `db:"count" json:"count"`
}

type BlogStatsResponse struct {
	TotalBlogs     int          `json:"totalBlogs"`
	PendingBlogs   int          `json:"pendingBlogs"`
	ApprovedBlogs  int          `json:"approvedBlogs"`
	RejectedBlogs  int          `json:"rejectedBlogs"`
	PublishedBlogs int          `json:"publishedBlogs"`
	BlogsByMonth   []MonthCount `json:"blogsByMonth"`
}

type UploadImageResponse struct {
	URL string `json:"url"`
}
