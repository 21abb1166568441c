package apiclient

import (
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/blog"
)

// BlogListQuery mirrors the list endpoint's query strings. Zero values are
// omitted from the request.
type BlogListQuery struct {
	Page   int
	Limit  int
	Status string
	Author string
	Search string
}

func (q BlogListQuery) values() url.Values {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	if q.Author != "" {
		values.Set("author", q.Author)
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	return values
}

func (c *Client) ListBlogs(ctx context.Context, query BlogListQuery) (*blog.BlogListResponse, error) {
	var res blog.BlogListResponse
	if err := c.do(ctx, http.MethodGet, "/blogs", query.values(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListOwnBlogs(ctx context.Context, query BlogListQuery) (*blog.BlogListResponse, error) {
	var res blog.BlogListResponse
	if err := c.do(ctx, http.MethodGet, "/users/blogs", query.values(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListAdminBlogs(ctx context.Context, query BlogListQuery) (*blog.BlogListResponse, error) {
	var res blog.BlogListResponse
	if err := c.do(ctx, http.MethodGet, "/admin/blogs", query.values(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetBlog(ctx context.Context, id string) (*blog.BlogResponse, error) {
	var res blog.BlogResponse
	if err := c.do(ctx, http.MethodGet, "/blogs/"+url.PathEscape(id), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateBlog(ctx context.Context, req blog.CreateBlogRequest) (*blog.BlogResponse, error) {
	var res blog.BlogResponse
	if err := c.do(ctx, http.MethodPost, "/blogs", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) UpdateBlog(ctx context.Context, id string, req blog.UpdateBlogRequest) (*blog.BlogResponse, error) {
	var res blog.BlogResponse
	if err := c.do(ctx, http.MethodPut, "/blogs/"+url.PathEscape(id), nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteBlog(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/blogs/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ApproveBlog(ctx context.Context, id string) (*blog.BlogResponse, error) {
	var res blog.BlogResponse
	if err := c.do(ctx, http.MethodPut, "/admin/blogs/"+url.PathEscape(id)+"/approve", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) RejectBlog(ctx context.Context, id string) (*blog.BlogResponse, error) {
	var res blog.BlogResponse
	if err := c.do(ctx, http.MethodPut, "/admin/blogs/"+url.PathEscape(id)+"/reject", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) LikeBlog(ctx context.Context, id string) (*blog.BlogResponse, error) {
	var res blog.BlogResponse
	if err := c.do(ctx, http.MethodPost, "/blogs/"+url.PathEscape(id)+"/like", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DislikeBlog(ctx context.Context, id string) (*blog.BlogResponse, error) {
	var res blog.BlogResponse
	if err := c.do(ctx, http.MethodPost, "/blogs/"+url.PathEscape(id)+"/dislike", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetBlogStats(ctx context.Context) (*blog.BlogStatsResponse, error) {
	var res blog.BlogStatsResponse
	if err := c.do(ctx, http.MethodGet, "/admin/blogs/stats", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
