package apiclient

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/entity"
)

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":0,"data":[],"pagination":{}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("token-123"))
	_, err := c.ListBlogs(context.Background(), BlogListQuery{})

	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)
}

func TestClient_QueryEncoding(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"count":0,"data":[],"pagination":{}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("t"))
	_, err := c.ListAdminBlogs(context.Background(), BlogListQuery{
		Page:   2,
		Limit:  10,
		Status: string(entity.BlogStatusPending),
	})

	require.NoError(t, err)
	assert.Equal(t, "limit=10&page=2&status=pending", gotQuery)
}

func TestClient_UnauthorizedFiresHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	hookFired := false
	c := New(srv.URL, StaticToken("expired"), WithUnauthorizedHook(func() { hookFired = true }))

	_, err := c.GetBlog(context.Background(), "b1")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, hookFired)
}

func TestClient_DecodesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"Blog already moderated"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("t"))
	_, err := c.ApproveBlog(context.Background(), "b1")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusConflict, statusErr.StatusCode)
	assert.Equal(t, "Blog already moderated", statusErr.Message)
}

// The server caps page size at 2 here, so the full catalogue only comes back
// when the client walks every page.
func TestClient_ListSubscriptionsWalksAllPages(t *testing.T) {
	plans := []string{"p1", "p2", "p3"}
	var gotQueries []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQueries = append(gotQueries, r.URL.RawQuery)

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}

		const pageSize = 2
		start := (page - 1) * pageSize
		end := start + pageSize
		if end > len(plans) {
			end = len(plans)
		}

		items := make([]string, 0, pageSize)
		for _, id := range plans[start:end] {
			items = append(items, `{"id":"`+id+`","name":"Plan `+id+`"}`)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":` + strconv.Itoa(len(items)) +
			`,"data":[` + strings.Join(items, ",") +
			`],"pagination":{"total":3,"page":` + strconv.Itoa(page) +
			`,"limit":2,"pages":2}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("t"))
	res, err := c.ListSubscriptions(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Data, 3)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, "p1", res.Data[0].ID)
	assert.Equal(t, "p2", res.Data[1].ID)
	assert.Equal(t, "p3", res.Data[2].ID)

	require.Len(t, gotQueries, 2)
	assert.Equal(t, "limit=100&page=1", gotQueries[0])
	assert.Equal(t, "limit=100&page=2", gotQueries[1])
}

func TestClient_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("t"))
	assert.NoError(t, c.DeleteBlog(context.Background(), "b1"))
}
