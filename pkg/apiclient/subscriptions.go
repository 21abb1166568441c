package apiclient

import (
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/subscription"
)

// subscriptionPageSize is the server's maximum page size.
const subscriptionPageSize = 100

// ListSubscriptions fetches the whole plan catalogue, walking the server's
// pages so plans past the first page are not dropped.
func (c *Client) ListSubscriptions(ctx context.Context) (*subscription.SubscriptionListResponse, error) {
	var all subscription.SubscriptionListResponse

	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("limit", strconv.Itoa(subscriptionPageSize))

		var res subscription.SubscriptionListResponse
		if err := c.do(ctx, http.MethodGet, "/subscription", query, nil, &res); err != nil {
			return nil, err
		}

		all.Data = append(all.Data, res.Data...)
		all.Pagination = res.Pagination

		if len(res.Data) == 0 || page >= res.Pagination.Pages {
			break
		}
	}

	all.Count = len(all.Data)
	return &all, nil
}

func (c *Client) GetSubscription(ctx context.Context, id string) (*subscription.SubscriptionResponse, error) {
	var res subscription.SubscriptionResponse
	if err := c.do(ctx, http.MethodGet, "/subscription/"+url.PathEscape(id), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetUserSubscription(ctx context.Context, userID string) (*subscription.UserSubscriptionEnvelope, error) {
	var res subscription.UserSubscriptionEnvelope
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/subscription", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) AssignSubscription(ctx context.Context, userID, subscriptionID string) (*subscription.UserSubscriptionEnvelope, error) {
	req := subscription.AssignSubscriptionRequest{SubscriptionID: subscriptionID}

	var res subscription.UserSubscriptionEnvelope
	if err := c.do(ctx, http.MethodPost, "/users/"+url.PathEscape(userID)+"/subscription", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CancelSubscription(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(userID)+"/subscription", nil, nil, nil)
}
