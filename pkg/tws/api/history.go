package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// QueryHistories lists past filter executions, newest first.
func (c *Client) QueryHistories(ctx context.Context, limit int) ([]QueryHistory, error) {
	v := url.Values{}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var out []QueryHistory
	if err := c.get(ctx, "/api/history", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteQueryHistory removes one history entry.
func (c *Client) DeleteQueryHistory(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/history/%d", id), nil, nil)
}

// Favorites lists saved filter condition sets.
func (c *Client) Favorites(ctx context.Context) ([]Favorite, error) {
	var out []Favorite
	if err := c.get(ctx, "/api/favorites", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFavorite saves a filter condition set.
func (c *Client) CreateFavorite(ctx context.Context, req FavoriteCreate) (*Favorite, error) {
	var out Favorite
	if err := c.sendEnveloped(ctx, http.MethodPost, "/api/favorites", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFavorite removes a saved condition set.
func (c *Client) DeleteFavorite(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", id), nil, nil)
}
