package api

import (
	"context"
	"fmt"
	"net/http"
)

// Watchlists lists all watchlists with their items.
func (c *Client) Watchlists(ctx context.Context) ([]Watchlist, error) {
	var out []Watchlist
	if err := c.get(ctx, "/api/watchlist", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateWatchlist makes a new empty watchlist.
func (c *Client) CreateWatchlist(ctx context.Context, req WatchlistCreate) (*Watchlist, error) {
	var out Watchlist
	if err := c.sendEnveloped(ctx, http.MethodPost, "/api/watchlist", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWatchlist removes a watchlist and its items.
func (c *Client) DeleteWatchlist(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/watchlist/%d", id), nil, nil)
}

// AddWatchlistItem adds a symbol to a watchlist.
func (c *Client) AddWatchlistItem(ctx context.Context, watchlistID int, req WatchlistItemCreate) (*WatchlistItem, error) {
	var out WatchlistItem
	path := fmt.Sprintf("/api/watchlist/%d/items", watchlistID)
	if err := c.sendEnveloped(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWatchlistItem patches a watchlist item.
func (c *Client) UpdateWatchlistItem(ctx context.Context, itemID int, req WatchlistItemUpdate) (*WatchlistItem, error) {
	var out WatchlistItem
	path := fmt.Sprintf("/api/watchlist/items/%d", itemID)
	if err := c.sendEnveloped(ctx, http.MethodPut, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWatchlistItem removes one item from its watchlist.
func (c *Client) DeleteWatchlistItem(ctx context.Context, itemID int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/watchlist/items/%d", itemID), nil, nil)
}
