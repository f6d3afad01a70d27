package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Strategy is a saved rule set: the screen request a user wants to run
// again, stored server side under a name, optionally with an alert
// push enabled.
type Strategy struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Rules        ScreenRequest `json:"rules_json"`
	AlertEnabled bool          `json:"alert_enabled"`
	CreatedAt    *string       `json:"created_at"`
	UpdatedAt    *string       `json:"updated_at"`
}

// StrategyCreate is the body for saving a strategy.
type StrategyCreate struct {
	Name            string        `json:"name"`
	Rules           ScreenRequest `json:"rules_json"`
	AlertEnabled    bool          `json:"alert_enabled"`
	LineNotifyToken *string       `json:"line_notify_token,omitempty"`
}

// StrategyUpdate is the partial-update body for a strategy.
type StrategyUpdate struct {
	Name            *string        `json:"name,omitempty"`
	Rules           *ScreenRequest `json:"rules_json,omitempty"`
	AlertEnabled    *bool          `json:"alert_enabled,omitempty"`
	LineNotifyToken *string        `json:"line_notify_token,omitempty"`
}

// Strategies lists saved strategies, most recently updated first. Like
// the screen endpoint, the v1 routes return their bodies directly.
func (c *Client) Strategies(ctx context.Context) ([]Strategy, error) {
	var out []Strategy
	if err := c.getRaw(ctx, "/api/v1/strategies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateStrategy saves a named rule set.
func (c *Client) CreateStrategy(ctx context.Context, req StrategyCreate) (*Strategy, error) {
	var out Strategy
	if err := c.send(ctx, http.MethodPost, "/api/v1/strategies", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStrategy patches a saved strategy.
func (c *Client) UpdateStrategy(ctx context.Context, id int, req StrategyUpdate) (*Strategy, error) {
	var out Strategy
	path := fmt.Sprintf("/api/v1/strategies/%d", id)
	if err := c.send(ctx, http.MethodPut, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStrategy removes a saved strategy.
func (c *Client) DeleteStrategy(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/strategies/%d", id), nil, nil)
}

// ToggleStrategyAlert flips the push-notification switch on a
// strategy.
func (c *Client) ToggleStrategyAlert(ctx context.Context, id int, enabled bool) (*Strategy, error) {
	var out Strategy
	path := fmt.Sprintf("/api/v1/strategies/%d/alert", id)
	body := struct {
		AlertEnabled bool `json:"alert_enabled"`
	}{AlertEnabled: enabled}
	if err := c.send(ctx, http.MethodPatch, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TickerInfo is one ticker search hit.
type TickerInfo struct {
	TickerID   string  `json:"ticker_id"`
	Name       string  `json:"name"`
	MarketType *string `json:"market_type"`
	Industry   *string `json:"industry"`
}

// SearchTickers finds tickers whose id or name contains q. An empty q
// lists tickers in id order up to limit.
func (c *Client) SearchTickers(ctx context.Context, q string, limit int) ([]TickerInfo, error) {
	v := url.Values{}
	if strings.TrimSpace(q) != "" {
		v.Set("q", q)
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var out []TickerInfo
	if err := c.getRaw(ctx, "/api/v1/tickers", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}
