package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// KlineQuery selects the chart window for a symbol.
type KlineQuery struct {
	Period       string // day, week or month
	Years        int
	StartDate    string
	EndDate      string
	ForceRefresh bool
}

// Kline fetches candles plus server-computed indicator series.
func (c *Client) Kline(ctx context.Context, symbol string, q KlineQuery) (*Kline, error) {
	v := url.Values{}
	if q.Period != "" {
		v.Set("period", q.Period)
	}
	if q.Years > 0 {
		v.Set("years", strconv.Itoa(q.Years))
	}
	if q.StartDate != "" {
		v.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("end_date", q.EndDate)
	}
	if q.ForceRefresh {
		v.Set("force_refresh", "true")
	}
	var out Kline
	path := fmt.Sprintf("/api/stocks/%s/kline", url.PathEscape(symbol))
	if err := c.get(ctx, path, v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Indicators fetches the indicator snapshot for a symbol: MA5-60,
// RSI(14), MACD, KD and Bollinger bands, keyed by indicator name.
func (c *Client) Indicators(ctx context.Context, symbol string, days int) (map[string]json.RawMessage, error) {
	v := url.Values{}
	if days > 0 {
		v.Set("days", strconv.Itoa(days))
	}
	var out map[string]json.RawMessage
	path := fmt.Sprintf("/api/stocks/%s/indicators", url.PathEscape(symbol))
	if err := c.get(ctx, path, v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Industries lists all known industry labels.
func (c *Client) Industries(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.get(ctx, "/api/industries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TradingDate reports the latest trading day.
func (c *Client) TradingDate(ctx context.Context) (*TradingDate, error) {
	var out TradingDate
	if err := c.get(ctx, "/api/trading-date", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
