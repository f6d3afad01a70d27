package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// FilterQuery is the query surface of GET /api/stocks/filter. Nil
// bounds are omitted from the query string and the backend applies
// its own defaults.
type FilterQuery struct {
	Date *string

	ChangeMin *float64
	ChangeMax *float64

	VolumeMin *int
	VolumeMax *int

	PriceMin *float64
	PriceMax *float64

	ConsecutiveUpMin *int
	ConsecutiveUpMax *int

	AmplitudeMin *float64
	AmplitudeMax *float64

	VolumeRatioMin *float64
	VolumeRatioMax *float64

	Industries     []string
	ExcludeETF     bool
	ExcludeSpecial bool

	Page     int
	PageSize int

	SortBy    string
	SortOrder string
}

func (q FilterQuery) values() url.Values {
	v := url.Values{}
	setStr := func(key string, p *string) {
		if p != nil {
			v.Set(key, *p)
		}
	}
	setFloat := func(key string, p *float64) {
		if p != nil {
			v.Set(key, strconv.FormatFloat(*p, 'f', -1, 64))
		}
	}
	setInt := func(key string, p *int) {
		if p != nil {
			v.Set(key, strconv.Itoa(*p))
		}
	}
	setStr("date", q.Date)
	setFloat("change_min", q.ChangeMin)
	setFloat("change_max", q.ChangeMax)
	setInt("volume_min", q.VolumeMin)
	setInt("volume_max", q.VolumeMax)
	setFloat("price_min", q.PriceMin)
	setFloat("price_max", q.PriceMax)
	setInt("consecutive_up_min", q.ConsecutiveUpMin)
	setInt("consecutive_up_max", q.ConsecutiveUpMax)
	setFloat("amplitude_min", q.AmplitudeMin)
	setFloat("amplitude_max", q.AmplitudeMax)
	setFloat("volume_ratio_min", q.VolumeRatioMin)
	setFloat("volume_ratio_max", q.VolumeRatioMax)
	if len(q.Industries) > 0 {
		v.Set("industries", strings.Join(q.Industries, ","))
	}
	v.Set("exclude_etf", strconv.FormatBool(q.ExcludeETF))
	v.Set("exclude_special", strconv.FormatBool(q.ExcludeSpecial))
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sort_order", q.SortOrder)
	}
	return v
}

// FilterStocks lists stocks matching the daily range filter.
func (c *Client) FilterStocks(ctx context.Context, q FilterQuery) (*StockList, error) {
	var out StockList
	if err := c.get(ctx, "/api/stocks/filter", q.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StockDetail fetches one stock with its attached indicators.
func (c *Client) StockDetail(ctx context.Context, symbol string) (*StockDetail, error) {
	var out StockDetail
	if err := c.get(ctx, "/api/stocks/"+url.PathEscape(symbol), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StockHistory fetches up to days of daily OHLCV bars for a symbol.
func (c *Client) StockHistory(ctx context.Context, symbol string, days int) ([]Candle, error) {
	v := url.Values{}
	if days > 0 {
		v.Set("days", strconv.Itoa(days))
	}
	var out []Candle
	path := fmt.Sprintf("/api/stocks/%s/history", url.PathEscape(symbol))
	if err := c.get(ctx, path, v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BatchCompare finds stocks matching the same filter across several
// trading dates.
func (c *Client) BatchCompare(ctx context.Context, req BatchCompareRequest) (*BatchCompareResponse, error) {
	var out BatchCompareResponse
	if err := c.sendEnveloped(ctx, http.MethodPost, "/api/stocks/batch-compare", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Backtest runs the filter historically over a date range.
func (c *Client) Backtest(ctx context.Context, req BacktestRequest) (*BacktestResponse, error) {
	var out BacktestResponse
	if err := c.sendEnveloped(ctx, http.MethodPost, "/api/backtest/run", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
