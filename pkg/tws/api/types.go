package api

import (
	"encoding/json"
	"fmt"
)

// envelope is the standard wrapper on read endpoints:
// {success, data, error, message}.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// TargetValue is the right-hand side of a screen rule on the wire:
// a number, or a field key naming another column.
type TargetValue struct {
	Field string
	Value float64
}

func (t TargetValue) MarshalJSON() ([]byte, error) {
	if t.Field != "" {
		return json.Marshal(t.Field)
	}
	return json.Marshal(t.Value)
}

func (t *TargetValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		t.Field = s
		t.Value = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("target_value must be a number or field key: %w", err)
	}
	t.Field = ""
	t.Value = v
	return nil
}

// Rule is one screen condition on the wire.
type Rule struct {
	Type        string      `json:"type"`
	Field       string      `json:"field"`
	Operator    string      `json:"operator"`
	TargetType  string      `json:"target_type"`
	TargetValue TargetValue `json:"target_value"`
}

// Formula is a named derived expression evaluated server side.
type Formula struct {
	Name    string `json:"name"`
	Formula string `json:"formula"`
}

// ScreenRequest is the body of POST /api/v1/screen.
type ScreenRequest struct {
	Logic          string    `json:"logic"`
	Rules          []Rule    `json:"rules"`
	CustomFormulas []Formula `json:"custom_formulas"`
}

// TickerResult is one matched row. Everything past the identifier and
// name is optional; absent values render as placeholders.
type TickerResult struct {
	TickerID      string   `json:"ticker_id"`
	Name          string   `json:"name"`
	MarketType    *string  `json:"market_type,omitempty"`
	Industry      *string  `json:"industry,omitempty"`
	Close         *float64 `json:"close,omitempty"`
	ChangePercent *float64 `json:"change_percent,omitempty"`
	Volume        *int64   `json:"volume,omitempty"`
	MA5           *float64 `json:"ma5,omitempty"`
	MA10          *float64 `json:"ma10,omitempty"`
	MA20          *float64 `json:"ma20,omitempty"`
	MA60          *float64 `json:"ma60,omitempty"`
	RSI14         *float64 `json:"rsi14,omitempty"`
	PERatio       *float64 `json:"pe_ratio,omitempty"`
	EPS           *float64 `json:"eps,omitempty"`
	ForeignBuy    *int64   `json:"foreign_buy,omitempty"`
	TrustBuy      *int64   `json:"trust_buy,omitempty"`
	MarginBalance *int64   `json:"margin_balance,omitempty"`

	// Extra carries formula outputs and any columns this client does
	// not model, keyed by name.
	Extra map[string]json.RawMessage `json:"-"`
}

var tickerResultKeys = []string{
	"ticker_id", "name", "market_type", "industry", "close",
	"change_percent", "volume", "ma5", "ma10", "ma20", "ma60",
	"rsi14", "pe_ratio", "eps", "foreign_buy", "trust_buy",
	"margin_balance",
}

// UnmarshalJSON keeps unmodeled columns (formula outputs) in Extra.
func (t *TickerResult) UnmarshalJSON(b []byte) error {
	type plain TickerResult
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	for _, k := range tickerResultKeys {
		delete(all, k)
	}
	*t = TickerResult(p)
	if len(all) > 0 {
		t.Extra = all
	}
	return nil
}

// ScreenResponse is the body of a successful screen call.
type ScreenResponse struct {
	MatchedCount int            `json:"matched_count"`
	Data         []TickerResult `json:"data"`
	Logic        string         `json:"logic"`
}

// StockRow is one row of the daily filter listing.
type StockRow struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Industry *string `json:"industry,omitempty"`

	OpenPrice  *float64 `json:"open_price,omitempty"`
	HighPrice  *float64 `json:"high_price,omitempty"`
	LowPrice   *float64 `json:"low_price,omitempty"`
	ClosePrice *float64 `json:"close_price,omitempty"`
	PrevClose  *float64 `json:"prev_close,omitempty"`
	Volume     *int64   `json:"volume,omitempty"`

	ChangePercent *float64 `json:"change_percent,omitempty"`
	Amplitude     *float64 `json:"amplitude,omitempty"`
	VolumeRatio   *float64 `json:"volume_ratio,omitempty"`

	ConsecutiveUpDays *int     `json:"consecutive_up_days,omitempty"`
	DistanceFromHigh  *float64 `json:"distance_from_high,omitempty"`
	DistanceFromLow   *float64 `json:"distance_from_low,omitempty"`
	AvgChange5D       *float64 `json:"avg_change_5d,omitempty"`

	TradeDate *string `json:"trade_date,omitempty"`
}

// StockList is the paginated filter response.
type StockList struct {
	Items      []StockRow `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
	QueryDate  string     `json:"query_date"`
	TradingDay bool       `json:"is_trading_day"`
}

// StockDetail extends a row with whatever per-symbol indicator fields
// the backend attaches.
type StockDetail struct {
	StockRow
	Indicators map[string]json.RawMessage `json:"indicators,omitempty"`
}

// Candle is one OHLCV bar.
type Candle struct {
	Date   string   `json:"date"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume *int64   `json:"volume"`
}

// Kline is the chart payload: candles plus server-computed indicator
// series keyed by name (ma5, macd, kd, rsi, bollinger, ...).
type Kline struct {
	Symbol     string                     `json:"symbol"`
	Name       string                     `json:"name"`
	Period     string                     `json:"period"`
	Candles    []Candle                   `json:"candles"`
	Indicators map[string]json.RawMessage `json:"indicators"`
}

// TradingDate reports the latest trading day relative to today.
type TradingDate struct {
	Today            string `json:"today"`
	LatestTradingDay string `json:"latest_trading_day"`
	IsTodayTrading   bool   `json:"is_today_trading"`
}

// BatchCompareRequest finds stocks matching the same filter on several
// dates.
type BatchCompareRequest struct {
	Dates         []string     `json:"dates"`
	FilterParams  FilterParams `json:"filter_params"`
	MinOccurrence int          `json:"min_occurrence"`
}

// FilterParams is the filter condition block shared by batch compare
// and backtest bodies.
type FilterParams struct {
	StartDate        *string  `json:"start_date,omitempty"`
	EndDate          *string  `json:"end_date,omitempty"`
	ChangeMin        float64  `json:"change_min"`
	ChangeMax        float64  `json:"change_max"`
	VolumeMin        int      `json:"volume_min"`
	VolumeMax        *int     `json:"volume_max,omitempty"`
	PriceMin         *float64 `json:"price_min,omitempty"`
	PriceMax         *float64 `json:"price_max,omitempty"`
	ConsecutiveUpMin *int     `json:"consecutive_up_min,omitempty"`
	Industries       []string `json:"industries,omitempty"`
	ExcludeETF       bool     `json:"exclude_etf"`
}

// BatchCompareItem is one recurring stock across the queried dates.
type BatchCompareItem struct {
	Symbol          string   `json:"symbol"`
	Name            string   `json:"name"`
	Industry        *string  `json:"industry"`
	OccurrenceCount int      `json:"occurrence_count"`
	OccurrenceDates []string `json:"occurrence_dates"`
	AvgChange       float64  `json:"avg_change"`
	TotalVolume     int64    `json:"total_volume"`
	LatestPrice     *float64 `json:"latest_price,omitempty"`
	LatestChange    *float64 `json:"latest_change,omitempty"`
}

// BatchCompareResponse is the batch compare result.
type BatchCompareResponse struct {
	Items        []BatchCompareItem `json:"items"`
	Total        int                `json:"total"`
	DatesQueried []string           `json:"dates_queried"`
}

// BacktestRequest runs the filter historically and measures forward
// returns over the given holding periods.
type BacktestRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	FilterParams
	HoldingDays []int `json:"holding_days"`
}

// BacktestStats summarizes one holding period.
type BacktestStats struct {
	HoldingDays   int      `json:"holding_days"`
	TotalTrades   int      `json:"total_trades"`
	WinningTrades int      `json:"winning_trades"`
	LosingTrades  int      `json:"losing_trades"`
	WinRate       float64  `json:"win_rate"`
	AvgReturn     float64  `json:"avg_return"`
	MaxGain       float64  `json:"max_gain"`
	MaxLoss       float64  `json:"max_loss"`
	ExpectedValue float64  `json:"expected_value"`
	MedianReturn  *float64 `json:"median_return,omitempty"`
}

// BacktestResponse is the backtest result.
type BacktestResponse struct {
	ID           *int            `json:"id,omitempty"`
	TotalSignals int             `json:"total_signals"`
	UniqueStocks int             `json:"unique_stocks"`
	Stats        []BacktestStats `json:"stats"`
}

// Watchlist is a monitored symbol list.
type Watchlist struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Items       []WatchlistItem `json:"items"`
}

// WatchlistItem is one monitored symbol with optional alert
// conditions.
type WatchlistItem struct {
	ID           int             `json:"id"`
	Symbol       string          `json:"symbol"`
	StockName    *string         `json:"stock_name"`
	Conditions   json.RawMessage `json:"conditions"`
	IsActive     bool            `json:"is_active"`
	Notes        *string         `json:"notes"`
	TriggerCount int             `json:"trigger_count"`
}

// WatchlistCreate is the body for creating a watchlist.
type WatchlistCreate struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// WatchlistItemCreate is the body for adding a symbol to a watchlist.
type WatchlistItemCreate struct {
	Symbol     string          `json:"symbol"`
	StockName  *string         `json:"stock_name,omitempty"`
	Conditions json.RawMessage `json:"conditions,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
}

// WatchlistItemUpdate is the partial-update body for a watchlist item.
type WatchlistItemUpdate struct {
	Conditions json.RawMessage `json:"conditions,omitempty"`
	IsActive   *bool           `json:"is_active,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
}

// Favorite is a saved filter condition set.
type Favorite struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Category    *string         `json:"category"`
	Description *string         `json:"description"`
	Conditions  json.RawMessage `json:"conditions"`
	UseCount    int             `json:"use_count"`
}

// FavoriteCreate is the body for saving a favorite.
type FavoriteCreate struct {
	Name        string          `json:"name"`
	Category    *string         `json:"category,omitempty"`
	Description *string         `json:"description,omitempty"`
	Conditions  json.RawMessage `json:"conditions"`
}

// QueryHistory is one past filter execution.
type QueryHistory struct {
	ID          int             `json:"id"`
	QueryParams json.RawMessage `json:"query_params"`
	ResultCount int             `json:"result_count"`
	QueryType   string          `json:"query_type"`
	ExecutedAt  string          `json:"executed_at"`
}

// TurnoverItem is one stock in the turnover-rate rankings.
type TurnoverItem struct {
	TurnoverRank int     `json:"turnover_rank"`
	Symbol       string  `json:"symbol"`
	Name         *string `json:"name"`
	Industry     *string `json:"industry"`

	ClosePrice    *float64 `json:"close_price"`
	ChangePercent *float64 `json:"change_percent"`
	TurnoverRate  float64  `json:"turnover_rate"`
	Volume        *int64   `json:"volume"`

	IsLimitUp    bool     `json:"is_limit_up"`
	LimitUpType  *string  `json:"limit_up_type"`
	SealVolume   *int64   `json:"seal_volume"`
	OpenCount    *int     `json:"open_count"`
	FirstLimitAt *string  `json:"first_limit_time"`
	VolumeRatio  *float64 `json:"volume_ratio"`
	Amplitude    *float64 `json:"amplitude"`
}

// TurnoverList is the shape shared by the turnover ranking endpoints.
type TurnoverList struct {
	Success   bool           `json:"success"`
	QueryDate string         `json:"query_date"`
	Items     []TurnoverItem `json:"items"`

	LimitUpSymbols []string `json:"limit_up_symbols,omitempty"`
}
