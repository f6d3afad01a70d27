package render

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/twsefilter/tws/pkg/tws/api"
)

// Builders mapping response payloads onto the Table model. Optional
// fields are inserted only when present so that sparse columns drop
// out of the rendered table entirely.

func put(m map[string]any, key string, v any) {
	switch t := v.(type) {
	case nil:
		return
	case *string:
		if t == nil {
			return
		}
	case *float64:
		if t == nil {
			return
		}
	case *int:
		if t == nil {
			return
		}
	case *int64:
		if t == nil {
			return
		}
	}
	m[key] = v
}

// columnsFor keeps the preferred columns that appear in at least one
// row, preserving preferred order; sym-like identifier columns are
// kept even when rows are empty.
func columnsFor(preferred []Column, rows []map[string]any, always int) []Column {
	present := map[string]bool{}
	for _, r := range rows {
		for k := range r {
			present[k] = true
		}
	}
	out := make([]Column, 0, len(preferred))
	for i, c := range preferred {
		if i < always || present[c.Key] {
			out = append(out, c)
		}
	}
	return out
}

var tickerColumns = []Column{
	{Key: "ticker_id", Label: "代號"},
	{Key: "name", Label: "名稱"},
	{Key: "market_type", Label: "市場"},
	{Key: "industry", Label: "產業"},
	{Key: "close", Label: "收盤價", Numeric: true},
	{Key: "change_percent", Label: "漲跌幅%", Numeric: true},
	{Key: "volume", Label: "成交量", Numeric: true},
	{Key: "ma5", Label: "MA5", Numeric: true},
	{Key: "ma10", Label: "MA10", Numeric: true},
	{Key: "ma20", Label: "MA20", Numeric: true},
	{Key: "ma60", Label: "MA60", Numeric: true},
	{Key: "rsi14", Label: "RSI14", Numeric: true},
	{Key: "pe_ratio", Label: "本益比", Numeric: true},
	{Key: "eps", Label: "EPS", Numeric: true},
	{Key: "foreign_buy", Label: "外資買賣超", Numeric: true},
	{Key: "trust_buy", Label: "投信買賣超", Numeric: true},
	{Key: "margin_balance", Label: "融資餘額", Numeric: true},
}

// TickerTable lays out screen results. Formula output columns are
// appended after the modeled ones, sorted by name.
func TickerTable(rows []api.TickerResult, matched int) Table {
	out := make([]map[string]any, 0, len(rows))
	extraKeys := map[string]bool{}
	for _, r := range rows {
		m := map[string]any{"ticker_id": r.TickerID, "name": r.Name}
		put(m, "market_type", r.MarketType)
		put(m, "industry", r.Industry)
		put(m, "close", r.Close)
		put(m, "change_percent", r.ChangePercent)
		put(m, "volume", r.Volume)
		put(m, "ma5", r.MA5)
		put(m, "ma10", r.MA10)
		put(m, "ma20", r.MA20)
		put(m, "ma60", r.MA60)
		put(m, "rsi14", r.RSI14)
		put(m, "pe_ratio", r.PERatio)
		put(m, "eps", r.EPS)
		put(m, "foreign_buy", r.ForeignBuy)
		put(m, "trust_buy", r.TrustBuy)
		put(m, "margin_balance", r.MarginBalance)
		for k, raw := range r.Extra {
			var v any
			if err := json.Unmarshal(raw, &v); err == nil && v != nil {
				m[k] = v
				extraKeys[k] = true
			}
		}
		out = append(out, m)
	}
	cols := columnsFor(tickerColumns, out, 2)
	extras := make([]string, 0, len(extraKeys))
	for k := range extraKeys {
		extras = append(extras, k)
	}
	sort.Strings(extras)
	for _, k := range extras {
		cols = append(cols, Column{Key: k, Numeric: true})
	}
	return Table{
		Columns: cols,
		Rows:    out,
		Footer:  fmt.Sprintf("符合條件: %d 檔", matched),
	}
}

var stockColumns = []Column{
	{Key: "symbol", Label: "代號"},
	{Key: "name", Label: "名稱"},
	{Key: "industry", Label: "產業"},
	{Key: "close_price", Label: "收盤價", Numeric: true},
	{Key: "change_percent", Label: "漲跌幅%", Numeric: true},
	{Key: "volume", Label: "成交量(張)", Numeric: true},
	{Key: "amplitude", Label: "振幅%", Numeric: true},
	{Key: "volume_ratio", Label: "量比", Numeric: true},
	{Key: "consecutive_up_days", Label: "連漲天數", Numeric: true},
	{Key: "avg_change_5d", Label: "5日均漲%", Numeric: true},
}

func stockRowMap(r api.StockRow) map[string]any {
	m := map[string]any{"symbol": r.Symbol, "name": r.Name}
	put(m, "industry", r.Industry)
	put(m, "close_price", r.ClosePrice)
	put(m, "change_percent", r.ChangePercent)
	put(m, "volume", r.Volume)
	put(m, "amplitude", r.Amplitude)
	put(m, "volume_ratio", r.VolumeRatio)
	put(m, "consecutive_up_days", r.ConsecutiveUpDays)
	put(m, "avg_change_5d", r.AvgChange5D)
	return m
}

// StockTable lays out a daily filter page.
func StockTable(list *api.StockList) Table {
	out := make([]map[string]any, 0, len(list.Items))
	for _, r := range list.Items {
		out = append(out, stockRowMap(r))
	}
	return Table{
		Columns: columnsFor(stockColumns, out, 2),
		Rows:    out,
		Footer: fmt.Sprintf("%s 共 %d 檔 (第 %d/%d 頁)",
			list.QueryDate, list.Total, list.Page, list.TotalPages),
	}
}

var turnoverColumns = []Column{
	{Key: "turnover_rank", Label: "排名", Numeric: true},
	{Key: "symbol", Label: "代號"},
	{Key: "name", Label: "名稱"},
	{Key: "industry", Label: "產業"},
	{Key: "close_price", Label: "收盤價", Numeric: true},
	{Key: "change_percent", Label: "漲跌幅%", Numeric: true},
	{Key: "turnover_rate", Label: "周轉率%", Numeric: true},
	{Key: "volume", Label: "成交量(張)", Numeric: true},
	{Key: "is_limit_up", Label: "漲停"},
	{Key: "volume_ratio", Label: "量比", Numeric: true},
	{Key: "amplitude", Label: "振幅%", Numeric: true},
}

// TurnoverTable lays out a turnover ranking.
func TurnoverTable(list *api.TurnoverList) Table {
	out := make([]map[string]any, 0, len(list.Items))
	for _, r := range list.Items {
		m := map[string]any{
			"turnover_rank": r.TurnoverRank,
			"symbol":        r.Symbol,
			"turnover_rate": r.TurnoverRate,
		}
		put(m, "name", r.Name)
		put(m, "industry", r.Industry)
		put(m, "close_price", r.ClosePrice)
		put(m, "change_percent", r.ChangePercent)
		put(m, "volume", r.Volume)
		if r.IsLimitUp {
			m["is_limit_up"] = true
		}
		put(m, "volume_ratio", r.VolumeRatio)
		put(m, "amplitude", r.Amplitude)
		out = append(out, m)
	}
	return Table{
		Columns: columnsFor(turnoverColumns, out, 2),
		Rows:    out,
		Footer:  fmt.Sprintf("%s 共 %d 檔", list.QueryDate, len(list.Items)),
	}
}

var compareColumns = []Column{
	{Key: "symbol", Label: "代號"},
	{Key: "name", Label: "名稱"},
	{Key: "industry", Label: "產業"},
	{Key: "occurrence_count", Label: "出現次數", Numeric: true},
	{Key: "avg_change", Label: "平均漲幅%", Numeric: true},
	{Key: "total_volume", Label: "總成交量", Numeric: true},
	{Key: "latest_price", Label: "最新價", Numeric: true},
	{Key: "latest_change", Label: "最新漲幅%", Numeric: true},
}

// CompareTable lays out a batch date comparison.
func CompareTable(resp *api.BatchCompareResponse) Table {
	out := make([]map[string]any, 0, len(resp.Items))
	for _, r := range resp.Items {
		m := map[string]any{
			"symbol":           r.Symbol,
			"name":             r.Name,
			"occurrence_count": r.OccurrenceCount,
			"avg_change":       r.AvgChange,
			"total_volume":     r.TotalVolume,
		}
		put(m, "industry", r.Industry)
		put(m, "latest_price", r.LatestPrice)
		put(m, "latest_change", r.LatestChange)
		out = append(out, m)
	}
	return Table{
		Columns: columnsFor(compareColumns, out, 2),
		Rows:    out,
		Footer:  fmt.Sprintf("比對 %d 個交易日, 共 %d 檔", len(resp.DatesQueried), resp.Total),
	}
}

var backtestColumns = []Column{
	{Key: "holding_days", Label: "持有天數", Numeric: true},
	{Key: "total_trades", Label: "交易數", Numeric: true},
	{Key: "win_rate", Label: "勝率%", Numeric: true},
	{Key: "avg_return", Label: "平均報酬%", Numeric: true},
	{Key: "max_gain", Label: "最大漲幅%", Numeric: true},
	{Key: "max_loss", Label: "最大跌幅%", Numeric: true},
	{Key: "expected_value", Label: "期望值%", Numeric: true},
	{Key: "median_return", Label: "中位數%", Numeric: true},
}

// BacktestTable lays out per-holding-period statistics.
func BacktestTable(resp *api.BacktestResponse) Table {
	out := make([]map[string]any, 0, len(resp.Stats))
	for _, s := range resp.Stats {
		m := map[string]any{
			"holding_days":   s.HoldingDays,
			"total_trades":   s.TotalTrades,
			"win_rate":       s.WinRate,
			"avg_return":     s.AvgReturn,
			"max_gain":       s.MaxGain,
			"max_loss":       s.MaxLoss,
			"expected_value": s.ExpectedValue,
		}
		put(m, "median_return", s.MedianReturn)
		out = append(out, m)
	}
	return Table{
		Columns: columnsFor(backtestColumns, out, 1),
		Rows:    out,
		Footer:  fmt.Sprintf("信號 %d 筆, 不重複 %d 檔", resp.TotalSignals, resp.UniqueStocks),
	}
}

var candleColumns = []Column{
	{Key: "date", Label: "日期"},
	{Key: "open", Label: "開盤", Numeric: true},
	{Key: "high", Label: "最高", Numeric: true},
	{Key: "low", Label: "最低", Numeric: true},
	{Key: "close", Label: "收盤", Numeric: true},
	{Key: "volume", Label: "成交量", Numeric: true},
}

// CandleTable lays out OHLCV bars.
func CandleTable(title string, candles []api.Candle) Table {
	out := make([]map[string]any, 0, len(candles))
	for _, c := range candles {
		m := map[string]any{"date": c.Date}
		put(m, "open", c.Open)
		put(m, "high", c.High)
		put(m, "low", c.Low)
		put(m, "close", c.Close)
		put(m, "volume", c.Volume)
		out = append(out, m)
	}
	return Table{
		Title:   title,
		Columns: columnsFor(candleColumns, out, 1),
		Rows:    out,
	}
}

var watchlistColumns = []Column{
	{Key: "id", Label: "ID", Numeric: true},
	{Key: "symbol", Label: "代號"},
	{Key: "stock_name", Label: "名稱"},
	{Key: "is_active", Label: "啟用"},
	{Key: "trigger_count", Label: "觸發次數", Numeric: true},
	{Key: "notes", Label: "備註"},
}

// WatchlistTable lays out one watchlist's items.
func WatchlistTable(wl api.Watchlist) Table {
	out := make([]map[string]any, 0, len(wl.Items))
	for _, it := range wl.Items {
		m := map[string]any{
			"id":            it.ID,
			"symbol":        it.Symbol,
			"is_active":     it.IsActive,
			"trigger_count": it.TriggerCount,
		}
		put(m, "stock_name", it.StockName)
		put(m, "notes", it.Notes)
		out = append(out, m)
	}
	title := wl.Name
	if wl.Description != nil && *wl.Description != "" {
		title = fmt.Sprintf("%s - %s", wl.Name, *wl.Description)
	}
	return Table{
		Title:   fmt.Sprintf("[%d] %s", wl.ID, title),
		Columns: columnsFor(watchlistColumns, out, 2),
		Rows:    out,
	}
}

var favoriteColumns = []Column{
	{Key: "id", Label: "ID", Numeric: true},
	{Key: "name", Label: "名稱"},
	{Key: "category", Label: "分類"},
	{Key: "description", Label: "說明"},
	{Key: "use_count", Label: "使用次數", Numeric: true},
}

// FavoriteTable lays out saved filter condition sets.
func FavoriteTable(favs []api.Favorite) Table {
	out := make([]map[string]any, 0, len(favs))
	for _, f := range favs {
		m := map[string]any{"id": f.ID, "name": f.Name, "use_count": f.UseCount}
		put(m, "category", f.Category)
		put(m, "description", f.Description)
		out = append(out, m)
	}
	return Table{Columns: columnsFor(favoriteColumns, out, 2), Rows: out}
}

var strategyColumns = []Column{
	{Key: "id", Label: "ID", Numeric: true},
	{Key: "name", Label: "名稱"},
	{Key: "logic", Label: "邏輯"},
	{Key: "rule_count", Label: "條件數", Numeric: true},
	{Key: "formula_count", Label: "公式數", Numeric: true},
	{Key: "alert_enabled", Label: "推播"},
	{Key: "updated_at", Label: "更新時間"},
}

// StrategyTable lays out saved strategies with a summary of each
// rule set.
func StrategyTable(strategies []api.Strategy) Table {
	out := make([]map[string]any, 0, len(strategies))
	for _, s := range strategies {
		m := map[string]any{
			"id":            s.ID,
			"name":          s.Name,
			"logic":         s.Rules.Logic,
			"rule_count":    len(s.Rules.Rules),
			"formula_count": len(s.Rules.CustomFormulas),
			"alert_enabled": s.AlertEnabled,
		}
		put(m, "updated_at", s.UpdatedAt)
		out = append(out, m)
	}
	return Table{Columns: columnsFor(strategyColumns, out, 2), Rows: out}
}

var searchColumns = []Column{
	{Key: "ticker_id", Label: "代號"},
	{Key: "name", Label: "名稱"},
	{Key: "market_type", Label: "市場"},
	{Key: "industry", Label: "產業"},
}

// SearchTable lays out ticker search hits.
func SearchTable(hits []api.TickerInfo) Table {
	out := make([]map[string]any, 0, len(hits))
	for _, h := range hits {
		m := map[string]any{"ticker_id": h.TickerID, "name": h.Name}
		put(m, "market_type", h.MarketType)
		put(m, "industry", h.Industry)
		out = append(out, m)
	}
	return Table{Columns: columnsFor(searchColumns, out, 2), Rows: out}
}

var historyColumns = []Column{
	{Key: "id", Label: "ID", Numeric: true},
	{Key: "query_type", Label: "類型"},
	{Key: "result_count", Label: "結果數", Numeric: true},
	{Key: "executed_at", Label: "執行時間"},
}

// QueryHistoryTable lays out past filter executions.
func QueryHistoryTable(items []api.QueryHistory) Table {
	out := make([]map[string]any, 0, len(items))
	for _, h := range items {
		out = append(out, map[string]any{
			"id":           h.ID,
			"query_type":   h.QueryType,
			"result_count": h.ResultCount,
			"executed_at":  h.ExecutedAt,
		})
	}
	return Table{Columns: historyColumns, Rows: out}
}
