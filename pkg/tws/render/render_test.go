package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twsefilter/tws/pkg/tws/api"
)

func ptr[T any](v T) *T { return &v }

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: "-"},
		{name: "empty string", in: "", want: "-"},
		{name: "string", in: "台積電", want: "台積電"},
		{name: "nil string pointer", in: (*string)(nil), want: "-"},
		{name: "float two decimals", in: 612.0, want: "612.00"},
		{name: "float with thousands", in: 1234567.891, want: "1,234,567.89"},
		{name: "negative float", in: -2.5, want: "-2.50"},
		{name: "int with thousands", in: int64(2500000), want: "2,500,000"},
		{name: "negative int", in: int64(-1200), want: "-1,200"},
		{name: "small int", in: 42, want: "42"},
		{name: "float pointer", in: ptr(15.5), want: "15.50"},
		{name: "nil float pointer", in: (*float64)(nil), want: "-"},
		{name: "true", in: true, want: "✓"},
		{name: "false", in: false, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestColumnsForDropsAbsentColumns(t *testing.T) {
	preferred := []Column{
		{Key: "id"}, {Key: "name"}, {Key: "a"}, {Key: "b"},
	}
	rows := []map[string]any{
		{"id": "1", "b": 2.0},
	}
	got := columnsFor(preferred, rows, 2)
	keys := make([]string, 0, len(got))
	for _, c := range got {
		keys = append(keys, c.Key)
	}
	// The first two identifier columns survive even when absent.
	assert.Equal(t, []string{"id", "name", "b"}, keys)

	got = columnsFor(preferred, nil, 2)
	assert.Len(t, got, 2)
}

func TestWatchlistTableTitleASCII(t *testing.T) {
	tbl := WatchlistTable(api.Watchlist{
		ID:          3,
		Name:        "突破觀察",
		Description: ptr("週線整理"),
	})
	assert.Equal(t, "[3] 突破觀察 - 週線整理", tbl.Title)

	tbl = WatchlistTable(api.Watchlist{ID: 3, Name: "突破觀察"})
	assert.Equal(t, "[3] 突破觀察", tbl.Title)
}

func TestStrategyTableSummarizesRules(t *testing.T) {
	tbl := StrategyTable([]api.Strategy{{
		ID:   1,
		Name: "golden-cross",
		Rules: api.ScreenRequest{
			Logic: "AND",
			Rules: []api.Rule{
				{Field: "ma5", Operator: "CROSS_UP", TargetType: "field"},
				{Field: "volume", Operator: ">", TargetType: "value"},
			},
			CustomFormulas: []api.Formula{{Name: "avg", Formula: "(ma5+ma10)/2"}},
		},
		AlertEnabled: true,
		UpdatedAt:    ptr("2026-08-28T09:00:00"),
	}})
	require.Len(t, tbl.Rows, 1)
	row := tbl.Rows[0]
	assert.Equal(t, "AND", row["logic"])
	assert.Equal(t, 2, row["rule_count"])
	assert.Equal(t, 1, row["formula_count"])
	assert.Equal(t, true, row["alert_enabled"])
}

func TestSearchTableOmitsMissingIndustry(t *testing.T) {
	tbl := SearchTable([]api.TickerInfo{
		{TickerID: "2330", Name: "台積電", MarketType: ptr("上市")},
	})
	require.Len(t, tbl.Rows, 1)
	assert.NotContains(t, tbl.Rows[0], "industry")
	keys := make([]string, 0, len(tbl.Columns))
	for _, c := range tbl.Columns {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"ticker_id", "name", "market_type"}, keys)
}

func TestTickerTableAppendsFormulaColumns(t *testing.T) {
	rows := []api.TickerResult{
		{
			TickerID: "2330",
			Name:     "台積電",
			Close:    ptr(612.0),
			Extra: map[string]json.RawMessage{
				"zz_score": json.RawMessage("1.5"),
				"avg":      json.RawMessage("605.5"),
			},
		},
	}
	tbl := TickerTable(rows, 1)

	keys := make([]string, 0, len(tbl.Columns))
	for _, c := range tbl.Columns {
		keys = append(keys, c.Key)
	}
	// Modeled columns first, then formula columns sorted by name.
	assert.Equal(t, []string{"ticker_id", "name", "close", "avg", "zz_score"}, keys)
	assert.Equal(t, "符合條件: 1 檔", tbl.Footer)

	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, 605.5, tbl.Rows[0]["avg"])
}

func TestTickerTableEmptyResults(t *testing.T) {
	tbl := TickerTable(nil, 0)
	assert.Len(t, tbl.Columns, 2)
	assert.Empty(t, tbl.Rows)
	assert.Equal(t, "符合條件: 0 檔", tbl.Footer)
}

func TestStockTableSparseColumns(t *testing.T) {
	list := &api.StockList{
		Items: []api.StockRow{
			{Symbol: "2330", Name: "台積電", ClosePrice: ptr(612.0), ChangePercent: ptr(2.1)},
			{Symbol: "2317", Name: "鴻海", ClosePrice: ptr(180.5)},
		},
		Total:      2,
		Page:       1,
		TotalPages: 1,
	}
	tbl := StockTable(list)
	for _, c := range tbl.Columns {
		assert.NotEqual(t, "amplitude", c.Key, "absent columns must drop out")
	}
	require.Len(t, tbl.Rows, 2)
	_, ok := tbl.Rows[1]["change_percent"]
	assert.False(t, ok)
}
