package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategiesListDecodesRawBody(t *testing.T) {
	// The v1 routes return plain bodies, not the standard envelope.
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/strategies", r.URL.Path)
		w.Write([]byte(`[
			{"id": 1, "name": "golden-cross", "rules_json": {"logic": "AND", "rules": []}, "alert_enabled": true},
			{"id": 2, "name": "oversold", "rules_json": {"logic": "OR", "rules": []}, "alert_enabled": false}
		]`))
	}))

	strategies, err := c.Strategies(context.Background())
	require.NoError(t, err)
	require.Len(t, strategies, 2)
	assert.Equal(t, "golden-cross", strategies[0].Name)
	assert.Equal(t, "AND", strategies[0].Rules.Logic)
	assert.True(t, strategies[0].AlertEnabled)
	assert.False(t, strategies[1].AlertEnabled)
}

func TestCreateStrategyPostsRulesJSON(t *testing.T) {
	var gotBody map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/strategies", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"id": 3, "name": "breakout", "rules_json": {"logic": "AND", "rules": []}, "alert_enabled": true}`))
	}))

	st, err := c.CreateStrategy(context.Background(), StrategyCreate{
		Name: "breakout",
		Rules: ScreenRequest{
			Logic: "AND",
			Rules: []Rule{{Type: "indicator", Field: "close", Operator: ">", TargetType: "value", TargetValue: TargetValue{Value: 100}}},
		},
		AlertEnabled: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, st.ID)

	assert.Equal(t, "breakout", gotBody["name"])
	assert.NotContains(t, gotBody, "line_notify_token")
	rules := gotBody["rules_json"].(map[string]any)
	assert.Equal(t, "AND", rules["logic"])
	require.Len(t, rules["rules"].([]any), 1)
}

func TestUpdateStrategyOmitsUnsetFields(t *testing.T) {
	var gotBody map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/strategies/7", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"id": 7, "name": "renamed", "rules_json": {"logic": "AND", "rules": []}, "alert_enabled": false}`))
	}))

	st, err := c.UpdateStrategy(context.Background(), 7, StrategyUpdate{Name: ptr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", st.Name)

	assert.Equal(t, "renamed", gotBody["name"])
	assert.NotContains(t, gotBody, "rules_json")
	assert.NotContains(t, gotBody, "alert_enabled")
}

func TestToggleStrategyAlertPatch(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/strategies/5/alert", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["alert_enabled"])
		w.Write([]byte(`{"id": 5, "name": "demon", "rules_json": {"logic": "AND", "rules": []}, "alert_enabled": true}`))
	}))

	st, err := c.ToggleStrategyAlert(context.Background(), 5, true)
	require.NoError(t, err)
	assert.True(t, st.AlertEnabled)
}

func TestDeleteStrategyNoContent(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/strategies/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.DeleteStrategy(context.Background(), 9))
}

func TestSearchTickersQuery(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tickers", r.URL.Path)
		assert.Equal(t, "台積", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"ticker_id": "2330", "name": "台積電", "market_type": "上市", "industry": "半導體"}]`))
	}))

	hits, err := c.SearchTickers(context.Background(), "台積", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "2330", hits[0].TickerID)
	require.NotNil(t, hits[0].Industry)
	assert.Equal(t, "半導體", *hits[0].Industry)
}
