package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Turnover preset names under /api/turnover. The rankings all share
// the TurnoverList shape and are rendered the same way.
const (
	TurnoverTop20            = "top20"
	TurnoverLimitUp          = "limit-up"
	TurnoverMABreakout       = "ma-breakout"
	TurnoverVolumeSurge      = "volume-surge"
	TurnoverInstitutionalBuy = "institutional-buy"
	TurnoverAboveMA20        = "above-ma20-uptrend"
	TurnoverComboFilter      = "combo-filter"
	TurnoverStrongRetail     = "strong-retail"
	TurnoverDemon            = "demon"
	TurnoverBigPlayer        = "big-player"
	TurnoverLowPrice         = "low-price"
)

// TurnoverPresets lists the preset names accepted by Turnover, in
// display order.
var TurnoverPresets = []string{
	TurnoverTop20,
	TurnoverLimitUp,
	TurnoverMABreakout,
	TurnoverVolumeSurge,
	TurnoverInstitutionalBuy,
	TurnoverAboveMA20,
	TurnoverComboFilter,
	TurnoverStrongRetail,
	TurnoverDemon,
	TurnoverBigPlayer,
	TurnoverLowPrice,
}

// turnoverPaths maps a preset name to its route under /api/turnover.
// The last four live under a presets/ sub-route on the backend; the
// name users type stays flat.
var turnoverPaths = map[string]string{
	TurnoverTop20:            "top20",
	TurnoverLimitUp:          "limit-up",
	TurnoverMABreakout:       "ma-breakout",
	TurnoverVolumeSurge:      "volume-surge",
	TurnoverInstitutionalBuy: "institutional-buy",
	TurnoverAboveMA20:        "above-ma20-uptrend",
	TurnoverComboFilter:      "combo-filter",
	TurnoverStrongRetail:     "presets/strong-retail",
	TurnoverDemon:            "presets/demon",
	TurnoverBigPlayer:        "presets/big-player",
	TurnoverLowPrice:         "presets/low-price",
}

// Turnover fetches one turnover ranking. These endpoints return their
// response bodies directly, not wrapped in the standard envelope.
func (c *Client) Turnover(ctx context.Context, preset, date string, limit int) (*TurnoverList, error) {
	path, ok := turnoverPaths[preset]
	if !ok {
		return nil, fmt.Errorf("unknown turnover preset %q", preset)
	}
	v := url.Values{}
	if date != "" {
		v.Set("date", date)
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var out TurnoverList
	if err := c.getRaw(ctx, "/api/turnover/"+path, v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
