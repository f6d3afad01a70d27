package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twsefilter/tws/pkg/tws/api"
	"github.com/twsefilter/tws/pkg/tws/render"
)

func newKlineCmd(a *app) *cobra.Command {
	var q api.KlineQuery
	var tail int
	cmd := &cobra.Command{
		Use:   "kline <symbol>",
		Short: "Show candles with server-computed indicators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			k, err := a.client.Kline(ctx, args[0], q)
			if err != nil {
				return err
			}
			candles := k.Candles
			if tail > 0 && len(candles) > tail {
				candles = candles[len(candles)-tail:]
			}
			title := fmt.Sprintf("%s %s (%s)", k.Symbol, k.Name, k.Period)
			return a.render(render.CandleTable(title, candles))
		},
	}
	cmd.Flags().StringVar(&q.Period, "period", "day", "day, week or month")
	cmd.Flags().IntVar(&q.Years, "years", 0, "history years (1-5)")
	cmd.Flags().StringVar(&q.StartDate, "start", "", "start date YYYY-MM-DD")
	cmd.Flags().StringVar(&q.EndDate, "end", "", "end date YYYY-MM-DD")
	cmd.Flags().BoolVar(&q.ForceRefresh, "force-refresh", false, "bypass the backend cache")
	cmd.Flags().IntVar(&tail, "tail", 30, "show only the most recent N bars (0 for all)")
	return cmd
}

func newIndicatorsCmd(a *app) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "indicators <symbol>",
		Short: "Show the indicator snapshot for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			ind, err := a.client.Indicators(ctx, args[0], days)
			if err != nil {
				return err
			}
			// Indicator payloads vary by name; print them as-is.
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(ind)
		},
	}
	cmd.Flags().IntVar(&days, "days", 200, "history days used for the computation")
	return cmd
}

func newTradingDateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trading-date",
		Short: "Show the latest trading day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			td, err := a.client.TradingDate(ctx)
			if err != nil {
				return err
			}
			return a.render(render.Table{
				Columns: []render.Column{
					{Key: "today", Label: "今日"},
					{Key: "latest_trading_day", Label: "最近交易日"},
					{Key: "is_today_trading", Label: "今日開盤"},
				},
				Rows: []map[string]any{{
					"today":              td.Today,
					"latest_trading_day": td.LatestTradingDay,
					"is_today_trading":   td.IsTodayTrading,
				}},
			})
		},
	}
}

func newIndustriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "industries",
		Short: "List industry labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			names, err := a.client.Industries(ctx)
			if err != nil {
				return err
			}
			rows := make([]map[string]any, 0, len(names))
			for _, n := range names {
				rows = append(rows, map[string]any{"industry": n})
			}
			return a.render(render.Table{
				Columns: []render.Column{{Key: "industry", Label: "產業"}},
				Rows:    rows,
			})
		},
	}
}
