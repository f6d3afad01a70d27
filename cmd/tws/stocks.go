package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twsefilter/tws/pkg/tws/api"
	"github.com/twsefilter/tws/pkg/tws/render"
)

func newDetailCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detail <symbol>",
		Short: "Show one stock's daily data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			d, err := a.client.StockDetail(ctx, args[0])
			if err != nil {
				return err
			}
			list := api.StockList{Items: []api.StockRow{d.StockRow}, Total: 1, Page: 1, TotalPages: 1}
			t := render.StockTable(&list)
			t.Title = fmt.Sprintf("%s %s", d.Symbol, d.Name)
			t.Footer = ""
			return a.render(t)
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "history <symbol>",
		Short: "Show daily OHLCV history for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			candles, err := a.client.StockHistory(ctx, args[0], days)
			if err != nil {
				return err
			}
			return a.render(render.CandleTable(args[0], candles))
		},
	}
	cmd.Flags().IntVar(&days, "days", 60, "number of trading days")
	return cmd
}
