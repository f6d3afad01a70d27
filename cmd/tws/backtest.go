package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/twsefilter/tws/pkg/tws/api"
	"github.com/twsefilter/tws/pkg/tws/render"
)

func newBacktestCmd(a *app) *cobra.Command {
	var (
		start, end  string
		holdingDays []int
	)
	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Run the filter historically and measure forward returns",
		RunE: func(cmd *cobra.Command, args []string) error {
			if start == "" || end == "" {
				return errors.New("--start and --end are required")
			}
			c, err := a.store.LoadFilters()
			if err != nil {
				return err
			}
			req := api.BacktestRequest{
				StartDate:    start,
				EndDate:      end,
				FilterParams: c.Filters().Params(),
				HoldingDays:  holdingDays,
			}
			ctx, cancel := a.ctx()
			defer cancel()
			resp, err := a.client.Backtest(ctx, req)
			if err != nil {
				return err
			}
			return a.render(render.BacktestTable(resp))
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD")
	cmd.Flags().IntSliceVar(&holdingDays, "holding-days", []int{1, 3, 5, 10}, "holding periods to measure")
	return cmd
}
