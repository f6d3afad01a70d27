package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/twsefilter/tws/pkg/tws/api"
	"github.com/twsefilter/tws/pkg/tws/render"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		dates         []string
		minOccurrence int
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Find stocks matching the filter on several dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(dates) < 2 {
				return errors.New("at least two --date flags are required")
			}
			c, err := a.store.LoadFilters()
			if err != nil {
				return err
			}
			req := api.BatchCompareRequest{
				Dates:         dates,
				FilterParams:  c.Filters().Params(),
				MinOccurrence: minOccurrence,
			}
			ctx, cancel := a.ctx()
			defer cancel()
			resp, err := a.client.BatchCompare(ctx, req)
			if err != nil {
				return err
			}
			return a.render(render.CompareTable(resp))
		},
	}
	cmd.Flags().StringArrayVar(&dates, "date", nil, "trading date YYYY-MM-DD (repeatable, min 2)")
	cmd.Flags().IntVar(&minOccurrence, "min-occurrence", 2, "minimum number of matching dates")
	return cmd
}
