package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/twsefilter/tws/pkg/tws/api"
	"github.com/twsefilter/tws/pkg/tws/render"
)

// filterFlags mirrors the filter query surface. Values apply only
// when the flag was actually set, so the persisted preference
// defaults stay in charge otherwise.
type filterFlags struct {
	date string

	changeMin, changeMax           float64
	volumeMin, volumeMax           int
	priceMin, priceMax             float64
	consecUpMin, consecUpMax       int
	amplitudeMin, amplitudeMax     float64
	volumeRatioMin, volumeRatioMax float64

	industries string
	includeETF bool

	page, pageSize    int
	sortBy, sortOrder string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.date, "date", "", "trading date YYYY-MM-DD (default latest)")
	fl.Float64Var(&f.changeMin, "change-min", 0, "minimum change percent")
	fl.Float64Var(&f.changeMax, "change-max", 0, "maximum change percent")
	fl.IntVar(&f.volumeMin, "volume-min", 0, "minimum volume in lots")
	fl.IntVar(&f.volumeMax, "volume-max", 0, "maximum volume in lots")
	fl.Float64Var(&f.priceMin, "price-min", 0, "minimum close price")
	fl.Float64Var(&f.priceMax, "price-max", 0, "maximum close price")
	fl.IntVar(&f.consecUpMin, "consecutive-up-min", 0, "minimum consecutive up days")
	fl.IntVar(&f.consecUpMax, "consecutive-up-max", 0, "maximum consecutive up days")
	fl.Float64Var(&f.amplitudeMin, "amplitude-min", 0, "minimum amplitude percent")
	fl.Float64Var(&f.amplitudeMax, "amplitude-max", 0, "maximum amplitude percent")
	fl.Float64Var(&f.volumeRatioMin, "volume-ratio-min", 0, "minimum volume ratio")
	fl.Float64Var(&f.volumeRatioMax, "volume-ratio-max", 0, "maximum volume ratio")
	fl.StringVar(&f.industries, "industries", "", "comma-separated industry labels")
	fl.BoolVar(&f.includeETF, "include-etf", false, "do not exclude ETFs")
	fl.IntVar(&f.page, "page", 0, "page number")
	fl.IntVar(&f.pageSize, "page-size", 0, "rows per page")
	fl.StringVar(&f.sortBy, "sort-by", "", "sort field")
	fl.StringVar(&f.sortOrder, "sort-order", "", "asc or desc")
}

// overlay merges set flags onto the preference-derived query.
func (f *filterFlags) overlay(cmd *cobra.Command, q *api.FilterQuery) {
	set := cmd.Flags().Changed
	if set("date") {
		q.Date = &f.date
	}
	if set("change-min") {
		q.ChangeMin = &f.changeMin
	}
	if set("change-max") {
		q.ChangeMax = &f.changeMax
	}
	if set("volume-min") {
		q.VolumeMin = &f.volumeMin
	}
	if set("volume-max") {
		q.VolumeMax = &f.volumeMax
	}
	if set("price-min") {
		q.PriceMin = &f.priceMin
	}
	if set("price-max") {
		q.PriceMax = &f.priceMax
	}
	if set("consecutive-up-min") {
		q.ConsecutiveUpMin = &f.consecUpMin
	}
	if set("consecutive-up-max") {
		q.ConsecutiveUpMax = &f.consecUpMax
	}
	if set("amplitude-min") {
		q.AmplitudeMin = &f.amplitudeMin
	}
	if set("amplitude-max") {
		q.AmplitudeMax = &f.amplitudeMax
	}
	if set("volume-ratio-min") {
		q.VolumeRatioMin = &f.volumeRatioMin
	}
	if set("volume-ratio-max") {
		q.VolumeRatioMax = &f.volumeRatioMax
	}
	if set("industries") {
		q.Industries = splitTrim(f.industries)
	}
	if set("include-etf") {
		q.ExcludeETF = !f.includeETF
	}
	if set("page") {
		q.Page = f.page
	}
	if set("page-size") {
		q.PageSize = f.pageSize
	}
	if set("sort-by") {
		q.SortBy = f.sortBy
	}
	if set("sort-order") {
		q.SortOrder = f.sortOrder
	}
}

func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func newFilterCmd(a *app) *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List stocks matching the daily range filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.store.LoadFilters()
			if err != nil {
				return err
			}
			q := c.Filters().Query()
			flags.overlay(cmd, &q)

			ctx, cancel := a.ctx()
			defer cancel()
			list, err := a.client.FilterStocks(ctx, q)
			if err != nil {
				return err
			}
			return a.render(render.StockTable(list))
		},
	}
	flags.register(cmd)
	return cmd
}
