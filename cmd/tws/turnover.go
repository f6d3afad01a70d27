package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twsefilter/tws/pkg/tws/api"
	"github.com/twsefilter/tws/pkg/tws/render"
)

func newTurnoverCmd(a *app) *cobra.Command {
	var (
		date  string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "turnover <preset>",
		Short: "Show a turnover-ranking preset",
		Long: "Show one of the backend's turnover-ranking presets.\n\nPresets:\n  " +
			strings.Join(api.TurnoverPresets, "\n  "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset := args[0]
			known := false
			for _, p := range api.TurnoverPresets {
				if p == preset {
					known = true
					break
				}
			}
			if !known {
				return fmt.Errorf("unknown preset %q (see --help for the list)", preset)
			}
			ctx, cancel := a.ctx()
			defer cancel()
			list, err := a.client.Turnover(ctx, preset, date, limit)
			if err != nil {
				return err
			}
			t := render.TurnoverTable(list)
			t.Title = preset
			return a.render(t)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "trading date (YYYY-MM-DD, default latest)")
	cmd.Flags().IntVar(&limit, "limit", 20, "max rows")
	return cmd
}
