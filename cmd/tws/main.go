package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/twsefilter/tws/pkg/tws/api"
	"github.com/twsefilter/tws/pkg/tws/config"
	"github.com/twsefilter/tws/pkg/tws/prefs"
	"github.com/twsefilter/tws/pkg/tws/render"
)

// app carries the wired-up pieces every subcommand needs.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	client *api.Client
	store  *prefs.Store

	maxColWidth int
}

func (a *app) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.cfg.Timeout)
}

func (a *app) render(t render.Table) error {
	var r render.Renderer
	if a.cfg.Output == "json" {
		r = render.NewJSONRenderer()
	} else {
		r = render.NewTableRenderer()
	}
	return r.Render(os.Stdout, t, render.Options{
		Color:       a.cfg.Color,
		PrettyJSON:  true,
		MaxColWidth: a.maxColWidth,
	})
}

func main() {
	_ = godotenv.Load() // best-effort: .env is optional

	a := &app{}
	v := viper.New()

	root := &cobra.Command{
		Use:           "tws",
		Short:         "Screen, chart and compare TWSE stocks from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = config.NewLogger(cfg.LogLevel)
			a.client = api.NewClient(cfg.BaseURL, cfg.Timeout, a.logger)

			dir, err := config.Dir()
			if err != nil {
				return err
			}
			a.store = prefs.NewStore(dir)

			if a.maxColWidth <= 0 {
				a.maxColWidth = 40
				if w := detectTerminalWidth(); w > 0 && w < 100 {
					a.maxColWidth = 24
				}
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("base-url", "", "backend address (default http://127.0.0.1:8000)")
	pf.Duration("timeout", 0, "request timeout")
	pf.String("output", "", "output format: table or json")
	pf.Bool("color", true, "colorize change columns")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.IntVar(&a.maxColWidth, "max-col-width", 0, "maximum column width")

	for flag, key := range map[string]string{
		"base-url":  "base_url",
		"timeout":   "timeout",
		"output":    "output",
		"color":     "color",
		"log-level": "log_level",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	root.AddCommand(
		newScreenCmd(a),
		newFilterCmd(a),
		newDetailCmd(a),
		newHistoryCmd(a),
		newKlineCmd(a),
		newIndicatorsCmd(a),
		newTradingDateCmd(a),
		newIndustriesCmd(a),
		newCompareCmd(a),
		newBacktestCmd(a),
		newWatchlistCmd(a),
		newFavoritesCmd(a),
		newQueriesCmd(a),
		newExportCmd(a),
		newTurnoverCmd(a),
		newStrategiesCmd(a),
		newSearchCmd(a),
		newPrefsCmd(a),
		newChartCmd(a),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
