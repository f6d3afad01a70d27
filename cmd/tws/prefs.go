package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twsefilter/tws/pkg/tws/prefs"
	"github.com/twsefilter/tws/pkg/tws/render"
)

func newPrefsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage saved filter preferences",
	}
	cmd.AddCommand(newPrefsShowCmd(a), newPrefsSetCmd(a), newPrefsClearCmd(a), newPrefsResetCmd(a))
	return cmd
}

func prefsTable(c *prefs.Container) render.Table {
	f := c.Filters()
	theme := "light"
	if c.Dark() {
		theme = "dark"
	}
	rows := []map[string]any{}
	add := func(key string, v any) {
		rows = append(rows, map[string]any{"setting": key, "value": render.FormatValue(v)})
	}
	add("change-min", f.ChangeMin)
	add("change-max", f.ChangeMax)
	add("volume-min", f.VolumeMin)
	add("volume-max", f.VolumeMax)
	add("price-min", f.PriceMin)
	add("price-max", f.PriceMax)
	add("consecutive-up-min", f.ConsecutiveUpMin)
	add("consecutive-up-max", f.ConsecutiveUpMax)
	add("amplitude-min", f.AmplitudeMin)
	add("amplitude-max", f.AmplitudeMax)
	add("volume-ratio-min", f.VolumeRatioMin)
	add("volume-ratio-max", f.VolumeRatioMax)
	add("exclude-etf", f.ExcludeETF)
	add("page", f.Page)
	add("page-size", f.PageSize)
	add("sort-by", f.SortBy)
	add("sort-order", f.SortOrder)
	add("theme", theme)
	return render.Table{
		Columns: []render.Column{
			{Key: "setting", Label: "設定"},
			{Key: "value", Label: "值"},
		},
		Rows: rows,
	}
}

func newPrefsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved filter preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.store.LoadFilters()
			if err != nil {
				return err
			}
			return a.render(prefsTable(c))
		},
	}
}

func newPrefsSetCmd(a *app) *cobra.Command {
	var (
		changeMin, changeMax           float64
		volumeMin, volumeMax           int
		priceMin, priceMax             float64
		upMin, upMax                   int
		amplitudeMin, amplitudeMax     float64
		volumeRatioMin, volumeRatioMax float64
		excludeETF                     bool
		page, pageSize                 int
		sortBy, sortOrder              string
		theme                          string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update saved filter preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.store.LoadFilters()
			if err != nil {
				return err
			}
			var p prefs.Patch
			fl := cmd.Flags()
			if fl.Changed("change-min") {
				p.ChangeMin = prefs.Set(changeMin)
			}
			if fl.Changed("change-max") {
				p.ChangeMax = prefs.Set(changeMax)
			}
			if fl.Changed("volume-min") {
				p.VolumeMin = prefs.Set(volumeMin)
			}
			if fl.Changed("volume-max") {
				p.VolumeMax = prefs.Set(volumeMax)
			}
			if fl.Changed("price-min") {
				p.PriceMin = prefs.Set(priceMin)
			}
			if fl.Changed("price-max") {
				p.PriceMax = prefs.Set(priceMax)
			}
			if fl.Changed("consecutive-up-min") {
				p.ConsecutiveUpMin = prefs.Set(upMin)
			}
			if fl.Changed("consecutive-up-max") {
				p.ConsecutiveUpMax = prefs.Set(upMax)
			}
			if fl.Changed("amplitude-min") {
				p.AmplitudeMin = prefs.Set(amplitudeMin)
			}
			if fl.Changed("amplitude-max") {
				p.AmplitudeMax = prefs.Set(amplitudeMax)
			}
			if fl.Changed("volume-ratio-min") {
				p.VolumeRatioMin = prefs.Set(volumeRatioMin)
			}
			if fl.Changed("volume-ratio-max") {
				p.VolumeRatioMax = prefs.Set(volumeRatioMax)
			}
			if fl.Changed("exclude-etf") {
				p.ExcludeETF = &excludeETF
			}
			if fl.Changed("page") {
				p.Page = &page
			}
			if fl.Changed("page-size") {
				p.PageSize = &pageSize
			}
			if fl.Changed("sort-by") {
				p.SortBy = &sortBy
			}
			if fl.Changed("sort-order") {
				p.SortOrder = &sortOrder
			}
			if err := c.Apply(p); err != nil {
				return err
			}
			if fl.Changed("theme") {
				switch theme {
				case "dark":
					c.SetDark(true)
				case "light":
					c.SetDark(false)
				default:
					return fmt.Errorf("theme must be dark or light, got %q", theme)
				}
			}
			if err := a.store.SaveFilters(c); err != nil {
				return err
			}
			return a.render(prefsTable(c))
		},
	}
	fl := cmd.Flags()
	fl.Float64Var(&changeMin, "change-min", 0, "minimum change percent")
	fl.Float64Var(&changeMax, "change-max", 0, "maximum change percent")
	fl.IntVar(&volumeMin, "volume-min", 0, "minimum volume in lots")
	fl.IntVar(&volumeMax, "volume-max", 0, "maximum volume in lots")
	fl.Float64Var(&priceMin, "price-min", 0, "minimum close price")
	fl.Float64Var(&priceMax, "price-max", 0, "maximum close price")
	fl.IntVar(&upMin, "consecutive-up-min", 0, "minimum consecutive up days")
	fl.IntVar(&upMax, "consecutive-up-max", 0, "maximum consecutive up days")
	fl.Float64Var(&amplitudeMin, "amplitude-min", 0, "minimum amplitude percent")
	fl.Float64Var(&amplitudeMax, "amplitude-max", 0, "maximum amplitude percent")
	fl.Float64Var(&volumeRatioMin, "volume-ratio-min", 0, "minimum volume ratio")
	fl.Float64Var(&volumeRatioMax, "volume-ratio-max", 0, "maximum volume ratio")
	fl.BoolVar(&excludeETF, "exclude-etf", true, "exclude ETFs")
	fl.IntVar(&page, "page", 1, "page number")
	fl.IntVar(&pageSize, "page-size", 50, "rows per page")
	fl.StringVar(&sortBy, "sort-by", "change_percent", "sort column")
	fl.StringVar(&sortOrder, "sort-order", "desc", "asc or desc")
	fl.StringVar(&theme, "theme", "dark", "dark or light")
	return cmd
}

// clearable maps the CLI names accepted by "prefs clear" onto patch
// fields. Only the range bounds can be unset; the scalar settings
// always hold a value.
var clearable = map[string]func(*prefs.Patch){
	"change-min":         func(p *prefs.Patch) { p.ChangeMin = prefs.Clear[float64]() },
	"change-max":         func(p *prefs.Patch) { p.ChangeMax = prefs.Clear[float64]() },
	"volume-min":         func(p *prefs.Patch) { p.VolumeMin = prefs.Clear[int]() },
	"volume-max":         func(p *prefs.Patch) { p.VolumeMax = prefs.Clear[int]() },
	"price-min":          func(p *prefs.Patch) { p.PriceMin = prefs.Clear[float64]() },
	"price-max":          func(p *prefs.Patch) { p.PriceMax = prefs.Clear[float64]() },
	"consecutive-up-min": func(p *prefs.Patch) { p.ConsecutiveUpMin = prefs.Clear[int]() },
	"consecutive-up-max": func(p *prefs.Patch) { p.ConsecutiveUpMax = prefs.Clear[int]() },
	"amplitude-min":      func(p *prefs.Patch) { p.AmplitudeMin = prefs.Clear[float64]() },
	"amplitude-max":      func(p *prefs.Patch) { p.AmplitudeMax = prefs.Clear[float64]() },
	"volume-ratio-min":   func(p *prefs.Patch) { p.VolumeRatioMin = prefs.Clear[float64]() },
	"volume-ratio-max":   func(p *prefs.Patch) { p.VolumeRatioMax = prefs.Clear[float64]() },
}

func newPrefsClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <bound>...",
		Short: "Unset one or more saved range bounds",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p prefs.Patch
			for _, name := range args {
				set, ok := clearable[name]
				if !ok {
					return fmt.Errorf("unknown bound %q", name)
				}
				set(&p)
			}
			c, err := a.store.LoadFilters()
			if err != nil {
				return err
			}
			if err := c.Apply(p); err != nil {
				return err
			}
			if err := a.store.SaveFilters(c); err != nil {
				return err
			}
			return a.render(prefsTable(c))
		},
	}
}

func newPrefsResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default filter preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.store.LoadFilters()
			if err != nil {
				return err
			}
			c.Reset()
			if err := a.store.SaveFilters(c); err != nil {
				return err
			}
			return a.render(prefsTable(c))
		},
	}
}

func newChartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Manage saved chart settings",
	}
	cmd.AddCommand(newChartShowCmd(a), newChartSetCmd(a), newChartResetCmd(a))
	return cmd
}

func chartTable(s prefs.ChartSettings) render.Table {
	rows := []map[string]any{}
	add := func(key string, v any) {
		rows = append(rows, map[string]any{"setting": key, "value": render.FormatValue(v)})
	}
	add("ma5", s.ShowMA5)
	add("ma10", s.ShowMA10)
	add("ma20", s.ShowMA20)
	add("ma60", s.ShowMA60)
	add("macd", fmt.Sprintf("%d/%d/%d", s.MACD.Fast, s.MACD.Slow, s.MACD.Signal))
	add("kd", fmt.Sprintf("%d/%d/%d", s.KD.RSV, s.KD.K, s.KD.D))
	add("rsi-period", s.RSIPeriod)
	add("bollinger", fmt.Sprintf("%d/%.1f", s.Bollinger.Period, s.Bollinger.StdDev))
	return render.Table{
		Columns: []render.Column{
			{Key: "setting", Label: "設定"},
			{Key: "value", Label: "值"},
		},
		Rows: rows,
	}
}

func newChartShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved chart settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.store.LoadChart()
			if err != nil {
				return err
			}
			return a.render(chartTable(c.Settings()))
		},
	}
}

func newChartSetCmd(a *app) *cobra.Command {
	var (
		ma5, ma10, ma20, ma60          bool
		macdFast, macdSlow, macdSignal int
		kdRSV, kdK, kdD                int
		rsiPeriod, bollPeriod          int
		bollStd                        float64
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update saved chart settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.store.LoadChart()
			if err != nil {
				return err
			}
			s := c.Settings()
			fl := cmd.Flags()
			if fl.Changed("ma5") {
				s.ShowMA5 = ma5
			}
			if fl.Changed("ma10") {
				s.ShowMA10 = ma10
			}
			if fl.Changed("ma20") {
				s.ShowMA20 = ma20
			}
			if fl.Changed("ma60") {
				s.ShowMA60 = ma60
			}
			if fl.Changed("macd-fast") {
				s.MACD.Fast = macdFast
			}
			if fl.Changed("macd-slow") {
				s.MACD.Slow = macdSlow
			}
			if fl.Changed("macd-signal") {
				s.MACD.Signal = macdSignal
			}
			if fl.Changed("kd-rsv") {
				s.KD.RSV = kdRSV
			}
			if fl.Changed("kd-k") {
				s.KD.K = kdK
			}
			if fl.Changed("kd-d") {
				s.KD.D = kdD
			}
			if fl.Changed("rsi-period") {
				s.RSIPeriod = rsiPeriod
			}
			if fl.Changed("boll-period") {
				s.Bollinger.Period = bollPeriod
			}
			if fl.Changed("boll-std") {
				s.Bollinger.StdDev = bollStd
			}
			c.Replace(s)
			if err := a.store.SaveChart(c); err != nil {
				return err
			}
			return a.render(chartTable(c.Settings()))
		},
	}
	fl := cmd.Flags()
	fl.BoolVar(&ma5, "ma5", true, "show the 5-day moving average")
	fl.BoolVar(&ma10, "ma10", true, "show the 10-day moving average")
	fl.BoolVar(&ma20, "ma20", true, "show the 20-day moving average")
	fl.BoolVar(&ma60, "ma60", false, "show the 60-day moving average")
	fl.IntVar(&macdFast, "macd-fast", 12, "MACD fast EMA period")
	fl.IntVar(&macdSlow, "macd-slow", 26, "MACD slow EMA period")
	fl.IntVar(&macdSignal, "macd-signal", 9, "MACD signal period")
	fl.IntVar(&kdRSV, "kd-rsv", 9, "KD RSV period")
	fl.IntVar(&kdK, "kd-k", 3, "KD %K smoothing")
	fl.IntVar(&kdD, "kd-d", 3, "KD %D smoothing")
	fl.IntVar(&rsiPeriod, "rsi-period", 14, "RSI period")
	fl.IntVar(&bollPeriod, "boll-period", 20, "Bollinger band period")
	fl.Float64Var(&bollStd, "boll-std", 2, "Bollinger band width in standard deviations")
	return cmd
}

func newChartResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default chart settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.store.LoadChart()
			if err != nil {
				return err
			}
			c.Reset()
			if err := a.store.SaveChart(c); err != nil {
				return err
			}
			return a.render(chartTable(c.Settings()))
		},
	}
}
