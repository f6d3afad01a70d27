package prefs

import "sync"

// MACDParams are the fast/slow/signal EMA periods.
type MACDParams struct {
	Fast   int `yaml:"fast"`
	Slow   int `yaml:"slow"`
	Signal int `yaml:"signal"`
}

// KDParams are the stochastic RSV/K/D smoothing periods.
type KDParams struct {
	RSV int `yaml:"rsv"`
	K   int `yaml:"k"`
	D   int `yaml:"d"`
}

// BollingerParams are the band period and width.
type BollingerParams struct {
	Period int     `yaml:"period"`
	StdDev float64 `yaml:"std_dev"`
}

// ChartSettings are the persisted chart display toggles and indicator
// parameter sets. They live under their own storage key, independent
// of the filter preferences.
type ChartSettings struct {
	ShowMA5  bool `yaml:"show_ma5"`
	ShowMA10 bool `yaml:"show_ma10"`
	ShowMA20 bool `yaml:"show_ma20"`
	ShowMA60 bool `yaml:"show_ma60"`

	MACD      MACDParams      `yaml:"macd"`
	KD        KDParams        `yaml:"kd"`
	RSIPeriod int             `yaml:"rsi_period"`
	Bollinger BollingerParams `yaml:"bollinger"`
}

// DefaultChartSettings returns the stock parameter sets: MACD
// 12/26/9, KD 9/3/3, RSI 14, Bollinger 20 with 2 standard deviations.
func DefaultChartSettings() ChartSettings {
	return ChartSettings{
		ShowMA5:   true,
		ShowMA10:  true,
		ShowMA20:  true,
		ShowMA60:  false,
		MACD:      MACDParams{Fast: 12, Slow: 26, Signal: 9},
		KD:        KDParams{RSV: 9, K: 3, D: 3},
		RSIPeriod: 14,
		Bollinger: BollingerParams{Period: 20, StdDev: 2},
	}
}

// ChartContainer guards the settings record.
type ChartContainer struct {
	mu       sync.Mutex
	settings ChartSettings
}

func NewChartContainer() *ChartContainer {
	return &ChartContainer{settings: DefaultChartSettings()}
}

// Settings returns a copy of the current record.
func (c *ChartContainer) Settings() ChartSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// Replace swaps in a whole settings record.
func (c *ChartContainer) Replace(s ChartSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = s
}

// Reset restores the default parameter sets.
func (c *ChartContainer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = DefaultChartSettings()
}
