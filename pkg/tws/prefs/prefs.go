package prefs

import (
	"fmt"
	"sync"

	"github.com/twsefilter/tws/pkg/tws/api"
)

// Filters is the persisted default range record for the daily filter.
// Nil bounds are unset and omitted from requests.
type Filters struct {
	ChangeMin *float64
	ChangeMax *float64

	VolumeMin *int
	VolumeMax *int

	PriceMin *float64
	PriceMax *float64

	ConsecutiveUpMin *int
	ConsecutiveUpMax *int

	AmplitudeMin *float64
	AmplitudeMax *float64

	VolumeRatioMin *float64
	VolumeRatioMax *float64

	ExcludeETF bool

	Page     int
	PageSize int

	SortBy    string
	SortOrder string
}

// DefaultFilters returns the documented defaults: change 2-3%, at
// least 500 lots traded, ETFs excluded, first page of 50 sorted by
// change percent descending.
func DefaultFilters() Filters {
	chgMin, chgMax := 2.0, 3.0
	volMin := 500
	return Filters{
		ChangeMin:  &chgMin,
		ChangeMax:  &chgMax,
		VolumeMin:  &volMin,
		ExcludeETF: true,
		Page:       1,
		PageSize:   50,
		SortBy:     "change_percent",
		SortOrder:  "desc",
	}
}

// Patch is a partial filter update. Bound fields distinguish three
// states: omitted (keep), cleared (unset) and set. The scalar fields
// use plain pointers since they cannot be unset.
type Patch struct {
	ChangeMin Opt[float64]
	ChangeMax Opt[float64]

	VolumeMin Opt[int]
	VolumeMax Opt[int]

	PriceMin Opt[float64]
	PriceMax Opt[float64]

	ConsecutiveUpMin Opt[int]
	ConsecutiveUpMax Opt[int]

	AmplitudeMin Opt[float64]
	AmplitudeMax Opt[float64]

	VolumeRatioMin Opt[float64]
	VolumeRatioMax Opt[float64]

	ExcludeETF *bool

	Page     *int
	PageSize *int

	SortBy    *string
	SortOrder *string
}

// Container holds the filter preferences plus the theme flag that
// shares their storage key. Independent of the screen container; the
// two have separate lifecycles.
type Container struct {
	mu      sync.Mutex
	dark    bool
	filters Filters
}

// NewContainer starts from the documented defaults and the dark
// theme.
func NewContainer() *Container {
	return &Container{dark: true, filters: DefaultFilters()}
}

// Apply shallow-merges patch into the current record. Omitted fields
// keep their value; explicitly cleared bounds become unset.
func (c *Container) Apply(p Patch) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.filters

	f.ChangeMin = p.ChangeMin.apply(f.ChangeMin)
	f.ChangeMax = p.ChangeMax.apply(f.ChangeMax)
	f.VolumeMin = p.VolumeMin.apply(f.VolumeMin)
	f.VolumeMax = p.VolumeMax.apply(f.VolumeMax)
	f.PriceMin = p.PriceMin.apply(f.PriceMin)
	f.PriceMax = p.PriceMax.apply(f.PriceMax)
	f.ConsecutiveUpMin = p.ConsecutiveUpMin.apply(f.ConsecutiveUpMin)
	f.ConsecutiveUpMax = p.ConsecutiveUpMax.apply(f.ConsecutiveUpMax)
	f.AmplitudeMin = p.AmplitudeMin.apply(f.AmplitudeMin)
	f.AmplitudeMax = p.AmplitudeMax.apply(f.AmplitudeMax)
	f.VolumeRatioMin = p.VolumeRatioMin.apply(f.VolumeRatioMin)
	f.VolumeRatioMax = p.VolumeRatioMax.apply(f.VolumeRatioMax)

	if p.ExcludeETF != nil {
		f.ExcludeETF = *p.ExcludeETF
	}
	if p.Page != nil {
		if *p.Page < 1 {
			return fmt.Errorf("page must be >= 1, got %d", *p.Page)
		}
		f.Page = *p.Page
	}
	if p.PageSize != nil {
		if *p.PageSize < 1 {
			return fmt.Errorf("page size must be >= 1, got %d", *p.PageSize)
		}
		f.PageSize = *p.PageSize
	}
	if p.SortBy != nil {
		f.SortBy = *p.SortBy
	}
	if p.SortOrder != nil {
		switch *p.SortOrder {
		case "asc", "desc":
			f.SortOrder = *p.SortOrder
		default:
			return fmt.Errorf("sort order must be asc or desc, got %q", *p.SortOrder)
		}
	}

	c.filters = f
	return nil
}

// Reset restores the documented defaults. The theme flag is not part
// of the filter record and survives.
func (c *Container) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = DefaultFilters()
}

// Filters returns a copy of the current record.
func (c *Container) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// Dark reports the persisted theme flag.
func (c *Container) Dark() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dark
}

// SetDark flips the persisted theme flag.
func (c *Container) SetDark(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dark = v
}

// Query projects the record onto the filter endpoint's query surface.
func (f Filters) Query() api.FilterQuery {
	return api.FilterQuery{
		ChangeMin:        f.ChangeMin,
		ChangeMax:        f.ChangeMax,
		VolumeMin:        f.VolumeMin,
		VolumeMax:        f.VolumeMax,
		PriceMin:         f.PriceMin,
		PriceMax:         f.PriceMax,
		ConsecutiveUpMin: f.ConsecutiveUpMin,
		ConsecutiveUpMax: f.ConsecutiveUpMax,
		AmplitudeMin:     f.AmplitudeMin,
		AmplitudeMax:     f.AmplitudeMax,
		VolumeRatioMin:   f.VolumeRatioMin,
		VolumeRatioMax:   f.VolumeRatioMax,
		ExcludeETF:       f.ExcludeETF,
		ExcludeSpecial:   true,
		Page:             f.Page,
		PageSize:         f.PageSize,
		SortBy:           f.SortBy,
		SortOrder:        f.SortOrder,
	}
}

// Params projects the record onto the JSON filter block used by batch
// compare and backtest bodies, which require the change and volume
// bounds.
func (f Filters) Params() api.FilterParams {
	p := api.FilterParams{
		ChangeMin:  2.0,
		ChangeMax:  3.0,
		VolumeMin:  500,
		VolumeMax:  f.VolumeMax,
		PriceMin:   f.PriceMin,
		PriceMax:   f.PriceMax,
		ExcludeETF: f.ExcludeETF,
	}
	if f.ChangeMin != nil {
		p.ChangeMin = *f.ChangeMin
	}
	if f.ChangeMax != nil {
		p.ChangeMax = *f.ChangeMax
	}
	if f.VolumeMin != nil {
		p.VolumeMin = *f.VolumeMin
	}
	p.ConsecutiveUpMin = f.ConsecutiveUpMin
	return p
}
