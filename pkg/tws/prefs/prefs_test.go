package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDefaultFilters(t *testing.T) {
	f := DefaultFilters()
	require.NotNil(t, f.ChangeMin)
	assert.Equal(t, 2.0, *f.ChangeMin)
	require.NotNil(t, f.ChangeMax)
	assert.Equal(t, 3.0, *f.ChangeMax)
	require.NotNil(t, f.VolumeMin)
	assert.Equal(t, 500, *f.VolumeMin)
	assert.Nil(t, f.VolumeMax)
	assert.Nil(t, f.PriceMin)
	assert.True(t, f.ExcludeETF)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 50, f.PageSize)
	assert.Equal(t, "change_percent", f.SortBy)
	assert.Equal(t, "desc", f.SortOrder)
}

func TestApplyDistinguishesOmitAndClear(t *testing.T) {
	c := NewContainer()

	// Omitted fields keep their value.
	require.NoError(t, c.Apply(Patch{PriceMin: Set(100.0)}))
	f := c.Filters()
	require.NotNil(t, f.VolumeMin)
	assert.Equal(t, 500, *f.VolumeMin)
	require.NotNil(t, f.PriceMin)
	assert.Equal(t, 100.0, *f.PriceMin)

	// An explicit clear unsets the bound.
	require.NoError(t, c.Apply(Patch{VolumeMin: Clear[int]()}))
	f = c.Filters()
	assert.Nil(t, f.VolumeMin)
	require.NotNil(t, f.PriceMin) // untouched by the clear

	// Setting again after a clear works.
	require.NoError(t, c.Apply(Patch{VolumeMin: Set(1000)}))
	f = c.Filters()
	require.NotNil(t, f.VolumeMin)
	assert.Equal(t, 1000, *f.VolumeMin)
}

func TestApplyScalarValidation(t *testing.T) {
	c := NewContainer()
	assert.Error(t, c.Apply(Patch{Page: ptr(0)}))
	assert.Error(t, c.Apply(Patch{PageSize: ptr(-5)}))
	assert.Error(t, c.Apply(Patch{SortOrder: ptr("sideways")}))

	// Failed patches leave the record untouched.
	f := c.Filters()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 50, f.PageSize)
	assert.Equal(t, "desc", f.SortOrder)

	require.NoError(t, c.Apply(Patch{Page: ptr(3), SortOrder: ptr("asc")}))
	f = c.Filters()
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, "asc", f.SortOrder)
}

func TestResetKeepsTheme(t *testing.T) {
	c := NewContainer()
	c.SetDark(false)
	require.NoError(t, c.Apply(Patch{ChangeMin: Clear[float64](), Page: ptr(7)}))

	c.Reset()

	f := c.Filters()
	require.NotNil(t, f.ChangeMin)
	assert.Equal(t, 2.0, *f.ChangeMin)
	assert.Equal(t, 1, f.Page)
	assert.False(t, c.Dark()) // theme is not part of the filter record
}

func TestQueryProjection(t *testing.T) {
	f := DefaultFilters()
	q := f.Query()
	require.NotNil(t, q.ChangeMin)
	assert.Equal(t, 2.0, *q.ChangeMin)
	assert.True(t, q.ExcludeETF)
	assert.True(t, q.ExcludeSpecial)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, "change_percent", q.SortBy)
}

func TestParamsProjectionAppliesDefaults(t *testing.T) {
	// Cleared bounds fall back to the documented request defaults.
	p := Filters{ExcludeETF: true}.Params()
	assert.Equal(t, 2.0, p.ChangeMin)
	assert.Equal(t, 3.0, p.ChangeMax)
	assert.Equal(t, 500, p.VolumeMin)
	assert.True(t, p.ExcludeETF)

	f := DefaultFilters()
	f.ChangeMin = ptr(5.0)
	f.VolumeMin = ptr(2000)
	p = f.Params()
	assert.Equal(t, 5.0, p.ChangeMin)
	assert.Equal(t, 2000, p.VolumeMin)
}

func TestStoreFiltersRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	c := NewContainer()
	c.SetDark(false)
	require.NoError(t, c.Apply(Patch{
		ChangeMin: Set(4.5),
		VolumeMin: Clear[int](),
		PriceMax:  Set(200.0),
		Page:      ptr(2),
		SortOrder: ptr("asc"),
	}))
	require.NoError(t, s.SaveFilters(c))

	got, err := s.LoadFilters()
	require.NoError(t, err)
	f := got.Filters()
	require.NotNil(t, f.ChangeMin)
	assert.Equal(t, 4.5, *f.ChangeMin)
	assert.Nil(t, f.VolumeMin)
	require.NotNil(t, f.PriceMax)
	assert.Equal(t, 200.0, *f.PriceMax)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, "asc", f.SortOrder)
	assert.False(t, got.Dark())
}

func TestLoadFiltersMissingFileYieldsDefaults(t *testing.T) {
	s := NewStore(t.TempDir())
	c, err := s.LoadFilters()
	require.NoError(t, err)
	assert.Equal(t, DefaultFilters(), c.Filters())
	assert.True(t, c.Dark())
}

func TestLoadFiltersCorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "filters.yaml"), []byte("{not yaml: ["), 0o644))
	_, err := s.LoadFilters()
	assert.Error(t, err)
}

func TestStoreChartRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	c := NewChartContainer()
	set := c.Settings()
	set.ShowMA60 = true
	set.MACD.Fast = 8
	set.Bollinger.StdDev = 2.5
	c.Replace(set)
	require.NoError(t, s.SaveChart(c))

	got, err := s.LoadChart()
	require.NoError(t, err)
	gs := got.Settings()
	assert.True(t, gs.ShowMA60)
	assert.Equal(t, 8, gs.MACD.Fast)
	assert.Equal(t, 2.5, gs.Bollinger.StdDev)
	// Untouched parameters keep their defaults.
	assert.Equal(t, 26, gs.MACD.Slow)
	assert.Equal(t, 9, gs.KD.RSV)
}

func TestLoadChartMissingFileYieldsDefaults(t *testing.T) {
	s := NewStore(t.TempDir())
	c, err := s.LoadChart()
	require.NoError(t, err)
	assert.Equal(t, DefaultChartSettings(), c.Settings())
}
