package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Storage keys. Filter preferences and the theme flag share one file;
// chart settings get their own. Nothing else persists.
const (
	filtersFile = "filters.yaml"
	chartFile   = "chart.yaml"
)

// filtersRecord is the explicit persisted subset for the filter
// preference container. The container itself never hits disk.
type filtersRecord struct {
	DarkTheme bool `yaml:"dark_theme"`

	ChangeMin *float64 `yaml:"change_min"`
	ChangeMax *float64 `yaml:"change_max"`

	VolumeMin *int `yaml:"volume_min"`
	VolumeMax *int `yaml:"volume_max"`

	PriceMin *float64 `yaml:"price_min"`
	PriceMax *float64 `yaml:"price_max"`

	ConsecutiveUpMin *int `yaml:"consecutive_up_min"`
	ConsecutiveUpMax *int `yaml:"consecutive_up_max"`

	AmplitudeMin *float64 `yaml:"amplitude_min"`
	AmplitudeMax *float64 `yaml:"amplitude_max"`

	VolumeRatioMin *float64 `yaml:"volume_ratio_min"`
	VolumeRatioMax *float64 `yaml:"volume_ratio_max"`

	ExcludeETF bool `yaml:"exclude_etf"`

	Page     int `yaml:"page"`
	PageSize int `yaml:"page_size"`

	SortBy    string `yaml:"sort_by"`
	SortOrder string `yaml:"sort_order"`
}

// Store reads and writes the two preference files under dir.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// LoadFilters restores the filter preference container. A missing
// file yields the defaults; a corrupt file is an error rather than a
// silent reset.
func (s *Store) LoadFilters() (*Container, error) {
	c := NewContainer()
	path := filepath.Join(s.dir, filtersFile)
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var rec filtersRecord
	if err := yaml.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	f := Filters{
		ChangeMin:        rec.ChangeMin,
		ChangeMax:        rec.ChangeMax,
		VolumeMin:        rec.VolumeMin,
		VolumeMax:        rec.VolumeMax,
		PriceMin:         rec.PriceMin,
		PriceMax:         rec.PriceMax,
		ConsecutiveUpMin: rec.ConsecutiveUpMin,
		ConsecutiveUpMax: rec.ConsecutiveUpMax,
		AmplitudeMin:     rec.AmplitudeMin,
		AmplitudeMax:     rec.AmplitudeMax,
		VolumeRatioMin:   rec.VolumeRatioMin,
		VolumeRatioMax:   rec.VolumeRatioMax,
		ExcludeETF:       rec.ExcludeETF,
		Page:             rec.Page,
		PageSize:         rec.PageSize,
		SortBy:           rec.SortBy,
		SortOrder:        rec.SortOrder,
	}
	// Scalars written by older versions may be absent.
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 50
	}
	if f.SortBy == "" {
		f.SortBy = "change_percent"
	}
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		f.SortOrder = "desc"
	}
	c.mu.Lock()
	c.dark = rec.DarkTheme
	c.filters = f
	c.mu.Unlock()
	return c, nil
}

// SaveFilters writes the complete filter record and theme flag.
func (s *Store) SaveFilters(c *Container) error {
	f := c.Filters()
	rec := filtersRecord{
		DarkTheme:        c.Dark(),
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
		Page:             f.Page,
		PageSize:         f.PageSize,
		SortBy:           f.SortBy,
		SortOrder:        f.SortOrder,
	}
	return s.write(filtersFile, rec)
}

// LoadChart restores the chart settings container, defaulting when no
// file exists yet.
func (s *Store) LoadChart() (*ChartContainer, error) {
	c := NewChartContainer()
	path := filepath.Join(s.dir, chartFile)
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	set := DefaultChartSettings()
	if err := yaml.Unmarshal(b, &set); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c.Replace(set)
	return c, nil
}

// SaveChart writes the chart settings record.
func (s *Store) SaveChart(c *ChartContainer) error {
	return s.write(chartFile, c.Settings())
}

func (s *Store) write(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.dir, err)
	}
	b, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
