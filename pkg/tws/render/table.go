package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableRenderer writes a colored terminal table.
type TableRenderer struct{}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, t Table, opts Options) error {
	if strings.TrimSpace(t.Title) != "" {
		fmt.Fprintln(w, text.Bold.Sprint(t.Title))
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false

	hdr := make(table.Row, len(t.Columns))
	for i, c := range t.Columns {
		label := c.Label
		if label == "" {
			label = strings.ToUpper(c.Key)
		}
		hdr[i] = label
	}
	tw.AppendHeader(hdr)

	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	cfgs := make([]table.ColumnConfig, 0, len(t.Columns))
	for i, c := range t.Columns {
		cfg := table.ColumnConfig{Number: i + 1, WidthMax: maxWidth}
		if c.Numeric {
			cfg.Align = text.AlignRight
			cfg.AlignHeader = text.AlignRight
		}
		cfgs = append(cfgs, cfg)
	}
	tw.SetColumnConfigs(cfgs)

	for _, m := range t.Rows {
		row := make(table.Row, len(t.Columns))
		for i, c := range t.Columns {
			val := FormatValue(m[c.Key])
			if opts.Color && changeColumn(c.Key) && val != Placeholder {
				if strings.HasPrefix(val, "-") {
					val = text.Colors{text.FgRed}.Sprint(val)
				} else if !zeroish(val) {
					val = text.Colors{text.FgGreen}.Sprint(val)
				}
			}
			row[i] = val
		}
		tw.AppendRow(row)
	}

	tw.Render()
	if t.Footer != "" {
		fmt.Fprintln(w, t.Footer)
	}
	return nil
}

// changeColumn reports whether a key carries a signed change figure
// that should be colored by direction.
func changeColumn(key string) bool {
	return strings.Contains(key, "change") || strings.HasSuffix(key, "_buy") ||
		key == "avg_return" || key == "expected_value"
}

func zeroish(s string) bool {
	switch strings.TrimSuffix(s, "%") {
	case "0", "0.0", "0.00":
		return true
	}
	return false
}
