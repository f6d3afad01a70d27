package render

import "io"

// Column is one table column. Numeric columns right-align.
type Column struct {
	Key     string
	Label   string
	Numeric bool
}

// Table is the renderer-agnostic result model: ordered columns and
// sparse rows keyed by column. Missing values render as placeholders.
type Table struct {
	Title   string
	Columns []Column
	Rows    []map[string]any
	Footer  string
}

// Options control output shape.
type Options struct {
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
}

// Renderer writes a table to an output writer.
type Renderer interface {
	Render(w io.Writer, t Table, opts Options) error
}
