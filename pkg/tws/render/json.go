package render

import (
	"encoding/json"
	"io"
)

// jsonModel is the output shape for JSONRenderer.
type jsonModel struct {
	Title   string           `json:"title,omitempty"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// JSONRenderer emits the table as machine-readable JSON.
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(w io.Writer, t Table, opts Options) error {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = c.Key
	}
	out := jsonModel{Title: t.Title, Columns: cols, Rows: t.Rows}
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
