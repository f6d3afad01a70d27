package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Export formats supported by the backend.
const (
	ExportCSV   = "csv"
	ExportExcel = "excel"
	ExportJSON  = "json"
)

// Export streams a filtered export into w. The export endpoints reuse
// the filter query surface and respond with the file body directly.
func (c *Client) Export(ctx context.Context, format string, q FilterQuery, w io.Writer) (int64, error) {
	switch format {
	case ExportCSV, ExportExcel, ExportJSON:
	default:
		return 0, fmt.Errorf("unsupported export format %q", format)
	}
	u := c.url("/api/export/"+format, q.values())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request export/%s: %w", format, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, decodeError(resp)
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("stream export/%s: %w", format, err)
	}
	return n, nil
}
