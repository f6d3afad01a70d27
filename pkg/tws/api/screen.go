package api

import (
	"context"
	"net/http"
)

// Screen runs a multi-condition screen. The response is not
// enveloped; the backend returns the ScreenResponse body directly.
func (c *Client) Screen(ctx context.Context, req ScreenRequest) (*ScreenResponse, error) {
	var out ScreenResponse
	if err := c.send(ctx, http.MethodPost, "/api/v1/screen", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
