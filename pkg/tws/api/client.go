package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the TWSE stock-filter backend. All computation
// (screening, indicators, backtests) happens server side; this client
// only builds requests and decodes responses.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

// getRetries is the attempt count for read-only GETs. Mutating calls
// and the screen path are fire-once.
const getRetries = 2

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *Client) url(p string, q url.Values) string {
	u := c.baseURL + p
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// decodeError turns a non-2xx response into a ServerError, preferring
// the body's detail message: FastAPI uses {detail}, the envelope uses
// {error} or {message}.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var payload struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	detail := payload.Detail
	if detail == "" {
		detail = payload.Error
	}
	if detail == "" {
		detail = payload.Message
	}
	return &ServerError{StatusCode: resp.StatusCode, Detail: detail}
}

// getRaw performs a GET and decodes the body directly into out,
// retrying once on transport failure.
func (c *Client) getRaw(ctx context.Context, path string, q url.Values, out any) error {
	u := c.url(path, q)
	var lastErr error
	for attempt := 1; attempt <= getRetries; attempt++ {
		start := time.Now()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		resp, err := c.httpc.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request %s: %w", path, err)
			if ctx.Err() != nil {
				return lastErr
			}
			c.logger.Debug("retrying GET", slog.String("path", path), slog.Int("attempt", attempt))
			continue
		}
		c.logger.Debug("GET", slog.String("url", u),
			slog.Int("status", resp.StatusCode),
			slog.Duration("elapsed", time.Since(start)))
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			defer resp.Body.Close()
			return decodeError(resp)
		}
		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		return nil
	}
	return lastErr
}

// get performs an enveloped GET: the 2xx body is {success, data, ...}
// and data is unwrapped into out. A missing data field is a hard
// contract violation.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	var env envelope
	if err := c.getRaw(ctx, path, q, &env); err != nil {
		return err
	}
	return unwrap(env, path, out)
}

func unwrap(env envelope, path string, out any) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		if env.Error != "" {
			return &ServerError{StatusCode: http.StatusOK, Detail: env.Error}
		}
		return fmt.Errorf("%s: %w", path, ErrMissingData)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", path, err)
	}
	return nil
}

// send issues a fire-once request with a JSON body (or none) and
// decodes the raw 2xx body into out.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		rd = bytes.NewReader(b)
	}
	u := c.url(path, nil)
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()
	c.logger.Debug(method, slog.String("url", u),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// sendEnveloped issues a fire-once request whose 2xx body is wrapped
// in the standard envelope.
func (c *Client) sendEnveloped(ctx context.Context, method, path string, body, out any) error {
	var env envelope
	if err := c.send(ctx, method, path, body, &env); err != nil {
		return err
	}
	return unwrap(env, path, out)
}

// BaseURL reports the configured backend address.
func (c *Client) BaseURL() string { return c.baseURL }
