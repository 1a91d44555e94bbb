// Package upstream is the typed client for the records backend's admin REST
// API. The backend owns all restore/retention logic; this client only issues
// requests and maps error payloads.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	basePath       = "/api/v1/admin"
	defaultTimeout = 15 * time.Second
)

// Config carries the explicit dependencies: no ambient storage or env reads.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  zerolog.Logger
}

type Client struct {
	base  string
	token string
	hc    *http.Client
	log   zerolog.Logger
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("upstream: base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:  strings.TrimRight(cfg.BaseURL, "/"),
		token: cfg.Token,
		hc:    &http.Client{Timeout: timeout},
		log:   cfg.Logger,
	}, nil
}

// apiError carries the backend's HTTP status for error mapping upstream.
type apiError struct {
	status  int
	message string
}

func (e apiError) Error() string   { return e.message }
func (e apiError) StatusCode() int { return e.status }

// IsAPIError reports whether err is a backend rejection and returns its
// HTTP status.
func IsAPIError(err error) (int, bool) {
	var ae apiError
	if errors.As(err, &ae) {
		return ae.status, true
	}
	return 0, false
}

// errorPayload matches the backend's error body.
type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) del(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+basePath+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Dur("dur", time.Since(start)).Msg("upstream call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var p errorPayload
	msg := ""
	if json.Unmarshal(b, &p) == nil {
		switch {
		case p.Error != "":
			msg = p.Error
		case p.Message != "":
			msg = p.Message
		case p.Detail != "":
			msg = p.Detail
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(b))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return apiError{status: resp.StatusCode, message: msg}
}
