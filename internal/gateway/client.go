package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxBodyBytes = 16 << 20

// Client issues REST calls against the banking backend. Every method sends
// exactly one request; there are no retries and no caching.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a client for the backend rooted at baseURL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	token  string
}

type response struct {
	status      int
	contentType string
	body        []byte
}

func (c *Client) send(ctx context.Context, op string, r request) (response, error) {
	var reader io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return response{}, fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, reader)
	if err != nil {
		return response{}, fmt.Errorf("%s: build request: %w", op, err)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend unreachable", zap.String("op", op), zap.String("path", r.path), zap.Error(err))
		return response{}, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return response{}, &NetworkError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	c.logger.Debug("backend call",
		zap.String("op", op),
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(started)),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return response{}, &APIError{Status: resp.StatusCode, Message: extractMessage(data, resp.StatusCode)}
	}
	return response{status: resp.StatusCode, contentType: resp.Header.Get("Content-Type"), body: data}, nil
}

// call sends r and decodes a JSON body into out when out is non-nil.
func (c *Client) call(ctx context.Context, op string, r request, out any) error {
	resp, err := c.send(ctx, op, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// text sends r and returns the body as a message. Plain text and JSON
// string bodies are both accepted.
func (c *Client) text(ctx context.Context, op string, r request) (string, error) {
	resp, err := c.send(ctx, op, r)
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(resp.body, &s); err == nil {
		return s, nil
	}
	return strings.TrimSpace(string(resp.body)), nil
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("size", fmt.Sprintf("%d", size))
	return q
}
