package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/khyahahati/ai-doc-builder/internal/ports"
)

const maxResponseBytes = 8 << 20

// Client is the HTTP transport for the document-builder backend. The
// credential is an opaque bearer token; an empty string sends the request
// unauthenticated.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.Transport = (*Client)(nil)

type errorResponse struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// apiResponse is a fully buffered response: status plus body bytes, read
// while the request context is still alive.
type apiResponse struct {
	status int
	body   []byte
}

func (r apiResponse) ok() bool {
	return r.status >= http.StatusOK && r.status < http.StatusMultipleChoices
}

func (c *Client) Get(ctx context.Context, path string, credential string) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodGet, path, nil, credential)
}

func (c *Client) PostJSON(ctx context.Context, path string, body any, credential string) (json.RawMessage, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return c.doJSON(ctx, http.MethodPost, path, encoded, credential)
}

func (c *Client) Download(ctx context.Context, path string, credential string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, "", credential)
	if err != nil {
		return nil, err
	}

	if !resp.ok() {
		return nil, fmt.Errorf("download %s: %s", path, decodeAPIError(resp))
	}
	return resp.body, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, credential string) (json.RawMessage, error) {
	contentType := ""
	if body != nil {
		contentType = "application/json"
	}

	resp, err := c.do(ctx, method, path, body, contentType, credential)
	if err != nil {
		return nil, err
	}

	if !resp.ok() {
		return nil, fmt.Errorf("%s %s: %s", method, path, decodeAPIError(resp))
	}

	if len(resp.body) == 0 {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(resp.body), nil
}

// do issues the request and buffers the whole response body before the
// request context is released. Callers must never touch the wire after do
// returns: the per-request timeout ends with this scope.
func (c *Client) do(ctx context.Context, method, path string, body []byte, contentType string, credential string) (apiResponse, error) {
	endpoint, err := buildAPIURL(c.BaseURL, path)
	if err != nil {
		return apiResponse{}, err
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, reader)
	if err != nil {
		return apiResponse{}, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return apiResponse{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apiResponse{}, fmt.Errorf("read response body: %w", err)
	}
	return apiResponse{status: resp.StatusCode, body: data}, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 60 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func decodeAPIError(resp apiResponse) string {
	var payload errorResponse
	if err := json.Unmarshal(resp.body, &payload); err != nil {
		return fmt.Sprintf("status %d", resp.status)
	}

	detail := payload.Detail
	if detail == "" {
		detail = payload.Message
	}
	if detail == "" {
		return fmt.Sprintf("status %d", resp.status)
	}
	return fmt.Sprintf("status %d: %s", resp.status, detail)
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
