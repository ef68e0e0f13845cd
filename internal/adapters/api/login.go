package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type TokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges a username and password for a bearer token. The backend
// speaks the OAuth2 password form: urlencoded username/password fields.
func (c *Client) Login(ctx context.Context, username, password string) (TokenResult, error) {
	if username == "" {
		return TokenResult{}, errors.New("username is required")
	}
	if password == "" {
		return TokenResult{}, errors.New("password is required")
	}

	endpoint, err := buildAPIURL(c.BaseURL, "/auth/login")
	if err != nil {
		return TokenResult{}, err
	}

	values := url.Values{}
	values.Set("username", username)
	values.Set("password", password)

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return TokenResult{}, fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return TokenResult{}, fmt.Errorf("request login: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return TokenResult{}, fmt.Errorf("read login response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return TokenResult{}, fmt.Errorf("login: %s", decodeAPIError(apiResponse{status: resp.StatusCode, body: data}))
	}

	var token TokenResult
	if err := json.Unmarshal(data, &token); err != nil {
		return TokenResult{}, fmt.Errorf("decode login response: %w", err)
	}
	if token.AccessToken == "" {
		return TokenResult{}, errors.New("login response missing access token")
	}
	return token, nil
}
