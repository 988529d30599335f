package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/apperrors"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/logger"
)

const refreshPath = "/users/refresh_auth"

// Client is a client for the SPEG backend REST API. It carries the
// session cookie jar and the bearer token, and transparently performs
// the single 401 -> refresh -> replay cycle on every call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger

	mu          sync.RWMutex
	accessToken string
}

// errorResponse is the shape of backend error payloads
type errorResponse struct {
	Message string `json:"message"`
}

// NewClient creates a new backend client
func NewClient(baseURL string, timeout time.Duration, logger logger.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)

	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		logger: logger,
	}, nil
}

// SetAccessToken stores the bearer token attached to subsequent requests
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

// AccessToken returns the current bearer token, empty when logged out
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// do performs one API call, decoding the response into out when out is
// non-nil. A 401 triggers exactly one silent refresh and one replay of
// the original request; a second 401 propagates as an auth error.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var payload []byte

	if body != nil {
		b, err := json.Marshal(body)

		if err != nil {
			return apperrors.NewUnexpectedError(fmt.Sprintf("failed to marshal request: %v", err))
		}

		payload = b
	}

	resp, err := c.send(ctx, method, path, payload)

	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && path != refreshPath {
		resp.Body.Close()

		c.logger.Info("Access token expired, attempting refresh", "path", path)

		if refreshErr := c.refreshAuth(ctx); refreshErr != nil {
			return apperrors.NewAuthExpiredError(apperrors.UserMessage(refreshErr))
		}

		// Replay the original request exactly once, never nested
		resp, err = c.send(ctx, method, path, payload)

		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusUnauthorized {
			resp.Body.Close()
			return apperrors.NewAuthExpiredError("session expired")
		}
	}

	return c.decode(resp, method, path, out)
}

// send builds and executes a single request without any retry
func (c *Client) send(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var reader io.Reader

	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)

	if err != nil {
		return nil, apperrors.NewUnexpectedError(fmt.Sprintf("failed to create request: %v", err))
	}

	req.Header.Set("Content-Type", "application/json")

	if token := c.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)

	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return nil, apperrors.NewTransportError("request timed out")
		}
		return nil, apperrors.NewTransportError(fmt.Sprintf("failed to reach backend: %v", err))
	}

	return resp, nil
}

// decode maps the response body onto out, converting error payloads into
// the error taxonomy
func (c *Client) decode(resp *http.Response, method, path string, out interface{}) error {
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)

	if err != nil {
		return apperrors.NewUnexpectedError(fmt.Sprintf("failed to read response body: %v", err))
	}

	if resp.StatusCode >= 400 {
		var errResp errorResponse

		message := fmt.Sprintf("backend returned status %d", resp.StatusCode)

		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			message = errResp.Message
		}

		c.logger.Error("Backend call failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"message", message)

		return apperrors.NewRemoteError(message, resp.StatusCode)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return apperrors.NewUnexpectedError(fmt.Sprintf("failed to parse response: %v", err))
	}

	return nil
}

// refreshAuth performs the silent token refresh against the backend and
// stores the renewed access token
func (c *Client) refreshAuth(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodGet, refreshPath, nil)

	if err != nil {
		return err
	}

	var refreshed struct {
		AccessToken string `json:"accessToken"`
	}

	if err := c.decode(resp, http.MethodGet, refreshPath, &refreshed); err != nil {
		c.logger.Error("Token refresh failed", "error", err)
		return err
	}

	if refreshed.AccessToken != "" {
		c.SetAccessToken(refreshed.AccessToken)
	}

	c.logger.Info("Access token refreshed")
	return nil
}
