// Package api is the session client for the learning-pathway service. It
// attaches the bearer token to outbound requests, performs at most one
// transparent refresh-and-retry on 401, and maps non-2xx responses to typed
// errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pathwise/pathwise/internal/config"
	"github.com/pathwise/pathwise/internal/logger"
	"github.com/pathwise/pathwise/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Client issues authenticated requests against the remote API.
type Client struct {
	http    *http.Client
	baseURL string
	tokens  *store.TokenStore

	// Concurrent callers that hit a 401 at the same time share a single
	// refresh call; on a rotate-on-use backend independent refreshes would
	// invalidate each other's tokens.
	refreshGroup singleflight.Group
}

// NewClient creates a session client for the configured service.
func NewClient(cfg *config.Config, tokens *store.TokenStore) *Client {
	timeout := cfg.API.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: cfg.API.BaseURL,
		tokens:  tokens,
	}
}

// do issues a request and decodes a successful response into out (when out is
// non-nil). A 401 triggers exactly one refresh cycle: if the refresh succeeds
// the original request is retried once with allowRetry=false, otherwise the
// token store is cleared and ErrSessionExpired is returned.
func (c *Client) do(ctx context.Context, method, path string, body, out any, allowRetry bool) error {
	raw, status, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && allowRetry {
		if c.refreshSession(ctx) {
			return c.do(ctx, method, path, body, out, false)
		}
		if err := c.tokens.Clear(); err != nil {
			logger.Warn("failed to clear token store", zap.Error(err))
		}
		return ErrSessionExpired
	}

	payload := parseBody(raw)
	if status < 200 || status >= 300 {
		return &APIError{Status: status, Message: errorMessage(payload, status), Payload: payload}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// roundTrip performs a single HTTP exchange and returns the raw body.
func (c *Client) roundTrip(ctx context.Context, method, path string, body any) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	if token := c.tokens.Access(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	// JSON content type only when there is a body and none was supplied.
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("failed to close response body", zap.Error(closeErr))
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	return raw, resp.StatusCode, nil
}

// refreshSession performs the refresh cycle, collapsing concurrent callers
// into a single in-flight refresh.
func (c *Client) refreshSession(ctx context.Context) bool {
	ok, _, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		return c.refreshOnce(ctx), nil
	})
	return ok.(bool)
}

// refreshOnce exchanges the stored refresh token for a new pair. Any failure
// mode - missing token, transport error, non-2xx, malformed response - reports
// false without touching the store; a raw transport error never escapes.
func (c *Client) refreshOnce(ctx context.Context) bool {
	refresh := c.tokens.Refresh()
	if refresh == "" {
		return false
	}

	raw, status, err := c.roundTrip(ctx, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": refresh})
	if err != nil {
		logger.Warn("token refresh failed", zap.Error(err))
		return false
	}
	if status < 200 || status >= 300 {
		logger.Info("token refresh rejected", zap.Int("status", status))
		return false
	}

	var pair struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(raw, &pair); err != nil || pair.AccessToken == "" || pair.RefreshToken == "" {
		logger.Warn("token refresh returned an unexpected response shape")
		return false
	}

	if err := c.tokens.Save(pair.AccessToken, pair.RefreshToken); err != nil {
		logger.Error("failed to persist refreshed tokens", zap.Error(err))
		return false
	}
	return true
}

func parseBody(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return string(raw)
	}
	return payload
}

func errorMessage(payload any, status int) string {
	if obj, ok := payload.(map[string]any); ok {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			return msg
		}
	}
	if s, ok := payload.(string); ok && s != "" {
		return s
	}
	return http.StatusText(status)
}
