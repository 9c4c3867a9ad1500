package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pathwise/pathwise/internal/config"
	"github.com/pathwise/pathwise/internal/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) (*Client, *store.TokenStore) {
	t.Helper()
	cfg := &config.Config{
		API:     config.APIConfig{BaseURL: baseURL, Timeout: 5 * time.Second},
		Storage: config.StorageConfig{Dir: "/state"},
	}
	tokens := store.NewTokenStore(afero.NewMemMapFs(), cfg)
	return NewClient(cfg, tokens), tokens
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClientTimeout(t *testing.T) {
	cfg := &config.Config{API: config.APIConfig{BaseURL: "http://unused", Timeout: 5 * time.Second}}
	tokens := store.NewTokenStore(afero.NewMemMapFs(), cfg)

	client := NewClient(cfg, tokens)
	assert.Equal(t, 5*time.Second, client.http.Timeout)

	cfg.API.Timeout = 0
	client = NewClient(cfg, tokens)
	assert.Equal(t, 30*time.Second, client.http.Timeout, "zero config falls back to the default")
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		writeJSON(t, w, map[string]string{"id": "u1"})
	}))
	defer srv.Close()

	t.Run("no bearer header without a stored token", func(t *testing.T) {
		client, _ := newTestClient(t, srv.URL)
		_, err := client.Me(context.Background())
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
		assert.Empty(t, gotContentType, "GET without body should not claim a content type")
	})

	t.Run("bearer header and json content type when present", func(t *testing.T) {
		client, tokens := newTestClient(t, srv.URL)
		require.NoError(t, tokens.Save("access-1", "refresh-1"))

		_, err := client.UpdateMe(context.Background(), ProfileUpdate{CareerGoal: "Data Analyst"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer access-1", gotAuth)
		assert.Equal(t, "application/json", gotContentType)
	})
}

func TestRefreshAndRetryOn401(t *testing.T) {
	var meCalls, refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/me":
			atomic.AddInt32(&meCalls, 1)
			if r.Header.Get("Authorization") != "Bearer access-2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeJSON(t, w, map[string]any{"id": "u1", "email": "a@b.c", "onboarded": true})
		case "/auth/refresh":
			atomic.AddInt32(&refreshCalls, 1)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "refresh-1", body["refreshToken"])
			writeJSON(t, w, map[string]string{"accessToken": "access-2", "refreshToken": "refresh-2"})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client, tokens := newTestClient(t, srv.URL)
	require.NoError(t, tokens.Save("access-1", "refresh-1"))

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, user.Onboarded)

	assert.EqualValues(t, 2, atomic.LoadInt32(&meCalls), "original request should be retried exactly once")
	assert.EqualValues(t, 1, atomic.LoadInt32(&refreshCalls))
	assert.Equal(t, "access-2", tokens.Access())
	assert.Equal(t, "refresh-2", tokens.Refresh())
}

func TestSessionExpired(t *testing.T) {
	tests := []struct {
		name          string
		seedAccess    string
		seedRefresh   string
		refreshStatus int
		wantMeCalls   int32
		wantRefresh   int32
	}{
		{
			name:        "no refresh token skips the refresh call",
			seedAccess:  "stale-access",
			wantMeCalls: 1,
			wantRefresh: 0,
		},
		{
			name:          "rejected refresh expires the session",
			seedAccess:    "stale-access",
			seedRefresh:   "stale-refresh",
			refreshStatus: http.StatusUnauthorized,
			wantMeCalls:   1,
			wantRefresh:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var meCalls, refreshCalls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/api/me":
					atomic.AddInt32(&meCalls, 1)
					w.WriteHeader(http.StatusUnauthorized)
				case "/auth/refresh":
					atomic.AddInt32(&refreshCalls, 1)
					w.WriteHeader(tt.refreshStatus)
				}
			}))
			defer srv.Close()

			client, tokens := newTestClient(t, srv.URL)
			require.NoError(t, tokens.Save(tt.seedAccess, tt.seedRefresh))

			_, err := client.Me(context.Background())
			assert.ErrorIs(t, err, ErrSessionExpired)

			assert.EqualValues(t, tt.wantMeCalls, atomic.LoadInt32(&meCalls))
			assert.EqualValues(t, tt.wantRefresh, atomic.LoadInt32(&refreshCalls))
			assert.Empty(t, tokens.Access(), "expired session should clear the stored pair")
			assert.Empty(t, tokens.Refresh())
		})
	}
}

func TestRefreshRotation(t *testing.T) {
	// The server grants exactly one refresh; every later attempt is rejected,
	// as a rotate-on-use backend would.
	var refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/refresh", r.URL.Path)
		if atomic.AddInt32(&refreshCalls, 1) > 1 {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(t, w, map[string]string{"message": "refresh token already used"})
			return
		}
		writeJSON(t, w, map[string]string{"accessToken": "access-2", "refreshToken": "refresh-2"})
	}))
	defer srv.Close()

	client, tokens := newTestClient(t, srv.URL)
	require.NoError(t, tokens.Save("access-1", "refresh-1"))

	assert.True(t, client.refreshOnce(context.Background()))
	assert.Equal(t, "access-2", tokens.Access())
	assert.Equal(t, "refresh-2", tokens.Refresh())

	// The rejected attempt must not disturb the pair from the first refresh.
	assert.False(t, client.refreshOnce(context.Background()))
	assert.Equal(t, "access-2", tokens.Access())
	assert.Equal(t, "refresh-2", tokens.Refresh())
}

func TestRefreshFailureModes(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "missing refresh token in response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"accessToken":"only-half"}`))
			},
		},
		{
			name: "non-json response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>gateway error</html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client, tokens := newTestClient(t, srv.URL)
			require.NoError(t, tokens.Save("access-1", "refresh-1"))

			assert.False(t, client.refreshOnce(context.Background()))
			assert.Equal(t, "access-1", tokens.Access())
			assert.Equal(t, "refresh-1", tokens.Refresh())
		})
	}

	t.Run("transport error never escapes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		client, tokens := newTestClient(t, srv.URL)
		require.NoError(t, tokens.Save("access-1", "refresh-1"))

		assert.False(t, client.refreshOnce(context.Background()))
		assert.Equal(t, "refresh-1", tokens.Refresh())
	})
}

func TestConcurrentRefreshIsShared(t *testing.T) {
	var refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/refresh", r.URL.Path)
		atomic.AddInt32(&refreshCalls, 1)
		time.Sleep(100 * time.Millisecond)
		writeJSON(t, w, map[string]string{"accessToken": "access-2", "refreshToken": "refresh-2"})
	}))
	defer srv.Close()

	client, tokens := newTestClient(t, srv.URL)
	require.NoError(t, tokens.Save("access-1", "refresh-1"))

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			assert.True(t, client.refreshSession(context.Background()))
		}()
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&refreshCalls), "overlapping callers must share one refresh")
	assert.Equal(t, "refresh-2", tokens.Refresh())
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "structured message field",
			status:      http.StatusUnprocessableEntity,
			body:        `{"message":"email already registered"}`,
			wantMessage: "email already registered",
		},
		{
			name:        "plain text body",
			status:      http.StatusBadGateway,
			body:        "upstream unavailable",
			wantMessage: "upstream unavailable",
		},
		{
			name:        "empty body falls back to status text",
			status:      http.StatusInternalServerError,
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, _ := newTestClient(t, srv.URL)
			_, err := client.Me(context.Background())

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.status, StatusOf(err))
		})
	}

	t.Run("transport errors are not api errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		client, _ := newTestClient(t, srv.URL)
		_, err := client.Me(context.Background())
		require.Error(t, err)

		var apiErr *APIError
		assert.False(t, errors.As(err, &apiErr))
		assert.NotErrorIs(t, err, ErrSessionExpired)
	})
}

func TestProfileEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bare user object", body: `{"id":"u1","email":"a@b.c","displayName":"Asha"}`},
		{name: "data envelope", body: `{"data":{"id":"u1","email":"a@b.c","displayName":"Asha"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, _ := newTestClient(t, srv.URL)
			user, err := client.Me(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "u1", user.ID)
			assert.Equal(t, "Asha", user.DisplayName)
		})
	}
}

func TestLogoutSendsRefreshToken(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/logout", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, tokens := newTestClient(t, srv.URL)
	require.NoError(t, tokens.Save("access-1", "refresh-1"))

	require.NoError(t, client.Logout(context.Background()))
	assert.Equal(t, "refresh-1", gotBody["refreshToken"])
}
