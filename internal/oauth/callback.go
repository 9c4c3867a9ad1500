// Package oauth receives the provider callback for the browser-based sign-in
// flow. The client starts a loopback HTTP listener, sends the learner to the
// provider in their browser, and waits for the service to redirect back with
// the token pair in the query string.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pathwise/pathwise/internal/config"
	"github.com/pathwise/pathwise/internal/logger"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// ErrMissingTokens indicates the callback arrived without a complete token
// pair; the caller should send the learner back to the login view.
var ErrMissingTokens = errors.New("oauth callback missing token pair")

// Result is the token pair delivered by the callback.
type Result struct {
	AccessToken  string
	RefreshToken string
}

type outcome struct {
	result Result
	err    error
}

// Listener serves the callback route on a loopback address.
type Listener struct {
	host string
	port int
}

func NewListener(cfg *config.Config) *Listener {
	return &Listener{
		host: cfg.OAuth.CallbackHost,
		port: cfg.OAuth.CallbackPort,
	}
}

// RedirectURL is the callback destination the service should redirect to.
func (l *Listener) RedirectURL() string {
	return fmt.Sprintf("http://%s:%d/auth/success", l.host, l.port)
}

// callbackHandler parses the provider redirect and delivers the first
// outcome; later hits are answered but dropped.
func callbackHandler(done chan<- outcome) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		access := r.URL.Query().Get("accessToken")
		refresh := r.URL.Query().Get("refreshToken")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if access == "" || refresh == "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, "<html><body><h2>Sign-in failed</h2><p>Missing tokens. Return to the terminal and try again.</p></body></html>")
			select {
			case done <- outcome{err: ErrMissingTokens}:
			default:
			}
			return
		}

		fmt.Fprint(w, "<html><body><h2>Signed in</h2><p>You can close this tab and return to the terminal.</p></body></html>")
		select {
		case done <- outcome{result: Result{AccessToken: access, RefreshToken: refresh}}:
		default:
		}
	})
}

// Wait serves the callback route until one callback arrives or ctx is done.
// A callback without both tokens resolves to ErrMissingTokens.
func (l *Listener) Wait(ctx context.Context) (Result, error) {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf("%s:%d", l.host, l.port))
	if err != nil {
		return Result{}, fmt.Errorf("start callback listener: %w", err)
	}

	done := make(chan outcome, 1)
	mux := http.NewServeMux()
	mux.Handle("/auth/success", callbackHandler(done))

	srv := &http.Server{Handler: mux}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var result Result
	select {
	case out := <-done:
		result, err = out.result, out.err
	case e := <-serveErr:
		err = fmt.Errorf("callback listener failed: %w", e)
	case <-ctx.Done():
		err = ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Warn("callback listener shutdown failed", zap.Error(shutdownErr))
	}

	return result, err
}
