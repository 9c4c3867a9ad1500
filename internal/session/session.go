// Package session owns the client-side auth state: the current user, the
// authenticated flag, and the bootstrap loading flag. It is an explicitly
// injected object with a read API and a small set of mutating operations,
// not ambient global state; consumers subscribe for change notifications.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/pathwise/pathwise/internal/api"
	"github.com/pathwise/pathwise/internal/logger"
	"github.com/pathwise/pathwise/internal/store"
	"go.uber.org/zap"
)

// State is a point-in-time snapshot of the session.
type State struct {
	// Loading is true until the startup token check has settled. Route
	// decisions are suspended while it holds.
	Loading       bool
	Authenticated bool
	User          *api.User
}

// Session reconciles the auth state against the remote profile endpoint.
type Session struct {
	client *api.Client
	tokens *store.TokenStore
	drafts *store.DraftStore

	mu    sync.Mutex
	state State
	subs  []func(State)
}

// New creates a session in the loading state. Bootstrap settles it.
func New(client *api.Client, tokens *store.TokenStore, drafts *store.DraftStore) *Session {
	return &Session{
		client: client,
		tokens: tokens,
		drafts: drafts,
		state:  State{Loading: true},
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called after every state change.
func (s *Session) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Session) setState(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	state := s.state
	subs := make([]func(State), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	// Subscribers run outside the lock so they may read the session.
	for _, fn := range subs {
		fn(state)
	}
}

// Bootstrap settles the session at startup: with a stored access token it
// fetches the profile first, otherwise it clears Loading with no network
// call. A failed fetch just means the client starts logged out.
func (s *Session) Bootstrap(ctx context.Context) {
	if s.tokens.Access() != "" {
		if _, err := s.RefreshUser(ctx); err != nil {
			logger.Info("session bootstrap found no active session", zap.Error(err))
		}
	}
	s.setState(func(st *State) { st.Loading = false })
}

// RefreshUser re-fetches the profile. On success the user is adopted and the
// session marked authenticated; on any failure the session resets to logged
// out and the error is returned so the call site decides whether to ignore
// it.
func (s *Session) RefreshUser(ctx context.Context) (*api.User, error) {
	user, err := s.client.Me(ctx)
	if err != nil {
		s.setState(func(st *State) {
			st.User = nil
			st.Authenticated = false
		})
		return nil, err
	}

	s.setState(func(st *State) {
		st.User = user
		st.Authenticated = true
	})
	return user, nil
}

// Login authenticates, persists the returned token pair, and re-fetches the
// profile. The profile endpoint is the single source of truth: an inline
// user object on the login response is ignored.
func (s *Session) Login(ctx context.Context, email, password string) (*api.User, error) {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if resp.AccessToken != "" && resp.RefreshToken != "" {
		if err := s.tokens.Save(resp.AccessToken, resp.RefreshToken); err != nil {
			return nil, err
		}
	}

	return s.RefreshUser(ctx)
}

// Register creates an account. The caller is not authenticated as a side
// effect and must log in afterwards. Failures propagate unmodified.
func (s *Session) Register(ctx context.Context, name, email, password string) error {
	return s.client.Register(ctx, api.RegisterRequest{Name: name, Email: email, Password: password})
}

// Logout clears the local session unconditionally. The remote call is best
// effort; its error is returned for logging but the session is logged out
// either way.
func (s *Session) Logout(ctx context.Context) error {
	remoteErr := s.client.Logout(ctx)

	if err := s.tokens.Clear(); err != nil {
		logger.Error("failed to clear token store on logout", zap.Error(err))
	}
	s.setState(func(st *State) {
		st.User = nil
		st.Authenticated = false
	})
	return remoteErr
}

// AdoptTokens completes the OAuth callback: it persists the pair handed over
// on the callback route and fetches the profile.
func (s *Session) AdoptTokens(ctx context.Context, access, refresh string) (*api.User, error) {
	if access == "" || refresh == "" {
		return nil, errors.New("missing token pair")
	}
	if err := s.tokens.Save(access, refresh); err != nil {
		return nil, err
	}
	return s.RefreshUser(ctx)
}

// SubmitOnboarding posts the completed wizard, re-fetches the profile, and
// clears the saved draft only after both succeed. When the post-submission
// refresh fails the draft is kept so the learner can resubmit.
func (s *Session) SubmitOnboarding(ctx context.Context, draft *store.OnboardingDraft) (*api.User, error) {
	if _, err := s.client.UpdateMe(ctx, profileUpdateFromDraft(draft, false)); err != nil {
		return nil, err
	}

	user, err := s.RefreshUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Clear(); err != nil {
		logger.Warn("failed to clear onboarding draft", zap.Error(err))
	}
	return user, nil
}

// SubmitQuiz posts the preference quiz answers together with the saved
// profile draft, marks the quiz complete, and refreshes the session.
func (s *Session) SubmitQuiz(ctx context.Context, answers map[string]string) (*api.User, error) {
	draft := s.drafts.Load()
	if draft == nil {
		draft = &store.OnboardingDraft{}
	}
	draft.QuizAnswers = answers

	if _, err := s.client.UpdateMe(ctx, profileUpdateFromDraft(draft, true)); err != nil {
		return nil, err
	}

	user, err := s.RefreshUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Clear(); err != nil {
		logger.Warn("failed to clear onboarding draft", zap.Error(err))
	}
	return user, nil
}

func profileUpdateFromDraft(d *store.OnboardingDraft, quizCompleted bool) api.ProfileUpdate {
	update := api.ProfileUpdate{
		AgeRange:          d.AgeRange,
		PreferredLanguage: d.Language,
		State:             d.State,
		District:          d.District,
		Skills:            d.Skills,
		InterestSectors:   d.Interests,
		Mode:              d.Mode,
		Budget:            d.Budget,
		Duration:          d.Duration,
		CareerGoal:        d.CareerGoal,
		QuizAnswers:       d.QuizAnswers,
		QuizCompleted:     quizCompleted,
	}
	if d.Qualification != "" || d.Stream != "" || d.Status != "" {
		update.Education = &api.Education{
			HighestQualification: d.Qualification,
			Stream:               d.Stream,
			Status:               d.Status,
		}
	}
	return update
}
