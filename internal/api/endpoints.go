package api

import (
	"context"
	"net/http"
)

// User is the profile shape returned by the service. Onboarded and
// QuizCompleted only ever move false to true within a session.
type User struct {
	ID            string         `json:"id"`
	Email         string         `json:"email"`
	DisplayName   string         `json:"displayName"`
	Onboarded     bool           `json:"onboarded"`
	QuizCompleted bool           `json:"quizCompleted"`
	UserDetails   map[string]any `json:"userDetails"`
}

// RegisterRequest is the body for account creation.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the fresh token pair. Some deployments also inline
// the user object; the session layer deliberately ignores it and re-fetches
// the profile so there is a single source of truth.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user,omitempty"`
}

// Education is the qualification block of a profile update.
type Education struct {
	HighestQualification string `json:"highestQualification,omitempty"`
	Stream               string `json:"stream,omitempty"`
	Status               string `json:"status,omitempty"`
}

// ProfileUpdate is the structured payload for the profile endpoint. Zero
// fields are omitted so partial updates stay partial.
type ProfileUpdate struct {
	AgeRange          string            `json:"ageRange,omitempty"`
	PreferredLanguage string            `json:"preferredLanguage,omitempty"`
	State             string            `json:"state,omitempty"`
	District          string            `json:"district,omitempty"`
	Education         *Education        `json:"education,omitempty"`
	Skills            []string          `json:"skills,omitempty"`
	InterestSectors   []string          `json:"interestSectors,omitempty"`
	Mode              string            `json:"mode,omitempty"`
	Budget            string            `json:"budget,omitempty"`
	Duration          string            `json:"duration,omitempty"`
	CareerGoal        string            `json:"careerGoal,omitempty"`
	QuizAnswers       map[string]string `json:"quizAnswers,omitempty"`
	QuizCompleted     bool              `json:"quizCompleted,omitempty"`
}

// Register creates an account. It does not authenticate the caller; a login
// must follow. A 401 here means bad input, not an expired session, so the
// refresh cycle is skipped.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", req, nil, false)
}

// Login exchanges credentials for a token pair. A 401 means invalid
// credentials and is surfaced as an APIError rather than a session expiry.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout tells the server to drop the refresh token. No refresh cycle: the
// session is being torn down either way.
func (c *Client) Logout(ctx context.Context) error {
	body := map[string]string{"refreshToken": c.tokens.Refresh()}
	return c.do(ctx, http.MethodPost, "/auth/logout", body, nil, false)
}

// meResponse tolerates both a bare user object and a {data: user} envelope.
type meResponse struct {
	User
	Data *User `json:"data"`
}

// Me fetches the current profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp meResponse
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &resp, true); err != nil {
		return nil, err
	}
	if resp.Data != nil {
		return resp.Data, nil
	}
	user := resp.User
	return &user, nil
}

// UpdateMe submits a profile or quiz payload and returns the updated profile.
func (c *Client) UpdateMe(ctx context.Context, update ProfileUpdate) (*User, error) {
	var resp meResponse
	if err := c.do(ctx, http.MethodPost, "/api/me", update, &resp, true); err != nil {
		return nil, err
	}
	if resp.Data != nil {
		return resp.Data, nil
	}
	user := resp.User
	return &user, nil
}

// GoogleAuthURL is the browser destination that starts the OAuth flow.
func (c *Client) GoogleAuthURL() string {
	return c.baseURL + "/auth/google"
}
