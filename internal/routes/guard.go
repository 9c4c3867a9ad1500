// Package routes defines the client's view routes and the guard that decides
// whether a protected view may render.
package routes

import (
	"github.com/pathwise/pathwise/internal/session"
)

// View routes. Redirects always replace the current view so the back action
// cannot land on a disallowed page.
const (
	Landing       = "/"
	Login         = "/auth/login"
	Register      = "/auth/register"
	OAuthCallback = "/auth/success"
	Onboarding    = "/onboarding"
	Quiz          = "/quiz"
	Dashboard     = "/learner/dashboard"
	Pathways      = "/learner/pathways"
	Courses       = "/learner/courses"
	Profile       = "/learner/profile"
)

// Outcome is the result of a guard decision.
type Outcome int

const (
	// Wait suspends rendering until the session bootstrap settles.
	Wait Outcome = iota
	// Render shows the requested view.
	Render
	// Redirect replaces the requested view with Decision.Target.
	Redirect
)

// Requirements are the prerequisites a view declares.
type Requirements struct {
	RequireOnboarded bool
	RequireQuiz      bool
}

// DefaultRequirements matches the common protected view: onboarding required,
// quiz not.
func DefaultRequirements() Requirements {
	return Requirements{RequireOnboarded: true}
}

// Decision is what the guard decided for a navigation.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Decide is a pure function of the session state and the view requirements.
func Decide(st session.State, req Requirements) Decision {
	if st.Loading {
		return Decision{Outcome: Wait}
	}
	if !st.Authenticated || st.User == nil {
		return Decision{Outcome: Redirect, Target: Login}
	}
	if req.RequireOnboarded && !st.User.Onboarded {
		return Decision{Outcome: Redirect, Target: Onboarding}
	}
	if req.RequireQuiz && !st.User.QuizCompleted {
		return Decision{Outcome: Redirect, Target: Quiz}
	}
	return Decision{Outcome: Render}
}
