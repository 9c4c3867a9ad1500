package routes

import (
	"testing"

	"github.com/pathwise/pathwise/internal/api"
	"github.com/pathwise/pathwise/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	loggedOut := session.State{}
	loading := session.State{Loading: true}
	fresh := session.State{Authenticated: true, User: &api.User{}}
	onboarded := session.State{Authenticated: true, User: &api.User{Onboarded: true}}
	quizDone := session.State{Authenticated: true, User: &api.User{Onboarded: true, QuizCompleted: true}}

	tests := []struct {
		name string
		st   session.State
		req  Requirements
		want Decision
	}{
		{
			name: "loading suspends any decision",
			st:   loading,
			req:  Requirements{RequireOnboarded: true, RequireQuiz: true},
			want: Decision{Outcome: Wait},
		},
		{
			name: "unauthenticated goes to login",
			st:   loggedOut,
			req:  DefaultRequirements(),
			want: Decision{Outcome: Redirect, Target: Login},
		},
		{
			name: "authenticated flag without a user still goes to login",
			st:   session.State{Authenticated: true},
			req:  DefaultRequirements(),
			want: Decision{Outcome: Redirect, Target: Login},
		},
		{
			name: "not onboarded goes to the wizard",
			st:   fresh,
			req:  DefaultRequirements(),
			want: Decision{Outcome: Redirect, Target: Onboarding},
		},
		{
			name: "onboarded but quiz pending goes to the quiz",
			st:   onboarded,
			req:  Requirements{RequireOnboarded: true, RequireQuiz: true},
			want: Decision{Outcome: Redirect, Target: Quiz},
		},
		{
			name: "quiz not required renders for an onboarded user",
			st:   onboarded,
			req:  DefaultRequirements(),
			want: Decision{Outcome: Render},
		},
		{
			name: "fully set up renders",
			st:   quizDone,
			req:  Requirements{RequireOnboarded: true, RequireQuiz: true},
			want: Decision{Outcome: Render},
		},
		{
			name: "view without prerequisites renders for any authenticated user",
			st:   fresh,
			req:  Requirements{},
			want: Decision{Outcome: Render},
		},
		{
			name: "quiz requirement implies nothing about onboarding",
			st:   session.State{Authenticated: true, User: &api.User{QuizCompleted: true}},
			req:  Requirements{RequireQuiz: true},
			want: Decision{Outcome: Render},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.st, tt.req))
		})
	}
}

func TestOnboardingRouteAllowsUnfinishedProfile(t *testing.T) {
	// The wizard itself must stay reachable for a user who is not onboarded,
	// otherwise the redirect in Decide would loop.
	st := session.State{Authenticated: true, User: &api.User{}}
	got := Decide(st, Requirements{})
	assert.Equal(t, Decision{Outcome: Render}, got)
}
