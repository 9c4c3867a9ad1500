// Package tui is the terminal front end: one page model per view, with the
// root AppModel switching pages according to the route guard.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathwise/pathwise/internal/api"
	"github.com/pathwise/pathwise/internal/catalog"
	"github.com/pathwise/pathwise/internal/oauth"
	"github.com/pathwise/pathwise/internal/routes"
	"github.com/pathwise/pathwise/internal/session"
	"github.com/pathwise/pathwise/internal/store"
)

// navigateMsg asks the app to switch views. The route guard is consulted on
// every navigation, so a page never needs to re-check prerequisites itself.
type navigateMsg struct {
	route string
}

// toastMsg shows a transient status or error line.
type toastMsg struct {
	text  string
	isErr bool
}

// bootstrapDoneMsg fires once the stored-token check has settled.
type bootstrapDoneMsg struct{}

func navigate(route string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: route} }
}

func toast(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: text, isErr: isErr} }
}

// AppDeps are the injected collaborators of the TUI.
type AppDeps struct {
	Session  *session.Session
	Client   *api.Client
	Catalog  *catalog.Catalog
	Progress *catalog.ProgressTracker
	Drafts   *store.DraftStore
	Listener *oauth.Listener
}

// AppModel is the root model that manages page switching
type AppModel struct {
	deps  AppDeps
	route string

	width  int
	height int

	toastText  string
	toastIsErr bool

	login      loginModel
	register   registerModel
	oauthWait  oauthModel
	onboarding onboardingModel
	quiz       quizModel
	dashboard  dashboardModel
	pathways   pathwaysModel
	courses    coursesModel
	profile    profileModel
}

// NewAppModel creates the root model. The session starts loading; Init kicks
// off the bootstrap.
func NewAppModel(deps AppDeps) AppModel {
	return AppModel{
		deps:       deps,
		route:      routes.Landing,
		login:      newLoginModel(deps.Session, deps.Client),
		register:   newRegisterModel(deps.Session),
		oauthWait:  newOAuthModel(deps.Session, deps.Listener, deps.Client),
		onboarding: newOnboardingModel(deps.Session, deps.Drafts, deps.Catalog),
		quiz:       newQuizModel(deps.Session, deps.Catalog),
		dashboard:  newDashboardModel(deps.Session, deps.Catalog, deps.Progress),
		pathways:   newPathwaysModel(deps.Catalog, deps.Progress),
		courses:    newCoursesModel(deps.Catalog),
		profile:    newProfileModel(deps.Session),
	}
}

// Init starts the session bootstrap and routes to the dashboard; the guard
// downgrades the destination to login/onboarding/quiz as needed.
func (m AppModel) Init() tea.Cmd {
	sess := m.deps.Session
	return func() tea.Msg {
		sess.Bootstrap(context.Background())
		return bootstrapDoneMsg{}
	}
}

// requirementsFor maps a route to its guard requirements. The second return
// is false for public views, which render unguarded.
func requirementsFor(route string) (routes.Requirements, bool) {
	switch route {
	case routes.Onboarding:
		return routes.Requirements{}, true
	case routes.Quiz:
		return routes.DefaultRequirements(), true
	case routes.Dashboard, routes.Pathways, routes.Courses, routes.Profile:
		return routes.Requirements{RequireOnboarded: true, RequireQuiz: true}, true
	default:
		return routes.Requirements{}, false
	}
}

// resolveRoute applies the guard, following redirects to a renderable view.
// Redirects replace the requested route outright.
func (m *AppModel) resolveRoute(route string) string {
	for range [4]int{} {
		req, protected := requirementsFor(route)
		if !protected {
			return route
		}
		decision := routes.Decide(m.deps.Session.Snapshot(), req)
		switch decision.Outcome {
		case routes.Wait:
			return routes.Landing
		case routes.Render:
			return route
		case routes.Redirect:
			route = decision.Target
		}
	}
	return routes.Login
}

func (m AppModel) enterRoute(route string) (AppModel, tea.Cmd) {
	m.route = route
	switch route {
	case routes.Login:
		m.login = m.login.reset()
	case routes.Register:
		m.register = m.register.reset()
	case routes.OAuthCallback:
		var cmd tea.Cmd
		m.oauthWait, cmd = m.oauthWait.start()
		return m, cmd
	case routes.Onboarding:
		m.onboarding = m.onboarding.reset()
	case routes.Quiz:
		m.quiz = m.quiz.reset()
	case routes.Dashboard:
		m.dashboard = m.dashboard.reset()
	case routes.Pathways:
		m.pathways = m.pathways.reset()
	case routes.Courses:
		m.courses = m.courses.reset()
	}
	return m, nil
}

// Update handles app-level messages and delegates to the active page model
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bootstrapDoneMsg:
		return m.enterRoute(m.resolveRoute(routes.Dashboard))

	case navigateMsg:
		m.toastText = ""
		return m.enterRoute(m.resolveRoute(msg.route))

	case toastMsg:
		m.toastText = msg.text
		m.toastIsErr = msg.isErr
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch m.route {
	case routes.Login:
		m.login, cmd = m.login.Update(msg)
	case routes.Register:
		m.register, cmd = m.register.Update(msg)
	case routes.OAuthCallback:
		m.oauthWait, cmd = m.oauthWait.Update(msg)
	case routes.Onboarding:
		m.onboarding, cmd = m.onboarding.Update(msg)
	case routes.Quiz:
		m.quiz, cmd = m.quiz.Update(msg)
	case routes.Dashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case routes.Pathways:
		m.pathways, cmd = m.pathways.Update(msg)
	case routes.Courses:
		m.courses, cmd = m.courses.Update(msg)
	case routes.Profile:
		m.profile, cmd = m.profile.Update(msg)
	}
	return m, cmd
}

// View renders the active page
func (m AppModel) View() string {
	var page string
	switch m.route {
	case routes.Login:
		page = m.login.View()
	case routes.Register:
		page = m.register.View()
	case routes.OAuthCallback:
		page = m.oauthWait.View()
	case routes.Onboarding:
		page = m.onboarding.View()
	case routes.Quiz:
		page = m.quiz.View()
	case routes.Dashboard:
		page = m.dashboard.View()
	case routes.Pathways:
		page = m.pathways.View()
	case routes.Courses:
		page = m.courses.View()
	case routes.Profile:
		page = m.profile.View()
	default:
		page = titleStyle.Render("pathwise") + "\n\nChecking your session..."
	}

	if m.toastText != "" {
		if m.toastIsErr {
			page += "\n" + errorMessageStyle(m.toastText)
		} else {
			page += "\n" + statusMessageStyle(m.toastText)
		}
	}
	return docStyle.Render(page)
}
