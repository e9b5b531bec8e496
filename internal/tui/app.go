package tui

import (
	"context"
	"net/http"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rachitverma/careerlens/internal/cache"
	"github.com/rachitverma/careerlens/internal/session"
	"github.com/rachitverma/careerlens/pkg/client"
	"github.com/rachitverma/careerlens/pkg/domain"
)

// profileLoadedMsg is broadcast to every page: the profile carries the
// education record the dashboard predicts from and the email skills are
// keyed by, so all pages stay on the same copy.
type profileLoadedMsg struct {
	profile *domain.Profile
	err     error
}

// authFailedMsg reports a rejected or expired token from any request.
type authFailedMsg struct{}

// authCheck turns an unauthorized response into the shared auth-failed
// signal. Callers handle every other error themselves.
func authCheck(err error) tea.Cmd {
	if client.IsStatus(err, http.StatusUnauthorized) {
		return func() tea.Msg { return authFailedMsg{} }
	}
	return nil
}

type view int

const (
	viewDashboard view = iota
	viewProfile
	viewEducation
	viewAdmin
)

var viewTabs = []struct {
	key   string
	label string
	view  view
}{
	{"1", "dashboard", viewDashboard},
	{"2", "profile", viewProfile},
	{"3", "education", viewEducation},
	{"4", "admin", viewAdmin},
}

// App is the root model. It owns page routing and the shared session
// state; each page owns its own data and network commands.
type App struct {
	client *client.Client
	store  *session.Store
	sess   domain.Session

	view        view
	dashboard   dashboardModel
	profile     profileModel
	education   educationModel
	admin       adminModel
	adminInited bool

	expired bool
	notice  string
	width   int
	height  int
}

func NewApp(c *client.Client, store *session.Store, sess domain.Session, identity domain.Identity, pc *cache.Cache) App {
	return App{
		client:    c,
		store:     store,
		sess:      sess,
		dashboard: newDashboardModel(c, pc),
		profile:   newProfileModel(c, identity),
		education: newEducationModel(c),
		admin:     newAdminModel(c),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadProfile(), a.dashboard.Init(), a.education.Init())
}

func (a App) loadProfile() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		profile, err := c.GetProfile(context.Background())
		return profileLoadedMsg{profile: profile, err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authFailedMsg:
		// First auth failure wins; the session file is cleared once and
		// the app locks until relaunch.
		if !a.expired {
			a.expired = true
			_ = a.store.Clear()
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.broadcast(msg)

	case profileLoadedMsg:
		if cmd := authCheck(msg.err); cmd != nil {
			return a, cmd
		}
		return a.broadcast(msg)

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	return a.route(msg)
}

// broadcast delivers shared messages to every page.
func (a App) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.dashboard, cmd = a.dashboard.Update(msg)
	cmds = append(cmds, cmd)
	a.profile, cmd = a.profile.Update(msg)
	cmds = append(cmds, cmd)
	a.education, cmd = a.education.Update(msg)
	cmds = append(cmds, cmd)
	a.admin, cmd = a.admin.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// route delivers a message to the page that owns its command.
func (a App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.(type) {
	case predictResultMsg, historyLoadedMsg, insightsLoadedMsg, feedbackSentMsg, copyResultMsg:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case profileSavedMsg:
		a.profile, cmd = a.profile.Update(msg)
	case educationLoadedMsg, educationSavedMsg, skillsLoadedMsg, skillsSavedMsg:
		a.education, cmd = a.education.Update(msg)
	case logsLoadedMsg, adminFeedbackLoadedMsg, flaggedMsg, datasetUploadedMsg, retrainResultMsg:
		a.admin, cmd = a.admin.Update(msg)
	}
	return a, cmd
}

// capturingInput reports whether the active page is in a text-entry
// state, in which case digit and letter keys belong to it.
func (a App) capturingInput() bool {
	switch a.view {
	case viewDashboard:
		return a.dashboard.fbOpen
	case viewProfile:
		return a.profile.editing
	case viewEducation:
		return !a.education.inSkills() && isTypedField(eduField(a.education.focus))
	case viewAdmin:
		return a.admin.uploadOpen
	}
	return false
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.expired {
		switch msg.String() {
		case "q", "ctrl+c", "enter", "esc":
			return a, tea.Quit
		}
		return a, nil
	}

	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.capturingInput() {
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "1", "2", "3", "4":
			return a.switchView(msg.String())
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(tea.Msg(msg))
	case viewProfile:
		a.profile, cmd = a.profile.Update(tea.Msg(msg))
	case viewEducation:
		a.education, cmd = a.education.Update(tea.Msg(msg))
	case viewAdmin:
		a.admin, cmd = a.admin.Update(tea.Msg(msg))
	}
	return a, cmd
}

func (a App) switchView(key string) (tea.Model, tea.Cmd) {
	a.notice = ""
	for _, tab := range viewTabs {
		if tab.key != key {
			continue
		}
		if tab.view == viewAdmin && !a.sess.IsAdmin() {
			a.notice = "admin access only"
			return a, nil
		}
		a.view = tab.view
		switch tab.view {
		case viewProfile:
			// Re-entering the page refetches; education edits land in the
			// profile and must show up here.
			return a, a.loadProfile()
		case viewAdmin:
			if !a.adminInited {
				a.adminInited = true
				return a, a.admin.Init()
			}
		}
		return a, nil
	}
	return a, nil
}

// -- view --

func (a App) View() string {
	if a.expired {
		var b strings.Builder
		b.WriteString("\n" + renderLogo() + "\n\n")
		b.WriteString(" " + errStyle.Render("session expired") + "\n")
		b.WriteString(" " + dimStyle.Render("run `careerlens login` to sign in again") + "\n\n")
		b.WriteString(" " + helpEntry("q", "quit") + "\n")
		return b.String()
	}

	var b strings.Builder
	b.WriteString(renderLogo() + "\n")
	b.WriteString(a.identityLine() + "\n")
	b.WriteString(a.tabBar() + "\n\n")

	var body string
	switch a.view {
	case viewDashboard:
		body = a.dashboard.View()
	case viewProfile:
		body = a.profile.View()
	case viewEducation:
		body = a.education.View()
	case viewAdmin:
		body = a.admin.View()
	}
	if a.height > 0 {
		body = truncateToHeight(body, a.height-8)
	}
	b.WriteString(body)

	if a.notice != "" {
		b.WriteString("\n " + errStyle.Render(a.notice) + "\n")
	}
	b.WriteString("\n" + a.helpBar() + "\n")
	return b.String()
}

func (a App) identityLine() string {
	identity := a.profile.identity
	who := identity.Name
	if who == "" {
		who = identity.Email
	}
	if p := a.profile.profile; p != nil && who == "" {
		who = p.Username
	}
	line := " " + normalStyle.Render(orPlaceholder(who))
	if a.sess.IsAdmin() {
		line += "  " + accentStyle.Render("admin")
	}
	return line
}

func (a App) tabBar() string {
	var tabs []string
	for _, tab := range viewTabs {
		if tab.view == viewAdmin && !a.sess.IsAdmin() {
			continue
		}
		label := tab.key + ":" + tab.label
		if tab.view == a.view {
			tabs = append(tabs, selectedStyle.Render(label))
		} else {
			tabs = append(tabs, dimStyle.Render(label))
		}
	}
	return " " + strings.Join(tabs, "  ")
}

func (a App) helpBar() string {
	var page string
	switch a.view {
	case viewDashboard:
		page = a.dashboard.helpKeys()
	case viewProfile:
		page = a.profile.helpKeys()
	case viewEducation:
		page = a.education.helpKeys()
	case viewAdmin:
		page = a.admin.helpKeys()
	}
	return " " + page + "  " + helpEntry("q", "quit")
}
