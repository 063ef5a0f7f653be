package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carsa-legal/cobros/internal/client"
)

type mode int

const (
	modeLogin mode = iota
	modeSearch
	modePicker
	modeDashboard
)

type loggedOutMsg struct{}

// App drives the login → search → (picker) → dashboard flow. Session state
// lives on the HTTP client's token; logging out clears everything and
// returns to the login form.
type App struct {
	client        *client.Client
	mode          mode
	width, height int

	login     loginModel
	search    searchModel
	picker    pickerModel
	dashboard dashboardModel
}

func NewApp(c *client.Client) *App {
	return &App{
		client: c,
		mode:   modeLogin,
		login:  newLogin(),
		search: newSearch(),
	}
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.search.width = msg.Width
		a.login.width = msg.Width
		a.picker.width = msg.Width
		a.picker.height = msg.Height - 4
		a.dashboard.width = msg.Width
		a.dashboard.height = msg.Height - 4
		return a, nil

	case loginResultMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.update(msg, a.client)
		if msg.err == nil && msg.result != nil {
			a.mode = modeSearch
			a.search.reset()
		}
		return a, cmd

	case matchesLoadedMsg:
		var cmd tea.Cmd
		a.search, cmd = a.search.update(msg, a.client)
		if msg.err == nil {
			if len(msg.matches) == 1 {
				// Single hit: auto-select, no picker.
				a.picker = newPicker(msg.matches)
				a.picker.loading = true
				a.mode = modePicker
				return a, loadReport(a.client, msg.matches[0].ClientID)
			}
			a.picker = newPicker(msg.matches)
			a.mode = modePicker
		}
		return a, cmd

	case reportLoadedMsg:
		var cmd tea.Cmd
		a.picker, cmd = a.picker.update(msg, a.client)
		if msg.err == nil && msg.report != nil {
			a.dashboard = newDashboard(msg.report)
			a.mode = modeDashboard
		}
		return a, cmd

	case exportDoneMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg, a.client)
		return a, cmd

	case loggedOutMsg:
		a.mode = modeLogin
		a.login.reset()
		a.search.reset()
		a.picker = pickerModel{}
		a.dashboard = dashboardModel{}
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, keys.Logout):
			if a.mode != modeLogin {
				return a, a.logoutCmd()
			}
			return a, nil

		case key.Matches(msg, keys.Escape):
			switch a.mode {
			case modePicker:
				a.mode = modeSearch
				a.search.searching = false
			case modeDashboard:
				a.mode = modeSearch
				a.search.searching = false
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.mode {
	case modeLogin:
		a.login, cmd = a.login.update(msg, a.client)
	case modeSearch:
		a.search, cmd = a.search.update(msg, a.client)
	case modePicker:
		a.picker, cmd = a.picker.update(msg, a.client)
	case modeDashboard:
		a.dashboard, cmd = a.dashboard.update(msg, a.client)
	}
	return a, cmd
}

func (a *App) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		_ = a.client.Logout(context.Background())
		return loggedOutMsg{}
	}
}

func (a *App) View() string {
	var content string
	switch a.mode {
	case modeLogin:
		content = a.login.view()
	case modeSearch:
		content = a.search.view()
	case modePicker:
		content = a.picker.view()
	case modeDashboard:
		content = a.dashboard.view()
	}

	help := "enter:confirm  esc:back  ctrl+l:cerrar sesión  ctrl+c:salir"
	if a.mode == modeDashboard {
		help = "e:exportar xlsx  " + help
	}
	if a.mode == modeLogin {
		help = "enter:confirm  tab:campo siguiente  ctrl+c:salir"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		content,
		"",
		dimStyle.Render(help),
	)
}
