package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/carsa-legal/cobros/internal/client"
)

type loginResultMsg struct {
	result *client.LoginResult
	err    error
}

type loginModel struct {
	username   textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	warning    string
	err        error
	width      int
}

func newLogin() loginModel {
	user := textinput.New()
	user.Placeholder = "Ingresar Usuario"
	user.CharLimit = 40
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "Contraseña"
	pass.CharLimit = 60
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return loginModel{username: user, password: pass}
}

func (m loginModel) update(msg tea.Msg, c *client.Client) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			// Generic message regardless of which half was wrong.
			m.err = msg.err
			m.password.SetValue("")
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Down), key.Matches(msg, keys.Up):
			m.focus = (m.focus + 1) % 2
			m.syncFocus()
			return m, nil

		case key.Matches(msg, keys.Enter):
			if m.focus == 0 {
				m.focus = 1
				m.syncFocus()
				return m, nil
			}
			user := strings.TrimSpace(m.username.Value())
			pass := m.password.Value()
			if user == "" || pass == "" {
				m.warning = "Por favor, ingrese el usuario y la contraseña."
				return m, nil
			}
			m.warning = ""
			m.err = nil
			m.submitting = true
			return m, func() tea.Msg {
				result, err := c.Login(context.Background(), user, pass)
				return loginResultMsg{result: result, err: err}
			}
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *loginModel) syncFocus() {
	if m.focus == 0 {
		m.username.Focus()
		m.password.Blur()
	} else {
		m.username.Blur()
		m.password.Focus()
	}
}

func (m *loginModel) reset() {
	m.username.SetValue("")
	m.password.SetValue("")
	m.focus = 0
	m.syncFocus()
	m.warning = ""
	m.err = nil
	m.submitting = false
}

func (m *loginModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Gestión Jurídica - CARSA"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Iniciá sesión para continuar"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("USUARIO") + m.username.View() + "\n")
	b.WriteString(labelStyle.Render("CONTRASEÑA") + m.password.View() + "\n")

	if m.submitting {
		b.WriteString("\n" + dimStyle.Render("Verificando..."))
	}
	if m.warning != "" {
		b.WriteString("\n" + errorStyle.Render(m.warning))
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("Usuario o contraseña incorrectos."))
	}
	return boxStyle.Render(b.String())
}
