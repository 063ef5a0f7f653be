package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/carsa-legal/cobros/internal/client"
	"github.com/carsa-legal/cobros/internal/ledger"
)

type matchesLoadedMsg struct {
	matches []ledger.ClientMatch
	err     error
}

type searchModel struct {
	cedula    textinput.Model
	nombre    textinput.Model
	focus     int
	searching bool
	warning   string
	err       error
	width     int
}

func newSearch() searchModel {
	cedula := textinput.New()
	cedula.Placeholder = "Ingrese Cédula"
	cedula.CharLimit = 20

	nombre := textinput.New()
	nombre.Placeholder = "Ingrese Nombre"
	nombre.CharLimit = 60

	m := searchModel{cedula: cedula, nombre: nombre}
	m.cedula.Focus()
	return m
}

func (m searchModel) update(msg tea.Msg, c *client.Client) (searchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case matchesLoadedMsg:
		m.searching = false
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Down), key.Matches(msg, keys.Up):
			m.focus = (m.focus + 1) % 2
			m.syncFocus()
			return m, nil

		case key.Matches(msg, keys.Enter):
			cedula := strings.TrimSpace(m.cedula.Value())
			nombre := strings.TrimSpace(m.nombre.Value())
			if cedula == "" && nombre == "" {
				m.warning = "Ingrese el número de cédula o el nombre del cliente para buscar."
				return m, nil
			}
			m.warning = ""
			m.err = nil
			m.searching = true
			return m, func() tea.Msg {
				matches, err := c.SearchClients(context.Background(), cedula, nombre)
				return matchesLoadedMsg{matches: matches, err: err}
			}
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.cedula, cmd = m.cedula.Update(msg)
	} else {
		m.nombre, cmd = m.nombre.Update(msg)
	}
	return m, cmd
}

func (m *searchModel) syncFocus() {
	if m.focus == 0 {
		m.cedula.Focus()
		m.nombre.Blur()
	} else {
		m.cedula.Blur()
		m.nombre.Focus()
	}
}

func (m *searchModel) reset() {
	m.cedula.SetValue("")
	m.nombre.SetValue("")
	m.focus = 0
	m.syncFocus()
	m.warning = ""
	m.err = nil
	m.searching = false
}

func (m *searchModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Módulo de Búsqueda de Clientes"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("NRO DE CEDULA") + m.cedula.View() + "\n")
	b.WriteString(labelStyle.Render("NOMBRE DE CLIENTE") + m.nombre.View() + "\n")

	if m.searching {
		b.WriteString("\n" + dimStyle.Render("Buscando..."))
	}
	if m.warning != "" {
		b.WriteString("\n" + errorStyle.Render(m.warning))
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()))
	}
	return boxStyle.Render(b.String())
}
