package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/carsa-legal/cobros/internal/client"
	"github.com/carsa-legal/cobros/internal/ledger"
)

type reportLoadedMsg struct {
	report *ledger.Report
	err    error
}

// pickerModel disambiguates a search that hit more than one client. The
// first entry starts selected; no report runs until the user confirms.
type pickerModel struct {
	matches []ledger.ClientMatch
	cursor  int
	loading bool
	err     error
	width   int
	height  int
}

func newPicker(matches []ledger.ClientMatch) pickerModel {
	return pickerModel{matches: matches}
}

func loadReport(c *client.Client, cedula string) tea.Cmd {
	return func() tea.Msg {
		rep, err := c.ClientReport(context.Background(), cedula)
		return reportLoadedMsg{report: rep, err: err}
	}
}

func (m pickerModel) update(msg tea.Msg, c *client.Client) (pickerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			m.loading = true
			m.err = nil
			return m, loadReport(c, m.matches[m.cursor].ClientID)
		}
	}
	return m, nil
}

func (m *pickerModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Se encontraron %d clientes con esta búsqueda", len(m.matches))))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Seleccione el cliente a visualizar"))
	b.WriteString("\n\n")

	for i, match := range m.matches {
		line := "  " + match.Label
		if i == m.cursor {
			line = selectedStyle.Render("> " + match.Label)
		}
		b.WriteString(line + "\n")
	}

	if m.loading {
		b.WriteString("\n" + dimStyle.Render("Generando reporte..."))
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()))
	}
	return b.String()
}
