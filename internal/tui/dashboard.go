package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/carsa-legal/cobros/internal/client"
	"github.com/carsa-legal/cobros/internal/ledger"
)

type exportDoneMsg struct {
	path string
	err  error
}

type dashboardModel struct {
	report    *ledger.Report
	exporting bool
	statusMsg string
	err       error
	width     int
	height    int
}

func newDashboard(rep *ledger.Report) dashboardModel {
	return dashboardModel{report: rep}
}

func (m dashboardModel) update(msg tea.Msg, c *client.Client) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.statusMsg = "Exportado: " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Export) && !m.exporting {
			m.exporting = true
			m.err = nil
			m.statusMsg = ""
			cedula := m.report.Client.ClientID
			return m, func() tea.Msg {
				data, filename, err := c.ExportReport(context.Background(), cedula)
				if err != nil {
					return exportDoneMsg{err: err}
				}
				if err := os.WriteFile(filename, data, 0o644); err != nil {
					return exportDoneMsg{err: err}
				}
				return exportDoneMsg{path: filename}
			}
		}
	}
	return m, nil
}

func (m *dashboardModel) view() string {
	if m.report == nil {
		return dimStyle.Render("Sin datos.")
	}
	rep := m.report

	var b strings.Builder
	b.WriteString(m.viewKPIs(rep))
	b.WriteString("\n\n")
	b.WriteString(m.viewClient(rep))
	b.WriteString("\n\n")
	b.WriteString(m.viewPivot(rep))

	if m.exporting {
		b.WriteString("\n" + dimStyle.Render("Exportando..."))
	}
	if m.statusMsg != "" {
		b.WriteString("\n" + successStyle.Render(m.statusMsg))
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()))
	}
	return b.String()
}

func (m *dashboardModel) viewKPIs(rep *ledger.Report) string {
	balanceStyle := balanceNegativeStyle
	if rep.OutstandingBalance.IsPositive() {
		balanceStyle = balancePositiveStyle
	}

	kpi := func(label string, value string, style lipgloss.Style) string {
		return kpiBoxStyle.Render(label + "\n" + style.Render(value))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		kpi("MONTO TOTAL COBRADO", ledger.FormatGuaranies(rep.TotalCollected), kpiValueStyle),
		" ",
		kpi("MONTO DEMANDADO", ledger.FormatGuaranies(rep.ClaimedAmount), kpiValueStyle),
		" ",
		kpi("SALDO PENDIENTE", ledger.FormatGuaranies(rep.OutstandingBalance), balanceStyle),
	)
}

func (m *dashboardModel) viewClient(rep *ledger.Report) string {
	cl := rep.Client
	var b strings.Builder
	b.WriteString(headerStyle.Render("Cliente: "+ledger.TitleCase(cl.ClientName)) + "\n")
	b.WriteString(labelStyle.Render("Nro Cédula") + cl.ClientID + "\n")
	b.WriteString(labelStyle.Render("Nro Juicio") + cl.CaseNumber +
		dimStyle.Render("  Estado: ") + ledger.TitleCase(cl.CaseStatus) + "\n")
	b.WriteString(labelStyle.Render("Abogado Asignado") + ledger.TitleCase(cl.Attorney) + "\n")
	b.WriteString(labelStyle.Render("Fecha Juicio Ante") + ledger.FormatDate(cl.JudgmentDate) + "\n")
	b.WriteString(labelStyle.Render("Último cobro") + ledger.FormatDate(cl.LastPaymentDate))
	return boxStyle.Render(b.String())
}

func (m *dashboardModel) viewPivot(rep *ledger.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("HISTORIAL DE COBROS POR MES"))
	b.WriteString("\n")

	const rowFmt = "  %-22s %-6s %-12s %18s %18s %18s"
	b.WriteString(headerStyle.Render(fmt.Sprintf(rowFmt,
		"PERIODO", "AÑO", "MES", "CHEQUE JUDICIAL", "EFECTIVO/OTROS", ledger.TotalLabel)))
	b.WriteString("\n")

	for _, row := range rep.Pivot {
		year := ""
		if row.Year > 0 {
			year = fmt.Sprintf("%d", row.Year)
		}
		line := fmt.Sprintf(rowFmt,
			ledger.TitleCase(row.PeriodLabel), year, row.MonthLabel,
			cellAmount(row.JudicialCheck),
			cellAmount(row.CashOther),
			cellAmount(row.Total))
		if row.GrandTotal {
			line = totalRowStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// cellAmount renders zero cells as a dash so the pivot reads sparsely, the
// same way the office's spreadsheet view did.
func cellAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	return ledger.FormatGuaranies(d)
}
