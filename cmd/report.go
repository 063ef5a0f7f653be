package cmd

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carsa-legal/cobros/internal/export"
	"github.com/carsa-legal/cobros/internal/ledger"
	"github.com/carsa-legal/cobros/internal/store"
)

var (
	reportUser     string
	reportPassword string
	reportCedula   string
	reportNombre   string
	reportSelect   string
	reportExport   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a per-client collection report",
	Long: "Authenticates against the user table, searches for a client within the " +
		"attorney filter bound to the user, and prints the KPI totals and the " +
		"before/after-judgment pivot. Reads the sources directly; no server needed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(store.Options{
			DataPath:  flagData,
			UsersPath: flagUsers,
			DBPath:    flagDB,
			Logger:    zap.NewNop(),
		})
		if err != nil {
			return err
		}

		filter, err := ledger.Authenticate(st.Credentials(), reportUser, reportPassword)
		if err != nil {
			return err
		}

		visible, err := ledger.VisibleRows(st.Payments(), filter)
		if err != nil {
			return err
		}

		matches, err := ledger.ResolveClients(visible, reportCedula, reportNombre)
		if err != nil {
			return err
		}

		selected := matches[0].ClientID
		if len(matches) > 1 {
			if reportSelect == "" {
				fmt.Printf("Se encontraron %d clientes con esta búsqueda. Repita con --select CEDULA:\n\n", len(matches))
				for _, m := range matches {
					fmt.Printf("  %s\n", m.Label)
				}
				return nil
			}
			selected = ""
			for _, m := range matches {
				if m.ClientID == reportSelect {
					selected = m.ClientID
					break
				}
			}
			if selected == "" {
				return fmt.Errorf("%w: %s no está entre los resultados", ledger.ErrClientNotFound, reportSelect)
			}
		}

		rep := ledger.Aggregate(ledger.ClientRows(visible, selected))
		printReport(rep)

		if reportExport != "" {
			f, err := export.WritePivot(rep)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := f.SaveAs(reportExport); err != nil {
				return err
			}
			fmt.Printf("\nExportado: %s\n", reportExport)
		}
		return nil
	},
}

func printReport(rep *ledger.Report) {
	w := 100
	fmt.Println()
	fmt.Println(center("DETALLE DE COBROS", w))
	fmt.Println(center(strings.Repeat("=", 20), w))
	fmt.Println()

	cl := rep.Client
	fmt.Printf("  Cliente:           %s\n", ledger.TitleCase(cl.ClientName))
	fmt.Printf("  Nro Cédula:        %s\n", cl.ClientID)
	fmt.Printf("  Nro Juicio:        %s | Estado: %s\n", cl.CaseNumber, ledger.TitleCase(cl.CaseStatus))
	fmt.Printf("  Abogado Asignado:  %s\n", ledger.TitleCase(cl.Attorney))
	fmt.Printf("  Fecha Juicio Ante: %s\n", ledger.FormatDate(cl.JudgmentDate))
	fmt.Printf("  Último cobro:      %s\n", ledger.FormatDate(cl.LastPaymentDate))
	fmt.Println()

	fmt.Printf("  %-24s %s\n", "MONTO TOTAL COBRADO", ledger.FormatGuaranies(rep.TotalCollected))
	fmt.Printf("  %-24s %s\n", "MONTO DEMANDADO", ledger.FormatGuaranies(rep.ClaimedAmount))
	fmt.Printf("  %-24s %s\n", "SALDO PENDIENTE", ledger.FormatGuaranies(rep.OutstandingBalance))
	fmt.Println()

	fmt.Printf("  %-22s %-6s %-12s %18s %18s %18s\n",
		"PERIODO", "AÑO", "MES", "CHEQUE JUDICIAL", "EFECTIVO/OTROS", ledger.TotalLabel)
	fmt.Printf("  %s\n", strings.Repeat("─", w-4))
	for _, row := range rep.Pivot {
		if row.GrandTotal {
			fmt.Printf("  %s\n", strings.Repeat("─", w-4))
		}
		year := ""
		if row.Year > 0 {
			year = fmt.Sprintf("%d", row.Year)
		}
		fmt.Printf("  %-22s %-6s %-12s %18s %18s %18s\n",
			ledger.TitleCase(row.PeriodLabel), year, row.MonthLabel,
			pivotCell(row.JudicialCheck), pivotCell(row.CashOther), pivotCell(row.Total))
	}
}

func pivotCell(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	return ledger.FormatGuaranies(d)
}

func center(s string, w int) string {
	if len(s) >= w {
		return s
	}
	pad := (w - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func init() {
	reportCmd.Flags().StringVar(&reportUser, "user", "", "Username")
	reportCmd.Flags().StringVar(&reportPassword, "password", "", "Password")
	reportCmd.Flags().StringVar(&reportCedula, "cedula", "", "Client ID fragment")
	reportCmd.Flags().StringVar(&reportNombre, "nombre", "", "Client name fragment")
	reportCmd.Flags().StringVar(&reportSelect, "select", "", "Cédula to pick when the search is ambiguous")
	reportCmd.Flags().StringVar(&reportExport, "export", "", "Also write the pivot to this xlsx file")
	reportCmd.MarkFlagRequired("user")
	reportCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(reportCmd)
}
