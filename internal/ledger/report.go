package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TotalLabel marks the grand-total pivot row and column. Distinct from every
// real period label so the presenter can style it.
const TotalLabel = "TOTAL COBRADO"

// ClientSummary is the detail block shown above the pivot.
type ClientSummary struct {
	ClientID        string    `json:"client_id"`
	ClientName      string    `json:"client_name"`
	CaseNumber      string    `json:"case_number"`
	CaseStatus      string    `json:"case_status"`
	Attorney        string    `json:"attorney"`
	JudgmentDate    time.Time `json:"judgment_date"`
	LastPaymentDate time.Time `json:"last_payment_date"`
}

// PivotRow is one (period, year, month) combination, or the grand-total row.
// Year and Month are zero when the underlying payment dates are missing.
type PivotRow struct {
	Period        Period          `json:"period"`
	PeriodLabel   string          `json:"period_label"`
	Year          int             `json:"year"`
	Month         time.Month      `json:"month"`
	MonthLabel    string          `json:"month_label"`
	JudicialCheck decimal.Decimal `json:"judicial_check"`
	CashOther     decimal.Decimal `json:"cash_other"`
	Total         decimal.Decimal `json:"total"`
	GrandTotal    bool            `json:"grand_total"`
}

// Report is the full per-client result: top-line KPIs, the client detail
// block, and the pivot. Recomputed on every search, never stored.
type Report struct {
	TotalCollected     decimal.Decimal `json:"total_collected"`
	ClaimedAmount      decimal.Decimal `json:"claimed_amount"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	Pivot              []PivotRow      `json:"pivot"`
	Client             ClientSummary   `json:"client"`
}

type pivotKey struct {
	period Period
	year   int
	month  time.Month
}

// Aggregate computes the report for one client. clientRows must be non-empty
// and share a single client ID; that is the caller's contract, not a handled
// condition.
//
// The claimed amount and judgment date come from the first row (they are
// repeated across a client's rows by construction). The outstanding balance
// is signed and may go negative on overpayment.
func Aggregate(clientRows []PaymentRecord) *Report {
	first := clientRows[0]

	rep := &Report{
		ClaimedAmount: first.ClaimedAmount,
		Client: ClientSummary{
			ClientID:     first.ClientID,
			ClientName:   first.ClientName,
			CaseNumber:   first.CaseNumber,
			CaseStatus:   first.CaseStatus,
			Attorney:     first.Attorney,
			JudgmentDate: first.JudgmentDate,
		},
	}

	cells := make(map[pivotKey]*PivotRow)
	var order []pivotKey
	var totalJudicial, totalCash decimal.Decimal

	for _, r := range clientRows {
		rep.TotalCollected = rep.TotalCollected.Add(r.Amount)
		if r.PaymentDate.After(rep.Client.LastPaymentDate) {
			rep.Client.LastPaymentDate = r.PaymentDate
		}

		key := pivotKey{period: ClassifyPeriod(r.PaymentDate, first.JudgmentDate)}
		if !r.PaymentDate.IsZero() {
			key.year = r.PaymentDate.Year()
			key.month = r.PaymentDate.Month()
		}

		row, ok := cells[key]
		if !ok {
			row = &PivotRow{
				Period:      key.period,
				PeriodLabel: key.period.String(),
				Year:        key.year,
				Month:       key.month,
				MonthLabel:  MonthName(key.month),
			}
			cells[key] = row
			order = append(order, key)
		}

		switch BucketMethod(r.Method) {
		case BucketJudicialCheck:
			row.JudicialCheck = row.JudicialCheck.Add(r.Amount)
			totalJudicial = totalJudicial.Add(r.Amount)
		default:
			row.CashOther = row.CashOther.Add(r.Amount)
			totalCash = totalCash.Add(r.Amount)
		}
	}

	rep.OutstandingBalance = rep.ClaimedAmount.Sub(rep.TotalCollected)

	// Fixed categorical order: period rank, then year ascending, then
	// calendar month number ascending, with missing-date rows last within
	// their period. Never alphabetical.
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.period != b.period {
			return a.period < b.period
		}
		if (a.year == 0) != (b.year == 0) {
			return b.year == 0
		}
		if a.year != b.year {
			return a.year < b.year
		}
		return a.month < b.month
	})

	rep.Pivot = make([]PivotRow, 0, len(order)+1)
	for _, key := range order {
		row := cells[key]
		row.Total = row.JudicialCheck.Add(row.CashOther)
		rep.Pivot = append(rep.Pivot, *row)
	}
	rep.Pivot = append(rep.Pivot, PivotRow{
		PeriodLabel:   TotalLabel,
		JudicialCheck: totalJudicial,
		CashOther:     totalCash,
		Total:         totalJudicial.Add(totalCash),
		GrandTotal:    true,
	})

	return rep
}
