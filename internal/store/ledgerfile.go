package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/carsa-legal/cobros/internal/ledger"
)

// Ledger column headers after normalization (trim + upper-case).
const (
	colClientID     = "NRO_CEDULA"
	colClientName   = "NOMBRE_CLIENTE"
	colAttorney     = "ABOGADO"
	colCaseNumber   = "NRO_JUICIO"
	colCaseStatus   = "ESTADO"
	colJudgmentDate = "FECHA_JUICIO_ANTE"
	colPaymentDate  = "FECHA_PAGO"
	colAmount       = "MONTO_TOTAL_COBRADO"
	colMethod       = "FORMA_PAGO"
	colClaimed      = "MONTO_DEMANDA"
)

var requiredLedgerColumns = []string{
	colClientID, colClientName, colAttorney, colCaseNumber, colCaseStatus,
	colJudgmentDate, colPaymentDate, colAmount, colMethod, colClaimed,
}

func loadPayments(path string) ([]ledger.PaymentRecord, error) {
	rows, err := readSpreadsheet(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", ledger.ErrMalformedSource, path)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredLedgerColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s lacks column %s", ledger.ErrMalformedSource, path, name)
		}
	}

	records := make([]ledger.PaymentRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(name string) string { return cellAt(row, cols[name]) }
		records = append(records, ledger.PaymentRecord{
			ClientID:      cell(colClientID),
			ClientName:    strings.ToLower(cell(colClientName)),
			Attorney:      strings.ToLower(cell(colAttorney)),
			CaseNumber:    cell(colCaseNumber),
			CaseStatus:    strings.ToLower(cell(colCaseStatus)),
			JudgmentDate:  parseDate(cell(colJudgmentDate)),
			PaymentDate:   parseDate(cell(colPaymentDate)),
			Amount:        parseAmount(cell(colAmount)),
			Method:        strings.ToLower(cell(colMethod)),
			ClaimedAmount: parseAmount(cell(colClaimed)),
		})
	}
	return records, nil
}

// readSpreadsheet reads every cell of the first sheet, picking the reader by
// extension: legacy .xls via extrame/xls, everything else via excelize.
func readSpreadsheet(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ledger.ErrSourceNotFound, path)
	}

	if strings.ToLower(filepath.Ext(path)) == ".xls" {
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ledger.ErrMalformedSource, path, err)
		}
		if workbook.NumSheets() == 0 {
			return nil, fmt.Errorf("%w: %s has no worksheet", ledger.ErrMalformedSource, path)
		}
		return workbook.ReadAllCells(100000), nil
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ledger.ErrMalformedSource, path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: %s has no worksheet", ledger.ErrMalformedSource, path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ledger.ErrMalformedSource, path, err)
	}
	return rows, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"01-02-06",
	"1/2/06 15:04",
	"Jan 2, 2006",
}

// parseDate is deliberately lenient: an unparsable or empty cell is the zero
// time, never an error. Missing dates propagate as "unknown period".
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseAmount coerces a monetary cell to a decimal, tolerating "Gs." prefixes
// and Latin American separators ("1.234.567" or "1.234,56"). Non-numeric
// cells become zero, which is what the balance computation expects.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "Gs."))
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if strings.Count(s, ".") > 1 {
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
