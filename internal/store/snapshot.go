package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/carsa-legal/cobros/internal/ledger"
)

// A snapshot is a sqlite copy of both tables, written once by the snapshot
// command so subsequent runs skip the spreadsheet parse. It is a cache of
// the flat files, not a second source of truth: regenerate it after the
// files change.

func openSnapshotDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", path)
	return sql.Open("sqlite", dsn)
}

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS payments (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	client_id      TEXT NOT NULL,
	client_name    TEXT NOT NULL,
	attorney       TEXT NOT NULL,
	case_number    TEXT NOT NULL,
	case_status    TEXT NOT NULL,
	judgment_date  TEXT NOT NULL,
	payment_date   TEXT NOT NULL,
	amount         TEXT NOT NULL,
	method         TEXT NOT NULL,
	claimed_amount TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_payments_client ON payments(client_id);
CREATE INDEX IF NOT EXISTS idx_payments_attorney ON payments(attorney);
CREATE TABLE IF NOT EXISTS credentials (
	username        TEXT NOT NULL,
	secret          TEXT NOT NULL,
	attorney_filter TEXT NOT NULL
);
`

// SaveSnapshot writes the loaded tables to a sqlite file, replacing any
// previous contents.
func (s *Store) SaveSnapshot(ctx context.Context, path string) error {
	db, err := openSnapshotDB(path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	for _, table := range []string{"payments", "credentials"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, p := range s.payments {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO payments (client_id, client_name, attorney, case_number, case_status,
				judgment_date, payment_date, amount, method, claimed_amount)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ClientID, p.ClientName, p.Attorney, p.CaseNumber, p.CaseStatus,
			encodeDate(p.JudgmentDate), encodeDate(p.PaymentDate),
			p.Amount.String(), p.Method, p.ClaimedAmount.String(),
		)
		if err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
	}
	for _, c := range s.creds {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO credentials (username, secret, attorney_filter) VALUES (?, ?, ?)`,
			c.Username, c.Secret, c.AttorneyFilter,
		)
		if err != nil {
			return fmt.Errorf("insert credential: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) loadSnapshot(path string) error {
	db, err := openSnapshotDB(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ledger.ErrSourceNotFound, path)
	}
	defer db.Close()

	rows, err := db.Query(
		`SELECT client_id, client_name, attorney, case_number, case_status,
			judgment_date, payment_date, amount, method, claimed_amount
		FROM payments ORDER BY id`)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ledger.ErrMalformedSource, path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p ledger.PaymentRecord
		var judgment, payment, amount, claimed string
		if err := rows.Scan(&p.ClientID, &p.ClientName, &p.Attorney, &p.CaseNumber,
			&p.CaseStatus, &judgment, &payment, &amount, &p.Method, &claimed); err != nil {
			return fmt.Errorf("scan payment: %w", err)
		}
		p.JudgmentDate = decodeDate(judgment)
		p.PaymentDate = decodeDate(payment)
		p.Amount = decodeAmount(amount)
		p.ClaimedAmount = decodeAmount(claimed)
		s.payments = append(s.payments, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	credRows, err := db.Query(`SELECT username, secret, attorney_filter FROM credentials`)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ledger.ErrMalformedSource, path, err)
	}
	defer credRows.Close()

	for credRows.Next() {
		var c ledger.Credential
		if err := credRows.Scan(&c.Username, &c.Secret, &c.AttorneyFilter); err != nil {
			return fmt.Errorf("scan credential: %w", err)
		}
		s.creds = append(s.creds, c)
	}
	return credRows.Err()
}

// Dates travel as RFC 3339 text; the zero time as the empty string.
func encodeDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func decodeDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func decodeAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
