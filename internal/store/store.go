package store

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/carsa-legal/cobros/internal/ledger"
)

// Options selects where the Record Store reads from. DataPath and UsersPath
// point at the flat files (data.xlsx/.xls and usuarios.csv). When DBPath is
// set and the file exists, both tables load from that sqlite snapshot
// instead (see SaveSnapshot).
type Options struct {
	DataPath  string
	UsersPath string
	DBPath    string
	Logger    *zap.Logger
}

// Store holds the payments ledger and the credentials table in memory.
// Both tables are populated exactly once, in Open, and are immutable for the
// life of the process; nothing invalidates them short of a restart. The
// sources are never written back.
type Store struct {
	payments []ledger.PaymentRecord
	creds    []ledger.Credential
	log      *zap.Logger
}

// New builds a Store from already-loaded tables, for callers that source
// rows elsewhere (tests, embedders).
func New(payments []ledger.PaymentRecord, creds []ledger.Credential) *Store {
	return &Store{payments: payments, creds: creds, log: zap.NewNop()}
}

// Open loads both sources. A missing or unreadable source is
// ledger.ErrSourceNotFound; a source without its required columns is
// ledger.ErrMalformedSource. Either is terminal for the run: the caller
// surfaces the message and stops, there are no retries.
func Open(opts Options) (*Store, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{log: log.Named("store")}

	if opts.DBPath != "" {
		if _, err := os.Stat(opts.DBPath); err == nil {
			if err := s.loadSnapshot(opts.DBPath); err != nil {
				return nil, fmt.Errorf("load snapshot %s: %w", opts.DBPath, err)
			}
			s.log.Info("loaded snapshot",
				zap.String("db", opts.DBPath),
				zap.Int("payments", len(s.payments)),
				zap.Int("credentials", len(s.creds)))
			return s, nil
		}
	}

	payments, err := loadPayments(opts.DataPath)
	if err != nil {
		return nil, err
	}
	creds, err := loadCredentials(opts.UsersPath)
	if err != nil {
		return nil, err
	}

	s.payments = payments
	s.creds = creds
	s.log.Info("loaded sources",
		zap.String("data", opts.DataPath),
		zap.String("users", opts.UsersPath),
		zap.Int("payments", len(payments)),
		zap.Int("credentials", len(creds)))
	return s, nil
}

// Payments returns the memoized ledger table. Callers must not mutate it.
func (s *Store) Payments() []ledger.PaymentRecord {
	return s.payments
}

// Credentials returns the memoized users table. Callers must not mutate it.
func (s *Store) Credentials() []ledger.Credential {
	return s.creds
}
