package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/carsa-legal/cobros/internal/ledger"
)

// Credentials column headers after normalization (trim + lower-case).
const (
	colUsername = "usuario"
	colSecret   = "contrasena"
	colFilter   = "filtro_abogado"
)

func loadCredentials(path string) ([]ledger.Credential, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ledger.ErrSourceNotFound, path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ledger.ErrMalformedSource, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", ledger.ErrMalformedSource, path)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range []string{colUsername, colSecret, colFilter} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s lacks column %s", ledger.ErrMalformedSource, path, name)
		}
	}

	creds := make([]ledger.Credential, 0, len(rows)-1)
	for _, row := range rows[1:] {
		creds = append(creds, ledger.Credential{
			Username:       strings.ToLower(cellAt(row, cols[colUsername])),
			Secret:         cellAt(row, cols[colSecret]),
			AttorneyFilter: strings.ToLower(cellAt(row, cols[colFilter])),
		})
	}
	return creds, nil
}
