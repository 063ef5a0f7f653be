package ledger

import "strings"

// FilterAll is the attorney-filter sentinel that grants visibility over
// every attorney's records.
const FilterAll = "todos"

// Authenticate matches a submitted username/secret pair against the
// credentials table and returns the bound attorney filter. The username is
// trimmed and lower-cased before comparison; the secret is compared exactly.
// When the table carries duplicate usernames the first row wins.
//
// Zero matches return ErrInvalidCredentials without distinguishing an
// unknown user from a wrong secret.
func Authenticate(creds []Credential, username, secret string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || secret == "" {
		return "", ErrInvalidCredentials
	}

	for _, c := range creds {
		if c.Username == username && c.Secret == secret {
			return c.AttorneyFilter, nil
		}
	}
	return "", ErrInvalidCredentials
}

// VisibleRows narrows the ledger to the rows an authenticated session may
// see. The FilterAll sentinel passes every row through; an empty filter is
// a broken session and refuses to proceed rather than defaulting to all.
func VisibleRows(rows []PaymentRecord, attorneyFilter string) ([]PaymentRecord, error) {
	attorneyFilter = strings.ToLower(strings.TrimSpace(attorneyFilter))
	if attorneyFilter == "" {
		return nil, ErrNoAttorneyFilter
	}
	if attorneyFilter == FilterAll {
		return rows, nil
	}

	visible := make([]PaymentRecord, 0, len(rows))
	for _, r := range rows {
		if r.Attorney == attorneyFilter {
			visible = append(visible, r)
		}
	}
	return visible, nil
}
