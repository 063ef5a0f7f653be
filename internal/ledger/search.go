package ledger

import "strings"

// ResolveClients finds the distinct clients within the visible rows that
// match an ID fragment, a name fragment, or both. A row matches when either
// non-empty fragment is a substring of its field (IDs compared
// case-insensitively; names are already lower-cased at load, so the query is
// lowered to match). Matches are deduplicated to one entry per client ID in
// first-encounter order.
//
// Both fragments empty is ErrEmptyQuery; an empty result is ErrNoMatch.
// A result with more than one entry requires explicit selection by the
// caller before any aggregation runs.
func ResolveClients(rows []PaymentRecord, idQuery, nameQuery string) ([]ClientMatch, error) {
	idQuery = strings.ToLower(strings.TrimSpace(idQuery))
	nameQuery = strings.ToLower(strings.TrimSpace(nameQuery))
	if idQuery == "" && nameQuery == "" {
		return nil, ErrEmptyQuery
	}

	seen := make(map[string]bool)
	var matches []ClientMatch
	for _, r := range rows {
		ok := (idQuery != "" && strings.Contains(strings.ToLower(r.ClientID), idQuery)) ||
			(nameQuery != "" && strings.Contains(r.ClientName, nameQuery))
		if !ok || seen[r.ClientID] {
			continue
		}
		seen[r.ClientID] = true
		matches = append(matches, ClientMatch{
			ClientID: r.ClientID,
			Label:    TitleCase(r.ClientName) + " - " + r.ClientID,
		})
	}

	if len(matches) == 0 {
		return nil, ErrNoMatch
	}
	return matches, nil
}

// ClientRows returns every visible row belonging to one client. The report
// always covers the client's full history, not just the rows the search
// fragment happened to hit.
func ClientRows(rows []PaymentRecord, clientID string) []PaymentRecord {
	var out []PaymentRecord
	for _, r := range rows {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out
}
