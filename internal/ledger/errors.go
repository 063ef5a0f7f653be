package ledger

import "errors"

var (
	ErrSourceNotFound     = errors.New("source file not found")
	ErrMalformedSource    = errors.New("source file is missing required columns")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoAttorneyFilter   = errors.New("session has no attorney filter bound")
	ErrEmptyQuery         = errors.New("search requires a cedula or a client name")
	ErrNoMatch            = errors.New("no clients match the search")
	ErrClientNotFound     = errors.New("client not found")
	ErrSessionNotFound    = errors.New("session not found or expired")
)
