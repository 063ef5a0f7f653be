package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = []Credential{
	{Username: "admin", Secret: "Root123", AttorneyFilter: "todos"},
	{Username: "mlopez", Secret: "abogada1", AttorneyFilter: "dra. lopez"},
	{Username: "mlopez", Secret: "abogada1", AttorneyFilter: "dr. otro"}, // duplicate: first row wins
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid pair returns bound filter", func(t *testing.T) {
		filter, err := Authenticate(testCreds, "admin", "Root123")
		require.NoError(t, err)
		assert.Equal(t, FilterAll, filter)
	})

	t.Run("username is trimmed and lower-cased", func(t *testing.T) {
		filter, err := Authenticate(testCreds, "  MLopez ", "abogada1")
		require.NoError(t, err)
		assert.Equal(t, "dra. lopez", filter)
	})

	t.Run("secret is case-sensitive", func(t *testing.T) {
		_, err := Authenticate(testCreds, "admin", "root123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user and wrong secret are indistinguishable", func(t *testing.T) {
		_, errUnknown := Authenticate(testCreds, "nobody", "x")
		_, errWrong := Authenticate(testCreds, "admin", "x")
		assert.Equal(t, errUnknown, errWrong)
	})

	t.Run("empty fields never authenticate", func(t *testing.T) {
		_, err := Authenticate(testCreds, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("duplicate username takes the first row", func(t *testing.T) {
		filter, err := Authenticate(testCreds, "mlopez", "abogada1")
		require.NoError(t, err)
		assert.Equal(t, "dra. lopez", filter)
	})
}

func TestVisibleRows(t *testing.T) {
	rows := []PaymentRecord{
		{ClientID: "1", Attorney: "dra. lopez"},
		{ClientID: "2", Attorney: "dr. gomez"},
		{ClientID: "3", Attorney: "dra. lopez"},
	}

	t.Run("sentinel passes every row", func(t *testing.T) {
		visible, err := VisibleRows(rows, FilterAll)
		require.NoError(t, err)
		assert.Len(t, visible, len(rows))
	})

	t.Run("named filter keeps only that attorney", func(t *testing.T) {
		visible, err := VisibleRows(rows, "dra. lopez")
		require.NoError(t, err)
		require.Len(t, visible, 2)
		for _, r := range visible {
			assert.Equal(t, "dra. lopez", r.Attorney)
		}
	})

	t.Run("filter comparison is case-insensitive", func(t *testing.T) {
		visible, err := VisibleRows(rows, "DRA. Lopez")
		require.NoError(t, err)
		assert.Len(t, visible, 2)
	})

	t.Run("empty filter refuses to proceed", func(t *testing.T) {
		_, err := VisibleRows(rows, "  ")
		assert.ErrorIs(t, err, ErrNoAttorneyFilter)
	})

	t.Run("unknown attorney yields empty, not all", func(t *testing.T) {
		visible, err := VisibleRows(rows, "dr. nadie")
		require.NoError(t, err)
		assert.Empty(t, visible)
	})
}
