package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchRows() []PaymentRecord {
	return []PaymentRecord{
		{ClientID: "4123987", ClientName: "maria benitez"},
		{ClientID: "4123987", ClientName: "maria benitez"}, // second payment, same client
		{ClientID: "5566001", ClientName: "juan maria gonzalez"},
		{ClientID: "7700412", ClientName: "pedro ruiz"},
	}
}

func TestResolveClients(t *testing.T) {
	t.Run("both queries empty", func(t *testing.T) {
		_, err := ResolveClients(searchRows(), "", "  ")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := ResolveClients(searchRows(), "9999999", "")
		assert.ErrorIs(t, err, ErrNoMatch)
	})

	t.Run("id fragment matches substring", func(t *testing.T) {
		matches, err := ResolveClients(searchRows(), "412", "")
		require.NoError(t, err)
		// 4123987 and 7700412 both contain "412"; deduplicated and in
		// first-encounter order.
		require.Len(t, matches, 2)
		assert.Equal(t, "4123987", matches[0].ClientID)
		assert.Equal(t, "7700412", matches[1].ClientID)
	})

	t.Run("name fragment is effectively case-insensitive", func(t *testing.T) {
		matches, err := ResolveClients(searchRows(), "", "MARIA")
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "Maria Benitez - 4123987", matches[0].Label)
	})

	t.Run("id and name queries are OR-combined", func(t *testing.T) {
		matches, err := ResolveClients(searchRows(), "7700", "benitez")
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})

	t.Run("single match auto-selectable", func(t *testing.T) {
		matches, err := ResolveClients(searchRows(), "", "pedro")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "7700412", matches[0].ClientID)
	})
}

func TestClientRows(t *testing.T) {
	rows := ClientRows(searchRows(), "4123987")
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "4123987", r.ClientID)
	}

	assert.Empty(t, ClientRows(searchRows(), "0000000"))
}
