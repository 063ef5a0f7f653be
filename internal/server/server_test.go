package server

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/carsa-legal/cobros/internal/client"
	"github.com/carsa-legal/cobros/internal/export"
	"github.com/carsa-legal/cobros/internal/ledger"
	"github.com/carsa-legal/cobros/internal/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testStore() *store.Store {
	judgment := date(2023, time.May, 10)
	row := func(id, name, attorney string, day time.Time, amount int64, method string) ledger.PaymentRecord {
		return ledger.PaymentRecord{
			ClientID: id, ClientName: name, Attorney: attorney,
			CaseNumber: "J-1", CaseStatus: "en ejecucion",
			JudgmentDate: judgment, PaymentDate: day,
			Amount: decimal.NewFromInt(amount), Method: method,
			ClaimedAmount: decimal.NewFromInt(500000),
		}
	}
	payments := []ledger.PaymentRecord{
		row("4123987", "maria benitez", "dra. lopez", date(2023, time.April, 1), 100000, "cheque judicial"),
		row("4123987", "maria benitez", "dra. lopez", date(2023, time.June, 15), 75000, "efectivo"),
		row("5566001", "juan maria gonzalez", "dr. gomez", date(2023, time.July, 2), 30000, "efectivo"),
	}
	creds := []ledger.Credential{
		{Username: "admin", Secret: "Root123", AttorneyFilter: ledger.FilterAll},
		{Username: "mlopez", Secret: "abogada1", AttorneyFilter: "dra. lopez"},
	}
	return store.New(payments, creds)
}

func newTestServer(t *testing.T) (*httptest.Server, *client.Client) {
	t.Helper()
	srv := New(testStore(), "", zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, client.New(ts.URL)
}

func TestLogin(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	t.Run("rejects bad credentials", func(t *testing.T) {
		_, err := c.Login(ctx, "admin", "wrong")
		assert.ErrorContains(t, err, "401")
	})

	t.Run("accepts valid credentials and binds filter", func(t *testing.T) {
		res, err := c.Login(ctx, "MLopez", "abogada1")
		require.NoError(t, err)
		assert.Equal(t, "dra. lopez", res.AttorneyFilter)
		assert.NotEmpty(t, res.Token)
	})
}

func TestSearchRequiresSession(t *testing.T) {
	_, c := newTestServer(t)
	_, err := c.SearchClients(context.Background(), "412", "")
	assert.ErrorContains(t, err, "401")
}

func TestSearchAndReportFlow(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	_, err := c.Login(ctx, "admin", "Root123")
	require.NoError(t, err)

	t.Run("empty query is a 400", func(t *testing.T) {
		_, err := c.SearchClients(ctx, "", "")
		assert.ErrorContains(t, err, "400")
	})

	t.Run("no match is a 404", func(t *testing.T) {
		_, err := c.SearchClients(ctx, "0000000", "")
		assert.ErrorContains(t, err, "404")
	})

	t.Run("ambiguous search returns every distinct client", func(t *testing.T) {
		matches, err := c.SearchClients(ctx, "", "maria")
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "Maria Benitez - 4123987", matches[0].Label)
	})

	t.Run("report aggregates the selected client", func(t *testing.T) {
		rep, err := c.ClientReport(ctx, "4123987")
		require.NoError(t, err)
		assert.True(t, rep.TotalCollected.Equal(decimal.NewFromInt(175000)))
		assert.True(t, rep.OutstandingBalance.Equal(decimal.NewFromInt(325000)))
		require.NotEmpty(t, rep.Pivot)
		assert.True(t, rep.Pivot[len(rep.Pivot)-1].GrandTotal)
	})

	t.Run("unknown client is a 404", func(t *testing.T) {
		_, err := c.ClientReport(ctx, "0000000")
		assert.ErrorContains(t, err, "404")
	})
}

func TestAttorneyFilterIsEnforced(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	_, err := c.Login(ctx, "mlopez", "abogada1")
	require.NoError(t, err)

	// juan gonzalez belongs to dr. gomez and must be invisible.
	_, err = c.SearchClients(ctx, "5566001", "")
	assert.ErrorContains(t, err, "404")

	_, err = c.ClientReport(ctx, "5566001")
	assert.ErrorContains(t, err, "404")

	matches, err := c.SearchClients(ctx, "", "maria")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "4123987", matches[0].ClientID)
}

func TestExport(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	_, err := c.Login(ctx, "admin", "Root123")
	require.NoError(t, err)

	data, filename, err := c.ExportReport(ctx, "4123987")
	require.NoError(t, err)
	assert.Equal(t, "detalle_pagos_4123987.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, export.SheetName, f.GetSheetName(0))

	total, err := f.GetCellValue(export.SheetName, "F4")
	require.NoError(t, err)
	assert.Equal(t, "175000", total)
}

func TestLogoutDestroysSession(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	_, err := c.Login(ctx, "admin", "Root123")
	require.NoError(t, err)

	matches, err := c.SearchClients(ctx, "412", "")
	require.NoError(t, err)
	assert.NotEmpty(t, matches)

	require.NoError(t, c.Logout(ctx))

	_, err = c.SearchClients(ctx, "412", "")
	assert.ErrorContains(t, err, "401")
}
