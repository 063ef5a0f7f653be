package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/carsa-legal/cobros/internal/ledger"
)

func gs(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

var ledgerHeader = []any{
	" NRO_CEDULA ", "nombre_cliente", "ABOGADO", "NRO_JUICIO", "ESTADO",
	"FECHA_JUICIO_ANTE", "FECHA_PAGO", "MONTO_TOTAL_COBRADO", "FORMA_PAGO", "MONTO_DEMANDA",
}

func writeLedgerFixture(t *testing.T, dir string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &ledgerHeader))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(dir, "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeUsersFixture(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "usuarios.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func defaultFixtures(t *testing.T) Options {
	dir := t.TempDir()
	data := writeLedgerFixture(t, dir, [][]any{
		{"4123987", "  MARIA Benitez ", "Dra. LOPEZ", "J-2022-014", "EN EJECUCION",
			"2023-05-10", "2023-04-01", "100000", "Cheque Judicial", "500000"},
		{"4123987", "maria benitez", "dra. lopez", "J-2022-014", "en ejecucion",
			"2023-05-10", "2023-06-15", "50000", "efectivo", "500000"},
		{"5566001", "juan gonzalez", "dr. gomez", "J-2021-002", "finiquitado",
			"", "not-a-date", "1.234.567", "efectivo", "oops"},
	})
	users := writeUsersFixture(t, dir,
		"Usuario, CONTRASENA ,filtro_abogado\n MLopez ,abogada1, Dra. Lopez \nadmin,Root123,TODOS\n")
	return Options{DataPath: data, UsersPath: users}
}

func TestOpenNormalizesSources(t *testing.T) {
	st, err := Open(defaultFixtures(t))
	require.NoError(t, err)

	payments := st.Payments()
	require.Len(t, payments, 3)

	first := payments[0]
	assert.Equal(t, "4123987", first.ClientID)
	assert.Equal(t, "maria benitez", first.ClientName, "names lower-cased and trimmed")
	assert.Equal(t, "dra. lopez", first.Attorney)
	assert.Equal(t, "cheque judicial", first.Method)
	assert.Equal(t, 2023, first.JudgmentDate.Year())
	assert.True(t, first.Amount.Equal(gs(100000)))
	assert.True(t, first.ClaimedAmount.Equal(gs(500000)))

	third := payments[2]
	assert.True(t, third.JudgmentDate.IsZero(), "missing date stays zero")
	assert.True(t, third.PaymentDate.IsZero(), "unparsable date coerces to zero, not an error")
	assert.True(t, third.Amount.Equal(gs(1234567)), "thousands separators accepted")
	assert.True(t, third.ClaimedAmount.IsZero(), "non-numeric claimed amount coerces to zero")

	creds := st.Credentials()
	require.Len(t, creds, 2)
	assert.Equal(t, "mlopez", creds[0].Username)
	assert.Equal(t, "abogada1", creds[0].Secret)
	assert.Equal(t, "dra. lopez", creds[0].AttorneyFilter)
	assert.Equal(t, ledger.FilterAll, creds[1].AttorneyFilter)
}

func TestOpenMissingSources(t *testing.T) {
	dir := t.TempDir()
	users := writeUsersFixture(t, dir, "usuario,contrasena,filtro_abogado\n")

	t.Run("missing ledger", func(t *testing.T) {
		_, err := Open(Options{DataPath: filepath.Join(dir, "nope.xlsx"), UsersPath: users})
		assert.ErrorIs(t, err, ledger.ErrSourceNotFound)
	})

	t.Run("missing credentials", func(t *testing.T) {
		data := writeLedgerFixture(t, dir, nil)
		_, err := Open(Options{DataPath: data, UsersPath: filepath.Join(dir, "nope.csv")})
		assert.ErrorIs(t, err, ledger.ErrSourceNotFound)
	})
}

func TestOpenMalformedSources(t *testing.T) {
	t.Run("ledger lacking a required column", func(t *testing.T) {
		dir := t.TempDir()
		f := excelize.NewFile()
		defer f.Close()
		header := []any{"NRO_CEDULA", "NOMBRE_CLIENTE"}
		require.NoError(t, f.SetSheetRow(f.GetSheetName(0), "A1", &header))
		path := filepath.Join(dir, "data.xlsx")
		require.NoError(t, f.SaveAs(path))

		users := writeUsersFixture(t, dir, "usuario,contrasena,filtro_abogado\n")
		_, err := Open(Options{DataPath: path, UsersPath: users})
		assert.ErrorIs(t, err, ledger.ErrMalformedSource)
	})

	t.Run("credentials lacking a required column", func(t *testing.T) {
		dir := t.TempDir()
		data := writeLedgerFixture(t, dir, nil)
		users := writeUsersFixture(t, dir, "usuario,contrasena\nmlopez,abogada1\n")
		_, err := Open(Options{DataPath: data, UsersPath: users})
		assert.ErrorIs(t, err, ledger.ErrMalformedSource)
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	opts := defaultFixtures(t)
	st, err := Open(opts)
	require.NoError(t, err)

	dbPath := filepath.Join(t.TempDir(), "cobros.db")
	require.NoError(t, st.SaveSnapshot(context.Background(), dbPath))

	restored, err := Open(Options{DBPath: dbPath})
	require.NoError(t, err)

	require.Len(t, restored.Payments(), len(st.Payments()))
	for i, want := range st.Payments() {
		got := restored.Payments()[i]
		assert.Equal(t, want.ClientID, got.ClientID)
		assert.Equal(t, want.ClientName, got.ClientName)
		assert.Equal(t, want.Attorney, got.Attorney)
		assert.Equal(t, want.Method, got.Method)
		assert.True(t, want.JudgmentDate.Equal(got.JudgmentDate))
		assert.True(t, want.PaymentDate.Equal(got.PaymentDate))
		assert.True(t, want.Amount.Equal(got.Amount))
		assert.True(t, want.ClaimedAmount.Equal(got.ClaimedAmount))
	}
	assert.Equal(t, st.Credentials(), restored.Credentials())
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"100000", 100000},
		{"1.234.567", 1234567},
		{"Gs. 250.000", 250000},
		{"", 0},
		{"n/a", 0},
	}
	for _, tt := range tests {
		assert.True(t, parseAmount(tt.in).Equal(gs(tt.want)), "parseAmount(%q)", tt.in)
	}

	assert.True(t, parseAmount("1.234,50").Equal(decimalFromString(t, "1234.50")))
}
