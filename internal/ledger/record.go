package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is one row of the payments ledger. A client may appear in
// many rows, one per collected payment. Free-text comparison fields
// (ClientName, Attorney, Method) are lower-cased and trimmed by the loader;
// ClaimedAmount is repeated on every row of the same client.
type PaymentRecord struct {
	ClientID      string          `json:"client_id"`      // NRO_CEDULA, kept as text
	ClientName    string          `json:"client_name"`    // NOMBRE_CLIENTE
	Attorney      string          `json:"attorney"`       // ABOGADO
	CaseNumber    string          `json:"case_number"`    // NRO_JUICIO
	CaseStatus    string          `json:"case_status"`    // ESTADO
	JudgmentDate  time.Time       `json:"judgment_date"`  // FECHA_JUICIO_ANTE; zero when missing
	PaymentDate   time.Time       `json:"payment_date"`   // FECHA_PAGO; zero when missing
	Amount        decimal.Decimal `json:"amount"`         // MONTO_TOTAL_COBRADO
	Method        string          `json:"method"`         // FORMA_PAGO
	ClaimedAmount decimal.Decimal `json:"claimed_amount"` // MONTO_DEMANDA
}

// Credential is one row of the users table. Username and AttorneyFilter are
// lower-cased and trimmed by the loader; Secret is kept as-is and compared
// case-sensitively.
type Credential struct {
	Username       string
	Secret         string
	AttorneyFilter string
}

// Session is the state bound to one authenticated user. It is created on
// login, mutated only through the server's session store, and destroyed on
// logout or process exit. Never persisted.
type Session struct {
	Token          string    `json:"token"`
	Username       string    `json:"username"`
	AttorneyFilter string    `json:"attorney_filter"`
	IDQuery        string    `json:"id_query,omitempty"`
	NameQuery      string    `json:"name_query,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ClientMatch is one distinct client found by a search.
type ClientMatch struct {
	ClientID string `json:"client_id"`
	Label    string `json:"label"` // "Title-Cased Name - ID"
}
