package ledger

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// The office reports in Paraguayan guaraníes: no decimal places, dot as the
// thousands separator, "Gs." prefix.

// FormatGuaranies renders an amount as e.g. "Gs. 1.234.567". Fractions are
// truncated; guaraní amounts are whole numbers in practice.
func FormatGuaranies(amount decimal.Decimal) string {
	v := amount.IntPart()
	negative := v < 0
	if negative {
		v = -v
	}

	digits := strconv.FormatInt(v, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	if negative {
		return "Gs. -" + b.String()
	}
	return "Gs. " + b.String()
}

var spanishMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish display name for a calendar month, or ""
// for the zero month (missing payment date).
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return spanishMonths[m-1]
}

// FormatDate renders dd/mm/yyyy, or "N/A" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("02/01/2006")
}

// TitleCase upper-cases the first letter of each space-separated word.
// Names are stored lower-cased; this restores a display form.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
