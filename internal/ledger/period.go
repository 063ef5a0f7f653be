package ledger

import "time"

// Period classifies a payment relative to the client's judgment date.
type Period int

const (
	PeriodBeforeJudgment Period = iota
	PeriodAfterJudgment
	PeriodNoJudgmentDate
)

func (p Period) String() string {
	switch p {
	case PeriodBeforeJudgment:
		return "antes del juicio"
	case PeriodAfterJudgment:
		return "despues del juicio"
	case PeriodNoJudgmentDate:
		return "sin fecha de juicio"
	default:
		return "desconocido"
	}
}

// ClassifyPeriod assigns a payment to a period. With no judgment date every
// payment is PeriodNoJudgmentDate regardless of its own date. Otherwise a
// payment dated on or before the judgment date is PeriodBeforeJudgment and
// everything else, including payments with a missing date, falls to
// PeriodAfterJudgment.
func ClassifyPeriod(paymentDate, judgmentDate time.Time) Period {
	if judgmentDate.IsZero() {
		return PeriodNoJudgmentDate
	}
	if !paymentDate.IsZero() && !paymentDate.After(judgmentDate) {
		return PeriodBeforeJudgment
	}
	return PeriodAfterJudgment
}

// MethodBucket is a payment-method pivot column. Court-ordered checks get
// their own column; every other method collapses into cash/other.
type MethodBucket int

const (
	BucketJudicialCheck MethodBucket = iota
	BucketCashOther
)

func (b MethodBucket) String() string {
	if b == BucketJudicialCheck {
		return "cheque judicial"
	}
	return "efectivo/otros"
}

// BucketMethod maps a normalized payment-method value to its pivot column.
func BucketMethod(method string) MethodBucket {
	if method == "cheque judicial" {
		return BucketJudicialCheck
	}
	return BucketCashOther
}
