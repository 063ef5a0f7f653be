package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyPeriod(t *testing.T) {
	judgment := date(2023, time.May, 10)

	tests := []struct {
		name     string
		payment  time.Time
		judgment time.Time
		want     Period
	}{
		{"payment before judgment", date(2023, time.April, 1), judgment, PeriodBeforeJudgment},
		{"payment on judgment day counts as before", judgment, judgment, PeriodBeforeJudgment},
		{"payment after judgment", date(2023, time.May, 11), judgment, PeriodAfterJudgment},
		// Production behavior: an unknown payment date with a known judgment
		// date lands in the after bucket.
		{"missing payment date falls to after", time.Time{}, judgment, PeriodAfterJudgment},
		{"no judgment date wins over any payment date", date(2020, time.January, 1), time.Time{}, PeriodNoJudgmentDate},
		{"both dates missing", time.Time{}, time.Time{}, PeriodNoJudgmentDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPeriod(tt.payment, tt.judgment))
		})
	}
}

func TestPeriodLabels(t *testing.T) {
	assert.Equal(t, "antes del juicio", PeriodBeforeJudgment.String())
	assert.Equal(t, "despues del juicio", PeriodAfterJudgment.String())
	assert.Equal(t, "sin fecha de juicio", PeriodNoJudgmentDate.String())
}

func TestBucketMethod(t *testing.T) {
	assert.Equal(t, BucketJudicialCheck, BucketMethod("cheque judicial"))
	assert.Equal(t, BucketCashOther, BucketMethod("efectivo"))
	assert.Equal(t, BucketCashOther, BucketMethod("transferencia"))
	assert.Equal(t, BucketCashOther, BucketMethod(""))
	// Anything that is not exactly the normalized value stays in cash/other.
	assert.Equal(t, BucketCashOther, BucketMethod("cheque  judicial"))
}
