package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreSingleOverdueInvoice(t *testing.T) {
	// One posted invoice, residual 1000, past due, no credit notes,
	// credit limit 2000, no recent orders.
	res := Score(Input{
		CreditUtilPct:  50.0,
		OverdueRatio:   1.0,
		OrdersInWindow: 0,
	}, Thresholds{Low: 30, High: 70})

	assert.Equal(t, 70, res.Score)
	assert.Equal(t, LevelHigh, res.Level)
}

func TestScoreCreditNoteOffsetsEverything(t *testing.T) {
	// Same invoice fully offset by an open credit note.
	res := Score(Input{
		CreditUtilPct:  0,
		OverdueRatio:   0,
		OrdersInWindow: 0,
	}, Thresholds{Low: 30, High: 70})

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, LevelLow, res.Level)
}

func TestScoreBounds(t *testing.T) {
	cases := []Input{
		{CreditUtilPct: 0, OverdueRatio: 0, OrdersInWindow: 0},
		{CreditUtilPct: 50, OverdueRatio: 0.05, OrdersInWindow: 4},
		{CreditUtilPct: 50.01, OverdueRatio: 0.0501, OrdersInWindow: 5},
		{CreditUtilPct: 80.5, OverdueRatio: 0.19, OrdersInWindow: 9},
		{CreditUtilPct: 101, OverdueRatio: 0.21, OrdersInWindow: 10},
		{CreditUtilPct: 9999, OverdueRatio: 1, OrdersInWindow: 100},
	}
	for _, in := range cases {
		res := Score(in, Thresholds{Low: 20, High: 60})
		assert.GreaterOrEqual(t, res.Score, 0)
		assert.LessOrEqual(t, res.Score, MaxScore)
	}

	max := Score(Input{CreditUtilPct: 101, OverdueRatio: 0.21, OrdersInWindow: 10}, Thresholds{Low: 20, High: 60})
	assert.Equal(t, MaxScore, max.Score)
}

func TestScoreContributionSteps(t *testing.T) {
	th := Thresholds{Low: 20, High: 60}

	// Utilization steps: boundaries are exclusive.
	assert.Equal(t, 0, Score(Input{CreditUtilPct: 50}, th).Score)
	assert.Equal(t, 20, Score(Input{CreditUtilPct: 50.1}, th).Score)
	assert.Equal(t, 20, Score(Input{CreditUtilPct: 80}, th).Score)
	assert.Equal(t, 40, Score(Input{CreditUtilPct: 80.1}, th).Score)
	assert.Equal(t, 40, Score(Input{CreditUtilPct: 100}, th).Score)
	assert.Equal(t, 60, Score(Input{CreditUtilPct: 100.1}, th).Score)

	// Overdue steps.
	assert.Equal(t, 0, Score(Input{OverdueRatio: 0.05}, th).Score)
	assert.Equal(t, 20, Score(Input{OverdueRatio: 0.06}, th).Score)
	assert.Equal(t, 20, Score(Input{OverdueRatio: 0.20}, th).Score)
	assert.Equal(t, 50, Score(Input{OverdueRatio: 0.21}, th).Score)

	// Activity steps: boundaries are inclusive.
	assert.Equal(t, 0, Score(Input{OrdersInWindow: 4}, th).Score)
	assert.Equal(t, 10, Score(Input{OrdersInWindow: 5}, th).Score)
	assert.Equal(t, 10, Score(Input{OrdersInWindow: 9}, th).Score)
	assert.Equal(t, 20, Score(Input{OrdersInWindow: 10}, th).Score)
}

func TestLevelMapping(t *testing.T) {
	th := Thresholds{Low: 20, High: 60}

	// Score 10 < low.
	assert.Equal(t, LevelLow, Score(Input{OrdersInWindow: 5}, th).Level)
	// Score 20 == low.
	assert.Equal(t, LevelMedium, Score(Input{OrdersInWindow: 10}, th).Level)
	// Score 60 == high.
	assert.Equal(t, LevelHigh, Score(Input{CreditUtilPct: 90, OverdueRatio: 0.1}, th).Level)

	// Degenerate thresholds: low == high means medium is unreachable.
	eq := Thresholds{Low: 20, High: 20}
	assert.Equal(t, LevelHigh, Score(Input{OrdersInWindow: 10}, eq).Level)
}
