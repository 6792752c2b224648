// Package risk holds the scoring rule shared by the live customer view and
// the snapshot refresh. Keeping it in one place means the two paths can never
// drift apart.
package risk

// Level classifies a score against the company thresholds.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Input carries the three aggregates the score is derived from.
type Input struct {
	CreditUtilPct  float64
	OverdueRatio   float64
	OrdersInWindow int
}

// Thresholds are the company's low/high score boundaries.
type Thresholds struct {
	Low  int
	High int
}

// Result is the scored outcome.
type Result struct {
	Score int
	Level Level
}

// MaxScore is the largest value Score can produce (60 + 50 + 20).
const MaxScore = 130

// Score maps the aggregates to an integer score and a level. The contribution
// steps are fixed; only the level thresholds are configurable.
func Score(in Input, th Thresholds) Result {
	score := 0

	switch {
	case in.CreditUtilPct > 100:
		score += 60
	case in.CreditUtilPct > 80:
		score += 40
	case in.CreditUtilPct > 50:
		score += 20
	}

	switch {
	case in.OverdueRatio > 0.20:
		score += 50
	case in.OverdueRatio > 0.05:
		score += 20
	}

	switch {
	case in.OrdersInWindow >= 10:
		score += 20
	case in.OrdersInWindow >= 5:
		score += 10
	}

	level := LevelLow
	if score >= th.High {
		level = LevelHigh
	} else if score >= th.Low {
		level = LevelMedium
	}

	return Result{Score: score, Level: level}
}
