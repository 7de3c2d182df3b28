package service

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ProgressPercentage is raised/goal as a whole percentage, rounded half away
// from zero and capped at 100. A non-positive goal reports 0.
func ProgressPercentage(raised, goal decimal.Decimal) int {
	if !goal.IsPositive() || !raised.IsPositive() {
		return 0
	}

	pct := raised.Mul(hundred).Div(goal).Round(0)
	if pct.GreaterThan(hundred) {
		return 100
	}
	return int(pct.IntPart())
}
