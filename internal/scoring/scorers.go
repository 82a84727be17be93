// Package scoring implements the conversion readiness scoring engine:
// per-metric category scorers, the weighted composite with risk penalty,
// stage assignment, and the action/explanation generators.
//
// Every scorer is a pure, total function mapping its metric to [0,100].
// The curves are deliberately piecewise and fixed; boundary inclusivity is
// part of the contract and covered by tests.
package scoring

import "math"

// Spend normalization bounds (USD/month, log scale).
const (
	spendFloor   = 500
	spendCeiling = 80_000
)

// requestCeiling is the daily request count that saturates the request
// volume score on the log scale.
const requestCeiling = 100_000

// ScoreSpend normalizes monthly spend on a log10 scale between the floor
// and ceiling, clamped to [0,100]. Non-positive spend scores 0.
func ScoreSpend(spend float64) float64 {
	if spend <= 0 {
		return 0
	}
	logVal := math.Log10(math.Max(spend, 1))
	logMax := math.Log10(spendCeiling)
	logMin := math.Log10(spendFloor)
	return clamp((logVal-logMin)/(logMax-logMin)*100, 0, 100)
}

// ScoreGrowth maps a fractional (annualized) growth rate to [0,100]:
// 50%+ saturates, 20-50% ramps from 40, 0-20% ramps from 0, and negative
// growth decays from 20 toward 0.
func ScoreGrowth(rate float64) float64 {
	switch {
	case rate >= 0.50:
		return 100
	case rate >= 0.20:
		return 40 + (rate-0.20)/0.30*60
	case rate >= 0:
		return rate / 0.20 * 40
	default:
		return math.Max(0, 20+rate*100)
	}
}

// ScoreDailyRequests normalizes daily request volume on a log10 scale,
// saturating at 100k/day. Non-positive volume scores 0.
func ScoreDailyRequests(dailyRequests int) float64 {
	if dailyRequests <= 0 {
		return 0
	}
	logVal := math.Log10(math.Max(float64(dailyRequests), 1))
	return clamp(logVal/math.Log10(requestCeiling)*100, 0, 100)
}

// ScoreProdRatio scores the production traffic fraction: 95%+ saturates,
// 40-95% is linear, and below 40% the score is near zero. Negative input is
// clamped to 0 before the curve (out-of-domain policy).
func ScoreProdRatio(prodRatio float64) float64 {
	if prodRatio < 0 {
		prodRatio = 0
	}
	switch {
	case prodRatio >= 0.95:
		return 100
	case prodRatio >= 0.40:
		return (prodRatio - 0.40) / 0.55 * 100
	default:
		return prodRatio / 0.40 * 10
	}
}

// ScoreErrorRate scores the error rate around a 0.5-2% sweet spot: full
// points inside it, reduced points when too low (small scale) or too high
// (instability). Negative input is clamped to 0 before the curve.
func ScoreErrorRate(errorRate float64) float64 {
	if errorRate < 0 {
		errorRate = 0
	}
	switch {
	case errorRate >= 0.005 && errorRate <= 0.02:
		return 100
	case errorRate < 0.005:
		return 50 + errorRate/0.005*50
	case errorRate <= 0.05:
		return math.Max(0, 100-(errorRate-0.02)/0.03*80)
	default:
		return math.Max(0, 20-(errorRate-0.05)/0.05*20)
	}
}

// ScoreProductDiversity scores the count of distinct product variants in
// use: 3+ saturates, 2 scores 60, 1 scores 20.
func ScoreProductDiversity(nProducts int) float64 {
	switch {
	case nProducts >= 3:
		return 100
	case nProducts == 2:
		return 60
	case nProducts == 1:
		return 20
	default:
		return 0
	}
}

// ScoreUniqueUsers scores unique authenticated users: 10+ saturates,
// linear below that.
func ScoreUniqueUsers(uniqueUsers int) float64 {
	if uniqueUsers >= 10 {
		return 100
	}
	return float64(uniqueUsers) / 10 * 100
}

// ScoreEnterpriseSeats scores existing seat counts: 100+ saturates, any
// positive count is linear toward 100.
func ScoreEnterpriseSeats(seats int) float64 {
	switch {
	case seats >= 100:
		return 100
	case seats > 0:
		return math.Min(100, float64(seats)/100*100)
	default:
		return 0
	}
}

// ScoreCrossChannel scores channel diversity: 1 channel = 0, each extra
// channel adds 40, capped at 100. A marketplace-to-direct ratio above 3.0
// adds a 20-point bonus (hidden enterprise spend signal), still capped.
// Zero channels clamps to 0 rather than going negative (total-function
// policy for the degenerate no-spend account).
func ScoreCrossChannel(nChannels int, marketplaceToDirect float64) float64 {
	score := clamp(float64(nChannels-1)*40, 0, 100)
	if marketplaceToDirect > 3.0 {
		score = math.Min(100, score+20)
	}
	return score
}

// RiskPenalty computes the 0-10 deduction applied after category weighting:
// prolonged inactivity adds up to 4, negative growth adds up to 4, and
// single-product usage adds 2. The sum is clamped to 10.
func RiskPenalty(daysInactive int, growthRate float64, nProducts int) float64 {
	penalty := 0.0

	if daysInactive > 14 {
		penalty += 4.0
	} else if daysInactive > 7 {
		penalty += float64(daysInactive-7) / 7.0 * 4.0
	}

	if growthRate < 0 {
		penalty += math.Min(4.0, math.Abs(growthRate)*20)
	}

	if nProducts <= 1 {
		penalty += 2.0
	}

	return math.Min(10.0, penalty)
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}
