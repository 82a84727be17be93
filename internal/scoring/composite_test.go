package scoring

import (
	"testing"

	"github.com/ignite/conversion-monitor/internal/account"
	"github.com/stretchr/testify/assert"
)

func TestStageForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  account.Stage
	}{
		{100, account.StageEnterpriseReady},
		{78.0, account.StageEnterpriseReady},
		{77.9, account.StageHighVelocity},
		{63.0, account.StageHighVelocity},
		{62.9, account.StageQualified},
		{48.0, account.StageQualified},
		{47.9, account.StageNurture},
		{33.0, account.StageNurture},
		{32.9, account.StageAtRisk},
		{0, account.StageAtRisk},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StageForScore(tt.score), "score=%v", tt.score)
	}
}

func TestStageForScoreExhaustiveAndIdempotent(t *testing.T) {
	// Every score in [0,100] maps to exactly one stage, and re-evaluation
	// yields the same stage.
	for score := 0.0; score <= 100.0; score += 0.1 {
		stage := StageForScore(score)
		assert.NotEmpty(t, stage)
		assert.Equal(t, stage, StageForScore(score))
	}
}

func TestScoreSaturated(t *testing.T) {
	// All categories saturated, no risk: composite pins at 100.
	rec := account.Enriched{
		Record: account.Record{
			AccountID:           "ACC-2001",
			TotalSpend:          80_000,
			DailyRequests:       100_000,
			ProdRatio:           0.98,
			ErrorRate:           0.01,
			NProducts:           4,
			UniqueUsers:         50,
			EnterpriseSeats:     200,
			MarketplaceToDirect: 4.0,
			DaysInactive:        0,
		},
		ComputedGrowthRate: 0.60,
		ActiveChannels:     4,
	}

	result := Score(rec)
	assert.Equal(t, 100.0, result.ConversionScore)
	assert.Equal(t, account.StageEnterpriseReady, result.Stage)
	assert.Equal(t, 0.0, result.RiskPenalty)
}

func TestScoreFlooredNotNegative(t *testing.T) {
	// Zero everywhere with maximum risk: composite clamps at 0.
	rec := account.Enriched{
		Record: account.Record{
			AccountID:    "ACC-2002",
			DaysInactive: 10_000,
			NProducts:    0,
		},
		ComputedGrowthRate: -5.0,
	}

	result := Score(rec)
	assert.Equal(t, 0.0, result.ConversionScore)
	assert.Equal(t, account.StageAtRisk, result.Stage)
	assert.Equal(t, 10.0, result.RiskPenalty)
}

func TestScoreEndToEndScenario(t *testing.T) {
	// Hand-calculated: spend 90.7392, growth 60, requests 86.0206
	// -> usage 77.4998; prod 90.9091, error 100, diversity 100
	// -> production 96.3636; team 0.6*100+0.4*80 = 92; cross 80.
	// composite = 0.30*77.4998 + 0.25*96.3636 + 0.20*92 + 0.15*80
	//           = 77.7408 -> High Velocity (just under the 78 threshold).
	rec := account.Enriched{
		Record: account.Record{
			AccountID:           "ACC-2003",
			TotalSpend:          50_000,
			DailyRequests:       20_000,
			ProdRatio:           0.90,
			ErrorRate:           0.015,
			NProducts:           3,
			UniqueUsers:         12,
			EnterpriseSeats:     80,
			MarketplaceToDirect: 1.2,
			DaysInactive:        2,
		},
		ComputedGrowthRate: 0.30,
		ActiveChannels:     3,
	}

	result := Score(rec)
	assert.Equal(t, account.StageHighVelocity, result.Stage)
	assert.InDelta(t, 77.7, result.ConversionScore, 0.05)
	assert.InDelta(t, 77.5, result.UsageIntensity, 0.05)
	assert.InDelta(t, 96.4, result.ProductionMaturity, 0.05)
	assert.Equal(t, 92.0, result.TeamAdoption)
	assert.Equal(t, 80.0, result.CrossChannel)
	assert.Equal(t, 0.0, result.RiskPenalty)
}

func TestScoreDeterministic(t *testing.T) {
	rec := account.Enriched{
		Record: account.Record{
			AccountID:     "ACC-2004",
			TotalSpend:    12_000,
			DailyRequests: 4_000,
			ProdRatio:     0.55,
			ErrorRate:     0.03,
			NProducts:     2,
			UniqueUsers:   4,
			DaysInactive:  9,
		},
		ComputedGrowthRate: 0.08,
		ActiveChannels:     2,
	}

	first := Score(rec)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(rec))
	}
}

func TestScoreBounds(t *testing.T) {
	// Adversarial sweep: sub-scores and composite stay in range.
	recs := []account.Enriched{
		{Record: account.Record{TotalSpend: 1e12, DailyRequests: 1 << 40, ProdRatio: 5, ErrorRate: 3, NProducts: 100, UniqueUsers: 1e6, EnterpriseSeats: 1e6, MarketplaceToDirect: 99}, ComputedGrowthRate: 50, ActiveChannels: 4},
		{Record: account.Record{DaysInactive: 1 << 30, NProducts: 0}, ComputedGrowthRate: -100},
		{},
	}
	for _, rec := range recs {
		result := Score(rec)
		for _, v := range []float64{result.UsageIntensity, result.ProductionMaturity, result.TeamAdoption, result.CrossChannel, result.ConversionScore} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
		assert.GreaterOrEqual(t, result.RiskPenalty, 0.0)
		assert.LessOrEqual(t, result.RiskPenalty, 10.0)
	}
}
