package scoring

import (
	"strings"
	"testing"

	"github.com/ignite/conversion-monitor/internal/account"
	"github.com/stretchr/testify/assert"
)

func scored(stage account.Stage, rec account.Record, growth float64, result account.ScoreResult) account.Scored {
	result.Stage = stage
	return account.Scored{
		Record: account.Enriched{Record: rec, ComputedGrowthRate: growth},
		Result: result,
	}
}

func TestRecommendedAction(t *testing.T) {
	tests := []struct {
		name string
		sa   account.Scored
		want string
	}{
		{
			"enterprise ready",
			scored(account.StageEnterpriseReady, account.Record{}, 0.3, account.ScoreResult{}),
			"Route to account executive for enterprise contract discussion",
		},
		{
			"high velocity without seats",
			scored(account.StageHighVelocity, account.Record{EnterpriseSeats: 0}, 0.3, account.ScoreResult{}),
			"Introduce the enterprise plan; schedule a product demo",
		},
		{
			"high velocity with seats",
			scored(account.StageHighVelocity, account.Record{EnterpriseSeats: 40}, 0.3, account.ScoreResult{}),
			"Monitor for trigger event; prepare custom pricing proposal",
		},
		{
			"qualified single product wins over low prod ratio",
			scored(account.StageQualified, account.Record{NProducts: 1, ProdRatio: 0.3}, 0.1, account.ScoreResult{}),
			"Share the multi-product adoption guide; suggest the usage-based tier for cost optimization",
		},
		{
			"qualified low prod ratio",
			scored(account.StageQualified, account.Record{NProducts: 2, ProdRatio: 0.5}, 0.1, account.ScoreResult{}),
			"Offer production deployment support; share best practices",
		},
		{
			"qualified default",
			scored(account.StageQualified, account.Record{NProducts: 2, ProdRatio: 0.8}, 0.1, account.ScoreResult{}),
			"Assign SDR for discovery call; share enterprise case studies",
		},
		{
			"nurture declining",
			scored(account.StageNurture, account.Record{}, -0.05, account.ScoreResult{}),
			"Trigger re-engagement campaign; offer office hours",
		},
		{
			"nurture flat",
			scored(account.StageNurture, account.Record{}, 0.02, account.ScoreResult{}),
			"Add to nurture sequence; share relevant content",
		},
		{
			"at risk long inactive",
			scored(account.StageAtRisk, account.Record{DaysInactive: 20}, -0.2, account.ScoreResult{}),
			"CSM outreach: check-in call to understand blockers",
		},
		{
			"at risk recent activity",
			scored(account.StageAtRisk, account.Record{DaysInactive: 3}, -0.2, account.ScoreResult{}),
			"CSM intervention: identify churn risk factors",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecommendedAction(tt.sa))
		})
	}
}

func TestStrongestWeakestTieBreak(t *testing.T) {
	// All equal: both picks fall to the first declared category.
	result := account.ScoreResult{
		UsageIntensity:     50,
		ProductionMaturity: 50,
		TeamAdoption:       50,
		CrossChannel:       50,
	}
	strongest, weakest := strongestWeakest(result)
	assert.Equal(t, "Usage Intensity", strongest.name)
	assert.Equal(t, "Usage Intensity", weakest.name)

	// Two-way tie at the top resolves to the earlier declaration.
	result.ProductionMaturity = 80
	result.TeamAdoption = 80
	result.CrossChannel = 10
	strongest, weakest = strongestWeakest(result)
	assert.Equal(t, "Production Maturity", strongest.name)
	assert.Equal(t, "Cross-Channel", weakest.name)
}

func TestActionExplanation(t *testing.T) {
	t.Run("references strongest category", func(t *testing.T) {
		sa := scored(account.StageHighVelocity, account.Record{}, 0.3, account.ScoreResult{
			UsageIntensity:     82,
			ProductionMaturity: 71,
			TeamAdoption:       40,
			CrossChannel:       55,
		})
		got := ActionExplanation(sa)
		assert.Contains(t, got, "Usage Intensity (82/100)")
		assert.Contains(t, got, "Team Adoption is at 40/100")
	})

	t.Run("high velocity without weak category", func(t *testing.T) {
		sa := scored(account.StageHighVelocity, account.Record{}, 0.3, account.ScoreResult{
			UsageIntensity:     82,
			ProductionMaturity: 71,
			TeamAdoption:       60,
			CrossChannel:       55,
		})
		got := ActionExplanation(sa)
		assert.Contains(t, got, "Approaching enterprise threshold")
	})

	t.Run("nurture mentions growth direction", func(t *testing.T) {
		up := scored(account.StageNurture, account.Record{}, 0.12, account.ScoreResult{UsageIntensity: 30})
		assert.Contains(t, ActionExplanation(up), "+12%")

		down := scored(account.StageNurture, account.Record{}, -0.08, account.ScoreResult{UsageIntensity: 30})
		assert.Contains(t, ActionExplanation(down), "-8%")
	})

	t.Run("at risk cites inactivity and decline", func(t *testing.T) {
		sa := scored(account.StageAtRisk, account.Record{DaysInactive: 21}, -0.25, account.ScoreResult{
			UsageIntensity: 12,
		})
		got := ActionExplanation(sa)
		assert.Contains(t, got, "Inactive for 21 days")
		assert.Contains(t, got, "declining significantly")
		assert.Contains(t, got, "Usage Intensity at 12/100")
	})

	t.Run("stable for identical inputs", func(t *testing.T) {
		sa := scored(account.StageQualified, account.Record{NProducts: 2}, 0.1, account.ScoreResult{
			UsageIntensity:     55,
			ProductionMaturity: 61,
			TeamAdoption:       42,
			CrossChannel:       40,
		})
		first := ActionExplanation(sa)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, ActionExplanation(sa))
		}
		assert.False(t, strings.Contains(first, "%!"), "formatting verbs must all resolve")
	})
}
