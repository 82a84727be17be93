package scoring

import (
	"fmt"
	"strings"

	"github.com/ignite/conversion-monitor/internal/account"
)

// categoryScore pairs a category label with its sub-score. Strongest/weakest
// selection iterates this in declaration order so ties resolve
// deterministically: Usage Intensity, Production Maturity, Team Adoption,
// Cross-Channel.
type categoryScore struct {
	name  string
	score float64
}

func categories(result account.ScoreResult) []categoryScore {
	return []categoryScore{
		{"Usage Intensity", result.UsageIntensity},
		{"Production Maturity", result.ProductionMaturity},
		{"Team Adoption", result.TeamAdoption},
		{"Cross-Channel", result.CrossChannel},
	}
}

// strongestWeakest returns the max- and min-scoring categories. Strict
// comparisons keep the earliest-declared category on ties.
func strongestWeakest(result account.ScoreResult) (categoryScore, categoryScore) {
	cats := categories(result)
	strongest, weakest := cats[0], cats[0]
	for _, c := range cats[1:] {
		if c.score > strongest.score {
			strongest = c
		}
		if c.score < weakest.score {
			weakest = c
		}
	}
	return strongest, weakest
}

// RecommendedAction returns the next sales action for a scored account.
// The lookup is keyed by stage with 1-2 tie-breaking conditions per stage;
// the first matching condition wins.
func RecommendedAction(sa account.Scored) string {
	switch sa.Result.Stage {
	case account.StageEnterpriseReady:
		return "Route to account executive for enterprise contract discussion"
	case account.StageHighVelocity:
		if sa.Record.EnterpriseSeats == 0 {
			return "Introduce the enterprise plan; schedule a product demo"
		}
		return "Monitor for trigger event; prepare custom pricing proposal"
	case account.StageQualified:
		if sa.Record.NProducts <= 1 {
			return "Share the multi-product adoption guide; suggest the usage-based tier for cost optimization"
		}
		if sa.Record.ProdRatio < 0.6 {
			return "Offer production deployment support; share best practices"
		}
		return "Assign SDR for discovery call; share enterprise case studies"
	case account.StageNurture:
		if sa.Record.ComputedGrowthRate < 0 {
			return "Trigger re-engagement campaign; offer office hours"
		}
		return "Add to nurture sequence; share relevant content"
	default: // At Risk
		if sa.Record.DaysInactive > 14 {
			return "CSM outreach: check-in call to understand blockers"
		}
		return "CSM intervention: identify churn risk factors"
	}
}

// ActionExplanation composes a short WHY for the recommended action from the
// stage and the strongest/weakest categories. Advisory text: stable and
// reproducible for identical inputs, but only the category selection logic
// is contractual, not the exact wording.
func ActionExplanation(sa account.Scored) string {
	strongest, weakest := strongestWeakest(sa.Result)
	var parts []string

	switch sa.Result.Stage {
	case account.StageEnterpriseReady:
		parts = append(parts, fmt.Sprintf("Strong across all dimensions (strongest: %s at %.0f/100).", strongest.name, strongest.score))
		parts = append(parts, "High spend, multi-channel presence, and strong team adoption signal enterprise buying intent.")
	case account.StageHighVelocity:
		parts = append(parts, fmt.Sprintf("Strongest signal: %s (%.0f/100).", strongest.name, strongest.score))
		if weakest.score < 50 {
			parts = append(parts, fmt.Sprintf("Opportunity: %s is at %.0f/100 - addressing this could accelerate conversion.", weakest.name, weakest.score))
		} else {
			parts = append(parts, "Approaching enterprise threshold across multiple dimensions.")
		}
	case account.StageQualified:
		parts = append(parts, fmt.Sprintf("%s leads at %.0f/100.", strongest.name, strongest.score))
		parts = append(parts, fmt.Sprintf("Focus on improving %s (%.0f/100) to move this account up-funnel.", weakest.name, weakest.score))
	case account.StageNurture:
		growth := sa.Record.ComputedGrowthRate
		if growth > 0 {
			parts = append(parts, fmt.Sprintf("Positive growth trajectory (%+.0f%%) but early-stage across most signals.", growth*100))
		} else {
			parts = append(parts, fmt.Sprintf("Flat or declining usage (%+.0f%%). Needs re-engagement to prevent churn.", growth*100))
		}
		parts = append(parts, fmt.Sprintf("Best signal: %s at %.0f/100.", strongest.name, strongest.score))
	default: // At Risk
		if sa.Record.DaysInactive > 7 {
			parts = append(parts, fmt.Sprintf("Inactive for %d days - potential churn risk.", sa.Record.DaysInactive))
		}
		if sa.Record.ComputedGrowthRate < -0.1 {
			parts = append(parts, "Usage is declining significantly.")
		}
		parts = append(parts, fmt.Sprintf("All scoring categories are below threshold (best: %s at %.0f/100).", strongest.name, strongest.score))
	}

	return strings.Join(parts, " ")
}
