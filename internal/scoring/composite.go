package scoring

import (
	"math"

	"github.com/ignite/conversion-monitor/internal/account"
)

// Category weights. The risk penalty is subtracted after weighting and is
// not itself weighted.
const (
	weightUsageIntensity     = 0.30
	weightProductionMaturity = 0.25
	weightTeamAdoption       = 0.20
	weightCrossChannel       = 0.15
)

// stageThresholds maps composite scores to stages, highest first. First
// match wins; the list is exhaustive over [0,100].
var stageThresholds = []struct {
	min   float64
	stage account.Stage
}{
	{78, account.StageEnterpriseReady},
	{63, account.StageHighVelocity},
	{48, account.StageQualified},
	{33, account.StageNurture},
	{0, account.StageAtRisk},
}

// StageForScore maps a composite score to its lifecycle stage. Pure and
// history-free: identical scores always map to identical stages.
func StageForScore(score float64) account.Stage {
	for _, t := range stageThresholds {
		if score >= t.min {
			return t.stage
		}
	}
	return account.StageAtRisk
}

// Score computes the full score result for one enriched record:
//
//	Usage Intensity     = spend*0.4 + growth*0.4 + requests*0.2   (30%)
//	Production Maturity = prod*0.4 + error*0.3 + diversity*0.3    (25%)
//	Team Adoption       = users*0.6 + seats*0.4                   (20%)
//	Cross-Channel       = cross-channel score                     (15%)
//	composite           = clamp(weighted sum - risk penalty, 0, 100)
//
// Reported values are rounded to one decimal; the stage is assigned from
// the unrounded composite.
func Score(rec account.Enriched) account.ScoreResult {
	spendScore := ScoreSpend(rec.TotalSpend)
	growthScore := ScoreGrowth(rec.ComputedGrowthRate)
	requestScore := ScoreDailyRequests(rec.DailyRequests)
	usageIntensity := spendScore*0.4 + growthScore*0.4 + requestScore*0.2

	prodScore := ScoreProdRatio(rec.ProdRatio)
	errorScore := ScoreErrorRate(rec.ErrorRate)
	diversityScore := ScoreProductDiversity(rec.NProducts)
	productionMaturity := prodScore*0.4 + errorScore*0.3 + diversityScore*0.3

	usersScore := ScoreUniqueUsers(rec.UniqueUsers)
	seatsScore := ScoreEnterpriseSeats(rec.EnterpriseSeats)
	teamAdoption := usersScore*0.6 + seatsScore*0.4

	crossChannel := ScoreCrossChannel(rec.ActiveChannels, rec.MarketplaceToDirect)

	riskPenalty := RiskPenalty(rec.DaysInactive, rec.ComputedGrowthRate, rec.NProducts)

	raw := usageIntensity*weightUsageIntensity +
		productionMaturity*weightProductionMaturity +
		teamAdoption*weightTeamAdoption +
		crossChannel*weightCrossChannel
	composite := clamp(raw-riskPenalty, 0, 100)

	return account.ScoreResult{
		AccountID:          rec.AccountID,
		ConversionScore:    round1(composite),
		Stage:              StageForScore(composite),
		UsageIntensity:     round1(usageIntensity),
		ProductionMaturity: round1(productionMaturity),
		TeamAdoption:       round1(teamAdoption),
		CrossChannel:       round1(crossChannel),
		RiskPenalty:        round1(riskPenalty),
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
