// Package generator produces synthetic account datasets for demos and test
// fixtures. Archetype tables control the distribution of scoring outcomes so
// a generated population covers every lifecycle stage.
//
// All randomness flows through an injected *rand.Rand; the package never
// touches the global source, so fixed seeds reproduce fixed datasets.
package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/ignite/conversion-monitor/internal/account"
	"github.com/ignite/conversion-monitor/internal/signals"
)

const historyMonths = 12

// Per-seat monthly price estimates for seat-based products.
const (
	enterpriseSeatPrice = 30
	codeLicensePrice    = 19
)

var industries = []string{
	"Financial Services", "Healthcare", "Technology", "E-commerce",
	"Media & Entertainment", "Education", "Legal", "Manufacturing",
	"Real Estate", "Consulting", "Insurance", "Logistics",
	"Telecommunications", "Government", "Energy",
}

var companyPrefixes = []string{
	"Apex", "Northwind", "Cascade", "Luminous", "Vertex", "Harbor",
	"Quartz", "Meridian", "Bluepine", "Solstice", "Ironclad", "Fathom",
}

var companySuffixes = []string{
	"Labs", "Systems", "Analytics", "Dynamics", "Holdings", "Technologies",
	"Group", "Software", "Networks", "Industries",
}

// archetype controls the metric ranges for one population segment.
type archetype struct {
	name            string
	count           int
	spendRange      [2]float64
	growthRange     [2]float64
	prodRatioRange  [2]float64
	errorRateRange  [2]float64
	productsRange   [2]int
	usersRange      [2]int
	channelChoices  []int
	seatsRange      [2]int
	licensesRange   [2]int
	inactiveRange   [2]int
}

var archetypes = []archetype{
	{
		name:           "enterprise_ready",
		count:          5,
		spendRange:     [2]float64{30_000, 80_000},
		growthRange:    [2]float64{0.15, 0.50},
		prodRatioRange: [2]float64{0.85, 0.98},
		errorRateRange: [2]float64{0.005, 0.02},
		productsRange:  [2]int{3, 5},
		usersRange:     [2]int{8, 25},
		channelChoices: []int{2, 3, 4},
		seatsRange:     [2]int{50, 300},
		licensesRange:  [2]int{10, 100},
		inactiveRange:  [2]int{0, 1},
	},
	{
		name:           "high_velocity",
		count:          10,
		spendRange:     [2]float64{15_000, 45_000},
		growthRange:    [2]float64{0.20, 0.60},
		prodRatioRange: [2]float64{0.70, 0.92},
		errorRateRange: [2]float64{0.01, 0.035},
		productsRange:  [2]int{2, 4},
		usersRange:     [2]int{5, 15},
		channelChoices: []int{1, 2, 3},
		seatsRange:     [2]int{0, 100},
		licensesRange:  [2]int{0, 50},
		inactiveRange:  [2]int{0, 3},
	},
	{
		name:           "qualified",
		count:          15,
		spendRange:     [2]float64{5_000, 25_000},
		growthRange:    [2]float64{0.05, 0.30},
		prodRatioRange: [2]float64{0.50, 0.80},
		errorRateRange: [2]float64{0.015, 0.04},
		productsRange:  [2]int{1, 3},
		usersRange:     [2]int{3, 10},
		channelChoices: []int{1, 2},
		seatsRange:     [2]int{0, 30},
		licensesRange:  [2]int{0, 20},
		inactiveRange:  [2]int{0, 5},
	},
	{
		name:           "nurture",
		count:          12,
		spendRange:     [2]float64{2_000, 12_000},
		growthRange:    [2]float64{-0.05, 0.20},
		prodRatioRange: [2]float64{0.40, 0.65},
		errorRateRange: [2]float64{0.015, 0.05},
		productsRange:  [2]int{1, 2},
		usersRange:     [2]int{2, 6},
		channelChoices: []int{1, 1, 2},
		seatsRange:     [2]int{0, 10},
		licensesRange:  [2]int{0, 5},
		inactiveRange:  [2]int{1, 10},
	},
	{
		name:           "at_risk",
		count:          8,
		spendRange:     [2]float64{500, 5_000},
		growthRange:    [2]float64{-0.30, 0.0},
		prodRatioRange: [2]float64{0.15, 0.45},
		errorRateRange: [2]float64{0.04, 0.10},
		productsRange:  [2]int{1, 1},
		usersRange:     [2]int{1, 3},
		channelChoices: []int{1},
		seatsRange:     [2]int{0, 0},
		licensesRange:  [2]int{0, 0},
		inactiveRange:  [2]int{5, 30},
	},
}

// Dataset is a generated population: account records plus their monthly
// usage history.
type Dataset struct {
	Accounts []account.Record
	Usage    []account.UsageRow
}

// Generate builds the full archetype population (~50 accounts) using the
// supplied random source.
func Generate(rng *rand.Rand) Dataset {
	var ds Dataset
	accountID := 1000

	for _, arch := range archetypes {
		for i := 0; i < arch.count; i++ {
			accountID++
			rec, usage := generateAccount(rng, arch, accountID)
			ds.Accounts = append(ds.Accounts, rec)
			ds.Usage = append(ds.Usage, usage...)
		}
	}
	return ds
}

func generateAccount(rng *rand.Rand, arch archetype, id int) (account.Record, []account.UsageRow) {
	accountID := fmt.Sprintf("ACC-%d", id)
	company := fmt.Sprintf("%s %s",
		companyPrefixes[rng.Intn(len(companyPrefixes))],
		companySuffixes[rng.Intn(len(companySuffixes))])
	domain := fmt.Sprintf("%s%d.example.com", companyPrefixes[rng.Intn(len(companyPrefixes))], rng.Intn(1000))

	signupDaysAgo := intInRange(rng, 90, 730)
	signupDate := time.Now().AddDate(0, 0, -signupDaysAgo).Format("2006-01-02")

	nChannels := arch.channelChoices[rng.Intn(len(arch.channelChoices))]
	baseSpend := floatInRange(rng, arch.spendRange)
	growthRate := floatInRange(rng, arch.growthRange)

	enterpriseSeats := intInRange(rng, arch.seatsRange[0], arch.seatsRange[1])
	codeLicenses := intInRange(rng, arch.licensesRange[0], arch.licensesRange[1])

	hasAWS := nChannels >= 2
	hasGCP := nChannels >= 3

	directPct, awsPct, gcpPct := splitChannels(rng, nChannels)

	directMonthly := monthlySpend(rng, baseSpend*directPct, growthRate)
	awsMonthly := zeroMonths()
	if hasAWS {
		awsMonthly = monthlySpend(rng, baseSpend*awsPct, growthRate*floatInRange(rng, [2]float64{0.7, 1.3}))
	}
	gcpMonthly := zeroMonths()
	if hasGCP {
		gcpMonthly = monthlySpend(rng, baseSpend*gcpPct, growthRate*floatInRange(rng, [2]float64{0.7, 1.3}))
	}
	seatSpend := float64(enterpriseSeats*enterpriseSeatPrice + codeLicenses*codeLicensePrice)

	prodRatio := round(floatInRange(rng, arch.prodRatioRange), 3)
	errorRate := round(floatInRange(rng, arch.errorRateRange), 4)
	nProducts := intInRange(rng, arch.productsRange[0], arch.productsRange[1])
	uniqueUsers := intInRange(rng, arch.usersRange[0], arch.usersRange[1])
	daysInactive := intInRange(rng, arch.inactiveRange[0], arch.inactiveRange[1])

	last := historyMonths - 1
	latestUsageSpend := directMonthly[last] + awsMonthly[last] + gcpMonthly[last]

	// Requests track spend at roughly $0.01-0.05 per request.
	costPerRequest := floatInRange(rng, [2]float64{0.01, 0.05})
	dailyRequests := int(latestUsageSpend / costPerRequest / 30)

	marketplaceSpend := awsMonthly[last] + gcpMonthly[last]
	marketplaceToDirect := signals.MarketplaceToDirectRatio(marketplaceSpend, directMonthly[last])

	var total12Mo float64
	for m := 0; m < historyMonths; m++ {
		total12Mo += directMonthly[m] + awsMonthly[m] + gcpMonthly[m]
	}
	total12Mo += seatSpend * historyMonths

	rec := account.Record{
		AccountID:           accountID,
		Company:             company,
		Domain:              domain,
		Industry:            industries[rng.Intn(len(industries))],
		SignupDate:          signupDate,
		DirectSpend:         round(directMonthly[last], 2),
		AWSMarketplaceSpend: round(awsMonthly[last], 2),
		GCPMarketplaceSpend: round(gcpMonthly[last], 2),
		SeatSpend:           round(seatSpend, 2),
		TotalSpend:          round(latestUsageSpend+seatSpend, 2),
		Total12MoSpend:      round(total12Mo, 2),
		GrowthRate:          round(growthRate, 4),
		ProdRatio:           prodRatio,
		ErrorRate:           errorRate,
		NProducts:           nProducts,
		UniqueUsers:         uniqueUsers,
		EnterpriseSeats:     enterpriseSeats,
		CodeLicenses:        codeLicenses,
		DailyRequests:       dailyRequests,
		DaysInactive:        daysInactive,
		MarketplaceToDirect: marketplaceToDirect,
	}

	usage := usageRows(rec, costPerRequest, directMonthly, awsMonthly, gcpMonthly)
	return rec, usage
}

func usageRows(rec account.Record, costPerRequest float64, direct, aws, gcp [historyMonths]float64) []account.UsageRow {
	var rows []account.UsageRow
	baseDate := time.Now()
	baseDate = time.Date(baseDate.Year(), baseDate.Month(), 1, 0, 0, 0, 0, time.UTC)

	for monthIdx := 0; monthIdx < historyMonths; monthIdx++ {
		month := baseDate.AddDate(0, monthIdx-(historyMonths-1), 0).Format("2006-01")

		channels := []struct {
			name  string
			spend float64
		}{
			{account.ChannelDirect, direct[monthIdx]},
			{account.ChannelAWSMarketplace, aws[monthIdx]},
			{account.ChannelGCPMarketplace, gcp[monthIdx]},
		}
		for _, ch := range channels {
			if ch.spend <= 0 {
				continue
			}
			rows = append(rows, account.UsageRow{
				AccountID: rec.AccountID,
				Company:   rec.Company,
				Month:     month,
				MonthIdx:  monthIdx,
				Channel:   ch.name,
				Spend:     round(ch.spend, 2),
				Requests:  int(ch.spend / costPerRequest),
			})
		}

		if rec.SeatSpend > 0 {
			rows = append(rows, account.UsageRow{
				AccountID: rec.AccountID,
				Company:   rec.Company,
				Month:     month,
				MonthIdx:  monthIdx,
				Channel:   account.ChannelSeatBased,
				Spend:     rec.SeatSpend,
				Requests:  rec.EnterpriseSeats + rec.CodeLicenses,
			})
		}
	}
	return rows
}

// monthlySpend builds a 12-month trajectory ending near baseSpend, growing
// at the annualized rate with multiplicative noise.
func monthlySpend(rng *rand.Rand, baseSpend, growthRate float64) [historyMonths]float64 {
	monthlyGrowth := math.Pow(1+growthRate, 1.0/12) - 1

	// Backdate so the trajectory lands at baseSpend in the final month.
	current := baseSpend / math.Pow(1+monthlyGrowth, historyMonths-1)
	current = math.Max(current, 100)

	var spends [historyMonths]float64
	for m := 0; m < historyMonths; m++ {
		noise := 1 + rng.NormFloat64()*0.08
		current = math.Max(current*(1+monthlyGrowth)*noise, 50)
		spends[m] = round(current, 2)
	}
	return spends
}

// splitChannels distributes spend fractions across direct/AWS/GCP for the
// given channel count. Fractions sum to at most 1; the remainder is the
// seat-based share.
func splitChannels(rng *rand.Rand, nChannels int) (direct, aws, gcp float64) {
	switch nChannels {
	case 1:
		return 1, 0, 0
	case 2:
		direct = floatInRange(rng, [2]float64{0.3, 0.7})
		return direct, 1 - direct, 0
	case 3:
		direct = floatInRange(rng, [2]float64{0.2, 0.5})
		aws = floatInRange(rng, [2]float64{0.2, 1 - direct})
		return direct, aws, 1 - direct - aws
	default:
		direct = floatInRange(rng, [2]float64{0.2, 0.4})
		aws = floatInRange(rng, [2]float64{0.15, 0.35})
		gcp = floatInRange(rng, [2]float64{0.1, math.Max(0.11, 1-direct-aws-0.1)})
		return direct, aws, math.Min(gcp, 1-direct-aws)
	}
}

func zeroMonths() [historyMonths]float64 {
	return [historyMonths]float64{}
}

func floatInRange(rng *rand.Rand, r [2]float64) float64 {
	return r[0] + rng.Float64()*(r[1]-r[0])
}

func intInRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func round(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}
