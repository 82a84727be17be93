// Package signals derives higher-order scoring signals from raw account
// records and usage history: a blended growth rate, an active-channel count,
// and the marketplace-to-direct spend ratio.
package signals

import (
	"math"
	"sort"

	"github.com/ignite/conversion-monitor/internal/account"
)

const (
	// Growth blend weights: the stored rate is a longer-horizon business
	// metric, the derived rate captures recent momentum. Fixed policy.
	storedGrowthWeight  = 0.7
	derivedGrowthWeight = 0.3

	// recentBuckets is how many trailing months feed the derived rate.
	recentBuckets = 4

	// MissingDaysInactive is the sentinel inactivity value for an account
	// with no record.
	MissingDaysInactive = 999

	// MarketplaceRatioSentinel is returned when direct spend is zero but
	// marketplace spend is positive. A fixed large value, never Inf/NaN.
	MarketplaceRatioSentinel = 99.0
)

// DeriveGrowthRate computes an annualized spend growth rate for one account
// from its monthly usage history. Rows are grouped by month index and summed
// across channels; the last 4 buckets yield month-over-month changes whose
// average is annualized via (1+avg)^12 - 1.
//
// Returns 0 when fewer than 2 buckets exist, when the account has no history,
// or when no valid month-over-month change exists (a zero-spend predecessor
// makes the change undefined and is skipped, not treated as a fault).
func DeriveGrowthRate(history []account.UsageRow, accountID string) float64 {
	totals := make(map[int]float64)
	for _, row := range history {
		if row.AccountID == accountID {
			totals[row.MonthIdx] += row.Spend
		}
	}
	if len(totals) < 2 {
		return 0
	}

	idxs := make([]int, 0, len(totals))
	for idx := range totals {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)

	if len(idxs) > recentBuckets {
		idxs = idxs[len(idxs)-recentBuckets:]
	}

	var sum float64
	var n int
	for i := 1; i < len(idxs); i++ {
		prev := totals[idxs[i-1]]
		if prev == 0 {
			continue
		}
		sum += (totals[idxs[i]] - prev) / prev
		n++
	}
	if n == 0 {
		return 0
	}

	avgMonthly := sum / float64(n)
	return math.Pow(1+avgMonthly, 12) - 1
}

// BlendGrowthRate combines the stored and derived growth rates with the
// fixed 70/30 weights, rounded to 4 decimal places. Idempotent.
func BlendGrowthRate(stored, derived float64) float64 {
	return round4(stored*storedGrowthWeight + derived*derivedGrowthWeight)
}

// ActiveChannelCount counts the channels with strictly positive spend.
func ActiveChannelCount(rec account.Record) int {
	n := 0
	for _, spend := range []float64{
		rec.DirectSpend,
		rec.AWSMarketplaceSpend,
		rec.GCPMarketplaceSpend,
		rec.SeatSpend,
	} {
		if spend > 0 {
			n++
		}
	}
	return n
}

// MarketplaceToDirectRatio returns marketplace/direct spend, rounded to 2
// decimal places. Zero direct spend with positive marketplace spend yields
// the fixed sentinel; zero on both sides yields 0.
func MarketplaceToDirectRatio(marketplace, direct float64) float64 {
	if direct <= 0 {
		if marketplace > 0 {
			return MarketplaceRatioSentinel
		}
		return 0
	}
	return math.Round(marketplace/direct*100) / 100
}

// Enrich attaches the derived signals to one record.
func Enrich(rec account.Record, history []account.UsageRow) account.Enriched {
	derived := DeriveGrowthRate(history, rec.AccountID)
	return account.Enriched{
		Record:             rec,
		ComputedGrowthRate: BlendGrowthRate(rec.GrowthRate, derived),
		ActiveChannels:     ActiveChannelCount(rec),
	}
}

// EnrichAll enriches every record against the shared history.
func EnrichAll(records []account.Record, history []account.UsageRow) []account.Enriched {
	enriched := make([]account.Enriched, len(records))
	for i, rec := range records {
		enriched[i] = Enrich(rec, history)
	}
	return enriched
}

// MissingRecord returns the documented default for an unknown account ID:
// zero signals with the inactivity sentinel.
func MissingRecord(accountID string) account.Enriched {
	return account.Enriched{
		Record: account.Record{
			AccountID:    accountID,
			DaysInactive: MissingDaysInactive,
		},
	}
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
