package generator

import (
	"context"
	"math/rand"
	"testing"

	"github.com/ignite/conversion-monitor/internal/account"
	"github.com/ignite/conversion-monitor/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReproducible(t *testing.T) {
	a := Generate(rand.New(rand.NewSource(42)))
	b := Generate(rand.New(rand.NewSource(42)))

	require.Equal(t, len(a.Accounts), len(b.Accounts))
	require.Equal(t, len(a.Usage), len(b.Usage))

	// Same seed, same dataset, field for field. SignupDate depends on the
	// wall clock date, which is stable within a test run.
	assert.Equal(t, a.Accounts, b.Accounts)
}

func TestGeneratePopulation(t *testing.T) {
	ds := Generate(rand.New(rand.NewSource(7)))

	// Archetype counts: 5+10+15+12+8
	assert.Len(t, ds.Accounts, 50)

	ids := make(map[string]bool)
	for _, rec := range ds.Accounts {
		assert.False(t, ids[rec.AccountID], "duplicate id %s", rec.AccountID)
		ids[rec.AccountID] = true

		assert.NotEmpty(t, rec.Company)
		assert.GreaterOrEqual(t, rec.TotalSpend, 0.0)
		assert.GreaterOrEqual(t, rec.ProdRatio, 0.0)
		assert.LessOrEqual(t, rec.ProdRatio, 1.0)
		assert.GreaterOrEqual(t, rec.ErrorRate, 0.0)
		assert.GreaterOrEqual(t, rec.NProducts, 1)
		assert.GreaterOrEqual(t, rec.UniqueUsers, 1)
		assert.GreaterOrEqual(t, rec.DaysInactive, 0)
		assert.GreaterOrEqual(t, rec.MarketplaceToDirect, 0.0)
	}
}

func TestGenerateUsageHistory(t *testing.T) {
	ds := Generate(rand.New(rand.NewSource(7)))

	rows := make(map[string]int)
	for _, row := range ds.Usage {
		rows[row.AccountID]++
		assert.GreaterOrEqual(t, row.MonthIdx, 0)
		assert.Less(t, row.MonthIdx, 12)
		assert.Greater(t, row.Spend, 0.0)
		assert.Contains(t, []string{
			account.ChannelDirect,
			account.ChannelAWSMarketplace,
			account.ChannelGCPMarketplace,
			account.ChannelSeatBased,
		}, row.Channel)
	}

	// Every account has at least 12 direct-channel rows.
	for _, rec := range ds.Accounts {
		assert.GreaterOrEqual(t, rows[rec.AccountID], 12, "account %s", rec.AccountID)
	}
}

func TestGeneratedDatasetScoresAcrossStages(t *testing.T) {
	ds := Generate(rand.New(rand.NewSource(42)))
	eng := engine.New(engine.NewDataset(ds.Accounts, ds.Usage), 0)

	summary := engine.StageSummary(eng.ScoreAll(context.Background()))

	// The archetype spread should produce a non-trivial population at both
	// ends of the funnel.
	var stages int
	for _, n := range summary {
		if n > 0 {
			stages++
		}
	}
	assert.GreaterOrEqual(t, stages, 3, "summary: %v", summary)
}
