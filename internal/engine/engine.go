// Package engine runs the scoring pipeline over a read-only dataset of
// account records and usage history. Accounts score independently, so batch
// runs fan out across a bounded worker pool with no shared mutable state.
package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/conversion-monitor/internal/account"
	"github.com/ignite/conversion-monitor/internal/scoring"
	"github.com/ignite/conversion-monitor/internal/signals"
)

const defaultWorkers = 8

// Dataset is an immutable, indexed view of the input records. Build it once
// and share it freely: nothing mutates it after construction.
type Dataset struct {
	byID  map[string]account.Enriched
	order []string
}

// NewDataset enriches the raw records against the shared usage history and
// indexes them by account ID. Input order is preserved for batch output.
func NewDataset(records []account.Record, history []account.UsageRow) *Dataset {
	d := &Dataset{
		byID:  make(map[string]account.Enriched, len(records)),
		order: make([]string, 0, len(records)),
	}
	for _, rec := range signals.EnrichAll(records, history) {
		if _, dup := d.byID[rec.AccountID]; !dup {
			d.order = append(d.order, rec.AccountID)
		}
		d.byID[rec.AccountID] = rec
	}
	return d
}

// Account looks up one enriched record.
func (d *Dataset) Account(id string) (account.Enriched, bool) {
	rec, ok := d.byID[id]
	return rec, ok
}

// Len returns the number of accounts in the dataset.
func (d *Dataset) Len() int {
	return len(d.order)
}

// Engine scores accounts from a dataset.
type Engine struct {
	dataset *Dataset
	workers int
}

// New creates an engine over the given dataset. workers <= 0 selects the
// default pool size.
func New(dataset *Dataset, workers int) *Engine {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Engine{dataset: dataset, workers: workers}
}

// Dataset returns the engine's dataset.
func (e *Engine) Dataset() *Dataset {
	return e.dataset
}

// ScoreAccount scores a single account. An unknown ID scores the documented
// zero-signal default record rather than returning an error.
func (e *Engine) ScoreAccount(id string) account.Scored {
	rec, ok := e.dataset.Account(id)
	if !ok {
		rec = signals.MissingRecord(id)
	}
	return account.Scored{Record: rec, Result: scoring.Score(rec)}
}

// ScoreRecord scores a caller-supplied enriched record without touching the
// dataset.
func ScoreRecord(rec account.Enriched) account.Scored {
	return account.Scored{Record: rec, Result: scoring.Score(rec)}
}

// ScoreAll scores every account in the dataset concurrently and returns one
// result per account in dataset order, regardless of scheduling. A canceled
// context stops dispatching new work; already-dispatched accounts finish.
func (e *Engine) ScoreAll(ctx context.Context) []account.Scored {
	runID := uuid.NewString()
	start := time.Now()

	results := make([]account.Scored, len(e.dataset.order))
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup

	dispatched := len(e.dataset.order)
dispatch:
	for i, id := range e.dataset.order {
		select {
		case <-ctx.Done():
			dispatched = i
			log.Printf("[engine] run %s canceled after %d/%d accounts", runID, i, len(e.dataset.order))
			break dispatch
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(slot int, accountID string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[slot] = e.ScoreAccount(accountID)
		}(i, id)
	}
	wg.Wait()

	results = results[:dispatched]
	log.Printf("[engine] run %s scored %d accounts in %s", runID, len(results), time.Since(start))
	return results
}

// StageSummary counts scored accounts per stage.
func StageSummary(results []account.Scored) map[account.Stage]int {
	summary := make(map[account.Stage]int)
	for _, sa := range results {
		summary[sa.Result.Stage]++
	}
	return summary
}
