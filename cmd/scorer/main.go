// Command scorer runs a one-shot batch scoring pass over a dataset and
// prints one line per account plus a stage summary. Useful for eyeballing
// score distributions and for piping into spreadsheets.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"sort"

	"github.com/ignite/conversion-monitor/internal/account"
	"github.com/ignite/conversion-monitor/internal/engine"
	"github.com/ignite/conversion-monitor/internal/generator"
	"github.com/ignite/conversion-monitor/internal/scoring"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	seed := flag.Int64("seed", 42, "Seed for the generated demo dataset")
	snapshot := flag.String("snapshot", "", "Path to a JSON dataset snapshot (overrides -seed)")
	workers := flag.Int("workers", 8, "Concurrent scoring workers")
	verbose := flag.Bool("v", false, "Print action explanations")
	flag.Parse()

	var dataset *engine.Dataset
	if *snapshot != "" {
		snap, err := engine.LoadSnapshot(*snapshot)
		if err != nil {
			log.Fatalf("load snapshot: %v", err)
		}
		dataset = engine.NewDataset(snap.Accounts, snap.Usage)
	} else {
		ds := generator.Generate(rand.New(rand.NewSource(*seed)))
		dataset = engine.NewDataset(ds.Accounts, ds.Usage)
	}

	eng := engine.New(dataset, *workers)
	results := eng.ScoreAll(context.Background())

	for _, sa := range results {
		fmt.Printf("%s ; %-30s ; score=%5.1f ; stage=%-16s ; action=%s\n",
			sa.Result.AccountID, sa.Record.Company, sa.Result.ConversionScore,
			sa.Result.Stage, scoring.RecommendedAction(sa))
		if *verbose {
			fmt.Printf("    %s\n", scoring.ActionExplanation(sa))
		}
	}

	summary := engine.StageSummary(results)
	stages := []account.Stage{
		account.StageEnterpriseReady,
		account.StageHighVelocity,
		account.StageQualified,
		account.StageNurture,
		account.StageAtRisk,
	}

	fmt.Println()
	fmt.Printf("Scored %d accounts:\n", len(results))
	for _, stage := range stages {
		fmt.Printf("  %-16s %d\n", stage, summary[stage])
	}

	// Top accounts by composite score
	sorted := make([]account.Scored, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Result.ConversionScore > sorted[j].Result.ConversionScore
	})
	fmt.Println()
	fmt.Println("Top 5 conversion candidates:")
	for i := 0; i < len(sorted) && i < 5; i++ {
		fmt.Printf("  %d. %s (%s) score=%.1f\n", i+1,
			sorted[i].Record.Company, sorted[i].Result.AccountID, sorted[i].Result.ConversionScore)
	}
}
