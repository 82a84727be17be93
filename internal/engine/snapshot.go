package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ignite/conversion-monitor/internal/account"
)

// Snapshot is the on-disk JSON shape for a dataset export.
type Snapshot struct {
	Accounts []account.Record   `json:"accounts"`
	Usage    []account.UsageRow `json:"usage"`
}

// LoadSnapshot reads a dataset snapshot from a JSON file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	if len(snap.Accounts) == 0 {
		return nil, fmt.Errorf("snapshot %s contains no accounts", path)
	}
	return &snap, nil
}
