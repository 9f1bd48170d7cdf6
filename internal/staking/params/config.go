// Package params loads the static phase-parameter table and resolves the
// phase governing a block height.
package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/stakelens/stakescan-backend/internal/staking/model"
)

// Table is the versioned, immutable phase-parameter table loaded once at
// startup.
type Table struct {
	Version string                  `json:"version"`
	Phases  []model.PhaseParameters `json:"phases"`
}

// Load reads and validates the phase table from a JSON file. Any structural
// problem is fatal to the caller: the indexer must not scan with a partial or
// inconsistent table.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read phase table %s: %w", path, err)
	}
	var table Table
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("parse phase table %s: %w", path, err)
	}
	if err := table.validate(); err != nil {
		return nil, fmt.Errorf("invalid phase table %s: %w", path, err)
	}
	return &table, nil
}

func (t *Table) validate() error {
	if len(t.Phases) == 0 {
		return errors.New("no phases defined")
	}
	seen := make(map[uint32]struct{}, len(t.Phases))
	for i, p := range t.Phases {
		if _, dup := seen[p.Phase]; dup {
			return fmt.Errorf("duplicate phase number %d", p.Phase)
		}
		seen[p.Phase] = struct{}{}

		if p.ActivationHeight == 0 {
			return fmt.Errorf("phase %d: activation height is required", p.Phase)
		}
		if i > 0 && p.ActivationHeight <= t.Phases[i-1].ActivationHeight {
			return fmt.Errorf("phase %d: activation height %d not after phase %d",
				p.Phase, p.ActivationHeight, t.Phases[i-1].Phase)
		}
		if p.MinStakingAmountSat == 0 || p.MaxStakingAmountSat < p.MinStakingAmountSat {
			return fmt.Errorf("phase %d: staking amount bounds [%d, %d] invalid",
				p.Phase, p.MinStakingAmountSat, p.MaxStakingAmountSat)
		}
		if p.MinStakingTimeBlocks == 0 || p.MaxStakingTimeBlocks < p.MinStakingTimeBlocks {
			return fmt.Errorf("phase %d: staking time bounds [%d, %d] invalid",
				p.Phase, p.MinStakingTimeBlocks, p.MaxStakingTimeBlocks)
		}
		if !p.HasStakingCap() && !p.HasCapHeight() {
			return fmt.Errorf("phase %d: needs a staking cap or a cap height", p.Phase)
		}
	}
	return nil
}

// Phase returns the parameters for a phase number.
func (t *Table) Phase(number uint32) (model.PhaseParameters, bool) {
	for _, p := range t.Phases {
		if p.Phase == number {
			return p, true
		}
	}
	return model.PhaseParameters{}, false
}
