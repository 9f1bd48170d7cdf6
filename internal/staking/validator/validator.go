package validator

import (
	"github.com/stakelens/stakescan-backend/internal/staking/chain"
	"github.com/stakelens/stakescan-backend/internal/staking/marker"
	"github.com/stakelens/stakescan-backend/internal/staking/model"
)

// Reason is a structured rejection code accumulated during validation.
type Reason string

const (
	ReasonNoMarker              Reason = "no-marker"
	ReasonMalformedMarker       Reason = "malformed-marker"
	ReasonNoStakeOutput         Reason = "no-stake-output"
	ReasonAmountBelowMinimum    Reason = "amount-below-minimum"
	ReasonAmountAboveMaximum    Reason = "amount-above-maximum"
	ReasonStakingTimeOutOfRange Reason = "staking-time-out-of-range"
)

// Result is the structured outcome of validating one transaction. A
// transaction without a marker candidate (HasMarker false) is not persisted
// at all; everything else is, valid or not.
type Result struct {
	HasMarker         bool
	IsValid           bool
	AdjustedAmountSat uint64
	IsOverflow        bool
	Decoded           *marker.Data
	StakeOutput       *chain.TxOutput
	Reasons           []Reason
}

// ReasonStrings renders the reason codes for persistence.
func (r Result) ReasonStrings() []string {
	if len(r.Reasons) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Reasons))
	for _, reason := range r.Reasons {
		out = append(out, string(reason))
	}
	return out
}

// Validate classifies a transaction against the phase parameters governing
// height. capUsedSat is the cumulative active stake admitted so far in
// processing order, used by the overflow policy for capped phases. Validate
// never returns an error: every outcome is a structured result.
func Validate(tx chain.Transaction, params model.PhaseParameters, height uint64, capUsedSat uint64) Result {
	res := Result{}

	candidate, hasCandidate := findMarkerCandidate(tx)
	if !hasCandidate {
		res.Reasons = append(res.Reasons, ReasonNoMarker)
		return res
	}
	res.HasMarker = true

	decoded, ok := marker.Decode(candidate)
	if !ok {
		// Structurally broken marker: record the reason but keep computing
		// the remaining checks for observability.
		res.Reasons = append(res.Reasons, ReasonMalformedMarker)
	} else {
		res.Decoded = &decoded
	}

	stakeOutput := LocateStakeOutput(tx)
	if stakeOutput == nil {
		res.Reasons = append(res.Reasons, ReasonNoStakeOutput)
	} else {
		res.StakeOutput = stakeOutput
		res.AdjustedAmountSat = stakeOutput.ValueSat
		res.IsOverflow = isOverflow(params, height, capUsedSat, stakeOutput.ValueSat)

		if stakeOutput.ValueSat < params.MinStakingAmountSat {
			res.Reasons = append(res.Reasons, ReasonAmountBelowMinimum)
		} else if stakeOutput.ValueSat > params.MaxStakingAmountSat {
			res.Reasons = append(res.Reasons, ReasonAmountAboveMaximum)
		}
	}

	if res.Decoded != nil {
		if res.Decoded.StakingTimeBlocks < params.MinStakingTimeBlocks ||
			res.Decoded.StakingTimeBlocks > params.MaxStakingTimeBlocks {
			res.Reasons = append(res.Reasons, ReasonStakingTimeOutOfRange)
		}
	}

	res.IsValid = len(res.Reasons) == 0
	return res
}

// isOverflow applies the phase's overflow policy. A capped phase overflows
// when admitting the full amount would exceed the cap at this point in
// processing order. A height-range-bounded phase overflows purely on the
// height falling outside the nominal range, independent of amount.
func isOverflow(params model.PhaseParameters, height uint64, capUsedSat, amountSat uint64) bool {
	if params.HasStakingCap() {
		return capUsedSat+amountSat > params.StakingCapSat
	}
	if params.HasCapHeight() {
		return height < params.ActivationHeight || height > params.CapHeight
	}
	return false
}

// findMarkerCandidate returns the script hex of the first output that looks
// like a protocol marker.
func findMarkerCandidate(tx chain.Transaction) (string, bool) {
	for _, out := range tx.Outputs {
		if marker.HasCandidate(out.ScriptHex) {
			return out.ScriptHex, true
		}
	}
	return "", false
}
