// Package lifecycle evaluates phase end conditions and transitions phase
// runtime state.
package lifecycle

// InactivityPolicy controls the early-termination heuristic for capped
// phases: once cumulative active stake is within GapSat of the target and at
// or above FloorSat, a window of the most recent WindowBlocks heights is
// checked for qualifying stake transactions; an empty window completes the
// phase. Thresholds are operational tuning, not consensus.
type InactivityPolicy struct {
	GapSat       uint64
	FloorSat     uint64
	WindowBlocks uint64
}

// Applies reports whether the inactivity check should run at the given
// cumulative active stake. A zero FloorSat falls back to 80% of the target.
func (p InactivityPolicy) Applies(activeStakeSat, targetSat uint64) bool {
	if p.WindowBlocks == 0 || targetSat == 0 {
		return false
	}
	floor := p.FloorSat
	if floor == 0 {
		floor = targetSat / 5 * 4
	}
	if activeStakeSat < floor {
		return false
	}
	return targetSat-activeStakeSat <= p.GapSat
}
