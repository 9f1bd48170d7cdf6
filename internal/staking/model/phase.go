package model

// PhaseParameters are the consensus parameters of one staking phase. Loaded
// once from the static parameter table at startup and immutable afterwards.
// Optional heights and caps use zero as "unset".
type PhaseParameters struct {
	Phase                uint32 `json:"phase"`
	ActivationHeight     uint64 `json:"activation_height"`
	CapHeight            uint64 `json:"cap_height,omitempty"`
	TimeoutHeight        uint64 `json:"timeout_height,omitempty"`
	StakingCapSat        uint64 `json:"staking_cap_sat,omitempty"`
	MinStakingAmountSat  uint64 `json:"min_staking_amount_sat"`
	MaxStakingAmountSat  uint64 `json:"max_staking_amount_sat"`
	MinStakingTimeBlocks uint16 `json:"min_staking_time_blocks"`
	MaxStakingTimeBlocks uint16 `json:"max_staking_time_blocks"`
	ConfirmationDepth    uint16 `json:"confirmation_depth"`
}

// HasStakingCap reports whether the phase ends on total stake.
func (p PhaseParameters) HasStakingCap() bool {
	return p.StakingCapSat > 0
}

// HasCapHeight reports whether the phase ends at a fixed block height.
func (p PhaseParameters) HasCapHeight() bool {
	return p.CapHeight > 0
}

// HasTimeout reports whether the phase carries an explicit timeout height.
func (p PhaseParameters) HasTimeout() bool {
	return p.TimeoutHeight > 0
}

type PhaseStatus string

var (
	PhaseActive    PhaseStatus = "active"
	PhaseCompleted PhaseStatus = "completed"
)

type CompletionReason string

var (
	ReasonTargetReached CompletionReason = "target_reached"
	ReasonTimeout       CompletionReason = "timeout"
	ReasonInactivity    CompletionReason = "inactivity"
	ReasonBlockHeight   CompletionReason = "block_height"
)

// PhaseRuntimeState is the mutable runtime record of one phase. Created when
// the phase first governs a processed height; aggregates advance per height in
// ascending order. Status moves active -> completed exactly once.
type PhaseRuntimeState struct {
	Network          Network
	Phase            uint32
	StartHeight      uint64
	CurrentHeight    uint64
	EndHeight        uint64
	ActiveStakeSat   uint64
	ActiveTxCount    uint64
	UniqueStakers    uint64
	OverflowStakeSat uint64
	OverflowTxCount  uint64
	Status           PhaseStatus
	CompletionReason CompletionReason
}

// Completed reports whether the phase reached its terminal state.
func (s *PhaseRuntimeState) Completed() bool {
	return s.Status == PhaseCompleted
}
