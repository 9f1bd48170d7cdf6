// Package model defines domain models for staking indexation.
package model

import "time"

type Network string

var (
	Mainnet Network = "mainnet"
	Signet  Network = "signet"
	Testnet Network = "testnet"
)

// StakeTransaction is the persisted record of a transaction that carried a
// protocol marker. Invalid transactions are recorded too, with their reason
// codes, so rejections stay auditable. Rows are append-only.
type StakeTransaction struct {
	Network                Network
	TxID                   string
	BlockHeight            uint64
	Timestamp              time.Time
	StakeAmountSat         uint64
	StakerAddress          string
	StakerPublicKeyHex     string
	FinalityProviderKeyHex string
	StakingTimeBlocks      uint16
	ProtocolVersion        uint8
	Phase                  uint32
	IsValid                bool
	IsOverflow             bool
	Reasons                []string
}
