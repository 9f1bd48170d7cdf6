// Package validator classifies candidate staking transactions against phase
// parameters.
package validator

import (
	"strings"

	"github.com/stakelens/stakescan-backend/internal/staking/chain"
)

const (
	taprootScriptType = "witness_v1_taproot"
	taprootScriptHex  = 68 // 0x5120 + 32-byte program, hex-encoded
	taprootPrefix     = "5120"
)

// LocateStakeOutput returns the first taproot output whose address is not
// among the transaction's own input addresses, excluding self-change. Nil
// when the transaction has no such output.
func LocateStakeOutput(tx chain.Transaction) *chain.TxOutput {
	inputAddresses := tx.InputAddresses()
	for i := range tx.Outputs {
		out := &tx.Outputs[i]
		if !isTaproot(out) {
			continue
		}
		if out.Address != "" {
			if _, selfChange := inputAddresses[out.Address]; selfChange {
				continue
			}
		}
		return out
	}
	return nil
}

func isTaproot(out *chain.TxOutput) bool {
	if out.ScriptType == taprootScriptType {
		return true
	}
	script := strings.ToLower(out.ScriptHex)
	return len(script) == taprootScriptHex && strings.HasPrefix(script, taprootPrefix)
}
