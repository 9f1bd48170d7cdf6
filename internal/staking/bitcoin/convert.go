// Package bitcoin implements the Bitcoin-backed block source for staking
// indexation.
package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stakelens/stakescan-backend/pkg/safe"
)

// BtcToSatoshis converts a BTC amount to integer satoshis. btcutil.NewAmount
// applies a single consistent rounding rule, keeping every downstream
// comparison exact.
func BtcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}
