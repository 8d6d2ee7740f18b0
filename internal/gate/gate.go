// Package gate enforces that state-changing actions were paid for.
// The burn arrives as a typed payment derived from the bundle at the
// boundary; the gate asserts its shape and never moves tokens itself.
package gate

import (
	"fmt"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
)

// VerifyBurn checks that payment is a burn of at least minAmount of
// assetID addressed to the application account.
func VerifyBurn(payment *ledger.Payment, assetID, minAmount uint64, appAddr domain.Address) error {
	if assetID == 0 {
		return domain.ErrAssetNotBootstrapped
	}
	if payment == nil {
		return domain.ErrBurnMissing
	}
	if payment.AssetID != assetID {
		return fmt.Errorf("%w: got asset %d, want %d", domain.ErrBurnWrongAsset, payment.AssetID, assetID)
	}
	if payment.Amount < minAmount {
		return fmt.Errorf("%w: got %d, want at least %d", domain.ErrBurnTooSmall, payment.Amount, minAmount)
	}
	if payment.Receiver != appAddr {
		return fmt.Errorf("%w: paid to %s", domain.ErrBurnWrongReceiver, payment.Receiver)
	}
	return nil
}

// VerifyExactBurn is VerifyBurn with an exact-amount requirement,
// used where overpaying must also fail (the slot-token burn).
func VerifyExactBurn(payment *ledger.Payment, assetID, amount uint64, appAddr domain.Address) error {
	if err := VerifyBurn(payment, assetID, amount, appAddr); err != nil {
		return err
	}
	if payment.Amount != amount {
		return fmt.Errorf("%w: got %d, want exactly %d", domain.ErrBurnWrongAmount, payment.Amount, amount)
	}
	return nil
}
