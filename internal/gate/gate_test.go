package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
)

const appAddr = domain.Address("APPACCT")

func TestVerifyBurn(t *testing.T) {
	tests := []struct {
		name     string
		payment  *ledger.Payment
		assetID  uint64
		min      uint64
		expected error
	}{
		{
			name:     "Valid burn",
			payment:  &ledger.Payment{AssetID: 1, Amount: 500, Receiver: appAddr},
			assetID:  1,
			min:      500,
			expected: nil,
		},
		{
			name:     "Overpayment accepted",
			payment:  &ledger.Payment{AssetID: 1, Amount: 900, Receiver: appAddr},
			assetID:  1,
			min:      500,
			expected: nil,
		},
		{
			name:     "Asset not bootstrapped",
			payment:  &ledger.Payment{AssetID: 1, Amount: 500, Receiver: appAddr},
			assetID:  0,
			min:      500,
			expected: domain.ErrAssetNotBootstrapped,
		},
		{
			name:     "Missing payment",
			payment:  nil,
			assetID:  1,
			min:      500,
			expected: domain.ErrBurnMissing,
		},
		{
			name:     "Wrong asset",
			payment:  &ledger.Payment{AssetID: 2, Amount: 500, Receiver: appAddr},
			assetID:  1,
			min:      500,
			expected: domain.ErrBurnWrongAsset,
		},
		{
			name:     "Underpayment",
			payment:  &ledger.Payment{AssetID: 1, Amount: 499, Receiver: appAddr},
			assetID:  1,
			min:      500,
			expected: domain.ErrBurnTooSmall,
		},
		{
			name:     "Paid to the wrong account",
			payment:  &ledger.Payment{AssetID: 1, Amount: 500, Receiver: "MALLORY"},
			assetID:  1,
			min:      500,
			expected: domain.ErrBurnWrongReceiver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyBurn(tt.payment, tt.assetID, tt.min, appAddr)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestVerifyExactBurn(t *testing.T) {
	exact := &ledger.Payment{AssetID: 3, Amount: 1, Receiver: appAddr}
	assert.NoError(t, VerifyExactBurn(exact, 3, 1, appAddr))

	// Overpaying an exact burn fails where VerifyBurn would pass
	over := &ledger.Payment{AssetID: 3, Amount: 2, Receiver: appAddr}
	assert.NoError(t, VerifyBurn(over, 3, 1, appAddr))
	assert.ErrorIs(t, VerifyExactBurn(over, 3, 1, appAddr), domain.ErrBurnWrongAmount)

	under := &ledger.Payment{AssetID: 3, Amount: 0, Receiver: appAddr}
	assert.ErrorIs(t, VerifyExactBurn(under, 3, 1, appAddr), domain.ErrBurnTooSmall)
}
