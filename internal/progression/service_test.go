package progression

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
)

const (
	testGrower = domain.Address("GROWER1")
	testApp    = domain.Address("APPACCT")
)

func testConfig() *domain.GlobalConfig {
	cfg := domain.NewGlobalConfig("OWNER")
	cfg.BudAsset = 1
	cfg.TerpAsset = 2
	cfg.SlotAsset = 3
	return cfg
}

func budBurn(amount uint64) ledger.Env {
	return ledger.Env{
		Sender:  testGrower,
		Payment: &ledger.Payment{AssetID: 1, Amount: amount, Receiver: testApp},
	}
}

func slotBurn(amount uint64) ledger.Env {
	return ledger.Env{
		Sender:  testGrower,
		Payment: &ledger.Payment{AssetID: 3, Amount: amount, Receiver: testApp},
	}
}

func TestClaimSlotToken(t *testing.T) {
	s := NewService(nil, testApp)
	acct := domain.NewAccountState(testGrower)
	acct.HarvestCount = 7

	transfer, err := s.ClaimSlotToken(context.Background(), budBurn(domain.SlotTokenCost), testConfig(), acct)
	require.NoError(t, err)
	require.NotNil(t, transfer)

	// Exactly five harvests are consumed; the surplus carries over
	assert.Equal(t, uint64(2), acct.HarvestCount)
	assert.Equal(t, uint64(3), transfer.AssetID)
	assert.Equal(t, uint64(1), transfer.Amount)
	assert.Equal(t, testGrower, transfer.Receiver)

	// A second claim needs five more
	_, err = s.ClaimSlotToken(context.Background(), budBurn(domain.SlotTokenCost), testConfig(), acct)
	assert.ErrorIs(t, err, domain.ErrNotEnoughHarvests)
	assert.Equal(t, uint64(2), acct.HarvestCount)
}

func TestClaimSlotTokenBurnValidation(t *testing.T) {
	s := NewService(nil, testApp)
	acct := domain.NewAccountState(testGrower)
	acct.HarvestCount = 5

	_, err := s.ClaimSlotToken(context.Background(), budBurn(domain.SlotTokenCost-1), testConfig(), acct)
	assert.ErrorIs(t, err, domain.ErrBurnTooSmall)
	assert.Equal(t, uint64(5), acct.HarvestCount)

	_, err = s.ClaimSlotToken(context.Background(), ledger.Env{Sender: testGrower}, testConfig(), acct)
	assert.ErrorIs(t, err, domain.ErrBurnMissing)
}

func TestClaimSlotTokenBeforeBootstrap(t *testing.T) {
	s := NewService(nil, testApp)
	acct := domain.NewAccountState(testGrower)
	acct.HarvestCount = 5

	_, err := s.ClaimSlotToken(context.Background(), budBurn(domain.SlotTokenCost), domain.NewGlobalConfig("OWNER"), acct)
	assert.ErrorIs(t, err, domain.ErrAssetNotBootstrapped)
}

func TestUnlockSlot(t *testing.T) {
	s := NewService(nil, testApp)
	acct := domain.NewAccountState(testGrower)

	err := s.UnlockSlot(context.Background(), slotBurn(1), testConfig(), acct)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), acct.PodSlots)
}

func TestUnlockSlotExactBurn(t *testing.T) {
	s := NewService(nil, testApp)
	acct := domain.NewAccountState(testGrower)

	// The slot burn must be exactly one token
	err := s.UnlockSlot(context.Background(), slotBurn(2), testConfig(), acct)
	assert.ErrorIs(t, err, domain.ErrBurnWrongAmount)
	assert.Equal(t, domain.StartingPodSlots, acct.PodSlots)

	// And must be the slot asset, not BUD
	err = s.UnlockSlot(context.Background(), budBurn(1), testConfig(), acct)
	assert.ErrorIs(t, err, domain.ErrBurnWrongAsset)
}

func TestUnlockSlotAtCapacity(t *testing.T) {
	s := NewService(nil, testApp)
	acct := domain.NewAccountState(testGrower)

	for acct.PodSlots < domain.MaxPodSlots {
		require.NoError(t, s.UnlockSlot(context.Background(), slotBurn(1), testConfig(), acct))
	}
	assert.Equal(t, domain.MaxPodSlots, acct.PodSlots)

	err := s.UnlockSlot(context.Background(), slotBurn(1), testConfig(), acct)
	assert.ErrorIs(t, err, domain.ErrMaxSlots)
	assert.Equal(t, domain.MaxPodSlots, acct.PodSlots)
}
