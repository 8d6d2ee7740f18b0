package reward

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

// profileWithRoll brute-forces a terpene profile whose roll satisfies
// the predicate. The search space is tiny: half of all byte strings
// roll below 128, an eighth below 32.
func profileWithRoll(t *testing.T, pred func(uint64) bool) []byte {
	t.Helper()
	for i := 0; i < 10_000; i++ {
		profile := []byte{byte(i), byte(i >> 8)}
		if pred(Roll(profile)) {
			return profile
		}
	}
	t.Fatal("no profile found")
	return nil
}

func harvestedAccount(profile []byte) *domain.AccountState {
	acct := domain.NewAccountState(testGrower)
	p := acct.Pod(0)
	p.Stage = domain.StageNeedsCleanup
	p.TerpeneProfile = profile
	return acct
}

func TestAmount(t *testing.T) {
	// Roll 0 pays the maximum, and the payout shrinks linearly as the
	// roll approaches the window
	assert.Equal(t, domain.MaxTerpReward, Amount(0))
	assert.Equal(t, uint64(27_500_000_000), Amount(16))
	assert.Equal(t, uint64(6_406_250_000), Amount(31))

	// Every winning roll pays at least the minimum
	for roll := uint64(0); roll < domain.RarityWindow; roll++ {
		assert.GreaterOrEqual(t, Amount(roll), domain.MinTerpReward)
		assert.LessOrEqual(t, Amount(roll), domain.MaxTerpReward)
	}

	// Larger rolls never pay more
	for roll := uint64(1); roll < domain.RarityWindow; roll++ {
		assert.LessOrEqual(t, Amount(roll), Amount(roll-1))
	}
}

func TestCheckWinningRoll(t *testing.T) {
	s := NewService(nil, testApp)
	profile := profileWithRoll(t, func(r uint64) bool { return r < domain.RarityWindow })
	acct := harvestedAccount(profile)

	transfer, err := s.Check(context.Background(), ledger.Env{Sender: testGrower}, testConfig(), acct, 0)
	require.NoError(t, err)
	require.NotNil(t, transfer)

	assert.Equal(t, uint64(2), transfer.AssetID)
	assert.Equal(t, Amount(Roll(profile)), transfer.Amount)
	assert.Equal(t, testApp, transfer.Sender)
	assert.Equal(t, testGrower, transfer.Receiver)
}

func TestCheckLosingRoll(t *testing.T) {
	s := NewService(nil, testApp)
	profile := profileWithRoll(t, func(r uint64) bool { return r >= domain.RarityWindow })
	acct := harvestedAccount(profile)

	// A losing roll succeeds with no payout
	transfer, err := s.Check(context.Background(), ledger.Env{Sender: testGrower}, testConfig(), acct, 0)
	assert.NoError(t, err)
	assert.Nil(t, transfer)
}

func TestCheckRequiresHarvestedPod(t *testing.T) {
	s := NewService(nil, testApp)
	acct := domain.NewAccountState(testGrower)
	acct.Pod(0).Stage = domain.StageReady

	_, err := s.Check(context.Background(), ledger.Env{Sender: testGrower}, testConfig(), acct, 0)
	assert.ErrorIs(t, err, domain.ErrWrongStage)
}

func TestCheckBeforeBootstrap(t *testing.T) {
	s := NewService(nil, testApp)
	acct := harvestedAccount([]byte{1})
	cfg := domain.NewGlobalConfig("OWNER")

	_, err := s.Check(context.Background(), ledger.Env{Sender: testGrower}, cfg, acct, 0)
	assert.ErrorIs(t, err, domain.ErrAssetNotBootstrapped)
}

func TestCheckUnprovisionedSlot(t *testing.T) {
	s := NewService(nil, testApp)
	acct := domain.NewAccountState(testGrower)

	_, err := s.Check(context.Background(), ledger.Env{Sender: testGrower}, testConfig(), acct, 3)
	assert.ErrorIs(t, err, domain.ErrSlotNotProvisioned)
}

func TestCheckRepeatsDeterministically(t *testing.T) {
	// The roll is pure over the stored profile: repeating the call
	// repeats the result until cleanup clears the profile
	s := NewService(nil, testApp)
	profile := profileWithRoll(t, func(r uint64) bool { return r < domain.RarityWindow })
	acct := harvestedAccount(profile)

	first, err := s.Check(context.Background(), ledger.Env{Sender: testGrower}, testConfig(), acct, 0)
	require.NoError(t, err)
	second, err := s.Check(context.Background(), ledger.Env{Sender: testGrower}, testConfig(), acct, 0)
	require.NoError(t, err)
	assert.Equal(t, first.Amount, second.Amount)
}
