package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growpodempire/growpod/internal/admin"
	"github.com/growpodempire/growpod/internal/database/memory"
	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/event"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/pod"
	"github.com/growpodempire/growpod/internal/progression"
	"github.com/growpodempire/growpod/internal/reward"
	"github.com/growpodempire/growpod/internal/router"
)

const (
	appAddr = domain.Address("APPACCT")
	owner   = domain.Address("OWNER")
	grower  = domain.Address("GROWER1")
)

type fakeClock struct {
	now   uint64
	round uint64
}

func (c *fakeClock) Now() uint64   { return c.now }
func (c *fakeClock) Round() uint64 { return c.round }

func (c *fakeClock) advance(seconds uint64) {
	c.now += seconds
	c.round += seconds / 4
}

type harness struct {
	engine *ledger.Engine
	store  *memory.Store
	clock  *fakeClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := memory.NewStore()
	clock := &fakeClock{now: 1_700_000_000, round: 1}

	bus := event.NewMemoryBus()
	dispatcher := router.New(
		pod.NewEngine(bus, appAddr),
		reward.NewService(bus, appAddr),
		progression.NewService(bus, appAddr),
		admin.NewService(appAddr),
	)

	engine, err := ledger.NewEngine(store, dispatcher, clock, appAddr)
	require.NoError(t, err)

	return &harness{engine: engine, store: store, clock: clock}
}

func (h *harness) submit(t *testing.T, ops ...ledger.Operation) *ledger.Receipt {
	t.Helper()
	receipt, err := h.engine.Submit(context.Background(), ops)
	require.NoError(t, err)
	return receipt
}

// bootstrappedHarness creates the app, bootstraps assets, opts the
// grower in, and funds them with BUD from the app reserve.
func bootstrappedHarness(t *testing.T, funding uint64) (*harness, *domain.GlobalConfig) {
	t.Helper()
	h := newHarness(t)

	h.submit(t, ledger.AppCall{Sender: owner, OnComplete: ledger.OnCompleteCreate})
	h.submit(t, ledger.AppCall{Sender: owner, Action: domain.ActionBootstrap})
	h.submit(t, ledger.AppCall{Sender: grower, OnComplete: ledger.OnCompleteOptIn})

	cfg, err := h.store.GetGlobalConfig(context.Background())
	require.NoError(t, err)

	if funding > 0 {
		h.submit(t, ledger.Transfer{AssetID: cfg.BudAsset, Amount: funding, Sender: appAddr, Receiver: grower})
	}
	return h, cfg
}

func (h *harness) balance(t *testing.T, assetID uint64, addr domain.Address) uint64 {
	t.Helper()
	amount, err := h.store.GetBalance(context.Background(), assetID, addr)
	require.NoError(t, err)
	return amount
}

func (h *harness) account(t *testing.T) *domain.AccountState {
	t.Helper()
	acct, err := h.store.GetAccountState(context.Background(), grower)
	require.NoError(t, err)
	return acct
}

// growToReady takes slot 0 from empty to ready.
func (h *harness) growToReady(t *testing.T) {
	t.Helper()
	h.submit(t, ledger.AppCall{Sender: grower, Action: domain.ActionMintPod})
	for i := 0; i < 10; i++ {
		h.submit(t, ledger.AppCall{Sender: grower, Action: domain.ActionWater})
		h.clock.advance(domain.WaterCooldown)
	}
}

func TestSubmitEmptyBundle(t *testing.T) {
	h := newHarness(t)
	_, err := h.engine.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyBundle)
}

func TestCreateAndBootstrap(t *testing.T) {
	h, cfg := bootstrappedHarness(t, 0)

	assert.Equal(t, owner, cfg.Owner)
	assert.NotZero(t, cfg.BudAsset)
	assert.NotZero(t, cfg.TerpAsset)
	assert.NotZero(t, cfg.SlotAsset)

	// Full supply held by the app account
	bud, err := h.store.GetAsset(context.Background(), cfg.BudAsset)
	require.NoError(t, err)
	assert.Equal(t, bud.Total, h.balance(t, cfg.BudAsset, appAddr))

	// Bootstrapping twice fails
	_, err = h.engine.Submit(context.Background(), []ledger.Operation{
		ledger.AppCall{Sender: owner, Action: domain.ActionBootstrap},
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyBootstrapped)
}

func TestBootstrapRequiresOwner(t *testing.T) {
	h := newHarness(t)
	h.submit(t, ledger.AppCall{Sender: owner, OnComplete: ledger.OnCompleteCreate})

	_, err := h.engine.Submit(context.Background(), []ledger.Operation{
		ledger.AppCall{Sender: grower, Action: domain.ActionBootstrap},
	})
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

func TestUpdateAndDeleteRequireOwner(t *testing.T) {
	h := newHarness(t)
	h.submit(t, ledger.AppCall{Sender: owner, OnComplete: ledger.OnCompleteCreate})

	completions := map[string]ledger.OnComplete{
		"update": ledger.OnCompleteUpdate,
		"delete": ledger.OnCompleteDelete,
	}
	for name, oc := range completions {
		t.Run(name, func(t *testing.T) {
			_, err := h.engine.Submit(context.Background(), []ledger.Operation{
				ledger.AppCall{Sender: grower, OnComplete: oc},
			})
			assert.ErrorIs(t, err, domain.ErrNotOwner)

			// The owner passes the gate; the call itself is a no-op
			h.submit(t, ledger.AppCall{Sender: owner, OnComplete: oc})
		})
	}

	// Config survives both lifecycle calls untouched
	cfg, err := h.store.GetGlobalConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, owner, cfg.Owner)
}

func TestLifecycleEndToEnd(t *testing.T) {
	funding := uint64(10_000_000_000)
	h, cfg := bootstrappedHarness(t, funding)

	h.growToReady(t)
	assert.Equal(t, domain.StageReady, h.account(t).Pods[0].Stage)

	// Harvest pays the water-bonus yield straight to the grower
	receipt := h.submit(t, ledger.AppCall{Sender: grower, Action: domain.ActionHarvest})
	require.Len(t, receipt.Emitted, 1)
	assert.Equal(t, uint64(300_000_000), receipt.Emitted[0].Amount)
	assert.Equal(t, funding+300_000_000, h.balance(t, cfg.BudAsset, grower))

	acct := h.account(t)
	assert.Equal(t, domain.StageNeedsCleanup, acct.Pods[0].Stage)
	assert.Equal(t, uint64(1), acct.HarvestCount)

	// Cleanup burns the fee in the same bundle and resets the pod
	h.submit(t,
		ledger.Transfer{AssetID: cfg.BudAsset, Amount: cfg.CleanupCost, Sender: grower, Receiver: appAddr},
		ledger.AppCall{Sender: grower, Action: domain.ActionCleanup},
	)
	assert.Equal(t, domain.StageEmpty, h.account(t).Pods[0].Stage)
	assert.Equal(t, funding+300_000_000-cfg.CleanupCost, h.balance(t, cfg.BudAsset, grower))
}

func TestFailedBundleRollsBackEarlierTransfers(t *testing.T) {
	funding := uint64(10_000_000_000)
	h, cfg := bootstrappedHarness(t, funding)

	// The pod is empty, so cleanup must fail; the burn that preceded
	// it in the bundle must be rolled back with it
	_, err := h.engine.Submit(context.Background(), []ledger.Operation{
		ledger.Transfer{AssetID: cfg.BudAsset, Amount: cfg.CleanupCost, Sender: grower, Receiver: appAddr},
		ledger.AppCall{Sender: grower, Action: domain.ActionCleanup},
	})
	assert.ErrorIs(t, err, domain.ErrWrongStage)
	assert.Equal(t, funding, h.balance(t, cfg.BudAsset, grower))
}

func TestPaymentMustImmediatelyPrecedeCall(t *testing.T) {
	funding := uint64(10_000_000_000)
	h, cfg := bootstrappedHarness(t, funding)

	h.growToReady(t)
	h.submit(t, ledger.AppCall{Sender: grower, Action: domain.ActionHarvest})

	// No transfer in front of the call: no payment
	_, err := h.engine.Submit(context.Background(), []ledger.Operation{
		ledger.AppCall{Sender: grower, Action: domain.ActionCleanup},
	})
	assert.ErrorIs(t, err, domain.ErrBurnMissing)

	// A transfer two operations back does not count either
	_, err = h.engine.Submit(context.Background(), []ledger.Operation{
		ledger.Transfer{AssetID: cfg.BudAsset, Amount: cfg.CleanupCost, Sender: grower, Receiver: appAddr},
		ledger.AppCall{Sender: grower, Action: domain.ActionMintPod, Slot: 1},
		ledger.AppCall{Sender: grower, Action: domain.ActionCleanup},
	})
	assert.ErrorIs(t, err, domain.ErrBurnMissing)

	// Nothing from the failed bundle persisted, the burn included
	assert.Equal(t, domain.StageEmpty, h.account(t).Pods[1].Stage)
	assert.Equal(t, funding+300_000_000, h.balance(t, cfg.BudAsset, grower))
}

func TestTransferRequiresFunds(t *testing.T) {
	h, cfg := bootstrappedHarness(t, 100)

	_, err := h.engine.Submit(context.Background(), []ledger.Operation{
		ledger.Transfer{AssetID: cfg.BudAsset, Amount: 101, Sender: grower, Receiver: appAddr},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestTransferUnknownAsset(t *testing.T) {
	h, _ := bootstrappedHarness(t, 0)

	_, err := h.engine.Submit(context.Background(), []ledger.Operation{
		ledger.Transfer{AssetID: 999, Amount: 1, Sender: appAddr, Receiver: grower},
	})
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestDuplicateOptIn(t *testing.T) {
	h, _ := bootstrappedHarness(t, 0)

	_, err := h.engine.Submit(context.Background(), []ledger.Operation{
		ledger.AppCall{Sender: grower, OnComplete: ledger.OnCompleteOptIn},
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyOptedIn)
}

func TestActionsRequireOptIn(t *testing.T) {
	h, _ := bootstrappedHarness(t, 0)

	_, err := h.engine.Submit(context.Background(), []ledger.Operation{
		ledger.AppCall{Sender: "STRANGER", Action: domain.ActionMintPod},
	})
	assert.ErrorIs(t, err, domain.ErrNotOptedIn)
}

func TestSlotProgressionFlow(t *testing.T) {
	funding := uint64(10_000_000_000)
	h, cfg := bootstrappedHarness(t, funding)

	// Five full growth cycles bank five harvests
	for cycle := 0; cycle < 5; cycle++ {
		h.growToReady(t)
		h.submit(t, ledger.AppCall{Sender: grower, Action: domain.ActionHarvest})
		h.submit(t,
			ledger.Transfer{AssetID: cfg.BudAsset, Amount: cfg.CleanupCost, Sender: grower, Receiver: appAddr},
			ledger.AppCall{Sender: grower, Action: domain.ActionCleanup},
		)
	}
	require.Equal(t, uint64(5), h.account(t).HarvestCount)

	// Claim converts the harvests plus a BUD burn into one SLOT token
	receipt := h.submit(t,
		ledger.Transfer{AssetID: cfg.BudAsset, Amount: domain.SlotTokenCost, Sender: grower, Receiver: appAddr},
		ledger.AppCall{Sender: grower, Action: domain.ActionClaimSlotToken},
	)
	require.Len(t, receipt.Emitted, 1)
	assert.Equal(t, uint64(1), h.balance(t, cfg.SlotAsset, grower))
	assert.Zero(t, h.account(t).HarvestCount)

	// Unlock burns the token for a third slot
	h.submit(t,
		ledger.Transfer{AssetID: cfg.SlotAsset, Amount: 1, Sender: grower, Receiver: appAddr},
		ledger.AppCall{Sender: grower, Action: domain.ActionUnlockSlot},
	)
	assert.Equal(t, uint64(3), h.account(t).PodSlots)
	assert.Zero(t, h.balance(t, cfg.SlotAsset, grower))
}

func TestSecondPodIndependence(t *testing.T) {
	h, _ := bootstrappedHarness(t, 0)

	h.submit(t, ledger.AppCall{Sender: grower, Action: domain.ActionMintPod})
	h.submit(t, ledger.AppCall{Sender: grower, Action: domain.ActionMintPod, Slot: 1})

	// Watering slot 1 leaves slot 0 untouched
	h.submit(t, ledger.AppCall{Sender: grower, Action: domain.ActionWater, Slot: 1})

	acct := h.account(t)
	assert.Equal(t, uint64(0), acct.Pods[0].WaterCount)
	assert.Equal(t, uint64(1), acct.Pods[1].WaterCount)
	assert.NotEqual(t, acct.Pods[0].DNA, acct.Pods[1].DNA)
}

func TestRewardCheckThroughEngine(t *testing.T) {
	h, cfg := bootstrappedHarness(t, 0)

	h.growToReady(t)
	h.submit(t, ledger.AppCall{Sender: grower, Action: domain.ActionHarvest})

	profile := h.account(t).Pods[0].TerpeneProfile
	roll := reward.Roll(profile)

	receipt := h.submit(t, ledger.AppCall{Sender: grower, Action: domain.ActionCheckTerp})
	if roll < domain.RarityWindow {
		require.Len(t, receipt.Emitted, 1)
		assert.Equal(t, reward.Amount(roll), receipt.Emitted[0].Amount)
		assert.Equal(t, reward.Amount(roll), h.balance(t, cfg.TerpAsset, grower))
	} else {
		assert.Empty(t, receipt.Emitted)
		assert.Zero(t, h.balance(t, cfg.TerpAsset, grower))
	}
}

func TestTimestampSharedAcrossBundle(t *testing.T) {
	h, _ := bootstrappedHarness(t, 0)

	// Both mints in one bundle see the same timestamp, so the only
	// difference in their genetics is the slot tag
	h.submit(t,
		ledger.AppCall{Sender: grower, Action: domain.ActionMintPod},
		ledger.AppCall{Sender: grower, Action: domain.ActionMintPod, Slot: 1},
	)

	acct := h.account(t)
	assert.NotEqual(t, acct.Pods[0].DNA, acct.Pods[1].DNA)
	assert.NotEqual(t, acct.Pods[0].TerpeneProfile, acct.Pods[1].TerpeneProfile)
}
