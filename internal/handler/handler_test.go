package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growpodempire/growpod/internal/database/memory"
	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
)

// stubSubmitter records the submitted bundle and plays back a canned
// receipt or error.
type stubSubmitter struct {
	receipt *ledger.Receipt
	err     error
	gotOps  []ledger.Operation
}

func (s *stubSubmitter) Submit(ctx context.Context, ops []ledger.Operation) (*ledger.Receipt, error) {
	s.gotOps = ops
	if s.err != nil {
		return nil, s.err
	}
	if s.receipt != nil {
		return s.receipt, nil
	}
	return &ledger.Receipt{BundleID: "test-bundle"}, nil
}

func (s *stubSubmitter) AppAddress() domain.Address {
	return "APPACCT"
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestHandleMintPod(t *testing.T) {
	stub := &stubSubmitter{}

	rr := postJSON(t, HandleMintPod(stub), "/api/v1/pod/mint", MintPodRequest{Address: "GROWER1", Slot: 0})

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp BundleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "test-bundle", resp.BundleID)
	assert.Equal(t, MsgPodMintedSuccess, resp.Message)

	require.Len(t, stub.gotOps, 1)
	call, ok := stub.gotOps[0].(ledger.AppCall)
	require.True(t, ok)
	assert.Equal(t, domain.ActionMintPod, call.Action)
	assert.Equal(t, domain.Address("GROWER1"), call.Sender)
}

func TestHandleMintPodValidation(t *testing.T) {
	stub := &stubSubmitter{}

	// Missing address
	rr := postJSON(t, HandleMintPod(stub), "/api/v1/pod/mint", MintPodRequest{Slot: 0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "address")

	// Slot out of range
	rr = postJSON(t, HandleMintPod(stub), "/api/v1/pod/mint", MintPodRequest{Address: "GROWER1", Slot: 9})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Still nothing submitted
	assert.Nil(t, stub.gotOps)
}

func TestHandleMintPodMalformedBody(t *testing.T) {
	stub := &stubSubmitter{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pod/mint", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	HandleMintPod(stub)(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleWaterPodCooldownOverride(t *testing.T) {
	stub := &stubSubmitter{}
	cd := uint64(1200)

	rr := postJSON(t, HandleWaterPod(stub), "/api/v1/pod/water",
		WaterPodRequest{Address: "GROWER1", Slot: 1, CooldownSeconds: &cd})

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, stub.gotOps, 1)
	call := stub.gotOps[0].(ledger.AppCall)
	assert.Equal(t, 1, call.Slot)
	require.Len(t, call.Args, 1)
	assert.Equal(t, itob(1200), call.Args[0])
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Wrong stage", domain.ErrWrongStage, http.StatusBadRequest},
		{"On cooldown", domain.ErrOnCooldown, http.StatusTooManyRequests},
		{"Not opted in", domain.ErrNotOptedIn, http.StatusNotFound},
		{"Not owner", domain.ErrNotOwner, http.StatusForbidden},
		{"Already opted in", domain.ErrAlreadyOptedIn, http.StatusConflict},
		{"Already bootstrapped", domain.ErrAlreadyBootstrapped, http.StatusConflict},
		{"Burn missing", domain.ErrBurnMissing, http.StatusBadRequest},
		{"Insufficient funds", domain.ErrInsufficientFunds, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubSubmitter{err: tt.err}
			rr := postJSON(t, HandleWaterPod(stub), "/api/v1/pod/water",
				WaterPodRequest{Address: "GROWER1"})
			assert.Equal(t, tt.expected, rr.Code)
		})
	}
}

func TestHandleHarvestPodReportsYield(t *testing.T) {
	stub := &stubSubmitter{
		receipt: &ledger.Receipt{
			BundleID: "b1",
			Emitted: []ledger.Transfer{
				{AssetID: 1, Amount: 375_000_000, Sender: "APPACCT", Receiver: "GROWER1"},
			},
		},
	}

	rr := postJSON(t, HandleHarvestPod(stub), "/api/v1/pod/harvest",
		HarvestPodRequest{Address: "GROWER1"})

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp BundleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Harvested 375,000,000 microBUD", resp.Message)
	require.Len(t, resp.Emitted, 1)
	assert.Equal(t, uint64(375_000_000), resp.Emitted[0].Amount)
}

func TestHandleCheckRewardMiss(t *testing.T) {
	stub := &stubSubmitter{receipt: &ledger.Receipt{BundleID: "b2"}}

	rr := postJSON(t, HandleCheckReward(stub), "/api/v1/reward/check",
		CheckRewardRequest{Address: "GROWER1"})

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp BundleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, MsgNoRewardMessage, resp.Message)
	assert.Empty(t, resp.Emitted)
}

func TestHandleSubmitBundle(t *testing.T) {
	stub := &stubSubmitter{}

	body := SubmitBundleRequest{
		Operations: []BundleOperation{
			{Type: "transfer", AssetID: 1, Amount: 500, Sender: "GROWER1", Receiver: "APPACCT"},
			{Type: "call", Sender: "GROWER1", Action: "cleanup"},
		},
	}

	rr := postJSON(t, HandleSubmitBundle(stub), "/api/v1/bundle", body)
	assert.Equal(t, http.StatusOK, rr.Code)

	require.Len(t, stub.gotOps, 2)
	transfer := stub.gotOps[0].(ledger.Transfer)
	assert.Equal(t, uint64(500), transfer.Amount)
	call := stub.gotOps[1].(ledger.AppCall)
	assert.Equal(t, domain.ActionCleanup, call.Action)
	assert.Equal(t, 0, call.Slot)
}

func TestHandleSubmitBundleLegacySlotName(t *testing.T) {
	stub := &stubSubmitter{}

	body := SubmitBundleRequest{
		Operations: []BundleOperation{
			{Type: "call", Sender: "GROWER1", Action: "water_2"},
		},
	}

	rr := postJSON(t, HandleSubmitBundle(stub), "/api/v1/bundle", body)
	assert.Equal(t, http.StatusOK, rr.Code)

	call := stub.gotOps[0].(ledger.AppCall)
	assert.Equal(t, domain.ActionWater, call.Action)
	assert.Equal(t, 1, call.Slot)
}

func TestHandleSubmitBundleRejectsBadInput(t *testing.T) {
	stub := &stubSubmitter{}

	// Unknown operation type is caught by validation
	rr := postJSON(t, HandleSubmitBundle(stub), "/api/v1/bundle", SubmitBundleRequest{
		Operations: []BundleOperation{{Type: "teleport"}},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Unknown action name
	rr = postJSON(t, HandleSubmitBundle(stub), "/api/v1/bundle", SubmitBundleRequest{
		Operations: []BundleOperation{{Type: "call", Sender: "GROWER1", Action: "compost"}},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Args must be base64
	rr = postJSON(t, HandleSubmitBundle(stub), "/api/v1/bundle", SubmitBundleRequest{
		Operations: []BundleOperation{{Type: "call", Sender: "GROWER1", Action: "water", Args: []string{"!!!"}}},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Empty bundle
	rr = postJSON(t, HandleSubmitBundle(stub), "/api/v1/bundle", SubmitBundleRequest{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	assert.Nil(t, stub.gotOps)
}

func TestHandleGetAccountState(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	acct := domain.NewAccountState("GROWER1")
	acct.HarvestCount = 3
	require.NoError(t, tx.CreateAccountState(ctx, acct))
	require.NoError(t, tx.Commit(ctx))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account/state?address=GROWER1", nil)
	rr := httptest.NewRecorder()
	HandleGetAccountState(store)(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got domain.AccountState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, uint64(3), got.HarvestCount)
	assert.Len(t, got.Pods, 2)

	// Unknown account
	req = httptest.NewRequest(http.MethodGet, "/api/v1/account/state?address=NOBODY", nil)
	rr = httptest.NewRecorder()
	HandleGetAccountState(store)(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Missing parameter
	req = httptest.NewRequest(http.MethodGet, "/api/v1/account/state", nil)
	rr = httptest.NewRecorder()
	HandleGetAccountState(store)(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleGetLeaderboard(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	for i, addr := range []domain.Address{"ALICE", "BOB", "CAROL"} {
		acct := domain.NewAccountState(addr)
		acct.HarvestCount = uint64(i * 5)
		require.NoError(t, tx.CreateAccountState(ctx, acct))
	}
	require.NoError(t, tx.Commit(ctx))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/leaderboard?limit=2", nil)
	rr := httptest.NewRecorder()
	HandleGetLeaderboard(store)(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp LeaderboardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "CAROL", resp.Entries[0].Address)
	assert.Equal(t, 1, resp.Entries[0].Rank)
	assert.Equal(t, "BOB", resp.Entries[1].Address)

	// Limit bounds are enforced
	req = httptest.NewRequest(http.MethodGet, "/api/v1/stats/leaderboard?limit=0", nil)
	rr = httptest.NewRecorder()
	HandleGetLeaderboard(store)(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	HandleHealthz()(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidateAddress(t *testing.T) {
	InitValidator()

	type probe struct {
		Address string `validate:"required,address"`
	}

	assert.NoError(t, GetValidator().ValidateStruct(probe{Address: "GROWER1"}))
	assert.Error(t, GetValidator().ValidateStruct(probe{Address: ""}))
	assert.Error(t, GetValidator().ValidateStruct(probe{Address: "has space"}))
	assert.Error(t, GetValidator().ValidateStruct(probe{Address: string(make([]byte, 200))}))
}
