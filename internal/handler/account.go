package handler

import (
	"net/http"
	"strconv"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
	"github.com/growpodempire/growpod/internal/repository"
)

// OptInRequest represents the request to opt an account into the system
type OptInRequest struct {
	Address string `json:"address" validate:"required,address"`
}

// BalanceResponse reports one account's holding of one asset
type BalanceResponse struct {
	Address string `json:"address"`
	AssetID uint64 `json:"asset_id"`
	Amount  uint64 `json:"amount"`
}

// HandleOptIn creates the account's local state
// @Summary Opt in
// @Description Create the per-account state: two empty pods and starting slot capacity
// @Tags account
// @Accept json
// @Produce json
// @Param request body OptInRequest true "Opt-in request"
// @Success 201 {object} BundleResponse
// @Failure 409 {object} ErrorResponse "Account already opted in"
// @Router /account/optin [post]
func HandleOptIn(engine Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req OptInRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Opt in"); err != nil {
			return
		}

		log.Info("Opt-in request received", "address", req.Address)

		receipt, err := engine.Submit(r.Context(), []ledger.Operation{
			ledger.AppCall{
				Sender:     domain.Address(req.Address),
				OnComplete: ledger.OnCompleteOptIn,
			},
		})
		if err != nil {
			respondServiceError(w, r, "Opt in", err)
			return
		}

		respondJSON(w, http.StatusCreated, BundleResponse{
			BundleID: receipt.BundleID,
			Message:  MsgOptedInSuccess,
		})
	}
}

// HandleGetAccountState returns an account's pods and progression counters
// @Summary Get account state
// @Description Return the account's pods, harvest count, and slot capacity
// @Tags account
// @Produce json
// @Param address query string true "Account address"
// @Success 200 {object} domain.AccountState
// @Failure 404 {object} ErrorResponse "Account not opted in"
// @Router /account/state [get]
func HandleGetAccountState(store repository.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address, ok := GetQueryParam(r, w, "address")
		if !ok {
			return
		}

		state, err := store.GetAccountState(r.Context(), domain.Address(address))
		if err != nil {
			respondServiceError(w, r, "Get account state", err)
			return
		}

		respondJSON(w, http.StatusOK, state)
	}
}

// HandleGetBalance returns an account's balance of one asset
// @Summary Get balance
// @Description Return how much of the given asset the account holds
// @Tags account
// @Produce json
// @Param address query string true "Account address"
// @Param asset_id query int true "Asset ID"
// @Success 200 {object} BalanceResponse
// @Router /account/balance [get]
func HandleGetBalance(store repository.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address, ok := GetQueryParam(r, w, "address")
		if !ok {
			return
		}
		assetParam, ok := GetQueryParam(r, w, "asset_id")
		if !ok {
			return
		}
		assetID, err := strconv.ParseUint(assetParam, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidAssetID)
			return
		}

		amount, err := store.GetBalance(r.Context(), assetID, domain.Address(address))
		if err != nil {
			respondServiceError(w, r, "Get balance", err)
			return
		}

		respondJSON(w, http.StatusOK, BalanceResponse{
			Address: address,
			AssetID: assetID,
			Amount:  amount,
		})
	}
}

// HandleGetConfig returns the deployment's global configuration
// @Summary Get configuration
// @Description Return the owner, fee schedule, and bootstrapped asset IDs
// @Tags config
// @Produce json
// @Success 200 {object} domain.GlobalConfig
// @Router /config [get]
func HandleGetConfig(store repository.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := store.GetGlobalConfig(r.Context())
		if err != nil {
			respondServiceError(w, r, "Get config", err)
			return
		}

		respondJSON(w, http.StatusOK, cfg)
	}
}
