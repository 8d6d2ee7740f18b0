package handler

import (
	"net/http"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
	"github.com/growpodempire/growpod/internal/repository"
)

// ClaimSlotTokenRequest represents the request to convert banked
// harvests plus a BUD burn into one SLOT token
type ClaimSlotTokenRequest struct {
	Address string `json:"address" validate:"required,address"`
}

// UnlockSlotRequest represents the request to burn one SLOT token for
// an additional pod slot
type UnlockSlotRequest struct {
	Address string `json:"address" validate:"required,address"`
}

// HandleClaimSlotToken claims a SLOT token for banked harvests
// @Summary Claim a slot token
// @Description Spend five banked harvests and burn BUD for one SLOT token
// @Tags slots
// @Accept json
// @Produce json
// @Param request body ClaimSlotTokenRequest true "Claim request"
// @Success 200 {object} BundleResponse
// @Failure 400 {object} ErrorResponse "Not enough harvests or insufficient BUD"
// @Failure 409 {object} ErrorResponse "Assets not bootstrapped"
// @Router /slots/claim [post]
func HandleClaimSlotToken(engine Submitter, store repository.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ClaimSlotTokenRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim slot token"); err != nil {
			return
		}

		cfg, err := store.GetGlobalConfig(r.Context())
		if err != nil {
			respondServiceError(w, r, "Claim slot token", err)
			return
		}

		log.Info("Slot token claim received", "address", req.Address)

		receipt, err := engine.Submit(r.Context(), []ledger.Operation{
			ledger.Transfer{
				AssetID:  cfg.BudAsset,
				Amount:   domain.SlotTokenCost,
				Sender:   domain.Address(req.Address),
				Receiver: engine.AppAddress(),
			},
			ledger.AppCall{
				Sender: domain.Address(req.Address),
				Action: domain.ActionClaimSlotToken,
			},
		})
		if err != nil {
			respondServiceError(w, r, "Claim slot token", err)
			return
		}

		respondJSON(w, http.StatusOK, BundleResponse{
			BundleID: receipt.BundleID,
			Message:  MsgSlotTokenClaimed,
			Emitted:  emittedViews(receipt.Emitted),
		})
	}
}

// HandleUnlockSlot burns one SLOT token for an additional pod slot
// @Summary Unlock a pod slot
// @Description Burn exactly one SLOT token to raise the account's pod capacity
// @Tags slots
// @Accept json
// @Produce json
// @Param request body UnlockSlotRequest true "Unlock request"
// @Success 200 {object} BundleResponse
// @Failure 400 {object} ErrorResponse "All slots unlocked or no SLOT token"
// @Failure 409 {object} ErrorResponse "Assets not bootstrapped"
// @Router /slots/unlock [post]
func HandleUnlockSlot(engine Submitter, store repository.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req UnlockSlotRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unlock slot"); err != nil {
			return
		}

		cfg, err := store.GetGlobalConfig(r.Context())
		if err != nil {
			respondServiceError(w, r, "Unlock slot", err)
			return
		}

		log.Info("Slot unlock received", "address", req.Address)

		receipt, err := engine.Submit(r.Context(), []ledger.Operation{
			ledger.Transfer{
				AssetID:  cfg.SlotAsset,
				Amount:   1,
				Sender:   domain.Address(req.Address),
				Receiver: engine.AppAddress(),
			},
			ledger.AppCall{
				Sender: domain.Address(req.Address),
				Action: domain.ActionUnlockSlot,
			},
		})
		if err != nil {
			respondServiceError(w, r, "Unlock slot", err)
			return
		}

		respondJSON(w, http.StatusOK, BundleResponse{
			BundleID: receipt.BundleID,
			Message:  MsgSlotUnlocked,
		})
	}
}
