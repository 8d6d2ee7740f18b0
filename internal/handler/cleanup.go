package handler

import (
	"net/http"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
	"github.com/growpodempire/growpod/internal/repository"
)

// CleanupPodRequest represents the request to clean a harvested pod.
// The cleanup fee is burned from the caller's BUD balance as part of
// the same bundle.
type CleanupPodRequest struct {
	Address string `json:"address" validate:"required,address"`
	Slot    int    `json:"slot" validate:"min=0,max=4"`
}

// HandleCleanupPod burns the cleanup fee and resets a harvested pod
// @Summary Clean up a pod
// @Description Burn the cleanup fee and reset a harvested pod to empty
// @Tags pods
// @Accept json
// @Produce json
// @Param request body CleanupPodRequest true "Cleanup request"
// @Success 200 {object} BundleResponse
// @Failure 400 {object} ErrorResponse "Pod does not need cleanup or insufficient BUD"
// @Failure 409 {object} ErrorResponse "Assets not bootstrapped"
// @Router /pod/cleanup [post]
func HandleCleanupPod(engine Submitter, store repository.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CleanupPodRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Cleanup pod"); err != nil {
			return
		}

		cfg, err := store.GetGlobalConfig(r.Context())
		if err != nil {
			respondServiceError(w, r, "Cleanup pod", err)
			return
		}

		log.Info("Cleanup request received",
			"address", req.Address, "slot", req.Slot, "burn", cfg.CleanupCost)

		// The fee burn rides in front of the call so the router can
		// verify it as the call's attached payment
		receipt, err := engine.Submit(r.Context(), []ledger.Operation{
			ledger.Transfer{
				AssetID:  cfg.BudAsset,
				Amount:   cfg.CleanupCost,
				Sender:   domain.Address(req.Address),
				Receiver: engine.AppAddress(),
			},
			ledger.AppCall{
				Sender: domain.Address(req.Address),
				Action: domain.ActionCleanup,
				Slot:   req.Slot,
			},
		})
		if err != nil {
			respondServiceError(w, r, "Cleanup pod", err)
			return
		}

		respondJSON(w, http.StatusOK, BundleResponse{
			BundleID: receipt.BundleID,
			Message:  MsgPodCleanedSuccess,
		})
	}
}
