package handler

import (
	"net/http"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
)

// CheckRewardRequest represents the request to roll a terpene reward
// for a harvested pod
type CheckRewardRequest struct {
	Address string `json:"address" validate:"required,address"`
	Slot    int    `json:"slot" validate:"min=0,max=4"`
}

// HandleCheckReward rolls the terpene reward for a harvested pod
// @Summary Check terpene reward
// @Description Roll the terpene profile of a harvested pod for a TERP payout
// @Tags rewards
// @Accept json
// @Produce json
// @Param request body CheckRewardRequest true "Reward check request"
// @Success 200 {object} BundleResponse "Reward paid, or no reward for this profile"
// @Failure 400 {object} ErrorResponse "Pod has not been harvested"
// @Failure 409 {object} ErrorResponse "Assets not bootstrapped"
// @Router /reward/check [post]
func HandleCheckReward(engine Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CheckRewardRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Check reward"); err != nil {
			return
		}

		log.Info("Reward check request received", "address", req.Address, "slot", req.Slot)

		receipt, err := engine.Submit(r.Context(), []ledger.Operation{
			ledger.AppCall{
				Sender: domain.Address(req.Address),
				Action: domain.ActionCheckTerp,
				Slot:   req.Slot,
			},
		})
		if err != nil {
			respondServiceError(w, r, "Check reward", err)
			return
		}

		if len(receipt.Emitted) == 0 {
			respondJSON(w, http.StatusOK, BundleResponse{
				BundleID: receipt.BundleID,
				Message:  MsgNoRewardMessage,
			})
			return
		}

		var amount uint64
		for _, t := range receipt.Emitted {
			amount += t.Amount
		}

		log.Info("Reward paid", "address", req.Address, "slot", req.Slot, "amount", amount)

		respondJSON(w, http.StatusOK, BundleResponse{
			BundleID: receipt.BundleID,
			Message:  amountPrinter.Sprintf("Reward minted: %d microTERP", amount),
			Emitted:  emittedViews(receipt.Emitted),
		})
	}
}
