package handler

import (
	"net/http"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
	"github.com/growpodempire/growpod/internal/repository"
)

// BreedPodsRequest represents the request to breed two parent pods.
// Parents are referenced by ID; the breeding fee is burned from the
// caller's BUD balance in the same bundle.
type BreedPodsRequest struct {
	Address   string `json:"address" validate:"required,address"`
	ParentOne uint64 `json:"parent_one" validate:"required"`
	ParentTwo uint64 `json:"parent_two" validate:"required"`
}

// HandleBreedPods burns the breeding fee and records a breed of two parents
// @Summary Breed two pods
// @Description Burn the breeding fee and breed two parent pods
// @Tags pods
// @Accept json
// @Produce json
// @Param request body BreedPodsRequest true "Breed request"
// @Success 200 {object} BundleResponse
// @Failure 400 {object} ErrorResponse "Invalid parents or insufficient BUD"
// @Failure 409 {object} ErrorResponse "Assets not bootstrapped"
// @Router /pod/breed [post]
func HandleBreedPods(engine Submitter, store repository.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req BreedPodsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Breed pods"); err != nil {
			return
		}

		cfg, err := store.GetGlobalConfig(r.Context())
		if err != nil {
			respondServiceError(w, r, "Breed pods", err)
			return
		}

		log.Info("Breed request received",
			"address", req.Address,
			"parent_one", req.ParentOne,
			"parent_two", req.ParentTwo,
			"burn", cfg.BreedCost)

		receipt, err := engine.Submit(r.Context(), []ledger.Operation{
			ledger.Transfer{
				AssetID:  cfg.BudAsset,
				Amount:   cfg.BreedCost,
				Sender:   domain.Address(req.Address),
				Receiver: engine.AppAddress(),
			},
			ledger.AppCall{
				Sender: domain.Address(req.Address),
				Action: domain.ActionBreed,
				Args:   [][]byte{itob(req.ParentOne), itob(req.ParentTwo)},
			},
		})
		if err != nil {
			respondServiceError(w, r, "Breed pods", err)
			return
		}

		respondJSON(w, http.StatusOK, BundleResponse{
			BundleID: receipt.BundleID,
			Message:  MsgPodBredSuccess,
		})
	}
}
