package handler

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
)

// amountPrinter formats token amounts with thousands separators for
// user-facing messages.
var amountPrinter = message.NewPrinter(language.English)

// HarvestPodRequest represents the request to harvest a ready pod
type HarvestPodRequest struct {
	Address string `json:"address" validate:"required,address"`
	Slot    int    `json:"slot" validate:"min=0,max=4"`
}

// HandleHarvestPod harvests a ready pod and pays out the yield
// @Summary Harvest a pod
// @Description Harvest a ready pod; pays the yield in BUD and leaves the pod needing cleanup
// @Tags pods
// @Accept json
// @Produce json
// @Param request body HarvestPodRequest true "Harvest request"
// @Success 200 {object} BundleResponse
// @Failure 400 {object} ErrorResponse "Pod is not ready"
// @Failure 409 {object} ErrorResponse "Assets not bootstrapped"
// @Router /pod/harvest [post]
func HandleHarvestPod(engine Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req HarvestPodRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Harvest pod"); err != nil {
			return
		}

		log.Info("Harvest request received", "address", req.Address, "slot", req.Slot)

		receipt, err := engine.Submit(r.Context(), []ledger.Operation{
			ledger.AppCall{
				Sender: domain.Address(req.Address),
				Action: domain.ActionHarvest,
				Slot:   req.Slot,
			},
		})
		if err != nil {
			respondServiceError(w, r, "Harvest pod", err)
			return
		}

		var yield uint64
		for _, t := range receipt.Emitted {
			if t.Receiver == domain.Address(req.Address) {
				yield += t.Amount
			}
		}

		log.Info("Harvest successful", "address", req.Address, "slot", req.Slot, "yield", yield)

		respondJSON(w, http.StatusOK, BundleResponse{
			BundleID: receipt.BundleID,
			Message:  amountPrinter.Sprintf("Harvested %d microBUD", yield),
			Emitted:  emittedViews(receipt.Emitted),
		})
	}
}
