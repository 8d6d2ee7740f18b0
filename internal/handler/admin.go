package handler

import (
	"net/http"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
)

// BootstrapRequest represents the owner's request to create the three
// protocol assets
type BootstrapRequest struct {
	Address string `json:"address" validate:"required,address"`
}

// SetAssetIDsRequest represents the owner's request to point the
// configuration at existing asset IDs instead of bootstrapped ones
type SetAssetIDsRequest struct {
	Address string  `json:"address" validate:"required,address"`
	BudID   uint64  `json:"bud_id" validate:"required"`
	TerpID  uint64  `json:"terp_id" validate:"required"`
	SlotID  *uint64 `json:"slot_id,omitempty"`
}

// HandleBootstrap creates the BUD, TERP, and SLOT assets
// @Summary Bootstrap assets
// @Description Create the protocol's three assets and record their IDs; owner only, once
// @Tags admin
// @Accept json
// @Produce json
// @Param request body BootstrapRequest true "Bootstrap request"
// @Success 200 {object} BundleResponse
// @Failure 403 {object} ErrorResponse "Caller is not the owner"
// @Failure 409 {object} ErrorResponse "Assets already bootstrapped"
// @Router /admin/bootstrap [post]
func HandleBootstrap(engine Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req BootstrapRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Bootstrap"); err != nil {
			return
		}

		log.Info("Bootstrap request received", "address", req.Address)

		receipt, err := engine.Submit(r.Context(), []ledger.Operation{
			ledger.AppCall{
				Sender: domain.Address(req.Address),
				Action: domain.ActionBootstrap,
			},
		})
		if err != nil {
			respondServiceError(w, r, "Bootstrap", err)
			return
		}

		respondJSON(w, http.StatusOK, BundleResponse{
			BundleID: receipt.BundleID,
			Message:  MsgBootstrapSuccess,
		})
	}
}

// HandleSetAssetIDs overrides the configured asset IDs
// @Summary Set asset IDs
// @Description Point the configuration at existing asset IDs; owner only
// @Tags admin
// @Accept json
// @Produce json
// @Param request body SetAssetIDsRequest true "Asset ID override request"
// @Success 200 {object} BundleResponse
// @Failure 403 {object} ErrorResponse "Caller is not the owner"
// @Router /admin/assets [post]
func HandleSetAssetIDs(engine Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SetAssetIDsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set asset IDs"); err != nil {
			return
		}

		log.Info("Set asset IDs request received",
			"address", req.Address, "bud", req.BudID, "terp", req.TerpID)

		args := [][]byte{itob(req.BudID), itob(req.TerpID)}
		if req.SlotID != nil {
			args = append(args, itob(*req.SlotID))
		}

		receipt, err := engine.Submit(r.Context(), []ledger.Operation{
			ledger.AppCall{
				Sender: domain.Address(req.Address),
				Action: domain.ActionSetAssetIDs,
				Args:   args,
			},
		})
		if err != nil {
			respondServiceError(w, r, "Set asset IDs", err)
			return
		}

		respondJSON(w, http.StatusOK, BundleResponse{
			BundleID: receipt.BundleID,
			Message:  MsgAssetIDsSetSuccess,
		})
	}
}
