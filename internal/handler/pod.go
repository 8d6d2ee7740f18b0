package handler

import (
	"net/http"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
)

// MintPodRequest represents the request to seed a new pod
type MintPodRequest struct {
	Address string `json:"address" validate:"required,address"`
	Slot    int    `json:"slot" validate:"min=0,max=4"`
}

// WaterPodRequest represents the request to water a growing pod.
// CooldownSeconds optionally lengthens the wait before the next
// watering; values below the protocol minimum are rejected.
type WaterPodRequest struct {
	Address         string  `json:"address" validate:"required,address"`
	Slot            int     `json:"slot" validate:"min=0,max=4"`
	CooldownSeconds *uint64 `json:"cooldown_seconds,omitempty"`
}

// FeedPodRequest represents the request to apply nutrients to a pod
type FeedPodRequest struct {
	Address string `json:"address" validate:"required,address"`
	Slot    int    `json:"slot" validate:"min=0,max=4"`
}

// HandleMintPod seeds a new pod in an empty slot
// @Summary Mint a pod
// @Description Seed a new pod in the given slot; the slot must be empty
// @Tags pods
// @Accept json
// @Produce json
// @Param request body MintPodRequest true "Mint request"
// @Success 201 {object} BundleResponse
// @Failure 400 {object} ErrorResponse "Slot occupied or not provisioned"
// @Failure 404 {object} ErrorResponse "Account not opted in"
// @Router /pod/mint [post]
func HandleMintPod(engine Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req MintPodRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Mint pod"); err != nil {
			return
		}

		log.Info("Mint pod request received", "address", req.Address, "slot", req.Slot)

		receipt, err := engine.Submit(r.Context(), []ledger.Operation{
			ledger.AppCall{
				Sender: domain.Address(req.Address),
				Action: domain.ActionMintPod,
				Slot:   req.Slot,
			},
		})
		if err != nil {
			respondServiceError(w, r, "Mint pod", err)
			return
		}

		respondJSON(w, http.StatusCreated, BundleResponse{
			BundleID: receipt.BundleID,
			Message:  MsgPodMintedSuccess,
		})
	}
}

// HandleWaterPod waters a growing pod
// @Summary Water a pod
// @Description Water a growing pod; advances the stage at watering milestones
// @Tags pods
// @Accept json
// @Produce json
// @Param request body WaterPodRequest true "Water request"
// @Success 200 {object} BundleResponse
// @Failure 400 {object} ErrorResponse "Wrong stage or cooldown override too short"
// @Failure 429 {object} ErrorResponse "Watering cooldown has not elapsed"
// @Router /pod/water [post]
func HandleWaterPod(engine Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req WaterPodRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Water pod"); err != nil {
			return
		}

		log.Info("Water pod request received", "address", req.Address, "slot", req.Slot)

		call := ledger.AppCall{
			Sender: domain.Address(req.Address),
			Action: domain.ActionWater,
			Slot:   req.Slot,
		}
		if req.CooldownSeconds != nil {
			call.Args = [][]byte{itob(*req.CooldownSeconds)}
		}

		receipt, err := engine.Submit(r.Context(), []ledger.Operation{call})
		if err != nil {
			respondServiceError(w, r, "Water pod", err)
			return
		}

		respondJSON(w, http.StatusOK, BundleResponse{
			BundleID: receipt.BundleID,
			Message:  MsgPodWateredSuccess,
		})
	}
}

// HandleFeedPod applies nutrients to a growing pod
// @Summary Apply nutrients
// @Description Apply nutrients to a growing pod for a yield bonus at harvest
// @Tags pods
// @Accept json
// @Produce json
// @Param request body FeedPodRequest true "Nutrients request"
// @Success 200 {object} BundleResponse
// @Failure 400 {object} ErrorResponse "Wrong stage"
// @Failure 429 {object} ErrorResponse "Nutrient cooldown has not elapsed"
// @Router /pod/nutrients [post]
func HandleFeedPod(engine Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req FeedPodRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Feed pod"); err != nil {
			return
		}

		log.Info("Feed pod request received", "address", req.Address, "slot", req.Slot)

		receipt, err := engine.Submit(r.Context(), []ledger.Operation{
			ledger.AppCall{
				Sender: domain.Address(req.Address),
				Action: domain.ActionNutrients,
				Slot:   req.Slot,
			},
		})
		if err != nil {
			respondServiceError(w, r, "Feed pod", err)
			return
		}

		respondJSON(w, http.StatusOK, BundleResponse{
			BundleID: receipt.BundleID,
			Message:  MsgPodFedSuccess,
		})
	}
}
