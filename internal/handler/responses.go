package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
)

// responseBuffers pools the encode buffers respondJSON stages bodies
// in. 512 bytes covers every response except a long leaderboard or a
// bundle receipt with many transfers, which just grow their buffer.
var responseBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// BundleResponse reports a committed bundle and the transfers it
// emitted from the application account.
type BundleResponse struct {
	BundleID string         `json:"bundle_id"`
	Message  string         `json:"message,omitempty"`
	Emitted  []TransferView `json:"emitted,omitempty"`
}

// TransferView is the client-facing shape of an emitted transfer.
type TransferView struct {
	AssetID  uint64 `json:"asset_id"`
	Amount   uint64 `json:"amount"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode to a pooled buffer first so a marshal failure never
	// produces a half-written body
	buf := responseBuffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		responseBuffers.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed operation and writes the mapped
// HTTP response for the underlying domain error.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	log.Error(opName+" failed", "error", err)

	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgNotOwnerError         = "Only the deployment owner can do that"
	ErrMsgWrongAccountError     = "That account is not part of this call"
	ErrMsgNotOptedInError       = "Account has not opted in"
	ErrMsgAlreadyOptedInError   = "Account has already opted in"
	ErrMsgWrongStageError       = "The pod is not in the right stage for that"
	ErrMsgOnCooldownError       = "Action is on cooldown. Try again later"
	ErrMsgCooldownTooShortError = "Cooldown override is below the minimum"
	ErrMsgMaxSlotsError         = "All pod slots are already unlocked"
	ErrMsgNotEnoughHarvErr      = "Not enough harvests recorded"
	ErrMsgSlotNotProvisioned    = "That pod slot has no storage provisioned"
	ErrMsgAlreadyBootstrapped   = "Assets are already bootstrapped"
	ErrMsgBurnMissingError      = "A burn payment must accompany that call"
	ErrMsgBurnWrongAssetError   = "Burn payment uses the wrong asset"
	ErrMsgBurnTooSmallError     = "Burn payment is too small"
	ErrMsgBurnWrongAmountError  = "Burn payment must be the exact amount"
	ErrMsgBurnWrongReceiverErr  = "Burn payment must go to the app account"
	ErrMsgAssetNotBootstrapped  = "Assets have not been bootstrapped yet"
	ErrMsgUnknownActionError    = "Unknown action"
	ErrMsgNotEnoughTokensError  = "Not enough tokens"
	ErrMsgAssetNotFoundError    = "Asset not found"
	ErrMsgAccountNotFoundError  = "Account not found"
	ErrMsgEmptyBundleError      = "Bundle has no operations"
	ErrMsgInvalidArgumentError  = "Invalid argument"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden, ErrMsgNotOwnerError
	case errors.Is(err, domain.ErrWrongAccount):
		return http.StatusForbidden, ErrMsgWrongAccountError
	case errors.Is(err, domain.ErrNotOptedIn):
		return http.StatusNotFound, ErrMsgNotOptedInError
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrAssetNotFound):
		return http.StatusNotFound, ErrMsgAssetNotFoundError
	case errors.Is(err, domain.ErrAlreadyOptedIn):
		return http.StatusConflict, ErrMsgAlreadyOptedInError
	case errors.Is(err, domain.ErrAlreadyBootstrapped):
		return http.StatusConflict, ErrMsgAlreadyBootstrapped
	case errors.Is(err, domain.ErrOnCooldown):
		return http.StatusTooManyRequests, ErrMsgOnCooldownError
	case errors.Is(err, domain.ErrCooldownTooShort):
		return http.StatusBadRequest, ErrMsgCooldownTooShortError
	case errors.Is(err, domain.ErrWrongStage):
		return http.StatusBadRequest, ErrMsgWrongStageError
	case errors.Is(err, domain.ErrMaxSlots):
		return http.StatusBadRequest, ErrMsgMaxSlotsError
	case errors.Is(err, domain.ErrNotEnoughHarvests):
		return http.StatusBadRequest, ErrMsgNotEnoughHarvErr
	case errors.Is(err, domain.ErrSlotNotProvisioned):
		return http.StatusBadRequest, ErrMsgSlotNotProvisioned
	case errors.Is(err, domain.ErrBurnMissing):
		return http.StatusBadRequest, ErrMsgBurnMissingError
	case errors.Is(err, domain.ErrBurnWrongAsset):
		return http.StatusBadRequest, ErrMsgBurnWrongAssetError
	case errors.Is(err, domain.ErrBurnTooSmall):
		return http.StatusBadRequest, ErrMsgBurnTooSmallError
	case errors.Is(err, domain.ErrBurnWrongAmount):
		return http.StatusBadRequest, ErrMsgBurnWrongAmountError
	case errors.Is(err, domain.ErrBurnWrongReceiver):
		return http.StatusBadRequest, ErrMsgBurnWrongReceiverErr
	case errors.Is(err, domain.ErrAssetNotBootstrapped):
		return http.StatusConflict, ErrMsgAssetNotBootstrapped
	case errors.Is(err, domain.ErrUnknownAction):
		return http.StatusBadRequest, ErrMsgUnknownActionError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughTokensError
	case errors.Is(err, domain.ErrEmptyBundle):
		return http.StatusBadRequest, ErrMsgEmptyBundleError
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, ErrMsgInvalidArgumentError
	}

	// Unwrap once in case the service wrapped a domain error with context
	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// emittedViews converts engine transfers to their response shape.
func emittedViews(transfers []ledger.Transfer) []TransferView {
	views := make([]TransferView, 0, len(transfers))
	for _, t := range transfers {
		views = append(views, TransferView{
			AssetID:  t.AssetID,
			Amount:   t.Amount,
			Sender:   string(t.Sender),
			Receiver: string(t.Receiver),
		})
	}
	return views
}
