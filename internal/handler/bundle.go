package handler

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
)

// SubmitBundleRequest represents a raw operation bundle. Convenience
// endpoints cover the common action shapes; this endpoint accepts any
// bundle a ledger client could construct.
type SubmitBundleRequest struct {
	Operations []BundleOperation `json:"operations" validate:"required,min=1,max=16,dive"`
}

// BundleOperation is the wire shape of one operation in a bundle.
// Transfer fields apply when type is "transfer"; call fields apply
// when type is "call".
type BundleOperation struct {
	Type string `json:"type" validate:"required,oneof=transfer call"`

	// transfer fields
	AssetID  uint64 `json:"asset_id,omitempty"`
	Amount   uint64 `json:"amount,omitempty"`
	Sender   string `json:"sender,omitempty"`
	Receiver string `json:"receiver,omitempty"`

	// call fields
	OnComplete string   `json:"on_complete,omitempty" validate:"omitempty,oneof=noop create optin closeout update delete"`
	Action     string   `json:"action,omitempty"`
	Args       []string `json:"args,omitempty"`
}

var onCompleteNames = map[string]ledger.OnComplete{
	"":         ledger.OnCompleteNoOp,
	"noop":     ledger.OnCompleteNoOp,
	"create":   ledger.OnCompleteCreate,
	"optin":    ledger.OnCompleteOptIn,
	"closeout": ledger.OnCompleteCloseOut,
	"update":   ledger.OnCompleteUpdate,
	"delete":   ledger.OnCompleteDelete,
}

// HandleSubmitBundle executes a raw operation bundle atomically
// @Summary Submit a bundle
// @Description Execute a raw bundle of transfers and application calls as one atomic unit
// @Tags bundle
// @Accept json
// @Produce json
// @Param request body SubmitBundleRequest true "Operation bundle"
// @Success 200 {object} BundleResponse
// @Failure 400 {object} ErrorResponse "Malformed bundle or rejected operation"
// @Router /bundle [post]
func HandleSubmitBundle(engine Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SubmitBundleRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Submit bundle"); err != nil {
			return
		}

		ops, err := decodeOperations(req.Operations)
		if err != nil {
			log.Warn("Rejected malformed bundle", "error", err)
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		log.Info("Bundle received", "operations", len(ops))

		receipt, err := engine.Submit(r.Context(), ops)
		if err != nil {
			respondServiceError(w, r, "Submit bundle", err)
			return
		}

		respondJSON(w, http.StatusOK, BundleResponse{
			BundleID: receipt.BundleID,
			Emitted:  emittedViews(receipt.Emitted),
		})
	}
}

// decodeOperations converts wire operations into engine operations.
func decodeOperations(wire []BundleOperation) ([]ledger.Operation, error) {
	ops := make([]ledger.Operation, 0, len(wire))
	for i, op := range wire {
		switch op.Type {
		case "transfer":
			ops = append(ops, ledger.Transfer{
				AssetID:  op.AssetID,
				Amount:   op.Amount,
				Sender:   domain.Address(op.Sender),
				Receiver: domain.Address(op.Receiver),
			})
		case "call":
			call, err := decodeCall(op)
			if err != nil {
				return nil, fmt.Errorf("operation %d: %w", i, err)
			}
			ops = append(ops, call)
		default:
			return nil, fmt.Errorf(ErrMsgUnknownOperationType, op.Type)
		}
	}
	return ops, nil
}

func decodeCall(op BundleOperation) (ledger.AppCall, error) {
	call := ledger.AppCall{
		Sender:     domain.Address(op.Sender),
		OnComplete: onCompleteNames[op.OnComplete],
	}

	// Lifecycle calls carry no action; everything else routes by name.
	if call.OnComplete == ledger.OnCompleteNoOp {
		action, slot, err := domain.ParseAction(op.Action)
		if err != nil {
			return ledger.AppCall{}, fmt.Errorf("%s: %w", ErrMsgInvalidActionName, err)
		}
		call.Action = action
		call.Slot = slot
	}

	for _, arg := range op.Args {
		raw, err := base64.StdEncoding.DecodeString(arg)
		if err != nil {
			return ledger.AppCall{}, fmt.Errorf("%s: %w", ErrMsgInvalidArgEncoding, err)
		}
		call.Args = append(call.Args, raw)
	}

	return call, nil
}
