package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Authorization errors
	ErrMsgNotOwner       = "caller is not the contract owner"
	ErrMsgWrongAccount   = "caller does not own this account state"
	ErrMsgNotOptedIn     = "account has not opted in"
	ErrMsgAlreadyOptedIn = "account already opted in"

	// Precondition errors
	ErrMsgWrongStage          = "pod is in the wrong stage"
	ErrMsgOnCooldown          = "action on cooldown"
	ErrMsgCooldownTooShort    = "cooldown override below minimum"
	ErrMsgMaxSlots            = "pod slots already at maximum"
	ErrMsgNotEnoughHarvests   = "not enough harvests"
	ErrMsgSlotNotProvisioned  = "pod slot has no storage provisioned"
	ErrMsgAlreadyBootstrapped = "assets already bootstrapped"

	// Bundle-shape errors
	ErrMsgBurnMissing       = "required burn is missing"
	ErrMsgBurnWrongAsset    = "burn uses the wrong asset"
	ErrMsgBurnTooSmall      = "burn amount too small"
	ErrMsgBurnWrongAmount   = "burn amount incorrect"
	ErrMsgBurnWrongReceiver = "burn not addressed to the contract"

	// Configuration errors
	ErrMsgAssetNotBootstrapped = "asset not bootstrapped"

	// Ledger errors
	ErrMsgUnknownAction      = "unknown action"
	ErrMsgInsufficientFunds  = "insufficient asset balance"
	ErrMsgAssetNotFound      = "asset not found"
	ErrMsgAccountNotFound    = "account not found"
	ErrMsgEmptyBundle        = "bundle has no operations"
	ErrMsgInvalidArgument    = "invalid argument"
)

// Common domain errors
// These errors should be used consistently across all layers.
// Wrap with fmt.Errorf("%w: details", domain.ErrXxx) for context.
var (
	// Authorization errors
	ErrNotOwner       = errors.New(ErrMsgNotOwner)
	ErrWrongAccount   = errors.New(ErrMsgWrongAccount)
	ErrNotOptedIn     = errors.New(ErrMsgNotOptedIn)
	ErrAlreadyOptedIn = errors.New(ErrMsgAlreadyOptedIn)

	// Precondition errors
	ErrWrongStage          = errors.New(ErrMsgWrongStage)
	ErrOnCooldown          = errors.New(ErrMsgOnCooldown)
	ErrCooldownTooShort    = errors.New(ErrMsgCooldownTooShort)
	ErrMaxSlots            = errors.New(ErrMsgMaxSlots)
	ErrNotEnoughHarvests   = errors.New(ErrMsgNotEnoughHarvests)
	ErrSlotNotProvisioned  = errors.New(ErrMsgSlotNotProvisioned)
	ErrAlreadyBootstrapped = errors.New(ErrMsgAlreadyBootstrapped)

	// Bundle-shape errors
	ErrBurnMissing       = errors.New(ErrMsgBurnMissing)
	ErrBurnWrongAsset    = errors.New(ErrMsgBurnWrongAsset)
	ErrBurnTooSmall      = errors.New(ErrMsgBurnTooSmall)
	ErrBurnWrongAmount   = errors.New(ErrMsgBurnWrongAmount)
	ErrBurnWrongReceiver = errors.New(ErrMsgBurnWrongReceiver)

	// Configuration errors
	ErrAssetNotBootstrapped = errors.New(ErrMsgAssetNotBootstrapped)

	// Ledger errors
	ErrUnknownAction     = errors.New(ErrMsgUnknownAction)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrAssetNotFound     = errors.New(ErrMsgAssetNotFound)
	ErrAccountNotFound   = errors.New(ErrMsgAccountNotFound)
	ErrEmptyBundle       = errors.New(ErrMsgEmptyBundle)
	ErrInvalidArgument   = errors.New(ErrMsgInvalidArgument)
)
