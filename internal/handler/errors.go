package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidAssetID    = "Invalid asset_id parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"

	// Bundle error messages
	ErrMsgUnknownOperationType = "Unknown operation type '%s'. Valid options: transfer, call"
	ErrMsgInvalidActionName    = "Invalid action name"
	ErrMsgInvalidArgEncoding   = "Operation args must be base64 encoded"

	// Read error messages
	ErrMsgGetAccountFailed     = "Failed to get account state"
	ErrMsgGetConfigFailed      = "Failed to get configuration"
	ErrMsgGetBalanceFailed     = "Failed to get balance"
	ErrMsgGetLeaderboardFailed = "Failed to retrieve leaderboard"
	ErrMsgGetStatsFailed       = "Failed to retrieve global stats"
)

// Success messages for API responses
const (
	MsgOptedInSuccess     = "Account opted in successfully"
	MsgPodMintedSuccess   = "Pod minted successfully"
	MsgPodWateredSuccess  = "Pod watered"
	MsgPodFedSuccess      = "Nutrients applied"
	MsgPodCleanedSuccess  = "Pod cleaned and reset"
	MsgPodBredSuccess     = "Pods bred successfully"
	MsgNoRewardMessage    = "No reward this time"
	MsgSlotTokenClaimed   = "Slot token claimed"
	MsgSlotUnlocked       = "Pod slot unlocked"
	MsgBootstrapSuccess   = "Assets bootstrapped successfully"
	MsgAssetIDsSetSuccess = "Asset IDs updated"
)
