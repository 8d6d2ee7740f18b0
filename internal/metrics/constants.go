package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Ledger metric names
const (
	MetricNameBundlesSubmitted = "bundles_submitted_total"
	MetricNameBundlesRejected  = "bundles_rejected_total"
	MetricNameActionsTotal     = "actions_total"
	MetricNameTokensEmitted    = "tokens_emitted_total"
	MetricNameHarvestYield     = "harvest_yield_units_total"
	MetricNameRewardRolls      = "reward_rolls_total"
)

// Metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextEventsPublished      = "Total number of events published"
	HelpTextEventHandlerErrors   = "Total number of event handler errors"
	HelpTextBundlesSubmitted     = "Total number of bundles committed"
	HelpTextBundlesRejected      = "Total number of bundles rejected, by failing operation"
	HelpTextActionsTotal         = "Total number of application calls executed, by action"
	HelpTextTokensEmitted        = "Total token base units emitted by the contract, by asset"
	HelpTextHarvestYield         = "Total BUD base units paid out by harvests"
	HelpTextRewardRolls          = "Total reward randomizer rolls, by outcome"
)

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelAction  = "action"
	LabelAsset   = "asset"
	LabelOutcome = "outcome"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request
// duration in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
