package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Ledger Metrics
var (
	BundlesSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBundlesSubmitted,
			Help: HelpTextBundlesSubmitted,
		},
	)

	BundlesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBundlesRejected,
			Help: HelpTextBundlesRejected,
		},
		[]string{LabelAction},
	)

	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActionsTotal,
			Help: HelpTextActionsTotal,
		},
		[]string{LabelAction},
	)

	TokensEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTokensEmitted,
			Help: HelpTextTokensEmitted,
		},
		[]string{LabelAsset},
	)

	HarvestYield = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameHarvestYield,
			Help: HelpTextHarvestYield,
		},
	)

	RewardRolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardRolls,
			Help: HelpTextRewardRolls,
		},
		[]string{LabelOutcome},
	)
)
