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

	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameStreamClients,
			Help: HelpTextStreamClients,
		},
	)
)

// Business Metrics
var (
	RecipesSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecipesSaved,
			Help: HelpTextRecipesSaved,
		},
		[]string{LabelSource},
	)

	RecipesDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecipesDeleted,
			Help: HelpTextRecipesDeleted,
		},
		[]string{LabelMode},
	)

	RecipesRestored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRecipesRestored,
			Help: HelpTextRecipesRestored,
		},
	)

	GroceryItemsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGroceryItemsAdded,
			Help: HelpTextGroceryItemsAdded,
		},
	)

	UndoPerformed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameUndoPerformed,
			Help: HelpTextUndoPerformed,
		},
	)

	ExchangeEncodes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExchangeEncodes,
			Help: HelpTextExchangeEncodes,
		},
		[]string{LabelType},
	)

	ExchangeDecodeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExchangeDecodeFailures,
			Help: HelpTextExchangeDecodeFailures,
		},
		[]string{LabelReason},
	)

	TrashPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTrashPurged,
			Help: HelpTextTrashPurged,
		},
	)
)
