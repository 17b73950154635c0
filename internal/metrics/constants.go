package metrics

// ============================================================================
// Metric Names
// ============================================================================

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
	MetricNameStreamClients      = "stream_clients_connected"
)

// Business metric names
const (
	MetricNameRecipesSaved           = "recipes_saved_total"
	MetricNameRecipesDeleted         = "recipes_deleted_total"
	MetricNameRecipesRestored        = "recipes_restored_total"
	MetricNameGroceryItemsAdded      = "grocery_items_added_total"
	MetricNameUndoPerformed          = "undo_performed_total"
	MetricNameExchangeEncodes        = "exchange_encodes_total"
	MetricNameExchangeDecodeFailures = "exchange_decode_failures_total"
	MetricNameTrashPurged            = "trash_purged_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
	HelpTextStreamClients      = "Current number of connected event stream clients"
)

// Business metric help text
const (
	HelpTextRecipesSaved           = "Total number of recipes saved"
	HelpTextRecipesDeleted         = "Total number of recipes deleted"
	HelpTextRecipesRestored        = "Total number of recipes restored from the trash"
	HelpTextGroceryItemsAdded      = "Total number of grocery items added"
	HelpTextUndoPerformed          = "Total number of undo operations performed"
	HelpTextExchangeEncodes        = "Total number of share payloads encoded"
	HelpTextExchangeDecodeFailures = "Total number of share payloads that failed to decode"
	HelpTextTrashPurged            = "Total number of recipes purged by the retention worker"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelSource = "source"
	LabelMode   = "mode"
	LabelReason = "reason"
)

// Values for the reason label on decode failures
const (
	DecodeFailureUnsupportedVersion = "unsupported_version"
	DecodeFailureMalformed          = "malformed"
	DecodeFailureUnknownType        = "unknown_type"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadMismatch = "Event payload did not decode"
	LogMsgMetricsRecorded      = "Metrics recorded for event"
)
