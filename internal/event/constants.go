package event

import "time"

// EventSchemaVersion is stamped on every published event so consumers can
// tell payload shapes apart if they ever change.
const EventSchemaVersion = "1.0"

// RetryQueueBufferSize caps how many failed publishes can wait for retry.
// Overflow goes straight to the dead-letter file.
const RetryQueueBufferSize = 1000

// DeadLetterFilePermissions is the file mode for dead-letter files.
const DeadLetterFilePermissions = 0644

// Log messages for the resilient publisher
const (
	LogMsgEventPublishFailed     = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull         = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed  = "Failed to write to dead letter"
	LogMsgEventRetryExhausted    = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed       = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded    = "Event retry succeeded"
	LogMsgEventDroppedShutdown   = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown   = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout        = "Resilient publisher shutdown timed out"
	LogMsgDeadLetterWriteFailedS = "Failed to write to dead letter shutdown"
	LogMsgEventDeadLettered      = "Event dead-lettered"
)

// LogMsgHandlerErrorFormat reports subscriber failures for one event
const LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"

// CalculateRetryDelay returns the backoff before the given attempt, doubling
// per prior attempt: 2s, 4s, 8s, 16s, 32s for a 2s base.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	return baseDelay * time.Duration(1<<(attempt-1))
}
