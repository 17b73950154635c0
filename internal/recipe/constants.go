package recipe

// Log message constants
const (
	LogMsgEventPublishFailed = "Event publish failed after mutation"
)
