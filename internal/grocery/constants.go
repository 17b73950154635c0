package grocery

// GroupManuallyAdded is the display bucket for items added outside any recipe.
const GroupManuallyAdded = "Manually Added"

// Log message constants
const (
	LogMsgEventPublishFailed = "Event publish failed after mutation"
)
