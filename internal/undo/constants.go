package undo

import "time"

// DefaultVisibility is how long the undo affordance stays shown after a push.
const DefaultVisibility = 10 * time.Second

// Log message constants
const (
	LogMsgUndoPushed         = "Undo action pushed"
	LogMsgUndoPerformed      = "Undo performed"
	LogMsgUndoFailed         = "Undo inverse failed"
	LogMsgUndoCleared        = "Undo history cleared"
	LogMsgUndoHidden         = "Undo affordance hidden after timeout"
	LogMsgEventPublishFailed = "Event publish failed"
)
