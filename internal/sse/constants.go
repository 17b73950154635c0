package sse

import "time"

// Channel buffers. A full buffer drops rather than blocks, so these bound
// how bursty the stream can get before events are lost.
const (
	BroadcastBufferSize = 100 // hub-wide pending events
	ClientEventBuffer   = 50  // pending events per client
	ClientChannelBuffer = 10  // register/unregister requests
)

// KeepaliveInterval is how often idle connections get a ping so proxies do
// not reap them.
const KeepaliveInterval = 30 * time.Second

// EventTypeKeepalive is the keepalive ping event type. Every other event on
// the stream carries a domain event type such as "recipe.saved".
const EventTypeKeepalive = "keepalive"

// Log messages
const (
	LogMsgClientConnected    = "Event stream client connected"
	LogMsgClientDisconnected = "Event stream client disconnected"
	LogMsgSubscriberBridged  = "Event stream subscriber registered"
	LogMsgWriteError         = "Failed to write event stream message"
)
