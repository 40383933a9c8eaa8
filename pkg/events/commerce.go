package events

import "time"

const (
	EventSessionAdvanced = "SESSION_ADVANCED"
	EventOrderCheckedOut = "ORDER_CHECKED_OUT"
)

// NewSessionAdvanced records one completed dialogue turn.
func NewSessionAdvanced(sessionID, state string, messageCount int) Event {
	return BaseEvent{
		Type: EventSessionAdvanced,
		Data: map[string]interface{}{
			"session_id":    sessionID,
			"state":         state,
			"message_count": messageCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewOrderCheckedOut records a checkout, emitted after the cart is cleared.
func NewOrderCheckedOut(sessionID, storeName string, total float64, itemCount int) Event {
	return BaseEvent{
		Type: EventOrderCheckedOut,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"store":      storeName,
			"total":      total,
			"item_count": itemCount,
		},
		OccurredAt: time.Now(),
	}
}
