package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated       EventType = "request_created"
	EventRequestStatusChanged EventType = "request_status_changed"
)

// Event represents a domain event emitted after a request row changes.
type Event struct {
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id"`
	Username  string      `json:"username"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	NewStatus string `json:"new_status"`
}
