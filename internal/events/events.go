package events

import "context"

// Event types
const (
	EventContractStatusChanged = "contract_status_changed"
	EventPaymentStatusChanged  = "payment_status_changed"
	EventQuoteReceived         = "quote_received"
)

// Stream carries all contract and payment lifecycle events.
const Stream = "events:escrow"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
