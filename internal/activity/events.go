package activity

import (
	"encoding/json"
	"time"
)

const Topic = "activity.log"

// Actions recorded by the business app.
const (
	ActionOrderCreated        = "order_created"
	ActionOrderCreationFailed = "order_creation_failed"
	ActionCustomerAdded       = "customer_added"
	ActionCustomerAddFailed   = "customer_add_failed"
)

const EventActivityRecorded = "ActivityRecorded"

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type Event struct {
	Action      string `json:"action"`
	Description string `json:"description"`
	ActorID     int64  `json:"actor_id"`
}

// PartitionKey keeps events of one action on one partition so they stay ordered.
func PartitionKey(action string) []byte { return []byte(action) }
