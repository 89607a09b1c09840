package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/CharloYT/Timetable/internal/kafka"
)

// Recorder is the audit-trail collaborator. Implementations are
// fire-and-forget: Record must never fail the calling flow.
type Recorder interface {
	Record(ctx context.Context, action, description string, actorID int64)
}

// Publisher is the slice of kafkax.Producer the recorder needs.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// KafkaRecorder publishes activity events for the activity-logger worker
// to persist.
type KafkaRecorder struct {
	Producer Publisher
	Service  string
}

func (r *KafkaRecorder) Record(ctx context.Context, action, description string, actorID int64) {
	ev := Envelope{
		EventID:      uuid.NewString(),
		EventType:    EventActivityRecorded,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     r.Service,
		Payload: kafkax.MustMarshal(Event{
			Action:      action,
			Description: description,
			ActorID:     actorID,
		}),
	}
	r.Producer.Publish(PartitionKey(action), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventActivityRecorded)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

// NopRecorder drops everything. Useful where no broker is wired.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, string, string, int64) {}
