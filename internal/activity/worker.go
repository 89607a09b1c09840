package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/CharloYT/Timetable/internal/kafka"
	"github.com/CharloYT/Timetable/internal/redisx"
)

// Worker consumes activity events and persists them to the activity_log
// table, deduplicating replayed deliveries by event id.
type Worker struct {
	Repo  *Repo
	Redis *redis.Client
}

func (w *Worker) HandleEvent(ctx context.Context, m kafkago.Message) error {
	var env Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != EventActivityRecorded {
		return nil // ignore
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, "activity", env.EventID)
	if seen, _ := redisx.Exists(ctx, w.Redis, dkey); seen {
		return nil
	}

	ev, err := kafkax.UnwrapPayload[Event](env.Payload)
	if err != nil {
		return err
	}
	if err := w.Repo.Insert(ctx, ev, env.OccurredAt); err != nil {
		return err
	}
	_ = w.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	return nil
}
