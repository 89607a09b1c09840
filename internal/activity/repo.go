package activity

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Insert(ctx context.Context, ev Event, occurredAt time.Time) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO activity_log(action, description, actor_id, occurred_at)
		VALUES ($1, $2, NULLIF($3, 0), $4)`,
		ev.Action, ev.Description, ev.ActorID, occurredAt)
	return err
}
