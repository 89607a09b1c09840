package timetable

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrRoomBooked     = errors.New("room is already booked for this time")
	ErrLecturerBooked = errors.New("lecturer is already teaching at this time")
	ErrDuplicateEntry = errors.New("duplicate entry found")
)

const uniqueViolation = "23505"

// Conflict detection is delegated to the database's UNIQUE constraints;
// mapConflict translates the violations back into errors callers branch on.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "unique_room_booking":
		return ErrRoomBooked
	case "unique_lecturer_booking":
		return ErrLecturerBooked
	}
	return ErrDuplicateEntry
}
