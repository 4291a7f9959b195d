package events

import "time"

// Event types
const (
	RoutineDayDeleted   = "deleted_day_routine"
	RoutineNightDeleted = "deleted_night_routine"
)

// Stream names. Both periods publish to the same stream; consumers
// disambiguate via the action field.
const (
	RoutineDeletedStream = "routine-deleted-topic"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// DeletedRoutine is one removed entry inside a RoutineDeletedEvent, in the
// order the store returned it.
type DeletedRoutine struct {
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
}

// RoutineDeletedEvent announces a bulk deletion of one user's routines for a
// period. Published before the entries are removed.
type RoutineDeletedEvent struct {
	UserID   string           `json:"user_id"`
	Action   string           `json:"action"`
	Routines []DeletedRoutine `json:"routines"`
}
