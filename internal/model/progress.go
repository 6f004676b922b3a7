package model

import "time"

// Stage identifies a step in the trip pipeline.
type Stage string

const (
	StageReceived     Stage = "received"
	StageGenerating   Stage = "generating"
	StageGenerated    Stage = "generated"
	StageEmail        Stage = "email"
	StageCalendar     Stage = "calendar"
	StageFlightSearch Stage = "flight_search"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)

// TripEvent is a progress envelope published to the trip event stream and
// replayed to the client while the pipeline runs.
type TripEvent struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	Stage     Stage     `json:"stage"`
	Status    string    `json:"status"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Sequence  uint64    `json:"sequence,omitempty"`
}
