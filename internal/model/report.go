package model

// EventResult records the outcome of one calendar-entry attempt.
type EventResult struct {
	EventName string `json:"event_name"`
	Created   bool   `json:"created"`
	Error     string `json:"error,omitempty"`
}

// FlightSearchResult records the outcome of the optional flight search.
type FlightSearchResult struct {
	Attempted   bool   `json:"attempted"`
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	Date        string `json:"date,omitempty"`
	Error       string `json:"error,omitempty"`
}

// DispatchReport summarizes one best-effort fan-out of an itinerary. Failures
// are isolated per sink and per event; the report is how they surface.
type DispatchReport struct {
	EmailSent       bool                `json:"email_sent"`
	EmailError      string              `json:"email_error,omitempty"`
	CalendarCreated int                 `json:"calendar_created"`
	CalendarFailed  int                 `json:"calendar_failed"`
	EventResults    []EventResult       `json:"event_results,omitempty"`
	FlightSearch    *FlightSearchResult `json:"flight_search,omitempty"`
}

// PlanReport is the end-to-end outcome of one trip planning run.
type PlanReport struct {
	TripID    string          `json:"trip_id"`
	Generated bool            `json:"generated"`
	Itinerary *Itinerary      `json:"itinerary,omitempty"`
	Dispatch  *DispatchReport `json:"dispatch,omitempty"`
}
