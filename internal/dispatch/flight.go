package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wanderwise-ai/trip-planner/internal/model"
)

// Flight extraction errors. ErrNoFlightSegment is the soft "nothing to
// search" outcome; the other two are hard validation errors for this
// sub-operation only.
var (
	ErrNoFlightSegment  = errors.New("no flight event in itinerary")
	ErrFlightNameFormat = errors.New(`flight event name is missing the " to " separator`)
	ErrIATACode         = errors.New("airport code must be exactly 3 characters")
)

// FlightSegment is one extracted one-way flight leg.
type FlightSegment struct {
	Origin      string
	Destination string
	Date        string
}

// FindFlightSegment scans the itinerary for the first event whose name
// contains "flight" (case-insensitive) and parses it. Only the first match
// is used; later flight events are ignored.
func FindFlightSegment(events []model.Event) (*FlightSegment, error) {
	for _, event := range events {
		if !strings.Contains(strings.ToLower(event.Name), "flight") {
			continue
		}
		return ParseFlightEvent(event)
	}
	return nil, ErrNoFlightSegment
}

// ParseFlightEvent extracts the origin and destination codes from an event
// named like "Flight: SFO to JFK". Both codes must be IATA format (exactly 3
// characters). The event time is normalized to a date-only string by
// truncating at the ISO-8601 T separator.
func ParseFlightEvent(event model.Event) (*FlightSegment, error) {
	name := event.Name
	if idx := strings.LastIndex(name, ":"); idx >= 0 {
		name = name[idx+1:]
	}

	parts := strings.Split(name, " to ")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrFlightNameFormat, event.Name)
	}

	origin := lastField(parts[0])
	destination := firstField(parts[1])

	if len(origin) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrIATACode, origin)
	}
	if len(destination) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrIATACode, destination)
	}

	date := event.Time
	if idx := strings.Index(date, "T"); idx >= 0 {
		date = date[:idx]
	}

	return &FlightSegment{
		Origin:      strings.ToUpper(origin),
		Destination: strings.ToUpper(destination),
		Date:        date,
	}, nil
}

func lastField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
