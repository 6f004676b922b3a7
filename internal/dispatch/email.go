package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wanderwise-ai/trip-planner/internal/model"
)

// ErrMalformedItinerary is returned when the itinerary structure itself is
// unusable (missing the events collection entirely). Field-level absence is
// the caller's problem, not the composer's.
var ErrMalformedItinerary = errors.New("itinerary has no events collection")

// EmailSubject returns the subject line for the itinerary email.
func EmailSubject(trip *model.Trip) string {
	return "Your Upcoming Trip to " + trip.Destination
}

// ComposeEmail renders the itinerary email body. Pure and deterministic:
// identical inputs always yield an identical message.
func ComposeEmail(trip *model.Trip, itin *model.Itinerary) (string, error) {
	if itin == nil || itin.Events == nil {
		return "", ErrMalformedItinerary
	}

	preferences := "None"
	if trip.Preferences != nil {
		preferences = *trip.Preferences
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi,\n\n")
	fmt.Fprintf(&b, "Here is your travel itinerary for your upcoming trip from %s to %s.\n\n", trip.Origin, trip.Destination)
	fmt.Fprintf(&b, "Trip Details:\n")
	fmt.Fprintf(&b, "- Arrival Date: %s\n", trip.ArrivalDate.Format(model.DateLayout))
	fmt.Fprintf(&b, "- Departure Date: %s\n", trip.DepartureDate.Format(model.DateLayout))
	fmt.Fprintf(&b, "- Travel Preferences: %s\n\n", preferences)
	fmt.Fprintf(&b, "Itinerary:\n")

	for i, event := range itin.Events {
		fmt.Fprintf(&b, "\nEvent %d:\n", i+1)
		fmt.Fprintf(&b, "- Name: %s\n", event.Name)
		fmt.Fprintf(&b, "- Time: %s\n", event.Time)
		fmt.Fprintf(&b, "- Price: %s\n", event.Price)
		fmt.Fprintf(&b, "- Address: %s\n", event.Address)
		fmt.Fprintf(&b, "- Description: %s\n", event.Description)
	}

	b.WriteString("\nSafe travels!\n")

	return b.String(), nil
}
