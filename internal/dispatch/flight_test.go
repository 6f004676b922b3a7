package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderwise-ai/trip-planner/internal/model"
)

func TestParseFlightEvent(t *testing.T) {
	segment, err := ParseFlightEvent(model.Event{
		Name: "Flight: SFO to JFK",
		Time: "2025-08-10T08:00:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "SFO", segment.Origin)
	assert.Equal(t, "JFK", segment.Destination)
	assert.Equal(t, "2025-08-10", segment.Date, "time must be truncated at the T separator")
}

func TestParseFlightEventDateOnlyTime(t *testing.T) {
	segment, err := ParseFlightEvent(model.Event{
		Name: "✈️ Flight: hou to sfo",
		Time: "2025-08-10",
	})
	require.NoError(t, err)

	assert.Equal(t, "HOU", segment.Origin)
	assert.Equal(t, "SFO", segment.Destination)
	assert.Equal(t, "2025-08-10", segment.Date)
}

func TestParseFlightEventMissingSeparator(t *testing.T) {
	_, err := ParseFlightEvent(model.Event{Name: "Flight SFO-JFK", Time: "2025-08-10"})
	assert.ErrorIs(t, err, ErrFlightNameFormat)
}

func TestParseFlightEventBadIATACode(t *testing.T) {
	_, err := ParseFlightEvent(model.Event{Name: "Flight: SF to JFK", Time: "2025-08-10"})
	assert.ErrorIs(t, err, ErrIATACode)

	_, err = ParseFlightEvent(model.Event{Name: "Flight: SFO to NEWY", Time: "2025-08-10"})
	assert.ErrorIs(t, err, ErrIATACode)
}

func TestFindFlightSegment(t *testing.T) {
	events := []model.Event{
		{Name: "Breakfast at Common Bond", Time: "2025-08-10T07:00:00"},
		{Name: "Flight: HOU to SFO", Time: "2025-08-10T09:00:00"},
		{Name: "Flight: SFO to HOU", Time: "2025-08-12T18:00:00"},
	}

	segment, err := FindFlightSegment(events)
	require.NoError(t, err)

	// Only the first matching flight event is used.
	assert.Equal(t, "HOU", segment.Origin)
	assert.Equal(t, "SFO", segment.Destination)
}

func TestFindFlightSegmentNone(t *testing.T) {
	events := []model.Event{
		{Name: "SFMOMA", Time: "2025-08-10T14:00:00"},
	}

	_, err := FindFlightSegment(events)
	assert.ErrorIs(t, err, ErrNoFlightSegment)
}
