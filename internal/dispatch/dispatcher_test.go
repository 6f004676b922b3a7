package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderwise-ai/trip-planner/internal/model"
	"github.com/wanderwise-ai/trip-planner/pkg/logger"
)

type gateCall struct {
	tool   string
	userID string
	input  map[string]interface{}
}

// fakeGate records tool calls and fails the ones failOn selects.
type fakeGate struct {
	calls  []gateCall
	failOn func(tool string, input map[string]interface{}) error
}

func (g *fakeGate) Execute(ctx context.Context, tool, userID string, input map[string]interface{}) (interface{}, error) {
	g.calls = append(g.calls, gateCall{tool: tool, userID: userID, input: input})
	if g.failOn != nil {
		if err := g.failOn(tool, input); err != nil {
			return nil, err
		}
	}
	return "ok", nil
}

func (g *fakeGate) callsFor(tool string) []gateCall {
	var out []gateCall
	for _, c := range g.calls {
		if c.tool == tool {
			out = append(out, c)
		}
	}
	return out
}

func TestDispatchHappyPath(t *testing.T) {
	gate := &fakeGate{}
	d := NewDispatcher(gate, false, logger.NewNop())

	trip := emailTrip()
	itin := emailItinerary()
	report := d.Dispatch(context.Background(), trip, itin)

	assert.True(t, report.EmailSent)
	assert.Empty(t, report.EmailError)
	assert.Equal(t, 2, report.CalendarCreated)
	assert.Equal(t, 0, report.CalendarFailed)
	assert.Nil(t, report.FlightSearch)

	emails := gate.callsFor(ToolSendEmail)
	require.Len(t, emails, 1)
	assert.Equal(t, "Your Upcoming Trip to San Francisco", emails[0].input["subject"])
	assert.Equal(t, "traveler@example.com", emails[0].input["recipient"])
	assert.Equal(t, "traveler@example.com", emails[0].userID)

	// One calendar call per event, in order, with matching summary/location.
	calendar := gate.callsFor(ToolCreateCalEvent)
	require.Len(t, calendar, len(itin.Events))
	for i, call := range calendar {
		assert.Equal(t, itin.Events[i].Name, call.input["summary"])
		assert.Equal(t, itin.Events[i].Address, call.input["location"])
		assert.Equal(t, call.input["start_datetime"], call.input["end_datetime"])
		assert.Equal(t, "primary", call.input["calendar_id"])
		assert.Equal(t, []string{"traveler@example.com"}, call.input["attendees"])
	}
}

func TestDispatchIsolatesCalendarFailures(t *testing.T) {
	itin := &model.Itinerary{
		Events: []model.Event{
			{Name: "A", Time: "t", Address: "a"},
			{Name: "B", Time: "t", Address: "a"},
			{Name: "C", Time: "t", Address: "a"},
		},
		EventCount: 3,
	}

	gate := &fakeGate{
		failOn: func(tool string, input map[string]interface{}) error {
			if tool == ToolCreateCalEvent && input["summary"] == "B" {
				return errors.New("calendar unavailable")
			}
			return nil
		},
	}
	d := NewDispatcher(gate, false, logger.NewNop())

	report := d.Dispatch(context.Background(), emailTrip(), itin)

	// The failed event must not stop its siblings.
	require.Len(t, gate.callsFor(ToolCreateCalEvent), 3)
	assert.Equal(t, 2, report.CalendarCreated)
	assert.Equal(t, 1, report.CalendarFailed)

	require.Len(t, report.EventResults, 3)
	assert.True(t, report.EventResults[0].Created)
	assert.False(t, report.EventResults[1].Created)
	assert.Contains(t, report.EventResults[1].Error, "calendar unavailable")
	assert.True(t, report.EventResults[2].Created)

	assert.True(t, report.EmailSent)
}

func TestDispatchEmailFailureDoesNotAbortCalendar(t *testing.T) {
	gate := &fakeGate{
		failOn: func(tool string, input map[string]interface{}) error {
			if tool == ToolSendEmail {
				return errors.New("smtp down")
			}
			return nil
		},
	}
	d := NewDispatcher(gate, false, logger.NewNop())

	report := d.Dispatch(context.Background(), emailTrip(), emailItinerary())

	assert.False(t, report.EmailSent)
	assert.Contains(t, report.EmailError, "smtp down")
	assert.Equal(t, 2, report.CalendarCreated)
}

func TestDispatchFlightSearch(t *testing.T) {
	gate := &fakeGate{}
	d := NewDispatcher(gate, true, logger.NewNop())

	report := d.Dispatch(context.Background(), emailTrip(), emailItinerary())

	require.NotNil(t, report.FlightSearch)
	assert.True(t, report.FlightSearch.Attempted)
	assert.Equal(t, "HOU", report.FlightSearch.Origin)
	assert.Equal(t, "SFO", report.FlightSearch.Destination)
	assert.Equal(t, "2025-08-10", report.FlightSearch.Date)

	searches := gate.callsFor(ToolSearchFlights)
	require.Len(t, searches, 1)
	assert.Equal(t, "HOU", searches[0].input["departure_airport_code"])
	assert.Equal(t, "SFO", searches[0].input["arrival_airport_code"])
	assert.Equal(t, "2025-08-10", searches[0].input["outbound_date"])
}

func TestDispatchFlightSearchMalformedName(t *testing.T) {
	itin := &model.Itinerary{
		Events: []model.Event{
			{Name: "Flight SFO-JFK", Time: "2025-08-10", Address: "a"},
		},
		EventCount: 1,
	}

	gate := &fakeGate{}
	d := NewDispatcher(gate, true, logger.NewNop())

	report := d.Dispatch(context.Background(), emailTrip(), itin)

	require.NotNil(t, report.FlightSearch)
	assert.False(t, report.FlightSearch.Attempted)
	assert.NotEmpty(t, report.FlightSearch.Error)
	assert.Empty(t, gate.callsFor(ToolSearchFlights))

	// A failed flight extraction must not disturb the other sinks.
	assert.True(t, report.EmailSent)
	assert.Equal(t, 1, report.CalendarCreated)
}

func TestDispatchStageNotifications(t *testing.T) {
	gate := &fakeGate{}
	d := NewDispatcher(gate, false, logger.NewNop())

	var stages []model.Stage
	d.OnStage = func(stage model.Stage, status, detail string) {
		stages = append(stages, stage)
	}

	d.Dispatch(context.Background(), emailTrip(), emailItinerary())

	assert.Contains(t, stages, model.StageEmail)
	assert.Contains(t, stages, model.StageCalendar)
	assert.NotContains(t, stages, model.StageFlightSearch)
}
