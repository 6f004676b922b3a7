package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderwise-ai/trip-planner/internal/model"
	"github.com/wanderwise-ai/trip-planner/pkg/logger"
)

type memorySink struct {
	events []*model.TripEvent
	err    error
}

func (s *memorySink) PublishTripEvent(ctx context.Context, event *model.TripEvent) (uint64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.events = append(s.events, event)
	return uint64(len(s.events)), nil
}

func (s *memorySink) stages() []model.Stage {
	out := make([]model.Stage, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Stage)
	}
	return out
}

type fakePlanner struct {
	itin *model.Itinerary
	err  error
}

func (p *fakePlanner) GenerateItinerary(ctx context.Context, trip *model.Trip) (*model.Itinerary, error) {
	return p.itin, p.err
}

func (p *fakePlanner) Name() string { return "fake" }

type countingGate struct {
	calls []string
	err   error
}

func (g *countingGate) Execute(ctx context.Context, toolName, userID string, input map[string]interface{}) (interface{}, error) {
	g.calls = append(g.calls, toolName)
	return nil, g.err
}

func serviceTrip() *model.Trip {
	return &model.Trip{
		UserEmail:     "traveler@example.com",
		Origin:        "Houston",
		Destination:   "San Francisco",
		Adults:        2,
		Mode:          model.ModeFlying,
		ArrivalDate:   time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		DepartureDate: time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC),
	}
}

func serviceItinerary() *model.Itinerary {
	return &model.Itinerary{
		Events: []model.Event{
			{Name: "SFMOMA", Time: "2025-08-10T14:00:00", Address: "151 3rd St, San Francisco, CA"},
		},
		EventCount: 1,
		Model:      "test-model",
	}
}

func TestPlanSuccess(t *testing.T) {
	sink := &memorySink{}
	gate := &countingGate{}
	svc := NewTripService(sink, &fakePlanner{itin: serviceItinerary()}, gate, false, logger.NewNop())

	report, err := svc.Plan(context.Background(), "trip-1", serviceTrip())
	require.NoError(t, err)

	assert.True(t, report.Generated)
	assert.Equal(t, "trip-1", report.TripID)
	require.NotNil(t, report.Dispatch)
	assert.True(t, report.Dispatch.EmailSent)
	assert.Equal(t, 1, report.Dispatch.CalendarCreated)

	stages := sink.stages()
	assert.Contains(t, stages, model.StageReceived)
	assert.Contains(t, stages, model.StageGenerating)
	assert.Contains(t, stages, model.StageGenerated)
	assert.Contains(t, stages, model.StageDone)
	assert.NotContains(t, stages, model.StageFailed)

	last := sink.events[len(sink.events)-1]
	assert.Equal(t, model.StageDone, last.Stage)
	assert.Equal(t, "success", last.Status)
}

func TestPlanNoItinerarySkipsDispatch(t *testing.T) {
	sink := &memorySink{}
	gate := &countingGate{}
	svc := NewTripService(sink, &fakePlanner{}, gate, false, logger.NewNop())

	report, err := svc.Plan(context.Background(), "trip-1", serviceTrip())
	require.NoError(t, err, "a usable-output miss is an outcome, not an error")

	assert.False(t, report.Generated)
	assert.Nil(t, report.Dispatch)
	assert.Empty(t, gate.calls, "no tool calls without an itinerary")

	last := sink.events[len(sink.events)-1]
	assert.Equal(t, model.StageFailed, last.Stage)
	assert.Equal(t, "no_itinerary", last.Status)
}

func TestPlanGenerationError(t *testing.T) {
	sink := &memorySink{}
	gate := &countingGate{}
	planErr := errors.New("trip is missing required fields")
	svc := NewTripService(sink, &fakePlanner{err: planErr}, gate, false, logger.NewNop())

	report, err := svc.Plan(context.Background(), "trip-1", serviceTrip())
	require.Error(t, err)
	assert.ErrorIs(t, err, planErr)
	assert.Nil(t, report)
	assert.Empty(t, gate.calls)

	last := sink.events[len(sink.events)-1]
	assert.Equal(t, model.StageFailed, last.Stage)
	assert.Equal(t, "error", last.Status)
}

func TestPlanPartialStatus(t *testing.T) {
	sink := &memorySink{}
	gate := &countingGate{err: errors.New("tool unavailable")}
	svc := NewTripService(sink, &fakePlanner{itin: serviceItinerary()}, gate, false, logger.NewNop())

	report, err := svc.Plan(context.Background(), "trip-1", serviceTrip())
	require.NoError(t, err)

	assert.True(t, report.Generated)
	assert.False(t, report.Dispatch.EmailSent)

	last := sink.events[len(sink.events)-1]
	assert.Equal(t, model.StageDone, last.Stage)
	assert.Equal(t, "partial", last.Status)
}

func TestPlanSurvivesSinkFailure(t *testing.T) {
	sink := &memorySink{err: errors.New("stream offline")}
	gate := &countingGate{}
	svc := NewTripService(sink, &fakePlanner{itin: serviceItinerary()}, gate, false, logger.NewNop())

	report, err := svc.Plan(context.Background(), "trip-1", serviceTrip())
	require.NoError(t, err)
	assert.True(t, report.Generated)
	assert.True(t, report.Dispatch.EmailSent)
}
