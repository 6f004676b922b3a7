// Package service orchestrates the trip planning pipeline.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wanderwise-ai/trip-planner/internal/dispatch"
	"github.com/wanderwise-ai/trip-planner/internal/model"
	"github.com/wanderwise-ai/trip-planner/internal/planner"
	"github.com/wanderwise-ai/trip-planner/pkg/logger"
	"github.com/wanderwise-ai/trip-planner/pkg/metrics"
)

// EventSink publishes trip progress events.
type EventSink interface {
	PublishTripEvent(ctx context.Context, event *model.TripEvent) (uint64, error)
}

// TripService runs one trip end-to-end: generation, then best-effort
// dispatch. Each run carries its own trip record and ID; there is no shared
// in-flight trip state between requests.
type TripService struct {
	sink                EventSink
	planner             planner.Client
	gate                dispatch.ToolGate
	flightSearchEnabled bool
	logger              *logger.Logger
}

// NewTripService creates a new trip service.
func NewTripService(
	sink EventSink,
	plannerClient planner.Client,
	gate dispatch.ToolGate,
	flightSearchEnabled bool,
	log *logger.Logger,
) *TripService {
	return &TripService{
		sink:                sink,
		planner:             plannerClient,
		gate:                gate,
		flightSearchEnabled: flightSearchEnabled,
		logger:              log,
	}
}

// Plan executes the pipeline for one validated trip. The itinerary-less soft
// failure is an expected outcome: dispatch is skipped entirely and the report
// says Generated=false. A non-nil error means a broken precondition, not a
// generation failure.
func (s *TripService) Plan(ctx context.Context, tripID string, trip *model.Trip) (*model.PlanReport, error) {
	log := s.logger.WithTrip(tripID, trip.UserEmail)
	start := time.Now()
	mode := string(trip.Mode)

	log.Info("starting trip planning",
		"origin", trip.Origin,
		"destination", trip.Destination,
		"adults", trip.Adults,
		"children", trip.Children,
		"arrival", trip.ArrivalDate.Format(model.DateLayout),
		"departure", trip.DepartureDate.Format(model.DateLayout),
	)
	s.publish(ctx, tripID, model.StageReceived, "ok", "")

	s.publish(ctx, tripID, model.StageGenerating, "started", "")
	itin, err := s.planner.GenerateItinerary(ctx, trip)
	if err != nil {
		s.publish(ctx, tripID, model.StageFailed, "error", err.Error())
		metrics.RecordPlan(mode, "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("itinerary generation: %w", err)
	}
	if itin == nil {
		log.Warn("no itinerary generated, skipping dispatch")
		s.publish(ctx, tripID, model.StageFailed, "no_itinerary", "the model produced no usable itinerary")
		metrics.RecordPlan(mode, "no_itinerary", time.Since(start).Seconds())
		return &model.PlanReport{TripID: tripID, Generated: false}, nil
	}

	metrics.ItineraryEvents.Observe(float64(itin.EventCount))
	log.Info("itinerary generated", "events", itin.EventCount, "model", itin.Model)
	for i, event := range itin.Events {
		if i >= 3 {
			break
		}
		log.Debug("itinerary event", "index", i+1, "name", event.Name)
	}
	s.publish(ctx, tripID, model.StageGenerated, "ok",
		fmt.Sprintf("%d events from %s", itin.EventCount, itin.Model))

	// One dispatcher per run: the progress hook closes over this trip's ID.
	dispatcher := dispatch.NewDispatcher(s.gate, s.flightSearchEnabled, log)
	dispatcher.OnStage = func(stage model.Stage, status, detail string) {
		s.publish(ctx, tripID, stage, status, detail)
	}

	report := dispatcher.Dispatch(ctx, trip, itin)

	status := "success"
	if !report.EmailSent || report.CalendarFailed > 0 {
		status = "partial"
	}
	s.publish(ctx, tripID, model.StageDone, status,
		fmt.Sprintf("email_sent=%t calendar_created=%d calendar_failed=%d",
			report.EmailSent, report.CalendarCreated, report.CalendarFailed))
	metrics.RecordPlan(mode, status, time.Since(start).Seconds())

	return &model.PlanReport{
		TripID:    tripID,
		Generated: true,
		Itinerary: itin,
		Dispatch:  report,
	}, nil
}

// publish records a progress event. Publish failures are logged and dropped;
// the pipeline never fails because the progress stream is unavailable.
func (s *TripService) publish(ctx context.Context, tripID string, stage model.Stage, status, detail string) {
	event := &model.TripEvent{
		ID:        uuid.Must(uuid.NewV7()).String(),
		TripID:    tripID,
		Stage:     stage,
		Status:    status,
		Detail:    detail,
		CreatedAt: time.Now(),
	}

	if _, err := s.sink.PublishTripEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish trip event", "error", err, "trip_id", tripID, "stage", stage)
	}
}
