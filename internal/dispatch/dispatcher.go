// Package dispatch fans a generated itinerary out to its sinks: one email,
// one calendar entry per event, and optionally one flight search. Every tool
// call goes through the authorization gate and fails independently.
package dispatch

import (
	"context"

	"github.com/wanderwise-ai/trip-planner/internal/model"
	"github.com/wanderwise-ai/trip-planner/pkg/logger"
)

// Tool identities registered with Arcade.
const (
	ToolSendEmail      = "Gmail.SendEmail"
	ToolCreateCalEvent = "GoogleCalendar.CreateEvent"
	ToolSearchFlights  = "GoogleFlights.SearchOneWayFlights"
)

// ToolGate executes one authorized tool call.
type ToolGate interface {
	Execute(ctx context.Context, toolName, userID string, input map[string]interface{}) (interface{}, error)
}

// StageFunc receives phase-boundary progress notifications.
type StageFunc func(stage model.Stage, status, detail string)

// Dispatcher delivers an itinerary through the authorization gate.
type Dispatcher struct {
	gate                ToolGate
	flightSearchEnabled bool
	logger              *logger.Logger

	// OnStage, when set, is called at each dispatch phase boundary.
	OnStage StageFunc
}

// NewDispatcher creates a new dispatcher.
func NewDispatcher(gate ToolGate, flightSearchEnabled bool, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		gate:                gate,
		flightSearchEnabled: flightSearchEnabled,
		logger:              log,
	}
}

// Dispatch sends the itinerary email and creates one calendar entry per
// event, best-effort and at-most-once: a failed call is recorded and its
// siblings continue. Duplicate calendar entries are worse than a missed one,
// so nothing is retried.
func (d *Dispatcher) Dispatch(ctx context.Context, trip *model.Trip, itin *model.Itinerary) *model.DispatchReport {
	report := &model.DispatchReport{}

	d.sendEmail(ctx, trip, itin, report)
	d.createCalendarEvents(ctx, trip, itin, report)

	if d.flightSearchEnabled {
		report.FlightSearch = d.searchFlights(ctx, trip, itin)
	}

	return report
}

func (d *Dispatcher) sendEmail(ctx context.Context, trip *model.Trip, itin *model.Itinerary, report *model.DispatchReport) {
	d.stage(model.StageEmail, "started", "")

	body, err := ComposeEmail(trip, itin)
	if err != nil {
		report.EmailError = err.Error()
		d.logger.Error("failed to compose itinerary email", "error", err)
		d.stage(model.StageEmail, "failed", err.Error())
		return
	}

	input := map[string]interface{}{
		"subject":   EmailSubject(trip),
		"body":      body,
		"recipient": trip.UserEmail,
	}

	if _, err := d.gate.Execute(ctx, ToolSendEmail, trip.UserEmail, input); err != nil {
		report.EmailError = err.Error()
		d.logger.Error("failed to send itinerary email", "error", err, "recipient", trip.UserEmail)
		d.stage(model.StageEmail, "failed", err.Error())
		return
	}

	report.EmailSent = true
	d.logger.Info("itinerary email sent", "recipient", trip.UserEmail)
	d.stage(model.StageEmail, "sent", "")
}

func (d *Dispatcher) createCalendarEvents(ctx context.Context, trip *model.Trip, itin *model.Itinerary, report *model.DispatchReport) {
	d.stage(model.StageCalendar, "started", "")

	for _, event := range itin.Events {
		input := map[string]interface{}{
			"summary":     event.Name,
			"description": event.Description,
			// No duration inference: start and end are the same instant.
			"start_datetime": event.Time,
			"end_datetime":   event.Time,
			"location":       event.Address,
			"attendees":      []string{trip.UserEmail},
			"calendar_id":    "primary",
		}

		result := model.EventResult{EventName: event.Name}
		if _, err := d.gate.Execute(ctx, ToolCreateCalEvent, trip.UserEmail, input); err != nil {
			result.Error = err.Error()
			report.CalendarFailed++
			d.logger.Error("failed to create calendar event", "error", err, "event", event.Name)
		} else {
			result.Created = true
			report.CalendarCreated++
		}
		report.EventResults = append(report.EventResults, result)
	}

	d.logger.Info("calendar dispatch complete",
		"created", report.CalendarCreated,
		"failed", report.CalendarFailed,
	)
	d.stage(model.StageCalendar, "done", "")
}

func (d *Dispatcher) searchFlights(ctx context.Context, trip *model.Trip, itin *model.Itinerary) *model.FlightSearchResult {
	d.stage(model.StageFlightSearch, "started", "")
	result := &model.FlightSearchResult{}

	segment, err := FindFlightSegment(itin.Events)
	if err != nil {
		result.Error = err.Error()
		d.logger.Warn("flight search skipped", "error", err)
		d.stage(model.StageFlightSearch, "skipped", err.Error())
		return result
	}

	result.Origin = segment.Origin
	result.Destination = segment.Destination
	result.Date = segment.Date

	input := map[string]interface{}{
		"departure_airport_code": segment.Origin,
		"arrival_airport_code":   segment.Destination,
		"outbound_date":          segment.Date,
		"num_adults":             trip.Adults,
		"num_children":           trip.Children,
	}

	result.Attempted = true
	if _, err := d.gate.Execute(ctx, ToolSearchFlights, trip.UserEmail, input); err != nil {
		result.Error = err.Error()
		d.logger.Error("flight search failed", "error", err)
		d.stage(model.StageFlightSearch, "failed", err.Error())
		return result
	}

	d.stage(model.StageFlightSearch, "done", "")
	return result
}

func (d *Dispatcher) stage(stage model.Stage, status, detail string) {
	if d.OnStage != nil {
		d.OnStage(stage, status, detail)
	}
}
