// Package handler implements the HTTP endpoints for the trip planner.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wanderwise-ai/trip-planner/internal/gazetteer"
	"github.com/wanderwise-ai/trip-planner/internal/model"
	"github.com/wanderwise-ai/trip-planner/internal/service"
	"github.com/wanderwise-ai/trip-planner/pkg/logger"
)

// cityGuidance mirrors the form hint shown when a location fails the
// gazetteer lookup.
const cityGuidance = "Please check that your location inputs are cities, and spelled correctly. " +
	"If it still does not work, try different iterations of the city name."

// TripHandler handles trip planning requests.
type TripHandler struct {
	tripService *service.TripService
	gazetteer   *gazetteer.Gazetteer
	planTimeout time.Duration
	logger      *logger.Logger
}

// NewTripHandler creates a new trip handler. gz may be nil when city
// validation is disabled.
func NewTripHandler(tripService *service.TripService, gz *gazetteer.Gazetteer, planTimeout time.Duration, log *logger.Logger) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		gazetteer:   gz,
		planTimeout: planTimeout,
		logger:      log,
	}
}

// CreateTripResponse is returned when a trip is accepted for planning.
type CreateTripResponse struct {
	TripID    string `json:"trip_id"`
	EventsURL string `json:"events_url"`
}

// Create handles POST /api/v1/trips. The request is validated synchronously;
// the pipeline itself runs in the background with its own bounded context,
// and progress is observable on the events stream.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.TripInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, err := model.NewTrip(input, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.gazetteer != nil {
		if err := h.gazetteer.ValidateRoute(trip.Origin, trip.Destination); err != nil {
			h.logger.Info("rejected unknown city", "error", err)
			writeError(w, http.StatusUnprocessableEntity, cityGuidance)
			return
		}
	}

	tripID := uuid.Must(uuid.NewV7()).String()

	// Detach from the request context: the client follows progress on the
	// events stream and must be able to disconnect without aborting the run.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.planTimeout)
		defer cancel()

		if _, err := h.tripService.Plan(ctx, tripID, trip); err != nil {
			h.logger.Error("trip planning failed", "error", err, "trip_id", tripID)
		}
	}()

	writeJSON(w, http.StatusAccepted, CreateTripResponse{
		TripID:    tripID,
		EventsURL: "/api/v1/trips/" + tripID + "/events",
	})
}
