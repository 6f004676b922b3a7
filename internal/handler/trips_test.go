package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderwise-ai/trip-planner/internal/gazetteer"
	"github.com/wanderwise-ai/trip-planner/internal/model"
	"github.com/wanderwise-ai/trip-planner/internal/service"
	"github.com/wanderwise-ai/trip-planner/pkg/logger"
)

type nopSink struct{}

func (nopSink) PublishTripEvent(ctx context.Context, event *model.TripEvent) (uint64, error) {
	return 0, nil
}

type nopPlanner struct{}

func (nopPlanner) GenerateItinerary(ctx context.Context, trip *model.Trip) (*model.Itinerary, error) {
	return nil, nil
}

func (nopPlanner) Name() string { return "nop" }

type nopGate struct{}

func (nopGate) Execute(ctx context.Context, toolName, userID string, input map[string]interface{}) (interface{}, error) {
	return nil, nil
}

func newTestTripHandler(gz *gazetteer.Gazetteer) *TripHandler {
	svc := service.NewTripService(nopSink{}, nopPlanner{}, nopGate{}, false, logger.NewNop())
	return NewTripHandler(svc, gz, time.Second, logger.NewNop())
}

func tripBody(mutate func(m map[string]interface{})) *strings.Reader {
	m := map[string]interface{}{
		"user_email":            "traveler@example.com",
		"start_location":        "Houston",
		"travel_location":       "San Francisco",
		"passenger_adult_count": 2,
		"passenger_child_count": 0,
		"travel_style":          "flying",
		"arrival_date":          "2099-08-10",
		"departure_date":        "2099-08-12",
	}
	if mutate != nil {
		mutate(m)
	}
	data, _ := json.Marshal(m)
	return strings.NewReader(string(data))
}

func TestCreateTripAccepted(t *testing.T) {
	gz := gazetteer.New([]string{"Houston", "San Francisco"})
	h := newTestTripHandler(gz)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips", tripBody(nil))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp CreateTripResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	_, err := uuid.Parse(resp.TripID)
	assert.NoError(t, err)
	assert.Equal(t, "/api/v1/trips/"+resp.TripID+"/events", resp.EventsURL)
}

func TestCreateTripInvalidBody(t *testing.T) {
	h := newTestTripHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTripValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]interface{})
		want   error
	}{
		{"missing email", func(m map[string]interface{}) { m["user_email"] = "" }, model.ErrEmailRequired},
		{"no adults", func(m map[string]interface{}) { m["passenger_adult_count"] = 0 }, model.ErrAdultsRequired},
		{"arrival after departure", func(m map[string]interface{}) {
			m["arrival_date"] = "2099-08-12"
			m["departure_date"] = "2099-08-10"
		}, model.ErrArrivalNotBefore},
		{"bad date format", func(m map[string]interface{}) { m["arrival_date"] = "08/10/2099" }, model.ErrInvalidDate},
	}

	h := newTestTripHandler(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/trips", tripBody(tt.mutate))
			rec := httptest.NewRecorder()
			h.Create(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want.Error())
		})
	}
}

func TestCreateTripUnknownCity(t *testing.T) {
	gz := gazetteer.New([]string{"Houston"})
	h := newTestTripHandler(gz)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips", tripBody(nil))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "spelled correctly")
}

func TestCreateTripValidationDisabled(t *testing.T) {
	// No gazetteer configured: any city name is accepted.
	h := newTestTripHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips", tripBody(func(m map[string]interface{}) {
		m["travel_location"] = "Atlantis"
	}))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestStreamEventsRejectsBadTripID(t *testing.T) {
	h := NewStreamHandler(nil, logger.NewNop())

	r := chi.NewRouter()
	r.Get("/api/v1/trips/{id}/events", h.Events)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trips/not-a-uuid/events", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
