package planner

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderwise-ai/trip-planner/internal/model"
)

func testTrip(mode model.TravelMode) *model.Trip {
	prefs := "museums and shopping"
	return &model.Trip{
		UserEmail:     "traveler@example.com",
		Origin:        "Houston",
		Destination:   "San Francisco",
		Adults:        2,
		Children:      1,
		Mode:          mode,
		CarType:       "electric",
		ArrivalDate:   time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		DepartureDate: time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC),
		Preferences:   &prefs,
	}
}

func TestBuildPromptFlying(t *testing.T) {
	prompt := BuildPrompt(testTrip(model.ModeFlying))

	assert.Contains(t, prompt, "from Houston to San Francisco")
	assert.Contains(t, prompt, "2 adults and 1 children")
	assert.Contains(t, prompt, "2025-08-10")
	assert.Contains(t, prompt, "2025-08-12")
	assert.Contains(t, prompt, `"Flight: SFO to JFK"`)
	assert.Contains(t, prompt, "museums and shopping")
	assert.Contains(t, prompt, ToolName)
	assert.NotContains(t, prompt, "gas station")
}

func TestBuildPromptDriving(t *testing.T) {
	prompt := BuildPrompt(testTrip(model.ModeDriving))

	assert.Contains(t, prompt, "road-trip")
	assert.Contains(t, prompt, "every 400 miles")
	assert.Contains(t, prompt, "every 200 miles")
	assert.Contains(t, prompt, "electric")
	assert.NotContains(t, prompt, "IATA")
}

func TestBuildPromptDefaultsToFlight(t *testing.T) {
	trip := testTrip("")
	prompt := BuildPrompt(trip)
	assert.Contains(t, prompt, "IATA")
}

func TestBuildPromptWithoutPreferences(t *testing.T) {
	trip := testTrip(model.ModeFlying)
	trip.Preferences = nil

	prompt := BuildPrompt(trip)
	assert.Contains(t, prompt, "no specific preferences")
	assert.False(t, strings.Contains(prompt, "museums and shopping"))
}

func TestCheckTripFields(t *testing.T) {
	require.NoError(t, checkTripFields(testTrip(model.ModeFlying)))

	broken := testTrip(model.ModeFlying)
	broken.Origin = ""
	assert.ErrorIs(t, checkTripFields(broken), ErrMissingTripFields)

	assert.ErrorIs(t, checkTripFields(nil), ErrMissingTripFields)
}
