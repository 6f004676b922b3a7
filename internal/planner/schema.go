package planner

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wanderwise-ai/trip-planner/internal/model"
)

// ToolName is the single schema the model is forced to answer with. Free-text
// responses are never accepted as a successful result.
const ToolName = "travel_events"

// ToolDescription describes the schema to the model.
const ToolDescription = "A comprehensive list of events for the trip itinerary."

// Payload parse errors. All of them collapse into the soft failure at the
// client boundary; the distinct kinds exist for logging and tests.
var (
	ErrNoEvents        = errors.New("payload contains no events")
	ErrIncompleteEvent = errors.New("event is missing a required field")
)

// inputSchema is the JSON schema for the travel_events tool. The root object
// requires a non-empty events array; each element requires name, address and
// time; undeclared fields are forbidden.
func inputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"events": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"event_name":        map[string]interface{}{"type": "string"},
						"event_time":        map[string]interface{}{"type": "string"},
						"event_price":       map[string]interface{}{"type": "string"},
						"event_address":     map[string]interface{}{"type": "string"},
						"event_description": map[string]interface{}{"type": "string"},
					},
					"required":             []string{"event_name", "event_address", "event_time"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"events"},
		"additionalProperties": false,
	}
}

type itineraryPayload struct {
	Events []model.Event `json:"events"`
}

// parseItineraryPayload validates the structured tool payload at the
// generator boundary. Every returned event is fully populated: a single
// event with a blank required field rejects the whole payload, so downstream
// code never sees a partial itinerary.
func parseItineraryPayload(raw []byte, modelName string) (*model.Itinerary, error) {
	var payload itineraryPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", ToolName, err)
	}

	if len(payload.Events) == 0 {
		return nil, ErrNoEvents
	}

	for i, ev := range payload.Events {
		if ev.Name == "" || ev.Address == "" || ev.Time == "" {
			return nil, fmt.Errorf("%w: event %d", ErrIncompleteEvent, i)
		}
	}

	return &model.Itinerary{
		Events:     payload.Events,
		EventCount: len(payload.Events),
		Model:      modelName,
	}, nil
}
