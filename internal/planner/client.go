// Package planner turns a validated trip into a structured itinerary by
// forcing a language model through a fixed output schema.
package planner

import (
	"context"
	"errors"

	"github.com/wanderwise-ai/trip-planner/internal/model"
	"github.com/wanderwise-ai/trip-planner/pkg/logger"
)

// ErrMissingTripFields is returned when a trip reaches the generator without
// the fields its construction contract guarantees. It signals a programming
// error upstream, not a generation failure.
var ErrMissingTripFields = errors.New("missing required trip information")

// Client is the interface for itinerary generation providers.
//
// GenerateItinerary returns (nil, nil) when the model produced no usable
// structured output. Callers must treat "no itinerary" as an expected,
// handled outcome. A non-nil error is reserved for broken preconditions;
// transport and parse failures never surface as errors.
type Client interface {
	GenerateItinerary(ctx context.Context, trip *model.Trip) (*model.Itinerary, error)

	// Name returns the provider name.
	Name() string
}

// Provider is the type of generation provider.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// NewClient creates a new planner client for the given provider. modelName
// may be empty to use the provider default.
func NewClient(provider Provider, apiKey, modelName string, log *logger.Logger) (Client, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIClient(apiKey, modelName, log)
	default:
		return NewAnthropicClient(apiKey, modelName, log)
	}
}

// checkTripFields re-checks the generator preconditions. The trip constructor
// already guarantees these; absence here is a caller bug and is raised rather
// than silently degraded.
func checkTripFields(trip *model.Trip) error {
	if trip == nil || trip.Origin == "" || trip.Destination == "" ||
		trip.ArrivalDate.IsZero() || trip.DepartureDate.IsZero() {
		return ErrMissingTripFields
	}
	return nil
}
