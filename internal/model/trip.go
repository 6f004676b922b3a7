// Package model defines data structures for the trip planning pipeline.
package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// TravelMode is how the traveler gets to the destination.
type TravelMode string

const (
	ModeFlying  TravelMode = "flying"
	ModeDriving TravelMode = "driving"
)

// MaxTripDays bounds the trip window. Longer stays blow up itinerary size
// and model cost.
const MaxTripDays = 14

// DateLayout is the wire format for trip dates.
const DateLayout = "2006-01-02"

// Validation errors surfaced to the form caller.
var (
	ErrEmailRequired        = errors.New("email is required")
	ErrEmailInvalid         = errors.New("invalid email address format")
	ErrOriginRequired       = errors.New("start location is required")
	ErrDestinationRequired  = errors.New("travel location is required")
	ErrAdultsRequired       = errors.New("at least one adult passenger is required")
	ErrChildrenNegative     = errors.New("child count cannot be negative")
	ErrArrivalNotBefore     = errors.New("arrival date must be before departure date")
	ErrTripTooLong          = errors.New("stay cannot exceed 14 days")
	ErrArrivalInPast        = errors.New("arrival date cannot be in the past")
	ErrInvalidDate          = errors.New("dates must be in YYYY-MM-DD format")
)

// TripInput is the raw booking request as submitted by the form client.
type TripInput struct {
	UserEmail     string `json:"user_email"`
	Origin        string `json:"start_location"`
	Destination   string `json:"travel_location"`
	Adults        int    `json:"passenger_adult_count"`
	Children      int    `json:"passenger_child_count"`
	TravelStyle   string `json:"travel_style"`
	CarType       string `json:"car_type"`
	TravelClass   string `json:"travel_class"`
	ArrivalDate   string `json:"arrival_date"`
	DepartureDate string `json:"departure_date"`
	Preferences   string `json:"travel_preferences"`
}

// Trip is the validated booking request. Created once per request via NewTrip
// and treated as immutable for the lifetime of the planning run. The user's
// email doubles as the downstream user identifier for every tool call.
type Trip struct {
	UserEmail     string     `json:"user_email"`
	Origin        string     `json:"start_location"`
	Destination   string     `json:"travel_location"`
	Adults        int        `json:"passenger_adult_count"`
	Children      int        `json:"passenger_child_count"`
	Mode          TravelMode `json:"travel_style"`
	CarType       string     `json:"car_type,omitempty"`
	TravelClass   string     `json:"travel_class,omitempty"`
	ArrivalDate   time.Time  `json:"arrival_date"`
	DepartureDate time.Time  `json:"departure_date"`

	// Preferences is nil when the traveler left the field empty; absence is
	// a distinct state from an empty string.
	Preferences *string `json:"travel_preferences,omitempty"`
}

// NewTrip validates the raw input against the booking rules and returns the
// immutable trip record. now supplies the validation clock.
func NewTrip(in TripInput, now time.Time) (*Trip, error) {
	if in.UserEmail == "" {
		return nil, ErrEmailRequired
	}
	if _, err := mail.ParseAddress(in.UserEmail); err != nil {
		return nil, ErrEmailInvalid
	}
	if strings.TrimSpace(in.Origin) == "" {
		return nil, ErrOriginRequired
	}
	if strings.TrimSpace(in.Destination) == "" {
		return nil, ErrDestinationRequired
	}
	if in.Adults < 1 {
		return nil, ErrAdultsRequired
	}
	if in.Children < 0 {
		return nil, ErrChildrenNegative
	}

	arrival, err := time.Parse(DateLayout, in.ArrivalDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	departure, err := time.Parse(DateLayout, in.DepartureDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if !arrival.Before(departure) {
		return nil, ErrArrivalNotBefore
	}
	if departure.Sub(arrival) > MaxTripDays*24*time.Hour {
		return nil, ErrTripTooLong
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if arrival.Before(today) {
		return nil, ErrArrivalInPast
	}

	trip := &Trip{
		UserEmail:     in.UserEmail,
		Origin:        strings.TrimSpace(in.Origin),
		Destination:   strings.TrimSpace(in.Destination),
		Adults:        in.Adults,
		Children:      in.Children,
		Mode:          ParseTravelMode(in.TravelStyle),
		CarType:       in.CarType,
		TravelClass:   in.TravelClass,
		ArrivalDate:   arrival,
		DepartureDate: departure,
	}

	if prefs := strings.TrimSpace(in.Preferences); prefs != "" {
		trip.Preferences = &prefs
	}

	return trip, nil
}

// ParseTravelMode maps the form value onto a travel mode. Unknown or empty
// values default to flying.
func ParseTravelMode(s string) TravelMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "driving":
		return ModeDriving
	default:
		return ModeFlying
	}
}
