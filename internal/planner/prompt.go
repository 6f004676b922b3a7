package planner

import (
	"fmt"

	"github.com/wanderwise-ai/trip-planner/internal/model"
)

// systemPrompt frames every generation call.
const systemPrompt = "You are an expert travel planner with years of experience creating unforgettable trips. " +
	"You specialize in comprehensive, detailed itineraries that include practical information like dates, locations, and costs. " +
	"Always use the provided tool to structure your response with well-organized itinerary data."

const eventFieldGuidance = `First, think carefully step by step about what information is needed to answer the query. Do NOT guess or make up an answer.
If there's not enough information about the location to create a detailed itinerary, please explain why you cannot provide a complete answer.

Then please provide the following details for each event:
    1. Event Name: Add relevant emojis and brief descriptions for obscure venues (e.g., "MET (Metropolitan Museum of Art)")
    2. Event Time: Specific date/time in ISO 8601 format, or explain if unknown
    3. Event Price: Specific costs or explain if prices vary/unknown
    4. Event Address: Complete address or explain if location varies/unknown
    5. Event Description: A detailed paragraph covering the event's significance, including reviews, cultural context, historical importance, or pop culture references`

const commonGuidance = `Unless otherwise specified, the events should be in chronological order. There should at least be 3 events per day not including dinner, breakfast, and lunch.
Search for bakeries, cafes, and restaurants to eat that are not tourist traps.
If there are any special events or festivals happening during the trip, include those as well.`

// BuildPrompt selects the prompt template for the trip's travel mode. Unknown
// modes fall back to the flight template.
func BuildPrompt(trip *model.Trip) string {
	switch trip.Mode {
	case model.ModeDriving:
		return roadTripPrompt(trip)
	default:
		return flightPrompt(trip)
	}
}

func preferencesLine(trip *model.Trip) string {
	if trip.Preferences == nil {
		return "The traveler stated no specific preferences; build a balanced general-interest itinerary."
	}
	return fmt.Sprintf("Center the itinerary around their travel preferences as stated below: %s", *trip.Preferences)
}

func tripHeader(style string, trip *model.Trip) string {
	return fmt.Sprintf("Generate a %s from %s to %s for %d adults and %d children between the dates of %s and %s.",
		style,
		trip.Origin,
		trip.Destination,
		trip.Adults,
		trip.Children,
		trip.ArrivalDate.Format(model.DateLayout),
		trip.DepartureDate.Format(model.DateLayout),
	)
}

func flightPrompt(trip *model.Trip) string {
	return fmt.Sprintf(`%s
%s

%s

These events MUST include: flights, hotels, activities, and restaurants for all three meals. Hotel location and flight times should be included in the itinerary. Affordable and delicious restaurants should be included with their addresses and hours of operation. Also recommend parks, districts, and other places of interest that are not tourist traps.
%s

For the flights, include the IATA codes for the airports and format it this way: "Flight: SFO to JFK" for a flight from San Francisco to New York.
Focus on creating a balanced itinerary that matches their stated preferences while including practical information like addresses and timing.

Please use the %s tool to structure your response with the itinerary data.`,
		tripHeader("travel itinerary", trip),
		preferencesLine(trip),
		eventFieldGuidance,
		commonGuidance,
		ToolName,
	)
}

func roadTripPrompt(trip *model.Trip) string {
	carType := trip.CarType
	if carType == "" {
		carType = "gas"
	}
	return fmt.Sprintf(`%s
%s

%s

These events MUST include: hotels, activities, and restaurants for all three meals. Affordable and delicious restaurants should be included with their addresses and hours of operation. Also recommend parks, districts, and other places of interest that are not tourist traps.
%s

Attempt to include vehicle renewal stations (ie. gas stations or electric vehicle charging stations) along the route. This person prefers %s cars so add renewal stations based on their mileage.
For a gas car, include a gas station every 400 miles or so. For an electric car, include a charging station every 200 miles or so. If there are no stations on a stretch, add an event that is a warning for that information.

Focus on creating a balanced itinerary that matches their stated preferences while including practical information like addresses and timing.

Please use the %s tool to structure your response with the itinerary data.`,
		tripHeader("road-trip style travel itinerary", trip),
		preferencesLine(trip),
		eventFieldGuidance,
		commonGuidance,
		carType,
		ToolName,
	)
}
