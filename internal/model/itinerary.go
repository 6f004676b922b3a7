package model

// Event is one itinerary line item: an activity, meal, flight, lodging stop,
// or a fuel/charging waypoint on road trips. Name, Address and Time are
// schema-required; Price and Description may be semantically empty.
type Event struct {
	Name        string `json:"event_name"`
	Time        string `json:"event_time"`
	Price       string `json:"event_price,omitempty"`
	Address     string `json:"event_address"`
	Description string `json:"event_description,omitempty"`
}

// Itinerary is the ordered event list produced by one generation call.
// Ordering is chronological by convention of the prompt, not verified
// structurally.
type Itinerary struct {
	Events     []Event `json:"events"`
	EventCount int     `json:"event_count"`
	Model      string  `json:"model_used"`
}
