// README: Intent model for the conversational travel router.
package agent

// IntentType is the classified purpose of a user message.
type IntentType string

const (
	IntentFlightSearch    IntentType = "flight_search"
	IntentHotelSearch     IntentType = "hotel_search"
	IntentTripPlanning    IntentType = "trip_planning"
	IntentRecommendation  IntentType = "destination_recommendation"
	IntentBudgetInquiry   IntentType = "budget_inquiry"
	IntentPublicTransport IntentType = "public_transport"
	IntentGeneral         IntentType = "general"
)

// ExtractedInfo holds the slots pulled out of the message. Ambiguity is always
// represented by absence (empty string / zero), never by a sentinel value.
type ExtractedInfo struct {
	Origin        string
	Destination   string
	DepartureDate string // YYYY-MM-DD; doubles as hotel check-in
	ReturnDate    string // YYYY-MM-DD; doubles as hotel check-out
	DurationDays  int

	// MultiDestination marks a comparison across Destinations, or a
	// region-level request that cannot resolve to one city.
	MultiDestination bool
	Destinations     []string

	// Region/Country record a gazetteer match that is NOT a resolvable city.
	// Neither may ever be passed downstream as a real destination.
	Region  string
	Country string
}

// Intent is created fresh per incoming message and never persisted beyond the
// turn that produced it (the router keeps only an in-memory prior for
// follow-up disambiguation).
type Intent struct {
	Type IntentType
	Info ExtractedInfo
}
