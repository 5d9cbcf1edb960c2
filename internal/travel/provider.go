// README: Provider contracts and normalized record shapes for travel data.
package travel

import "context"

// FlightQuery holds the parameters for one flight search.
type FlightQuery struct {
	Origin      string
	Destination string
	DepartDate  string // YYYY-MM-DD
	ReturnDate  string // optional
}

// FlightOffer is a provider-agnostic flight record. Price is kept as reported
// by the provider; rounding happens once, at the dispatch boundary.
type FlightOffer struct {
	Airline   string
	Price     float64
	Currency  string
	Departure string // local time, e.g. "08:05"
	Arrival   string
	Stops     int
}

// HotelQuery holds the parameters for one hotel search.
type HotelQuery struct {
	City     string
	CheckIn  string // YYYY-MM-DD
	CheckOut string
}

// HotelOffer is a provider-agnostic hotel record.
type HotelOffer struct {
	Name          string
	PricePerNight float64
	Currency      string
	Rating        float64
	Area          string
}

// Place is a simplified point-of-interest result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	UserRatingsTotal int
}

// FlightSearcher is the swappable flight provider contract.
type FlightSearcher interface {
	Search(ctx context.Context, q FlightQuery) ([]FlightOffer, error)
}

// HotelSearcher is the swappable hotel provider contract.
type HotelSearcher interface {
	Search(ctx context.Context, q HotelQuery) ([]HotelOffer, error)
}

// PlaceSearcher is the swappable point-of-interest provider contract.
type PlaceSearcher interface {
	Search(ctx context.Context, city, interest string) ([]Place, error)
}
