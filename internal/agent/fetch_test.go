// README: Dispatcher tests (rounding, ordering, caps, fan-out degradation).
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"voyago/internal/travel"
)

// stubFlights returns canned offers per destination, or an error.
type stubFlights struct {
	byDest map[string][]travel.FlightOffer
	err    error
	errFor map[string]bool
}

func (s *stubFlights) Search(_ context.Context, q travel.FlightQuery) ([]travel.FlightOffer, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.errFor[q.Destination] {
		return nil, errors.New("provider down")
	}
	return s.byDest[q.Destination], nil
}

type stubHotels struct {
	offers []travel.HotelOffer
	err    error
}

func (s *stubHotels) Search(context.Context, travel.HotelQuery) ([]travel.HotelOffer, error) {
	return s.offers, s.err
}

type stubPlaces struct {
	places      []travel.Place
	err         error
	gotCity     string
	gotInterest string
}

func (s *stubPlaces) Search(_ context.Context, city, interest string) ([]travel.Place, error) {
	s.gotCity = city
	s.gotInterest = interest
	return s.places, s.err
}

func testDispatcher(f travel.FlightSearcher, h travel.HotelSearcher, p travel.PlaceSearcher) *Dispatcher {
	return NewDispatcher(f, h, p, time.Second)
}

func flightIntent(origin, dest, date string) Intent {
	return Intent{Type: IntentFlightSearch, Info: ExtractedInfo{
		Origin: origin, Destination: dest, DepartureDate: date,
	}}
}

// TestFetch_FlightsRoundedAndSorted verifies prices are rounded to whole units
// exactly once and results come back cheapest first.
func TestFetch_FlightsRoundedAndSorted(t *testing.T) {
	flights := &stubFlights{byDest: map[string][]travel.FlightOffer{
		"Tokyo": {
			{Airline: "ANA", Price: 899.50, Currency: "USD", Departure: "10:00", Arrival: "14:20"},
			{Airline: "United", Price: 745.20, Currency: "USD", Departure: "08:05", Arrival: "12:40", Stops: 1},
		},
	}}
	d := testDispatcher(flights, &stubHotels{}, &stubPlaces{})

	fr := d.Fetch(context.Background(), flightIntent("New York", "Tokyo", "2025-11-10"), "")
	if fr.Kind != ResultFlights {
		t.Fatalf("kind = %s, want flight", fr.Kind)
	}
	if len(fr.Flights) != 2 {
		t.Fatalf("got %d flights, want 2", len(fr.Flights))
	}
	if fr.Flights[0].Airline != "United" {
		t.Errorf("expected cheapest first, got %s", fr.Flights[0].Airline)
	}
	if fr.Flights[0].Price.Amount != 745 {
		t.Errorf("745.20 should round to 745, got %d", fr.Flights[0].Price.Amount)
	}
	if fr.Flights[1].Price.Amount != 900 {
		t.Errorf("899.50 should round to 900, got %d", fr.Flights[1].Price.Amount)
	}
	if fr.Currency != "USD" {
		t.Errorf("currency = %q", fr.Currency)
	}
}

func TestFetch_FlightsCapped(t *testing.T) {
	var offers []travel.FlightOffer
	for i := 0; i < 30; i++ {
		offers = append(offers, travel.FlightOffer{
			Airline: fmt.Sprintf("Carrier %d", i), Price: float64(100 + i), Currency: "USD",
		})
	}
	d := testDispatcher(&stubFlights{byDest: map[string][]travel.FlightOffer{"Tokyo": offers}}, &stubHotels{}, &stubPlaces{})

	fr := d.Fetch(context.Background(), flightIntent("New York", "Tokyo", "2025-11-10"), "")
	if len(fr.Flights) != presentedCap {
		t.Fatalf("got %d flights, want %d", len(fr.Flights), presentedCap)
	}
}

// TestFetch_ProviderFailureDegrades: a dead provider yields an error-kind
// result that still carries a usable external search link, never a Go error.
func TestFetch_ProviderFailureDegrades(t *testing.T) {
	d := testDispatcher(&stubFlights{err: errors.New("timeout")}, &stubHotels{}, &stubPlaces{})

	fr := d.Fetch(context.Background(), flightIntent("New York", "Tokyo", "2025-11-10"), "")
	if fr.Kind != ResultError {
		t.Fatalf("kind = %s, want error", fr.Kind)
	}
	if fr.FallbackURL == "" {
		t.Fatal("degraded result must carry a fallback URL")
	}
	if !strings.Contains(fr.FallbackURL, "Tokyo") {
		t.Errorf("fallback URL %q should mention the destination", fr.FallbackURL)
	}
	if fr.Flights == nil || fr.Hotels == nil || fr.Places == nil || fr.Comparison == nil {
		t.Error("degraded result slices must be empty, not nil")
	}
}

func TestFetch_EmptyResultsDegrade(t *testing.T) {
	d := testDispatcher(&stubFlights{byDest: map[string][]travel.FlightOffer{}}, &stubHotels{}, &stubPlaces{})

	fr := d.Fetch(context.Background(), flightIntent("New York", "Tokyo", "2025-11-10"), "")
	if fr.Kind != ResultError {
		t.Fatalf("kind = %s, want error for zero offers", fr.Kind)
	}
}

// TestFetch_ComparisonPartialFailure: with three destinations and one failing
// provider call, the comparison proceeds with the two that answered.
func TestFetch_ComparisonPartialFailure(t *testing.T) {
	flights := &stubFlights{
		byDest: map[string][]travel.FlightOffer{
			"Tokyo": {{Airline: "ANA", Price: 900, Currency: "USD"}},
			"Seoul": {{Airline: "KAL", Price: 850, Currency: "USD"}},
		},
		errFor: map[string]bool{"Bangkok": true},
	}
	d := testDispatcher(flights, &stubHotels{}, &stubPlaces{})

	fr := d.Fetch(context.Background(), Intent{Type: IntentFlightSearch, Info: ExtractedInfo{
		Origin:           "San Francisco",
		DepartureDate:    "2025-11-10",
		MultiDestination: true,
		Destinations:     []string{"Tokyo", "Bangkok", "Seoul"},
	}}, "")
	if fr.Kind != ResultComparison {
		t.Fatalf("kind = %s, want comparison", fr.Kind)
	}
	if len(fr.Comparison) != 2 {
		t.Fatalf("got %d quotes, want 2 (Bangkok omitted)", len(fr.Comparison))
	}
	// Request order is preserved for the destinations that survive.
	if fr.Comparison[0].Destination != "Tokyo" || fr.Comparison[1].Destination != "Seoul" {
		t.Errorf("quote order = %s, %s", fr.Comparison[0].Destination, fr.Comparison[1].Destination)
	}
}

// TestFetch_ComparisonSingleSurvivor: two of three destinations failing still
// yields a one-entry comparison, never an error for the whole turn.
func TestFetch_ComparisonSingleSurvivor(t *testing.T) {
	flights := &stubFlights{
		byDest: map[string][]travel.FlightOffer{
			"Seoul": {{Airline: "KAL", Price: 850, Currency: "USD"}},
		},
		errFor: map[string]bool{"Tokyo": true, "Bangkok": true},
	}
	d := testDispatcher(flights, &stubHotels{}, &stubPlaces{})

	fr := d.Fetch(context.Background(), Intent{Type: IntentFlightSearch, Info: ExtractedInfo{
		Origin:           "San Francisco",
		DepartureDate:    "2025-11-10",
		MultiDestination: true,
		Destinations:     []string{"Tokyo", "Bangkok", "Seoul"},
	}}, "")
	if fr.Kind != ResultComparison {
		t.Fatalf("kind = %s, want comparison", fr.Kind)
	}
	if len(fr.Comparison) != 1 || fr.Comparison[0].Destination != "Seoul" {
		t.Errorf("comparison = %+v, want only Seoul", fr.Comparison)
	}
}

func TestFetch_ComparisonTotalFailure(t *testing.T) {
	d := testDispatcher(&stubFlights{err: errors.New("down")}, &stubHotels{}, &stubPlaces{})

	fr := d.Fetch(context.Background(), Intent{Type: IntentFlightSearch, Info: ExtractedInfo{
		Origin:           "San Francisco",
		DepartureDate:    "2025-11-10",
		MultiDestination: true,
		Destinations:     []string{"Tokyo", "Seoul"},
	}}, "")
	if fr.Kind != ResultError {
		t.Fatalf("kind = %s, want error when every destination fails", fr.Kind)
	}
	if fr.FallbackURL == "" {
		t.Error("total comparison failure must still carry a fallback URL")
	}
}

func TestFetch_Hotels(t *testing.T) {
	hotels := &stubHotels{offers: []travel.HotelOffer{
		{Name: "Casa Mila Suites", PricePerNight: 210.40, Currency: "EUR", Rating: 4.6, Area: "Eixample"},
		{Name: "Gothic Quarter Inn", PricePerNight: 95.90, Currency: "EUR", Rating: 4.1, Area: "Barri Gotic"},
	}}
	d := testDispatcher(&stubFlights{}, hotels, &stubPlaces{})

	fr := d.Fetch(context.Background(), Intent{Type: IntentHotelSearch, Info: ExtractedInfo{
		Destination:   "Barcelona",
		DepartureDate: "2025-11-10",
		ReturnDate:    "2025-11-14",
	}}, "")
	if fr.Kind != ResultHotels {
		t.Fatalf("kind = %s, want hotel", fr.Kind)
	}
	if fr.Hotels[0].Name != "Gothic Quarter Inn" {
		t.Errorf("expected cheapest first, got %s", fr.Hotels[0].Name)
	}
	if fr.Hotels[0].PricePerNight.Amount != 96 {
		t.Errorf("95.90 should round to 96, got %d", fr.Hotels[0].PricePerNight.Amount)
	}
}

func TestFetch_PlacesForTripPlanning(t *testing.T) {
	places := &stubPlaces{places: []travel.Place{
		{Name: "Fushimi Inari Taisha", Address: "68 Fukakusa", Rating: 4.7},
	}}
	d := testDispatcher(&stubFlights{}, &stubHotels{}, places)

	fr := d.Fetch(context.Background(), Intent{Type: IntentTripPlanning, Info: ExtractedInfo{
		Destination:  "Kyoto",
		DurationDays: 5,
	}}, "")
	if fr.Kind != ResultPlaces {
		t.Fatalf("kind = %s, want poi", fr.Kind)
	}
	if len(fr.Places) != 1 || fr.Places[0].Name != "Fushimi Inari Taisha" {
		t.Errorf("places = %+v", fr.Places)
	}
}

// TestFetch_PlacesCarryInterest: a known traveler interest narrows the POI
// search instead of being dropped on the floor.
func TestFetch_PlacesCarryInterest(t *testing.T) {
	places := &stubPlaces{places: []travel.Place{{Name: "Nishiki Market", Rating: 4.5}}}
	d := testDispatcher(&stubFlights{}, &stubHotels{}, places)

	d.Fetch(context.Background(), Intent{Type: IntentTripPlanning, Info: ExtractedInfo{
		Destination: "Kyoto",
	}}, "food")
	if places.gotCity != "Kyoto" || places.gotInterest != "food" {
		t.Errorf("provider saw city=%q interest=%q", places.gotCity, places.gotInterest)
	}
}

// TestFetch_PromptOnlyIntentsSkipProviders: budget, transit and general turns
// must not touch any provider.
func TestFetch_PromptOnlyIntentsSkipProviders(t *testing.T) {
	d := testDispatcher(&stubFlights{err: errors.New("must not be called")}, &stubHotels{err: errors.New("must not be called")}, &stubPlaces{err: errors.New("must not be called")})

	for _, typ := range []IntentType{IntentBudgetInquiry, IntentPublicTransport, IntentGeneral} {
		fr := d.Fetch(context.Background(), Intent{Type: typ}, "")
		if fr.Kind != ResultNone {
			t.Errorf("%s: kind = %s, want none", typ, fr.Kind)
		}
	}
}
