// README: Data fetcher dispatch: calls travel providers per intent, normalizes
// and rounds results, and degrades failures into fallback fetch results.
package agent

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"voyago/internal/travel"
	"voyago/internal/types"
)

// ResultKind tags the shape of a FetchResult.
type ResultKind string

const (
	ResultFlights    ResultKind = "flight"
	ResultHotels     ResultKind = "hotel"
	ResultPlaces     ResultKind = "poi"
	ResultComparison ResultKind = "multi_destination_comparison"
	ResultNone       ResultKind = "none"
	ResultError      ResultKind = "error"
)

const (
	// rawResultCap bounds how many provider records are considered at all.
	rawResultCap = 20
	// presentedCap bounds how many options reach the prompt.
	presentedCap = 5
	// comparisonPerDestCap bounds options per destination in a comparison.
	comparisonPerDestCap = 3
)

// FlightOption is a normalized flight with its price already rounded; the
// router is the sole source of truth for these numbers from here on.
type FlightOption struct {
	Airline   string
	Price     types.Money
	Departure string
	Arrival   string
	Stops     int
}

// HotelOption is a normalized hotel record.
type HotelOption struct {
	Name          string
	PricePerNight types.Money
	Rating        float64
	Area          string
}

// PlaceOption is a normalized point of interest.
type PlaceOption struct {
	Name    string
	Address string
	Rating  float32
}

// DestinationQuote is one destination's slice of a comparison.
type DestinationQuote struct {
	Destination string
	Options     []FlightOption
}

// FetchRequest echoes the query parameters so downstream stages can build
// fallback deep links without re-deriving anything.
type FetchRequest struct {
	Origin      string
	Destination string
	DepartDate  string
	ReturnDate  string
	CheckIn     string
	CheckOut    string
}

// FetchResult is the normalized output of one dispatch. All slices are
// non-nil: an error or empty fetch carries empty lists so downstream
// formatting never needs a nil check.
type FetchResult struct {
	Kind        ResultKind
	Flights     []FlightOption
	Hotels      []HotelOption
	Places      []PlaceOption
	Comparison  []DestinationQuote
	Currency    string
	Request     FetchRequest
	FallbackURL string
}

func newFetchResult(kind ResultKind) FetchResult {
	return FetchResult{
		Kind:       kind,
		Flights:    []FlightOption{},
		Hotels:     []HotelOption{},
		Places:     []PlaceOption{},
		Comparison: []DestinationQuote{},
	}
}

// Dispatcher routes a validated intent to the right provider(s).
type Dispatcher struct {
	flights     travel.FlightSearcher
	hotels      travel.HotelSearcher
	places      travel.PlaceSearcher
	callTimeout time.Duration
}

// NewDispatcher wires the providers. callTimeout bounds each individual
// provider call; a timed-out call degrades exactly like a failed one.
func NewDispatcher(flights travel.FlightSearcher, hotels travel.HotelSearcher, places travel.PlaceSearcher, callTimeout time.Duration) *Dispatcher {
	if callTimeout <= 0 {
		callTimeout = 20 * time.Second
	}
	return &Dispatcher{flights: flights, hotels: hotels, places: places, callTimeout: callTimeout}
}

// Fetch calls the external provider(s) appropriate for the intent. interest
// optionally narrows POI searches (taken from the traveler's profile). Fetch
// never returns an error: provider failures degrade into a FetchResult that
// still carries the request so the prompt can offer an external-search
// fallback.
func (d *Dispatcher) Fetch(ctx context.Context, intent Intent, interest string) FetchResult {
	switch intent.Type {
	case IntentFlightSearch:
		if intent.Info.MultiDestination && len(intent.Info.Destinations) >= 2 {
			return d.fetchComparison(ctx, intent.Info)
		}
		return d.fetchFlights(ctx, intent.Info)
	case IntentHotelSearch:
		return d.fetchHotels(ctx, intent.Info)
	case IntentTripPlanning, IntentRecommendation:
		return d.fetchPlaces(ctx, intent.Info, interest)
	default:
		return newFetchResult(ResultNone)
	}
}

func (d *Dispatcher) fetchFlights(ctx context.Context, info ExtractedInfo) FetchResult {
	req := FetchRequest{
		Origin:      info.Origin,
		Destination: info.Destination,
		DepartDate:  info.DepartureDate,
		ReturnDate:  info.ReturnDate,
	}
	fallback := travel.FlightsDeepLink(info.Origin, info.Destination, info.DepartureDate)

	offers, err := d.searchFlightsOnce(ctx, travel.FlightQuery{
		Origin:      info.Origin,
		Destination: info.Destination,
		DepartDate:  info.DepartureDate,
		ReturnDate:  info.ReturnDate,
	})
	if err != nil || len(offers) == 0 {
		if err != nil {
			log.Printf("flight fetch failed (%s -> %s): %v", info.Origin, info.Destination, err)
		}
		fr := newFetchResult(ResultError)
		fr.Request = req
		fr.FallbackURL = fallback
		return fr
	}

	options, currency := normalizeFlights(offers, presentedCap)
	fr := newFetchResult(ResultFlights)
	fr.Flights = options
	fr.Currency = currency
	fr.Request = req
	fr.FallbackURL = fallback
	return fr
}

// fetchComparison fans out one flight search per destination concurrently and
// waits for all of them to settle. Failed destinations are omitted; only a
// total failure degrades the result.
func (d *Dispatcher) fetchComparison(ctx context.Context, info ExtractedInfo) FetchResult {
	dests := info.Destinations
	quotes := make([]*DestinationQuote, len(dests))

	var wg sync.WaitGroup
	for i, dest := range dests {
		wg.Add(1)
		go func(i int, dest string) {
			defer wg.Done()
			offers, err := d.searchFlightsOnce(ctx, travel.FlightQuery{
				Origin:      info.Origin,
				Destination: dest,
				DepartDate:  info.DepartureDate,
				ReturnDate:  info.ReturnDate,
			})
			if err != nil || len(offers) == 0 {
				if err != nil {
					log.Printf("comparison fetch failed for %s: %v", dest, err)
				}
				return
			}
			options, _ := normalizeFlights(offers, comparisonPerDestCap)
			quotes[i] = &DestinationQuote{Destination: dest, Options: options}
		}(i, dest)
	}
	wg.Wait()

	req := FetchRequest{Origin: info.Origin, DepartDate: info.DepartureDate, ReturnDate: info.ReturnDate}
	fr := newFetchResult(ResultComparison)
	fr.Request = req
	fr.FallbackURL = travel.FlightsDeepLink(info.Origin, dests[0], info.DepartureDate)

	for _, q := range quotes {
		if q != nil {
			fr.Comparison = append(fr.Comparison, *q)
		}
	}
	if len(fr.Comparison) == 0 {
		fr.Kind = ResultError
		return fr
	}
	if len(fr.Comparison[0].Options) > 0 {
		fr.Currency = fr.Comparison[0].Options[0].Price.Currency
	}
	return fr
}

func (d *Dispatcher) searchFlightsOnce(ctx context.Context, q travel.FlightQuery) ([]travel.FlightOffer, error) {
	cctx, cancel := context.WithTimeout(ctx, d.callTimeout)
	defer cancel()
	return d.flights.Search(cctx, q)
}

func (d *Dispatcher) fetchHotels(ctx context.Context, info ExtractedInfo) FetchResult {
	req := FetchRequest{
		Destination: info.Destination,
		CheckIn:     info.DepartureDate,
		CheckOut:    info.ReturnDate,
	}
	fallback := travel.HotelsDeepLink(info.Destination, info.DepartureDate, info.ReturnDate)

	cctx, cancel := context.WithTimeout(ctx, d.callTimeout)
	defer cancel()
	offers, err := d.hotels.Search(cctx, travel.HotelQuery{
		City:     info.Destination,
		CheckIn:  info.DepartureDate,
		CheckOut: info.ReturnDate,
	})
	if err != nil || len(offers) == 0 {
		if err != nil {
			log.Printf("hotel fetch failed (%s): %v", info.Destination, err)
		}
		fr := newFetchResult(ResultError)
		fr.Request = req
		fr.FallbackURL = fallback
		return fr
	}

	if len(offers) > rawResultCap {
		offers = offers[:rawResultCap]
	}
	options := make([]HotelOption, 0, len(offers))
	for _, o := range offers {
		options = append(options, HotelOption{
			Name:          o.Name,
			PricePerNight: types.RoundMoney(o.PricePerNight, o.Currency),
			Rating:        o.Rating,
			Area:          o.Area,
		})
	}
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].PricePerNight.Amount < options[j].PricePerNight.Amount
	})
	if len(options) > presentedCap {
		options = options[:presentedCap]
	}

	fr := newFetchResult(ResultHotels)
	fr.Hotels = options
	fr.Currency = options[0].PricePerNight.Currency
	fr.Request = req
	fr.FallbackURL = fallback
	return fr
}

func (d *Dispatcher) fetchPlaces(ctx context.Context, info ExtractedInfo, interest string) FetchResult {
	destination := info.Destination
	if destination == "" {
		destination = info.Country
	}
	fr := newFetchResult(ResultPlaces)
	fr.Request = FetchRequest{Destination: destination}
	if destination == "" {
		// Recommendation turns without any destination are prompt-only.
		fr.Kind = ResultNone
		return fr
	}
	fr.FallbackURL = travel.PlacesDeepLink(destination)

	cctx, cancel := context.WithTimeout(ctx, d.callTimeout)
	defer cancel()
	places, err := d.places.Search(cctx, destination, interest)
	if err != nil || len(places) == 0 {
		if err != nil {
			log.Printf("places fetch failed (%s): %v", destination, err)
		}
		fr.Kind = ResultError
		return fr
	}
	for _, p := range places {
		fr.Places = append(fr.Places, PlaceOption{Name: p.Name, Address: p.Address, Rating: p.Rating})
	}
	return fr
}

// normalizeFlights rounds prices, sorts ascending by price, and caps the list.
// This is the single point where currency precision is decided.
func normalizeFlights(offers []travel.FlightOffer, limit int) ([]FlightOption, string) {
	if len(offers) > rawResultCap {
		offers = offers[:rawResultCap]
	}
	options := make([]FlightOption, 0, len(offers))
	for _, o := range offers {
		options = append(options, FlightOption{
			Airline:   o.Airline,
			Price:     types.RoundMoney(o.Price, o.Currency),
			Departure: o.Departure,
			Arrival:   o.Arrival,
			Stops:     o.Stops,
		})
	}
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Price.Amount < options[j].Price.Amount
	})
	if len(options) > limit {
		options = options[:limit]
	}
	currency := ""
	if len(options) > 0 {
		currency = options[0].Price.Currency
	}
	return options, currency
}
