package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// httpClient is shared by the REST providers; the 30s timeout guards against
// stalled connections while context cancellation is still honoured via
// NewRequestWithContext.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// FlightClient calls a REST flight-search provider.
type FlightClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewFlightClient creates a FlightClient for the given endpoint and key.
func NewFlightClient(baseURL, apiKey string) *FlightClient {
	return &FlightClient{baseURL: baseURL, apiKey: apiKey, client: httpClient}
}

type flightAPIResponse struct {
	Currency string `json:"currency"`
	Flights  []struct {
		Airline    string  `json:"airline"`
		Price      float64 `json:"price"`
		DepartTime string  `json:"depart_time"`
		ArriveTime string  `json:"arrive_time"`
		Stops      int     `json:"stops"`
	} `json:"flights"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Search implements FlightSearcher against the provider's GET /flights endpoint.
func (c *FlightClient) Search(ctx context.Context, q FlightQuery) ([]FlightOffer, error) {
	params := url.Values{}
	params.Set("origin", q.Origin)
	params.Set("destination", q.Destination)
	params.Set("depart_date", q.DepartDate)
	if q.ReturnDate != "" {
		params.Set("return_date", q.ReturnDate)
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/flights?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("flights: build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flights: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("flights: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flights: provider status %d: %s", resp.StatusCode, body)
	}

	var fr flightAPIResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, fmt.Errorf("flights: unmarshal response: %w", err)
	}
	if fr.Error != nil {
		return nil, fmt.Errorf("flights: api error: %s", fr.Error.Message)
	}

	currency := fr.Currency
	if currency == "" {
		currency = "USD"
	}
	offers := make([]FlightOffer, 0, len(fr.Flights))
	for _, f := range fr.Flights {
		offers = append(offers, FlightOffer{
			Airline:   f.Airline,
			Price:     f.Price,
			Currency:  currency,
			Departure: f.DepartTime,
			Arrival:   f.ArriveTime,
			Stops:     f.Stops,
		})
	}
	return offers, nil
}
