package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// HotelClient calls a REST hotel-search provider.
type HotelClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHotelClient creates a HotelClient for the given endpoint and key.
func NewHotelClient(baseURL, apiKey string) *HotelClient {
	return &HotelClient{baseURL: baseURL, apiKey: apiKey, client: httpClient}
}

type hotelAPIResponse struct {
	Currency string `json:"currency"`
	Hotels   []struct {
		Name          string  `json:"name"`
		PricePerNight float64 `json:"price_per_night"`
		Rating        float64 `json:"rating"`
		Area          string  `json:"area"`
	} `json:"hotels"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Search implements HotelSearcher against the provider's GET /hotels endpoint.
func (c *HotelClient) Search(ctx context.Context, q HotelQuery) ([]HotelOffer, error) {
	params := url.Values{}
	params.Set("city", q.City)
	params.Set("checkin", q.CheckIn)
	params.Set("checkout", q.CheckOut)
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/hotels?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("hotels: build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hotels: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("hotels: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hotels: provider status %d: %s", resp.StatusCode, body)
	}

	var hr hotelAPIResponse
	if err := json.Unmarshal(body, &hr); err != nil {
		return nil, fmt.Errorf("hotels: unmarshal response: %w", err)
	}
	if hr.Error != nil {
		return nil, fmt.Errorf("hotels: api error: %s", hr.Error.Message)
	}

	currency := hr.Currency
	if currency == "" {
		currency = "USD"
	}
	offers := make([]HotelOffer, 0, len(hr.Hotels))
	for _, h := range hr.Hotels {
		offers = append(offers, HotelOffer{
			Name:          h.Name,
			PricePerNight: h.PricePerNight,
			Currency:      currency,
			Rating:        h.Rating,
			Area:          h.Area,
		})
	}
	return offers, nil
}
