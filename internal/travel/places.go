package travel

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// PlacesClient handles interactions with Google Places API for
// points-of-interest lookups.
type PlacesClient struct {
	client *maps.Client
}

// NewPlacesClient creates a new PlacesClient with the given API Key.
func NewPlacesClient(apiKey string) (*PlacesClient, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesClient{client: client}, nil
}

// Search implements PlaceSearcher. interest narrows the query ("museums",
// "street food"); when empty the search falls back to top attractions.
func (c *PlacesClient) Search(ctx context.Context, city, interest string) ([]Place, error) {
	if interest == "" {
		interest = "top attractions"
	}
	r := &maps.TextSearchRequest{
		Query:    fmt.Sprintf("%s in %s", interest, city),
		Language: "en",
	}

	resp, err := c.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	// Results that read like tour resellers rather than the sight itself.
	excluded := []string{"Tickets", "Tours Office", "Souvenir"}

	var results []Place
	for _, result := range resp.Results {
		if result.Rating < 4.0 { // Filter for high quality
			continue
		}
		skip := false
		for _, kw := range excluded {
			if strings.Contains(result.Name, kw) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		results = append(results, Place{
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			UserRatingsTotal: result.UserRatingsTotal,
		})
		if len(results) >= 5 {
			break
		}
	}
	return results, nil
}
