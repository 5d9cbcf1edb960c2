package travel

import (
	"fmt"
	"net/url"
)

// FlightsDeepLink builds an external flight-search URL used as the fallback
// UI directive when the provider fails or returns nothing.
func FlightsDeepLink(origin, destination, departDate string) string {
	q := fmt.Sprintf("flights from %s to %s", origin, destination)
	if origin == "" {
		q = fmt.Sprintf("flights to %s", destination)
	}
	if departDate != "" {
		q += " on " + departDate
	}
	return "https://www.google.com/travel/flights?q=" + url.QueryEscape(q)
}

// PlacesDeepLink builds an external map-search URL fallback for
// points of interest in a city.
func PlacesDeepLink(city string) string {
	return "https://www.google.com/maps/search/" + url.QueryEscape("top attractions in "+city)
}

// HotelsDeepLink builds an external hotel-search URL fallback.
func HotelsDeepLink(city, checkIn, checkOut string) string {
	params := url.Values{}
	params.Set("ss", city)
	if checkIn != "" {
		params.Set("checkin", checkIn)
	}
	if checkOut != "" {
		params.Set("checkout", checkOut)
	}
	return "https://www.booking.com/searchresults.html?" + params.Encode()
}
