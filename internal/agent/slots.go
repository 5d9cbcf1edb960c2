// README: Slot-fill validation; decides whether an intent is actionable or
// needs a clarification turn. Pure decision function, no external calls.
package agent

import (
	"fmt"
	"strings"
)

// SlotCheck is the validator verdict. When Ready is false, Clarification
// holds the full user-facing question and Missing names the gaps.
type SlotCheck struct {
	Ready         bool
	Missing       []string
	Clarification string
}

func ready() SlotCheck { return SlotCheck{Ready: true} }

func notReady(missing []string, clarification string) SlotCheck {
	return SlotCheck{Ready: false, Missing: missing, Clarification: clarification}
}

// Validate checks whether the intent carries every slot its type requires.
// Clarifications are always direct questions with concrete example answers.
// Country- or region-level destinations are "region ambiguity", distinct from
// a missing slot: the clarification lists specific cities to choose from.
func Validate(intent Intent) SlotCheck {
	switch intent.Type {
	case IntentFlightSearch:
		return validateFlight(intent.Info)
	case IntentHotelSearch:
		return validateHotel(intent.Info)
	case IntentTripPlanning:
		return validateTrip(intent.Info)
	default:
		// Recommendation, budget, transport and general turns are answered
		// prompt-only and never require slots.
		return ready()
	}
}

func validateFlight(info ExtractedInfo) SlotCheck {
	if info.Country != "" {
		return notReady([]string{"destination"}, countryClarification(info.Country))
	}
	if info.Region != "" {
		return notReady([]string{"destination"}, regionClarification(info.Region))
	}

	// Multi-destination comparison: per-destination cities are present, the
	// shared origin and date still have to be.
	if info.MultiDestination && len(info.Destinations) >= 2 {
		var missing []string
		if info.Origin == "" {
			missing = append(missing, "origin")
		}
		if info.DepartureDate == "" {
			missing = append(missing, "departureDate")
		}
		if len(missing) == 0 {
			return ready()
		}
		return notReady(missing, comparisonClarification(info.Destinations, missing))
	}

	var missing []string
	if info.Destination == "" {
		missing = append(missing, "destination")
	}
	if info.Origin == "" {
		missing = append(missing, "origin")
	}
	if info.DepartureDate == "" {
		missing = append(missing, "departureDate")
	}
	if len(missing) == 0 {
		return ready()
	}

	switch missing[0] {
	case "destination":
		return notReady(missing, "Where would you like to fly to? For example: Tokyo, Paris, or New York.")
	case "origin":
		return notReady(missing, fmt.Sprintf("Which city are you flying to %s from? For example: New York, London, or Singapore.", info.Destination))
	default:
		return notReady(missing, fmt.Sprintf("When would you like to depart for %s? Give me a date like 2025-11-10.", info.Destination))
	}
}

func validateHotel(info ExtractedInfo) SlotCheck {
	if info.Country != "" {
		return notReady([]string{"destination"}, countryClarification(info.Country))
	}
	if info.Region != "" {
		return notReady([]string{"destination"}, regionClarification(info.Region))
	}

	var missing []string
	if info.Destination == "" {
		missing = append(missing, "destination")
	}
	if info.DepartureDate == "" {
		missing = append(missing, "checkIn")
	}
	if info.ReturnDate == "" {
		missing = append(missing, "checkOut")
	}
	if len(missing) == 0 {
		return ready()
	}

	switch missing[0] {
	case "destination":
		return notReady(missing, "Which city do you need a hotel in? For example: Barcelona, Bangkok, or Rome.")
	default:
		return notReady(missing, fmt.Sprintf("What are your check-in and check-out dates for %s? For example: 2025-11-10 to 2025-11-14.", info.Destination))
	}
}

func validateTrip(info ExtractedInfo) SlotCheck {
	if info.Region != "" {
		return notReady([]string{"destination"}, regionClarification(info.Region))
	}

	// A whole country is acceptable for trip planning ("two weeks in Japan");
	// only flights and hotels need a bookable city.
	destination := info.Destination
	if destination == "" {
		destination = info.Country
	}

	var missing []string
	if destination == "" {
		missing = append(missing, "destination")
	}
	hasDates := info.DepartureDate != "" && info.ReturnDate != ""
	if info.DurationDays == 0 && !hasDates {
		missing = append(missing, "duration")
	}
	if len(missing) == 0 {
		return ready()
	}

	if missing[0] == "destination" {
		return notReady(missing, "Where is this trip headed? For example: Portugal, Kyoto, or Mexico City.")
	}
	return notReady(missing, fmt.Sprintf("How long will you be in %s? For example: 5 days, a weekend, or exact dates like 2025-11-10 to 2025-11-15.", destination))
}

func countryClarification(country string) string {
	cities := CountrySuggestions(country)
	if len(cities) == 0 {
		return fmt.Sprintf("%s is a whole country — which city should I search? For example, its capital or biggest city.", country)
	}
	return fmt.Sprintf("%s is a whole country — which city would you like? Popular choices: %s.",
		country, joinWithOr(cities))
}

func regionClarification(region string) string {
	cities := RegionSuggestions(region)
	if len(cities) == 0 {
		return fmt.Sprintf("%s covers a lot of ground — which city did you have in mind?", region)
	}
	return fmt.Sprintf("%s covers a lot of ground — pick a city to start with, for example %s. I can also compare prices across a few of them if you list the cities.",
		region, joinWithOr(cities))
}

func comparisonClarification(dests []string, missing []string) string {
	what := "your departure city"
	example := "For example: New York or London."
	if missing[0] == "departureDate" {
		what = "a departure date"
		example = "For example: 2025-11-10."
	}
	return fmt.Sprintf("Happy to compare %s — I just need %s. %s",
		strings.Join(dests, " vs "), what, example)
}

func joinWithOr(items []string) string {
	if len(items) == 1 {
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
}
