// README: Prompt assembly: merges conversation context, traveler profile and
// fetched data into a single system prompt with defensive format instructions.
package agent

import (
	"fmt"
	"strings"

	"voyago/internal/session"
	"voyago/internal/travel"
)

// UI marker tokens the model must wrap deep links in. The post-processor
// treats everything after the final closing marker as hallucinated.
const (
	MarkerOpen  = "[SEARCH_LINK]"
	MarkerClose = "[/SEARCH_LINK]"
)

// promptHistoryWindow bounds how many past turns are summarized into the
// prompt regardless of what the caller loaded.
const promptHistoryWindow = 5

// BuildPrompt assembles the system prompt for one turn. Empty or failed fetch
// results still yield a non-empty data section: the model is instructed to
// apologize and point at the fallback link instead of inventing results.
func BuildPrompt(intent Intent, fr FetchResult, prefs session.Preferences, history []session.Turn) string {
	var b strings.Builder

	b.WriteString("You are Voyago, a concise and friendly travel-planning assistant. ")
	b.WriteString("You help travelers with flights, hotels, destinations, budgets and getting around. ")
	b.WriteString("Never use emoji.\n\n")

	writeHistorySection(&b, history)
	writePreferencesSection(&b, prefs)
	writeDataSection(&b, intent, fr)
	writeInstructionSection(&b, intent, fr)

	return b.String()
}

func writeHistorySection(b *strings.Builder, history []session.Turn) {
	b.WriteString("## Conversation so far\n")
	if len(history) == 0 {
		b.WriteString("This is the start of the conversation.\n\n")
		return
	}
	if len(history) > promptHistoryWindow {
		history = history[len(history)-promptHistoryWindow:]
	}
	for _, t := range history {
		fmt.Fprintf(b, "%s: %s\n", t.Role, t.Text)
	}
	b.WriteString("\n")
}

func writePreferencesSection(b *strings.Builder, prefs session.Preferences) {
	b.WriteString("## Traveler profile\n")
	var lines []string
	if prefs.HomeCity != "" {
		lines = append(lines, "Home city: "+prefs.HomeCity)
	}
	if prefs.TravelStyle != "" {
		lines = append(lines, "Travel style: "+prefs.TravelStyle)
	}
	if prefs.Budget != "" {
		lines = append(lines, "Stated budget: "+prefs.Budget)
	}
	if len(prefs.Interests) > 0 {
		lines = append(lines, "Interests: "+strings.Join(prefs.Interests, ", "))
	}
	if len(prefs.PreferredDestinations) > 0 {
		lines = append(lines, "Loved destinations: "+strings.Join(prefs.PreferredDestinations, ", "))
	}
	if len(lines) == 0 {
		b.WriteString("No saved preferences.\n\n")
		return
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
}

func writeDataSection(b *strings.Builder, intent Intent, fr FetchResult) {
	b.WriteString("## Data\n")

	switch fr.Kind {
	case ResultFlights:
		fmt.Fprintf(b, "Live flight options from %s to %s", fr.Request.Origin, fr.Request.Destination)
		if fr.Request.DepartDate != "" {
			fmt.Fprintf(b, " departing %s", fr.Request.DepartDate)
		}
		fmt.Fprintf(b, " (currency: %s):\n", fr.Currency)
		for i, f := range fr.Flights {
			fmt.Fprintf(b, "%d. %s — %s — departs %s, arrives %s — %s\n",
				i+1, f.Airline, f.Price.Display(), f.Departure, f.Arrival, stopsLabel(f.Stops))
		}
		fmt.Fprintf(b, "Search-more link: %s\n\n", fr.FallbackURL)

	case ResultComparison:
		fmt.Fprintf(b, "Flight price comparison from %s (currency: %s):\n", fr.Request.Origin, fr.Currency)
		for _, q := range fr.Comparison {
			if len(q.Options) == 0 {
				continue
			}
			best := q.Options[0]
			fmt.Fprintf(b, "- %s: from %s (%s, %s)\n",
				q.Destination, best.Price.Display(), best.Airline, stopsLabel(best.Stops))
		}
		b.WriteString("Search-more links per destination:\n")
		for _, q := range fr.Comparison {
			fmt.Fprintf(b, "- %s: %s\n", q.Destination, comparisonLink(fr.Request, q.Destination))
		}
		b.WriteString("\n")

	case ResultHotels:
		fmt.Fprintf(b, "Hotels in %s, %s to %s (currency: %s, prices per night):\n",
			fr.Request.Destination, fr.Request.CheckIn, fr.Request.CheckOut, fr.Currency)
		for i, h := range fr.Hotels {
			fmt.Fprintf(b, "%d. %s — %s/night — rating %.1f — %s\n",
				i+1, h.Name, h.PricePerNight.Display(), h.Rating, h.Area)
		}
		fmt.Fprintf(b, "Search-more link: %s\n\n", fr.FallbackURL)

	case ResultPlaces:
		fmt.Fprintf(b, "Highly rated places in %s:\n", fr.Request.Destination)
		for i, p := range fr.Places {
			fmt.Fprintf(b, "%d. %s (%.1f) — %s\n", i+1, p.Name, p.Rating, p.Address)
		}
		fmt.Fprintf(b, "Map link: %s\n\n", fr.FallbackURL)

	case ResultError:
		b.WriteString("No live results could be retrieved for this request. ")
		b.WriteString("Apologize briefly, do NOT invent flights, hotels, prices or availability, ")
		b.WriteString("and point the traveler to this external search instead:\n")
		fmt.Fprintf(b, "%s\n\n", fr.FallbackURL)

	default:
		b.WriteString("No external data was needed for this request. Answer from general travel knowledge, ")
		b.WriteString("and do not invent specific prices or availability.\n\n")
	}
}

func writeInstructionSection(b *strings.Builder, intent Intent, fr FetchResult) {
	b.WriteString("## Response rules\n")

	if fr.Currency != "" {
		symbol := currencySymbol(fr)
		fmt.Fprintf(b, "- All prices above are exact integers in %s. Repeat them VERBATIM: ", fr.Currency)
		b.WriteString("never recompute, convert, round or add decimals.\n")
		fmt.Fprintf(b, "- Use the currency symbol %q for every price", symbol)
		if symbol != "$" {
			b.WriteString(", never \"$\"")
		}
		b.WriteString(".\n")
	}
	b.WriteString("- Plain conversational text only: no emoji, no markdown tables.\n")

	switch intent.Type {
	case IntentFlightSearch, IntentHotelSearch:
		if fr.Kind == ResultComparison {
			writeComparisonMarkerRules(b, fr)
		} else {
			writeSingleMarkerRules(b, fr)
		}
	case IntentTripPlanning:
		b.WriteString("- Lay out the trip day by day, matching the traveler's stated duration.\n")
		writeOptionalMarkerRules(b, fr)
	case IntentRecommendation:
		b.WriteString("- Recommend 2-4 options and say in one line why each fits this traveler.\n")
		writeOptionalMarkerRules(b, fr)
	case IntentBudgetInquiry:
		b.WriteString("- Give a realistic daily range and a trip total, clearly labeled as estimates.\n")
	case IntentPublicTransport:
		b.WriteString("- Name the actual transit systems and ticket options for the destination.\n")
	}
}

func writeSingleMarkerRules(b *strings.Builder, fr FetchResult) {
	if fr.FallbackURL == "" {
		return
	}
	fmt.Fprintf(b, "- End your reply with exactly this marker line and NOTHING after it:\n  %s%s%s\n",
		MarkerOpen, fr.FallbackURL, MarkerClose)
	b.WriteString("- Correct ending:\n")
	fmt.Fprintf(b, "  ...Safe travels! %s%s%s\n", MarkerOpen, fr.FallbackURL, MarkerClose)
	b.WriteString("- WRONG ending (never append stray numbers or text after the marker):\n")
	fmt.Fprintf(b, "  %s%s%s\n  1200\n  1350\n", MarkerOpen, fr.FallbackURL, MarkerClose)
}

func writeComparisonMarkerRules(b *strings.Builder, fr FetchResult) {
	b.WriteString("- End your reply with one marker line PER destination, in the order given, and NOTHING after the last one:\n")
	for _, q := range fr.Comparison {
		fmt.Fprintf(b, "  %s%s%s\n", MarkerOpen, comparisonLink(fr.Request, q.Destination), MarkerClose)
	}
	b.WriteString("- WRONG ending (never append stray numbers after the final marker):\n")
	fmt.Fprintf(b, "  %s...%s\n  1200\n  1350\n", MarkerOpen, MarkerClose)
}

func writeOptionalMarkerRules(b *strings.Builder, fr FetchResult) {
	if fr.FallbackURL == "" {
		return
	}
	fmt.Fprintf(b, "- If you reference the map or search link, wrap it exactly as %s%s%s and put nothing after it.\n",
		MarkerOpen, fr.FallbackURL, MarkerClose)
}

func currencySymbol(fr FetchResult) string {
	switch fr.Kind {
	case ResultFlights:
		if len(fr.Flights) > 0 {
			return fr.Flights[0].Price.Symbol()
		}
	case ResultHotels:
		if len(fr.Hotels) > 0 {
			return fr.Hotels[0].PricePerNight.Symbol()
		}
	case ResultComparison:
		if len(fr.Comparison) > 0 && len(fr.Comparison[0].Options) > 0 {
			return fr.Comparison[0].Options[0].Price.Symbol()
		}
	}
	return fr.Currency
}

func stopsLabel(stops int) string {
	switch stops {
	case 0:
		return "nonstop"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}

func comparisonLink(req FetchRequest, destination string) string {
	return travel.FlightsDeepLink(req.Origin, destination, req.DepartDate)
}
