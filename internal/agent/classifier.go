// README: Keyword/pattern intent classification and slot extraction.
package agent

import (
	"regexp"
	"strconv"
	"strings"

	"voyago/internal/session"
)

// Type detection is ordered: explicit action verbs outrank vaguer
// travel-planning language, which outranks general conversation.
var (
	reFlight    = regexp.MustCompile(`(?i)\b(flights?|fly|flying|airfare|air tickets?|plane tickets?)\b`)
	reHotel     = regexp.MustCompile(`(?i)\b(hotels?|hostels?|accommodations?|place to stay|somewhere to stay|resorts?|airbnb)\b`)
	reTransit   = regexp.MustCompile(`(?i)\b(public transport(ation)?|metro|subway|tram|getting around|bus pass|rail pass)\b`)
	reBudgetAsk = regexp.MustCompile(`(?i)\b(how much|how expensive|daily budget|what (does|would) .* cost|cost of)\b`)
	rePlan      = regexp.MustCompile(`(?i)\b(plan(ning)? (a |my |the )?(trip|vacation|holiday|visit)|itinerary|days? in)\b`)
	reRecommend = regexp.MustCompile(`(?i)\b(where should|recommend|suggest(ions?)?|best (city|cities|place|places|destination)|ideas? for)\b`)

	reISODate  = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	reDuration = regexp.MustCompile(`(?i)\b(\d+)[- ](?:days?|nights?)\b`)
	reWeeks    = regexp.MustCompile(`(?i)\b(a|one|two|three|\d+)[- ]weeks?\b`)
)

// Classify turns a user message into an Intent. prior is the previous turn's
// intent for the same session, used to interpret short follow-ups ("what
// about business class?"); it may be nil. The function is pure over its
// inputs; callers must treat the result as a fresh value each turn.
func Classify(message string, prior *Intent) Intent {
	msgLower := strings.ToLower(message)
	intent := Intent{Type: detectType(msgLower)}

	extractSlots(&intent.Info, msgLower)

	// Short follow-ups with no action verb of their own continue the previous
	// intent; freshly extracted slots override inherited ones.
	if intent.Type == IntentGeneral && prior != nil && len(message) < 80 {
		inherited := prior.Info
		merge(&inherited, intent.Info)
		intent = Intent{Type: prior.Type, Info: inherited}
	} else if prior != nil && prior.Type == intent.Type {
		inherited := prior.Info
		merge(&inherited, intent.Info)
		intent.Info = inherited
	}

	return intent
}

func detectType(msgLower string) IntentType {
	switch {
	case reFlight.MatchString(msgLower):
		return IntentFlightSearch
	case reHotel.MatchString(msgLower):
		return IntentHotelSearch
	case reTransit.MatchString(msgLower):
		return IntentPublicTransport
	case reBudgetAsk.MatchString(msgLower):
		return IntentBudgetInquiry
	case rePlan.MatchString(msgLower):
		return IntentTripPlanning
	case reRecommend.MatchString(msgLower):
		return IntentRecommendation
	default:
		return IntentGeneral
	}
}

func extractSlots(info *ExtractedInfo, msgLower string) {
	// Dates: first match is departure/check-in, second is return/check-out.
	dates := reISODate.FindAllString(msgLower, 2)
	if len(dates) > 0 {
		info.DepartureDate = dates[0]
	}
	if len(dates) > 1 {
		info.ReturnDate = dates[1]
	}

	if m := reDuration.FindStringSubmatch(msgLower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			info.DurationDays = n
		}
	} else if m := reWeeks.FindStringSubmatch(msgLower); m != nil {
		info.DurationDays = weeksToDays(m[1])
	} else if strings.Contains(msgLower, "weekend") {
		info.DurationDays = 2
	}

	// Cities, ordered by position. A city directly after "from" is the origin;
	// every other mention is a destination candidate.
	matches := findCities(msgLower)
	var dests []string
	for _, m := range matches {
		if isOriginMention(msgLower, m) && info.Origin == "" {
			info.Origin = m.token
			continue
		}
		dests = append(dests, m.token)
	}

	switch {
	case len(dests) >= 2:
		info.MultiDestination = true
		info.Destinations = dests
	case len(dests) == 1:
		info.Destination = dests[0]
	}

	// Region and country matches are recorded but never promoted to a
	// destination; a city mention wins over both.
	if info.Destination == "" && !info.MultiDestination {
		if region, ok := findRegion(msgLower); ok {
			info.Region = region
			info.MultiDestination = true
		} else if country, ok := findCountry(msgLower); ok {
			info.Country = country
		}
	}
}

// isOriginMention reports whether the city match is introduced by "from".
func isOriginMention(msgLower string, m gazetteerMatch) bool {
	prefix := strings.TrimRight(msgLower[:m.pos], " ")
	return strings.HasSuffix(prefix, "from") || strings.HasSuffix(prefix, "leaving") ||
		strings.HasSuffix(prefix, "departing")
}

func merge(base *ExtractedInfo, fresh ExtractedInfo) {
	if fresh.Origin != "" {
		base.Origin = fresh.Origin
	}
	if fresh.Destination != "" {
		base.Destination = fresh.Destination
		base.Region, base.Country = "", ""
		base.MultiDestination, base.Destinations = false, nil
	}
	if fresh.DepartureDate != "" {
		base.DepartureDate = fresh.DepartureDate
	}
	if fresh.ReturnDate != "" {
		base.ReturnDate = fresh.ReturnDate
	}
	if fresh.DurationDays != 0 {
		base.DurationDays = fresh.DurationDays
	}
	if fresh.MultiDestination {
		base.MultiDestination = true
		base.Destinations = fresh.Destinations
		base.Destination = ""
		base.Region = fresh.Region
	}
	if fresh.Country != "" && base.Destination == "" {
		base.Country = fresh.Country
	}
}

func weeksToDays(word string) int {
	switch word {
	case "a", "one":
		return 7
	case "two":
		return 14
	case "three":
		return 21
	}
	if n, err := strconv.Atoi(word); err == nil {
		return n * 7
	}
	return 7
}

// Preference-signal keyword tables.
var (
	budgetStyleRE = regexp.MustCompile(`(?i)\b(budget|cheap(ly|est)?|affordable|backpack(ing|er)?|low[- ]cost)\b`)
	luxuryStyleRE = regexp.MustCompile(`(?i)\b(luxur(y|ious)|five[- ]star|5[- ]star|high[- ]end|upscale)\b`)
	homeCityRE    = regexp.MustCompile(`(?i)\b(?:i live in|i'm based in|i am based in|my home city is)\s+([a-z .'-]+)`)
	loveRE        = regexp.MustCompile(`(?i)\b(?:i love|i loved|can't wait to go back to)\s+([a-z .'-]+)`)

	interestKeywords = map[string]string{
		"food":        "food",
		"restaurant":  "food",
		"street food": "food",
		"museum":      "museums",
		"art":         "museums",
		"gallery":     "museums",
		"beach":       "beaches",
		"hiking":      "hiking",
		"nature":      "hiking",
		"outdoors":    "hiking",
		"nightlife":   "nightlife",
		"bars":        "nightlife",
		"clubs":       "nightlife",
		"shopping":    "shopping",
		"history":     "history",
		"historical":  "history",
		"temples":     "history",
	}
)

// DetectPreferenceSignals scans a message for profile updates (travel style,
// interests, home city). The result is a proposed patch; persistence is the
// caller's concern.
func DetectPreferenceSignals(message string) session.Patch {
	msgLower := strings.ToLower(message)
	var patch session.Patch

	if budgetStyleRE.MatchString(msgLower) {
		patch.TravelStyle = "budget"
	} else if luxuryStyleRE.MatchString(msgLower) {
		patch.TravelStyle = "luxury"
	}

	for kw, interest := range interestKeywords {
		if strings.Contains(msgLower, kw) && !containsString(patch.Interests, interest) {
			patch.Interests = append(patch.Interests, interest)
		}
	}

	if m := homeCityRE.FindStringSubmatch(message); m != nil {
		if cs := findCities(strings.ToLower(m[1])); len(cs) > 0 {
			patch.HomeCity = cs[0].token
		}
	}
	if m := loveRE.FindStringSubmatch(message); m != nil {
		if cs := findCities(strings.ToLower(m[1])); len(cs) > 0 {
			patch.PreferredDestination = cs[0].token
		}
	}

	return patch
}

func containsString(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
