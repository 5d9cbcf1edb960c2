// README: Session-scoped data: conversation turns and traveler preferences.
package session

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one recorded conversation message. Turns are immutable once
// appended; the core only ever reads past turns and appends new ones.
type Turn struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Preferences is the traveler profile read at the start of each turn.
type Preferences struct {
	HomeCity              string   `json:"home_city,omitempty"`
	Budget                string   `json:"budget,omitempty"`
	TravelStyle           string   `json:"travel_style,omitempty"` // "budget" | "luxury" | ""
	Interests             []string `json:"interests,omitempty"`
	PreferredDestinations []string `json:"preferred_destinations,omitempty"`
}

// Patch is a proposed partial preferences update detected during a turn.
// Zero-valued fields mean "no change".
type Patch struct {
	HomeCity             string   `json:"home_city,omitempty"`
	Budget               string   `json:"budget,omitempty"`
	TravelStyle          string   `json:"travel_style,omitempty"`
	Interests            []string `json:"interests,omitempty"`
	PreferredDestination string   `json:"preferred_destination,omitempty"`
}

// IsZero reports whether the patch proposes no change at all.
func (p Patch) IsZero() bool {
	return p.HomeCity == "" && p.Budget == "" && p.TravelStyle == "" &&
		len(p.Interests) == 0 && p.PreferredDestination == ""
}

// Apply merges the patch into prefs. String fields overwrite, interests and
// preferred destinations accumulate without duplicates.
func (p Patch) Apply(prefs Preferences) Preferences {
	if p.HomeCity != "" {
		prefs.HomeCity = p.HomeCity
	}
	if p.Budget != "" {
		prefs.Budget = p.Budget
	}
	if p.TravelStyle != "" {
		prefs.TravelStyle = p.TravelStyle
	}
	for _, in := range p.Interests {
		if !containsString(prefs.Interests, in) {
			prefs.Interests = append(prefs.Interests, in)
		}
	}
	if p.PreferredDestination != "" && !containsString(prefs.PreferredDestinations, p.PreferredDestination) {
		prefs.PreferredDestinations = append(prefs.PreferredDestinations, p.PreferredDestination)
	}
	return prefs
}

func containsString(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
