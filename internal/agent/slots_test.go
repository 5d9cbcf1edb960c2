// README: Slot validation tests (readiness and clarification wording).
package agent

import (
	"strings"
	"testing"
)

func TestValidate_FlightReady(t *testing.T) {
	check := Validate(Intent{Type: IntentFlightSearch, Info: ExtractedInfo{
		Origin:        "New York",
		Destination:   "Tokyo",
		DepartureDate: "2025-11-10",
	}})
	if !check.Ready {
		t.Fatalf("expected ready, got missing %v", check.Missing)
	}
}

func TestValidate_FlightMissingSlots(t *testing.T) {
	tests := []struct {
		name        string
		info        ExtractedInfo
		wantMissing string
		wantAsk     string
	}{
		{
			name:        "no destination",
			info:        ExtractedInfo{Origin: "London", DepartureDate: "2025-11-10"},
			wantMissing: "destination",
			wantAsk:     "fly to",
		},
		{
			name:        "no origin",
			info:        ExtractedInfo{Destination: "Tokyo", DepartureDate: "2025-11-10"},
			wantMissing: "origin",
			wantAsk:     "Tokyo",
		},
		{
			name:        "no date",
			info:        ExtractedInfo{Origin: "London", Destination: "Tokyo"},
			wantMissing: "departureDate",
			wantAsk:     "depart",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := Validate(Intent{Type: IntentFlightSearch, Info: tt.info})
			if check.Ready {
				t.Fatal("expected not ready")
			}
			if check.Missing[0] != tt.wantMissing {
				t.Errorf("missing = %v, want first %s", check.Missing, tt.wantMissing)
			}
			if !strings.Contains(check.Clarification, tt.wantAsk) {
				t.Errorf("clarification %q does not mention %q", check.Clarification, tt.wantAsk)
			}
			if !strings.Contains(check.Clarification, "?") {
				t.Errorf("clarification %q is not a question", check.Clarification)
			}
		})
	}
}

// TestValidate_CountryNeverReady: a country-level destination must always
// produce a clarification naming concrete cities, and is never actionable.
func TestValidate_CountryNeverReady(t *testing.T) {
	check := Validate(Intent{Type: IntentFlightSearch, Info: ExtractedInfo{
		Origin:        "London",
		DepartureDate: "2025-11-10",
		Country:       "Japan",
	}})
	if check.Ready {
		t.Fatal("country-level destination must not be ready")
	}
	suggestions := CountrySuggestions("Japan")
	if len(suggestions) < 1 || len(suggestions) > 6 {
		t.Fatalf("expected 1..6 suggestions, got %d", len(suggestions))
	}
	for _, city := range suggestions {
		if !strings.Contains(check.Clarification, city) {
			t.Errorf("clarification %q missing suggested city %q", check.Clarification, city)
		}
	}
}

func TestValidate_RegionClarifies(t *testing.T) {
	check := Validate(Intent{Type: IntentFlightSearch, Info: ExtractedInfo{
		Region:           "Caribbean",
		MultiDestination: true,
	}})
	if check.Ready {
		t.Fatal("region-level destination must not be ready")
	}
	if !strings.Contains(check.Clarification, "Kingston") {
		t.Errorf("clarification %q should suggest a sample city", check.Clarification)
	}
}

func TestValidate_ComparisonNeedsOriginAndDate(t *testing.T) {
	info := ExtractedInfo{
		MultiDestination: true,
		Destinations:     []string{"Tokyo", "Seoul"},
	}
	check := Validate(Intent{Type: IntentFlightSearch, Info: info})
	if check.Ready {
		t.Fatal("comparison without origin/date must not be ready")
	}
	if len(check.Missing) != 2 {
		t.Errorf("missing = %v, want origin and departureDate", check.Missing)
	}

	info.Origin = "San Francisco"
	info.DepartureDate = "2025-11-10"
	if check := Validate(Intent{Type: IntentFlightSearch, Info: info}); !check.Ready {
		t.Errorf("expected ready, got missing %v", check.Missing)
	}
}

func TestValidate_Hotel(t *testing.T) {
	ready := Validate(Intent{Type: IntentHotelSearch, Info: ExtractedInfo{
		Destination:   "Barcelona",
		DepartureDate: "2025-11-10",
		ReturnDate:    "2025-11-14",
	}})
	if !ready.Ready {
		t.Fatalf("expected ready, got missing %v", ready.Missing)
	}

	noDates := Validate(Intent{Type: IntentHotelSearch, Info: ExtractedInfo{Destination: "Barcelona"}})
	if noDates.Ready {
		t.Fatal("hotel search without dates must not be ready")
	}
	if !strings.Contains(noDates.Clarification, "check-in") {
		t.Errorf("clarification %q should ask for check-in/check-out", noDates.Clarification)
	}
}

// TestValidate_TripAcceptsCountry: "two weeks in Japan" is plannable at
// country granularity; only flights and hotels need a single city.
func TestValidate_TripAcceptsCountry(t *testing.T) {
	check := Validate(Intent{Type: IntentTripPlanning, Info: ExtractedInfo{
		Country:      "Japan",
		DurationDays: 14,
	}})
	if !check.Ready {
		t.Fatalf("expected ready, got missing %v", check.Missing)
	}

	noLength := Validate(Intent{Type: IntentTripPlanning, Info: ExtractedInfo{Destination: "Kyoto"}})
	if noLength.Ready {
		t.Fatal("trip without duration or dates must not be ready")
	}
}

// TestValidate_PromptOnlyIntentsAlwaysReady: these intent types are answered
// from the model alone and must never trigger a clarification loop.
func TestValidate_PromptOnlyIntentsAlwaysReady(t *testing.T) {
	for _, typ := range []IntentType{IntentRecommendation, IntentBudgetInquiry, IntentPublicTransport, IntentGeneral} {
		if check := Validate(Intent{Type: typ}); !check.Ready {
			t.Errorf("%s: expected ready, got missing %v", typ, check.Missing)
		}
	}
}
