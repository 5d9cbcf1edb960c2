// README: Post-processing tests (emoji strip, marker truncation, idempotence).
package agent

import (
	"strings"
	"testing"
)

const tokyoURL = "https://www.google.com/travel/flights?q=flights+from+New+York+to+Tokyo"

func TestPostProcess_ExtractsMarkerDirective(t *testing.T) {
	raw := "I found some great options for Tokyo!\n" +
		"The cheapest is United at $745.\n" +
		MarkerOpen + tokyoURL + MarkerClose
	fr := newFetchResult(ResultFlights)

	reply := PostProcess(raw, fr)
	if strings.Contains(reply.Text, MarkerOpen) || strings.Contains(reply.Text, MarkerClose) {
		t.Errorf("marker tokens leaked into text: %q", reply.Text)
	}
	if len(reply.UIDirectives) != 1 {
		t.Fatalf("got %d directives, want 1", len(reply.UIDirectives))
	}
	d := reply.UIDirectives[0]
	if d.Kind != "button" || d.TargetURL != tokyoURL {
		t.Errorf("directive = %+v", d)
	}
	if !strings.Contains(reply.Text, "United at $745") {
		t.Errorf("reply text lost content: %q", reply.Text)
	}
}

// TestPostProcess_TruncatesAfterLastMarker: raw numbers the model leaks after
// its final marker are hallucination residue and must be dropped, while every
// marker before the cut survives.
func TestPostProcess_TruncatesAfterLastMarker(t *testing.T) {
	raw := "Here is your comparison.\n" +
		MarkerOpen + "https://example.com/a" + MarkerClose + "\n" +
		MarkerOpen + "https://example.com/b" + MarkerClose + "\n" +
		MarkerOpen + "https://example.com/c" + MarkerClose + "\n" +
		"1200\n1350\n"
	reply := PostProcess(raw, newFetchResult(ResultComparison))

	if strings.Contains(reply.Text, "1200") || strings.Contains(reply.Text, "1350") {
		t.Errorf("trailing digits survived: %q", reply.Text)
	}
	if len(reply.UIDirectives) != 3 {
		t.Fatalf("got %d directives, want 3", len(reply.UIDirectives))
	}
	if reply.UIDirectives[2].TargetURL != "https://example.com/c" {
		t.Errorf("third directive = %+v", reply.UIDirectives[2])
	}
}

func TestPostProcess_ComparisonLabelsPerDestination(t *testing.T) {
	fr := newFetchResult(ResultComparison)
	fr.Comparison = []DestinationQuote{{Destination: "Tokyo"}, {Destination: "Seoul"}}
	raw := "Tokyo is cheaper this week.\n" +
		MarkerOpen + "https://example.com/tokyo" + MarkerClose + "\n" +
		MarkerOpen + "https://example.com/seoul" + MarkerClose
	reply := PostProcess(raw, fr)

	if len(reply.UIDirectives) != 2 {
		t.Fatalf("got %d directives, want 2", len(reply.UIDirectives))
	}
	if reply.UIDirectives[0].Label != "Flights to Tokyo" || reply.UIDirectives[1].Label != "Flights to Seoul" {
		t.Errorf("labels = %q, %q", reply.UIDirectives[0].Label, reply.UIDirectives[1].Label)
	}
}

func TestPostProcess_StripsEmoji(t *testing.T) {
	reply := PostProcess("Have a great trip! ✈️\U0001F389\U0001F1EF\U0001F1F5", newFetchResult(ResultNone))
	if reply.Text != "Have a great trip!" {
		t.Errorf("text = %q", reply.Text)
	}
}

// TestPostProcess_NoMarkerStripsTrailingNumbers: even without markers,
// trailing bare-number lines look like leaked raw prices and are removed.
func TestPostProcess_NoMarkerStripsTrailingNumbers(t *testing.T) {
	raw := "Flights start around $745 this month.\n1200\n1350"
	reply := PostProcess(raw, newFetchResult(ResultFlights))
	if reply.Text != "Flights start around $745 this month." {
		t.Errorf("text = %q", reply.Text)
	}
}

func TestPostProcess_NoMarkerErrorResultAddsFallback(t *testing.T) {
	fr := newFetchResult(ResultError)
	fr.FallbackURL = tokyoURL
	reply := PostProcess("Sorry, I couldn't reach the flight search just now.", fr)
	if len(reply.UIDirectives) != 1 {
		t.Fatalf("got %d directives, want 1", len(reply.UIDirectives))
	}
	if reply.UIDirectives[0].Kind != "link" || reply.UIDirectives[0].TargetURL != tokyoURL {
		t.Errorf("directive = %+v", reply.UIDirectives[0])
	}
}

// TestPostProcess_Idempotent: cleaning already-clean text changes nothing.
func TestPostProcess_Idempotent(t *testing.T) {
	fr := newFetchResult(ResultFlights)
	raw := "Cheapest is United at $745, nonstop.\n" + MarkerOpen + tokyoURL + MarkerClose
	once := PostProcess(raw, fr)
	twice := PostProcess(once.Text, fr)
	if once.Text != twice.Text {
		t.Errorf("not idempotent:\nonce:  %q\ntwice: %q", once.Text, twice.Text)
	}
}

func TestPostProcess_EmptyInput(t *testing.T) {
	reply := PostProcess("", newFetchResult(ResultNone))
	if reply.Text != "" {
		t.Errorf("text = %q", reply.Text)
	}
	if reply.UIDirectives == nil {
		t.Error("directives must be empty, not nil")
	}
}
