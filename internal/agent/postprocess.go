// README: Response post-processing: strips emoji, cuts hallucinated trailing
// content after the final link marker, and lifts markers into UI directives.
package agent

import (
	"regexp"
	"strings"
)

// UIDirective is a structured action the client renders alongside the text.
type UIDirective struct {
	Kind      string `json:"kind"`
	Label     string `json:"label"`
	TargetURL string `json:"target_url"`
}

// Reply is the cleaned model output plus its extracted directives.
type Reply struct {
	Text         string        `json:"text"`
	UIDirectives []UIDirective `json:"ui_directives"`
}

var (
	emojiRE = regexp.MustCompile(`[\x{1F000}-\x{1FAFF}\x{2600}-\x{27BF}\x{2B00}-\x{2BFF}\x{FE0F}\x{200D}\x{1F1E6}-\x{1F1FF}]`)

	markerRE = regexp.MustCompile(regexp.QuoteMeta(MarkerOpen) + `(.*?)` + regexp.QuoteMeta(MarkerClose))

	// bareNumberLineRE matches a line that is nothing but digits, separators
	// and an optional currency symbol: the typical shape of leaked raw prices.
	bareNumberLineRE = regexp.MustCompile(`^[\s$€£¥₹฿]*[\d][\d.,\s]*$`)
)

// PostProcess cleans one raw model completion. The fetch result is consulted
// only for labeling directives and for the degraded-fetch fallback link; the
// text itself is never augmented with data. Running PostProcess on its own
// output returns it unchanged.
func PostProcess(raw string, fr FetchResult) Reply {
	text := emojiRE.ReplaceAllString(raw, "")

	locs := markerRE.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return noMarkerReply(text, fr)
	}

	// Everything after the final closing marker is untrusted; models leak raw
	// result lists there.
	last := locs[len(locs)-1]
	text = text[:last[1]]

	directives := make([]UIDirective, 0, len(locs))
	for i, loc := range locs {
		url := strings.TrimSpace(text[loc[2]:loc[3]])
		if url == "" {
			continue
		}
		directives = append(directives, UIDirective{
			Kind:      "button",
			Label:     directiveLabel(fr, i, len(locs)),
			TargetURL: url,
		})
	}

	// Strip the marker tokens out of the visible text.
	text = markerRE.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	return Reply{Text: text, UIDirectives: directives}
}

// noMarkerReply handles completions where the model ignored the marker
// instruction. Trailing bare-number lines are still suspect and removed, and
// a degraded fetch still gets its fallback link as a directive.
func noMarkerReply(text string, fr FetchResult) Reply {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for len(lines) > 0 && bareNumberLineRE.MatchString(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	text = strings.TrimSpace(strings.Join(lines, "\n"))

	directives := []UIDirective{}
	if fr.Kind == ResultError && fr.FallbackURL != "" {
		directives = append(directives, UIDirective{
			Kind:      "link",
			Label:     fallbackLabel(fr),
			TargetURL: fr.FallbackURL,
		})
	}
	return Reply{Text: text, UIDirectives: directives}
}

// directiveLabel names the i-th of n marker directives. For comparisons the
// markers arrive in destination order, so labels line up per destination.
func directiveLabel(fr FetchResult, i, n int) string {
	if fr.Kind == ResultComparison && n == len(fr.Comparison) && i < len(fr.Comparison) {
		return "Flights to " + fr.Comparison[i].Destination
	}
	switch fr.Kind {
	case ResultHotels:
		return "See more hotels"
	case ResultPlaces:
		return "Open in Maps"
	case ResultComparison, ResultFlights:
		return "See more flights"
	default:
		return "Open search"
	}
}

func fallbackLabel(fr FetchResult) string {
	if fr.Request.CheckIn != "" || fr.Request.CheckOut != "" {
		return "Search hotels"
	}
	return "Search flights"
}
