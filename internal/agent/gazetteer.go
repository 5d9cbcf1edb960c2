// README: Gazetteer configuration data: known cities, countries, and regions.
//
// The region/country tables are deliberately data, not logic: whether
// "Caribbean" expands to islands or "Japan" expands to cities is a product
// decision, and adding an entry must never require a code change.
package agent

import (
	"regexp"
	"strings"
)

type city struct {
	Name    string
	Country string
}

// cities maps a lowercase city token to its canonical form. Common airport
// codes resolve to themselves so "from JFK" works as an origin.
var cities = map[string]city{
	"new york":       {"New York", "United States"},
	"los angeles":    {"Los Angeles", "United States"},
	"san francisco":  {"San Francisco", "United States"},
	"chicago":        {"Chicago", "United States"},
	"miami":          {"Miami", "United States"},
	"london":         {"London", "United Kingdom"},
	"manchester":     {"Manchester", "United Kingdom"},
	"edinburgh":      {"Edinburgh", "United Kingdom"},
	"paris":          {"Paris", "France"},
	"nice":           {"Nice", "France"},
	"lyon":           {"Lyon", "France"},
	"rome":           {"Rome", "Italy"},
	"milan":          {"Milan", "Italy"},
	"venice":         {"Venice", "Italy"},
	"florence":       {"Florence", "Italy"},
	"naples":         {"Naples", "Italy"},
	"barcelona":      {"Barcelona", "Spain"},
	"madrid":         {"Madrid", "Spain"},
	"seville":        {"Seville", "Spain"},
	"lisbon":         {"Lisbon", "Portugal"},
	"porto":          {"Porto", "Portugal"},
	"amsterdam":      {"Amsterdam", "Netherlands"},
	"berlin":         {"Berlin", "Germany"},
	"munich":         {"Munich", "Germany"},
	"frankfurt":      {"Frankfurt", "Germany"},
	"vienna":         {"Vienna", "Austria"},
	"prague":         {"Prague", "Czech Republic"},
	"budapest":       {"Budapest", "Hungary"},
	"athens":         {"Athens", "Greece"},
	"santorini":      {"Santorini", "Greece"},
	"istanbul":       {"Istanbul", "Turkey"},
	"dubai":          {"Dubai", "United Arab Emirates"},
	"tokyo":          {"Tokyo", "Japan"},
	"osaka":          {"Osaka", "Japan"},
	"kyoto":          {"Kyoto", "Japan"},
	"sapporo":        {"Sapporo", "Japan"},
	"fukuoka":        {"Fukuoka", "Japan"},
	"seoul":          {"Seoul", "South Korea"},
	"busan":          {"Busan", "South Korea"},
	"beijing":        {"Beijing", "China"},
	"shanghai":       {"Shanghai", "China"},
	"hong kong":      {"Hong Kong", "Hong Kong"},
	"taipei":         {"Taipei", "Taiwan"},
	"singapore":      {"Singapore", "Singapore"},
	"bangkok":        {"Bangkok", "Thailand"},
	"chiang mai":     {"Chiang Mai", "Thailand"},
	"phuket":         {"Phuket", "Thailand"},
	"hanoi":          {"Hanoi", "Vietnam"},
	"ho chi minh":    {"Ho Chi Minh City", "Vietnam"},
	"bali":           {"Bali", "Indonesia"},
	"jakarta":        {"Jakarta", "Indonesia"},
	"manila":         {"Manila", "Philippines"},
	"kuala lumpur":   {"Kuala Lumpur", "Malaysia"},
	"delhi":          {"Delhi", "India"},
	"mumbai":         {"Mumbai", "India"},
	"sydney":         {"Sydney", "Australia"},
	"melbourne":      {"Melbourne", "Australia"},
	"auckland":       {"Auckland", "New Zealand"},
	"toronto":        {"Toronto", "Canada"},
	"vancouver":      {"Vancouver", "Canada"},
	"montreal":       {"Montreal", "Canada"},
	"mexico city":    {"Mexico City", "Mexico"},
	"cancun":         {"Cancun", "Mexico"},
	"rio de janeiro": {"Rio de Janeiro", "Brazil"},
	"sao paulo":      {"Sao Paulo", "Brazil"},
	"buenos aires":   {"Buenos Aires", "Argentina"},
	"lima":           {"Lima", "Peru"},
	"cairo":          {"Cairo", "Egypt"},
	"marrakech":      {"Marrakech", "Morocco"},
	"cape town":      {"Cape Town", "South Africa"},
	"nairobi":        {"Nairobi", "Kenya"},
	"kingston":       {"Kingston", "Jamaica"},
	"havana":         {"Havana", "Cuba"},
	"san juan":       {"San Juan", "Puerto Rico"},
	"reykjavik":      {"Reykjavik", "Iceland"},
	"dublin":         {"Dublin", "Ireland"},
	"copenhagen":     {"Copenhagen", "Denmark"},
	"stockholm":      {"Stockholm", "Sweden"},
	"oslo":           {"Oslo", "Norway"},
	"helsinki":       {"Helsinki", "Finland"},
	"zurich":         {"Zurich", "Switzerland"},
	"geneva":         {"Geneva", "Switzerland"},
	"brussels":       {"Brussels", "Belgium"},
	"warsaw":         {"Warsaw", "Poland"},
	"krakow":         {"Krakow", "Poland"},
	// airport codes pass through unchanged
	"jfk": {"JFK", "United States"},
	"lax": {"LAX", "United States"},
	"sfo": {"SFO", "United States"},
	"ord": {"ORD", "United States"},
	"lhr": {"LHR", "United Kingdom"},
	"cdg": {"CDG", "France"},
	"nrt": {"NRT", "Japan"},
	"hnd": {"HND", "Japan"},
	"sin": {"SIN", "Singapore"},
	"txl": {"TXL", "Germany"},
}

// countryCities maps a lowercase country token to its popular cities, used to
// turn a country-level destination into concrete suggestions.
var countryCities = map[string][]string{
	"japan":          {"Tokyo", "Osaka", "Kyoto", "Sapporo", "Fukuoka"},
	"france":         {"Paris", "Nice", "Lyon", "Marseille"},
	"italy":          {"Rome", "Milan", "Venice", "Florence", "Naples"},
	"spain":          {"Barcelona", "Madrid", "Seville", "Valencia"},
	"portugal":       {"Lisbon", "Porto", "Faro"},
	"germany":        {"Berlin", "Munich", "Frankfurt", "Hamburg"},
	"greece":         {"Athens", "Santorini", "Mykonos", "Thessaloniki"},
	"turkey":         {"Istanbul", "Antalya", "Cappadocia", "Izmir"},
	"thailand":       {"Bangkok", "Chiang Mai", "Phuket", "Krabi"},
	"vietnam":        {"Hanoi", "Ho Chi Minh City", "Da Nang", "Hoi An"},
	"indonesia":      {"Bali", "Jakarta", "Yogyakarta"},
	"malaysia":       {"Kuala Lumpur", "Penang", "Langkawi"},
	"philippines":    {"Manila", "Cebu", "Palawan", "Boracay"},
	"india":          {"Delhi", "Mumbai", "Jaipur", "Goa", "Bangalore"},
	"china":          {"Beijing", "Shanghai", "Chengdu", "Xi'an"},
	"south korea":    {"Seoul", "Busan", "Jeju"},
	"australia":      {"Sydney", "Melbourne", "Brisbane", "Perth"},
	"new zealand":    {"Auckland", "Queenstown", "Wellington"},
	"united states":  {"New York", "Los Angeles", "San Francisco", "Miami", "Chicago", "Las Vegas"},
	"usa":            {"New York", "Los Angeles", "San Francisco", "Miami", "Chicago", "Las Vegas"},
	"canada":         {"Toronto", "Vancouver", "Montreal"},
	"mexico":         {"Mexico City", "Cancun", "Tulum", "Oaxaca"},
	"brazil":         {"Rio de Janeiro", "Sao Paulo", "Salvador"},
	"argentina":      {"Buenos Aires", "Mendoza", "Bariloche"},
	"peru":           {"Lima", "Cusco", "Arequipa"},
	"egypt":          {"Cairo", "Luxor", "Sharm El Sheikh"},
	"morocco":        {"Marrakech", "Fes", "Casablanca"},
	"south africa":   {"Cape Town", "Johannesburg", "Durban"},
	"kenya":          {"Nairobi", "Mombasa"},
	"jamaica":        {"Kingston", "Montego Bay", "Negril"},
	"cuba":           {"Havana", "Varadero", "Trinidad"},
	"iceland":        {"Reykjavik", "Akureyri"},
	"ireland":        {"Dublin", "Galway", "Cork"},
	"switzerland":    {"Zurich", "Geneva", "Interlaken", "Lucerne"},
	"netherlands":    {"Amsterdam", "Rotterdam", "Utrecht"},
	"united kingdom": {"London", "Edinburgh", "Manchester", "Bath"},
	"uk":             {"London", "Edinburgh", "Manchester", "Bath"},
	"poland":         {"Warsaw", "Krakow", "Gdansk"},
}

// regionCities maps a lowercase region token to sample cities used in
// clarification prompts and comparison suggestions.
var regionCities = map[string][]string{
	"europe":          {"Paris", "Rome", "Barcelona", "Amsterdam", "Prague"},
	"asia":            {"Tokyo", "Bangkok", "Singapore", "Seoul", "Hanoi"},
	"southeast asia":  {"Bangkok", "Hanoi", "Bali", "Kuala Lumpur", "Manila"},
	"east asia":       {"Tokyo", "Seoul", "Taipei", "Shanghai"},
	"south america":   {"Rio de Janeiro", "Buenos Aires", "Lima", "Cusco"},
	"north america":   {"New York", "Toronto", "Mexico City", "San Francisco"},
	"central america": {"San Jose", "Panama City", "Antigua Guatemala"},
	"caribbean":       {"Kingston", "Havana", "San Juan", "Nassau"},
	"middle east":     {"Dubai", "Istanbul", "Doha", "Amman"},
	"africa":          {"Cape Town", "Marrakech", "Cairo", "Nairobi"},
	"scandinavia":     {"Copenhagen", "Stockholm", "Oslo", "Helsinki"},
	"oceania":         {"Sydney", "Melbourne", "Auckland"},
	"mediterranean":   {"Barcelona", "Nice", "Athens", "Palermo"},
	"balkans":         {"Dubrovnik", "Split", "Belgrade", "Sarajevo"},
}

type gazetteerMatch struct {
	token string // canonical display form
	pos   int    // byte index in the lowercase message
}

func wordMatch(msgLower, token string) (int, bool) {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(token) + `\b`)
	loc := re.FindStringIndex(msgLower)
	if loc == nil {
		return 0, false
	}
	return loc[0], true
}

// findCities returns all known cities mentioned in the message, ordered by
// position of first occurrence.
func findCities(msgLower string) []gazetteerMatch {
	var out []gazetteerMatch
	for token, c := range cities {
		if pos, ok := wordMatch(msgLower, token); ok {
			out = append(out, gazetteerMatch{token: c.Name, pos: pos})
		}
	}
	sortMatches(out)
	return out
}

func findCountry(msgLower string) (string, bool) {
	for token := range countryCities {
		if _, ok := wordMatch(msgLower, token); ok {
			return canonicalCase(token), true
		}
	}
	return "", false
}

func findRegion(msgLower string) (string, bool) {
	for token := range regionCities {
		if _, ok := wordMatch(msgLower, token); ok {
			return canonicalCase(token), true
		}
	}
	return "", false
}

// CountrySuggestions returns 1..6 popular cities for a country token.
func CountrySuggestions(country string) []string {
	cs := countryCities[strings.ToLower(country)]
	if len(cs) > 6 {
		cs = cs[:6]
	}
	return cs
}

// RegionSuggestions returns sample cities for a region token.
func RegionSuggestions(region string) []string {
	cs := regionCities[strings.ToLower(region)]
	if len(cs) > 6 {
		cs = cs[:6]
	}
	return cs
}

func sortMatches(ms []gazetteerMatch) {
	// insertion sort; match lists are tiny
	for i := 1; i < len(ms); i++ {
		for j := i; j > 0 && ms[j].pos < ms[j-1].pos; j-- {
			ms[j], ms[j-1] = ms[j-1], ms[j]
		}
	}
}

func canonicalCase(token string) string {
	switch token {
	case "usa":
		return "USA"
	case "uk":
		return "UK"
	}
	parts := strings.Fields(token)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
