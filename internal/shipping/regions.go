package shipping

// Fixed geography tables for the mock rate estimator. States are two-letter
// USPS codes.

// stateAdjacency lists land borders between states.
var stateAdjacency = map[string][]string{
	"AL": {"FL", "GA", "MS", "TN"},
	"AR": {"LA", "MO", "MS", "OK", "TN", "TX"},
	"AZ": {"CA", "CO", "NM", "NV", "UT"},
	"CA": {"AZ", "NV", "OR"},
	"CO": {"AZ", "KS", "NE", "NM", "OK", "UT", "WY"},
	"CT": {"MA", "NY", "RI"},
	"DE": {"MD", "NJ", "PA"},
	"FL": {"AL", "GA"},
	"GA": {"AL", "FL", "NC", "SC", "TN"},
	"IA": {"IL", "MN", "MO", "NE", "SD", "WI"},
	"ID": {"MT", "NV", "OR", "UT", "WA", "WY"},
	"IL": {"IA", "IN", "KY", "MO", "WI"},
	"IN": {"IL", "KY", "MI", "OH"},
	"KS": {"CO", "MO", "NE", "OK"},
	"KY": {"IL", "IN", "MO", "OH", "TN", "VA", "WV"},
	"LA": {"AR", "MS", "TX"},
	"MA": {"CT", "NH", "NY", "RI", "VT"},
	"MD": {"DE", "PA", "VA", "WV"},
	"ME": {"NH"},
	"MI": {"IN", "OH", "WI"},
	"MN": {"IA", "ND", "SD", "WI"},
	"MO": {"AR", "IA", "IL", "KS", "KY", "NE", "OK", "TN"},
	"MS": {"AL", "AR", "LA", "TN"},
	"MT": {"ID", "ND", "SD", "WY"},
	"NC": {"GA", "SC", "TN", "VA"},
	"ND": {"MN", "MT", "SD"},
	"NE": {"CO", "IA", "KS", "MO", "SD", "WY"},
	"NH": {"MA", "ME", "VT"},
	"NJ": {"DE", "NY", "PA"},
	"NM": {"AZ", "CO", "OK", "TX", "UT"},
	"NV": {"AZ", "CA", "ID", "OR", "UT"},
	"NY": {"CT", "MA", "NJ", "PA", "VT"},
	"OH": {"IN", "KY", "MI", "PA", "WV"},
	"OK": {"AR", "CO", "KS", "MO", "NM", "TX"},
	"OR": {"CA", "ID", "NV", "WA"},
	"PA": {"DE", "MD", "NJ", "NY", "OH", "WV"},
	"RI": {"CT", "MA"},
	"SC": {"GA", "NC"},
	"SD": {"IA", "MN", "MT", "ND", "NE", "WY"},
	"TN": {"AL", "AR", "GA", "KY", "MO", "MS", "NC", "VA"},
	"TX": {"AR", "LA", "NM", "OK"},
	"UT": {"AZ", "CO", "ID", "NM", "NV", "WY"},
	"VA": {"KY", "MD", "NC", "TN", "WV"},
	"VT": {"MA", "NH", "NY"},
	"WA": {"ID", "OR"},
	"WI": {"IA", "IL", "MI", "MN"},
	"WV": {"KY", "MD", "OH", "PA", "VA"},
	"WY": {"CO", "ID", "MT", "NE", "SD", "UT"},
}

// stateRegion maps each state to its census region.
var stateRegion = map[string]string{
	// Northeast
	"CT": "northeast", "MA": "northeast", "ME": "northeast", "NH": "northeast",
	"NJ": "northeast", "NY": "northeast", "PA": "northeast", "RI": "northeast",
	"VT": "northeast",
	// Midwest
	"IA": "midwest", "IL": "midwest", "IN": "midwest", "KS": "midwest",
	"MI": "midwest", "MN": "midwest", "MO": "midwest", "ND": "midwest",
	"NE": "midwest", "OH": "midwest", "SD": "midwest", "WI": "midwest",
	// South
	"AL": "south", "AR": "south", "DC": "south", "DE": "south", "FL": "south",
	"GA": "south", "KY": "south", "LA": "south", "MD": "south", "MS": "south",
	"NC": "south", "OK": "south", "SC": "south", "TN": "south", "TX": "south",
	"VA": "south", "WV": "south",
	// West
	"AK": "west", "AZ": "west", "CA": "west", "CO": "west", "HI": "west",
	"ID": "west", "MT": "west", "NM": "west", "NV": "west", "OR": "west",
	"UT": "west", "WA": "west", "WY": "west",
}

func statesAdjacent(a, b string) bool {
	for _, n := range stateAdjacency[a] {
		if n == b {
			return true
		}
	}
	return false
}

func sameRegion(a, b string) bool {
	ra, okA := stateRegion[a]
	rb, okB := stateRegion[b]
	return okA && okB && ra == rb
}
