package query

// searchAliases maps a full normalized query string to the canonical phrases
// it should also match. Lookup is exact-match on the whole query, not per
// word. The map is built once at init and never mutated, so concurrent reads
// need no locking.
var searchAliases = map[string][]string{
	// Jordan series
	"aj1":     {"air jordan 1", "jordan 1"},
	"aj 1":    {"air jordan 1", "jordan 1"},
	"aj2":     {"air jordan 2", "jordan 2"},
	"aj3":     {"air jordan 3", "jordan 3"},
	"aj4":     {"air jordan 4", "jordan 4"},
	"aj 4":    {"air jordan 4", "jordan 4"},
	"aj5":     {"air jordan 5", "jordan 5"},
	"aj6":     {"air jordan 6", "jordan 6"},
	"aj11":    {"air jordan 11", "jordan 11"},
	"aj 11":   {"air jordan 11", "jordan 11"},
	"aj12":    {"air jordan 12", "jordan 12"},
	"aj13":    {"air jordan 13", "jordan 13"},
	"j1":      {"jordan 1"},
	"j4":      {"jordan 4"},
	"j11":     {"jordan 11"},
	"jordans": {"jordan"},

	// Nike, Air Force
	"af1":     {"air force 1", "air force one"},
	"af-1":    {"air force 1"},
	"force 1": {"air force 1"},

	// Nike, Air Max
	"am1":    {"air max 1"},
	"am90":   {"air max 90"},
	"am95":   {"air max 95"},
	"am97":   {"air max 97"},
	"airmax": {"air max"},
	"tn":     {"air max plus", "tuned"},

	// Nike, Dunk / SB
	"sb":      {"sb dunk", "dunk"},
	"sb dunk": {"dunk"},

	// Adidas / Yeezy
	"yzy":         {"yeezy"},
	"yz":          {"yeezy"},
	"350":         {"yeezy boost 350"},
	"700":         {"yeezy 700"},
	"foam":        {"yeezy foam"},
	"foam runner": {"yeezy foam runner"},

	// Brands / collabs
	"ow":          {"off-white", "off white"},
	"off white":   {"off-white"},
	"nb":          {"new balance"},
	"lv":          {"louis vuitton"},
	"ts":          {"travis scott"},
	"travis":      {"travis scott"},
	"cactus jack": {"travis scott"},
	"chucks":      {"chuck taylor", "converse"},
	"chuck":       {"chuck taylor"},
	"dms":         {"dr. martens", "doc martens"},
	"docs":        {"dr. martens"},
	"on cloud":    {"on running"},
}

// ExpandAliases returns the search terms for a normalized query: the query
// itself plus any canonical phrases it aliases. A query with no alias entry
// expands to just itself.
func ExpandAliases(q string) []string {
	terms := []string{q}
	if aliases, ok := searchAliases[q]; ok {
		terms = append(terms, aliases...)
	}
	return terms
}
