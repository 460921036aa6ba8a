package resolve

// retailerInfo describes one known retailer: where to send a user when no
// direct product link is known, and how its shelf prices tend to relate to
// the lowest observed price.
type retailerInfo struct {
	searchURL  string
	multiplier float64
	// d2c marks a direct-to-consumer brand storefront. A product confirmed
	// to come from one of these is not listed anywhere else.
	d2c bool
	// resale marks an international resale marketplace priced in a foreign
	// currency. Resale entries are shown without a local-currency price.
	resale bool
}

// Retailer display names, used as keys everywhere a retailer is referenced.
const (
	RetailerMainstreet  = "Mainstreet"
	RetailerVegNonVeg   = "VegNonVeg"
	RetailerSuperkicks  = "Superkicks"
	RetailerCrepdogCrew = "Crepdog Crew"
	RetailerSoleSearch  = "SoleSearch"
	RetailerFootlocker  = "Footlocker IN"
	RetailerLTDEdition  = "LTD Edition"

	RetailerComet     = "Comet Official"
	RetailerThaely    = "Thaely Official"
	RetailerGullyLabs = "Gully Labs"
	RetailerSevenTen  = "7-10 Official"
	RetailerBacca     = "Bacca Bucci"

	RetailerStockX = "StockX"
	RetailerGOAT   = "GOAT"
)

// retailers is the full catalog of known retailers. Multipliers are rough
// shelf-price factors relative to the lowest observed price; 1.0 where no
// better signal exists.
var retailers = map[string]retailerInfo{
	RetailerMainstreet:  {searchURL: "https://marketplace.mainstreet.co.in/search?q=", multiplier: 1.05},
	RetailerVegNonVeg:   {searchURL: "https://www.vegnonveg.com/search?q=", multiplier: 1.0},
	RetailerSuperkicks:  {searchURL: "https://www.superkicks.in/search?q=", multiplier: 1.0},
	RetailerCrepdogCrew: {searchURL: "https://crepdogcrew.com/search?q=", multiplier: 1.15},
	RetailerSoleSearch:  {searchURL: "https://www.solesearchindia.com/search?q=", multiplier: 1.2},
	RetailerFootlocker:  {searchURL: "https://www.footlocker.co.in/search?q=", multiplier: 1.0},
	RetailerLTDEdition:  {searchURL: "https://ltdedition.in/search?q=", multiplier: 1.1},

	RetailerComet:     {searchURL: "https://www.wearcomet.com/search?q=", multiplier: 1.0, d2c: true},
	RetailerThaely:    {searchURL: "https://thaely.com/search?q=", multiplier: 1.0, d2c: true},
	RetailerGullyLabs: {searchURL: "https://www.gullylabs.com/search?q=", multiplier: 1.0, d2c: true},
	RetailerSevenTen:  {searchURL: "https://www.7-10.in/search?q=", multiplier: 1.0, d2c: true},
	RetailerBacca:     {searchURL: "https://baccabucci.com/search?q=", multiplier: 1.0, d2c: true},

	RetailerStockX: {searchURL: "https://stockx.com/search?s=", multiplier: 1.0, resale: true},
	RetailerGOAT:   {searchURL: "https://www.goat.com/search?query=", multiplier: 1.0, resale: true},
}

// defaultCandidates is the fallback candidate list for brands with no
// dedicated rule: the major domestic marketplaces followed by the two resale
// marketplaces. Order here is the output order.
var defaultCandidates = []string{
	RetailerMainstreet,
	RetailerVegNonVeg,
	RetailerSuperkicks,
	RetailerCrepdogCrew,
	RetailerSoleSearch,
	RetailerFootlocker,
	RetailerStockX,
	RetailerGOAT,
}

// brandRule routes a brand to its candidate retailers by substring match.
// Rules are evaluated top to bottom against the lowercased brand and the
// first hit wins. This is a heuristic, not a lookup: scraped brand strings
// drift ("Bacca Bucci", "BACCA bucci shoes"), so exact matching would miss.
type brandRule struct {
	substring  string
	candidates []string
}

var brandRules = []brandRule{
	{"comet", []string{RetailerComet}},
	{"thaely", []string{RetailerThaely}},
	{"gully", []string{RetailerGullyLabs}},
	{"7-10", []string{RetailerSevenTen}},
	{"7 10", []string{RetailerSevenTen}},
	{"bacca", []string{RetailerBacca}},
	{"bucci", []string{RetailerBacca}},
}

// domainRetailers maps a registrable domain to the retailer it belongs to,
// used to detect which retailer a record was originally scraped from.
var domainRetailers = map[string]string{
	"mainstreet.co.in":    RetailerMainstreet,
	"vegnonveg.com":       RetailerVegNonVeg,
	"superkicks.in":       RetailerSuperkicks,
	"crepdogcrew.com":     RetailerCrepdogCrew,
	"solesearchindia.com": RetailerSoleSearch,
	"footlocker.co.in":    RetailerFootlocker,
	"ltdedition.in":       RetailerLTDEdition,

	"wearcomet.com":  RetailerComet,
	"thaely.com":     RetailerThaely,
	"gullylabs.com":  RetailerGullyLabs,
	"7-10.in":        RetailerSevenTen,
	"baccabucci.com": RetailerBacca,

	"stockx.com": RetailerStockX,
	"goat.com":   RetailerGOAT,
}
