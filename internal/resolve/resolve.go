// Package resolve answers, for one catalog record, which retailers plausibly
// or confirmedly carry the shoe and at what price. It merges live scraped
// prices with static heuristics and is pure: the same record always resolves
// to the same result, so it is safe to call from any number of goroutines.
package resolve

import (
	"math"
	"net/url"
	"strings"
	"unicode"

	"github.com/paripprabhu/sneakopedia/internal/domain"
)

// Entry is one retailer listing in a resolution result. Price is nil when no
// price can be stated in local currency (resale marketplaces, or unknown base
// price). IsLive is true only for prices taken directly from a scrape.
type Entry struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Price  *int64 `json:"price"`
	IsLive bool   `json:"is_live"`
}

// Result is the ordered retailer list for one sneaker: domestic retailers
// first in fixed table order, then international resale marketplaces.
type Result struct {
	ConfirmedRetailer string  `json:"confirmed_retailer,omitempty"`
	Entries           []Entry `json:"entries"`
}

// Resolve expands one sneaker record into its retailer listing.
func Resolve(s *domain.Sneaker) Result {
	confirmed := detectConfirmedRetailer(s)

	candidates := candidateRetailers(s.Brand, confirmed)

	live := liveLinks(s.RetailerLinks)

	var domestic, resale []Entry
	for _, name := range candidates {
		info := retailers[name]
		entry := buildEntry(s, name, info, confirmed, live)
		if info.resale {
			resale = append(resale, entry)
		} else {
			domestic = append(domestic, entry)
		}
	}

	return Result{
		ConfirmedRetailer: confirmed,
		Entries:           append(domestic, resale...),
	}
}

// detectConfirmedRetailer inspects the legacy source URL and then the
// thumbnail URL, mapping the first recognizable domain to a retailer name.
// Unparseable URLs are skipped; an empty string means no confirmed source.
func detectConfirmedRetailer(s *domain.Sneaker) string {
	for _, raw := range []string{s.LegacySourceURL, s.ThumbnailURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Hostname() == "" {
			continue
		}
		if name := retailerForHost(u.Hostname()); name != "" {
			return name
		}
	}
	return ""
}

// retailerForHost matches a hostname against the known registrable domains,
// accepting any subdomain (marketplace.mainstreet.co.in matches
// mainstreet.co.in).
func retailerForHost(host string) string {
	host = strings.ToLower(host)
	for dom, name := range domainRetailers {
		if host == dom || strings.HasSuffix(host, "."+dom) {
			return name
		}
	}
	return ""
}

// candidateRetailers builds the ordered candidate list for a brand. A product
// confirmed to come from a D2C storefront is restricted to exactly that
// storefront. Otherwise the brand rules are tried top to bottom, falling back
// to the default marketplace list, with the confirmed retailer appended if it
// is not already present.
func candidateRetailers(brand, confirmed string) []string {
	if confirmed != "" && retailers[confirmed].d2c {
		return []string{confirmed}
	}

	b := strings.ToLower(brand)
	for _, rule := range brandRules {
		if strings.Contains(b, rule.substring) {
			return rule.candidates
		}
	}

	candidates := defaultCandidates
	if confirmed != "" {
		found := false
		for _, name := range candidates {
			if name == confirmed {
				found = true
				break
			}
		}
		if !found {
			candidates = append(append([]string{}, candidates...), confirmed)
		}
	}
	return candidates
}

// liveLinks indexes scraped links by retailer name, dropping entries without
// a positive price.
func liveLinks(links []domain.RetailerLink) map[string]domain.RetailerLink {
	m := make(map[string]domain.RetailerLink, len(links))
	for _, l := range links {
		if !l.Valid() {
			continue
		}
		if _, ok := m[l.RetailerName]; !ok {
			m[l.RetailerName] = l
		}
	}
	return m
}

func buildEntry(s *domain.Sneaker, name string, info retailerInfo, confirmed string, live map[string]domain.RetailerLink) Entry {
	entry := Entry{Name: name}

	if link, ok := live[name]; ok {
		price := link.ScrapedPrice
		entry.URL = link.ProductURL
		entry.Price = &price
		entry.IsLive = true
		return entry
	}

	switch {
	case name == confirmed && s.LegacySourceURL != "":
		entry.URL = s.LegacySourceURL
	default:
		entry.URL = info.searchURL + url.QueryEscape(sanitizeName(s.Name))
	}

	// Resale marketplaces trade in a foreign currency; estimating a local
	// price from them is unreliable, so they stay "available, price unknown".
	if !info.resale && s.BasePrice > 0 {
		price := int64(math.Round(float64(s.BasePrice) * info.multiplier))
		entry.Price = &price
	}

	return entry
}

// sanitizeName prepares a product name for use in a search URL: control
// characters are stripped and whitespace runs collapsed to single spaces.
func sanitizeName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	return strings.Join(strings.Fields(cleaned), " ")
}
