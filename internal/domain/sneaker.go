package domain

import (
	"time"
)

// DefaultCurrency is the currency assumed when a record does not carry one.
const DefaultCurrency = "INR"

// Sneaker represents one distinct shoe/colorway in the catalog, deduplicated
// across the retailers it was scraped from.
type Sneaker struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CanonicalName string `json:"canonical_name"`
	Brand         string `json:"brand"`

	// BasePrice is the lowest price observed across all scraped sources,
	// in whole rupees. Zero means unknown.
	BasePrice int64  `json:"base_price"`
	Currency  string `json:"currency"`

	ThumbnailURL string `json:"thumbnail_url,omitempty"`

	// LegacySourceURL is the single product-page URL kept for records that
	// predate structured retailer links.
	LegacySourceURL string `json:"legacy_source_url,omitempty"`

	// OrderingKey is a pseudo-random float in [0,1) assigned once at
	// creation, used as the stable default sort when no seed is supplied.
	OrderingKey float64 `json:"-"`

	RetailerLinks []RetailerLink `json:"retailer_links"`
}

// RetailerLink is one scraped retailer listing for a sneaker. The URL points
// at a product page, never a search page.
type RetailerLink struct {
	RetailerName string    `json:"retailer_name"`
	ProductURL   string    `json:"product_url"`
	ScrapedPrice int64     `json:"scraped_price"`
	ScrapedAt    time.Time `json:"scraped_at"`
	SourceDomain string    `json:"source_domain"`
}

// Valid reports whether the link carries a usable scraped price. Entries with
// a zero or negative price are ignored during retailer resolution.
func (l RetailerLink) Valid() bool {
	return l.ScrapedPrice > 0
}
