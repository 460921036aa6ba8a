// Package query turns raw request parameters into a validated, bounded spec
// for the catalog store. Malformed input never produces an error here; every
// bad field degrades to a safe default so adversarial or sloppy clients get
// normal (if uninteresting) results rather than 4xx noise.
package query

import (
	"strconv"
	"strings"
)

// Bounds applied to incoming parameters.
const (
	PageSize        = 24
	MaxPage         = 500
	MaxQueryLength  = 200
	MaxBrandFilters = 10
	MaxPriceFilter  = 10_000_000
)

// Supported sort keys. Anything else silently falls back to SortNone.
const (
	SortNone      = "none"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

var validSorts = map[string]struct{}{
	SortNone:      {},
	SortPriceAsc:  {},
	SortPriceDesc: {},
	SortNameAsc:   {},
	SortNameDesc:  {},
}

// Mode selects which store operation a spec maps to. Special modes bypass
// filtering entirely.
type Mode int

const (
	// ModeList runs the general filter/sort/paginate pipeline.
	ModeList Mode = iota
	// ModeByID is a point lookup; all filters are ignored.
	ModeByID
	// ModeRandom samples one record uniformly from the whole collection.
	ModeRandom
)

// Params carries the raw, untrusted request parameters.
type Params struct {
	Q        string
	Sort     string
	Page     string
	PriceMin string
	PriceMax string
	Brands   string
	ID       string
	Random   string
	Seed     string
}

// Spec is the validated query produced by Build. Terms and Brands hold raw
// (unescaped) text; the store adapter escapes them before pattern matching.
type Spec struct {
	Mode Mode

	// ID is set only when Mode is ModeByID.
	ID string

	// Terms is the alias-expanded search term set; empty means no text filter.
	Terms []string
	// Brands is the trimmed brand filter list, capped at MaxBrandFilters.
	Brands []string

	PriceMin int64
	// PriceMax is nil when no upper bound was requested.
	PriceMax *int64

	Sort     string
	Page     int
	PageSize int

	// Seed drives the deterministic shuffle when Sort is SortNone; nil means
	// fall back to the stored ordering key.
	Seed *int64
}

// Build normalizes raw parameters into a Spec. It never fails: unknown sorts
// fall back to "none", out-of-range numbers are clamped, and non-numeric
// input takes the documented default.
func Build(p Params) Spec {
	// Special modes are mutually exclusive and checked before anything else,
	// random winning over id.
	if p.Random == "true" {
		return Spec{Mode: ModeRandom}
	}
	if p.ID != "" {
		return Spec{Mode: ModeByID, ID: p.ID}
	}

	spec := Spec{
		Mode:     ModeList,
		Sort:     normalizeSort(p.Sort),
		Page:     parsePage(p.Page),
		PageSize: PageSize,
	}

	if q := normalizeQuery(p.Q); q != "" {
		spec.Terms = ExpandAliases(q)
	}

	spec.Brands = parseBrands(p.Brands)

	if v, err := strconv.ParseInt(strings.TrimSpace(p.PriceMin), 10, 64); err == nil && v > 0 {
		spec.PriceMin = v
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(p.PriceMax), 10, 64); err == nil {
		if v > MaxPriceFilter {
			v = MaxPriceFilter
		}
		if v >= 0 {
			spec.PriceMax = &v
		}
	}

	if v, err := strconv.ParseInt(strings.TrimSpace(p.Seed), 10, 64); err == nil {
		spec.Seed = &v
	}

	return spec
}

// HasFilters reports whether the spec narrows the collection at all.
func (s Spec) HasFilters() bool {
	return len(s.Terms) > 0 || len(s.Brands) > 0 || s.PriceMin > 0 || s.PriceMax != nil
}

func normalizeQuery(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	if r := []rune(q); len(r) > MaxQueryLength {
		q = string(r[:MaxQueryLength])
	}
	return q
}

func normalizeSort(sort string) string {
	if _, ok := validSorts[sort]; ok {
		return sort
	}
	return SortNone
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	if page > MaxPage {
		return MaxPage
	}
	return page
}

func parseBrands(raw string) []string {
	if raw == "" {
		return nil
	}
	var brands []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		brands = append(brands, b)
		if len(brands) == MaxBrandFilters {
			break
		}
	}
	return brands
}
