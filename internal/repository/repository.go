package repository

import (
	"context"

	"github.com/paripprabhu/sneakopedia/internal/domain"
)

// SneakerFilter defines the filter criteria for listing sneakers. Terms and
// Brands hold raw text; implementations must escape them so pattern
// metacharacters match literally.
type SneakerFilter struct {
	// Terms is the alias-expanded search term set; a sneaker matches when any
	// term is a case-insensitive substring of its name or brand.
	Terms []string
	// Brands matches the same way against brand or name; any entry matching
	// is enough.
	Brands []string
	// PriceMin and PriceMax bound the base price inclusively. A nil PriceMax
	// means no upper bound.
	PriceMin int64
	PriceMax *int64
}

// SneakerRepository defines the read operations the catalog core needs from
// the store. The catalog is populated by the ingestion pipeline; nothing here
// mutates it.
type SneakerRepository interface {
	// GetByID retrieves a single sneaker by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Sneaker, error)

	// List returns the requested page of sneakers matching the filter in the
	// given sort order, along with the total match count.
	List(ctx context.Context, filter SneakerFilter, sort string, page, pageSize int) ([]domain.Sneaker, int, error)

	// ListIDs returns the ids of sneakers matching the filter in stable
	// ordering-key order, up to limit. Used to drive the seeded shuffle.
	ListIDs(ctx context.Context, filter SneakerFilter, limit int) ([]string, error)

	// GetByIDs fetches the given sneakers, preserving the order of ids.
	// Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]domain.Sneaker, error)

	// Random samples one sneaker uniformly from the entire collection.
	Random(ctx context.Context) (*domain.Sneaker, error)

	// Count returns the number of sneakers matching the filter.
	Count(ctx context.Context, filter SneakerFilter) (int, error)

	// Brands returns the distinct brand values in the catalog, sorted.
	Brands(ctx context.Context) ([]string, error)
}
