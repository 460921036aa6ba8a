package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/paripprabhu/sneakopedia/internal/domain"
	"github.com/paripprabhu/sneakopedia/internal/query"
	"github.com/paripprabhu/sneakopedia/internal/repository"
	"github.com/paripprabhu/sneakopedia/internal/resolve"
	apperrors "github.com/paripprabhu/sneakopedia/pkg/errors"
	"github.com/paripprabhu/sneakopedia/pkg/shuffle"
)

// DefaultQueryTimeout bounds every store operation so a slow or unreachable
// store cannot hold a request handler indefinitely.
const DefaultQueryTimeout = 8 * time.Second

// shuffleWindow is how many ids the seeded-shuffle path fetches: enough to
// cover every reachable page.
const shuffleWindow = query.MaxPage * query.PageSize

// Pagination describes the full filtered set a page was cut from.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

// ListResult is one page of catalog results with its pagination envelope.
type ListResult struct {
	Data       []domain.Sneaker `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// CatalogService implements the catalog query and retailer resolution
// operations. It is stateless per request and safe for concurrent use.
type CatalogService struct {
	repo         repository.SneakerRepository
	cache        *QueryCache
	logger       *slog.Logger
	queryTimeout time.Duration
}

// NewCatalogService creates a new catalog service. cache may be nil to run
// without query caching.
func NewCatalogService(repo repository.SneakerRepository, cache *QueryCache, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:         repo,
		cache:        cache,
		logger:       logger,
		queryTimeout: DefaultQueryTimeout,
	}
}

// WithQueryTimeout overrides the per-operation store timeout.
func (s *CatalogService) WithQueryTimeout(d time.Duration) *CatalogService {
	if d > 0 {
		s.queryTimeout = d
	}
	return s
}

// Search runs the general filter/sort/paginate pipeline for a list-mode spec.
// An empty page is a normal outcome; only a store failure returns an error.
func (s *CatalogService) Search(ctx context.Context, spec query.Spec) (*ListResult, error) {
	key := cacheKey(spec)

	var cached ListResult
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	var (
		result *ListResult
		err    error
	)
	if spec.Sort == query.SortNone && spec.Seed != nil {
		result, err = s.searchSeeded(ctx, spec)
	} else {
		result, err = s.searchStored(ctx, spec)
	}
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, result)
	return result, nil
}

// searchStored delegates ordering to the store: explicit sort keys, or the
// stored ordering key when no seed was supplied.
func (s *CatalogService) searchStored(ctx context.Context, spec query.Spec) (*ListResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	sneakers, total, err := s.repo.List(ctx, specFilter(spec), spec.Sort, spec.Page, spec.PageSize)
	if err != nil {
		return nil, storeFailure(fmt.Errorf("list sneakers: %w", err))
	}

	return s.page(sneakers, spec, total), nil
}

// searchSeeded implements seeded ordering on top of a store that has no
// native seeded sort: fetch the matching ids in stable order, permute them
// deterministically, then fetch just the requested page of records.
func (s *CatalogService) searchSeeded(ctx context.Context, spec query.Spec) (*ListResult, error) {
	filter := specFilter(spec)

	idsCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	ids, err := s.repo.ListIDs(idsCtx, filter, shuffleWindow)
	if err != nil {
		return nil, storeFailure(fmt.Errorf("list sneaker ids: %w", err))
	}

	countCtx, cancelCount := context.WithTimeout(ctx, s.queryTimeout)
	defer cancelCount()

	total, err := s.repo.Count(countCtx, filter)
	if err != nil {
		return nil, storeFailure(fmt.Errorf("count sneakers: %w", err))
	}

	shuffle.Slice(ids, *spec.Seed)

	start := (spec.Page - 1) * spec.PageSize
	end := start + spec.PageSize
	if start > len(ids) {
		start = len(ids)
	}
	if end > len(ids) {
		end = len(ids)
	}

	fetchCtx, cancelFetch := context.WithTimeout(ctx, s.queryTimeout)
	defer cancelFetch()

	sneakers, err := s.repo.GetByIDs(fetchCtx, ids[start:end])
	if err != nil {
		return nil, storeFailure(fmt.Errorf("fetch sneaker page: %w", err))
	}

	return s.page(sneakers, spec, total), nil
}

func (s *CatalogService) page(sneakers []domain.Sneaker, spec query.Spec, total int) *ListResult {
	if sneakers == nil {
		sneakers = []domain.Sneaker{}
	}
	return &ListResult{
		Data: sneakers,
		Pagination: Pagination{
			CurrentPage: spec.Page,
			TotalPages:  (total + spec.PageSize - 1) / spec.PageSize,
			TotalItems:  total,
		},
	}
}

// LookupByID returns the sneaker with the given id as a single-element slice,
// or an empty slice if no such record exists. A missing record is not an
// error; only a store failure is.
func (s *CatalogService) LookupByID(ctx context.Context, id string) ([]domain.Sneaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	sneaker, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.Sneaker{}, nil
		}
		return nil, storeFailure(fmt.Errorf("get sneaker: %w", err))
	}
	return []domain.Sneaker{*sneaker}, nil
}

// RandomSneaker samples one sneaker uniformly from the entire collection,
// ignoring all filters. An empty catalog yields an empty slice.
func (s *CatalogService) RandomSneaker(ctx context.Context) ([]domain.Sneaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	sneaker, err := s.repo.Random(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.Sneaker{}, nil
		}
		return nil, storeFailure(fmt.Errorf("random sneaker: %w", err))
	}
	return []domain.Sneaker{*sneaker}, nil
}

// ResolveRetailers loads one sneaker and expands it into its ordered retailer
// listing.
func (s *CatalogService) ResolveRetailers(ctx context.Context, id string) (*resolve.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	sneaker, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, storeFailure(fmt.Errorf("get sneaker for resolution: %w", err))
	}

	result := resolve.Resolve(sneaker)
	return &result, nil
}

// Brands returns the distinct brand values in the catalog.
func (s *CatalogService) Brands(ctx context.Context) ([]string, error) {
	key := "brands"

	var cached []string
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	brands, err := s.repo.Brands(ctx)
	if err != nil {
		return nil, storeFailure(fmt.Errorf("list brands: %w", err))
	}

	s.cache.Set(ctx, key, brands)
	return brands, nil
}

// InvalidateCache drops all cached query results. Called when the ingestion
// pipeline reports a catalog change.
func (s *CatalogService) InvalidateCache(ctx context.Context) {
	s.cache.Invalidate(ctx)
}

func specFilter(spec query.Spec) repository.SneakerFilter {
	return repository.SneakerFilter{
		Terms:    spec.Terms,
		Brands:   spec.Brands,
		PriceMin: spec.PriceMin,
		PriceMax: spec.PriceMax,
	}
}

// storeFailure classifies a store error as a dependency failure so callers
// can tell it apart from "zero results". Errors that already carry a status
// pass through unchanged.
func storeFailure(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.ServiceUnavailable(err)
}
