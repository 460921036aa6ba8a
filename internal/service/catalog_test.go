package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/paripprabhu/sneakopedia/internal/domain"
	"github.com/paripprabhu/sneakopedia/internal/query"
	"github.com/paripprabhu/sneakopedia/internal/repository"
	"github.com/paripprabhu/sneakopedia/internal/resolve"
	apperrors "github.com/paripprabhu/sneakopedia/pkg/errors"
	"github.com/paripprabhu/sneakopedia/pkg/shuffle"
)

// --- Mock Repository ---

type mockSneakerRepository struct {
	mock.Mock
}

func (m *mockSneakerRepository) GetByID(ctx context.Context, id string) (*domain.Sneaker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sneaker), args.Error(1)
}

func (m *mockSneakerRepository) List(ctx context.Context, filter repository.SneakerFilter, sort string, page, pageSize int) ([]domain.Sneaker, int, error) {
	args := m.Called(ctx, filter, sort, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Sneaker), args.Int(1), args.Error(2)
}

func (m *mockSneakerRepository) ListIDs(ctx context.Context, filter repository.SneakerFilter, limit int) ([]string, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockSneakerRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Sneaker, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sneaker), args.Error(1)
}

func (m *mockSneakerRepository) Random(ctx context.Context) (*domain.Sneaker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sneaker), args.Error(1)
}

func (m *mockSneakerRepository) Count(ctx context.Context, filter repository.SneakerFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *mockSneakerRepository) Brands(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(repo *mockSneakerRepository) *CatalogService {
	return NewCatalogService(repo, nil, newTestLogger())
}

func sneaker(id, name, brand string, price int64) domain.Sneaker {
	return domain.Sneaker{
		ID:        id,
		Name:      name,
		Brand:     brand,
		BasePrice: price,
		Currency:  "INR",
	}
}

// --- Tests ---

func TestSearch_StoredOrdering(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	spec := query.Build(query.Params{Q: "dunk", Sort: "price-asc", Page: "2"})

	expected := []domain.Sneaker{
		sneaker("s_1", "Nike Dunk Low Panda", "Nike", 8500),
		sneaker("s_2", "Nike SB Dunk High", "Nike", 11000),
	}

	repo.On("List", mock.Anything,
		repository.SneakerFilter{Terms: []string{"dunk"}},
		query.SortPriceAsc, 2, query.PageSize,
	).Return(expected, 50, nil)

	result, err := svc.Search(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, expected, result.Data)
	assert.Equal(t, 2, result.Pagination.CurrentPage)
	assert.Equal(t, 50, result.Pagination.TotalItems)
	assert.Equal(t, 3, result.Pagination.TotalPages) // ceil(50/24)
	repo.AssertExpectations(t)
}

func TestSearch_ZeroMatches(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	spec := query.Build(query.Params{Q: "nonexistent shoe"})

	repo.On("List", mock.Anything, mock.Anything, query.SortNone, 1, query.PageSize).
		Return([]domain.Sneaker{}, 0, nil)

	result, err := svc.Search(context.Background(), spec)
	require.NoError(t, err, "zero matches is a normal outcome, not a failure")
	assert.Equal(t, []domain.Sneaker{}, result.Data)
	assert.Equal(t, 1, result.Pagination.CurrentPage)
	assert.Equal(t, 0, result.Pagination.TotalItems)
	assert.Equal(t, 0, result.Pagination.TotalPages)
}

func TestSearch_PagePastEnd(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	spec := query.Build(query.Params{Page: "300"})

	repo.On("List", mock.Anything, mock.Anything, query.SortNone, 300, query.PageSize).
		Return([]domain.Sneaker{}, 100, nil)

	result, err := svc.Search(context.Background(), spec)
	require.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.Equal(t, 100, result.Pagination.TotalItems)
	assert.Equal(t, 5, result.Pagination.TotalPages)
}

func TestSearch_StoreFailure(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	spec := query.Build(query.Params{Q: "aj1"})

	repo.On("List", mock.Anything, mock.Anything, query.SortNone, 1, query.PageSize).
		Return(nil, 0, errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))

	result, err := svc.Search(context.Background(), spec)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail,
		"store failure must be classified distinctly from zero results")
}

func TestSearch_Seeded(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	spec := query.Build(query.Params{Seed: "42"})
	require.NotNil(t, spec.Seed)

	ids := []string{"s_1", "s_2", "s_3", "s_4", "s_5"}

	// The service permutes the stable id order with the seed, then fetches
	// the page window in permuted order.
	permuted := append([]string{}, ids...)
	shuffle.Slice(permuted, 42)

	var page []domain.Sneaker
	for _, id := range permuted {
		page = append(page, sneaker(id, "Shoe "+id, "Nike", 9999))
	}

	repo.On("ListIDs", mock.Anything, repository.SneakerFilter{}, query.MaxPage*query.PageSize).
		Return(append([]string{}, ids...), nil)
	repo.On("Count", mock.Anything, repository.SneakerFilter{}).Return(5, nil)
	repo.On("GetByIDs", mock.Anything, permuted).Return(page, nil)

	result, err := svc.Search(context.Background(), spec)
	require.NoError(t, err)
	require.Len(t, result.Data, 5)
	for i, id := range permuted {
		assert.Equal(t, id, result.Data[i].ID)
	}
	assert.Equal(t, 5, result.Pagination.TotalItems)
	assert.Equal(t, 1, result.Pagination.TotalPages)
	repo.AssertExpectations(t)
}

func TestSearch_SeededExplicitSortIgnoresSeed(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	// A seed combined with an explicit sort takes the stored-ordering path.
	spec := query.Build(query.Params{Seed: "42", Sort: "name-desc"})

	repo.On("List", mock.Anything, mock.Anything, query.SortNameDesc, 1, query.PageSize).
		Return([]domain.Sneaker{}, 0, nil)

	_, err := svc.Search(context.Background(), spec)
	require.NoError(t, err)
	repo.AssertNotCalled(t, "ListIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearch_SeededPagePastWindow(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	spec := query.Build(query.Params{Seed: "7", Page: "3"})

	// Only 5 matching ids; page 3 starts past them.
	repo.On("ListIDs", mock.Anything, mock.Anything, mock.Anything).
		Return([]string{"s_1", "s_2", "s_3", "s_4", "s_5"}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(5, nil)
	repo.On("GetByIDs", mock.Anything, []string{}).Return([]domain.Sneaker{}, nil)

	result, err := svc.Search(context.Background(), spec)
	require.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.Equal(t, 5, result.Pagination.TotalItems)
}

func TestLookupByID_Found(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	s := sneaker("s_1", "Air Jordan 1", "Nike", 16995)
	repo.On("GetByID", mock.Anything, "s_1").Return(&s, nil)

	result, err := svc.LookupByID(context.Background(), "s_1")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "s_1", result[0].ID)
}

func TestLookupByID_MissingIsEmptyNotError(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	result, err := svc.LookupByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, []domain.Sneaker{}, result)
}

func TestLookupByID_StoreFailure(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	repo.On("GetByID", mock.Anything, "s_1").Return(nil, errors.New("i/o timeout"))

	result, err := svc.LookupByID(context.Background(), "s_1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

func TestRandomSneaker_Success(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	s := sneaker("s_9", "Yeezy Boost 350", "Adidas", 22999)
	repo.On("Random", mock.Anything).Return(&s, nil)

	result, err := svc.RandomSneaker(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "s_9", result[0].ID)
}

func TestRandomSneaker_EmptyCatalog(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	repo.On("Random", mock.Anything).Return(nil, apperrors.ErrNotFound)

	result, err := svc.RandomSneaker(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestResolveRetailers_Success(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	s := sneaker("s_1", "Air Jordan 1 Chicago", "Nike", 16995)
	repo.On("GetByID", mock.Anything, "s_1").Return(&s, nil)

	result, err := svc.ResolveRetailers(context.Background(), "s_1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Entries)
	// Resale marketplaces close the list.
	assert.Equal(t, resolve.RetailerGOAT, result.Entries[len(result.Entries)-1].Name)
}

func TestResolveRetailers_NotFound(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	result, err := svc.ResolveRetailers(context.Background(), "missing")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBrands_Success(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	repo.On("Brands", mock.Anything).Return([]string{"Adidas", "Nike"}, nil)

	brands, err := svc.Brands(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Adidas", "Nike"}, brands)
}

func TestBrands_StoreFailure(t *testing.T) {
	repo := new(mockSneakerRepository)
	svc := newTestService(repo)

	repo.On("Brands", mock.Anything).Return(nil, errors.New("connection reset"))

	brands, err := svc.Brands(context.Background())
	assert.Nil(t, brands)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}
