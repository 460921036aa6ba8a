package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/paripprabhu/sneakopedia/internal/domain"
	"github.com/paripprabhu/sneakopedia/internal/query"
	"github.com/paripprabhu/sneakopedia/internal/repository"
	"github.com/paripprabhu/sneakopedia/pkg/database"
	apperrors "github.com/paripprabhu/sneakopedia/pkg/errors"
)

const sneakerColumns = "id, name, canonical_name, brand, base_price, currency, thumbnail_url, legacy_source_url, ordering_key, retailer_links"

// likeEscaper makes user text literal inside an ILIKE pattern. Escaping the
// backslash itself first keeps adversarial input from smuggling wildcards.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SneakerRepository implements repository.SneakerRepository using PostgreSQL.
type SneakerRepository struct {
	db database.DBTX
}

// NewSneakerRepository creates a new PostgreSQL-backed sneaker repository.
func NewSneakerRepository(db database.DBTX) *SneakerRepository {
	return &SneakerRepository{db: db}
}

// GetByID retrieves a sneaker by its ID.
func (r *SneakerRepository) GetByID(ctx context.Context, id string) (*domain.Sneaker, error) {
	q := fmt.Sprintf(`SELECT %s FROM sneakers WHERE id = $1`, sneakerColumns)

	row := r.db.QueryRow(ctx, q, id)
	s, err := scanSneaker(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get sneaker: %w", err)
	}
	return s, nil
}

// List returns the requested page of sneakers with the total match count.
func (r *SneakerRepository) List(ctx context.Context, filter repository.SneakerFilter, sort string, page, pageSize int) ([]domain.Sneaker, int, error) {
	whereClause, args, argIndex := buildWhere(filter)

	// count(*) OVER() folds the total into each row and saves a round trip on
	// the common case. Pages past the end return no rows, so the total is
	// recovered with a separate count below.
	q := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM sneakers
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		sneakerColumns, whereClause, orderClause(sort), argIndex, argIndex+1,
	)

	if pageSize <= 0 {
		pageSize = query.PageSize
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * pageSize
	}
	args = append(args, pageSize, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sneakers: %w", err)
	}
	defer rows.Close()

	var (
		sneakers   []domain.Sneaker
		totalCount int
	)

	for rows.Next() {
		s, total, err := scanSneakerWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sneaker row: %w", err)
		}
		totalCount = total
		sneakers = append(sneakers, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate sneaker rows: %w", err)
	}

	if sneakers == nil {
		sneakers = []domain.Sneaker{}
		total, err := r.Count(ctx, filter)
		if err != nil {
			return nil, 0, err
		}
		totalCount = total
	}

	return sneakers, totalCount, nil
}

// ListIDs returns matching ids in stable ordering-key order, up to limit.
func (r *SneakerRepository) ListIDs(ctx context.Context, filter repository.SneakerFilter, limit int) ([]string, error) {
	whereClause, args, argIndex := buildWhere(filter)

	q := fmt.Sprintf(`
		SELECT id FROM sneakers
		%s
		ORDER BY ordering_key ASC, id ASC
		LIMIT $%d`,
		whereClause, argIndex,
	)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sneaker ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan sneaker id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sneaker ids: %w", err)
	}

	return ids, nil
}

// GetByIDs fetches the given sneakers, preserving the order of ids.
func (r *SneakerRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Sneaker, error) {
	if len(ids) == 0 {
		return []domain.Sneaker{}, nil
	}

	q := fmt.Sprintf(`SELECT %s FROM sneakers WHERE id = ANY($1)`, sneakerColumns)

	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("get sneakers by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]domain.Sneaker, len(ids))
	for rows.Next() {
		s, err := scanSneaker(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sneaker row: %w", err)
		}
		byID[s.ID] = *s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sneaker rows: %w", err)
	}

	// The store returns rows in its own order; reassemble in request order.
	sneakers := make([]domain.Sneaker, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			sneakers = append(sneakers, s)
		}
	}
	return sneakers, nil
}

// Random samples one sneaker uniformly from the entire collection.
func (r *SneakerRepository) Random(ctx context.Context) (*domain.Sneaker, error) {
	q := fmt.Sprintf(`SELECT %s FROM sneakers ORDER BY random() LIMIT 1`, sneakerColumns)

	row := r.db.QueryRow(ctx, q)
	s, err := scanSneaker(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("random sneaker: %w", err)
	}
	return s, nil
}

// Count returns the number of sneakers matching the filter.
func (r *SneakerRepository) Count(ctx context.Context, filter repository.SneakerFilter) (int, error) {
	whereClause, args, _ := buildWhere(filter)

	q := fmt.Sprintf(`SELECT count(*) FROM sneakers %s`, whereClause)

	var count int
	if err := r.db.QueryRow(ctx, q, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sneakers: %w", err)
	}
	return count, nil
}

// Brands returns the distinct non-empty brand values in the catalog, sorted.
func (r *SneakerRepository) Brands(ctx context.Context) ([]string, error) {
	q := `SELECT DISTINCT brand FROM sneakers WHERE brand <> '' ORDER BY brand ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var brands []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brands: %w", err)
	}

	if brands == nil {
		brands = []string{}
	}
	return brands, nil
}

// buildWhere translates a filter into a WHERE clause with positional args.
// Every piece of user text goes through likeEscaper so ILIKE wildcards in
// the input match literally.
func buildWhere(filter repository.SneakerFilter) (string, []any, int) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if len(filter.Terms) > 0 {
		var termClauses []string
		for _, term := range filter.Terms {
			termClauses = append(termClauses,
				fmt.Sprintf("(name ILIKE $%d OR brand ILIKE $%d)", argIndex, argIndex))
			args = append(args, likePattern(term))
			argIndex++
		}
		conditions = append(conditions, "("+strings.Join(termClauses, " OR ")+")")
	}

	if len(filter.Brands) > 0 {
		var brandClauses []string
		for _, brand := range filter.Brands {
			brandClauses = append(brandClauses,
				fmt.Sprintf("(brand ILIKE $%d OR name ILIKE $%d)", argIndex, argIndex))
			args = append(args, likePattern(brand))
			argIndex++
		}
		conditions = append(conditions, "("+strings.Join(brandClauses, " OR ")+")")
	}

	if filter.PriceMin > 0 {
		conditions = append(conditions, fmt.Sprintf("base_price >= $%d", argIndex))
		args = append(args, filter.PriceMin)
		argIndex++
	}

	if filter.PriceMax != nil {
		conditions = append(conditions, fmt.Sprintf("base_price <= $%d", argIndex))
		args = append(args, *filter.PriceMax)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	return whereClause, args, argIndex
}

func likePattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}

// orderClause maps a sort key to a deterministic ORDER BY. Ties always break
// on id so the ordering is total and pagination never duplicates rows.
func orderClause(sort string) string {
	switch sort {
	case query.SortPriceAsc:
		return "base_price ASC, id ASC"
	case query.SortPriceDesc:
		return "base_price DESC, id ASC"
	case query.SortNameAsc:
		return "name ASC, id ASC"
	case query.SortNameDesc:
		return "name DESC, id ASC"
	default:
		return "ordering_key ASC, id ASC"
	}
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSneaker(row rowScanner) (*domain.Sneaker, error) {
	var (
		s         domain.Sneaker
		linksJSON []byte
	)

	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.CanonicalName,
		&s.Brand,
		&s.BasePrice,
		&s.Currency,
		&s.ThumbnailURL,
		&s.LegacySourceURL,
		&s.OrderingKey,
		&linksJSON,
	); err != nil {
		return nil, err
	}

	if err := unmarshalLinks(&s, linksJSON); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSneakerWithTotal(rows pgx.Rows) (*domain.Sneaker, int, error) {
	var (
		s         domain.Sneaker
		linksJSON []byte
		total     int
	)

	if err := rows.Scan(
		&s.ID,
		&s.Name,
		&s.CanonicalName,
		&s.Brand,
		&s.BasePrice,
		&s.Currency,
		&s.ThumbnailURL,
		&s.LegacySourceURL,
		&s.OrderingKey,
		&linksJSON,
		&total,
	); err != nil {
		return nil, 0, err
	}

	if err := unmarshalLinks(&s, linksJSON); err != nil {
		return nil, 0, err
	}
	return &s, total, nil
}

func unmarshalLinks(s *domain.Sneaker, linksJSON []byte) error {
	if len(linksJSON) > 0 {
		if err := json.Unmarshal(linksJSON, &s.RetailerLinks); err != nil {
			return fmt.Errorf("unmarshal retailer links: %w", err)
		}
	}
	if s.RetailerLinks == nil {
		s.RetailerLinks = []domain.RetailerLink{}
	}
	return nil
}
