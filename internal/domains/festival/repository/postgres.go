package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"festivals-backend/internal/domains/festival"
	"festivals-backend/internal/infrastructure/database"
	"festivals-backend/pkg/cache"
)

const (
	cacheKeyPrefix = "festival:"
	cacheTTL       = 5 * time.Minute

	recordColumns = "id, doc, created_at, updated_at"
)

// postgresRepository implements festival.Repository on a single JSONB
// document table, mirroring the document-store surface the domain
// expects (find/findById/create/replace/patch/delete/count/deleteAll).
type postgresRepository struct {
	pool  database.PgxPool
	cache cache.Cache
}

// NewPostgresRepository creates the festival repository. The cache is a
// by-id read-through; cache failures never fail a request.
func NewPostgresRepository(pool database.PgxPool, c cache.Cache) festival.Repository {
	return &postgresRepository{pool: pool, cache: c}
}

// buildFilter compiles the sanitized filter into WHERE predicates over
// the JSONB document.
func buildFilter(f festival.Filter) (string, []any) {
	var conds []string
	var args []any

	if f.HasBookmark != nil {
		args = append(args, *f.HasBookmark)
		conds = append(conds, fmt.Sprintf("(doc->>'hasBookmark')::boolean = $%d", len(args)))
	}
	if f.Organizer != nil {
		args = append(args, *f.Organizer)
		conds = append(conds, fmt.Sprintf("doc->>'organizer' = $%d", len(args)))
	}
	if f.CountryCode != nil {
		args = append(args, *f.CountryCode)
		conds = append(conds, fmt.Sprintf("doc->>'countryCode' = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanRecord(row pgx.Row) (*festival.Record, error) {
	var rec festival.Record
	var raw []byte

	if err := row.Scan(&rec.ID, &raw, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &rec.Doc); err != nil {
		return nil, fmt.Errorf("decode festival document: %w", err)
	}
	return &rec, nil
}

func marshalDoc(doc map[string]any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode festival document: %w", err)
	}
	return string(data), nil
}

func (r *postgresRepository) Find(ctx context.Context, f festival.Filter, limit, offset int) ([]*festival.Record, error) {
	where, args := buildFilter(f)

	query := "SELECT " + recordColumns + " FROM festivals" + where + " ORDER BY created_at, id"
	if limit > 0 {
		args = append(args, limit, offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query festivals: %w", err)
	}
	defer rows.Close()

	var records []*festival.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan festival: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate festivals: %w", err)
	}

	return records, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*festival.Record, error) {
	key := cacheKeyPrefix + id.String()

	var cached festival.Record
	if found, err := r.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	row := r.pool.QueryRow(ctx, "SELECT "+recordColumns+" FROM festivals WHERE id = $1", id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, festival.ErrNotFound
		}
		return nil, fmt.Errorf("get festival by id: %w", err)
	}

	_ = r.cache.Set(ctx, key, rec, cacheTTL)
	return rec, nil
}

func (r *postgresRepository) Create(ctx context.Context, doc map[string]any) (*festival.Record, error) {
	payload, err := marshalDoc(doc)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx,
		"INSERT INTO festivals (doc) VALUES ($1::jsonb) RETURNING "+recordColumns, payload)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("create festival: %w", err)
	}
	return rec, nil
}

func (r *postgresRepository) Replace(ctx context.Context, id uuid.UUID, doc map[string]any) (*festival.Record, error) {
	payload, err := marshalDoc(doc)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx,
		"UPDATE festivals SET doc = $2::jsonb, updated_at = now() WHERE id = $1 RETURNING "+recordColumns,
		id, payload)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, festival.ErrNotFound
		}
		return nil, fmt.Errorf("replace festival: %w", err)
	}

	_ = r.cache.Delete(ctx, cacheKeyPrefix+id.String())
	return rec, nil
}

// Patch merges the provided fields into the stored document server-side.
// No allow-list: this is the raw partial merge, as opposed to the
// allow-list replace performed by Replace.
func (r *postgresRepository) Patch(ctx context.Context, id uuid.UUID, fields map[string]any) (*festival.Record, error) {
	payload, err := marshalDoc(fields)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx,
		"UPDATE festivals SET doc = doc || $2::jsonb, updated_at = now() WHERE id = $1 RETURNING "+recordColumns,
		id, payload)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, festival.ErrNotFound
		}
		return nil, fmt.Errorf("patch festival: %w", err)
	}

	_ = r.cache.Delete(ctx, cacheKeyPrefix+id.String())
	return rec, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM festivals WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete festival: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return festival.ErrNotFound
	}

	_ = r.cache.Delete(ctx, cacheKeyPrefix+id.String())
	return nil
}

func (r *postgresRepository) Count(ctx context.Context, f festival.Filter) (int64, error) {
	where, args := buildFilter(f)

	var total int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM festivals"+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count festivals: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM festivals"); err != nil {
		return fmt.Errorf("delete all festivals: %w", err)
	}

	_ = r.cache.DeletePattern(ctx, cacheKeyPrefix+"*")
	return nil
}
