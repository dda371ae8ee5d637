package subcategories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simaset/simaset/internal/platform/httpx"
)

// RepositoryPort defines data access methods for subcategories.
type RepositoryPort interface {
	List(ctx context.Context, categoryID int64) ([]Subcategory, error)
	Get(ctx context.Context, id int64) (*Subcategory, error)
	GetByCode(ctx context.Context, categoryID int64, code string) (*Subcategory, error)
	Create(ctx context.Context, s Subcategory) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
	CountDetails(ctx context.Context, id int64) (int, error)
	CountAssets(ctx context.Context, id int64) (int, error)
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectSubcategory = `
	SELECT s.id, s.kategori_aset_id, s.kode_subkategori, s.nama_subkategori,
	       s.deskripsi, s.status, s.created_by, s.created_at, s.updated_at,
	       k.id, k.nama_kategori, k.status
	FROM subkategori_aset s
	JOIN kategori_aset k ON k.id = s.kategori_aset_id`

// List returns subcategories; categoryID zero lists across all categories.
func (r *Repository) List(ctx context.Context, categoryID int64) ([]Subcategory, error) {
	query := selectSubcategory + ` ORDER BY s.kode_subkategori`
	var rows pgx.Rows
	var err error
	if categoryID > 0 {
		query = selectSubcategory + ` WHERE s.kategori_aset_id = $1 ORDER BY s.kode_subkategori`
		rows, err = r.pool.Query(ctx, query, categoryID)
	} else {
		rows, err = r.pool.Query(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Subcategory
	for rows.Next() {
		s, err := scanSubcategory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id int64) (*Subcategory, error) {
	row := r.pool.QueryRow(ctx, selectSubcategory+` WHERE s.id = $1`, id)
	s, err := scanSubcategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repository) GetByCode(ctx context.Context, categoryID int64, code string) (*Subcategory, error) {
	row := r.pool.QueryRow(ctx, selectSubcategory+` WHERE s.kategori_aset_id = $1 AND s.kode_subkategori = $2`, categoryID, code)
	s, err := scanSubcategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func scanSubcategory(row pgx.Row) (Subcategory, error) {
	var s Subcategory
	var ref CategoryRef
	err := row.Scan(
		&s.ID, &s.CategoryID, &s.Code, &s.Name,
		&s.Description, &s.Status, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
		&ref.ID, &ref.Name, &ref.Status,
	)
	if err != nil {
		return Subcategory{}, err
	}
	s.Category = &ref
	return s, nil
}

func (r *Repository) Create(ctx context.Context, s Subcategory) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO subkategori_aset (kategori_aset_id, kode_subkategori, nama_subkategori, deskripsi, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, s.CategoryID, s.Code, s.Name, s.Description, s.Status, s.CreatedBy).Scan(&id)
	return id, err
}

func (r *Repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	query := "UPDATE subkategori_aset SET updated_at = NOW()"
	var args []any
	argPos := 1

	for _, col := range []string{"kode_subkategori", "nama_subkategori", "deskripsi", "status"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subkategori_aset WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *Repository) CountDetails(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM detail_kategori_aset WHERE subkategori_aset_id = $1`, id).Scan(&n)
	return n, err
}

func (r *Repository) CountAssets(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM aset WHERE subkategori_aset_id = $1`, id).Scan(&n)
	return n, err
}
