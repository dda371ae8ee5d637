package detailcategories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simaset/simaset/internal/platform/httpx"
)

// RepositoryPort defines data access methods for detail categories.
type RepositoryPort interface {
	List(ctx context.Context, subcategoryID int64) ([]DetailCategory, error)
	Get(ctx context.Context, id int64) (*DetailCategory, error)
	GetByCode(ctx context.Context, subcategoryID int64, code string) (*DetailCategory, error)
	Create(ctx context.Context, d DetailCategory) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
	CountAssets(ctx context.Context, id int64) (int, error)
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectDetail = `
	SELECT d.id, d.subkategori_aset_id, d.kode_detail, d.nama_detail,
	       d.deskripsi, d.status, d.created_by, d.created_at, d.updated_at,
	       s.id, s.nama_subkategori, s.status, k.nama_kategori
	FROM detail_kategori_aset d
	JOIN subkategori_aset s ON s.id = d.subkategori_aset_id
	JOIN kategori_aset k ON k.id = s.kategori_aset_id`

// List returns detail categories; subcategoryID zero lists across all.
func (r *Repository) List(ctx context.Context, subcategoryID int64) ([]DetailCategory, error) {
	query := selectDetail + ` ORDER BY d.kode_detail`
	var rows pgx.Rows
	var err error
	if subcategoryID > 0 {
		query = selectDetail + ` WHERE d.subkategori_aset_id = $1 ORDER BY d.kode_detail`
		rows, err = r.pool.Query(ctx, query, subcategoryID)
	} else {
		rows, err = r.pool.Query(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []DetailCategory
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id int64) (*DetailCategory, error) {
	row := r.pool.QueryRow(ctx, selectDetail+` WHERE d.id = $1`, id)
	d, err := scanDetail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *Repository) GetByCode(ctx context.Context, subcategoryID int64, code string) (*DetailCategory, error) {
	row := r.pool.QueryRow(ctx, selectDetail+` WHERE d.subkategori_aset_id = $1 AND d.kode_detail = $2`, subcategoryID, code)
	d, err := scanDetail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func scanDetail(row pgx.Row) (DetailCategory, error) {
	var d DetailCategory
	var ref SubcategoryRef
	err := row.Scan(
		&d.ID, &d.SubcategoryID, &d.Code, &d.Name,
		&d.Description, &d.Status, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
		&ref.ID, &ref.Name, &ref.Status, &ref.CategoryName,
	)
	if err != nil {
		return DetailCategory{}, err
	}
	d.Subcategory = &ref
	return d, nil
}

func (r *Repository) Create(ctx context.Context, d DetailCategory) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO detail_kategori_aset (subkategori_aset_id, kode_detail, nama_detail, deskripsi, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, d.SubcategoryID, d.Code, d.Name, d.Description, d.Status, d.CreatedBy).Scan(&id)
	return id, err
}

func (r *Repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	query := "UPDATE detail_kategori_aset SET updated_at = NOW()"
	var args []any
	argPos := 1

	for _, col := range []string{"kode_detail", "nama_detail", "deskripsi", "status"} {
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM detail_kategori_aset WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *Repository) CountAssets(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM aset WHERE detail_kategori_aset_id = $1`, id).Scan(&n)
	return n, err
}
