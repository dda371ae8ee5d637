package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simaset/simaset/internal/platform/httpx"
)

// RepositoryPort defines data access methods for asset categories.
type RepositoryPort interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id int64) (*Category, error)
	GetByCode(ctx context.Context, code string) (*Category, error)
	Create(ctx context.Context, c Category) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
	CountSubcategories(ctx context.Context, id int64) (int, error)
	CountAssets(ctx context.Context, id int64) (int, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const categoryColumns = `id, kode_kategori, nama_kategori, deskripsi, status, created_by, created_at, updated_at`

func (r *Repository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+categoryColumns+` FROM kategori_aset ORDER BY kode_kategori`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.Status, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id int64) (*Category, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM kategori_aset WHERE id = $1`, id))
}

func (r *Repository) GetByCode(ctx context.Context, code string) (*Category, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM kategori_aset WHERE kode_kategori = $1`, code))
}

func (r *Repository) scanOne(row pgx.Row) (*Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.Status, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Create(ctx context.Context, c Category) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO kategori_aset (kode_kategori, nama_kategori, deskripsi, status, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, c.Code, c.Name, c.Description, c.Status, c.CreatedBy).Scan(&id)
	return id, err
}

func (r *Repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	query := "UPDATE kategori_aset SET updated_at = NOW()"
	var args []any
	argPos := 1

	for _, col := range []string{"kode_kategori", "nama_kategori", "deskripsi", "status"} {
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM kategori_aset WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *Repository) CountSubcategories(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subkategori_aset WHERE kategori_aset_id = $1`, id).Scan(&n)
	return n, err
}

func (r *Repository) CountAssets(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM aset WHERE kategori_aset_id = $1`, id).Scan(&n)
	return n, err
}
