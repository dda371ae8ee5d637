package custodians

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simaset/simaset/internal/platform/httpx"
)

// RepositoryPort defines data access methods for custodians.
type RepositoryPort interface {
	List(ctx context.Context) ([]Custodian, error)
	Get(ctx context.Context, id int64) (*Custodian, error)
	GetByNIP(ctx context.Context, nip string) (*Custodian, error)
	Create(ctx context.Context, c Custodian) (int64, error)
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

const selectCustodian = `
	SELECT p.id, p.nip, p.nama, p.jabatan, p.unit_kerja, p.telepon, p.email,
	       p.status, p.created_by, p.created_at, p.updated_at,
	       (SELECT COUNT(*) FROM aset a WHERE a.penanggung_jawab_id = p.id)
	FROM penanggung_jawab_aset p`

func (r *Repository) List(ctx context.Context) ([]Custodian, error) {
	rows, err := r.pool.Query(ctx, selectCustodian+` ORDER BY p.nama`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Custodian
	for rows.Next() {
		c, err := scanCustodian(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id int64) (*Custodian, error) {
	row := r.pool.QueryRow(ctx, selectCustodian+` WHERE p.id = $1`, id)
	c, err := scanCustodian(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) GetByNIP(ctx context.Context, nip string) (*Custodian, error) {
	row := r.pool.QueryRow(ctx, selectCustodian+` WHERE p.nip = $1`, nip)
	c, err := scanCustodian(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func scanCustodian(row pgx.Row) (Custodian, error) {
	var c Custodian
	err := row.Scan(
		&c.ID, &c.NIP, &c.Name, &c.Position, &c.WorkUnit, &c.Phone, &c.Email,
		&c.Status, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		&c.AssetCount,
	)
	return c, err
}

func (r *Repository) Create(ctx context.Context, c Custodian) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO penanggung_jawab_aset (nip, nama, jabatan, unit_kerja, telepon, email, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, c.NIP, c.Name, c.Position, c.WorkUnit, c.Phone, c.Email, c.Status, c.CreatedBy).Scan(&id)
	return id, err
}

func (r *Repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	query := "UPDATE penanggung_jawab_aset SET updated_at = NOW()"
	var args []any
	argPos := 1

	for _, col := range []string{"nip", "nama", "jabatan", "unit_kerja", "telepon", "email", "status"} {
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM penanggung_jawab_aset WHERE id = $1`, id)
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
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM aset WHERE penanggung_jawab_id = $1`, id).Scan(&n)
	return n, err
}
