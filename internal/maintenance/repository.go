package maintenance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simaset/simaset/internal/platform/httpx"
)

// RepositoryPort defines data access methods for maintenance records.
type RepositoryPort interface {
	List(ctx context.Context, assetID int64) ([]Record, error)
	Get(ctx context.Context, id int64) (*Record, error)
	Create(ctx context.Context, rec Record) (int64, error)
	Complete(ctx context.Context, id int64, condition string, completedAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectRecord = `
	SELECT r.id, r.aset_id, r.tanggal_pemeliharaan, r.jenis_pemeliharaan,
	       r.deskripsi, r.biaya, r.pelaksana, r.status, r.kondisi_setelah,
	       r.selesai_pada, r.created_by, r.created_at, r.updated_at,
	       a.kode_aset, a.nama_aset
	FROM riwayat_pemeliharaan r
	JOIN aset a ON a.id = r.aset_id`

// List returns maintenance history, newest first; assetID zero lists all.
func (r *Repository) List(ctx context.Context, assetID int64) ([]Record, error) {
	query := selectRecord + ` ORDER BY r.tanggal_pemeliharaan DESC, r.id DESC`
	var rows pgx.Rows
	var err error
	if assetID > 0 {
		query = selectRecord + ` WHERE r.aset_id = $1 ORDER BY r.tanggal_pemeliharaan DESC, r.id DESC`
		rows, err = r.pool.Query(ctx, query, assetID)
	} else {
		rows, err = r.pool.Query(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	return items, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id int64) (*Record, error) {
	row := r.pool.QueryRow(ctx, selectRecord+` WHERE r.id = $1`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID, &rec.AssetID, &rec.Date, &rec.Type,
		&rec.Description, &rec.Cost, &rec.PerformedBy, &rec.Status, &rec.ResultCondition,
		&rec.CompletedAt, &rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.AssetCode, &rec.AssetName,
	)
	return rec, err
}

func (r *Repository) Create(ctx context.Context, rec Record) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO riwayat_pemeliharaan (aset_id, tanggal_pemeliharaan, jenis_pemeliharaan, deskripsi, biaya, pelaksana, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, rec.AssetID, rec.Date, rec.Type, rec.Description, rec.Cost, rec.PerformedBy, rec.Status, rec.CreatedBy).Scan(&id)
	return id, err
}

func (r *Repository) Complete(ctx context.Context, id int64, condition string, completedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE riwayat_pemeliharaan
		SET status = 'selesai', kondisi_setelah = $1, selesai_pada = $2, updated_at = NOW()
		WHERE id = $3
	`, condition, completedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM riwayat_pemeliharaan WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
