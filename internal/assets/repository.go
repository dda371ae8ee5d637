package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simaset/simaset/internal/platform/httpx"
	"github.com/simaset/simaset/internal/shared"
)

// RepositoryPort defines data access methods for assets.
type RepositoryPort interface {
	List(ctx context.Context, filter ListFilter, p shared.Pagination) ([]Asset, int, error)
	Get(ctx context.Context, id int64) (*Asset, error)
	GetByCode(ctx context.Context, code string) (*Asset, error)
	Create(ctx context.Context, a Asset) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
	SetCondition(ctx context.Context, id int64, condition string) error
	SetStatus(ctx context.Context, id int64, status string, disposed bool) error
	CountMaintenance(ctx context.Context, id int64) (int, error)
	Stats(ctx context.Context) (*Statistics, error)
	RecalculateBookValues(ctx context.Context) (int64, error)
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectAsset = `
	SELECT a.id, a.kode_aset, a.nama_aset, a.kategori_aset_id, a.subkategori_aset_id,
	       a.detail_kategori_aset_id, a.penanggung_jawab_id, a.status, a.kondisi_fisik,
	       a.tanggal_perolehan, a.nilai_perolehan, a.nilai_residu, a.umur_manfaat_bulan,
	       a.nilai_buku, a.lokasi, a.deskripsi, a.created_by, a.created_at, a.updated_at,
	       a.dihapus_pada, k.nama_kategori, s.nama_subkategori, p.nama
	FROM aset a
	JOIN kategori_aset k ON k.id = a.kategori_aset_id
	JOIN subkategori_aset s ON s.id = a.subkategori_aset_id
	LEFT JOIN penanggung_jawab_aset p ON p.id = a.penanggung_jawab_id`

// buildWhere translates the filter into a WHERE clause. The search term
// matches code, name and location with ILIKE.
func buildWhere(filter ListFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != "" {
		add("a.status = $%d", filter.Status)
	}
	if filter.Condition != "" {
		add("a.kondisi_fisik = $%d", filter.Condition)
	}
	if filter.CategoryID > 0 {
		add("a.kategori_aset_id = $%d", filter.CategoryID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern)
		n := len(args)
		conds = append(conds, fmt.Sprintf("(a.kode_aset ILIKE $%d OR a.nama_aset ILIKE $%d OR COALESCE(a.lokasi, '') ILIKE $%d)", n, n, n))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns one page of assets plus the total row count for the filter.
func (r *Repository) List(ctx context.Context, filter ListFilter, p shared.Pagination) ([]Asset, int, error) {
	where, args := buildWhere(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM aset a` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := selectAsset + where + fmt.Sprintf(" ORDER BY a.kode_aset LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, p.PerPage, p.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id int64) (*Asset, error) {
	row := r.pool.QueryRow(ctx, selectAsset+` WHERE a.id = $1`, id)
	a, err := scanAsset(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetByCode(ctx context.Context, code string) (*Asset, error) {
	row := r.pool.QueryRow(ctx, selectAsset+` WHERE a.kode_aset = $1`, code)
	a, err := scanAsset(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func scanAsset(row pgx.Row) (Asset, error) {
	var a Asset
	err := row.Scan(
		&a.ID, &a.Code, &a.Name, &a.CategoryID, &a.SubcategoryID,
		&a.DetailCategoryID, &a.CustodianID, &a.Status, &a.Condition,
		&a.AcquisitionDate, &a.AcquisitionValue, &a.ResidualValue, &a.UsefulLifeMonths,
		&a.BookValue, &a.Location, &a.Description, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
		&a.DisposedAt, &a.CategoryName, &a.SubcategoryName, &a.CustodianName,
	)
	return a, err
}

func (r *Repository) Create(ctx context.Context, a Asset) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO aset (kode_aset, nama_aset, kategori_aset_id, subkategori_aset_id,
			detail_kategori_aset_id, penanggung_jawab_id, status, kondisi_fisik,
			tanggal_perolehan, nilai_perolehan, nilai_residu, umur_manfaat_bulan,
			nilai_buku, lokasi, deskripsi, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`, a.Code, a.Name, a.CategoryID, a.SubcategoryID,
		a.DetailCategoryID, a.CustodianID, a.Status, a.Condition,
		a.AcquisitionDate, a.AcquisitionValue, a.ResidualValue, a.UsefulLifeMonths,
		a.BookValue, a.Location, a.Description, a.CreatedBy).Scan(&id)
	return id, err
}

func (r *Repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	query := "UPDATE aset SET updated_at = NOW()"
	var args []any
	argPos := 1

	cols := []string{
		"kode_aset", "nama_aset", "kategori_aset_id", "subkategori_aset_id",
		"detail_kategori_aset_id", "penanggung_jawab_id", "status", "kondisi_fisik",
		"tanggal_perolehan", "nilai_perolehan", "nilai_residu", "umur_manfaat_bulan",
		"nilai_buku", "lokasi", "deskripsi",
	}
	for _, col := range cols {
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM aset WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// SetCondition updates only the physical condition, used when maintenance
// completes.
func (r *Repository) SetCondition(ctx context.Context, id int64, condition string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE aset SET kondisi_fisik = $1, updated_at = NOW() WHERE id = $2`, condition, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// SetStatus updates the lifecycle status. When disposed is true the
// dihapus_pada timestamp is stamped as well.
func (r *Repository) SetStatus(ctx context.Context, id int64, status string, disposed bool) error {
	var tagQuery string
	if disposed {
		tagQuery = `UPDATE aset SET status = $1, dihapus_pada = NOW(), updated_at = NOW() WHERE id = $2`
	} else {
		tagQuery = `UPDATE aset SET status = $1, updated_at = NOW() WHERE id = $2`
	}
	tag, err := r.pool.Exec(ctx, tagQuery, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *Repository) CountMaintenance(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM riwayat_pemeliharaan WHERE aset_id = $1`, id).Scan(&n)
	return n, err
}

// Stats aggregates the dashboard summary in one round trip.
func (r *Repository) Stats(ctx context.Context) (*Statistics, error) {
	var s Statistics
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'aktif'),
		       COUNT(*) FILTER (WHERE status = 'tidak_aktif'),
		       COUNT(*) FILTER (WHERE kondisi_fisik = 'baik'),
		       COUNT(*) FILTER (WHERE kondisi_fisik = 'rusak_ringan'),
		       COUNT(*) FILTER (WHERE kondisi_fisik = 'rusak_berat'),
		       COALESCE(SUM(nilai_perolehan), 0),
		       COALESCE(SUM(nilai_buku), 0)
		FROM aset
	`).Scan(&s.Total, &s.Active, &s.Inactive,
		&s.ConditionGood, &s.ConditionLight, &s.ConditionHeavy,
		&s.TotalValue, &s.TotalBookValue)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// RecalculateBookValues applies straight-line depreciation across all
// active assets and returns how many rows changed. The book value never
// drops below the residual value.
func (r *Repository) RecalculateBookValues(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE aset SET
			nilai_buku = GREATEST(
				nilai_residu,
				nilai_perolehan - ((nilai_perolehan - nilai_residu) / umur_manfaat_bulan)
					* LEAST(umur_manfaat_bulan,
						(EXTRACT(YEAR FROM AGE(NOW(), tanggal_perolehan)) * 12
						+ EXTRACT(MONTH FROM AGE(NOW(), tanggal_perolehan)))::int)
			),
			updated_at = NOW()
		WHERE status = 'aktif' AND umur_manfaat_bulan > 0
	`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
