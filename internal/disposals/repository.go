package disposals

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simaset/simaset/internal/platform/httpx"
)

// RepositoryPort defines data access methods for disposal proposals.
type RepositoryPort interface {
	List(ctx context.Context, status string) ([]Proposal, error)
	Get(ctx context.Context, id int64) (*Proposal, error)
	HasOpenProposal(ctx context.Context, assetID int64) (bool, error)
	Create(ctx context.Context, p Proposal) (int64, error)
	Decide(ctx context.Context, id int64, status string, decidedBy int64, decidedAt time.Time, notes *string) error
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectProposal = `
	SELECT d.id, d.aset_id, d.jenis, d.alasan, d.penerima, d.status,
	       d.diajukan_oleh, d.diputuskan_oleh, d.diputuskan_pada, d.catatan,
	       d.created_at, d.updated_at, a.kode_aset, a.nama_aset
	FROM penghapusan_pemindahtanganan_aset d
	JOIN aset a ON a.id = d.aset_id`

// List returns proposals, newest first; empty status lists all.
func (r *Repository) List(ctx context.Context, status string) ([]Proposal, error) {
	query := selectProposal + ` ORDER BY d.created_at DESC`
	var rows pgx.Rows
	var err error
	if status != "" {
		query = selectProposal + ` WHERE d.status = $1 ORDER BY d.created_at DESC`
		rows, err = r.pool.Query(ctx, query, status)
	} else {
		rows, err = r.pool.Query(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id int64) (*Proposal, error) {
	row := r.pool.QueryRow(ctx, selectProposal+` WHERE d.id = $1`, id)
	p, err := scanProposal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// HasOpenProposal reports whether the asset already has an undecided
// proposal.
func (r *Repository) HasOpenProposal(ctx context.Context, assetID int64) (bool, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM penghapusan_pemindahtanganan_aset
		WHERE aset_id = $1 AND status = 'diajukan'
	`, assetID).Scan(&n)
	return n > 0, err
}

func scanProposal(row pgx.Row) (Proposal, error) {
	var p Proposal
	err := row.Scan(
		&p.ID, &p.AssetID, &p.Type, &p.Reason, &p.Recipient, &p.Status,
		&p.ProposedBy, &p.DecidedBy, &p.DecidedAt, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt, &p.AssetCode, &p.AssetName,
	)
	return p, err
}

func (r *Repository) Create(ctx context.Context, p Proposal) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO penghapusan_pemindahtanganan_aset (aset_id, jenis, alasan, penerima, status, diajukan_oleh)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, p.AssetID, p.Type, p.Reason, p.Recipient, p.Status, p.ProposedBy).Scan(&id)
	return id, err
}

func (r *Repository) Decide(ctx context.Context, id int64, status string, decidedBy int64, decidedAt time.Time, notes *string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE penghapusan_pemindahtanganan_aset
		SET status = $1, diputuskan_oleh = $2, diputuskan_pada = $3, catatan = $4, updated_at = NOW()
		WHERE id = $5
	`, status, decidedBy, decidedAt, notes, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
