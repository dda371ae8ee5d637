package dashboard

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/simaset/simaset/internal/assets"
	"github.com/simaset/simaset/internal/disposals"
	"github.com/simaset/simaset/internal/maintenance"
)

const recentLimit = 5

// CategoryCount is one slice of the per-category breakdown chart.
type CategoryCount struct {
	CategoryID int64  `json:"kategori_aset_id"`
	Name       string `json:"nama_kategori"`
	Count      int    `json:"jumlah_aset"`
}

// Summary is the full dashboard payload.
type Summary struct {
	Stats             *assets.Statistics   `json:"statistik"`
	PerCategory       []CategoryCount      `json:"per_kategori"`
	RecentMaintenance []maintenance.Record `json:"pemeliharaan_terbaru"`
	OpenDisposals     []disposals.Proposal `json:"pengajuan_terbuka"`
}

// StatsProvider supplies the aggregate asset figures.
type StatsProvider interface {
	Stats(ctx context.Context) (*assets.Statistics, error)
}

// MaintenanceLister supplies maintenance history, newest first.
type MaintenanceLister interface {
	List(ctx context.Context, assetID int64) ([]maintenance.Record, error)
}

// DisposalLister supplies disposal proposals filtered by status.
type DisposalLister interface {
	List(ctx context.Context, status string) ([]disposals.Proposal, error)
}

// Service aggregates the dashboard summary, caching the assembled payload.
type Service struct {
	pool        *pgxpool.Pool
	stats       StatsProvider
	maintenance MaintenanceLister
	disposals   DisposalLister
	cache       *Cache
}

func NewService(pool *pgxpool.Pool, stats StatsProvider, maint MaintenanceLister, disp DisposalLister, cache *Cache) *Service {
	return &Service{pool: pool, stats: stats, maintenance: maint, disposals: disp, cache: cache}
}

// Summary returns the cached dashboard payload, assembling it in parallel
// on a cache miss.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	if s.stats == nil {
		return nil, errors.New("dashboard: stats provider required")
	}

	key, err := s.cache.BuildKey(ctx, keySummary())
	if err != nil {
		return nil, err
	}

	var summary Summary
	err = s.cache.FetchJSON(ctx, key, &summary, func(ctx context.Context) (interface{}, error) {
		return s.assemble(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Invalidate bumps the cache version after a mutation.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func (s *Service) assemble(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		PerCategory:       []CategoryCount{},
		RecentMaintenance: []maintenance.Record{},
		OpenDisposals:     []disposals.Proposal{},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.stats.Stats(ctx)
		if err != nil {
			return err
		}
		summary.Stats = stats
		return nil
	})

	g.Go(func() error {
		counts, err := s.perCategory(ctx)
		if err != nil {
			return err
		}
		summary.PerCategory = counts
		return nil
	})

	if s.maintenance != nil {
		g.Go(func() error {
			records, err := s.maintenance.List(ctx, 0)
			if err != nil {
				return err
			}
			if len(records) > recentLimit {
				records = records[:recentLimit]
			}
			summary.RecentMaintenance = records
			return nil
		})
	}

	if s.disposals != nil {
		g.Go(func() error {
			open, err := s.disposals.List(ctx, disposals.StatusProposed)
			if err != nil {
				return err
			}
			summary.OpenDisposals = open
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *Service) perCategory(ctx context.Context) ([]CategoryCount, error) {
	if s.pool == nil {
		return []CategoryCount{}, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT k.id, k.nama_kategori, COUNT(a.id)
		FROM kategori_aset k
		LEFT JOIN aset a ON a.kategori_aset_id = k.id
		GROUP BY k.id, k.nama_kategori
		ORDER BY k.nama_kategori
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []CategoryCount{}
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
