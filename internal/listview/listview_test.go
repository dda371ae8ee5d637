package listview

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kategori struct {
	ID     int64
	Kode   string
	Nama   string
	Status string
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func kategoriConfig(src Source[kategori], notifier Notifier) Config[kategori] {
	return Config[kategori]{
		Source: src,
		Fields: map[string]func(kategori) string{
			"status": func(k kategori) string { return k.Status },
		},
		SearchFields: func(k kategori) []string { return []string{k.Kode, k.Nama, k.Status} },
		PageSize:     5,
		Notifier:     notifier,
	}
}

func fixtureKategori() []kategori {
	statuses := []string{"aktif", "aktif", "tidak_aktif", "aktif", "tidak_aktif", "aktif", "aktif"}
	items := make([]kategori, 0, len(statuses))
	names := []string{"Tanah", "Gedung", "Kendaraan", "Peralatan", "Mesin", "Jaringan", "Software"}
	for i, s := range statuses {
		items = append(items, kategori{
			ID:     int64(i + 1),
			Kode:   "KAT-00" + string(rune('1'+i)),
			Nama:   names[i],
			Status: s,
		})
	}
	return items
}

func staticSource(items []kategori) Source[kategori] {
	return func(ctx context.Context, scope Scope) ([]kategori, error) {
		return items, nil
	}
}

func TestLoadPopulatesSnapshot(t *testing.T) {
	lv := New(kategoriConfig(staticSource(fixtureKategori()), nil))
	require.Equal(t, StateIdle, lv.State())

	require.NoError(t, lv.Load(context.Background(), nil))
	assert.Equal(t, StateReady, lv.State())
	assert.Len(t, lv.Snapshot(), 7)
	assert.Equal(t, 2, lv.TotalPages())
}

func TestLoadFailureClearsSnapshot(t *testing.T) {
	items := fixtureKategori()
	fail := false
	src := func(ctx context.Context, scope Scope) ([]kategori, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return items, nil
	}
	notifier := &recordingNotifier{}
	lv := New(kategoriConfig(src, notifier))

	require.NoError(t, lv.Load(context.Background(), nil))
	require.Len(t, lv.Snapshot(), 7)

	fail = true
	err := lv.Load(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, StateLoadError, lv.State())
	assert.Empty(t, lv.Snapshot(), "failed load must show empty state, not stale rows")
	assert.Equal(t, []string{"Gagal memuat data"}, notifier.errors)
}

func TestStaleLoadDoesNotOverwriteNewerSnapshot(t *testing.T) {
	older := []kategori{{ID: 1, Nama: "Lama", Status: "aktif"}}
	newer := []kategori{{ID: 2, Nama: "Baru", Status: "aktif"}}

	release := make(chan struct{})
	calls := 0
	var mu sync.Mutex
	src := func(ctx context.Context, scope Scope) ([]kategori, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			// First request resolves only after the second finished.
			<-release
			return older, nil
		}
		return newer, nil
	}

	lv := New(kategoriConfig(src, nil))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = lv.Load(context.Background(), Scope{"kategori_aset_id": "1"})
	}()

	// Wait until the first request is in flight before superseding it.
	for {
		mu.Lock()
		inFlight := calls == 1
		mu.Unlock()
		if inFlight {
			break
		}
	}

	require.NoError(t, lv.Load(context.Background(), Scope{"kategori_aset_id": "2"}))
	close(release)
	<-done

	require.Len(t, lv.Snapshot(), 1)
	assert.Equal(t, "Baru", lv.Snapshot()[0].Nama, "late arrival of a superseded load must be dropped")
	assert.Equal(t, StateReady, lv.State())
}

func TestFilterCompositionIsConjunctive(t *testing.T) {
	lv := New(kategoriConfig(staticSource(fixtureKategori()), nil))
	require.NoError(t, lv.Load(context.Background(), nil))

	lv.SetFilter("status", "aktif")
	lv.SetSearch("an")
	both := lv.FilteredView()

	lv.SetSearch("")
	statusOnly := lv.FilteredView()

	lv.SetFilter("status", NoFilter)
	lv.SetSearch("an")
	searchOnly := lv.FilteredView()

	inSearch := map[int64]bool{}
	for _, k := range searchOnly {
		inSearch[k.ID] = true
	}
	var intersection []kategori
	for _, k := range statusOnly {
		if inSearch[k.ID] {
			intersection = append(intersection, k)
		}
	}

	require.Equal(t, len(intersection), len(both))
	for i := range both {
		assert.Equal(t, intersection[i].ID, both[i].ID)
	}
}

func TestFilterChangeResetsPage(t *testing.T) {
	lv := New(kategoriConfig(staticSource(fixtureKategori()), nil))
	require.NoError(t, lv.Load(context.Background(), nil))

	lv.SetPage(2)
	require.Equal(t, 2, lv.Page())

	lv.SetFilter("status", "tidak_aktif")
	assert.Equal(t, 1, lv.Page())

	lv.SetPage(1)
	lv.SetSearch("gedung")
	assert.Equal(t, 1, lv.Page())
}

func TestStatusFilterScenario(t *testing.T) {
	// 7 entities, statuses [aktif aktif tidak_aktif aktif tidak_aktif aktif aktif], pageSize 5.
	lv := New(kategoriConfig(staticSource(fixtureKategori()), nil))
	require.NoError(t, lv.Load(context.Background(), nil))

	require.Equal(t, 2, lv.TotalPages())
	assert.Len(t, lv.VisiblePage(), 5)
	lv.SetPage(2)
	page2 := lv.VisiblePage()
	require.Len(t, page2, 2)
	assert.Equal(t, int64(6), page2[0].ID)
	assert.Equal(t, int64(7), page2[1].ID)

	lv.SetFilter("status", "tidak_aktif")
	assert.Len(t, lv.FilteredView(), 2)
	assert.Equal(t, 1, lv.TotalPages())
	assert.Equal(t, 1, lv.Page())
}

func TestSearchIsCaseInsensitiveOverAnyField(t *testing.T) {
	lv := New(kategoriConfig(staticSource(fixtureKategori()), nil))
	require.NoError(t, lv.Load(context.Background(), nil))

	lv.SetSearch("GEDUNG")
	require.Len(t, lv.FilteredView(), 1)
	assert.Equal(t, "Gedung", lv.FilteredView()[0].Nama)

	lv.SetSearch("kat-001")
	require.Len(t, lv.FilteredView(), 1)

	lv.SetSearch("tidak ada yang cocok")
	assert.Empty(t, lv.FilteredView())
	assert.Len(t, lv.Snapshot(), 7, "no-results empty state is distinct from an empty collection")
}

func TestRefilteringIsIdempotent(t *testing.T) {
	lv := New(kategoriConfig(staticSource(fixtureKategori()), nil))
	require.NoError(t, lv.Load(context.Background(), nil))

	lv.SetFilter("status", "aktif")
	first := lv.FilteredView()
	lv.SetFilter("status", "aktif")
	second := lv.FilteredView()

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestVisiblePageIsContiguousSlice(t *testing.T) {
	lv := New(kategoriConfig(staticSource(fixtureKategori()), nil))
	require.NoError(t, lv.Load(context.Background(), nil))

	for page := 1; page <= lv.TotalPages(); page++ {
		lv.SetPage(page)
		view := lv.FilteredView()
		start := (page - 1) * lv.PageSize()
		end := start + lv.PageSize()
		if end > len(view) {
			end = len(view)
		}
		assert.Equal(t, view[start:end], lv.VisiblePage())
	}
}

func TestSetPageClampsOutOfRange(t *testing.T) {
	lv := New(kategoriConfig(staticSource(fixtureKategori()), nil))
	require.NoError(t, lv.Load(context.Background(), nil))

	lv.SetPage(99)
	assert.Equal(t, 2, lv.Page())
	lv.SetPage(-3)
	assert.Equal(t, 1, lv.Page())
}

func TestSetPageOnEmptyViewReportsPageOne(t *testing.T) {
	unloaded := New(kategoriConfig(staticSource(fixtureKategori()), nil))
	unloaded.SetPage(50)
	assert.Equal(t, 1, unloaded.Page())

	empty := New(kategoriConfig(staticSource(nil), nil))
	require.NoError(t, empty.Load(context.Background(), nil))
	empty.SetPage(50)
	assert.Equal(t, 1, empty.Page())
	assert.Empty(t, empty.VisiblePage())
}

func TestMutateSuccessRefetchesOnce(t *testing.T) {
	loads := 0
	src := func(ctx context.Context, scope Scope) ([]kategori, error) {
		loads++
		return fixtureKategori(), nil
	}
	notifier := &recordingNotifier{}
	lv := New(kategoriConfig(src, notifier))
	require.NoError(t, lv.Load(context.Background(), nil))
	require.Equal(t, 1, loads)

	err := lv.Mutate(context.Background(), MutationCreate, nil, func(context.Context) error {
		return nil
	}, "Berhasil menambahkan kategori", "Gagal menambahkan kategori")
	require.NoError(t, err)

	assert.Equal(t, 2, loads, "exactly one refetch after a successful mutation")
	assert.Equal(t, StateReady, lv.State())
	assert.Equal(t, []string{"Berhasil menambahkan kategori"}, notifier.successes)
}

func TestMutateFailureLeavesSnapshotUntouched(t *testing.T) {
	loads := 0
	src := func(ctx context.Context, scope Scope) ([]kategori, error) {
		loads++
		return fixtureKategori(), nil
	}
	notifier := &recordingNotifier{}
	lv := New(kategoriConfig(src, notifier))
	require.NoError(t, lv.Load(context.Background(), nil))

	err := lv.Mutate(context.Background(), MutationDelete, nil, func(context.Context) error {
		return &ConflictError{Message: "in use"}
	}, "Berhasil menghapus kategori", "Gagal menghapus kategori")
	require.Error(t, err)

	assert.Equal(t, 1, loads, "failed mutations must not refetch")
	assert.Len(t, lv.Snapshot(), 7)
	assert.Equal(t, StateReady, lv.State())
	assert.Equal(t, []string{"in use"}, notifier.errors, "conflict message shown verbatim")
}

func TestMutateFailureFallbackMessage(t *testing.T) {
	notifier := &recordingNotifier{}
	lv := New(kategoriConfig(staticSource(fixtureKategori()), notifier))
	require.NoError(t, lv.Load(context.Background(), nil))

	_ = lv.Mutate(context.Background(), MutationUpdate, nil, func(context.Context) error {
		return errors.New("dial tcp: connection refused")
	}, "ok", "Gagal memperbarui kategori")

	assert.Equal(t, []string{"Gagal memperbarui kategori"}, notifier.errors)
}

func TestServerPaginatedPassthrough(t *testing.T) {
	paged := func(ctx context.Context, scope Scope, page, perPage int) (Page[kategori], error) {
		items := fixtureKategori()
		return Page[kategori]{
			Items:       items[:perPage],
			CurrentPage: page,
			PerPage:     perPage,
			Total:       42,
			LastPage:    9,
		}, nil
	}
	lv := New(Config[kategori]{PagedSource: paged, PageSize: 5})
	require.NoError(t, lv.Load(context.Background(), nil))

	assert.Equal(t, 42, lv.Total())
	assert.Equal(t, 9, lv.TotalPages())
	assert.Len(t, lv.VisiblePage(), 5, "VisiblePage passes the server page through unchanged")
	assert.Equal(t, lv.Snapshot(), lv.VisiblePage())
}
