package listview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchDecodesDataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("kategori_aset_id"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []kategori{{ID: 1, Nama: "Tanah", Status: "aktif"}},
		})
	}))
	defer srv.Close()

	rc := &RESTCollection[kategori]{BaseURL: srv.URL}
	items, err := rc.Fetch(context.Background(), Scope{"kategori_aset_id": "1"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tanah", items[0].Nama)
}

func TestFetchDecodesBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]kategori{{ID: 1}, {ID: 2}})
	}))
	defer srv.Close()

	rc := &RESTCollection[kategori]{BaseURL: srv.URL}
	items, err := rc.Fetch(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFetchPageDecodesPaginationMeta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":         []kategori{{ID: 21}},
			"current_page": 3,
			"total":        57,
			"per_page":     10,
			"last_page":    6,
		})
	}))
	defer srv.Close()

	rc := &RESTCollection[kategori]{BaseURL: srv.URL}
	page, err := rc.FetchPage(context.Background(), nil, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 57, page.Total)
	assert.Equal(t, 6, page.LastPage)
	require.Len(t, page.Items, 1)
}

func TestDeleteSurfacesNestedConflictMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"errors":{"children":["in use"]}}`))
	}))
	defer srv.Close()

	rc := &RESTCollection[kategori]{BaseURL: srv.URL}
	err := rc.Delete(context.Background(), 4)
	require.Error(t, err)

	assert.Equal(t, "in use", UserMessage(err, "Gagal menghapus kategori"))
}

func TestMutationSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"kode kategori sudah digunakan"}`))
	}))
	defer srv.Close()

	rc := &RESTCollection[kategori]{BaseURL: srv.URL}
	err := rc.Create(context.Background(), map[string]string{"kode_kategori": "KAT-001"})
	require.Error(t, err)
	assert.Equal(t, "kode kategori sudah digunakan", UserMessage(err, "Gagal menambahkan kategori"))
}

func TestMutationFallsBackWithoutBodyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`oops`))
	}))
	defer srv.Close()

	rc := &RESTCollection[kategori]{BaseURL: srv.URL}
	err := rc.Update(context.Background(), 1, map[string]string{})
	require.Error(t, err)
	assert.Equal(t, "Gagal memperbarui kategori", UserMessage(err, "Gagal memperbarui kategori"))
}

func TestControllerBoundToRESTSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": fixtureKategori()})
	}))
	defer srv.Close()

	rc := &RESTCollection[kategori]{BaseURL: srv.URL}
	lv := New(kategoriConfig(rc.Fetch, nil))
	require.NoError(t, lv.Load(context.Background(), nil))
	assert.Len(t, lv.Snapshot(), 7)
	assert.Equal(t, []int{1, 2}, lv.PageNumbers(5))
}
