package assets

import "time"

const (
	StatusActive   = "aktif"
	StatusInactive = "tidak_aktif"
)

const (
	ConditionGood        = "baik"
	ConditionLightDamage = "rusak_ringan"
	ConditionHeavyDamage = "rusak_berat"
)

// Asset is one aset record. Monetary amounts are stored in rupiah without
// cents, matching the source ledgers.
type Asset struct {
	ID               int64      `json:"id"`
	Code             string     `json:"kode_aset"`
	Name             string     `json:"nama_aset"`
	CategoryID       int64      `json:"kategori_aset_id"`
	SubcategoryID    int64      `json:"subkategori_aset_id"`
	DetailCategoryID *int64     `json:"detail_kategori_aset_id,omitempty"`
	CustodianID      *int64     `json:"penanggung_jawab_id,omitempty"`
	Status           string     `json:"status"`
	Condition        string     `json:"kondisi_fisik"`
	AcquisitionDate  time.Time  `json:"tanggal_perolehan"`
	AcquisitionValue int64      `json:"nilai_perolehan"`
	ResidualValue    int64      `json:"nilai_residu"`
	UsefulLifeMonths int        `json:"umur_manfaat_bulan"`
	BookValue        int64      `json:"nilai_buku"`
	Location         *string    `json:"lokasi,omitempty"`
	Description      *string    `json:"deskripsi,omitempty"`
	CreatedBy        int64      `json:"created_by"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DisposedAt       *time.Time `json:"dihapus_pada,omitempty"`

	CategoryName    string  `json:"nama_kategori"`
	SubcategoryName string  `json:"nama_subkategori"`
	CustodianName   *string `json:"nama_penanggung_jawab,omitempty"`
}

// Statistics is the aggregate summary shown on the dashboard cards.
type Statistics struct {
	Total          int   `json:"total_aset"`
	Active         int   `json:"aset_aktif"`
	Inactive       int   `json:"aset_tidak_aktif"`
	ConditionGood  int   `json:"kondisi_baik"`
	ConditionLight int   `json:"kondisi_rusak_ringan"`
	ConditionHeavy int   `json:"kondisi_rusak_berat"`
	TotalValue     int64 `json:"total_nilai_perolehan"`
	TotalBookValue int64 `json:"total_nilai_buku"`
}
