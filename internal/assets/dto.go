package assets

import "time"

type CreateAssetRequest struct {
	Code             string  `json:"kode_aset" validate:"required,max=30"`
	Name             string  `json:"nama_aset" validate:"required,max=150"`
	CategoryID       int64   `json:"kategori_aset_id" validate:"required,gt=0"`
	SubcategoryID    int64   `json:"subkategori_aset_id" validate:"required,gt=0"`
	DetailCategoryID *int64  `json:"detail_kategori_aset_id,omitempty" validate:"omitempty,gt=0"`
	CustodianID      *int64  `json:"penanggung_jawab_id,omitempty" validate:"omitempty,gt=0"`
	Status           string  `json:"status" validate:"required,oneof=aktif tidak_aktif"`
	Condition        string  `json:"kondisi_fisik" validate:"required,oneof=baik rusak_ringan rusak_berat"`
	AcquisitionDate  string  `json:"tanggal_perolehan" validate:"required,datetime=2006-01-02"`
	AcquisitionValue int64   `json:"nilai_perolehan" validate:"required,gt=0"`
	ResidualValue    int64   `json:"nilai_residu" validate:"gte=0"`
	UsefulLifeMonths int     `json:"umur_manfaat_bulan" validate:"required,gt=0"`
	Location         *string `json:"lokasi,omitempty" validate:"omitempty,max=150"`
	Description      *string `json:"deskripsi,omitempty" validate:"omitempty,max=500"`
}

type UpdateAssetRequest struct {
	Code             *string `json:"kode_aset,omitempty" validate:"omitempty,max=30"`
	Name             *string `json:"nama_aset,omitempty" validate:"omitempty,max=150"`
	CategoryID       *int64  `json:"kategori_aset_id,omitempty" validate:"omitempty,gt=0"`
	SubcategoryID    *int64  `json:"subkategori_aset_id,omitempty" validate:"omitempty,gt=0"`
	DetailCategoryID *int64  `json:"detail_kategori_aset_id,omitempty" validate:"omitempty,gt=0"`
	CustodianID      *int64  `json:"penanggung_jawab_id,omitempty" validate:"omitempty,gt=0"`
	Status           *string `json:"status,omitempty" validate:"omitempty,oneof=aktif tidak_aktif"`
	Condition        *string `json:"kondisi_fisik,omitempty" validate:"omitempty,oneof=baik rusak_ringan rusak_berat"`
	AcquisitionDate  *string `json:"tanggal_perolehan,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AcquisitionValue *int64  `json:"nilai_perolehan,omitempty" validate:"omitempty,gt=0"`
	ResidualValue    *int64  `json:"nilai_residu,omitempty" validate:"omitempty,gte=0"`
	UsefulLifeMonths *int    `json:"umur_manfaat_bulan,omitempty" validate:"omitempty,gt=0"`
	Location         *string `json:"lokasi,omitempty" validate:"omitempty,max=150"`
	Description      *string `json:"deskripsi,omitempty" validate:"omitempty,max=500"`
}

// ListFilter carries the server-side listing parameters. Empty string
// filters mean "no constraint"; Search matches code, name and location
// case-insensitively.
type ListFilter struct {
	Status     string
	Condition  string
	CategoryID int64
	Search     string
	Page       int
	PerPage    int
}

const acquisitionDateLayout = "2006-01-02"

func parseAcquisitionDate(s string) (time.Time, error) {
	return time.Parse(acquisitionDateLayout, s)
}
