package maintenance

type CreateRecordRequest struct {
	AssetID     int64  `json:"aset_id" validate:"required,gt=0"`
	Date        string `json:"tanggal_pemeliharaan" validate:"required,datetime=2006-01-02"`
	Type        string `json:"jenis_pemeliharaan" validate:"required,oneof=rutin perbaikan"`
	Description string `json:"deskripsi" validate:"required,max=500"`
	Cost        int64  `json:"biaya" validate:"gte=0"`
	PerformedBy string `json:"pelaksana" validate:"required,max=100"`
}

// CompleteRecordRequest closes a scheduled job and records the resulting
// asset condition.
type CompleteRecordRequest struct {
	ResultCondition string `json:"kondisi_setelah" validate:"required,oneof=baik rusak_ringan rusak_berat"`
}
