package maintenance

import "time"

const (
	StatusScheduled = "dijadwalkan"
	StatusCompleted = "selesai"
)

const (
	TypeRoutine = "rutin"
	TypeRepair  = "perbaikan"
)

// Record is one riwayat pemeliharaan entry for an asset.
type Record struct {
	ID          int64      `json:"id"`
	AssetID     int64      `json:"aset_id"`
	Date        time.Time  `json:"tanggal_pemeliharaan"`
	Type        string     `json:"jenis_pemeliharaan"`
	Description string     `json:"deskripsi"`
	Cost        int64      `json:"biaya"`
	PerformedBy string     `json:"pelaksana"`
	Status      string     `json:"status"`
	// ResultCondition is the asset condition recorded at completion and
	// copied onto the asset.
	ResultCondition *string    `json:"kondisi_setelah,omitempty"`
	CompletedAt     *time.Time `json:"selesai_pada,omitempty"`
	CreatedBy       int64      `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	AssetCode string `json:"kode_aset"`
	AssetName string `json:"nama_aset"`
}
