package categories

import "time"

// Entity statuses shared by the reference-data modules.
const (
	StatusActive   = "aktif"
	StatusInactive = "tidak_aktif"
)

// Category is one kategori aset record.
type Category struct {
	ID          int64     `json:"id"`
	Code        string    `json:"kode_kategori"`
	Name        string    `json:"nama_kategori"`
	Description *string   `json:"deskripsi,omitempty"`
	Status      string    `json:"status"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
