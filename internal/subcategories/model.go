package subcategories

import "time"

// Subcategory is one subkategori aset record, always owned by a category.
type Subcategory struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"kategori_aset_id"`
	Code        string    `json:"kode_subkategori"`
	Name        string    `json:"nama_subkategori"`
	Description *string   `json:"deskripsi,omitempty"`
	Status      string    `json:"status"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Category is the embedded parent summary listings join in.
	Category *CategoryRef `json:"kategori_aset,omitempty"`
}

// CategoryRef is the denormalised parent embedded in listings.
type CategoryRef struct {
	ID     int64  `json:"id"`
	Name   string `json:"nama_kategori"`
	Status string `json:"status"`
}
