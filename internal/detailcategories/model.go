package detailcategories

import "time"

// DetailCategory is the finest classification level, owned by a subcategory.
type DetailCategory struct {
	ID            int64     `json:"id"`
	SubcategoryID int64     `json:"subkategori_aset_id"`
	Code          string    `json:"kode_detail"`
	Name          string    `json:"nama_detail"`
	Description   *string   `json:"deskripsi,omitempty"`
	Status        string    `json:"status"`
	CreatedBy     int64     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Subcategory *SubcategoryRef `json:"subkategori_aset,omitempty"`
}

// SubcategoryRef is the denormalised parent embedded in listings, carrying
// the grandparent category name as well so tables can show the full path.
type SubcategoryRef struct {
	ID           int64  `json:"id"`
	Name         string `json:"nama_subkategori"`
	Status       string `json:"status"`
	CategoryName string `json:"nama_kategori"`
}
