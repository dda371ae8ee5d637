package subcategories

type CreateSubcategoryRequest struct {
	CategoryID  int64   `json:"kategori_aset_id" validate:"required,gt=0"`
	Code        string  `json:"kode_subkategori" validate:"required,max=20"`
	Name        string  `json:"nama_subkategori" validate:"required,max=100"`
	Description *string `json:"deskripsi,omitempty" validate:"omitempty,max=500"`
	Status      string  `json:"status" validate:"required,oneof=aktif tidak_aktif"`
}

type UpdateSubcategoryRequest struct {
	Code        *string `json:"kode_subkategori,omitempty" validate:"omitempty,max=20"`
	Name        *string `json:"nama_subkategori,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"deskripsi,omitempty" validate:"omitempty,max=500"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=aktif tidak_aktif"`
}
