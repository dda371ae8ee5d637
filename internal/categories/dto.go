package categories

type CreateCategoryRequest struct {
	Code        string  `json:"kode_kategori" validate:"required,max=20"`
	Name        string  `json:"nama_kategori" validate:"required,max=100"`
	Description *string `json:"deskripsi,omitempty" validate:"omitempty,max=500"`
	Status      string  `json:"status" validate:"required,oneof=aktif tidak_aktif"`
}

type UpdateCategoryRequest struct {
	Code        *string `json:"kode_kategori,omitempty" validate:"omitempty,max=20"`
	Name        *string `json:"nama_kategori,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"deskripsi,omitempty" validate:"omitempty,max=500"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=aktif tidak_aktif"`
}
