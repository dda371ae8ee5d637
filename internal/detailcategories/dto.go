package detailcategories

type CreateDetailCategoryRequest struct {
	SubcategoryID int64   `json:"subkategori_aset_id" validate:"required,gt=0"`
	Code          string  `json:"kode_detail" validate:"required,max=20"`
	Name          string  `json:"nama_detail" validate:"required,max=100"`
	Description   *string `json:"deskripsi,omitempty" validate:"omitempty,max=500"`
	Status        string  `json:"status" validate:"required,oneof=aktif tidak_aktif"`
}

type UpdateDetailCategoryRequest struct {
	Code        *string `json:"kode_detail,omitempty" validate:"omitempty,max=20"`
	Name        *string `json:"nama_detail,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"deskripsi,omitempty" validate:"omitempty,max=500"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=aktif tidak_aktif"`
}
