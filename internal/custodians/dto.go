package custodians

type CreateCustodianRequest struct {
	NIP      string  `json:"nip" validate:"required,max=30"`
	Name     string  `json:"nama" validate:"required,max=100"`
	Position string  `json:"jabatan" validate:"required,max=100"`
	WorkUnit string  `json:"unit_kerja" validate:"required,max=100"`
	Phone    *string `json:"telepon,omitempty" validate:"omitempty,max=20"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Status   string  `json:"status" validate:"required,oneof=aktif tidak_aktif"`
}

type UpdateCustodianRequest struct {
	NIP      *string `json:"nip,omitempty" validate:"omitempty,max=30"`
	Name     *string `json:"nama,omitempty" validate:"omitempty,max=100"`
	Position *string `json:"jabatan,omitempty" validate:"omitempty,max=100"`
	WorkUnit *string `json:"unit_kerja,omitempty" validate:"omitempty,max=100"`
	Phone    *string `json:"telepon,omitempty" validate:"omitempty,max=20"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=aktif tidak_aktif"`
}
