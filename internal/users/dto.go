package users

type CreateUserRequest struct {
	Name     string `json:"nama" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=admin petugas"`
	Status   string `json:"status" validate:"required,oneof=aktif tidak_aktif"`
}

type UpdateUserRequest struct {
	Name     *string `json:"nama,omitempty" validate:"omitempty,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin petugas"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=aktif tidak_aktif"`
}
