package custodians

import "time"

// Custodian is a penanggung jawab aset, the person accountable for assets
// assigned to them.
type Custodian struct {
	ID        int64     `json:"id"`
	NIP       string    `json:"nip"`
	Name      string    `json:"nama"`
	Position  string    `json:"jabatan"`
	WorkUnit  string    `json:"unit_kerja"`
	Phone     *string   `json:"telepon,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// AssetCount is populated by listings so tables can show workload.
	AssetCount int `json:"jumlah_aset"`
}
