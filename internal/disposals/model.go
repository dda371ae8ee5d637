package disposals

import "time"

const (
	StatusProposed = "diajukan"
	StatusApproved = "disetujui"
	StatusRejected = "ditolak"
)

const (
	TypeDisposal = "penghapusan"
	TypeTransfer = "pemindahtanganan"
)

// Proposal is one penghapusan or pemindahtanganan request. Approval takes
// the asset out of active service.
type Proposal struct {
	ID        int64      `json:"id"`
	AssetID   int64      `json:"aset_id"`
	Type      string     `json:"jenis"`
	Reason    string     `json:"alasan"`
	// Recipient names the receiving party on transfers.
	Recipient  *string    `json:"penerima,omitempty"`
	Status     string     `json:"status"`
	ProposedBy int64      `json:"diajukan_oleh"`
	DecidedBy  *int64     `json:"diputuskan_oleh,omitempty"`
	DecidedAt  *time.Time `json:"diputuskan_pada,omitempty"`
	Notes      *string    `json:"catatan,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	AssetCode string `json:"kode_aset"`
	AssetName string `json:"nama_aset"`
}
