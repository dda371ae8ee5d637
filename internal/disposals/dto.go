package disposals

type CreateProposalRequest struct {
	AssetID   int64   `json:"aset_id" validate:"required,gt=0"`
	Type      string  `json:"jenis" validate:"required,oneof=penghapusan pemindahtanganan"`
	Reason    string  `json:"alasan" validate:"required,max=500"`
	Recipient *string `json:"penerima,omitempty" validate:"omitempty,max=150"`
}

// DecideProposalRequest carries the optional decision notes for approval
// or rejection.
type DecideProposalRequest struct {
	Notes *string `json:"catatan,omitempty" validate:"omitempty,max=500"`
}
