package models

// Proof document types.
const (
	DocTypeReceipt      = "receipt"
	DocTypeBankTransfer = "bank_transfer"
	DocTypeCheque       = "cheque"
	DocTypeCash         = "cash"
	DocTypeUPI          = "upi"
	DocTypeContra       = "contra"
	DocTypeOther        = "other"
)

// DocTypes lists the accepted proof document types in display order.
var DocTypes = []string{
	DocTypeReceipt,
	DocTypeBankTransfer,
	DocTypeCheque,
	DocTypeCash,
	DocTypeUPI,
	DocTypeContra,
	DocTypeOther,
}

// Proof is a file attached to a payment.
type Proof struct {
	ID         ID     `json:"id"`
	PaymentID  ID     `json:"payment_id,omitempty"`
	FilePath   string `json:"file_path"`
	FileName   string `json:"file_name,omitempty"`
	DocType    string `json:"doc_type,omitempty"`
	UploadedBy ID     `json:"uploaded_by,omitempty"`
	UploadedAt string `json:"uploaded_at,omitempty"`
}
