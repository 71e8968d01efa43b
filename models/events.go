package models

import "time"

// PaymentRecordedEvent is published after the backend accepts a payment.
type PaymentRecordedEvent struct {
	EventType     string    `json:"event_type"`
	DealID        string    `json:"deal_id"`
	PaymentID     string    `json:"payment_id"`
	Amount        string    `json:"amount"`
	PaymentMode   string    `json:"payment_mode"`
	Parties       int       `json:"parties"`
	Forced        bool      `json:"forced"`
	ProofUploaded bool      `json:"proof_uploaded"`
	Timestamp     time.Time `json:"timestamp"`
}

// ProofEvent is published when a proof is uploaded or deleted.
type ProofEvent struct {
	EventType string    `json:"event_type"`
	DealID    string    `json:"deal_id"`
	PaymentID string    `json:"payment_id"`
	ProofID   string    `json:"proof_id,omitempty"`
	DocType   string    `json:"doc_type,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DealCreatedEvent is published after a deal and its documents are submitted.
type DealCreatedEvent struct {
	EventType      string    `json:"event_type"`
	DealID         string    `json:"deal_id"`
	Uploaded       int       `json:"uploaded"`
	FailedUploads  int       `json:"failed_uploads"`
	AbandonedFiles int       `json:"abandoned_files"`
	Timestamp      time.Time `json:"timestamp"`
}

// DealEvent is published when a deal is deleted or an expense is added.
type DealEvent struct {
	EventType string    `json:"event_type"`
	DealID    string    `json:"deal_id"`
	Amount    string    `json:"amount,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types.
const (
	EventPaymentRecorded = "payment_recorded"
	EventProofUploaded   = "proof_uploaded"
	EventProofDeleted    = "proof_deleted"
	EventDealCreated     = "deal_created"
	EventDealDeleted     = "deal_deleted"
	EventExpenseAdded    = "expense_added"
)
