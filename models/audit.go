package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission outcomes recorded in the audit log.
const (
	OutcomeCreated  = "created"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// SubmissionAudit records one payment submission that reached the backend.
type SubmissionAudit struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DealID      string    `gorm:"type:varchar(64);not null;index" json:"deal_id"`
	PaymentID   string    `gorm:"type:varchar(64);index" json:"payment_id,omitempty"`
	Username    string    `gorm:"type:varchar(128)" json:"username,omitempty"`
	Amount      string    `gorm:"type:varchar(32);not null" json:"amount"`
	PartyCount  int       `gorm:"not null" json:"party_count"`
	Forced      bool      `gorm:"not null;default:false" json:"forced"`
	Outcome     string    `gorm:"type:varchar(16);not null" json:"outcome"`
	ErrorCode   string    `gorm:"type:varchar(64)" json:"error_code,omitempty"`
	ProofStatus string    `gorm:"type:varchar(16)" json:"proof_status,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// UploadAudit records the outcome of one file in a sequential upload run.
type UploadAudit struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RunID     uuid.UUID `gorm:"type:uuid;not null;index" json:"run_id"`
	DealID    string    `gorm:"type:varchar(64);not null;index" json:"deal_id"`
	Label     string    `gorm:"type:varchar(128);not null" json:"label"`
	FileName  string    `gorm:"type:varchar(255);not null" json:"file_name"`
	Status    string    `gorm:"type:varchar(16);not null" json:"status"`
	Error     string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
