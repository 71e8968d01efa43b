package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend expects JSON numbers for money, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Payment status values.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)

// Payment modes offered by the form. ModeOther requires custom text.
const (
	ModeUPI    = "UPI"
	ModeNEFT   = "NEFT"
	ModeRTGS   = "RTGS"
	ModeIMPS   = "IMPS"
	ModeCash   = "Cash"
	ModeCheque = "Cheque"
	ModeOther  = "other"
)

// Payment types.
const (
	PaymentTypeLandPurchase       = "land_purchase"
	PaymentTypeInvestmentSale     = "investment_sale"
	PaymentTypeDocumentationLegal = "documentation_legal"
	PaymentTypeOther              = "other"
)

// Party attributes a payment to a participant and names its counterpart.
type Party struct {
	ID        ID                  `json:"id,omitempty"`
	PartyType PartyType           `json:"party_type"`
	PartyID   ID                  `json:"party_id"`
	PartyName string              `json:"party_name,omitempty"`
	Role      string              `json:"role"`
	Amount    decimal.NullDecimal `json:"amount"`
	PayToType PartyType           `json:"pay_to_type"`
	PayToID   ID                  `json:"pay_to_id"`
	PayToName string              `json:"pay_to_name"`
}

// HasRole reports whether the party's role matches role, ignoring case.
func (p Party) HasRole(role string) bool {
	return strings.EqualFold(strings.TrimSpace(p.Role), role)
}

// Payment is a payment row as returned by the backend list and ledger
// endpoints.
type Payment struct {
	ID          ID              `json:"id"`
	DealID      ID              `json:"deal_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	DueDate     string          `json:"due_date,omitempty"`
	PaymentMode string          `json:"payment_mode"`
	PaymentType string          `json:"payment_type"`
	Status      string          `json:"status"`
	Reference   string          `json:"reference,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	Description string          `json:"description,omitempty"`
	Parties     []Party         `json:"parties"`
	// Legacy single-party attribution kept by older rows.
	PartyType PartyType `json:"party_type,omitempty"`
	PartyID   ID        `json:"party_id,omitempty"`
}

// DateOnly returns the YYYY-MM-DD part of the payment date.
func (p Payment) DateOnly() string {
	if i := strings.Index(p.PaymentDate, "T"); i >= 0 {
		return p.PaymentDate[:i]
	}
	return p.PaymentDate
}

// PaymentForm is the unvalidated user input for a new payment.
type PaymentForm struct {
	Amount      string  `json:"amount" form:"amount"`
	PaymentDate string  `json:"payment_date" form:"payment_date"`
	PaymentMode string  `json:"payment_mode" form:"payment_mode"`
	CustomMode  string  `json:"custom_mode" form:"custom_mode"`
	PaymentType string  `json:"payment_type" form:"payment_type"`
	Status      string  `json:"status" form:"status"`
	DueDate     string  `json:"due_date" form:"due_date"`
	Reference   string  `json:"reference" form:"reference"`
	Notes       string  `json:"notes" form:"notes"`
	Description string  `json:"description" form:"description"`
	Parties     []Party `json:"parties" form:"-"`
}

// PartyPayload is a party as sent to the backend. Unset references are
// serialized as null.
type PartyPayload struct {
	PartyType PartyType       `json:"party_type"`
	PartyID   ID              `json:"party_id"`
	PartyName *string         `json:"party_name"`
	Amount    decimal.Decimal `json:"amount"`
	Role      *string         `json:"role"`
	PayToID   ID              `json:"pay_to_id"`
	PayToName *string         `json:"pay_to_name"`
	PayToType *string         `json:"pay_to_type"`
}

// PaymentPayload is the create-payment request body.
type PaymentPayload struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	PaymentMode string          `json:"payment_mode"`
	PaymentType string          `json:"payment_type,omitempty"`
	Status      string          `json:"status,omitempty"`
	DueDate     string          `json:"due_date,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	Description string          `json:"description,omitempty"`
	Parties     []PartyPayload  `json:"parties"`
}

// CreatePaymentResponse is returned by POST /payments/:deal.
type CreatePaymentResponse struct {
	PaymentID ID     `json:"payment_id"`
	Message   string `json:"message,omitempty"`
}

// PaymentUpdate carries the mutable fields of an existing payment.
type PaymentUpdate struct {
	Notes       *string `json:"notes,omitempty"`
	Status      *string `json:"status,omitempty"`
	Reference   *string `json:"reference,omitempty"`
	PaymentMode *string `json:"payment_mode,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}
