package payments

import (
	"fmt"
	"strings"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/shopspring/decimal"
)

// ValidationError is a local form error. Message is shown to the user as is.
type ValidationError struct {
	Field string
	// Party is the 1-based row the error refers to, or 0 for form fields.
	Party   int
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func formError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

func partyError(i int, field, msg string) *ValidationError {
	return &ValidationError{Field: field, Party: i, Message: fmt.Sprintf("Party %d: %s", i, msg)}
}

// ParseAmount parses a positive payment amount.
func ParseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// ValidateSubmission checks a payment form before anything is sent. The
// first failing rule wins.
func ValidateSubmission(form models.PaymentForm) error {
	if _, ok := ParseAmount(form.Amount); !ok {
		return formError("amount", "Enter a valid amount")
	}
	if strings.TrimSpace(form.PaymentDate) == "" {
		return formError("payment_date", "Select a payment date")
	}
	mode := strings.TrimSpace(form.PaymentMode)
	if mode == "" {
		return formError("payment_mode", "Select a payment mode")
	}
	if mode == models.ModeOther && strings.TrimSpace(form.CustomMode) == "" {
		return formError("custom_mode", "Enter a custom payment mode")
	}

	complete := 0
	for _, p := range form.Parties {
		if strings.TrimSpace(p.Role) != "" && hasTarget(p) {
			complete++
		}
	}
	if complete == 0 {
		return formError("parties", "Please add at least one person with a role and payment target")
	}

	for idx, p := range form.Parties {
		i := idx + 1
		if p.PartyType == "" {
			return partyError(i, "party_type", "Please select a party type")
		}
		if !hasIdentity(p) {
			return partyError(i, "party_id", "Please select a specific person")
		}
		if strings.TrimSpace(p.Role) == "" {
			return partyError(i, "role", "Please select if they are paying or receiving")
		}
		if !hasTarget(p) {
			verb := "receive from"
			if p.HasRole(models.RolePayer) {
				verb = "pay to"
			}
			return partyError(i, "pay_to_id", "Please select who they "+verb)
		}
		if !p.PayToID.IsZero() && !isKnownParticipant(p.PayToType) {
			return partyError(i, "pay_to_type", "Please select a payment target type")
		}
		if IsSelfTarget(p) {
			return partyError(i, "pay_to_id", ErrSelfPayment.Error())
		}
	}
	return nil
}

// isKnownParticipant reports whether t names a participant that is
// identified by id.
func isKnownParticipant(t models.PartyType) bool {
	return t.Valid() && t != models.PartyTypeOther
}

func hasIdentity(p models.Party) bool {
	if p.PartyType == models.PartyTypeOther {
		return strings.TrimSpace(p.PartyName) != ""
	}
	return !p.PartyID.IsZero()
}

// hasTarget treats an unset target type as "other", which is identified by
// name.
func hasTarget(p models.Party) bool {
	if !p.PayToID.IsZero() {
		return true
	}
	if p.PayToType == "" || p.PayToType == models.PartyTypeOther {
		return strings.TrimSpace(p.PayToName) != ""
	}
	return false
}

// PreparePayload turns a validated form into the create-payment body. Every
// party's amount is overwritten with the payment total.
func PreparePayload(form models.PaymentForm) (*models.PaymentPayload, error) {
	total, ok := ParseAmount(form.Amount)
	if !ok {
		return nil, formError("amount", "Enter a valid amount")
	}

	mode := strings.TrimSpace(form.PaymentMode)
	if custom := strings.TrimSpace(form.CustomMode); (mode == models.ModeOther || mode == "") && custom != "" {
		mode = custom
	}

	status := form.Status
	if status == "" {
		status = models.StatusPaid
	}
	paymentType := form.PaymentType
	if paymentType == "" {
		paymentType = models.PaymentTypeOther
	}
	dueDate := ""
	if status == models.StatusPending {
		dueDate = form.DueDate
	}

	parties := make([]models.PartyPayload, 0, len(form.Parties))
	for _, p := range form.Parties {
		pp := models.PartyPayload{
			PartyType: p.PartyType,
			PartyID:   p.PartyID,
			Amount:    total,
			Role:      optional(p.Role),
			PayToID:   p.PayToID,
			PayToName: optional(p.PayToName),
			PayToType: optional(string(p.PayToType)),
		}
		if p.PartyType == models.PartyTypeOther {
			pp.PartyName = optional(p.PartyName)
		}
		parties = append(parties, pp)
	}

	return &models.PaymentPayload{
		Amount:      total,
		PaymentDate: form.PaymentDate,
		PaymentMode: mode,
		PaymentType: paymentType,
		Status:      status,
		DueDate:     dueDate,
		Reference:   form.Reference,
		Notes:       form.Notes,
		Description: form.Description,
		Parties:     parties,
	}, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
