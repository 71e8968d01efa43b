package payments

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
)

// Backend error codes with a dedicated message.
const (
	CodePartyAmountMismatch     = "party_amount_mismatch"
	CodePartyPercentageMismatch = "party_percentage_mismatch"
)

// PartyAmountMismatchError means the backend found the party amounts do not
// add up to the payment amount.
type PartyAmountMismatchError struct {
	Status        int
	PaymentAmount string
	PartiesTotal  string
}

func (e *PartyAmountMismatchError) Error() string {
	return fmt.Sprintf("Party sum mismatch: payment %s vs parties %s", e.PaymentAmount, e.PartiesTotal)
}

// PartyPercentageMismatchError means the party percentages do not total 100.
type PartyPercentageMismatchError struct {
	Status          int
	TotalPercentage string
}

func (e *PartyPercentageMismatchError) Error() string {
	return fmt.Sprintf("Party percentage mismatch: total %s", e.TotalPercentage)
}

// HTTPError is any other backend rejection.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// SubmissionError wraps failures that never produced a backend response.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string { return "Failed to record payment" }

func (e *SubmissionError) Unwrap() error { return e.Err }

// ClassifyError maps a submission failure onto the error kinds above. Local
// validation errors pass through unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}

	var apiErr *clients.APIError
	if !errors.As(err, &apiErr) {
		return &SubmissionError{Err: err}
	}

	switch apiErr.Code {
	case CodePartyAmountMismatch:
		return &PartyAmountMismatchError{
			Status:        apiErr.StatusCode,
			PaymentAmount: payloadValue(apiErr.Payload, "payment_amount"),
			PartiesTotal:  payloadValue(apiErr.Payload, "parties_total"),
		}
	case CodePartyPercentageMismatch:
		return &PartyPercentageMismatchError{
			Status:          apiErr.StatusCode,
			TotalPercentage: payloadValue(apiErr.Payload, "total_percentage"),
		}
	}

	msg := apiErr.Code
	if msg == "" {
		msg = apiErr.Message
	}
	if msg == "" {
		msg = apiErr.StatusText
	}
	if msg == "" {
		msg = fmt.Sprintf("Server error %d", apiErr.StatusCode)
	}
	return &HTTPError{Status: apiErr.StatusCode, Message: msg}
}

// StatusOf returns the HTTP status a classified error should be reported
// with.
func StatusOf(err error) int {
	var (
		ve  *ValidationError
		am  *PartyAmountMismatchError
		pm  *PartyPercentageMismatchError
		he  *HTTPError
		sub *SubmissionError
	)
	switch {
	case errors.As(err, &ve):
		return 422
	case errors.As(err, &am):
		return am.Status
	case errors.As(err, &pm):
		return pm.Status
	case errors.As(err, &he):
		return he.Status
	case errors.As(err, &sub):
		return 502
	}
	return 500
}

func payloadValue(payload map[string]interface{}, key string) string {
	switch v := payload[key].(type) {
	case nil:
		return "unknown"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
