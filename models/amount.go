package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// amountText returns the text of a JSON amount that may arrive as a number,
// a quoted string, an empty string or null. Anything else is returned raw so
// amount validation can reject it.
func amountText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return string(raw)
}

// UnmarshalJSON accepts the amount as a number or a string.
func (f *PaymentForm) UnmarshalJSON(b []byte) error {
	type plain PaymentForm
	aux := struct {
		*plain
		Amount json.RawMessage `json:"amount"`
	}{plain: (*plain)(f)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	f.Amount = amountText(aux.Amount)
	return nil
}

// UnmarshalJSON treats a blank or non-numeric amount as unset. Party
// amounts are replaced by the payment total before anything is sent.
func (p *Party) UnmarshalJSON(b []byte) error {
	type plain Party
	aux := struct {
		*plain
		Amount json.RawMessage `json:"amount"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	p.Amount = decimal.NullDecimal{}
	if d, err := decimal.NewFromString(amountText(aux.Amount)); err == nil {
		p.Amount = decimal.NewNullDecimal(d)
	}
	return nil
}

// UnmarshalJSON accepts the amount as a number or a string.
func (e *Expense) UnmarshalJSON(b []byte) error {
	type plain Expense
	aux := struct {
		*plain
		Amount json.RawMessage `json:"amount"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	e.Amount = amountText(aux.Amount)
	return nil
}
