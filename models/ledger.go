package models

import (
	"net/url"
	"reflect"
)

// LedgerFilter is the facet set sent to the ledger endpoints. Empty facets
// are omitted from the query.
type LedgerFilter struct {
	DealID       string `form:"deal_id" url:"deal_id" json:"deal_id,omitempty"`
	PaymentMode  string `form:"payment_mode" url:"payment_mode" json:"payment_mode,omitempty"`
	PartyType    string `form:"party_type" url:"party_type" json:"party_type,omitempty" validate:"omitempty,oneof=owner investor buyer other"`
	PartyID      string `form:"party_id" url:"party_id" json:"party_id,omitempty"`
	PaymentType  string `form:"payment_type" url:"payment_type" json:"payment_type,omitempty" validate:"omitempty,oneof=land_purchase investment_sale documentation_legal other"`
	PersonSearch string `form:"person_search" url:"person_search" json:"person_search,omitempty"`
	Status       string `form:"status" url:"status" json:"status,omitempty" validate:"omitempty,oneof=paid pending"`
	StartDate    string `form:"start_date" url:"start_date" json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `form:"end_date" url:"end_date" json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MinAmount    string `form:"min_amount" url:"min_amount" json:"min_amount,omitempty" validate:"omitempty,numeric"`
	MaxAmount    string `form:"max_amount" url:"max_amount" json:"max_amount,omitempty" validate:"omitempty,numeric"`
}

// Query encodes the non-empty facets as URL query parameters.
func (f LedgerFilter) Query() url.Values {
	q := url.Values{}
	v := reflect.ValueOf(f)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		val := v.Field(i).String()
		if val == "" {
			continue
		}
		q.Set(t.Field(i).Tag.Get("url"), val)
	}
	return q
}

// LedgerSummary counts the rows of a ledger result by status.
type LedgerSummary struct {
	Total   int `json:"total"`
	Paid    int `json:"paid"`
	Pending int `json:"pending"`
}

// Summarize counts rows by status.
func Summarize(rows []Payment) LedgerSummary {
	s := LedgerSummary{Total: len(rows)}
	for _, r := range rows {
		switch r.Status {
		case StatusPaid:
			s.Paid++
		case StatusPending:
			s.Pending++
		}
	}
	return s
}
