package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
)

// PaymentsAPI covers /payments.
type PaymentsAPI struct {
	c *APIClient
}

func (c *APIClient) Payments() *PaymentsAPI { return &PaymentsAPI{c: c} }

// List returns the payments of a deal.
func (p *PaymentsAPI) List(ctx context.Context, dealID string) ([]models.Payment, error) {
	var out []models.Payment
	if err := p.c.doJSON(ctx, http.MethodGet, "/payments/"+url.PathEscape(dealID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create records a payment. force asks the backend to skip its party
// amount consistency check.
func (p *PaymentsAPI) Create(ctx context.Context, dealID string, payload *models.PaymentPayload, force bool) (*models.CreatePaymentResponse, error) {
	var query url.Values
	if force {
		query = url.Values{"force": {"true"}}
	}
	var out models.CreatePaymentResponse
	if err := p.c.doJSON(ctx, http.MethodPost, "/payments/"+url.PathEscape(dealID), query, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update patches mutable fields of a payment.
func (p *PaymentsAPI) Update(ctx context.Context, dealID, paymentID string, update *models.PaymentUpdate) error {
	return p.c.doJSON(ctx, http.MethodPut, paymentPath(dealID, paymentID), nil, update, nil)
}

// Delete removes a payment. Its proofs are removed by the backend.
func (p *PaymentsAPI) Delete(ctx context.Context, dealID, paymentID string) error {
	return p.c.doJSON(ctx, http.MethodDelete, paymentPath(dealID, paymentID), nil, nil, nil)
}

// UploadProof attaches a file to a payment. docType may be empty.
func (p *PaymentsAPI) UploadProof(ctx context.Context, dealID, paymentID string, file File, docType string) error {
	form := NewMultipartForm().File("proof", file).Field("doc_type", docType)
	return p.c.doMultipart(ctx, paymentPath(dealID, paymentID)+"/proof", form, nil)
}

// ListProofs returns the proofs attached to a payment.
func (p *PaymentsAPI) ListProofs(ctx context.Context, dealID, paymentID string) ([]models.Proof, error) {
	var out []models.Proof
	if err := p.c.doJSON(ctx, http.MethodGet, paymentPath(dealID, paymentID)+"/proofs", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteProof removes one proof from a payment.
func (p *PaymentsAPI) DeleteProof(ctx context.Context, dealID, paymentID, proofID string) error {
	path := paymentPath(dealID, paymentID) + "/proofs/" + url.PathEscape(proofID)
	return p.c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Ledger runs a filtered ledger query on the backend.
func (p *PaymentsAPI) Ledger(ctx context.Context, filter models.LedgerFilter) ([]models.Payment, error) {
	var out []models.Payment
	if err := p.c.doJSON(ctx, http.MethodGet, "/payments/ledger", filter.Query(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LedgerCSV downloads the server-generated CSV for a filter.
func (p *PaymentsAPI) LedgerCSV(ctx context.Context, filter models.LedgerFilter) (*Blob, error) {
	return p.c.getBlob(ctx, "/payments/ledger.csv", filter.Query(), "text/csv", serverExportName(filter, "csv"))
}

// LedgerPDF downloads the server-generated PDF for a filter.
func (p *PaymentsAPI) LedgerPDF(ctx context.Context, filter models.LedgerFilter) (*Blob, error) {
	return p.c.getBlob(ctx, "/payments/ledger.pdf", filter.Query(), "application/pdf", serverExportName(filter, "pdf"))
}

func paymentPath(dealID, paymentID string) string {
	return "/payments/" + url.PathEscape(dealID) + "/" + url.PathEscape(paymentID)
}

func serverExportName(filter models.LedgerFilter, ext string) string {
	scope := filter.DealID
	if scope == "" {
		scope = "all"
	}
	return fmt.Sprintf("ledger_deal_%s.%s", scope, ext)
}
