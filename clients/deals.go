package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
)

// DealsAPI covers /deals and the shared /upload endpoint.
type DealsAPI struct {
	c *APIClient
}

func (c *APIClient) Deals() *DealsAPI { return &DealsAPI{c: c} }

func (d *DealsAPI) GetAll(ctx context.Context) ([]models.Deal, error) {
	var out []models.Deal
	if err := d.c.doJSON(ctx, http.MethodGet, "/deals", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *DealsAPI) GetByID(ctx context.Context, id string) (*models.Deal, error) {
	var out models.Deal
	if err := d.c.doJSON(ctx, http.MethodGet, "/deals/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (d *DealsAPI) Create(ctx context.Context, in *models.DealInput) (*models.CreateDealResponse, error) {
	var out models.CreateDealResponse
	if err := d.c.doJSON(ctx, http.MethodPost, "/deals", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (d *DealsAPI) Update(ctx context.Context, id string, in *models.DealInput) error {
	return d.c.doJSON(ctx, http.MethodPut, "/deals/"+url.PathEscape(id), nil, in, nil)
}

func (d *DealsAPI) Delete(ctx context.Context, id string) error {
	return d.c.doJSON(ctx, http.MethodDelete, "/deals/"+url.PathEscape(id), nil, nil, nil)
}

func (d *DealsAPI) AddExpense(ctx context.Context, dealID string, expense *models.Expense) error {
	return d.c.doJSON(ctx, http.MethodPost, "/deals/"+url.PathEscape(dealID)+"/expenses", nil, expense, nil)
}

// UploadDocument posts one file for a deal to /upload.
func (d *DealsAPI) UploadDocument(ctx context.Context, dealID, documentType string, file File) error {
	form := NewMultipartForm().
		File("file", file).
		Field("deal_id", dealID).
		Field("document_type", documentType)
	return d.c.doMultipart(ctx, "/upload", form, nil)
}
