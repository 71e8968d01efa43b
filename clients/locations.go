package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
)

// LocationsAPI covers /locations.
type LocationsAPI struct {
	c *APIClient
}

func (c *APIClient) Locations() *LocationsAPI { return &LocationsAPI{c: c} }

func (l *LocationsAPI) States(ctx context.Context) ([]models.State, error) {
	var out []models.State
	if err := l.c.doJSON(ctx, http.MethodGet, "/locations/states", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *LocationsAPI) Districts(ctx context.Context, state string) ([]models.District, error) {
	var out []models.District
	q := url.Values{"state": {state}}
	if err := l.c.doJSON(ctx, http.MethodGet, "/locations/districts", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
