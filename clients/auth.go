package clients

import (
	"context"
	"net/http"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
)

// Login exchanges credentials for a bearer token. It never sends a token.
func (c *APIClient) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.doJSON(WithToken(ctx, ""), http.MethodPost, "/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
