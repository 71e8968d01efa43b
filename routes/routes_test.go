package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/auth"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/common/middleware"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/controllers"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/routes"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	session := auth.NewSession(auth.NewMemoryTokenStore(), zap.NewNop())
	client := clients.NewAPIClient("http://backend.invalid/api", time.Second)

	routes.RegisterRoutes(r, routes.Controllers{
		Auth:      controllers.NewAuthController(nil, time.Hour, false),
		Locations: controllers.NewLocationController(nil),
		Deals:     controllers.NewDealController(nil),
		Payments:  controllers.NewPaymentController(nil, nil),
		Ledger:    controllers.NewLedgerController(nil),
		Proxy:     controllers.NewProxyController(client),
	}, middleware.RequireSession(session, nil))
	return r
}

func TestHealth(t *testing.T) {
	r := setupRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r := setupRouter()

	paths := []struct{ method, path string }{
		{http.MethodGet, "/bff/deals/7/payments"},
		{http.MethodPost, "/bff/deals"},
		{http.MethodGet, "/bff/deals"},
		{http.MethodPut, "/bff/deals/7"},
		{http.MethodPost, "/bff/deals/7/expenses"},
		{http.MethodGet, "/bff/ledger/export.csv"},
		{http.MethodDelete, "/bff/deals/7/payments/1/proofs/2"},
		{http.MethodGet, "/bff/owners/4"},
		{http.MethodDelete, "/bff/admin/users/9"},
	}
	for _, p := range paths {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, p.path)
	}
}

func TestUnknownSessionIsExpired(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/bff/locations/states", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "gone"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session expired")
}
