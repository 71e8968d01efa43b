package routes

import (
	"net/http"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/controllers"
	"github.com/gin-gonic/gin"
)

// Controllers bundles every handler the BFF exposes.
type Controllers struct {
	Auth      *controllers.AuthController
	Locations *controllers.LocationController
	Deals     *controllers.DealController
	Payments  *controllers.PaymentController
	Ledger    *controllers.LedgerController
	Proxy     *controllers.ProxyController
}

// RegisterRoutes sets up the /bff surface. requireSession guards every
// route except login, logout, status and health.
func RegisterRoutes(r *gin.Engine, ctrl Controllers, requireSession gin.HandlerFunc) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// Public routes - no session required
	public := r.Group("/bff")
	{
		public.POST("/auth/login", ctrl.Auth.Login)
		public.POST("/auth/logout", ctrl.Auth.Logout)
		public.GET("/auth/status", ctrl.Auth.Status)
	}

	protected := r.Group("/bff")
	protected.Use(requireSession)
	{
		protected.GET("/locations/states", ctrl.Locations.States)
		protected.GET("/locations/districts", ctrl.Locations.Districts)

		// Deals and participant lookups
		protected.GET("/deals", ctrl.Deals.List)
		protected.POST("/deals", ctrl.Deals.Create)
		protected.GET("/deals/:id", ctrl.Deals.Get)
		protected.PUT("/deals/:id", ctrl.Deals.Update)
		protected.DELETE("/deals/:id", ctrl.Deals.Delete)
		protected.POST("/deals/:id/expenses", ctrl.Deals.AddExpense)
		protected.GET("/deals/:id/participants", ctrl.Deals.Participants)
		protected.GET("/deals/:id/targets", ctrl.Deals.Targets)

		// Payments of a deal
		protected.GET("/deals/:id/payments", ctrl.Payments.List)
		protected.POST("/deals/:id/payments", ctrl.Payments.Create)
		protected.PUT("/deals/:id/payments/:pid/notes", ctrl.Payments.Annotate)
		protected.DELETE("/deals/:id/payments/:pid", ctrl.Payments.Delete)

		// Payment proofs
		protected.GET("/deals/:id/payments/:pid/proofs", ctrl.Payments.ListProofs)
		protected.POST("/deals/:id/payments/:pid/proofs", ctrl.Payments.UploadProof)
		protected.DELETE("/deals/:id/payments/:pid/proofs/:proof_id", ctrl.Payments.DeleteProof)
		protected.POST("/deals/:id/payments/:pid/proofs/:proof_id/failed", ctrl.Payments.MarkProofFailed)

		// Ledger
		protected.GET("/ledger", ctrl.Ledger.Query)
		protected.GET("/ledger/export.csv", ctrl.Ledger.ExportCSV)
		protected.GET("/ledger/export.xlsx", ctrl.Ledger.ExportXLSX)
		protected.GET("/ledger/server.csv", ctrl.Ledger.ServerCSV)
		protected.GET("/ledger/server.pdf", ctrl.Ledger.ServerPDF)

		registerProxyRoutes(protected, ctrl.Proxy)
	}
}

func registerProxyRoutes(g *gin.RouterGroup, p *controllers.ProxyController) {
	// Owners
	g.GET("/owners", p.Proxy(http.MethodGet, "/owners"))
	g.POST("/owners", p.Proxy(http.MethodPost, "/owners"))
	g.GET("/owners/:id", p.Proxy(http.MethodGet, "/owners/:id"))
	g.PUT("/owners/:id", p.Proxy(http.MethodPut, "/owners/:id"))
	g.DELETE("/owners/:id", p.Proxy(http.MethodDelete, "/owners/:id"))
	g.GET("/owners/:id/documents", p.Proxy(http.MethodGet, "/owners/:id/documents"))
	g.POST("/owners/:id/documents", p.Proxy(http.MethodPost, "/owners/:id/documents"))

	// Investors
	g.GET("/investors", p.Proxy(http.MethodGet, "/investors"))
	g.POST("/investors", p.Proxy(http.MethodPost, "/investors"))
	g.GET("/investors/:id", p.Proxy(http.MethodGet, "/investors/:id"))
	g.PUT("/investors/:id", p.Proxy(http.MethodPut, "/investors/:id"))
	g.DELETE("/investors/:id", p.Proxy(http.MethodDelete, "/investors/:id"))
	g.GET("/investors/:id/documents", p.Proxy(http.MethodGet, "/investors/:id/documents"))

	// Admin users
	g.GET("/admin/users", p.Proxy(http.MethodGet, "/admin/users"))
	g.POST("/admin/users", p.Proxy(http.MethodPost, "/admin/users"))
	g.PUT("/admin/users/:id", p.Proxy(http.MethodPut, "/admin/users/:id"))
	g.DELETE("/admin/users/:id", p.Proxy(http.MethodDelete, "/admin/users/:id"))
}
