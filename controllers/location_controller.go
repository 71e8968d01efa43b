package controllers

import (
	"net/http"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/gin-gonic/gin"
)

// LocationController serves the state and district pickers.
type LocationController struct {
	locations services.LocationService
}

func NewLocationController(svc services.LocationService) *LocationController {
	return &LocationController{locations: svc}
}

// States handles GET /bff/locations/states
func (lc *LocationController) States(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, lc.locations.States(ctx.Request.Context()))
}

// Districts handles GET /bff/locations/districts?state=
func (lc *LocationController) Districts(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, lc.locations.Districts(ctx.Request.Context(), ctx.Query("state")))
}
