package controllers

import (
	"net/http"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/common/middleware"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/gin-gonic/gin"
)

// AuthController issues and ends BFF sessions.
type AuthController struct {
	sessions     services.SessionService
	ttl          time.Duration
	secureCookie bool
}

// NewAuthController creates a new AuthController. The session cookie lives
// for ttl and is marked Secure when secureCookie is set.
func NewAuthController(svc services.SessionService, ttl time.Duration, secureCookie bool) *AuthController {
	return &AuthController{sessions: svc, ttl: ttl, secureCookie: secureCookie}
}

// Login handles POST /bff/auth/login
func (ac *AuthController) Login(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	res, svcErr := ac.sessions.Login(ctx.Request.Context(), &req)
	if svcErr != nil {
		// A rejected login is not an expired session.
		if svcErr.StatusCode == http.StatusUnauthorized {
			ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
			return
		}
		respondError(ctx, svcErr)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, res.SessionID, int(ac.ttl.Seconds()), "/", "", ac.secureCookie, true)
	ctx.JSON(http.StatusOK, gin.H{"user": res.User})
}

// Logout handles POST /bff/auth/logout
func (ac *AuthController) Logout(ctx *gin.Context) {
	sid, _ := ctx.Cookie(middleware.SessionCookie)
	if svcErr := ac.sessions.Logout(ctx.Request.Context(), sid); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", "", ac.secureCookie, true)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Status handles GET /bff/auth/status
func (ac *AuthController) Status(ctx *gin.Context) {
	sid, _ := ctx.Cookie(middleware.SessionCookie)
	ctx.JSON(http.StatusOK, ac.sessions.Status(ctx.Request.Context(), sid))
}
