package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/auth"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie carries the BFF session id issued at login.
	SessionCookie = "landdeals_session"

	UserContextKey    = "user"
	SessionContextKey = "session_id"

	LoginPath = "/login"
)

// AbortSessionExpired answers the uniform 401 every view handles the same
// way: the front-end drops its state and goes to the login page.
func AbortSessionExpired(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    "Session expired",
		"redirect": LoginPath,
	})
}

// RequireSession resolves the caller's backend token. A bearer header is
// forwarded as is; otherwise the session cookie is looked up in the store.
// Either way the token must not be expired, and with a Verifier it must
// also carry a valid signature.
func RequireSession(session *auth.Session, verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if header := c.GetHeader("Authorization"); header != "" {
			if !strings.HasPrefix(header, "Bearer ") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")
			claims, err := verifier.Verify(token, time.Now())
			if err != nil {
				AbortSessionExpired(c)
				return
			}
			c.Set(UserContextKey, models.User{ID: claims.UserID, Username: claims.Username, Role: claims.Role})
			c.Request = c.Request.WithContext(clients.WithToken(ctx, token))
			c.Next()
			return
		}

		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is required", "redirect": LoginPath})
			return
		}

		ctx = auth.WithKey(ctx, sid)
		rec, err := session.Current(ctx)
		if err != nil {
			AbortSessionExpired(c)
			return
		}
		if verifier != nil {
			if _, err := verifier.Verify(rec.Token, time.Now()); err != nil {
				session.HandleUnauthorized(ctx)
				AbortSessionExpired(c)
				return
			}
		}

		c.Set(SessionContextKey, sid)
		c.Set(UserContextKey, rec.User)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetUser returns the user RequireSession attached to the request.
func GetUser(c *gin.Context) (models.User, error) {
	val, exists := c.Get(UserContextKey)
	if !exists {
		return models.User{}, errors.New("user not found in context")
	}
	user, ok := val.(models.User)
	if !ok {
		return models.User{}, errors.New("user has invalid type in context")
	}
	return user, nil
}
