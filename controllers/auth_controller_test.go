package controllers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/common/middleware"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/controllers"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(svc services.SessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	c := controllers.NewAuthController(svc, time.Hour, false)

	r.POST("/auth/login", c.Login)
	r.POST("/auth/logout", c.Logout)
	r.GET("/auth/status", c.Status)
	return r
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	svc := &mockSessionSvc{result: &services.LoginResult{SessionID: "sid-1", User: models.User{ID: "3", Username: "ravi"}}}
	r := setupAuthRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"username":"ravi","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.Equal(t, "sid-1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.NotContains(t, w.Body.String(), "sid-1")
}

func TestLogin_RejectedIsNotSessionExpired(t *testing.T) {
	svc := &mockSessionSvc{svcErr: &services.ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid username or password"}}
	r := setupAuthRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"username":"ravi","password":"bad"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Invalid username or password", resp["error"])
	assert.Nil(t, resp["redirect"])
}

func TestLogout_ClearsCookie(t *testing.T) {
	svc := &mockSessionSvc{}
	r := setupAuthRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "sid-1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sid-1", svc.loggedOut)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
}

func TestStatus(t *testing.T) {
	r := setupAuthRouter(&mockSessionSvc{})

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["authenticated"])
}
