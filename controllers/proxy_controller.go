package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	apperrors "github.com/Harshit-patil56/Land-deals-manager-sub000/common/errors"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/common/middleware"
	"github.com/gin-gonic/gin"
)

// forwardedHeaders are the request headers passed through to the backend.
// Authorization is set by the API client from the session.
var forwardedHeaders = []string{"Content-Type", "Accept"}

// ProxyController passes CRUD pages the BFF adds nothing to straight
// through to the backend.
type ProxyController struct {
	client *clients.APIClient
}

func NewProxyController(client *clients.APIClient) *ProxyController {
	return &ProxyController{client: client}
}

// Proxy forwards the request to path on the backend. Route parameters in
// path, such as ":id", are filled from the request.
func (pc *ProxyController) Proxy(method, path string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		target := path
		for _, p := range ctx.Params {
			target = strings.ReplaceAll(target, ":"+p.Key, p.Value)
		}

		var body io.Reader
		if ctx.Request.Body != nil && ctx.Request.ContentLength != 0 {
			raw, err := io.ReadAll(ctx.Request.Body)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
			body = clients.BodyFromBytes(raw)
		}

		headers := http.Header{}
		for _, h := range forwardedHeaders {
			if v := ctx.GetHeader(h); v != "" {
				headers.Set(h, v)
			}
		}

		resp, err := pc.client.Do(ctx.Request.Context(), method, target, ctx.Request.URL.Query(), headers, body)
		if err != nil {
			_ = ctx.Error(apperrors.FromTransport(err))
			return
		}
		if resp.StatusCode == http.StatusUnauthorized {
			resp.Body.Close()
			middleware.AbortSessionExpired(ctx)
			return
		}

		if err := clients.CopyResponse(ctx.Writer, resp); err != nil {
			_ = ctx.Error(err)
		}
	}
}
