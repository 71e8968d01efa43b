package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/common/logger"
	"go.uber.org/zap"
)

// TokenSource supplies the bearer token attached to backend calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

type tokenKey struct{}

// WithToken returns a context whose calls use token instead of the client's
// TokenSource. The BFF uses it to forward the caller's own bearer token. An
// empty token sends the request without Authorization.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey{}).(string)
	return t, ok
}

// APIClient talks to the land-deals REST backend.
type APIClient struct {
	baseURL        string
	client         *http.Client
	tokens         TokenSource
	onUnauthorized func(ctx context.Context)
	logger         *zap.Logger
}

// Option configures an APIClient.
type Option func(*APIClient)

// WithTokenSource sets where bearer tokens come from when the request
// context carries none.
func WithTokenSource(ts TokenSource) Option {
	return func(c *APIClient) { c.tokens = ts }
}

// WithUnauthorizedHandler registers a hook run on every 401 response.
func WithUnauthorizedHandler(fn func(ctx context.Context)) Option {
	return func(c *APIClient) { c.onUnauthorized = fn }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) { c.client = hc }
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *APIClient) { c.logger = logger }
}

func NewAPIClient(baseURL string, timeout time.Duration, opts ...Option) *APIClient {
	c := &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *APIClient) BaseURL() string { return c.baseURL }

// Do sends a request to the backend with the bearer token and the caller's
// request id attached. A 401 to a request that carried a token triggers the
// unauthorized hook before it is returned; a rejected login has no session
// to end.
func (c *APIClient) Do(ctx context.Context, method, path string, query url.Values, headers http.Header, body io.Reader) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	for k, v := range headers {
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}

	if rid := logger.RequestIDFrom(ctx); rid != "unknown" {
		req.Header.Set(logger.RequestIDHeader, rid)
	}

	token, ok := tokenFromContext(ctx)
	if !ok && c.tokens != nil {
		if token, err = c.tokens.Token(ctx); err != nil {
			return nil, fmt.Errorf("resolve token: %w", err)
		}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", logger.RequestIDFrom(ctx)),
			zap.Error(err),
		)
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" && c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
	return resp, nil
}

// doJSON encodes in (when non-nil) as the request body and decodes the
// response into out (when non-nil).
func (c *APIClient) doJSON(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	var body io.Reader
	headers := http.Header{}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
		headers.Set("Content-Type", "application/json")
	}
	headers.Set("Accept", "application/json")

	resp, err := c.Do(ctx, method, path, query, headers, body)
	if err != nil {
		return err
	}
	return DecodeJSON(resp, out)
}

func (c *APIClient) doMultipart(ctx context.Context, path string, form *MultipartForm, out interface{}) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return err
	}
	headers := http.Header{}
	headers.Set("Content-Type", contentType)
	headers.Set("Accept", "application/json")

	resp, err := c.Do(ctx, http.MethodPost, path, nil, headers, body)
	if err != nil {
		return err
	}
	return DecodeJSON(resp, out)
}

// DecodeJSON closes the response body. Error statuses become *APIError;
// otherwise the body is decoded into out unless out is nil.
func DecodeJSON(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return newAPIError(resp, body)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// CopyResponse streams a backend response to w unchanged.
func CopyResponse(w http.ResponseWriter, resp *http.Response) error {
	defer resp.Body.Close()

	for k, v := range resp.Header {
		for _, vv := range v {
			w.Header().Add(k, vv)
		}
	}
	w.WriteHeader(resp.StatusCode)

	_, err := io.Copy(w, resp.Body)
	return err
}

// BodyFromBytes returns nil for an empty body so no Content-Length is sent.
func BodyFromBytes(b []byte) io.Reader {
	if len(b) == 0 {
		return nil
	}
	return bytes.NewReader(b)
}
