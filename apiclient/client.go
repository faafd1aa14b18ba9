// Package apiclient is the single point of outbound HTTP to the WordPress backend.
// Every call returns a Response envelope; failures never escape as errors or panics.
package apiclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"casa_portal_go/config"
	"casa_portal_go/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Path prefixes below the base path
const (
	FormsPrefix = "/gf/v2"
	CasaPrefix  = "/casa/v1"
)

// HeaderRequestID is propagated to the backend on every call
const HeaderRequestID = "X-Request-ID"

// Response is the uniform result of a backend call
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Status  int             `json:"-"`
	// Raw is the unparsed response body (CSV exports are not JSON)
	Raw []byte `json:"-"`
}

// Client talks to the remote REST API. A Client is safe for concurrent use;
// per-request session state is attached with WithSession.
type Client struct {
	baseURL   string
	basePath  string
	http      *http.Client
	formsAuth string
	store     session.Store
	nav       session.Navigator
	logger    *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the transport (tests, custom TLS)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client for the configured backend
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.APITimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	baseURL := strings.TrimSuffix(cfg.APIBaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost"
	}
	basePath := "/" + strings.Trim(cfg.APIBasePath, "/")
	if basePath == "/" {
		basePath = ""
	}

	c := &Client{
		baseURL:   baseURL,
		basePath:  basePath,
		http:      &http.Client{Timeout: timeout},
		formsAuth: basicAuth(cfg.FormsAPIKey, cfg.FormsAPISecret),
		nav:       session.NopNavigator{},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	registerMetrics()
	return c
}

// WithSession returns a shallow copy bound to one caller's session
func (c *Client) WithSession(store session.Store, nav session.Navigator) *Client {
	cp := *c
	cp.store = store
	cp.nav = nav
	if cp.nav == nil {
		cp.nav = session.NopNavigator{}
	}
	return &cp
}

// Session returns the store bound to this client (nil when unbound)
func (c *Client) Session() session.Store {
	return c.store
}

// Logger returns the client's logger
func (c *Client) Logger() *zap.Logger {
	return c.logger
}

// URL returns the absolute URL for a path below the base path
func (c *Client) URL(path string) string {
	return c.baseURL + c.basePath + "/" + strings.TrimPrefix(path, "/")
}

type requestOptions struct {
	query         url.Values
	headers       http.Header
	skipUnauthRed bool
}

// RequestOption adjusts a single call
type RequestOption func(*requestOptions)

// WithQuery appends query parameters
func WithQuery(q url.Values) RequestOption {
	return func(o *requestOptions) {
		for k, vs := range q {
			for _, v := range vs {
				o.query.Add(k, v)
			}
		}
	}
}

// WithHeader sets an extra request header
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.headers.Set(key, value)
	}
}

// WithoutUnauthorizedRedirect keeps the session untouched on 401.
// Used for credential exchange, where 401 means "wrong username" and not "session expired".
func WithoutUnauthorizedRedirect() RequestOption {
	return func(o *requestOptions) {
		o.skipUnauthRed = true
	}
}

// Request performs a JSON call. body is marshalled unless it is nil, []byte or io.Reader.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}, opts ...RequestOption) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("backend request panicked", zap.String("method", method), zap.String("path", path), zap.Any("panic", r))
			resp = Response{Success: false, Error: fmt.Sprint(r)}
		}
	}()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	case io.Reader:
		reader = b
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return Response{Success: false, Error: err.Error()}
		}
		reader = bytes.NewReader(data)
	}

	return c.do(ctx, method, path, reader, "application/json", -1, opts)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, length int64, opts []RequestOption) Response {
	o := requestOptions{query: url.Values{}, headers: http.Header{}}
	for _, opt := range opts {
		opt(&o)
	}

	target := c.URL(path)
	if len(o.query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + o.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}
	if length >= 0 {
		req.ContentLength = length
	}
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(HeaderRequestID, requestID)
	c.applyAuth(req, path)
	for k, vs := range o.headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	ns := namespaceOf(path)
	start := time.Now()
	httpResp, err := c.http.Do(req)
	if err != nil {
		observe(ns, method, "error", time.Since(start))
		c.logger.Warn("backend unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return Response{Success: false, Error: MsgNoResponse}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	observe(ns, method, strconv.Itoa(httpResp.StatusCode), time.Since(start))
	if err != nil {
		return Response{Success: false, Error: err.Error(), Status: httpResp.StatusCode}
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		// a forms-plugin 401 rejects the Basic-Auth pair, not the session
		if httpResp.StatusCode == http.StatusUnauthorized && !o.skipUnauthRed && !isFormsPath(path) {
			c.handleUnauthorized()
		}
		msg := ExtractErrorMessage(httpResp.StatusCode, raw)
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", httpResp.StatusCode),
			zap.String("request_id", requestID),
			zap.String("error", msg),
		)
		return Response{Success: false, Error: msg, Status: httpResp.StatusCode, Raw: raw}
	}

	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return Response{Success: true, Data: asJSON(raw), Status: httpResp.StatusCode, Raw: raw}
}

// applyAuth sets Basic-Auth for the forms plugin and the session bearer token everywhere else.
// The token is read from the store on every call.
func (c *Client) applyAuth(req *http.Request, path string) {
	if isFormsPath(path) && c.formsAuth != "" {
		req.Header.Set("Authorization", c.formsAuth)
		return
	}
	if c.store == nil {
		return
	}
	if token := c.store.Get(session.KeyAuthToken); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) handleUnauthorized() {
	if c.store != nil {
		c.store.Clear(session.UnauthorizedKeys...)
	}
	c.logger.Info("backend session expired, redirecting to login")
	c.nav.RedirectToLogin()
}

func isFormsPath(path string) bool {
	p := "/" + strings.TrimPrefix(path, "/")
	return p == FormsPrefix || strings.HasPrefix(p, FormsPrefix+"/")
}

func namespaceOf(path string) string {
	p := "/" + strings.TrimPrefix(path, "/")
	switch {
	case isFormsPath(p):
		return "forms"
	case strings.HasPrefix(p, CasaPrefix+"/") || p == CasaPrefix:
		return "casa"
	default:
		return "wp"
	}
}

// asJSON keeps valid JSON as is and wraps anything else as a JSON string
func asJSON(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return json.RawMessage("null")
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	encoded, _ := json.Marshal(string(raw))
	return json.RawMessage(encoded)
}

func basicAuth(key, secret string) string {
	if key == "" && secret == "" {
		return ""
	}
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(key+":"+secret))
}

type requestIDKey struct{}

// ContextWithRequestID makes outgoing calls reuse an inbound request id
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id stored by ContextWithRequestID
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
