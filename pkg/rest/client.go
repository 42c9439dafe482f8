package rest

import (
	"context"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/matzehuels/opencga/pkg/buildinfo"
	apierrors "github.com/matzehuels/opencga/pkg/errors"
	"github.com/matzehuels/opencga/pkg/observability"
)

const (
	// DefaultVersion is the REST API version used when none is configured.
	DefaultVersion = "v2"

	// DefaultTimeout bounds a single request when no timeout is configured.
	DefaultTimeout = 30 * time.Second

	// RequestIDHeader carries the per-request correlation ID.
	RequestIDHeader = "X-Request-Id"

	restPrefix = "webservices/rest"
)

// Logger receives diagnostics from the underlying HTTP client.
// *log.Logger from charmbracelet/log satisfies it.
type Logger interface {
	Errorf(format string, v ...any)
	Warnf(format string, v ...any)
	Debugf(format string, v ...any)
}

// Config configures a [Client].
type Config struct {
	Host       string            // Server base URL, e.g. "https://ws.opencb.org/opencga-prod"
	Version    string            // API version, defaults to DefaultVersion
	Token      string            // Bearer token, optional
	Timeout    time.Duration     // Per-request timeout, defaults to DefaultTimeout
	Headers    map[string]string // Extra headers sent on every request
	Logger     Logger            // Optional sink for transport diagnostics
	HTTPClient *http.Client      // Optional underlying client
}

// Client sends requests to one OpenCGA server.
// It is safe for concurrent use.
type Client struct {
	http    *resty.Client
	baseURL *url.URL
	version string
	token   string
}

// NewClient validates cfg and returns a ready client.
func NewClient(cfg Config) (*Client, error) {
	host := NormalizeHost(cfg.Host)
	if err := apierrors.ValidateURL(host); err != nil {
		return nil, err
	}
	base, err := url.Parse(host)
	if err != nil {
		return nil, apierrors.Wrap(apierrors.ErrCodeInvalidURL, err, "parse host")
	}

	version := cfg.Version
	if version == "" {
		version = DefaultVersion
	}
	if err := apierrors.ValidateAPIVersion(version); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var hc *resty.Client
	if cfg.HTTPClient != nil {
		hc = resty.NewWithClient(cfg.HTTPClient)
	} else {
		hc = resty.New()
	}
	hc.SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", buildinfo.UserAgent()).
		SetHeaders(cfg.Headers)
	if cfg.Logger != nil {
		hc.SetLogger(cfg.Logger)
	}

	return &Client{
		http:    hc,
		baseURL: base,
		version: version,
		token:   cfg.Token,
	}, nil
}

// NormalizeHost trims whitespace and trailing slashes from host and
// defaults the scheme to https.
func NormalizeHost(host string) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host != "" && !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return host
}

// Host returns the normalized server base URL.
func (c *Client) Host() string { return c.baseURL.String() }

// Version returns the API version.
func (c *Client) Version() string { return c.version }

// Request names the path components of an endpoint.
// Empty optional components are omitted from the URL.
type Request struct {
	Category    string // e.g. "operation"
	QueryID     string // optional, follows Category
	Subcategory string // optional, e.g. "variant"
	SecondID    string // optional, follows Subcategory
	Resource    string // e.g. "aggregate" or "secondary_index"
}

// Path returns the endpoint path below the versioned REST root.
// The resource is sent in camelCase, matching the server's route names.
func (r Request) Path() string {
	parts := []string{r.Category}
	if r.QueryID != "" {
		parts = append(parts, url.PathEscape(r.QueryID))
	}
	if r.Subcategory != "" {
		parts = append(parts, r.Subcategory)
	}
	if r.SecondID != "" {
		parts = append(parts, url.PathEscape(r.SecondID))
	}
	parts = append(parts, CamelCase(r.Resource))
	return strings.Join(parts, "/")
}

// Endpoint returns the absolute URL of r without a query string.
func (c *Client) Endpoint(r Request) string {
	return c.baseURL.String() + "/" + restPrefix + "/" + c.version + "/" + r.Path()
}

// Post sends data as a JSON body. Nil data sends no body.
func (c *Client) Post(ctx context.Context, r Request, data any, opts Options) (*Response, error) {
	return c.Execute(ctx, http.MethodPost, r, data, opts)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, r Request, opts Options) (*Response, error) {
	return c.Execute(ctx, http.MethodDelete, r, nil, opts)
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, r Request, opts Options) (*Response, error) {
	return c.Execute(ctx, http.MethodGet, r, nil, opts)
}

// Execute performs a single request. It never retries.
//
// A non-2xx status returns both the response and a coded error.
// A transport failure returns a nil response.
func (c *Client) Execute(ctx context.Context, method string, r Request, data any, opts Options) (*Response, error) {
	if r.Category == "" || r.Resource == "" {
		return nil, apierrors.New(apierrors.ErrCodeInvalidInput, "request needs a category and a resource")
	}

	endpoint := c.Endpoint(r)
	info := observability.RequestInfo{
		ID:     uuid.NewString(),
		Method: method,
		Host:   c.baseURL.Host,
		Path:   c.baseURL.Path + "/" + restPrefix + "/" + c.version + "/" + r.Path(),
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, info.ID).
		SetQueryParamsFromValues(opts.Values())
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	if !isNilBody(data) {
		req.SetHeader("Content-Type", "application/json").SetBody(data)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, info)

	raw, err := req.Execute(method, endpoint)
	if err != nil {
		hooks.OnError(ctx, info, err)
		return nil, transportError(method, endpoint, err)
	}

	resp := &Response{
		StatusCode: raw.StatusCode(),
		Header:     raw.Header(),
		Body:       raw.Body(),
		Duration:   raw.Time(),
		RequestID:  info.ID,
	}
	hooks.OnResponse(ctx, info, resp.StatusCode, resp.Duration)

	if err := checkStatus(method, endpoint, resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// isNilBody reports whether data carries no payload. A typed nil pointer,
// map, slice or interface counts as no body.
func isNilBody(data any) bool {
	if data == nil {
		return true
	}
	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
