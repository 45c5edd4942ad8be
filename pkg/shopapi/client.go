package shopapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	pkgerrors "github.com/angelmondragon/spicy-pepper-shop/pkg/errors"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/types"
)

const (
	defaultBaseURL = "http://localhost:3333/api"
	defaultTimeout = 10 * time.Second

	HeaderAdminName     = "x-admin-name"
	HeaderAdminPassword = "x-admin-password"
)

var errBaseURLInvalid = errors.New("shop api base url must be absolute")

// APIError is a non-2xx answer from the shop API. Message is the body's error
// field, or "Request failed: <status>" when the body carries none.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is the typed request helper for the shop's /api surface.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	http       *resty.Client
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient builds a client for the API rooted at baseURL (for example
// http://localhost:3333/api). An empty baseURL uses the local default.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, errBaseURLInvalid
	}

	client := &Client{baseURL: trimmed, timeout: defaultTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient != nil {
		client.http = resty.NewWithClient(client.httpClient)
	} else {
		client.http = resty.New()
	}
	client.http.
		SetBaseURL(client.baseURL).
		SetTimeout(client.timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return client, nil
}

// BaseURL reports the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type call struct {
	method  string
	path    string
	body    any
	query   map[string]string
	headers map[string]string
	out     any
}

func (c *Client) do(ctx context.Context, req call) error {
	if c == nil || c.http == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "shop api client not configured")
	}

	r := c.http.R().SetContext(ctx).SetError(&types.ErrorBody{})
	if req.body != nil {
		r.SetBody(req.body)
	}
	if req.out != nil {
		r.SetResult(req.out)
	}
	for k, v := range req.query {
		r.SetQueryParam(k, v)
	}
	for k, v := range req.headers {
		r.SetHeader(k, v)
	}

	resp, err := r.Execute(req.method, req.path)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("%s %s", req.method, req.path))
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

func apiError(resp *resty.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		Body:       strings.TrimSpace(string(resp.Body())),
	}
	if body, ok := resp.Error().(*types.ErrorBody); ok && body != nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = fmt.Sprintf("Request failed: %d", apiErr.StatusCode)
	}
	return apiErr
}
