// Package ocpay is a client for the OneCash payment-link gateway. A merchant
// creates a single-use payment link, hands the returned URL to the customer,
// and polls the link's ref for the settlement outcome.
//
// The client is stateless: each operation is one synchronous HTTP exchange,
// any number of calls may run concurrently, and nothing is cached or retried.
// Persistence of refs and creation timestamps, retry policy, and polling
// intervals all belong to the caller.
package ocpay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the production gateway endpoint.
	DefaultBaseURL = "https://api.onecash.io"

	// DefaultTimeout bounds each call when no custom HTTP client is supplied.
	DefaultTimeout = 30 * time.Second

	createLinkPath   = "/v3/ocpay/createLink"
	checkPaymentPath = "/v3/ocpay/checkPayment/"
)

// Client talks to the OneCash gateway. Construct it with NewClient; the zero
// value is not usable.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client

	beforeHooks  []BeforeRequestHook
	afterHooks   []AfterRequestHook
	failureHooks []RequestFailureHook
}

// ClientOption configures a Client at construction.
type ClientOption func(*Client)

// WithBaseURL points the client at a different gateway endpoint, e.g. a
// sandbox or an httptest server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout overrides the default per-call timeout. Ignored when
// WithHTTPClient is also given; configure that client's timeout directly.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient supplies a custom HTTP client, e.g. one with a recording
// transport for tests or an instrumented RoundTripper.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBeforeRequestHook registers a before-request hook at construction.
func WithBeforeRequestHook(hook BeforeRequestHook) ClientOption {
	return func(c *Client) {
		c.beforeHooks = append(c.beforeHooks, hook)
	}
}

// WithAfterRequestHook registers an after-request hook at construction.
func WithAfterRequestHook(hook AfterRequestHook) ClientOption {
	return func(c *Client) {
		c.afterHooks = append(c.afterHooks, hook)
	}
}

// WithRequestFailureHook registers a request-failure hook at construction.
func WithRequestFailureHook(hook RequestFailureHook) ClientOption {
	return func(c *Client) {
		c.failureHooks = append(c.failureHooks, hook)
	}
}

// NewClient builds a gateway client authenticated by the merchant's access
// token.
func NewClient(accessToken string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CreateLink validates the request locally, then asks the gateway for a new
// single-use payment link. Validation failures surface as *ValidationError
// before any network traffic; gateway failures surface as *APIError.
//
// The caller owns persisting the returned PaymentRef (and the link's creation
// time, if it wants the ProbablyExpired shortcut) for later polling.
func (c *Client) CreateLink(ctx context.Context, req *LinkCreationRequest) (*CreateLinkResponse, error) {
	if req == nil {
		return nil, &ValidationError{Field: "request", Value: nil, Message: "request must not be nil"}
	}

	// Requests built as struct literals get the same feeMode default as
	// constructor-built ones.
	normalized := *req
	if normalized.FeeMode == "" {
		normalized.FeeMode = FeeModeNoFee
	}
	if err := normalized.Validate(); err != nil {
		return nil, err
	}

	data, err := c.doRequest(ctx, http.MethodPost, createLinkPath, &normalized)
	if err != nil {
		return nil, err
	}

	var result CreateLinkResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, newAPIError(http.StatusOK, fmt.Sprintf("decode createLink data: %v", err), "", nil)
	}

	return &result, nil
}

// CheckPayment polls the settlement status of the link identified by ref.
// Polling is idempotent and side-effect-free; call it as often as the
// caller's backoff policy allows.
//
// An unknown or missing status on the wire is reported as PENDING rather
// than an error, so polling loops keep working if the gateway grows its
// status vocabulary. Everything else about the response decodes strictly.
func (c *Client) CheckPayment(ctx context.Context, ref string) (*CheckPaymentResponse, error) {
	if ref == "" {
		return nil, &ValidationError{Field: "ref", Value: ref, Message: "payment ref must not be empty"}
	}

	data, err := c.doRequest(ctx, http.MethodGet, checkPaymentPath+url.PathEscape(ref), nil)
	if err != nil {
		return nil, err
	}

	var wire struct {
		Status             string              `json:"status"`
		Message            string              `json:"message"`
		PaymentRef         string              `json:"paymentRef"`
		TransactionDetails *TransactionDetails `json:"transactionDetails"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, newAPIError(http.StatusOK, fmt.Sprintf("decode checkPayment data: %v", err), "", nil)
	}

	status, err := ParsePaymentStatus(wire.Status)
	if err != nil {
		status = StatusPending
	}

	return &CheckPaymentResponse{
		Status:             status,
		Message:            wire.Message,
		PaymentRef:         wire.PaymentRef,
		TransactionDetails: wire.TransactionDetails,
	}, nil
}
