package ocpay

import (
	"context"
	"time"
)

// Request lifecycle hooks. They exist for observability (logging, metrics,
// tracing) at the caller's discretion; the SDK itself emits nothing. Hooks
// run synchronously on the calling goroutine in registration order.

// RequestContext describes a gateway call about to be made.
type RequestContext struct {
	Ctx       context.Context
	Method    string
	Path      string
	RequestID string
	Timestamp time.Time
}

// RequestResultContext describes a gateway call that returned a response.
type RequestResultContext struct {
	RequestContext
	StatusCode int
	Duration   time.Duration
}

// RequestFailureContext describes a gateway call that failed.
type RequestFailureContext struct {
	RequestContext
	Err      error
	Duration time.Duration
}

// BeforeRequestHook runs before the HTTP exchange. Returning an error aborts
// the call before any network traffic.
type BeforeRequestHook func(RequestContext) error

// AfterRequestHook runs after a successful HTTP exchange.
type AfterRequestHook func(RequestResultContext)

// RequestFailureHook runs when a call fails, whether at the transport level
// or as a gateway-reported error.
type RequestFailureHook func(RequestFailureContext)

// OnBeforeRequest registers a hook to run before each gateway call.
func (c *Client) OnBeforeRequest(hook BeforeRequestHook) *Client {
	c.beforeHooks = append(c.beforeHooks, hook)
	return c
}

// OnAfterRequest registers a hook to run after each successful gateway call.
func (c *Client) OnAfterRequest(hook AfterRequestHook) *Client {
	c.afterHooks = append(c.afterHooks, hook)
	return c
}

// OnRequestFailure registers a hook to run after each failed gateway call.
func (c *Client) OnRequestFailure(hook RequestFailureHook) *Client {
	c.failureHooks = append(c.failureHooks, hook)
	return c
}

func (c *Client) runBeforeHooks(rc RequestContext) error {
	for _, hook := range c.beforeHooks {
		if err := hook(rc); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) runAfterHooks(rc RequestContext, statusCode int, start time.Time) {
	for _, hook := range c.afterHooks {
		hook(RequestResultContext{
			RequestContext: rc,
			StatusCode:     statusCode,
			Duration:       time.Since(start),
		})
	}
}

func (c *Client) runFailureHooks(rc RequestContext, err error, start time.Time) {
	for _, hook := range c.failureHooks {
		hook(RequestFailureContext{
			RequestContext: rc,
			Err:            err,
			Duration:       time.Since(start),
		})
	}
}
