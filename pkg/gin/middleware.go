// Package gin gates Gin routes on a confirmed OneCash payment link.
package gin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ocpay "github.com/onecash/ocpay-go"
)

// ContextKey is where the middleware stores the *ocpay.CheckPaymentResponse
// for confirmed requests.
const ContextKey = "ocpay.payment"

// DefaultRefHeader and DefaultRefQuery are where the payment ref is looked up.
const (
	DefaultRefHeader = "X-Payment-Ref"
	DefaultRefQuery  = "paymentRef"
)

// MiddlewareOptions is the options for PaymentConfirmedMiddleware.
type MiddlewareOptions struct {
	RefHeader string
	RefQuery  string
}

// Options is the type for the options for PaymentConfirmedMiddleware.
type Options func(*MiddlewareOptions)

// WithRefHeader overrides the header the payment ref is read from.
func WithRefHeader(header string) Options {
	return func(options *MiddlewareOptions) {
		options.RefHeader = header
	}
}

// WithRefQuery overrides the query parameter the payment ref is read from.
func WithRefQuery(query string) Options {
	return func(options *MiddlewareOptions) {
		options.RefQuery = query
	}
}

// PaymentConfirmedMiddleware rejects requests that do not carry the ref of a
// CONFIRMED payment link. The ref is taken from the configured header, then
// the query parameter. One status check per request, no caching; callers who
// need caching own it themselves.
func PaymentConfirmedMiddleware(client *ocpay.Client, opts ...Options) gin.HandlerFunc {
	options := &MiddlewareOptions{
		RefHeader: DefaultRefHeader,
		RefQuery:  DefaultRefQuery,
	}

	for _, opt := range opts {
		opt(options)
	}

	return func(c *gin.Context) {
		ref := c.GetHeader(options.RefHeader)
		if ref == "" {
			ref = c.Query(options.RefQuery)
		}
		if !ocpay.IsPaymentRef(ref) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "a payment ref is required",
			})
			return
		}

		payment, err := client.CheckPayment(c.Request.Context(), ref)
		if err != nil {
			status := http.StatusBadGateway
			switch {
			case errors.Is(err, ocpay.ErrLinkExpired):
				status = http.StatusGone
			case errors.Is(err, ocpay.ErrNotFound):
				status = http.StatusNotFound
			}
			c.AbortWithStatusJSON(status, gin.H{
				"error": err.Error(),
			})
			return
		}

		if !payment.IsConfirmed() {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error":  "payment not confirmed",
				"status": payment.Status,
			})
			return
		}

		c.Set(ContextKey, payment)
		c.Next()
	}
}
