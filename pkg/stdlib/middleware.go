// Package stdlib gates net/http handlers on a confirmed OneCash payment link.
package stdlib

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	ocpay "github.com/onecash/ocpay-go"
)

// DefaultRefHeader and DefaultRefQuery are where the payment ref is looked up.
const (
	DefaultRefHeader = "X-Payment-Ref"
	DefaultRefQuery  = "paymentRef"
)

type contextKey struct{}

// PaymentFromContext returns the confirmed payment stored by the middleware,
// or nil when the request did not pass through it.
func PaymentFromContext(ctx context.Context) *ocpay.CheckPaymentResponse {
	payment, _ := ctx.Value(contextKey{}).(*ocpay.CheckPaymentResponse)
	return payment
}

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
// the query parameter. One status check per request, no caching.
func PaymentConfirmedMiddleware(client *ocpay.Client, opts ...Options) func(http.Handler) http.Handler {
	options := &MiddlewareOptions{
		RefHeader: DefaultRefHeader,
		RefQuery:  DefaultRefQuery,
	}

	for _, opt := range opts {
		opt(options)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ref := r.Header.Get(options.RefHeader)
			if ref == "" {
				ref = r.URL.Query().Get(options.RefQuery)
			}
			if !ocpay.IsPaymentRef(ref) {
				writeErrorResponse(w, http.StatusPaymentRequired, "a payment ref is required")
				return
			}

			payment, err := client.CheckPayment(r.Context(), ref)
			if err != nil {
				status := http.StatusBadGateway
				switch {
				case errors.Is(err, ocpay.ErrLinkExpired):
					status = http.StatusGone
				case errors.Is(err, ocpay.ErrNotFound):
					status = http.StatusNotFound
				}
				writeErrorResponse(w, status, err.Error())
				return
			}

			if !payment.IsConfirmed() {
				writeErrorResponse(w, http.StatusPaymentRequired, "payment not confirmed")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, payment)))
		})
	}
}

// writeErrorResponse writes an error response with the given status code and message.
func writeErrorResponse(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]any{
		"error": errorMsg,
	})
}
