package ocpay

import (
	"fmt"
	"regexp"
	"time"
)

// FeeMode selects which party absorbs withdrawal fees for a payment link.
type FeeMode string

const (
	FeeModeNoFee       FeeMode = "NO_FEE"
	FeeModeSplitFee    FeeMode = "SPLIT_FEE"
	FeeModeCustomerFee FeeMode = "CUSTOMER_FEE"
)

// Valid reports whether the fee mode is one of the values the gateway accepts.
func (m FeeMode) Valid() bool {
	switch m {
	case FeeModeNoFee, FeeModeSplitFee, FeeModeCustomerFee:
		return true
	}
	return false
}

// Field length and amount bounds enforced before any network call.
const (
	MaxTitleLength          = 200
	MaxDescriptionLength    = 1000
	MaxSuccessMessageLength = 500

	// Amounts are whole currency units, inclusive on both ends.
	MinAmount int64 = 500
	MaxAmount int64 = 500000
)

// ProductInfo describes the single product a payment link charges for.
type ProductInfo struct {
	Title       string `json:"title"`
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty"`
}

// LinkCreationRequest is the outbound body for link creation.
type LinkCreationRequest struct {
	Product        ProductInfo `json:"productInfo"`
	FeeMode        FeeMode     `json:"feeMode"`
	SuccessMessage string      `json:"successMessage,omitempty"`
	RedirectURL    string      `json:"redirectUrl,omitempty"`
}

// PaymentLink is the server-issued link record echoed back on creation.
// It is a value object; the SDK never mutates or stores it.
type PaymentLink struct {
	UID            string      `json:"uid"`
	Ref            string      `json:"ref"`
	IsSandbox      bool        `json:"isSandbox"`
	Product        ProductInfo `json:"productInfo"`
	FeeMode        FeeMode     `json:"feeMode"`
	SuccessMessage string      `json:"successMessage,omitempty"`
	RedirectURL    string      `json:"redirectUrl,omitempty"`
	Time           string      `json:"time"`
}

// CreatedAt parses the link's creation time (ISO-8601 as sent by the gateway).
func (l *PaymentLink) CreatedAt() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, l.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse payment link time %q: %w", l.Time, err)
	}
	return t, nil
}

// ProbablyExpired reports whether the link is older than LinkTTL at the given
// instant. This is a caller-side optimization to skip a status round trip for
// links that cannot still be payable; the server's status response remains the
// only authoritative source of truth. Returns false when the creation time
// cannot be parsed.
func (l *PaymentLink) ProbablyExpired(now time.Time) bool {
	created, err := l.CreatedAt()
	if err != nil {
		return false
	}
	return now.Sub(created) > LinkTTL
}

// paymentRefPattern matches gateway refs of the form OCPL-XXXXXX-YYYY.
var paymentRefPattern = regexp.MustCompile(`^OCPL-[A-Z0-9]{6}-[0-9]{4}$`)

// IsPaymentRef reports whether s is shaped like a gateway payment reference.
// The gateway treats refs as opaque; this is a cheap pre-check used by the
// middleware packages to reject junk before spending a network call.
func IsPaymentRef(s string) bool {
	return paymentRefPattern.MatchString(s)
}

// TransactionDetails carries settlement data once a payment has been made.
type TransactionDetails struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	IsSandbox   bool   `json:"isSandbox"`
	CreatedDate string `json:"createdDate"`
}

// CreateLinkResponse is the result of a successful link creation.
type CreateLinkResponse struct {
	PaymentLink PaymentLink `json:"paymentLink"`
	PaymentURL  string      `json:"paymentUrl"`
	PaymentRef  string      `json:"paymentRef"`
}

// CheckPaymentResponse is the result of polling a link's settlement status.
// TransactionDetails is nil until the gateway has settlement data to report.
type CheckPaymentResponse struct {
	Status             PaymentStatus       `json:"status"`
	Message            string              `json:"message,omitempty"`
	PaymentRef         string              `json:"paymentRef"`
	TransactionDetails *TransactionDetails `json:"transactionDetails,omitempty"`
}

// IsPending reports whether the payment is still awaiting settlement.
func (r *CheckPaymentResponse) IsPending() bool { return r.Status == StatusPending }

// IsConfirmed reports whether the payment settled successfully.
func (r *CheckPaymentResponse) IsConfirmed() bool { return r.Status == StatusConfirmed }

// IsFailed reports whether the payment was declined, cancelled, or expired.
func (r *CheckPaymentResponse) IsFailed() bool { return r.Status == StatusFailed }
