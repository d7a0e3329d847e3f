package ocpay

import (
	"encoding/json"
	"fmt"
	"time"
)

// PaymentStatus is the settlement state of a payment link.
//
// The state machine is server-authoritative and strictly forward:
//
//	PENDING -> CONFIRMED (terminal, paid)
//	PENDING -> FAILED    (terminal, declined, cancelled, or expired)
//
// The SDK never transitions a status locally; it only reports what the
// gateway returned.
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "PENDING"
	StatusConfirmed PaymentStatus = "CONFIRMED"
	StatusFailed    PaymentStatus = "FAILED"
)

// LinkTTL is how long the gateway keeps an unpaid link payable. After this
// window the server transitions the link to FAILED on its side.
const LinkTTL = 20 * time.Minute

// ParsePaymentStatus converts a wire string into a PaymentStatus. The status
// set is closed; anything else is an error.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case StatusPending, StatusConfirmed, StatusFailed:
		return PaymentStatus(s), nil
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}

// Valid reports whether the status is a member of the closed status set.
func (s PaymentStatus) Valid() bool {
	_, err := ParsePaymentStatus(string(s))
	return err == nil
}

// IsTerminal reports whether the status can no longer change.
func (s PaymentStatus) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusFailed
}

// UnmarshalJSON fails closed: an unrecognized wire value is an error, never a
// silent default. The one deliberate exception is Client.CheckPayment, which
// treats an unknown or missing status as PENDING so polling loops survive
// gateway-side enum additions; that leniency lives in the decode path there,
// not here.
func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("payment status must be a string: %w", err)
	}
	parsed, err := ParsePaymentStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
