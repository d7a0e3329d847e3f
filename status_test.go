package ocpay

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "CONFIRMED", "FAILED"} {
		got, err := ParsePaymentStatus(s)
		require.NoError(t, err)
		assert.Equal(t, PaymentStatus(s), got)
	}

	for _, s := range []string{"", "pending", "SETTLED", "EXPIRED"} {
		_, err := ParsePaymentStatus(s)
		assert.Error(t, err, "status %q should not parse", s)
	}
}

func TestPaymentStatusUnmarshalFailsClosed(t *testing.T) {
	var s PaymentStatus
	require.NoError(t, json.Unmarshal([]byte(`"CONFIRMED"`), &s))
	assert.Equal(t, StatusConfirmed, s)

	assert.Error(t, json.Unmarshal([]byte(`"SETTLING"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`42`), &s))
}

func TestPaymentStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
}

func TestPaymentLinkProbablyExpired(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	link := PaymentLink{Time: now.Add(-5 * time.Minute).Format(time.RFC3339)}
	assert.False(t, link.ProbablyExpired(now))

	link.Time = now.Add(-21 * time.Minute).Format(time.RFC3339)
	assert.True(t, link.ProbablyExpired(now))

	// Unparseable creation time never claims expiry; the server decides.
	link.Time = "last tuesday"
	assert.False(t, link.ProbablyExpired(now))
}

func TestIsPaymentRef(t *testing.T) {
	assert.True(t, IsPaymentRef("OCPL-A1B2C3-0042"))
	assert.False(t, IsPaymentRef(""))
	assert.False(t, IsPaymentRef("OCPL-a1b2c3-0042"))
	assert.False(t, IsPaymentRef("XXPL-A1B2C3-0042"))
	assert.False(t, IsPaymentRef("OCPL-A1B2C3-42"))
}
