package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMinorUnits(t *testing.T) {
	require.Equal(t, int64(14200), MinorUnits(142.00))
	require.Equal(t, int64(4999), MinorUnits(49.99))
	require.Equal(t, int64(1), MinorUnits(0.009))
	require.Equal(t, int64(0), MinorUnits(0))
	require.Equal(t, int64(0), MinorUnits(-10.50))
}

func TestCreateIntentUnconfigured(t *testing.T) {
	p := NewStripeProvider("", "")
	_, err := p.CreateIntent(context.Background(), 14200, "brl", nil)
	require.ErrorIs(t, err, ErrNotConfigured)
}

// SignTestPayload builds a valid Stripe-Signature header for a payload, the
// same HMAC-SHA256 over "timestamp.payload" scheme the provider uses.
func SignTestPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyEvent(t *testing.T) {
	const secret = "whsec_test"
	p := NewStripeProvider("sk_test_x", secret)

	payload := []byte(`{"id":"evt_1","object":"event","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","object":"payment_intent","metadata":{"sale_id":"1"}}}}`)

	event, err := p.VerifyEvent(payload, SignTestPayload(payload, secret))
	require.NoError(t, err)
	require.Equal(t, "evt_1", event.ID)
	require.Equal(t, "payment_intent.succeeded", string(event.Type))

	_, err = p.VerifyEvent(payload, SignTestPayload(payload, "whsec_other"))
	require.Error(t, err)

	_, err = p.VerifyEvent(payload, "t=123,v1=deadbeef")
	require.Error(t, err)
}
