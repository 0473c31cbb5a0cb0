package payment

import (
	"context"
	"errors"
	"math"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

var ErrNotConfigured = errors.New("payment provider not configured")

// Intent is the client-usable payment handle returned after a sale draft
// is persisted.
type Intent struct {
	ClientSecret string
	IntentID     string
}

// Provider is the payment side of checkout. Creating an intent never
// touches the sale's payment status; only verified webhook events do.
type Provider interface {
	Configured() bool
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*Intent, error)
	VerifyEvent(payload []byte, signatureHeader string) (stripe.Event, error)
}

// MinorUnits converts a major-unit amount to the provider's minor-unit
// integer representation, floored at zero.
func MinorUnits(amount float64) int64 {
	minor := int64(math.Round(amount * 100))
	if minor < 0 {
		return 0
	}
	return minor
}

type StripeProvider struct {
	SecretKey     string
	WebhookSecret string

	api *client.API
}

func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	p := &StripeProvider{SecretKey: secretKey, WebhookSecret: webhookSecret}
	if secretKey != "" {
		p.api = &client.API{}
		p.api.Init(secretKey, nil)
	}
	return p
}

func (p *StripeProvider) Configured() bool {
	return p.SecretKey != ""
}

func (p *StripeProvider) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*Intent, error) {
	if !p.Configured() {
		return nil, ErrNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	return &Intent{ClientSecret: pi.ClientSecret, IntentID: pi.ID}, nil
}

// VerifyEvent authenticates a raw webhook delivery against the pre-shared
// secret. It fails closed: an event that does not verify is never parsed
// further.
func (p *StripeProvider) VerifyEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, signatureHeader, p.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
}
