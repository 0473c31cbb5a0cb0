package controller

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	stripe "github.com/stripe/stripe-go/v79"

	"github.com/a-nebula-dev/ProjectLaserBunny/payment"
	"github.com/a-nebula-dev/ProjectLaserBunny/sales"
)

// EventDeduper records applied provider event ids. Marking happens only
// after the sale update commits, so a delivery that failed to apply is
// never mistaken for a processed one.
type EventDeduper interface {
	Processed(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string) error
}

type WebhookController struct {
	Sales    *sales.Service
	Provider payment.Provider
	Dedup    EventDeduper // optional
}

// HandleStripe is the one-way push channel from the payment provider.
// Signature verification fails closed; everything that verifies is
// acknowledged with 200 so the provider stops redelivering, whether or not
// it maps to a sale.
func (wc *WebhookController) HandleStripe(c *fiber.Ctx) error {
	signature := c.Get("Stripe-Signature")
	if signature == "" {
		return fail(c, 400, "missing signature")
	}

	event, err := wc.Provider.VerifyEvent(c.Body(), signature)
	if err != nil {
		log.Printf("webhook signature verification failed: %v", err)
		return fail(c, 400, "invalid signature")
	}

	if wc.Dedup != nil {
		seen, err := wc.Dedup.Processed(c.Context(), event.ID)
		if err != nil {
			// dedup store down: apply anyway, the update is idempotent
			log.Printf("webhook dedup unavailable: %v", err)
		} else if seen {
			log.Printf("webhook event %s already processed", event.ID)
			return c.SendStatus(200)
		}
	}

	paymentEvent, ok := parsePaymentEvent(event)
	if !ok {
		// forward-compatible no-op for event kinds we do not track
		return c.SendStatus(200)
	}

	if err := wc.Sales.ApplyPaymentEvent(c.Context(), paymentEvent); err != nil {
		log.Printf("webhook handler error for event %s: %v", event.ID, err)
		return fail(c, 500, "webhook handler error")
	}

	if wc.Dedup != nil {
		// marked only after the update committed; a 500 above leaves the
		// id unmarked so the provider's retry still applies
		if err := wc.Dedup.MarkProcessed(c.Context(), event.ID); err != nil {
			log.Printf("webhook dedup mark failed for event %s: %v", event.ID, err)
		}
	}
	return c.SendStatus(200)
}

func parsePaymentEvent(event stripe.Event) (sales.PaymentEvent, bool) {
	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed", "payment_intent.processing":
	default:
		return sales.PaymentEvent{}, false
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		log.Printf("webhook event %s: malformed payment intent: %v", event.ID, err)
		return sales.PaymentEvent{}, false
	}

	paymentEvent := sales.PaymentEvent{
		ID:          event.ID,
		Kind:        string(event.Type),
		IntentID:    pi.ID,
		SaleID:      pi.Metadata["sale_id"],
		OrderNumber: pi.Metadata["order_number"],
	}
	paymentEvent.Methods = pi.PaymentMethodTypes
	if pi.LastPaymentError != nil {
		paymentEvent.FailureMessage = pi.LastPaymentError.Msg
	}
	return paymentEvent, true
}
