package controller

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
	"github.com/a-nebula-dev/ProjectLaserBunny/sales"
)

const testWebhookSecret = "whsec_test"

func webhookTestApp(t *testing.T) (*fiber.App, *memSaleStore, *memDeduper) {
	t.Helper()

	saleStore := newMemSaleStore()
	productStore := &memProductStore{m: map[uint]*model.Product{
		1: {ID: 1, Name: "Laser Bunny Tee", Price: 50.00, Weight: 1.0},
	}}
	svc := &sales.Service{Products: productStore, Sales: saleStore}

	weight := 1.0
	_, err := svc.CreateDraft(context.Background(), sales.DraftInput{
		Items: []sales.DraftItem{{ProductID: 1, Quantity: 2, Weight: &weight}},
		Address: model.Customer{
			FullName: "Ana Souza", Email: "ana@example.com", CEP: "01001000",
			Street: "Praça da Sé", Number: "100", City: "São Paulo", State: "SP",
		},
		Shipping:      sales.SelectedShipping{ServiceCode: "pac-01001000", Price: 42.00},
		PaymentMethod: "stripe-card",
	})
	require.NoError(t, err)

	dedup := newMemDeduper()
	wc := &WebhookController{
		Sales:    svc,
		Provider: newFakeProvider(testWebhookSecret),
		Dedup:    dedup,
	}

	app := fiber.New()
	app.Post("/api/stripe/webhook", wc.HandleStripe)
	return app, saleStore, dedup
}

func succeededPayload(eventID string, saleID uint) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"object": "event",
		"type": "payment_intent.succeeded",
		"data": {
			"object": {
				"id": "pi_123",
				"object": "payment_intent",
				"payment_method_types": ["card"],
				"metadata": {"sale_id": "%d", "order_number": ""}
			}
		}
	}`, eventID, saleID))
}

func postWebhook(t *testing.T, app *fiber.App, payload []byte, signature string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/stripe/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestWebhookAppliesVerifiedEvent(t *testing.T) {
	app, store, _ := webhookTestApp(t)
	payload := succeededPayload("evt_1", 1)

	status := postWebhook(t, app, payload, signPayload(payload, testWebhookSecret))
	require.Equal(t, 200, status)

	sale := store.m[1]
	require.Equal(t, model.PaymentPaid, sale.Payment.Status)
	require.Len(t, sale.Payment.History, 2)
	require.Equal(t, "pi_123", sale.Payment.ProviderID)
	require.Equal(t, "card", sale.Payment.Metadata["method"])
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	app, store, _ := webhookTestApp(t)
	payload := succeededPayload("evt_1", 1)

	require.Equal(t, 400, postWebhook(t, app, payload, ""))
	require.Equal(t, 400, postWebhook(t, app, payload, "t=1,v1=deadbeef"))
	require.Equal(t, 400, postWebhook(t, app, payload, signPayload(payload, "whsec_wrong")))

	// no payload content gets through an unverified delivery
	sale := store.m[1]
	require.Equal(t, model.PaymentPending, sale.Payment.Status)
	require.Len(t, sale.Payment.History, 1)
}

func TestWebhookDeduplicatesByEventID(t *testing.T) {
	app, store, _ := webhookTestApp(t)
	payload := succeededPayload("evt_1", 1)

	require.Equal(t, 200, postWebhook(t, app, payload, signPayload(payload, testWebhookSecret)))
	require.Equal(t, 200, postWebhook(t, app, payload, signPayload(payload, testWebhookSecret)))

	sale := store.m[1]
	require.Equal(t, model.PaymentPaid, sale.Payment.Status)
	// second delivery acked but not reapplied
	require.Len(t, sale.Payment.History, 2)
}

func TestWebhookRetryAfterStoreFailureStillApplies(t *testing.T) {
	app, store, dedup := webhookTestApp(t)
	store.failUpdates = 1
	payload := succeededPayload("evt_1", 1)

	// transient store failure: the delivery errors and the event id must
	// not be recorded as processed
	require.Equal(t, 500, postWebhook(t, app, payload, signPayload(payload, testWebhookSecret)))
	require.Equal(t, model.PaymentPending, store.m[1].Payment.Status)
	require.False(t, dedup.seen["evt_1"])

	// the provider redelivers and the event applies this time
	require.Equal(t, 200, postWebhook(t, app, payload, signPayload(payload, testWebhookSecret)))
	require.Equal(t, model.PaymentPaid, store.m[1].Payment.Status)
	require.Len(t, store.m[1].Payment.History, 2)
	require.True(t, dedup.seen["evt_1"])
}

func TestWebhookRedeliveryWithoutDedupIsHarmless(t *testing.T) {
	app, store, _ := webhookTestApp(t)
	payload1 := succeededPayload("evt_1", 1)
	payload2 := succeededPayload("evt_2", 1)

	require.Equal(t, 200, postWebhook(t, app, payload1, signPayload(payload1, testWebhookSecret)))
	require.Equal(t, 200, postWebhook(t, app, payload2, signPayload(payload2, testWebhookSecret)))

	sale := store.m[1]
	require.Equal(t, model.PaymentPaid, sale.Payment.Status)
	require.Len(t, sale.Payment.History, 3)
}

func TestWebhookUnknownEventKindIsAcked(t *testing.T) {
	app, store, _ := webhookTestApp(t)
	payload := []byte(`{
		"id": "evt_9",
		"object": "event",
		"type": "charge.refund.updated",
		"data": {"object": {"id": "ch_1", "object": "charge"}}
	}`)

	require.Equal(t, 200, postWebhook(t, app, payload, signPayload(payload, testWebhookSecret)))
	require.Equal(t, model.PaymentPending, store.m[1].Payment.Status)
}

func TestWebhookUnknownSaleIsAcked(t *testing.T) {
	app, store, _ := webhookTestApp(t)
	payload := succeededPayload("evt_1", 999)

	require.Equal(t, 200, postWebhook(t, app, payload, signPayload(payload, testWebhookSecret)))
	require.Equal(t, model.PaymentPending, store.m[1].Payment.Status)
}
