package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
	"github.com/a-nebula-dev/ProjectLaserBunny/payment"
	"github.com/a-nebula-dev/ProjectLaserBunny/sales"
	"github.com/a-nebula-dev/ProjectLaserBunny/shipping"
)

type CheckoutController struct {
	Sales    *sales.Service
	Provider payment.Provider
}

type quoteRequest struct {
	CEP   string               `json:"cep"`
	Items []shipping.QuoteItem `json:"items"`
}

func (cc *CheckoutController) Quote(c *fiber.Ctx) error {
	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid payload")
	}
	if req.CEP == "" || len(req.Items) == 0 {
		return fail(c, 400, "cep and items are required")
	}

	options, err := shipping.Quote(req.CEP, req.Items)
	if err != nil {
		return fail(c, 400, "invalid cep")
	}
	return c.JSON(fiber.Map{"success": true, "options": options})
}

type intentRequest struct {
	Items         []sales.DraftItem      `json:"items"`
	Shipping      sales.SelectedShipping `json:"shipping"`
	Address       model.Customer         `json:"address"`
	PaymentMethod string                 `json:"payment_method"`
	UserID        *string                `json:"user_id"`
}

// CreateIntent drafts the sale and requests the provider payment intent.
// A provider failure after the draft is persisted leaves the sale pending
// for manual follow-up; there is no compensating delete.
func (cc *CheckoutController) CreateIntent(c *fiber.Ctx) error {
	if !cc.Provider.Configured() {
		return fail(c, 500, "payment provider not configured")
	}

	var req intentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid payload")
	}

	userID := req.UserID
	if authenticated, ok := c.Locals("user_id").(string); ok && authenticated != "" {
		userID = &authenticated
	}

	sale, err := cc.Sales.CreateDraft(c.Context(), sales.DraftInput{
		UserID:        userID,
		Items:         req.Items,
		Address:       req.Address,
		Shipping:      req.Shipping,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return failErr(c, err)
	}

	intent, err := cc.Provider.CreateIntent(c.Context(),
		payment.MinorUnits(sale.Totals.Total), "brl", map[string]string{
			"sale_id":          formatUint(sale.ID),
			"order_number":     sale.OrderNumber,
			"shipping_service": sale.Shipping.ServiceCode,
		})
	if err != nil {
		log.Printf("payment intent failed for sale %d: %v", sale.ID, err)
		return fail(c, 502, "payment provider error")
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"client_secret":     intent.ClientSecret,
		"sale_id":           sale.ID,
		"order_number":      sale.OrderNumber,
		"payment_intent_id": intent.IntentID,
	})
}
