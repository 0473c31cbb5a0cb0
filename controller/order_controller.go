package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
	"github.com/a-nebula-dev/ProjectLaserBunny/sales"
)

type OrderController struct {
	Sales *sales.Service
}

func (oc *OrderController) List(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}

	orders, total, err := oc.Sales.ListSales(c.Context(), sales.ListFilter{
		PaymentStatus: c.Query("paymentStatus"),
		Limit:         limit,
		Offset:        (page - 1) * limit,
	})
	if err != nil {
		return fail(c, 500, "failed to fetch orders")
	}
	if orders == nil {
		orders = []model.Sale{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (oc *OrderController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, 400, "invalid id")
	}

	sale, err := oc.Sales.GetSaleByID(c.Context(), uint(id))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": sale})
}

type fulfillmentRequest struct {
	Status       string `json:"status"`
	TrackingCode string `json:"tracking_code"`
}

func (oc *OrderController) UpdateFulfillment(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, 400, "invalid id")
	}

	var req fulfillmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid payload")
	}

	sale, err := oc.Sales.UpdateFulfillment(c.Context(), uint(id),
		model.FulfillmentStatus(req.Status), req.TrackingCode)
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": sale})
}
