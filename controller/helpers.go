package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/a-nebula-dev/ProjectLaserBunny/payment"
	"github.com/a-nebula-dev/ProjectLaserBunny/sales"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, sales.ErrEmptyCart),
		errors.Is(err, sales.ErrInvalidAddress),
		errors.Is(err, sales.ErrInvalidQuantity),
		errors.Is(err, sales.ErrInvalidPrice),
		errors.Is(err, sales.ErrInvalidTotal),
		errors.Is(err, sales.ErrInvalidStatus):
		return fiber.StatusBadRequest
	case errors.Is(err, sales.ErrProductNotFound),
		errors.Is(err, sales.ErrSaleNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, sales.ErrShippingMismatch),
		errors.Is(err, sales.ErrShippingPriceMismatch),
		errors.Is(err, sales.ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, payment.ErrNotConfigured):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": message})
}

func failErr(c *fiber.Ctx, err error) error {
	return fail(c, statusForError(err), err.Error())
}

func formatUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
