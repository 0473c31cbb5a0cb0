package sales

import (
	"context"
	"math"
	"time"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
	"github.com/a-nebula-dev/ProjectLaserBunny/shipping"
)

type DraftItem struct {
	ProductID uint     `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Weight    *float64 `json:"weight"`
}

// SelectedShipping is the client's shipping choice. It is never trusted:
// the option set is recomputed and the choice matched against it by its
// deterministic service code.
type SelectedShipping struct {
	ServiceCode string  `json:"service_code"`
	QuoteID     string  `json:"quote_id"`
	Price       float64 `json:"price"`
}

type DraftInput struct {
	UserID        *string
	Items         []DraftItem
	Address       model.Customer
	Shipping      SelectedShipping
	PaymentMethod string
}

func mapPaymentMethod(method string) string {
	switch method {
	case "pix", "google-pay", "other":
		return method
	default:
		return "stripe-card"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateDraft turns an unvalidated cart + address + shipping choice into a
// persisted pending sale. Validate-then-commit: any failure before the
// final insert leaves no record behind.
func (s *Service) CreateDraft(ctx context.Context, in DraftInput) (*model.Sale, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if len(shipping.Normalize(in.Address.CEP)) != 8 {
		return nil, ErrInvalidAddress
	}

	// Re-fetch every line from the catalog; cart-held prices are never
	// trusted.
	saleItems := make(model.SaleItemList, 0, len(in.Items))
	for _, item := range in.Items {
		product, err := s.Products.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		unitPrice := product.Price
		if !isFinite(unitPrice) || unitPrice <= 0 {
			return nil, ErrInvalidPrice
		}

		weight := product.Weight
		if weight <= 0 && item.Weight != nil {
			weight = *item.Weight
		}
		if weight <= 0 {
			weight = shipping.DefaultItemWeight
		}

		saleItems = append(saleItems, model.SaleItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			Weight:    weight,
			Image:     product.Image,
		})
	}

	option, err := s.matchShipping(in.Address.CEP, saleItems, in.Shipping)
	if err != nil {
		return nil, err
	}

	subtotal := 0.0
	for _, item := range saleItems {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	subtotal = round2(subtotal)
	total := round2(subtotal + option.Price)
	if !isFinite(total) || total <= 0 {
		return nil, ErrInvalidTotal
	}

	now := time.Now()
	sale := &model.Sale{
		OrderNumber: generateOrderNumber(),
		UserID:      in.UserID,
		Customer:    in.Address,
		Items:       saleItems,
		Totals: model.Totals{
			Subtotal: subtotal,
			Shipping: option.Price,
			Total:    total,
		},
		Shipping: option,
		Payment: model.Payment{
			Method: mapPaymentMethod(in.PaymentMethod),
			Status: model.PaymentPending,
			History: model.PaymentHistory{
				{Status: model.PaymentPending, Timestamp: now},
			},
		},
		Fulfillment: model.Fulfillment{Status: model.FulfillmentPending},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Sales.CreateSale(ctx, sale); err != nil {
		return nil, err
	}

	s.publish("order.created", map[string]interface{}{
		"sale_id":      sale.ID,
		"order_number": sale.OrderNumber,
		"total":        sale.Totals.Total,
		"created_at":   sale.CreatedAt.Format(time.RFC3339),
	})

	return sale, nil
}

// matchShipping recomputes the quote menu for the submitted address and
// item weights and matches the client's choice against it. A stale or
// tampered selection fails here, before anything is written.
func (s *Service) matchShipping(cep string, items model.SaleItemList, selected SelectedShipping) (model.ShippingOption, error) {
	quoteItems := make([]shipping.QuoteItem, 0, len(items))
	for _, item := range items {
		weight := item.Weight
		quoteItems = append(quoteItems, shipping.QuoteItem{
			Quantity: item.Quantity,
			Weight:   &weight,
		})
	}

	options, err := shipping.Quote(cep, quoteItems)
	if err != nil {
		return model.ShippingOption{}, ErrInvalidAddress
	}

	requested := selected.ServiceCode
	if requested == "" {
		requested = selected.QuoteID
	}

	for _, option := range options {
		if option.ServiceCode != requested {
			continue
		}
		if !isFinite(selected.Price) || math.Abs(selected.Price-option.Price) > 0.01 {
			return model.ShippingOption{}, ErrShippingPriceMismatch
		}
		option.QuoteID = selected.QuoteID
		return option, nil
	}
	return model.ShippingOption{}, ErrShippingMismatch
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
