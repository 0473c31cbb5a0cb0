package sales

import (
	"context"
	"time"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
)

var fulfillmentRank = map[model.FulfillmentStatus]int{
	model.FulfillmentPending:   0,
	model.FulfillmentPacking:   1,
	model.FulfillmentShipped:   2,
	model.FulfillmentDelivered: 3,
}

// UpdateFulfillment applies an admin shipment update. Transitions only move
// forward through pending -> packing -> shipped -> delivered; re-asserting
// the current status is allowed (e.g. to attach a tracking code).
// shipped_at stamps the first time the status becomes shipped and is never
// overwritten.
func (s *Service) UpdateFulfillment(ctx context.Context, saleID uint, status model.FulfillmentStatus, trackingCode string) (*model.Sale, error) {
	rank, ok := fulfillmentRank[status]
	if !ok {
		return nil, ErrInvalidStatus
	}

	sale, err := s.Sales.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}

	if rank < fulfillmentRank[sale.Fulfillment.Status] {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	sale.Fulfillment.Status = status
	if status == model.FulfillmentShipped && sale.Fulfillment.ShippedAt == nil {
		sale.Fulfillment.ShippedAt = &now
	}
	if trackingCode != "" {
		sale.Fulfillment.TrackingCode = trackingCode
	}
	sale.UpdatedAt = now

	if err := s.Sales.UpdateSale(ctx, sale); err != nil {
		return nil, err
	}

	s.publish("order.fulfillment_updated", map[string]interface{}{
		"sale_id":       sale.ID,
		"order_number":  sale.OrderNumber,
		"status":        string(status),
		"tracking_code": sale.Fulfillment.TrackingCode,
	})

	return sale, nil
}
