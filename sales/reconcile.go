package sales

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
)

// PaymentEvent is a provider webhook delivery after signature verification.
type PaymentEvent struct {
	ID             string
	Kind           string
	IntentID       string
	SaleID         string
	OrderNumber    string
	Methods        []string
	FailureMessage string
}

func statusForEventKind(kind string) (model.PaymentStatus, bool) {
	switch kind {
	case "payment_intent.succeeded":
		return model.PaymentPaid, true
	case "payment_intent.payment_failed":
		return model.PaymentFailed, true
	case "payment_intent.processing":
		return model.PaymentWaitingConfirmation, true
	default:
		return "", false
	}
}

// ApplyPaymentEvent is the only writer of payment status after draft
// creation. Unknown event kinds and unknown sales are acknowledged without
// a mutation so the provider stops redelivering; reapplying a known event
// is idempotent per-field and only appends a duplicate history entry.
func (s *Service) ApplyPaymentEvent(ctx context.Context, event PaymentEvent) error {
	status, ok := statusForEventKind(event.Kind)
	if !ok {
		return nil
	}

	sale, err := s.locateSale(ctx, event)
	if err != nil {
		return err
	}
	if sale == nil {
		log.Printf("webhook: no sale for event %s (sale_id=%q order=%q)",
			event.ID, event.SaleID, event.OrderNumber)
		return nil
	}

	now := time.Now()
	sale.Payment.Status = status
	sale.Payment.History = append(sale.Payment.History, model.HistoryEntry{
		Status:    status,
		Timestamp: now,
	})
	if event.IntentID != "" {
		sale.Payment.ProviderID = event.IntentID
	}
	if metadata := eventMetadata(event); len(metadata) > 0 {
		sale.Payment.Metadata = metadata
	}
	sale.UpdatedAt = now

	if err := s.Sales.UpdateSale(ctx, sale); err != nil {
		return err
	}

	switch status {
	case model.PaymentPaid:
		s.publish("order.paid", map[string]interface{}{
			"sale_id":      sale.ID,
			"order_number": sale.OrderNumber,
			"total":        sale.Totals.Total,
			"paid_at":      now.Format(time.RFC3339),
		})
	case model.PaymentFailed:
		s.publish("order.payment_failed", map[string]interface{}{
			"sale_id":      sale.ID,
			"order_number": sale.OrderNumber,
			"reason":       event.FailureMessage,
		})
	}
	return nil
}

// locateSale resolves the provider metadata to a sale: the canonical
// numeric id first, the order number as a fallback for metadata written
// before an id existed.
func (s *Service) locateSale(ctx context.Context, event PaymentEvent) (*model.Sale, error) {
	if id, err := strconv.ParseUint(event.SaleID, 10, 32); err == nil {
		sale, err := s.Sales.GetSale(ctx, uint(id))
		if err != nil {
			return nil, err
		}
		if sale != nil {
			return sale, nil
		}
	}
	if event.OrderNumber != "" {
		return s.Sales.GetSaleByOrderNumber(ctx, event.OrderNumber)
	}
	return nil, nil
}

func eventMetadata(event PaymentEvent) datatypes.JSONMap {
	metadata := datatypes.JSONMap{}
	if event.IntentID != "" {
		metadata["payment_intent_id"] = event.IntentID
	}
	if len(event.Methods) > 0 {
		metadata["method"] = strings.Join(event.Methods, ",")
	}
	if event.FailureMessage != "" {
		metadata["failure_message"] = event.FailureMessage
	}
	return metadata
}
