package sales

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
)

// EventPublisher pushes order lifecycle events to downstream consumers.
// Publishing is fire-and-forget; failures never affect the request.
type EventPublisher interface {
	Publish(topic string, event map[string]interface{})
}

type Service struct {
	Products ProductStore
	Sales    SaleStore
	Events   EventPublisher // optional
}

const orderNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateOrderNumber() string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = orderNumberCharset[rand.Intn(len(orderNumberCharset))]
	}
	return fmt.Sprintf("LB-%s-%s", time.Now().Format("20060102"), suffix)
}

func (s *Service) GetSaleByID(ctx context.Context, id uint) (*model.Sale, error) {
	sale, err := s.Sales.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

func (s *Service) ListSales(ctx context.Context, filter ListFilter) ([]model.Sale, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.Sales.ListSales(ctx, filter)
}

func (s *Service) publish(topic string, event map[string]interface{}) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(topic, event)
}
