package sales

import (
	"context"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
)

// ProductStore is the slice of the catalog the checkout pipeline needs:
// authoritative product lookups by id. A nil product means not found.
type ProductStore interface {
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
}

type ListFilter struct {
	PaymentStatus string
	Limit         int
	Offset        int
}

type SaleStore interface {
	CreateSale(ctx context.Context, sale *model.Sale) error
	GetSale(ctx context.Context, id uint) (*model.Sale, error)
	GetSaleByOrderNumber(ctx context.Context, orderNumber string) (*model.Sale, error)
	UpdateSale(ctx context.Context, sale *model.Sale) error
	ListSales(ctx context.Context, filter ListFilter) ([]model.Sale, int64, error)
}
