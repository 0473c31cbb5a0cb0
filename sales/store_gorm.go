package sales

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
)

// GormStore backs ProductStore and SaleStore with postgres. Every sale
// mutation is a single-row write, so payment status, history append and
// updated_at land together.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	var p model.Product
	if err := s.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) CreateSale(ctx context.Context, sale *model.Sale) error {
	return s.DB.WithContext(ctx).Create(sale).Error
}

func (s *GormStore) GetSale(ctx context.Context, id uint) (*model.Sale, error) {
	var sale model.Sale
	if err := s.DB.WithContext(ctx).First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

func (s *GormStore) GetSaleByOrderNumber(ctx context.Context, orderNumber string) (*model.Sale, error) {
	var sale model.Sale
	err := s.DB.WithContext(ctx).Where("order_number = ?", orderNumber).First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

func (s *GormStore) UpdateSale(ctx context.Context, sale *model.Sale) error {
	return s.DB.WithContext(ctx).Save(sale).Error
}

func (s *GormStore) ListSales(ctx context.Context, filter ListFilter) ([]model.Sale, int64, error) {
	query := s.DB.WithContext(ctx).Model(&model.Sale{})
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sales []model.Sale
	err := query.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&sales).Error
	if err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}
