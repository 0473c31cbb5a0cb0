package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentPending             PaymentStatus = "pending"
	PaymentWaitingConfirmation PaymentStatus = "waiting_confirmation"
	PaymentPaid                PaymentStatus = "paid"
	PaymentFailed              PaymentStatus = "failed"
	PaymentRefunded            PaymentStatus = "refunded"
	PaymentExpired             PaymentStatus = "expired"
)

type FulfillmentStatus string

const (
	FulfillmentPending   FulfillmentStatus = "pending"
	FulfillmentPacking   FulfillmentStatus = "packing"
	FulfillmentShipped   FulfillmentStatus = "shipped"
	FulfillmentDelivered FulfillmentStatus = "delivered"
)

// Customer is the buyer contact/address snapshot taken at draft time.
// Later profile edits never touch a placed sale.
type Customer struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Document     string `json:"document"`
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country,omitempty"`
}

func (c Customer) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *Customer) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, c)
}

type SaleItem struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Weight    float64 `json:"weight"`
	Image     string  `json:"image,omitempty"`
}

type SaleItemList []SaleItem

func (l SaleItemList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *SaleItemList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, l)
}

// ShippingOption is the carrier choice snapshot stored on the sale and
// the wire shape returned by the shipping quote endpoint.
type ShippingOption struct {
	ServiceCode string  `json:"service_code"`
	Label       string  `json:"label"`
	Provider    string  `json:"provider"`
	EtaDays     int     `json:"eta_days"`
	Price       float64 `json:"price"`
	QuoteID     string  `json:"quote_id,omitempty"`
}

func (o ShippingOption) Value() (driver.Value, error) {
	return json.Marshal(o)
}

func (o *ShippingOption) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, o)
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

type HistoryEntry struct {
	Status    PaymentStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Note      string        `json:"note,omitempty"`
}

// PaymentHistory is append-only; entries are never removed or rewritten.
type PaymentHistory []HistoryEntry

func (h PaymentHistory) Value() (driver.Value, error) {
	return json.Marshal(h)
}

func (h *PaymentHistory) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, h)
}

type Payment struct {
	Method     string            `json:"method"`
	Status     PaymentStatus     `json:"status"`
	ProviderID string            `json:"provider_id,omitempty"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	History    PaymentHistory    `json:"history" gorm:"type:jsonb"`
}

type Fulfillment struct {
	Status       FulfillmentStatus `json:"status"`
	TrackingCode string            `json:"tracking_code,omitempty"`
	ShippedAt    *time.Time        `json:"shipped_at,omitempty"`
}

// Sale is created once per checkout attempt. Customer, Items, Shipping and
// Totals are write-once snapshots; only the Payment and Fulfillment
// sub-objects are mutated afterwards, each by exactly one component.
type Sale struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderNumber string         `gorm:"uniqueIndex" json:"order_number"`
	UserID      *string        `json:"user_id"`
	Customer    Customer       `gorm:"type:jsonb" json:"customer"`
	Items       SaleItemList   `gorm:"type:jsonb" json:"items"`
	Totals      Totals         `gorm:"embedded;embeddedPrefix:totals_" json:"totals"`
	Shipping    ShippingOption `gorm:"type:jsonb" json:"shipping"`
	Payment     Payment        `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	Fulfillment Fulfillment    `gorm:"embedded;embeddedPrefix:fulfillment_" json:"fulfillment"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
