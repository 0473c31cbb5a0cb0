package sales

import "errors"

var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInvalidAddress        = errors.New("invalid address")
	ErrProductNotFound       = errors.New("product not found")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrInvalidPrice          = errors.New("invalid product price")
	ErrShippingMismatch      = errors.New("shipping selection does not match current quote")
	ErrShippingPriceMismatch = errors.New("shipping price does not match current quote")
	ErrInvalidTotal          = errors.New("invalid total")
	ErrSaleNotFound          = errors.New("sale not found")
	ErrInvalidStatus         = errors.New("invalid fulfillment status")
	ErrInvalidTransition     = errors.New("fulfillment status cannot move backwards")
)
