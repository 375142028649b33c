package domain

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAdminRequired    = errors.New("admin role required")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrSubmitInFlight   = errors.New("order submission already in progress")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrFoodNotFound     = errors.New("food not found")
	ErrOrderNotFound    = errors.New("order not found")
)
