package domain

import "time"

// OrderStatus is the backend's order workflow vocabulary.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusDelivering OrderStatus = "delivering"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// Statuses returns the full vocabulary in workflow order, cancelled last.
func Statuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusConfirmed, StatusDelivering, StatusCompleted, StatusCancelled}
}

// Valid reports whether s is part of the vocabulary.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDelivering, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are expected from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// OrderItem is one line of an order on the wire.
type OrderItem struct {
	FoodID   string `json:"foodId"`
	Quantity int    `json:"quantity"`
}

// Order is a placed order as returned by the backend.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId,omitempty"`
	Items     []OrderItem `json:"items"`
	Address   string      `json:"address"`
	Note      string      `json:"note,omitempty"`
	Status    OrderStatus `json:"status"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CreateOrderRequest is the payload for placing a new order.
type CreateOrderRequest struct {
	Items   []OrderItem `json:"items"`
	Address string      `json:"address"`
	Note    string      `json:"note,omitempty"`
}

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalOrders    int                 `json:"totalOrders"`
	TotalFoods     int                 `json:"totalFoods"`
	TotalUsers     int                 `json:"totalUsers"`
	TotalRevenue   float64             `json:"totalRevenue"`
	OrdersByStatus map[OrderStatus]int `json:"ordersByStatus"`
}
