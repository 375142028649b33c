package api

import (
	"context"
	"net/http"

	"github.com/anhqhe/orderfood/internal/domain"
)

// CreateOrder places a new order from the given payload.
func (c *Client) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MyOrders returns the current user's order history.
func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/orders/my", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
