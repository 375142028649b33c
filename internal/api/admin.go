package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/anhqhe/orderfood/internal/domain"
)

// Stats returns the admin dashboard aggregate.
func (c *Client) Stats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := c.get(ctx, "/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListAllFoods returns the full catalog, including unavailable items.
func (c *Client) ListAllFoods(ctx context.Context) ([]domain.Food, error) {
	var foods []domain.Food
	if err := c.get(ctx, "/admin/foods", nil, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

// CreateFood adds a new catalog item.
func (c *Client) CreateFood(ctx context.Context, input domain.FoodInput) (*domain.Food, error) {
	var food domain.Food
	if err := c.do(ctx, http.MethodPost, "/admin/foods", nil, input, &food); err != nil {
		return nil, err
	}
	return &food, nil
}

// UpdateFood applies a partial update to a catalog item.
func (c *Client) UpdateFood(ctx context.Context, id string, input domain.FoodInput) (*domain.Food, error) {
	var food domain.Food
	if err := c.do(ctx, http.MethodPut, "/admin/foods/"+url.PathEscape(id), nil, input, &food); err != nil {
		return nil, err
	}
	return &food, nil
}

// DeleteFood removes a catalog item.
func (c *Client) DeleteFood(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/foods/"+url.PathEscape(id), nil, nil, nil)
}

// ListAllOrders returns every order in the system.
func (c *Client) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/admin/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus sets an order's status to any vocabulary value.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	body := map[string]domain.OrderStatus{"status": status}

	var order domain.Order
	if err := c.do(ctx, http.MethodPut, "/admin/orders/"+url.PathEscape(id)+"/status", nil, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
