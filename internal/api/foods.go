package api

import (
	"context"
	"net/url"

	"github.com/anhqhe/orderfood/internal/domain"
)

// ListFoods returns the available catalog, optionally filtered by category.
func (c *Client) ListFoods(ctx context.Context, category string) ([]domain.Food, error) {
	var query url.Values
	if category != "" {
		query = url.Values{"category": {category}}
	}

	var foods []domain.Food
	if err := c.get(ctx, "/foods", query, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

// ListCategories returns the distinct catalog categories.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.get(ctx, "/foods/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
