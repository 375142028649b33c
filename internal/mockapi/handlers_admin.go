package mockapi

import (
	"net/http"
	"strings"

	"github.com/anhqhe/orderfood/internal/domain"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleStats(c echo.Context) error {
	return ok(c, http.StatusOK, s.store.stats())
}

func (s *Server) handleAdminListFoods(c echo.Context) error {
	return ok(c, http.StatusOK, s.store.listFoods("", true))
}

func (s *Server) handleCreateFood(c echo.Context) error {
	var input domain.FoodInput
	if err := c.Bind(&input); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return fail(c, http.StatusBadRequest, "Food name is required")
	}
	if input.Price == nil || *input.Price < 0 {
		return fail(c, http.StatusBadRequest, "Price must be zero or positive")
	}

	food := domain.Food{
		Name:        strings.TrimSpace(*input.Name),
		Price:       *input.Price,
		IsAvailable: true,
	}
	if input.Description != nil {
		food.Description = *input.Description
	}
	if input.Image != nil {
		food.Image = *input.Image
	}
	if input.Category != nil {
		food.Category = *input.Category
	}
	if input.IsAvailable != nil {
		food.IsAvailable = *input.IsAvailable
	}

	return ok(c, http.StatusCreated, s.store.createFood(food))
}

func (s *Server) handleUpdateFood(c echo.Context) error {
	var input domain.FoodInput
	if err := c.Bind(&input); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if input.Price != nil && *input.Price < 0 {
		return fail(c, http.StatusBadRequest, "Price must be zero or positive")
	}

	food, found := s.store.updateFood(c.Param("id"), input)
	if !found {
		return fail(c, http.StatusNotFound, "Food not found")
	}
	return ok(c, http.StatusOK, food)
}

func (s *Server) handleDeleteFood(c echo.Context) error {
	if !s.store.deleteFood(c.Param("id")) {
		return fail(c, http.StatusNotFound, "Food not found")
	}
	return ok(c, http.StatusOK, nil)
}

func (s *Server) handleAdminListOrders(c echo.Context) error {
	return ok(c, http.StatusOK, s.store.listOrders())
}

func (s *Server) handleUpdateOrderStatus(c echo.Context) error {
	var req struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	// Any vocabulary value is accepted; transitions are not restricted.
	if !req.Status.Valid() {
		return fail(c, http.StatusBadRequest, "Unknown order status")
	}

	order, found := s.store.setOrderStatus(c.Param("id"), req.Status)
	if !found {
		return fail(c, http.StatusNotFound, "Order not found")
	}
	return ok(c, http.StatusOK, order)
}
