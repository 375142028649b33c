package mockapi

import (
	"net/http"
	"strings"

	"github.com/anhqhe/orderfood/internal/domain"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleCreateOrder(c echo.Context) error {
	var req domain.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	if len(req.Items) == 0 {
		return fail(c, http.StatusBadRequest, "Order must contain at least one item")
	}
	if strings.TrimSpace(req.Address) == "" {
		return fail(c, http.StatusBadRequest, "Delivery address is required")
	}

	total := 0.0
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return fail(c, http.StatusBadRequest, "Item quantity must be at least 1")
		}
		food, found := s.store.foodByID(item.FoodID)
		if !found || !food.IsAvailable {
			return fail(c, http.StatusBadRequest, "Food is not available: "+item.FoodID)
		}
		total += food.Price * float64(item.Quantity)
	}

	order := s.store.createOrder(currentUser(c).ID, req.Items, strings.TrimSpace(req.Address), strings.TrimSpace(req.Note), total)
	return ok(c, http.StatusCreated, order)
}

func (s *Server) handleMyOrders(c echo.Context) error {
	return ok(c, http.StatusOK, s.store.ordersByUser(currentUser(c).ID))
}
