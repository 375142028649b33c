package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleListFoods(c echo.Context) error {
	category := c.QueryParam("category")
	return ok(c, http.StatusOK, s.store.listFoods(category, false))
}

func (s *Server) handleListCategories(c echo.Context) error {
	return ok(c, http.StatusOK, s.store.listCategories())
}
