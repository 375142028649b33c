package mockapi

func (s *Server) registerRoutes() {
	api := s.echo.Group("/api")

	// Auth
	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)
	api.GET("/auth/me", s.handleMe, s.requireAuth)

	// Catalog
	api.GET("/foods", s.handleListFoods, s.requireAuth)
	api.GET("/foods/categories", s.handleListCategories, s.requireAuth)

	// Orders
	api.POST("/orders", s.handleCreateOrder, s.requireAuth)
	api.GET("/orders/my", s.handleMyOrders, s.requireAuth)

	// Admin
	admin := api.Group("/admin", s.requireAuth, s.requireAdmin)
	admin.GET("/stats", s.handleStats)
	admin.GET("/foods", s.handleAdminListFoods)
	admin.POST("/foods", s.handleCreateFood)
	admin.PUT("/foods/:id", s.handleUpdateFood)
	admin.DELETE("/foods/:id", s.handleDeleteFood)
	admin.GET("/orders", s.handleAdminListOrders)
	admin.PUT("/orders/:id/status", s.handleUpdateOrderStatus)
}
