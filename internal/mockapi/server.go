package mockapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/anhqhe/orderfood/internal/config"
	"github.com/anhqhe/orderfood/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
)

// Server is the development API server.
type Server struct {
	echo      *echo.Echo
	store     *memoryStore
	clock     clockwork.Clock
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewServer creates a Server seeded with the configured admin account and a
// handful of sample foods.
func NewServer(cfg *config.MockAPIConfig, clock clockwork.Clock) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:      e,
		store:     newMemoryStore(clock),
		clock:     clock,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  cfg.TokenTTL,
	}

	if err := s.seed(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, err
	}

	s.registerRoutes()
	return s, nil
}

// Handler exposes the HTTP handler for httptest-based integration tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start begins listening on the given port. Blocks until shutdown.
func (s *Server) Start(port string) error {
	if err := s.echo.Start(":" + port); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) seed(adminEmail, adminPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if _, ok := s.store.createUser("Admin", adminEmail, "0000000000", domain.RoleAdmin, hash); !ok {
		return fmt.Errorf("failed to seed admin account")
	}

	seedFoods := []domain.Food{
		{Name: "Pho Bo", Description: "Beef noodle soup", Price: 50000, Category: "noodles", IsAvailable: true},
		{Name: "Banh Mi", Description: "Baguette sandwich", Price: 25000, Category: "sandwiches", IsAvailable: true},
		{Name: "Com Tam", Description: "Broken rice with grilled pork", Price: 45000, Category: "rice", IsAvailable: true},
		{Name: "Bun Cha", Description: "Grilled pork with vermicelli", Price: 55000, Category: "noodles", IsAvailable: false},
	}
	for _, food := range seedFoods {
		s.store.createFood(food)
	}

	slog.Info("Seeded development data", "admin_email", adminEmail, "foods", len(seedFoods))
	return nil
}

// ok writes the success envelope.
func ok(c echo.Context, status int, data any) error {
	body := map[string]any{"success": true}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(status, body)
}

// fail writes the failure envelope with a display-ready message.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{"success": false, "message": message})
}
