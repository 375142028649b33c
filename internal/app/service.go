package app

import (
	"context"
	"strings"

	"github.com/anhqhe/orderfood/internal/cart"
	"github.com/anhqhe/orderfood/internal/catalog"
	"github.com/anhqhe/orderfood/internal/domain"
	apperrors "github.com/anhqhe/orderfood/internal/errors"
	"github.com/anhqhe/orderfood/internal/session"
)

const minPasswordLength = 6

// Service orchestrates all use cases for the screens. Validation failures
// are caught here, before anything touches the network.
type Service struct {
	session *session.Manager
	cart    *cart.Cart
	catalog *catalog.Cache
	orders  domain.OrderAPI
	admin   domain.AdminAPI
}

// NewService creates the application layer service.
func NewService(sess *session.Manager, c *cart.Cart, cat *catalog.Cache, orders domain.OrderAPI, admin domain.AdminAPI) *Service {
	return &Service{
		session: sess,
		cart:    c,
		catalog: cat,
		orders:  orders,
		admin:   admin,
	}
}

// Session exposes the session manager for screens that render auth state.
func (s *Service) Session() *session.Manager { return s.session }

// Cart exposes the cart for screens that render and mutate it.
func (s *Service) Cart() *cart.Cart { return s.cart }

// --- Auth ---

// Login validates input and authenticates through the session manager.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, apperrors.ValidationError("Password is required.")
	}
	return s.session.Login(ctx, email, password)
}

// Register validates input and provisions a new account.
func (s *Service) Register(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return nil, apperrors.ValidationError("Name is required.")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if phone == "" {
		return nil, apperrors.ValidationError("Phone number is required.")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.ValidationError("Password must be at least 6 characters.")
	}
	return s.session.Register(ctx, name, email, phone, password)
}

// Logout clears the session. Idempotent.
func (s *Service) Logout() error {
	return s.session.Logout()
}

// --- Browse ---

// BrowseFoods lists the available catalog for a category filter ("" = all).
func (s *Service) BrowseFoods(ctx context.Context, category string) ([]domain.Food, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	return s.catalog.Foods(ctx, category)
}

// Categories lists the distinct catalog categories.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	return s.catalog.Categories(ctx)
}

// --- Orders ---

// PlaceOrder validates the delivery address and submits the cart.
func (s *Service) PlaceOrder(ctx context.Context, address, note string) (*domain.Order, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(address) == "" {
		return nil, apperrors.ValidationError("Delivery address is required.")
	}
	return s.cart.SubmitOrder(ctx, strings.TrimSpace(address), strings.TrimSpace(note))
}

// MyOrders lists the current user's order history.
func (s *Service) MyOrders(ctx context.Context) ([]domain.Order, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	return s.orders.MyOrders(ctx)
}

// --- Admin ---

// Stats returns the dashboard aggregate.
func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.admin.Stats(ctx)
}

// AllFoods lists the full catalog, unavailable items included.
func (s *Service) AllFoods(ctx context.Context) ([]domain.Food, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.admin.ListAllFoods(ctx)
}

// CreateFood adds a catalog item and invalidates the browse cache.
func (s *Service) CreateFood(ctx context.Context, input domain.FoodInput) (*domain.Food, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.ValidationError("Food name is required.")
	}
	if input.Price == nil || *input.Price < 0 {
		return nil, apperrors.ValidationError("Price must be zero or positive.")
	}

	food, err := s.admin.CreateFood(ctx, input)
	if err != nil {
		return nil, err
	}
	s.catalog.Invalidate()
	return food, nil
}

// UpdateFood applies a partial update and invalidates the browse cache.
func (s *Service) UpdateFood(ctx context.Context, id string, input domain.FoodInput) (*domain.Food, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperrors.ValidationError("Food id is required.")
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, apperrors.ValidationError("Price must be zero or positive.")
	}

	food, err := s.admin.UpdateFood(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.catalog.Invalidate()
	return food, nil
}

// DeleteFood removes a catalog item and invalidates the browse cache.
func (s *Service) DeleteFood(ctx context.Context, id string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	if id == "" {
		return apperrors.ValidationError("Food id is required.")
	}

	if err := s.admin.DeleteFood(ctx, id); err != nil {
		return err
	}
	s.catalog.Invalidate()
	return nil
}

// AllOrders lists every order in the system.
func (s *Service) AllOrders(ctx context.Context) ([]domain.Order, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.admin.ListAllOrders(ctx)
}

// SetOrderStatus sets an order to any vocabulary value. The workflow allows
// arbitrary transitions; only membership in the vocabulary is checked.
func (s *Service) SetOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperrors.ValidationError("Unknown order status.").WithField("status", string(status))
	}
	return s.admin.UpdateOrderStatus(ctx, id, status)
}

// --- Guards ---

// requireAuth gates every backend call: a loading session counts as not
// authenticated, so nothing fires before Restore completes.
func (s *Service) requireAuth() error {
	if !s.session.IsAuthenticated() {
		return domain.ErrNotAuthenticated
	}
	return nil
}

func (s *Service) requireAdmin() error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	if !s.session.IsAdmin() {
		return domain.ErrAdminRequired
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return apperrors.ValidationError("Email is required.")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return apperrors.ValidationError("Email address is not valid.")
	}
	return nil
}
