package domain

import "context"

// CredentialStore persists the bearer token in secure local storage.
// Load returns storage.ErrNotFound-compatible errors when no token is stored.
type CredentialStore interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	DeleteToken() error
}

// UserStore persists the current user record in local key-value storage.
type UserStore interface {
	SaveUser(user *User) error
	LoadUser() (*User, error)
	DeleteUser() error
}

// AuthAPI is the authentication surface of the backend.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*User, string, error)
	Register(ctx context.Context, name, email, phone, password string) (*User, string, error)
	Me(ctx context.Context) (*User, error)
}

// CatalogAPI lists the public food catalog.
type CatalogAPI interface {
	ListFoods(ctx context.Context, category string) ([]Food, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// OrderAPI places and lists the current user's orders.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
	MyOrders(ctx context.Context) ([]Order, error)
}

// OrderPlacer is the single operation the cart needs to submit an order.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
}

// AdminAPI is the management surface of the backend.
type AdminAPI interface {
	Stats(ctx context.Context) (*Stats, error)
	ListAllFoods(ctx context.Context) ([]Food, error)
	CreateFood(ctx context.Context, input FoodInput) (*Food, error)
	UpdateFood(ctx context.Context, id string, input FoodInput) (*Food, error)
	DeleteFood(ctx context.Context, id string) error
	ListAllOrders(ctx context.Context) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) (*Order, error)
}
