// Package cart implements the in-memory shopping cart.
//
// Lines aggregate by food ID in insertion order: adding a food already in the
// cart bumps its quantity, removing a food drops the whole line. Totals are
// recomputed from the lines on every read so they can never drift. Submission
// runs a guarded Idle -> Submitting -> Idle machine: an empty cart or an
// in-flight submission is rejected before any network call, success clears
// the cart, failure leaves it intact so the user can retry.
package cart

import (
	"context"
	"sync"

	"github.com/anhqhe/orderfood/internal/domain"
)

// Line pairs a catalog item with its aggregated quantity.
type Line struct {
	Food     domain.Food
	Quantity int
}

// Subtotal is the line's contribution to the cart total.
func (l Line) Subtotal() float64 {
	return l.Food.Price * float64(l.Quantity)
}

// Cart accumulates selected foods and drives order submission.
// The cart lives in memory only; it is never persisted across restarts.
type Cart struct {
	orders domain.OrderPlacer

	mu         sync.Mutex
	lines      []Line
	submitting bool
	subs       map[int]func()
	nextSub    int
}

// New creates an empty cart that submits through the given placer.
func New(orders domain.OrderPlacer) *Cart {
	return &Cart{
		orders: orders,
		subs:   make(map[int]func()),
	}
}

// AddItem adds one unit of food. An existing line for the same ID is
// incremented; there is never more than one line per food ID.
func (c *Cart) AddItem(food domain.Food) {
	c.mu.Lock()
	for i := range c.lines {
		if c.lines[i].Food.ID == food.ID {
			c.lines[i].Quantity++
			c.mu.Unlock()
			c.notify()
			return
		}
	}
	c.lines = append(c.lines, Line{Food: food, Quantity: 1})
	c.mu.Unlock()
	c.notify()
}

// RemoveItem drops the entire line for foodID, whatever its quantity.
// Unknown IDs are ignored.
func (c *Cart) RemoveItem(foodID string) {
	c.mu.Lock()
	removed := false
	for i := range c.lines {
		if c.lines[i].Food.ID == foodID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			removed = true
			break
		}
	}
	c.mu.Unlock()
	if removed {
		c.notify()
	}
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItems is the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity across all lines.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// Empty reports whether the cart holds no lines.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// SubmitOrder places the cart's content as an order. An empty cart returns
// ErrEmptyCart and an in-flight submission returns ErrSubmitInFlight, both
// without touching the network. On success the cart is cleared; on failure
// it is left exactly as it was.
func (c *Cart) SubmitOrder(ctx context.Context, address, note string) (*domain.Order, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, domain.ErrSubmitInFlight
	}
	if len(c.lines) == 0 {
		c.mu.Unlock()
		return nil, domain.ErrEmptyCart
	}
	c.submitting = true
	items := make([]domain.OrderItem, len(c.lines))
	for i, l := range c.lines {
		items[i] = domain.OrderItem{FoodID: l.Food.ID, Quantity: l.Quantity}
	}
	c.mu.Unlock()

	order, err := c.orders.CreateOrder(ctx, domain.CreateOrderRequest{
		Items:   items,
		Address: address,
		Note:    note,
	})

	c.mu.Lock()
	c.submitting = false
	if err == nil {
		c.lines = nil
	}
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}
	c.notify()
	return order, nil
}

// Subscribe registers fn for cart-changed notifications and returns an
// unsubscribe func. fn is called outside the cart's lock.
func (c *Cart) Subscribe(fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Cart) notify() {
	c.mu.Lock()
	listeners := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
