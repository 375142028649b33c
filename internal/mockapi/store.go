package mockapi

import (
	"sort"
	"strings"
	"sync"

	"github.com/anhqhe/orderfood/internal/domain"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// account pairs a user record with its password hash.
type account struct {
	user         domain.User
	passwordHash []byte
}

// memoryStore holds all server state. One mutex guards everything; the dev
// server never sees enough traffic to care.
type memoryStore struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	users   map[string]*account // by user ID
	byEmail map[string]string   // email -> user ID
	foods   map[string]*domain.Food
	foodIDs []string // insertion order
	orders  []*domain.Order
}

func newMemoryStore(clock clockwork.Clock) *memoryStore {
	return &memoryStore{
		clock:   clock,
		users:   make(map[string]*account),
		byEmail: make(map[string]string),
		foods:   make(map[string]*domain.Food),
	}
}

// --- Users ---

func (s *memoryStore) createUser(name, email, phone string, role domain.Role, passwordHash []byte) (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, taken := s.byEmail[key]; taken {
		return nil, false
	}

	user := domain.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Phone: phone,
		Role:  role,
	}
	s.users[user.ID] = &account{user: user, passwordHash: passwordHash}
	s.byEmail[key] = user.ID
	return &user, true
}

func (s *memoryStore) accountByEmail(email string) (*account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, false
	}
	acc := *s.users[id]
	return &acc, true
}

func (s *memoryStore) userByID(id string) (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.users[id]
	if !ok {
		return nil, false
	}
	user := acc.user
	return &user, true
}

// --- Foods ---

func (s *memoryStore) createFood(food domain.Food) domain.Food {
	s.mu.Lock()
	defer s.mu.Unlock()

	food.ID = uuid.NewString()
	s.foods[food.ID] = &food
	s.foodIDs = append(s.foodIDs, food.ID)
	return food
}

func (s *memoryStore) listFoods(category string, includeUnavailable bool) []domain.Food {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Food, 0, len(s.foodIDs))
	for _, id := range s.foodIDs {
		food := s.foods[id]
		if !includeUnavailable && !food.IsAvailable {
			continue
		}
		if category != "" && !strings.EqualFold(food.Category, category) {
			continue
		}
		out = append(out, *food)
	}
	return out
}

func (s *memoryStore) listCategories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]struct{}{}
	for _, food := range s.foods {
		if food.Category != "" && food.IsAvailable {
			seen[food.Category] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (s *memoryStore) foodByID(id string) (*domain.Food, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	food, ok := s.foods[id]
	if !ok {
		return nil, false
	}
	copied := *food
	return &copied, true
}

func (s *memoryStore) updateFood(id string, input domain.FoodInput) (*domain.Food, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	food, ok := s.foods[id]
	if !ok {
		return nil, false
	}

	if input.Name != nil {
		food.Name = *input.Name
	}
	if input.Description != nil {
		food.Description = *input.Description
	}
	if input.Price != nil {
		food.Price = *input.Price
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

	copied := *food
	return &copied, true
}

func (s *memoryStore) deleteFood(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.foods[id]; !ok {
		return false
	}
	delete(s.foods, id)
	for i, fid := range s.foodIDs {
		if fid == id {
			s.foodIDs = append(s.foodIDs[:i], s.foodIDs[i+1:]...)
			break
		}
	}
	return true
}

// --- Orders ---

func (s *memoryStore) createOrder(userID string, items []domain.OrderItem, address, note string, total float64) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := domain.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     items,
		Address:   address,
		Note:      note,
		Status:    domain.StatusPending,
		Total:     total,
		CreatedAt: s.clock.Now().UTC(),
	}
	s.orders = append(s.orders, &order)
	copied := order
	return copied
}

func (s *memoryStore) ordersByUser(userID string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out
}

func (s *memoryStore) listOrders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = *o
	}
	return out
}

func (s *memoryStore) setOrderStatus(id string, status domain.OrderStatus) (*domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.ID == id {
			o.Status = status
			copied := *o
			return &copied, true
		}
	}
	return nil, false
}

// --- Stats ---

func (s *memoryStore) stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	byStatus := make(map[domain.OrderStatus]int, len(domain.Statuses()))
	for _, status := range domain.Statuses() {
		byStatus[status] = 0
	}

	revenue := 0.0
	for _, o := range s.orders {
		byStatus[o.Status]++
		if o.Status != domain.StatusCancelled {
			revenue += o.Total
		}
	}

	return domain.Stats{
		TotalOrders:    len(s.orders),
		TotalFoods:     len(s.foods),
		TotalUsers:     len(s.users),
		TotalRevenue:   revenue,
		OrdersByStatus: byStatus,
	}
}
