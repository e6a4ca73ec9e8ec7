package checkout

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mkamanga/sokoni-backend/internal/modules/buyer"
	"github.com/mkamanga/sokoni-backend/internal/modules/cart"
	"github.com/mkamanga/sokoni-backend/internal/modules/catalog"
	"github.com/mkamanga/sokoni-backend/internal/modules/notification"
	"github.com/mkamanga/sokoni-backend/internal/modules/order"
	"github.com/mkamanga/sokoni-backend/internal/modules/shop"
)

type mockBuyers struct {
	buyers map[string]*buyer.Buyer
}

func (m *mockBuyers) GetBuyerByID(_ context.Context, id string) (*buyer.Buyer, error) {
	b, ok := m.buyers[id]
	if !ok {
		return nil, buyer.ErrBuyerNotFound
	}
	return b, nil
}

type mockCarts struct {
	mu      sync.Mutex
	cart    *cart.Cart
	cleared []string
}

func (m *mockCarts) GetCart(_ context.Context, _ string) (*cart.Cart, error) {
	if m.cart != nil {
		return m.cart, nil
	}
	return &cart.Cart{}, nil
}

func (m *mockCarts) Clear(_ context.Context, buyerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared = append(m.cleared, buyerID)
	return nil
}

func (m *mockCarts) clearCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cleared)
}

type mockCatalog struct {
	lines map[string]*catalog.ResolvedLine // keyed productID|color|size
}

func (m *mockCatalog) ResolveLine(_ context.Context, productID, color, size string) (*catalog.ResolvedLine, error) {
	l, ok := m.lines[productID+"|"+color+"|"+size]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return l, nil
}

type mockOrders struct {
	mu      sync.Mutex
	created []*order.Order
	err     error
}

func (m *mockOrders) Create(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, o)
	return nil
}

func (m *mockOrders) all() []*order.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*order.Order, len(m.created))
	copy(out, m.created)
	return out
}

type mockShops struct {
	names map[uuid.UUID]string
}

func (m *mockShops) GetShopByID(_ context.Context, id string) (*shop.Shop, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	name, ok := m.names[sid]
	if !ok {
		return nil, shop.ErrShopNotFound
	}
	return &shop.Shop{ID: sid, Name: name}, nil
}

type mockDispatcher struct {
	mu     sync.Mutex
	events []notification.SoldOutEvent
}

func (m *mockDispatcher) Dispatch(ev notification.SoldOutEvent) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return true
}

func (m *mockDispatcher) all() []notification.SoldOutEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notification.SoldOutEvent, len(m.events))
	copy(out, m.events)
	return out
}

type mockMailer struct {
	mu     sync.Mutex
	to     []string
	bodies []string
	err    error
}

func (m *mockMailer) Send(_ context.Context, to, _ string, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.to = append(m.to, to)
	m.bodies = append(m.bodies, body)
	return nil
}

func (m *mockMailer) sent() ([]string, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	to := make([]string, len(m.to))
	copy(to, m.to)
	bodies := make([]string, len(m.bodies))
	copy(bodies, m.bodies)
	return to, bodies
}
