package order

import (
	"github.com/almansori/corona/internal/domain/user"
)

// Manager is the registry of orders. It assigns monotonically increasing
// order IDs starting at 0; IDs are never reused.
type Manager struct {
	orders []*Order
	nextID uint64
}

// NewManager returns an empty registry.
func NewManager() *Manager {
	return &Manager{}
}

// ManagerFromOrders rebuilds a registry from a restored order list and ID
// counter. The counter is bumped past the highest restored ID so a
// tampered-with snapshot can never cause ID reuse.
func ManagerFromOrders(orders []*Order, nextID uint64) *Manager {
	for _, o := range orders {
		if o.ID >= nextID {
			nextID = o.ID + 1
		}
	}
	return &Manager{orders: orders, nextID: nextID}
}

// Checkout moves the user's entire cart into a new open order with the next
// sequential ID and the given delivery address. The cart is left empty. An
// empty cart is permitted and yields an order with no items and a zero total.
func (m *Manager) Checkout(u *user.User, deliveryAddress string) *Order {
	o := &Order{
		ID:              m.nextID,
		Username:        u.Username,
		Items:           u.Cart.Drain(),
		DeliveryAddress: deliveryAddress,
		Status:          StatusOpen,
	}
	m.nextID++
	m.orders = append(m.orders, o)
	return o
}

// Find returns the order with the given ID, or ErrNotFound. Orders are not
// indexed by username; per-user filtering is a linear scan by the caller.
func (m *Manager) Find(id uint64) (*Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, ErrNotFound
}

// Orders returns all orders in creation order.
func (m *Manager) Orders() []*Order {
	return m.orders
}

// NextID returns the ID the next checkout will be assigned. It is part of the
// persisted state so ID monotonicity survives a restart.
func (m *Manager) NextID() uint64 {
	return m.nextID
}
