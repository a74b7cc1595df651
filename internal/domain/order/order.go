package order

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/almansori/corona/internal/domain/cart"
)

// Sentinel errors for order operations.
var (
	// ErrNotFound is returned when a requested order does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrAlreadyClosed is returned when closing an order that is not open.
	ErrAlreadyClosed = errors.New("order already closed")
)

// Status is the order's position in its lifecycle. The only transition is
// StatusOpen → StatusClosed.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Order is an immutable snapshot of a cart at checkout time. The owning user
// is referenced by username value, not by pointer, so an order remains valid
// regardless of later account changes. Items, delivery address, and ID never
// change after creation; the only permitted mutation is Close.
type Order struct {
	ID              uint64
	Username        string
	Items           []cart.Item
	DeliveryAddress string
	Status          Status
	Payment         *Payment
}

// Close transitions an open order to closed with the given payment. Closing
// an order that is already closed returns ErrAlreadyClosed and changes
// nothing. Close performs no monetary validation; amount and card checks are
// the caller's responsibility before calling it.
func (o *Order) Close(p Payment) error {
	if o.Status != StatusOpen {
		return ErrAlreadyClosed
	}
	o.Status = StatusClosed
	o.Payment = &p
	return nil
}

// Total returns the sum of quantity × unit price over the order's items. It
// is computed fresh on every call from the item snapshots captured at
// checkout.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Total())
	}
	return total
}
