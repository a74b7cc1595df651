package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/almansori/corona/internal/domain/product"
)

// Item is a snapshot of a product plus a quantity. The product fields are
// copied at add time, so cart contents and the orders built from them do not
// change when the catalog is edited afterwards.
type Item struct {
	Code      string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
}

// Total returns quantity × unit price for this line.
func (i Item) Total() decimal.Decimal {
	return i.UnitPrice.Mul(i.Quantity)
}

// Cart is an ordered collection of items with at most one entry per product
// code.
type Cart struct {
	items []Item
}

// FromItems rebuilds a cart from a restored item list.
func FromItems(items []Item) Cart {
	return Cart{items: slices.Clone(items)}
}

// Add merges quantity into the existing entry for p's code, or appends a new
// snapshot of p. Quantity is not validated: zero and negative values
// accumulate like any other.
func (c *Cart) Add(p product.Product, quantity decimal.Decimal) {
	for i := range c.items {
		if c.items[i].Code == p.Code {
			c.items[i].Quantity = c.items[i].Quantity.Add(quantity)
			return
		}
	}
	c.items = append(c.items, Item{
		Code:      p.Code,
		Name:      p.Name,
		UnitPrice: p.UnitPrice,
		Quantity:  quantity,
	})
}

// Remove deletes the entry with the given product code. Removing an absent
// code is a no-op.
func (c *Cart) Remove(code string) {
	c.items = slices.DeleteFunc(c.items, func(it Item) bool {
		return it.Code == code
	})
}

// Items returns the ordered cart contents. The returned slice is a copy.
func (c *Cart) Items() []Item {
	return slices.Clone(c.items)
}

// Len reports the number of distinct product codes in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}

// Total returns the sum of quantity × unit price over all items.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Total())
	}
	return total
}

// Drain removes and returns all items, leaving the cart empty. Checkout uses
// this to move cart contents into an order rather than copying them.
func (c *Cart) Drain() []Item {
	items := c.items
	c.items = nil
	return items
}
