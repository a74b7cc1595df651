// Package view renders domain entities into the human-readable lines shown
// by the interactive session. It reads entities through their public
// accessors only and never mutates them.
package view

import (
	"fmt"
	"io"

	"github.com/almansori/corona/internal/domain/cart"
	"github.com/almansori/corona/internal/domain/order"
	"github.com/almansori/corona/internal/domain/product"
)

// Catalog writes the product list with 1-based indices, matching the indexed
// selection offered by the session's "cart add" command.
func Catalog(w io.Writer, c *product.Catalog, currency string) {
	fmt.Fprintln(w, "Catalog:")
	for i, p := range c.Products() {
		fmt.Fprintf(w, "%3d. [%s] %s - %s %s\n",
			i+1, p.Code, p.Name, p.UnitPrice.StringFixed(2), currency)
	}
}

// Cart writes the cart contents and the computed total cost.
func Cart(w io.Writer, c *cart.Cart) {
	fmt.Fprintf(w, "There are %d item(s) in the cart:\n", c.Len())
	for _, it := range c.Items() {
		fmt.Fprintf(w, "%sx %s\n", it.Quantity.String(), it.Name)
	}
	fmt.Fprintf(w, "Total cost: %s\n", c.Total().StringFixed(2))
}

// Order writes a full order: header, owner, address, total, state, payment
// when closed, and one line per item.
func Order(w io.Writer, o *order.Order, currency string) {
	fmt.Fprintf(w, "Order #%d\n", o.ID)
	fmt.Fprintf(w, "  for user: %s\n", o.Username)
	fmt.Fprintf(w, "  deliver to: %s\n", o.DeliveryAddress)
	fmt.Fprintf(w, "  costs: %s %s\n", o.Total().StringFixed(2), currency)
	fmt.Fprintf(w, "  state: %s\n", o.Status)
	if o.Status == order.StatusClosed && o.Payment != nil {
		fmt.Fprintf(w, "  pay by: %s\n", o.Payment)
	}
	fmt.Fprintln(w, "  items:")
	for _, it := range o.Items {
		fmt.Fprintf(w, "  - %sx %s [%s] = %s %s\n",
			it.Quantity.String(), it.Name, it.Code, it.Total().StringFixed(2), currency)
	}
}

// Orders writes each order in sequence.
func Orders(w io.Writer, orders []*order.Order, currency string) {
	for _, o := range orders {
		Order(w, o, currency)
	}
}
