// Package state composes the domain registries into the single application
// aggregate that gets persisted as one unit.
package state

import (
	"github.com/almansori/corona/internal/domain/order"
	"github.com/almansori/corona/internal/domain/product"
	"github.com/almansori/corona/internal/domain/user"
)

// Application is the aggregate root: the user registry, the product catalog,
// and the order registry. It is loaded once at startup, mutated in place by
// one interactive session, and saved at shutdown.
type Application struct {
	Users   *user.Manager
	Catalog *product.Catalog
	Orders  *order.Manager
}

// New returns a freshly initialized empty application. bcryptCost is the work
// factor for password hashing at registration.
func New(bcryptCost int) *Application {
	return &Application{
		Users:   user.NewManager(bcryptCost),
		Catalog: product.NewCatalog(),
		Orders:  order.NewManager(),
	}
}

// Snapshot is the serializable image of an Application. The taken-usernames
// index is deliberately absent: it is derived data, rebuilt on Restore.
type Snapshot struct {
	Users       []*user.User
	Products    []product.Product
	Orders      []*order.Order
	NextOrderID uint64
}

// Snapshot captures the full application state for persistence.
func (a *Application) Snapshot() Snapshot {
	return Snapshot{
		Users:       a.Users.Users(),
		Products:    a.Catalog.Products(),
		Orders:      a.Orders.Orders(),
		NextOrderID: a.Orders.NextID(),
	}
}

// Restore rebuilds an Application from a snapshot, reconstructing all derived
// indexes.
func Restore(s Snapshot, bcryptCost int) *Application {
	return &Application{
		Users:   user.ManagerFromUsers(bcryptCost, s.Users),
		Catalog: product.CatalogFromProducts(s.Products),
		Orders:  order.ManagerFromOrders(s.Orders, s.NextOrderID),
	}
}
