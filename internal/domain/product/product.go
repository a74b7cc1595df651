package product

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for catalog operations.
var (
	// ErrNotFound is returned when a requested product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicateCode is returned when a product with the same code is
	// already present in the catalog.
	ErrDuplicateCode = errors.New("product code already in catalog")
)

// Product represents a catalog item available for purchase. It is a plain
// value: carts and orders copy it on add, so historical contents stay intact
// when the catalog is edited later.
type Product struct {
	Code      string
	Name      string
	UnitPrice decimal.Decimal
}

// New builds a Product value.
func New(code, name string, unitPrice decimal.Decimal) Product {
	return Product{
		Code:      code,
		Name:      name,
		UnitPrice: unitPrice,
	}
}
