package product

import "slices"

// Catalog is the authoritative ordered collection of products, keyed by code.
// Insertion order is preserved so the presentation layer can offer stable
// 1-based indexed selection.
type Catalog struct {
	products []Product
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// CatalogFromProducts rebuilds a catalog from a restored product list.
func CatalogFromProducts(products []Product) *Catalog {
	return &Catalog{products: slices.Clone(products)}
}

// Add appends p to the catalog. Codes are unique: adding a product whose code
// is already present returns ErrDuplicateCode and leaves the catalog
// unchanged.
func (c *Catalog) Add(p Product) error {
	for _, existing := range c.products {
		if existing.Code == p.Code {
			return ErrDuplicateCode
		}
	}
	c.products = append(c.products, p)
	return nil
}

// Remove deletes every product whose code matches. Removing an absent code is
// a no-op.
func (c *Catalog) Remove(code string) {
	c.products = slices.DeleteFunc(c.products, func(p Product) bool {
		return p.Code == code
	})
}

// ByCode looks up a product by its code.
func (c *Catalog) ByCode(code string) (Product, error) {
	for _, p := range c.products {
		if p.Code == code {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// Products returns the ordered catalog contents. The returned slice is a
// copy; mutating it does not affect the catalog.
func (c *Catalog) Products() []Product {
	return slices.Clone(c.products)
}

// Len reports the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}
