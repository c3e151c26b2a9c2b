package cart

import "github.com/go-ports/gomarketplace/internal/models"

// The transition functions below never modify their input slice; each returns
// a freshly allocated list so committed state can be shared with readers.

// AddToCart returns products with item added. An existing line item with the
// same ID takes the incoming descriptor's fields and its quantity grows by one;
// otherwise item is appended with quantity 1.
func AddToCart(products []models.Product, item models.ProductInput) []models.Product {
	next := make([]models.Product, 0, len(products)+1)
	found := false
	for _, p := range products {
		if p.ID == item.ID {
			next = append(next, item.WithQuantity(p.Quantity+1))
			found = true
			continue
		}
		next = append(next, p)
	}
	if !found {
		next = append(next, item.WithQuantity(1))
	}
	return next
}

// Increment returns products with the quantity of id raised by one. An unknown
// id yields an equal copy.
func Increment(products []models.Product, id string) []models.Product {
	next := make([]models.Product, len(products))
	for i, p := range products {
		if p.ID == id {
			p.Quantity++
		}
		next[i] = p
	}
	return next
}

// Decrement returns products with the quantity of id lowered by one. Items
// left with a non-positive quantity are dropped.
func Decrement(products []models.Product, id string) []models.Product {
	next := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.ID == id && p.Quantity > 0 {
			p.Quantity--
		}
		if p.Quantity <= 0 {
			continue
		}
		next = append(next, p)
	}
	return next
}
